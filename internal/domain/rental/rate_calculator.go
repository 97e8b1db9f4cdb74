package rental

import (
	"github.com/shopspring/decimal"
	"github.com/skirent/backend/internal/domain/catalog"
)

// Daily rate is derived from the catalog base price: 10% of the base
// price scaled by a per-type multiplier.
var (
	baseRateFactor = decimal.NewFromFloat(0.10)

	rateMultipliers = map[catalog.EquipmentType]decimal.Decimal{
		catalog.EquipmentTypeSkiBoard: decimal.NewFromFloat(1.2),
		catalog.EquipmentTypeBoot:     decimal.NewFromFloat(1.1),
		catalog.EquipmentTypeHelmet:   decimal.NewFromFloat(0.8),
		catalog.EquipmentTypePole:     decimal.NewFromFloat(0.6),
	}

	defaultRateMultiplier = decimal.NewFromInt(1)
)

// rentableTypes is the closed set of equipment types stocked as rental
// inventory. Consumables and services (wax, tuning) are sold, not rented.
var rentableTypes = map[catalog.EquipmentType]bool{
	catalog.EquipmentTypeSkiBoard:  true,
	catalog.EquipmentTypeBoot:      true,
	catalog.EquipmentTypeHelmet:    true,
	catalog.EquipmentTypePole:      true,
	catalog.EquipmentTypeGoggles:   true,
	catalog.EquipmentTypeGloves:    true,
	catalog.EquipmentTypeProtector: true,
	catalog.EquipmentTypeWax:       false,
	catalog.EquipmentTypeTuning:    false,
	catalog.EquipmentTypeOther:     false,
}

// RateCalculator derives rental terms from catalog product data
type RateCalculator struct{}

// NewRateCalculator creates a new rate calculator
func NewRateCalculator() *RateCalculator {
	return &RateCalculator{}
}

// ComputeDailyRate returns the daily rental rate for a product
// Unknown equipment types fall back to the neutral multiplier
func (c *RateCalculator) ComputeDailyRate(basePrice decimal.Decimal, equipmentType catalog.EquipmentType) decimal.Decimal {
	multiplier, ok := rateMultipliers[equipmentType]
	if !ok {
		multiplier = defaultRateMultiplier
	}
	return basePrice.Mul(baseRateFactor).Mul(multiplier)
}

// IsRentalEligible reports whether equipment of the given type is
// stocked as rental inventory
func (c *RateCalculator) IsRentalEligible(equipmentType catalog.EquipmentType) bool {
	return rentableTypes[equipmentType]
}
