package rental

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skirent/backend/internal/domain/catalog"
	"github.com/skirent/backend/internal/domain/shared"
)

// Equipment is the rental-side projection of a catalog product
// Exactly one equipment row exists per catalog product
type Equipment struct {
	shared.BaseAggregateRoot
	ProductID         uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_equipment_product_id"`
	SKU               string                `gorm:"type:varchar(50);not null;index"`
	Name              string                `gorm:"type:varchar(200);not null"`
	EquipmentType     catalog.EquipmentType `gorm:"type:varchar(20);not null"`
	DailyRate         decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	AvailableQuantity int                   `gorm:"not null;default:0"`
	ReservedQuantity  int                   `gorm:"not null;default:0"`
	RentalEligible    bool                  `gorm:"not null;default:false"`
	Active            bool                  `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Equipment) TableName() string {
	return "equipment"
}

// NewEquipment creates a new equipment record for a catalog product
func NewEquipment(productID uuid.UUID, sku, name string, equipmentType catalog.EquipmentType, dailyRate decimal.Decimal, active bool) (*Equipment, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Equipment SKU cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Equipment name cannot be empty")
	}
	if dailyRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Daily rate cannot be negative")
	}

	return &Equipment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		SKU:               sku,
		Name:              name,
		EquipmentType:     equipmentType,
		DailyRate:         dailyRate,
		RentalEligible:    rentableTypes[equipmentType],
		Active:            active,
	}, nil
}

// ApplyProductData refreshes the projected fields from catalog data.
// Rental eligibility follows the equipment type.
func (e *Equipment) ApplyProductData(sku, name string, equipmentType catalog.EquipmentType, dailyRate decimal.Decimal, active bool) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "Equipment SKU cannot be empty")
	}
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Equipment name cannot be empty")
	}
	if dailyRate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Daily rate cannot be negative")
	}

	e.SKU = sku
	e.Name = name
	e.EquipmentType = equipmentType
	e.DailyRate = dailyRate
	e.RentalEligible = rentableTypes[equipmentType]
	e.Active = active
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// Activate marks the equipment as rentable again
func (e *Equipment) Activate() {
	if e.Active {
		return
	}
	e.Active = true
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// Deactivate takes the equipment out of the rentable pool
// Quantities are kept so reactivation restores the previous state
func (e *Equipment) Deactivate() {
	if !e.Active {
		return
	}
	e.Active = false
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// SetQuantities sets the stock counters
func (e *Equipment) SetQuantities(available, reserved int) error {
	if available < 0 || reserved < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantities cannot be negative")
	}
	e.AvailableQuantity = available
	e.ReservedQuantity = reserved
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// IsOutOfStock returns true when nothing is left to rent out
func (e *Equipment) IsOutOfStock() bool {
	return e.AvailableQuantity == 0
}

// InventoryValue returns dailyRate multiplied by the available quantity
func (e *Equipment) InventoryValue() decimal.Decimal {
	return e.DailyRate.Mul(decimal.NewFromInt(int64(e.AvailableQuantity)))
}
