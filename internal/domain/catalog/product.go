package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skirent/backend/internal/domain/shared"
)

// Product represents a rentable equipment product in the catalog
// It is the aggregate root for product-related operations
type Product struct {
	shared.BaseAggregateRoot
	SKU             string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_sku"`
	Name            string          `gorm:"type:varchar(200);not null"`
	CategoryName    string          `gorm:"type:varchar(100)"`
	BrandName       string          `gorm:"type:varchar(100)"`
	EquipmentType   EquipmentType   `gorm:"type:varchar(20);not null"`
	SizeRange       string          `gorm:"type:varchar(50)"`
	DifficultyLevel string          `gorm:"type:varchar(20)"`
	BasePrice       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Description     string          `gorm:"type:text"`
	ImageURL        string          `gorm:"type:varchar(500)"`
	RentalAvailable bool            `gorm:"not null;default:true"`
	Active          bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalog product and records a created event
func NewProduct(sku, name string, equipmentType EquipmentType, basePrice decimal.Decimal) (*Product, error) {
	product, err := newProduct(sku, name, equipmentType, basePrice)
	if err != nil {
		return nil, err
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// NewProductWithDetails creates a new catalog product with all optional
// fields populated before the created event is recorded, so the event
// snapshot reflects the complete initial state
func NewProductWithDetails(sku, name string, equipmentType EquipmentType, basePrice decimal.Decimal, categoryName, brandName, sizeRange, difficultyLevel, description, imageURL string) (*Product, error) {
	product, err := newProduct(sku, name, equipmentType, basePrice)
	if err != nil {
		return nil, err
	}

	product.CategoryName = categoryName
	product.BrandName = brandName
	product.SizeRange = sizeRange
	product.DifficultyLevel = difficultyLevel
	product.Description = description
	product.ImageURL = imageURL

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

func newProduct(sku, name string, equipmentType EquipmentType, basePrice decimal.Decimal) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if !equipmentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_EQUIPMENT_TYPE", "Unknown equipment type: "+string(equipmentType))
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		EquipmentType:     equipmentType,
		BasePrice:         basePrice,
		RentalAvailable:   true,
		Active:            true,
	}, nil
}

// Update updates the product's details and records an updated event
// carrying both the old and the new state
func (p *Product) Update(name, categoryName, brandName string, equipmentType EquipmentType, sizeRange, difficultyLevel string, basePrice decimal.Decimal, description, imageURL string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if !equipmentType.IsValid() {
		return shared.NewDomainError("INVALID_EQUIPMENT_TYPE", "Unknown equipment type: "+string(equipmentType))
	}
	if basePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}

	old := p.Snapshot()

	p.Name = name
	p.CategoryName = categoryName
	p.BrandName = brandName
	p.EquipmentType = equipmentType
	p.SizeRange = sizeRange
	p.DifficultyLevel = difficultyLevel
	p.BasePrice = basePrice
	p.Description = description
	p.ImageURL = imageURL
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p, old))

	return nil
}

// SetRentalAvailable toggles whether the product may be rented out
func (p *Product) SetRentalAvailable(available bool) {
	if p.RentalAvailable == available {
		return
	}

	old := p.Snapshot()

	p.RentalAvailable = available
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p, old))
}

// Activate activates the product and records an activated event
func (p *Product) Activate() error {
	if p.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}

	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductActivatedEvent(p))

	return nil
}

// Deactivate deactivates the product and records a deactivated event
func (p *Product) Deactivate() error {
	if !p.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}

	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductDeactivatedEvent(p))

	return nil
}

// MarkDeleted records a deleted event on the product
// The caller is responsible for the actual removal from the store
func (p *Product) MarkDeleted() {
	p.AddDomainEvent(NewProductDeletedEvent(p))
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Active
}

// validateSKU validates the product SKU
func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "Product SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "Product SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", "Product SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
