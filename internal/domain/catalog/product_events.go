package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skirent/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated     = "ProductCreated"
	EventTypeProductUpdated     = "ProductUpdated"
	EventTypeProductDeleted     = "ProductDeleted"
	EventTypeProductActivated   = "ProductActivated"
	EventTypeProductDeactivated = "ProductDeactivated"
)

// ProductSnapshot is the full product state carried inside lifecycle events
// Consumers rebuild their own projection from it without calling back
type ProductSnapshot struct {
	ProductID       uuid.UUID       `json:"productId"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	CategoryName    string          `json:"categoryName,omitempty"`
	BrandName       string          `json:"brandName,omitempty"`
	EquipmentType   EquipmentType   `json:"equipmentType"`
	SizeRange       string          `json:"sizeRange,omitempty"`
	DifficultyLevel string          `json:"difficultyLevel,omitempty"`
	BasePrice       decimal.Decimal `json:"basePrice"`
	Description     string          `json:"description,omitempty"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	RentalAvailable bool            `json:"rentalAvailable"`
	Active          bool            `json:"active"`
}

// Snapshot returns the current state of the product as an event payload
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ProductID:       p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		CategoryName:    p.CategoryName,
		BrandName:       p.BrandName,
		EquipmentType:   p.EquipmentType,
		SizeRange:       p.SizeRange,
		DifficultyLevel: p.DifficultyLevel,
		BasePrice:       p.BasePrice,
		Description:     p.Description,
		ImageURL:        p.ImageURL,
		RentalAvailable: p.RentalAvailable,
		Active:          p.Active,
	}
}

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Product ProductSnapshot `json:"product"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		Product:         product.Snapshot(),
	}
}

// ProductUpdatedEvent is published when a product is updated
// It carries both the previous and the current state
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	OldProduct ProductSnapshot `json:"oldProduct"`
	Product    ProductSnapshot `json:"product"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product, old ProductSnapshot) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID),
		OldProduct:      old,
		Product:         product.Snapshot(),
	}
}

// ProductDeletedEvent is published when a product is deleted
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"productId"`
	SKU       string    `json:"sku"`
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(product *Product) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeleted, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
	}
}

// ProductActivatedEvent is published when a product is activated
type ProductActivatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"productId"`
	SKU       string    `json:"sku"`
}

// NewProductActivatedEvent creates a new ProductActivatedEvent
func NewProductActivatedEvent(product *Product) *ProductActivatedEvent {
	return &ProductActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductActivated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
	}
}

// ProductDeactivatedEvent is published when a product is deactivated
type ProductDeactivatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"productId"`
	SKU       string    `json:"sku"`
}

// NewProductDeactivatedEvent creates a new ProductDeactivatedEvent
func NewProductDeactivatedEvent(product *Product) *ProductDeactivatedEvent {
	return &ProductDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeactivated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
	}
}
