package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skirent/backend/internal/domain/catalog"
)

// CreateProductRequest is the input for creating a catalog product
type CreateProductRequest struct {
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	CategoryName    string          `json:"categoryName"`
	BrandName       string          `json:"brandName"`
	EquipmentType   string          `json:"equipmentType"`
	SizeRange       string          `json:"sizeRange"`
	DifficultyLevel string          `json:"difficultyLevel"`
	BasePrice       decimal.Decimal `json:"basePrice"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"imageUrl"`
}

// UpdateProductRequest is the input for updating a catalog product
type UpdateProductRequest struct {
	Name            string          `json:"name"`
	CategoryName    string          `json:"categoryName"`
	BrandName       string          `json:"brandName"`
	EquipmentType   string          `json:"equipmentType"`
	SizeRange       string          `json:"sizeRange"`
	DifficultyLevel string          `json:"difficultyLevel"`
	BasePrice       decimal.Decimal `json:"basePrice"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"imageUrl"`
}

// ProductResponse is the outward representation of a catalog product
type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	CategoryName    string          `json:"categoryName,omitempty"`
	BrandName       string          `json:"brandName,omitempty"`
	EquipmentType   string          `json:"equipmentType"`
	SizeRange       string          `json:"sizeRange,omitempty"`
	DifficultyLevel string          `json:"difficultyLevel,omitempty"`
	BasePrice       decimal.Decimal `json:"basePrice"`
	Description     string          `json:"description,omitempty"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	RentalAvailable bool            `json:"rentalAvailable"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ToProductResponse converts a product aggregate to a response DTO
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              product.ID,
		SKU:             product.SKU,
		Name:            product.Name,
		CategoryName:    product.CategoryName,
		BrandName:       product.BrandName,
		EquipmentType:   product.EquipmentType.String(),
		SizeRange:       product.SizeRange,
		DifficultyLevel: product.DifficultyLevel,
		BasePrice:       product.BasePrice,
		Description:     product.Description,
		ImageURL:        product.ImageURL,
		RentalAvailable: product.RentalAvailable,
		Active:          product.Active,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
}
