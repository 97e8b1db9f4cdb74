package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/skirent/backend/internal/domain/catalog"
	"github.com/skirent/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles catalog product operations
// Every successful mutation hands the product's lifecycle events to the
// publisher. Publishing is best-effort: a publish failure never rolls
// back the catalog change.
type ProductService struct {
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:    productRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	product, err := catalog.NewProductWithDetails(req.SKU, req.Name,
		catalog.EquipmentType(req.EquipmentType), req.BasePrice,
		req.CategoryName, req.BrandName, req.SizeRange, req.DifficultyLevel,
		req.Description, req.ImageURL)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product.GetDomainEvents())
	product.ClearDomainEvents()

	response := ToProductResponse(product)
	return &response, nil
}

// Update updates an existing product
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.CategoryName, req.BrandName,
		catalog.EquipmentType(req.EquipmentType), req.SizeRange, req.DifficultyLevel,
		req.BasePrice, req.Description, req.ImageURL); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product.GetDomainEvents())
	product.ClearDomainEvents()

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	product.MarkDeleted()

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	s.publishEvents(ctx, product.GetDomainEvents())
	product.ClearDomainEvents()

	return nil
}

// Activate activates a product
func (s *ProductService) Activate(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	return s.changeActivation(ctx, productID, true)
}

// Deactivate deactivates a product
func (s *ProductService) Deactivate(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	return s.changeActivation(ctx, productID, false)
}

func (s *ProductService) changeActivation(ctx context.Context, productID uuid.UUID, active bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if active {
		err = product.Activate()
	} else {
		err = product.Deactivate()
	}
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product.GetDomainEvents())
	product.ClearDomainEvents()

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetBySKU retrieves a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter shared.Filter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}

	return responses, total, nil
}

func (s *ProductService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to hand off product events",
			zap.Int("event_count", len(events)),
			zap.Error(err))
	}
}
