package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skirent/backend/internal/domain/catalog"
	"github.com/skirent/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func newTestService(repo *MockProductRepository, publisher *MockEventPublisher) *ProductService {
	return NewProductService(repo, publisher, zap.NewNop())
}

func TestProductServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product and publishes created event", func(t *testing.T) {
		repo := new(MockProductRepository)
		publisher := new(MockEventPublisher)
		service := newTestService(repo, publisher)

		repo.On("ExistsBySKU", ctx, "SKI-001").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		var published []shared.DomainEvent
		publisher.On("Publish", ctx, mock.Anything).Run(func(args mock.Arguments) {
			published = args.Get(1).([]shared.DomainEvent)
		}).Return(nil)

		resp, err := service.Create(ctx, CreateProductRequest{
			SKU:           "SKI-001",
			Name:          "Atomic Bent 100",
			CategoryName:  "Skis",
			BrandName:     "Atomic",
			EquipmentType: "SKI_BOARD",
			BasePrice:     decimal.NewFromInt(50000),
		})
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "SKI-001", resp.SKU)
		assert.True(t, resp.Active)

		require.Len(t, published, 1)
		created, ok := published[0].(*catalog.ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, "Skis", created.Product.CategoryName, "created event carries the full initial state")

		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("rejects duplicate SKU", func(t *testing.T) {
		repo := new(MockProductRepository)
		publisher := new(MockEventPublisher)
		service := newTestService(repo, publisher)

		repo.On("ExistsBySKU", ctx, "SKI-001").Return(true, nil)

		_, err := service.Create(ctx, CreateProductRequest{
			SKU:           "SKI-001",
			Name:          "Atomic Bent 100",
			EquipmentType: "SKI_BOARD",
			BasePrice:     decimal.NewFromInt(50000),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("create succeeds even when publish fails", func(t *testing.T) {
		repo := new(MockProductRepository)
		publisher := new(MockEventPublisher)
		service := newTestService(repo, publisher)

		repo.On("ExistsBySKU", ctx, "SKI-001").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker unreachable"))

		resp, err := service.Create(ctx, CreateProductRequest{
			SKU:           "SKI-001",
			Name:          "Atomic Bent 100",
			EquipmentType: "SKI_BOARD",
			BasePrice:     decimal.NewFromInt(50000),
		})
		require.NoError(t, err)
		require.NotNil(t, resp)
	})
}

func TestProductServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("updates product and publishes updated event", func(t *testing.T) {
		repo := new(MockProductRepository)
		publisher := new(MockEventPublisher)
		service := newTestService(repo, publisher)

		product, err := catalog.NewProduct("SKI-001", "Atomic Bent 100", catalog.EquipmentTypeSkiBoard, decimal.NewFromInt(50000))
		require.NoError(t, err)
		product.ClearDomainEvents()

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Save", ctx, product).Return(nil)

		var published []shared.DomainEvent
		publisher.On("Publish", ctx, mock.Anything).Run(func(args mock.Arguments) {
			published = args.Get(1).([]shared.DomainEvent)
		}).Return(nil)

		resp, err := service.Update(ctx, product.ID, UpdateProductRequest{
			Name:          "Atomic Bent 110",
			EquipmentType: "SKI_BOARD",
			BasePrice:     decimal.NewFromInt(55000),
		})
		require.NoError(t, err)
		assert.Equal(t, "Atomic Bent 110", resp.Name)

		require.Len(t, published, 1)
		updated, ok := published[0].(*catalog.ProductUpdatedEvent)
		require.True(t, ok)
		assert.Equal(t, "Atomic Bent 100", updated.OldProduct.Name)
		assert.Equal(t, "Atomic Bent 110", updated.Product.Name)
	})

	t.Run("returns error when product missing", func(t *testing.T) {
		repo := new(MockProductRepository)
		publisher := new(MockEventPublisher)
		service := newTestService(repo, publisher)

		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Update(ctx, id, UpdateProductRequest{
			Name:          "Atomic Bent 110",
			EquipmentType: "SKI_BOARD",
			BasePrice:     decimal.NewFromInt(55000),
		})
		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductServiceDelete(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProductRepository)
	publisher := new(MockEventPublisher)
	service := newTestService(repo, publisher)

	product, err := catalog.NewProduct("POLE-001", "Leki Neolite", catalog.EquipmentTypePole, decimal.NewFromInt(8000))
	require.NoError(t, err)
	product.ClearDomainEvents()

	repo.On("FindByID", ctx, product.ID).Return(product, nil)
	repo.On("Delete", ctx, product.ID).Return(nil)

	var published []shared.DomainEvent
	publisher.On("Publish", ctx, mock.Anything).Run(func(args mock.Arguments) {
		published = args.Get(1).([]shared.DomainEvent)
	}).Return(nil)

	require.NoError(t, service.Delete(ctx, product.ID))

	require.Len(t, published, 1)
	deleted, ok := published[0].(*catalog.ProductDeletedEvent)
	require.True(t, ok)
	assert.Equal(t, product.ID, deleted.ProductID)
}

func TestProductServiceActivation(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivate publishes deactivated event", func(t *testing.T) {
		repo := new(MockProductRepository)
		publisher := new(MockEventPublisher)
		service := newTestService(repo, publisher)

		product, err := catalog.NewProduct("HLM-001", "Giro Ledge", catalog.EquipmentTypeHelmet, decimal.NewFromInt(15000))
		require.NoError(t, err)
		product.ClearDomainEvents()

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Save", ctx, product).Return(nil)

		var published []shared.DomainEvent
		publisher.On("Publish", ctx, mock.Anything).Run(func(args mock.Arguments) {
			published = args.Get(1).([]shared.DomainEvent)
		}).Return(nil)

		resp, err := service.Deactivate(ctx, product.ID)
		require.NoError(t, err)
		assert.False(t, resp.Active)

		require.Len(t, published, 1)
		assert.Equal(t, catalog.EventTypeProductDeactivated, published[0].EventType())
	})

	t.Run("activate on active product fails without saving", func(t *testing.T) {
		repo := new(MockProductRepository)
		publisher := new(MockEventPublisher)
		service := newTestService(repo, publisher)

		product, err := catalog.NewProduct("HLM-001", "Giro Ledge", catalog.EquipmentTypeHelmet, decimal.NewFromInt(15000))
		require.NoError(t, err)
		product.ClearDomainEvents()

		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err = service.Activate(ctx, product.ID)
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
