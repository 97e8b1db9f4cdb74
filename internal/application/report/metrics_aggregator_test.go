package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockMetricsRepository is a mock implementation of MetricsRepository
type MockMetricsRepository struct {
	mock.Mock
}

func (m *MockMetricsRepository) CountEquipment(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMetricsRepository) CountAvailableEquipment(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMetricsRepository) CountOutOfStock(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMetricsRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMetricsRepository) CountActiveAlerts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMetricsRepository) CountActiveReservations(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMetricsRepository) CountOverdueMaintenance(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMetricsRepository) TotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockMetricsRepository) AvailableInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func TestMetricsAggregatorCollect(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles all metrics", func(t *testing.T) {
		repo := new(MockMetricsRepository)
		aggregator := NewMetricsAggregator(repo, 5, zap.NewNop())

		repo.On("CountEquipment", ctx).Return(int64(42), nil)
		repo.On("CountAvailableEquipment", ctx).Return(int64(30), nil)
		repo.On("CountOutOfStock", ctx).Return(int64(12), nil)
		repo.On("CountLowStock", ctx, 5).Return(int64(7), nil)
		repo.On("CountActiveAlerts", ctx).Return(int64(3), nil)
		repo.On("CountActiveReservations", ctx).Return(int64(9), nil)
		repo.On("CountOverdueMaintenance", ctx, mock.AnythingOfType("time.Time")).Return(int64(2), nil)
		repo.On("TotalInventoryValue", ctx).Return(decimal.NewFromInt(250000), nil)
		repo.On("AvailableInventoryValue", ctx).Return(decimal.NewFromInt(180000), nil)

		metrics := aggregator.Collect(ctx)

		assert.Equal(t, int64(42), metrics.TotalEquipmentCount)
		assert.Equal(t, int64(30), metrics.AvailableEquipmentCount)
		assert.Equal(t, int64(12), metrics.OutOfStockCount)
		assert.Equal(t, int64(7), metrics.LowStockCount)
		assert.Equal(t, int64(3), metrics.ActiveAlertCount)
		assert.Equal(t, int64(9), metrics.ActiveReservationCount)
		assert.Equal(t, int64(2), metrics.OverdueMaintenanceCount)
		assert.True(t, metrics.TotalInventoryValue.Equal(decimal.NewFromInt(250000)))
		assert.True(t, metrics.AvailableInventoryValue.Equal(decimal.NewFromInt(180000)))
	})

	t.Run("a failing query reports zero without failing the rest", func(t *testing.T) {
		repo := new(MockMetricsRepository)
		aggregator := NewMetricsAggregator(repo, 5, zap.NewNop())

		repo.On("CountEquipment", ctx).Return(int64(0), errors.New("relation does not exist"))
		repo.On("CountAvailableEquipment", ctx).Return(int64(30), nil)
		repo.On("CountOutOfStock", ctx).Return(int64(12), nil)
		repo.On("CountLowStock", ctx, 5).Return(int64(7), nil)
		repo.On("CountActiveAlerts", ctx).Return(int64(3), nil)
		repo.On("CountActiveReservations", ctx).Return(int64(9), nil)
		repo.On("CountOverdueMaintenance", ctx, mock.AnythingOfType("time.Time")).Return(int64(2), nil)
		repo.On("TotalInventoryValue", ctx).Return(decimal.Zero, errors.New("relation does not exist"))
		repo.On("AvailableInventoryValue", ctx).Return(decimal.NewFromInt(180000), nil)

		metrics := aggregator.Collect(ctx)

		assert.Equal(t, int64(0), metrics.TotalEquipmentCount)
		assert.True(t, metrics.TotalInventoryValue.IsZero())
		assert.Equal(t, int64(30), metrics.AvailableEquipmentCount)
		assert.True(t, metrics.AvailableInventoryValue.Equal(decimal.NewFromInt(180000)))
	})

	t.Run("every metric reports its neutral default when the store is down", func(t *testing.T) {
		repo := new(MockMetricsRepository)
		aggregator := NewMetricsAggregator(repo, 5, zap.NewNop())

		storeDown := errors.New("connection refused")
		repo.On("CountEquipment", ctx).Return(int64(0), storeDown)
		repo.On("CountAvailableEquipment", ctx).Return(int64(0), storeDown)
		repo.On("CountOutOfStock", ctx).Return(int64(0), storeDown)
		repo.On("CountLowStock", ctx, 5).Return(int64(0), storeDown)
		repo.On("CountActiveAlerts", ctx).Return(int64(0), storeDown)
		repo.On("CountActiveReservations", ctx).Return(int64(0), storeDown)
		repo.On("CountOverdueMaintenance", ctx, mock.AnythingOfType("time.Time")).Return(int64(0), storeDown)
		repo.On("TotalInventoryValue", ctx).Return(decimal.Zero, storeDown)
		repo.On("AvailableInventoryValue", ctx).Return(decimal.Zero, storeDown)

		metrics := aggregator.Collect(ctx)

		assert.Zero(t, metrics.TotalEquipmentCount)
		assert.Zero(t, metrics.AvailableEquipmentCount)
		assert.Zero(t, metrics.OutOfStockCount)
		assert.Zero(t, metrics.LowStockCount)
		assert.Zero(t, metrics.ActiveAlertCount)
		assert.Zero(t, metrics.ActiveReservationCount)
		assert.Zero(t, metrics.OverdueMaintenanceCount)
		assert.True(t, metrics.TotalInventoryValue.IsZero())
		assert.True(t, metrics.AvailableInventoryValue.IsZero())
		repo.AssertExpectations(t)
	})

	t.Run("non-positive threshold falls back to default", func(t *testing.T) {
		repo := new(MockMetricsRepository)
		aggregator := NewMetricsAggregator(repo, 0, zap.NewNop())
		assert.Equal(t, 5, aggregator.LowStockThreshold())
	})
}
