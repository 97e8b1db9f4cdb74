package rental

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skirent/backend/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEquipment(t *testing.T) {
	productID := uuid.New()

	t.Run("creates equipment with valid inputs", func(t *testing.T) {
		eq, err := NewEquipment(productID, "SKI-001", "Atomic Bent 100", catalog.EquipmentTypeSkiBoard, decimal.NewFromInt(6000), true)
		require.NoError(t, err)
		require.NotNil(t, eq)

		assert.Equal(t, productID, eq.ProductID)
		assert.Equal(t, "SKI-001", eq.SKU)
		assert.True(t, eq.DailyRate.Equal(decimal.NewFromInt(6000)))
		assert.True(t, eq.RentalEligible)
		assert.True(t, eq.Active)
		assert.Zero(t, eq.AvailableQuantity)
		assert.Zero(t, eq.ReservedQuantity)
	})

	t.Run("consumable types are not rental eligible", func(t *testing.T) {
		eq, err := NewEquipment(productID, "WAX-001", "Swix F4", catalog.EquipmentTypeWax, decimal.NewFromInt(500), true)
		require.NoError(t, err)

		assert.False(t, eq.RentalEligible)
		assert.True(t, eq.Active)
	})

	t.Run("fails with nil product ID", func(t *testing.T) {
		_, err := NewEquipment(uuid.Nil, "SKI-001", "Atomic Bent 100", catalog.EquipmentTypeSkiBoard, decimal.NewFromInt(6000), true)
		require.Error(t, err)
	})

	t.Run("fails with negative daily rate", func(t *testing.T) {
		_, err := NewEquipment(productID, "SKI-001", "Atomic Bent 100", catalog.EquipmentTypeSkiBoard, decimal.NewFromInt(-1), true)
		require.Error(t, err)
	})
}

func TestEquipmentApplyProductData(t *testing.T) {
	eq, err := NewEquipment(uuid.New(), "SKI-001", "Atomic Bent 100", catalog.EquipmentTypeSkiBoard, decimal.NewFromInt(6000), true)
	require.NoError(t, err)

	err = eq.ApplyProductData("SKI-001", "Atomic Bent 110", catalog.EquipmentTypeSkiBoard, decimal.NewFromInt(6600), false)
	require.NoError(t, err)

	assert.Equal(t, "Atomic Bent 110", eq.Name)
	assert.True(t, eq.DailyRate.Equal(decimal.NewFromInt(6600)))
	assert.False(t, eq.Active)
	assert.Equal(t, 2, eq.GetVersion())

	err = eq.ApplyProductData("SKI-001", "Atomic Bent 110", catalog.EquipmentTypeTuning, decimal.NewFromInt(660), false)
	require.NoError(t, err)
	assert.False(t, eq.RentalEligible, "eligibility follows the new equipment type")
}

func TestEquipmentActivation(t *testing.T) {
	eq, err := NewEquipment(uuid.New(), "SKI-001", "Atomic Bent 100", catalog.EquipmentTypeSkiBoard, decimal.NewFromInt(6000), true)
	require.NoError(t, err)
	require.NoError(t, eq.SetQuantities(4, 2))

	eq.Deactivate()
	assert.False(t, eq.Active)
	assert.Equal(t, 4, eq.AvailableQuantity, "deactivation keeps quantities")
	assert.Equal(t, 2, eq.ReservedQuantity)

	eq.Activate()
	assert.True(t, eq.Active)

	version := eq.GetVersion()
	eq.Activate()
	assert.Equal(t, version, eq.GetVersion(), "activating active equipment is a no-op")
}

func TestEquipmentInventoryValue(t *testing.T) {
	eq, err := NewEquipment(uuid.New(), "SKI-001", "Atomic Bent 100", catalog.EquipmentTypeSkiBoard, decimal.NewFromInt(6000), true)
	require.NoError(t, err)
	require.NoError(t, eq.SetQuantities(3, 0))

	assert.True(t, eq.InventoryValue().Equal(decimal.NewFromInt(18000)))
	assert.False(t, eq.IsOutOfStock())

	require.NoError(t, eq.SetQuantities(0, 3))
	assert.True(t, eq.IsOutOfStock())
	assert.True(t, eq.InventoryValue().IsZero())
}
