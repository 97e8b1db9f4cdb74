package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skirent/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormProductRepository(gormDB), mock, mockDB
}

func productRows(id uuid.UUID, sku, name, equipmentType string, basePrice decimal.Decimal, active bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "sku", "name", "equipment_type", "base_price", "rental_available", "active"}).
		AddRow(id, sku, name, equipmentType, basePrice, true, active)
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(productRows(productID, "SKI-001", "Rossignol Hero", "SKI_BOARD", decimal.NewFromInt(50000), true))

		product, err := repo.FindByID(context.Background(), productID)

		assert.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, "SKI-001", product.SKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByID(context.Background(), productID)

		assert.Nil(t, product)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindBySKU(t *testing.T) {
	t.Run("uppercases the SKU before querying", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE sku = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("BOOT-101", 1).
			WillReturnRows(productRows(productID, "BOOT-101", "Salomon QST", "BOOT", decimal.NewFromInt(40000), true))

		product, err := repo.FindBySKU(context.Background(), "boot-101")

		assert.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "BOOT-101", product.SKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Delete(t *testing.T) {
	t.Run("deletes existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), productID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), productID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_ExistsBySKU(t *testing.T) {
	t.Run("reports existing SKU", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE sku = \$1`).
			WithArgs("SKI-001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsBySKU(context.Background(), "ski-001")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports missing SKU", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE sku = \$1`).
			WithArgs("POLE-999").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsBySKU(context.Background(), "POLE-999")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindActive(t *testing.T) {
	t.Run("filters to active products with pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE active = \$1 ORDER BY created_at DESC LIMIT .*`).
			WithArgs(true, 20).
			WillReturnRows(productRows(productID, "HELM-001", "Giro Ledge", "HELMET", decimal.NewFromInt(20000), true))

		products, err := repo.FindActive(context.Background(), shared.DefaultFilter())

		assert.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "HELM-001", products[0].SKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
