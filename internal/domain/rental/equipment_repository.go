package rental

import (
	"context"

	"github.com/google/uuid"
	"github.com/skirent/backend/internal/domain/shared"
)

// UpsertOutcome reports whether an upsert created a new row or updated
// an existing one
type UpsertOutcome int

const (
	UpsertCreated UpsertOutcome = iota
	UpsertUpdated
)

// EquipmentRepository defines the interface for equipment persistence
type EquipmentRepository interface {
	// FindByID finds equipment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Equipment, error)

	// FindByProductID finds equipment by the catalog product it mirrors
	FindByProductID(ctx context.Context, productID uuid.UUID) (*Equipment, error)

	// FindAll finds all equipment matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Equipment, error)

	// Save creates or updates equipment
	Save(ctx context.Context, equipment *Equipment) error

	// Upsert inserts equipment keyed by product ID. When a row for the
	// product already exists the insert is a no-op and the call returns
	// UpsertUpdated with shared.ErrAlreadyExists; the caller reloads the
	// row and applies its changes through Save
	Upsert(ctx context.Context, equipment *Equipment) (UpsertOutcome, error)

	// Delete deletes equipment
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts equipment matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
