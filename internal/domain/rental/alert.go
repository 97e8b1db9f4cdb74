package rental

import (
	"time"

	"github.com/google/uuid"
	"github.com/skirent/backend/internal/domain/shared"
)

// StockAlert flags equipment whose available quantity dropped to or
// below its threshold
type StockAlert struct {
	shared.BaseAggregateRoot
	EquipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Threshold   int       `gorm:"not null"`
	Message     string    `gorm:"type:varchar(500)"`
	Active      bool      `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (StockAlert) TableName() string {
	return "stock_alerts"
}

// NewStockAlert creates a new active stock alert
func NewStockAlert(equipmentID uuid.UUID, threshold int, message string) (*StockAlert, error) {
	if equipmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EQUIPMENT_ID", "Equipment ID cannot be empty")
	}
	if threshold < 0 {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Threshold cannot be negative")
	}

	return &StockAlert{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EquipmentID:       equipmentID,
		Threshold:         threshold,
		Message:           message,
		Active:            true,
	}, nil
}

// Resolve deactivates the alert once stock recovers
func (a *StockAlert) Resolve() {
	if !a.Active {
		return
	}
	a.Active = false
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}
