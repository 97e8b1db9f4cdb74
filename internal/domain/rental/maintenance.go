package rental

import (
	"time"

	"github.com/google/uuid"
	"github.com/skirent/backend/internal/domain/shared"
)

// MaintenanceRecord schedules service work (edge sharpening, waxing,
// binding checks) for a piece of equipment
type MaintenanceRecord struct {
	shared.BaseAggregateRoot
	EquipmentID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Description string     `gorm:"type:varchar(500)"`
	DueDate     time.Time  `gorm:"not null;index"`
	CompletedAt *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (MaintenanceRecord) TableName() string {
	return "maintenance_records"
}

// NewMaintenanceRecord creates a new scheduled maintenance record
func NewMaintenanceRecord(equipmentID uuid.UUID, description string, dueDate time.Time) (*MaintenanceRecord, error) {
	if equipmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EQUIPMENT_ID", "Equipment ID cannot be empty")
	}

	return &MaintenanceRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EquipmentID:       equipmentID,
		Description:       description,
		DueDate:           dueDate,
	}, nil
}

// Complete marks the maintenance as done
func (m *MaintenanceRecord) Complete() error {
	if m.CompletedAt != nil {
		return shared.NewDomainError("ALREADY_COMPLETED", "Maintenance is already completed")
	}
	now := time.Now()
	m.CompletedAt = &now
	m.UpdatedAt = now
	m.IncrementVersion()
	return nil
}

// IsOverdue returns true when the due date passed without completion
func (m *MaintenanceRecord) IsOverdue(now time.Time) bool {
	return m.CompletedAt == nil && m.DueDate.Before(now)
}
