package rental

import (
	"time"

	"github.com/google/uuid"
	"github.com/skirent/backend/internal/domain/shared"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Reservation holds equipment for a customer over a date range
type Reservation struct {
	shared.BaseAggregateRoot
	EquipmentID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	CustomerName string            `gorm:"type:varchar(200);not null"`
	Quantity     int               `gorm:"not null;default:1"`
	StartDate    time.Time         `gorm:"not null"`
	EndDate      time.Time         `gorm:"not null"`
	Status       ReservationStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Reservation) TableName() string {
	return "reservations"
}

// NewReservation creates a new active reservation
func NewReservation(equipmentID uuid.UUID, customerName string, quantity int, startDate, endDate time.Time) (*Reservation, error) {
	if equipmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EQUIPMENT_ID", "Equipment ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !endDate.After(startDate) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "End date must be after start date")
	}

	return &Reservation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EquipmentID:       equipmentID,
		CustomerName:      customerName,
		Quantity:          quantity,
		StartDate:         startDate,
		EndDate:           endDate,
		Status:            ReservationStatusActive,
	}, nil
}

// Complete marks the reservation as fulfilled
func (r *Reservation) Complete() error {
	if r.Status != ReservationStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active reservations can be completed")
	}
	r.Status = ReservationStatusCompleted
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Cancel cancels the reservation
func (r *Reservation) Cancel() error {
	if r.Status != ReservationStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active reservations can be cancelled")
	}
	r.Status = ReservationStatusCancelled
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// IsActive returns true while the reservation still holds stock
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationStatusActive
}
