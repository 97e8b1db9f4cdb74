package rental

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skirent/backend/internal/domain/catalog"
	"github.com/skirent/backend/internal/domain/rental"
	"github.com/skirent/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReconciliationService keeps the rental equipment projection in sync
// with catalog product lifecycle events.
//
// The service is idempotent: equipment is keyed by catalog product ID,
// so replaying a created event updates the existing row instead of
// inserting a second one, and an updated event for an unknown product
// self-heals by creating the row from the event snapshot.
type ReconciliationService struct {
	equipmentRepo  rental.EquipmentRepository
	rateCalculator *rental.RateCalculator
	logger         *zap.Logger
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	equipmentRepo rental.EquipmentRepository,
	rateCalculator *rental.RateCalculator,
	logger *zap.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		equipmentRepo:  equipmentRepo,
		rateCalculator: rateCalculator,
		logger:         logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (s *ReconciliationService) EventTypes() []string {
	return []string{
		catalog.EventTypeProductCreated,
		catalog.EventTypeProductUpdated,
		catalog.EventTypeProductDeleted,
		catalog.EventTypeProductActivated,
		catalog.EventTypeProductDeactivated,
	}
}

// Handle dispatches a product lifecycle event to the matching
// reconciliation step
func (s *ReconciliationService) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *catalog.ProductCreatedEvent:
		return s.reconcile(ctx, e.Product)
	case *catalog.ProductUpdatedEvent:
		return s.reconcile(ctx, e.Product)
	case *catalog.ProductDeletedEvent:
		return s.handleDeleted(ctx, e)
	case *catalog.ProductActivatedEvent:
		return s.handleActivation(ctx, e.ProductID, e.SKU, true)
	case *catalog.ProductDeactivatedEvent:
		return s.handleActivation(ctx, e.ProductID, e.SKU, false)
	default:
		s.logger.Error("unexpected event type",
			zap.String("event_type", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
}

// reconcile upserts the equipment row for the snapshot, keyed by
// product ID. Every product gets a row, rentable or not; the active
// flag is copied verbatim from the event and eligibility is projected
// alongside it. A uniqueness conflict on first insert is retried once
// as an update; a second failure is returned to the caller and the
// event becomes dead-letter eligible.
func (s *ReconciliationService) reconcile(ctx context.Context, snapshot catalog.ProductSnapshot) error {
	dailyRate := s.rateCalculator.ComputeDailyRate(snapshot.BasePrice, snapshot.EquipmentType)
	active := snapshot.Active

	equipment, err := s.equipmentRepo.FindByProductID(ctx, snapshot.ProductID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("find equipment for product %s: %w", snapshot.ProductID, err)
		}

		equipment, err = rental.NewEquipment(snapshot.ProductID, snapshot.SKU, snapshot.Name, snapshot.EquipmentType, dailyRate, active)
		if err != nil {
			return err
		}

		outcome, err := s.equipmentRepo.Upsert(ctx, equipment)
		if err != nil {
			// A concurrent insert can win the race between the lookup
			// and the upsert. Re-read and apply the event as an update.
			if !errors.Is(err, shared.ErrAlreadyExists) && !errors.Is(err, shared.ErrConcurrencyConflict) {
				return fmt.Errorf("insert equipment for product %s: %w", snapshot.ProductID, err)
			}

			s.logger.Warn("insert conflict, retrying as update",
				zap.String("product_id", snapshot.ProductID.String()),
				zap.Error(err),
			)
			return s.retryAsUpdate(ctx, snapshot, dailyRate, active)
		}

		s.logger.Info("equipment reconciled",
			zap.String("product_id", snapshot.ProductID.String()),
			zap.String("sku", snapshot.SKU),
			zap.Bool("created", outcome == rental.UpsertCreated),
		)
		return nil
	}

	if err := equipment.ApplyProductData(snapshot.SKU, snapshot.Name, snapshot.EquipmentType, dailyRate, active); err != nil {
		return err
	}
	if err := s.equipmentRepo.Save(ctx, equipment); err != nil {
		return fmt.Errorf("update equipment for product %s: %w", snapshot.ProductID, err)
	}

	s.logger.Info("equipment reconciled",
		zap.String("product_id", snapshot.ProductID.String()),
		zap.String("sku", snapshot.SKU),
		zap.Bool("created", false),
	)
	return nil
}

// retryAsUpdate is the single retry after an insert conflict. Any
// failure here is final.
func (s *ReconciliationService) retryAsUpdate(ctx context.Context, snapshot catalog.ProductSnapshot, dailyRate decimal.Decimal, active bool) error {
	equipment, err := s.equipmentRepo.FindByProductID(ctx, snapshot.ProductID)
	if err != nil {
		return fmt.Errorf("reload equipment after insert conflict for product %s: %w", snapshot.ProductID, err)
	}

	if err := equipment.ApplyProductData(snapshot.SKU, snapshot.Name, snapshot.EquipmentType, dailyRate, active); err != nil {
		return err
	}
	if err := s.equipmentRepo.Save(ctx, equipment); err != nil {
		return fmt.Errorf("update equipment after insert conflict for product %s: %w", snapshot.ProductID, err)
	}

	s.logger.Info("equipment reconciled after insert conflict",
		zap.String("product_id", snapshot.ProductID.String()),
		zap.String("sku", snapshot.SKU),
	)
	return nil
}

func (s *ReconciliationService) handleDeleted(ctx context.Context, event *catalog.ProductDeletedEvent) error {
	equipment, err := s.equipmentRepo.FindByProductID(ctx, event.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Info("no equipment for deleted product",
				zap.String("product_id", event.ProductID.String()),
				zap.String("sku", event.SKU),
			)
			return nil
		}
		return err
	}

	// Deletion retires the equipment but keeps the row so rental
	// history stays intact.
	equipment.Deactivate()
	if err := s.equipmentRepo.Save(ctx, equipment); err != nil {
		return fmt.Errorf("deactivate equipment for deleted product %s: %w", event.ProductID, err)
	}

	s.logger.Info("equipment retired for deleted product",
		zap.String("product_id", event.ProductID.String()),
		zap.String("sku", event.SKU),
	)
	return nil
}

func (s *ReconciliationService) handleActivation(ctx context.Context, productID uuid.UUID, sku string, active bool) error {
	equipment, err := s.equipmentRepo.FindByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Activation events carry no snapshot, so there is nothing
			// to build a placeholder from.
			s.logger.Error("activation event for unknown equipment",
				zap.String("product_id", productID.String()),
				zap.String("sku", sku),
				zap.Bool("active", active),
			)
			return shared.ErrNoSuchEquipment
		}
		return err
	}

	if active {
		equipment.Activate()
	} else {
		equipment.Deactivate()
	}

	if err := s.equipmentRepo.Save(ctx, equipment); err != nil {
		return fmt.Errorf("save equipment activation for product %s: %w", productID, err)
	}

	s.logger.Info("equipment activation updated",
		zap.String("product_id", productID.String()),
		zap.Bool("active", active),
	)
	return nil
}

// Ensure ReconciliationService implements shared.EventHandler
var _ shared.EventHandler = (*ReconciliationService)(nil)
