package order

import (
	"context"
	"fmt"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/google/uuid"
	"orderflow/internal/entities"
	"orderflow/internal/pkg/access_policy"
	"orderflow/internal/pkg/order_filter"
	"orderflow/internal/pkg/status_machine"
	"orderflow/pkg/logger"
)

type Service struct {
	repository Repository
	history    HistoryRepository
	publisher  EventPublisher
	txManager  TxManager
	log        serviceLogger
	now        func() time.Time
}

func New(
	repository Repository,
	history HistoryRepository,
	publisher EventPublisher,
	txManager TxManager,
	log serviceLogger,
) *Service {
	return &Service{
		repository: repository,
		history:    history,
		publisher:  publisher,
		txManager:  txManager,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) ListOrdersForCategory(
	ctx context.Context,
	actor entities.Actor,
	category entities.OrderStatus,
	query string,
) ([]entities.Order, error) {
	if !access_policy.CanViewAll(actor.Role) {
		return nil, newError(ErrForbidden, "", "", "role may not list orders by category")
	}
	if !isKnownCategory(category) {
		return nil, newError(ErrValidation, "", "", fmt.Sprintf("unknown order status %q", category))
	}

	orders, err := s.repository.ListByStatus(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list orders by status: %w", err)
	}

	return order_filter.Filter(orders, query), nil
}

func (s *Service) ListOrdersForVendor(
	ctx context.Context,
	actor entities.Actor,
	vendorID string,
	query string,
) ([]entities.Order, error) {
	if !isValidVendorID(vendorID) {
		return nil, newError(ErrValidation, "", "", "vendor id is required")
	}
	if !canViewVendor(actor, vendorID) {
		return nil, newError(ErrForbidden, "", vendorID, "vendor orders are visible to the vendor and staff only")
	}

	orders, err := s.repository.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list orders by vendor: %w", err)
	}

	views := make([]entities.Order, 0, len(orders))
	for i := range orders {
		views = append(views, *vendorView(&orders[i], vendorID))
	}
	return order_filter.Filter(views, query), nil
}

func (s *Service) GetOrder(ctx context.Context, actor entities.Actor, orderID string) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, newError(ErrValidation, "", "", "order id is required")
	}
	if !isKnownRole(actor.Role) {
		return nil, newError(ErrForbidden, orderID, "", "unknown role")
	}

	order, err := s.repository.GetByID(ctx, orderID)
	if err != nil {
		return nil, wrapError(fmt.Errorf("get order: %w", err), orderID, "")
	}

	if actor.Role == entities.RoleVendor {
		if !order.HasVendor(actor.ID) {
			return nil, newError(ErrForbidden, orderID, actor.ID, "vendor has no items in order")
		}
		return vendorView(order, actor.ID), nil
	}
	return order, nil
}

// Transition moves the targeted items to req.Status under the order lock.
// Staff requests report a missing order before any policy error. Vendor
// requests are checked against the policy first and never learn whether a
// foreign order exists.
func (s *Service) Transition(ctx context.Context, req entities.TransitionRequest) (*entities.Order, error) {
	order, applied, err := s.transition(ctx, req)

	result := "applied"
	switch {
	case err != nil:
		result = string(KindOf(err))
	case !applied:
		result = "noop"
	}
	TransitionsTotal.WithLabelValues(req.Actor.Role.String(), req.Status.String(), result).Inc()

	return order, err
}

func (s *Service) transition(ctx context.Context, req entities.TransitionRequest) (*entities.Order, bool, error) {
	vendorID := pointer.Get(req.VendorID)

	if !isValidOrderID(req.OrderID) {
		return nil, false, newError(ErrValidation, "", vendorID, "order id is required")
	}
	if req.VendorID != nil && !isValidVendorID(vendorID) {
		return nil, false, newError(ErrValidation, req.OrderID, "", "vendor id is required")
	}
	if !isKnownRole(req.Actor.Role) {
		return nil, false, newError(ErrValidation, req.OrderID, vendorID, fmt.Sprintf("unknown role %q", req.Actor.Role))
	}
	if !isKnownItemStatus(req.Status) {
		return nil, false, newError(ErrValidation, req.OrderID, vendorID, fmt.Sprintf("unknown status %q", req.Status))
	}

	// вендору отказываем до чтения заказа, чтобы он не узнавал о чужих заказах
	if req.Actor.Role == entities.RoleVendor {
		if err := checkRequest(req, vendorID); err != nil {
			return nil, false, err
		}
	}

	var (
		updated *entities.Order
		applied []entities.ItemTransition
		entry   entities.HistoryEntry
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// Do может перезапустить транзакцию, итог прошлой попытки откатился
		updated, applied, entry = nil, nil, entities.HistoryEntry{}

		current, err := s.repository.GetByIDForUpdate(ctx, req.OrderID)
		if err != nil {
			return fmt.Errorf("get order for update: %w", err)
		}

		// персонал сначала узнает, что заказа нет, затем получает Authorization
		if req.Actor.Role != entities.RoleVendor {
			if err := checkRequest(req, vendorID); err != nil {
				return err
			}
		}

		if req.VendorID != nil && !current.HasVendor(vendorID) {
			if req.Actor.Role == entities.RoleVendor {
				return newError(ErrForbidden, req.OrderID, vendorID, "vendor has no items in order")
			}
			return newError(ErrConflict, req.OrderID, vendorID, "vendor has no items in order")
		}

		transitions, err := status_machine.Plan(current.Items, req.VendorID, req.Status)
		if err != nil {
			return newError(ErrConflict, req.OrderID, vendorID, err.Error())
		}
		for _, tr := range transitions {
			if !access_policy.IsAllowed(req.Actor.Role, access_policy.Transition{From: tr.From, To: tr.To}) {
				return newError(ErrForbidden, req.OrderID, tr.VendorID,
					fmt.Sprintf("role %s may not move item from %s to %s", req.Actor.Role, tr.From, tr.To))
			}
		}

		if len(transitions) == 0 {
			updated = current
			return nil
		}

		next, err := s.repository.ApplyItemStatusChange(ctx, entities.ItemStatusChange{
			Order:       current,
			Transitions: transitions,
		})
		if err != nil {
			return fmt.Errorf("apply item status change: %w", err)
		}

		record := entities.HistoryEntry{
			ID:               uuid.NewString(),
			OrderID:          req.OrderID,
			VendorID:         req.VendorID,
			Actor:            req.Actor,
			ItemStatus:       req.Status,
			ItemFromStatuses: entities.ItemFromStatuses(transitions),
			FromStatus:       current.Status,
			ToStatus:         next.Status,
			ItemsAffected:    len(transitions),
			CreatedAt:        s.now(),
		}
		if err := s.history.Append(ctx, record); err != nil {
			return fmt.Errorf("append history entry: %w", err)
		}

		updated, applied, entry = next, transitions, record
		return nil
	})
	if err != nil {
		return nil, false, wrapError(err, req.OrderID, vendorID)
	}

	if len(applied) > 0 {
		s.publish(ctx, entry)
	}

	if req.Actor.Role == entities.RoleVendor {
		return vendorView(updated, req.Actor.ID), len(applied) > 0, nil
	}
	return updated, len(applied) > 0, nil
}

// checkRequest applies the role policy and vendor ownership, neither needs
// the order state.
func checkRequest(req entities.TransitionRequest, vendorID string) error {
	if !access_policy.CanRequest(req.Actor.Role, req.Status) {
		return newError(ErrForbidden, req.OrderID, vendorID,
			fmt.Sprintf("role %s may not set status %s", req.Actor.Role, req.Status))
	}
	if req.Actor.Role == entities.RoleVendor && (req.VendorID == nil || vendorID != req.Actor.ID) {
		return newError(ErrForbidden, req.OrderID, vendorID, "vendor may change only its own items")
	}
	return nil
}

// publish runs after commit, a failure here never rolls the transition back.
func (s *Service) publish(ctx context.Context, entry entities.HistoryEntry) {
	event := entities.StatusChangedEvent{
		EventID:          entry.ID,
		OrderID:          entry.OrderID,
		VendorID:         entry.VendorID,
		Actor:            entry.Actor,
		ItemStatus:       entry.ItemStatus,
		ItemFromStatuses: entry.ItemFromStatuses,
		FromStatus:       entry.FromStatus,
		ToStatus:         entry.ToStatus,
		OccurredAt:       entry.CreatedAt,
	}

	if err := s.publisher.PublishStatusChanged(ctx, event); err != nil {
		StatusEventPublishFailuresTotal.Inc()
		s.log.With(
			logger.NewField("order_id", entry.OrderID),
			logger.NewField("event_id", entry.ID),
			logger.NewField("error", err),
		).Warn("publish order status changed event")
	}
}

func (s *Service) GetHistory(ctx context.Context, actor entities.Actor, orderID string) ([]entities.HistoryEntry, error) {
	if !isValidOrderID(orderID) {
		return nil, newError(ErrValidation, "", "", "order id is required")
	}
	if !access_policy.CanViewAll(actor.Role) {
		return nil, newError(ErrForbidden, orderID, "", "role may not read order history")
	}

	if _, err := s.repository.GetByID(ctx, orderID); err != nil {
		return nil, wrapError(fmt.Errorf("get order: %w", err), orderID, "")
	}

	entries, err := s.history.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

func (s *Service) GetCategorySummary(ctx context.Context, actor entities.Actor) ([]entities.CategoryCount, error) {
	if !access_policy.CanViewAll(actor.Role) {
		return nil, newError(ErrForbidden, "", "", "role may not read order summary")
	}

	counts, err := s.repository.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}

	summary := make([]entities.CategoryCount, 0, len(entities.OrderCategories))
	for _, category := range entities.OrderCategories {
		summary = append(summary, entities.CategoryCount{
			Status: category,
			Count:  counts[category],
		})
	}
	return summary, nil
}

func (s *Service) CreateOrder(ctx context.Context, orderCreate entities.OrderCreate) (*entities.Order, error) {
	if detail := validateOrderCreate(orderCreate); detail != "" {
		return nil, newError(ErrValidation, orderCreate.ID, "", detail)
	}

	var order *entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		created, err := s.repository.Create(ctx, orderCreate)
		if err != nil {
			return err
		}
		order = created
		return nil
	})
	if err != nil {
		return nil, wrapError(fmt.Errorf("create order: %w", err), orderCreate.ID, "")
	}
	return order, nil
}

func canViewVendor(actor entities.Actor, vendorID string) bool {
	if access_policy.CanViewAll(actor.Role) {
		return true
	}
	return actor.Role == entities.RoleVendor && actor.ID == vendorID
}

// vendorView keeps only the vendor's items and derives status over them.
func vendorView(order *entities.Order, vendorID string) *entities.Order {
	view := *order
	view.Items = order.VendorItems(vendorID)
	view.Status = status_machine.Derive(view.Items)
	return &view
}
