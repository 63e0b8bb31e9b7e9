package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/adiallo/orderflow/internal/core/domain"
	"github.com/adiallo/orderflow/internal/core/port"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// Config is the explicit engine configuration: no ambient globals.
type Config struct {
	// OrderTimeLimitDays feeds expireAt; expiry itself is enforced by the
	// storage layer, never by the engine.
	OrderTimeLimitDays int
	Statuses           domain.StatusSet
	LocalStatuses      domain.StatusSet
}

type Service struct {
	repo   port.Repository
	carts  port.CartProvider
	codes  port.CodeGenerator
	conf   Config
	logger *zap.Logger
}

func NewService(repo port.Repository, carts port.CartProvider, codes port.CodeGenerator,
	conf Config, logger *zap.Logger) (*Service, error) {
	if conf.OrderTimeLimitDays <= 0 {
		conf.OrderTimeLimitDays = 1
	}
	if len(conf.Statuses) == 0 {
		conf.Statuses = domain.DefaultStatuses()
	}
	if len(conf.LocalStatuses) == 0 {
		conf.LocalStatuses = domain.DefaultLocalStatuses()
	}
	return &Service{
		repo:   repo,
		carts:  carts,
		codes:  codes,
		conf:   conf,
		logger: logger,
	}, nil
}

func (s *Service) CreateOrder(ctx context.Context, userID string, req port.CreateOrderRequest) (*domain.Order, error) {
	content, err := s.carts.GetContent(ctx, userID)
	if err != nil {
		s.logger.Error("Get cart content", zap.Error(err))
		return nil, domain.ErrInternal
	}

	kind := req.SourceKind
	if kind == "" {
		kind = domain.SourceKindCart
	}
	source := content.BySourceKind(kind)
	if source == nil || source.ID == "" {
		return nil, domain.ErrCartNotFound
	}
	if source.Shipping == nil {
		return nil, domain.ErrShippingRequired
	}

	profile, err := s.repo.ReadProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, err
		}
		s.logger.Error("Read profile", zap.Error(err))
		return nil, domain.ErrInternal
	}

	payment, err := req.Payment.Record()
	if err != nil {
		return nil, err
	}

	amountPaid := decimal.Zero
	var payments []domain.PaymentRecord
	if payment.Method == domain.PaymentMethodMomo {
		// instant mobile-money payment counts immediately; in-person
		// payments wait for out-of-band confirmation
		amountPaid = payment.Amount
		payments = []domain.PaymentRecord{payment}
	}

	totalAmount := domain.NormalizeAmount(source.TotalAmount)
	status := domain.DeriveStatus(amountPaid)

	now := time.Now()
	order := &domain.Order{
		ID:           uuid.NewString(),
		UserID:       userID,
		Type:         kind.Label(),
		Contents:     snapshotContents(source.Contents),
		Shipping:     snapshotShipping(*source.Shipping),
		Cart:         snapshotCart(source),
		CustomerData: snapshotCustomer(profile),
		TotalAmount:  totalAmount,
		AmountPaid:   amountPaid,
		Payments:     payments,
		Status:       status,
		Count:        domain.NormalizeCount(source.Count),
		CreatedBy:    userID,
		UpdatedBy:    userID,
		ExpireAt:     now.Add(time.Duration(s.conf.OrderTimeLimitDays) * 24 * time.Hour),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if status.ID == domain.StatusProcessing {
		order.CompletedDate = &now
	}

	events := []domain.Event{
		domain.NewEvent(domain.EventOrderCreated, order.ID, orderEventPayload(order)),
	}

	newOrder, err := s.repo.CreateOrder(ctx, order, events)
	if err != nil {
		s.logger.Error("Create order", zap.Error(err))
		return nil, err
	}

	// ownership of the source transferred into the snapshot
	if err := s.carts.Remove(ctx, source); err != nil {
		s.logger.Error("Remove source cart", zap.String("cart", source.ID), zap.Error(err))
	}

	if payment.Method == domain.PaymentMethodLocal {
		s.performGeneratePaymentCode(ctx, &payment, newOrder, userID)
	}

	return newOrder, nil
}

// performGeneratePaymentCode attempts to obtain an out-of-band payment code.
// Failure is observed through logging only, the surrounding flow proceeds as
// if the call had no effect.
func (s *Service) performGeneratePaymentCode(ctx context.Context, payment *domain.PaymentRecord,
	order *domain.Order, userID string) {
	if payment.Method != domain.PaymentMethodLocal {
		return
	}
	if _, err := s.codes.Generate(ctx, payment, order, userID); err != nil {
		s.logger.Error("Generate payment code",
			zap.String("order", order.ID), zap.Error(err))
	}
}

func (s *Service) ApplyInstallmentPayment(ctx context.Context, orderID string, userID string,
	input domain.PaymentInput) (*domain.Order, error) {
	if input.Empty() {
		return nil, domain.ErrPaymentRequired
	}
	if input.Amount == nil {
		return nil, domain.ErrPaymentAmountRequired
	}
	if input.Method == "" {
		return nil, domain.ErrPaymentMethodRequired
	}

	payment, err := input.Record()
	if err != nil {
		return nil, err
	}

	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.performGeneratePaymentCode(ctx, &payment, order, userID)

	return s.applyAndSave(ctx, order, payment, userID)
}

// MergeQrPaymentConfirmation merges an asynchronous external confirmation (a
// validated QR-code payment or a mobile-money callback) into the order it
// references. The dedupe guard in the engine makes a re-delivered
// confirmation amount-neutral.
func (s *Service) MergeQrPaymentConfirmation(ctx context.Context, orderID string, userID string,
	input domain.PaymentInput) (*domain.Order, error) {
	payment, err := input.Record()
	if err != nil {
		return nil, err
	}

	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return s.applyAndSave(ctx, order, payment, userID)
}

// applyAndSave runs the reconciliation engine over one order and persists the
// result. On a storage rejection the payment is not considered applied, there
// is no implicit retry.
func (s *Service) applyAndSave(ctx context.Context, order *domain.Order,
	payment domain.PaymentRecord, userID string) (*domain.Order, error) {
	applied := applyPayment(order, payment, userID)

	var events []domain.Event
	if applied {
		events = append(events, domain.NewEvent(domain.EventPaymentApplied, order.ID, map[string]any{
			"payment_id": payment.ID,
			"method":     payment.Method,
			"amount":     payment.Amount,
			"amountPaid": order.AmountPaid,
		}))
	}

	newOrder, err := s.repo.UpdateOrder(ctx, order, events)
	if err != nil {
		s.logger.Error("Apply payment", zap.String("order", order.ID), zap.Error(err))
		return nil, err
	}
	return newOrder, nil
}

// applyPayment is the core reconciliation step. An eligible payment
// accumulates into amountPaid exactly once per payment identity; the history
// entry itself is merged last-write-wins. updatedBy is stamped on every call,
// eligible or not. Reports whether new money was accumulated.
func applyPayment(order *domain.Order, payment domain.PaymentRecord, userID string) bool {
	applied := false

	if payment.Eligible() {
		if !paymentKnown(order.Payments, payment.ID) {
			newPaid, err := order.AmountPaid.Add(payment.Amount)
			if err == nil {
				order.AmountPaid = newPaid
				applied = true
			}

			// no overpayment cap: amountPaid may exceed totalAmount
			newStatus := domain.DeriveStatus(order.AmountPaid)
			order.Status = newStatus
			if newStatus.ID == domain.StatusProcessing && order.CompletedDate == nil {
				now := time.Now()
				order.CompletedDate = &now
			}
		}
		order.Payments = domain.DedupePayments(append(order.Payments, payment))
	}

	order.UpdatedBy = userID
	order.UpdatedAt = time.Now()
	return applied
}

func paymentKnown(history []domain.PaymentRecord, id string) bool {
	for _, p := range history {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (s *Service) CancelOrder(ctx context.Context, orderID string, userID string) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status.ID != domain.StatusPending {
		return nil, domain.ErrCannotCancel
	}

	order.Status = s.statusValue(domain.StatusCancelled, domain.StatusValueCancelled)
	order.UpdatedBy = userID
	order.UpdatedAt = time.Now()

	events := []domain.Event{
		domain.NewEvent(domain.EventOrderCancelled, order.ID, orderEventPayload(order)),
	}

	newOrder, err := s.repo.UpdateOrder(ctx, order, events)
	if err != nil {
		s.logger.Error("Cancel order", zap.String("order", orderID), zap.Error(err))
		return nil, err
	}
	return newOrder, nil
}

func (s *Service) SoftDeleteOrder(ctx context.Context, orderID string, userID string) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.Status = s.statusValue(domain.StatusTrash, domain.StatusValueTrash)
	order.UpdatedBy = userID
	order.UpdatedAt = time.Now()

	newOrder, err := s.repo.UpdateOrder(ctx, order, nil)
	if err != nil {
		s.logger.Error("Soft delete order", zap.String("order", orderID), zap.Error(err))
		return nil, err
	}
	return newOrder, nil
}

func (s *Service) UpdateStatus(ctx context.Context, orderID string, userID string,
	status domain.StatusValue) (*domain.Order, error) {
	return s.performUpdateStatus(ctx, orderID, userID, status, s.conf.Statuses,
		func(order *domain.Order, v domain.StatusValue) { order.Status = v })
}

func (s *Service) UpdateLocalStatus(ctx context.Context, orderID string, userID string,
	status domain.StatusValue) (*domain.Order, error) {
	return s.performUpdateStatus(ctx, orderID, userID, status, s.conf.LocalStatuses,
		func(order *domain.Order, v domain.StatusValue) { order.LocalStatus = v })
}

// performUpdateStatus is the explicit operator override: the submitted id
// must exist in the field's enumeration, no other transition restriction
// applies.
func (s *Service) performUpdateStatus(ctx context.Context, orderID string, userID string,
	status domain.StatusValue, allowed domain.StatusSet,
	assign func(*domain.Order, domain.StatusValue)) (*domain.Order, error) {
	if status.ID == "" {
		return nil, domain.ErrStatusRequired
	}
	value, ok := allowed.Find(status.ID)
	if !ok {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	assign(order, value)
	order.UpdatedBy = userID
	order.UpdatedAt = time.Now()

	newOrder, err := s.repo.UpdateOrder(ctx, order, nil)
	if err != nil {
		s.logger.Error("Update status", zap.String("order", orderID), zap.Error(err))
		return nil, err
	}
	return newOrder, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.repo.ReadOrder(ctx, orderID)
}

func (s *Service) ListByUser(ctx context.Context, userID string, filter domain.UserListFilter) ([]*domain.Order, error) {
	list, err := s.repo.ListOrdersByUser(ctx, userID, filter)
	if err != nil {
		s.logger.Error("List orders for user", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *Service) ListByStatus(ctx context.Context, statusID string) ([]*domain.Order, error) {
	return s.repo.ListOrdersByStatus(ctx, statusID)
}

func (s *Service) ListInstallmentPayments(ctx context.Context, orderID string) (*port.PaymentHistory, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	payments := make([]domain.PaymentRecord, len(order.Payments))
	copy(payments, order.Payments)
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].DatePaid.After(payments[j].DatePaid)
	})

	return &port.PaymentHistory{
		Payments:    payments,
		TotalAmount: order.TotalAmount,
		AmountPaid:  order.AmountPaid,
		LeftToPay:   order.LeftToPay(),
	}, nil
}

func (s *Service) StatusEnumeration() domain.StatusSet      { return s.conf.Statuses }
func (s *Service) LocalStatusEnumeration() domain.StatusSet { return s.conf.LocalStatuses }
func (s *Service) TypeEnumeration() []domain.OrderType      { return domain.OrderTypes() }

// statusValue prefers the configured entry for an id and falls back to the
// built-in value when an operator trimmed the enumeration.
func (s *Service) statusValue(id string, fallback domain.StatusValue) domain.StatusValue {
	if v, ok := s.conf.Statuses.Find(id); ok {
		return v
	}
	return fallback
}

func orderEventPayload(order *domain.Order) map[string]any {
	return map[string]any{
		"order_id":    order.ID,
		"user_id":     order.UserID,
		"type":        order.Type,
		"status":      order.Status.ID,
		"totalAmount": order.TotalAmount,
		"amountPaid":  order.AmountPaid,
	}
}

var _ port.Service = (*Service)(nil)
