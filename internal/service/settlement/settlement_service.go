package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ticketkinen/server/internal/domain"
	"github.com/ticketkinen/server/internal/gateway"
	"github.com/ticketkinen/server/internal/kafka"
	"github.com/ticketkinen/server/internal/monitoring"
	"github.com/ticketkinen/server/internal/repository"
)

// SettlementResult summarizes which parts of the three-entity transition were
// applied for a session. AlreadySettled is set when the ledger entry existed
// before this call.
type SettlementResult struct {
	Payment        *domain.Payment
	BookingUpdated bool
	TicketUpdated  bool
	AlreadySettled bool
}

type SettlementUseCase interface {
	Settle(ctx context.Context, sessionID string) (*SettlementResult, error)
	Reconcile(ctx context.Context) (int, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Engine converts paid checkout sessions into ledger state: one Payment
// entry, the booking flagged paid, and the ticket inventory decremented. The
// unique index on the payment's transaction id makes the insert the
// idempotency gate; the two follow-up updates are retryable by identity.
type Engine struct {
	payments repository.PaymentRepository
	bookings repository.BookingRepository
	tickets  repository.TicketRepository
	gateway  gateway.Gateway

	producer           Producer
	paymentTopic       string
	notificationsTopic string

	now func() time.Time
}

type EngineOption func(*Engine)

func WithNotificationsTopic(topic string) EngineOption {
	return func(e *Engine) {
		e.notificationsTopic = topic
	}
}

func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(
	payments repository.PaymentRepository,
	bookings repository.BookingRepository,
	tickets repository.TicketRepository,
	gw gateway.Gateway,
	producer Producer,
	paymentTopic string,
	opts ...EngineOption,
) *Engine {
	e := &Engine{
		payments:     payments,
		bookings:     bookings,
		tickets:      tickets,
		gateway:      gw,
		producer:     producer,
		paymentTopic: paymentTopic,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Settle fetches the checkout session and, if it is paid and not yet in the
// ledger, applies the transition in fixed order: payment insert, booking
// mark-paid, inventory decrement. Safe to call repeatedly for the same
// session.
func (e *Engine) Settle(ctx context.Context, sessionID string) (*SettlementResult, error) {
	start := e.now()

	sess, err := e.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieve session: %w", domain.ErrGatewayUnavailable, err)
	}
	if sess.PaymentStatus != gateway.PaymentStatusPaid {
		monitoring.ObserveSettlement(monitoring.OutcomeIncomplete, e.now().Sub(start))
		return nil, domain.ErrPaymentIncomplete
	}

	meta, err := parseMetadata(sess.Metadata)
	if err != nil {
		monitoring.ObserveSettlement(monitoring.OutcomeDangling, e.now().Sub(start))
		return nil, fmt.Errorf("%w: %w", domain.ErrDanglingReference, err)
	}

	// Fast idempotency check. The insert below is the authoritative gate;
	// this lookup only short-circuits the common browser-refresh retry.
	prior, err := e.payments.GetByTransactionID(ctx, sess.PaymentIntentID)
	if err == nil {
		return e.resume(ctx, prior, start)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, &domain.PersistenceError{Err: fmt.Errorf("lookup payment: %w", err)}
	}

	if err := e.checkReferences(ctx, meta); err != nil {
		if errors.Is(err, domain.ErrDanglingReference) {
			monitoring.ObserveSettlement(monitoring.OutcomeDangling, e.now().Sub(start))
		} else {
			monitoring.ObserveSettlement(monitoring.OutcomeFailed, e.now().Sub(start))
		}
		return nil, err
	}

	payment := &domain.Payment{
		Amount:         float64(sess.AmountTotal) / 100,
		Currency:       sess.Currency,
		BookingID:      meta.bookingID,
		BuyingQuantity: meta.quantity,
		TicketID:       meta.ticketID,
		BuyerEmail:     sess.CustomerEmail,
		BuyerName:      sess.CustomerName,
		VendorName:     meta.sellerName,
		VendorEmail:    meta.sellerEmail,
		TransactionID:  sess.PaymentIntentID,
		PaymentStatus:  string(sess.PaymentStatus),
		PaidAt:         e.now(),
	}

	if err := e.payments.Create(ctx, payment); err != nil {
		if errors.Is(err, domain.ErrDuplicateTransaction) {
			// Lost the insert race to a concurrent call for the same
			// session; hand over to the prior entry.
			prior, lerr := e.payments.GetByTransactionID(ctx, sess.PaymentIntentID)
			if lerr != nil {
				return nil, &domain.PersistenceError{Err: fmt.Errorf("lookup racing payment: %w", lerr)}
			}
			return e.resume(ctx, prior, start)
		}
		monitoring.ObserveSettlement(monitoring.OutcomeFailed, e.now().Sub(start))
		return nil, &domain.PersistenceError{Err: fmt.Errorf("insert payment: %w", err)}
	}

	if err := e.bookings.MarkPaid(ctx, payment.BookingID); err != nil {
		monitoring.ObserveSettlement(monitoring.OutcomeFailed, e.now().Sub(start))
		return nil, &domain.PersistenceError{
			PaymentApplied: true,
			Err:            fmt.Errorf("mark booking %s paid: %w", payment.BookingID, err),
		}
	}

	if err := e.tickets.DecrementAvailableSits(ctx, payment.TicketID, payment.BuyingQuantity); err != nil {
		monitoring.ObserveSettlement(monitoring.OutcomeFailed, e.now().Sub(start))
		return nil, &domain.PersistenceError{
			PaymentApplied: true,
			BookingApplied: true,
			Err:            fmt.Errorf("decrement ticket %s by %d: %w", payment.TicketID, payment.BuyingQuantity, err),
		}
	}

	monitoring.ObserveSettlement(monitoring.OutcomeSettled, e.now().Sub(start))
	monitoring.AddSettledAmount(payment.Currency, payment.Amount)
	e.publish(ctx, payment)

	return &SettlementResult{Payment: payment, BookingUpdated: true, TicketUpdated: true}, nil
}

// resume handles a session whose ledger entry already exists. If an earlier
// attempt stopped after the insert, the booking is still unpaid and the
// remaining sub-steps are applied now; otherwise nothing is mutated.
func (e *Engine) resume(ctx context.Context, payment *domain.Payment, start time.Time) (*SettlementResult, error) {
	booking, err := e.bookings.GetByID(ctx, payment.BookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			monitoring.ObserveSettlement(monitoring.OutcomeDangling, e.now().Sub(start))
			return nil, fmt.Errorf("%w: booking %s", domain.ErrDanglingReference, payment.BookingID)
		}
		return nil, &domain.PersistenceError{PaymentApplied: true, Err: fmt.Errorf("load booking: %w", err)}
	}

	result := &SettlementResult{
		Payment:        payment,
		BookingUpdated: true,
		TicketUpdated:  true,
		AlreadySettled: true,
	}

	if booking.Payment == domain.PaymentPaid {
		monitoring.ObserveSettlement(monitoring.OutcomeDuplicate, e.now().Sub(start))
		return result, nil
	}

	if err := e.bookings.MarkPaid(ctx, payment.BookingID); err != nil {
		return nil, &domain.PersistenceError{
			PaymentApplied: true,
			Err:            fmt.Errorf("mark booking %s paid: %w", payment.BookingID, err),
		}
	}
	if err := e.tickets.DecrementAvailableSits(ctx, payment.TicketID, payment.BuyingQuantity); err != nil {
		return nil, &domain.PersistenceError{
			PaymentApplied: true,
			BookingApplied: true,
			Err:            fmt.Errorf("decrement ticket %s by %d: %w", payment.TicketID, payment.BuyingQuantity, err),
		}
	}

	monitoring.ObserveSettlement(monitoring.OutcomeSettled, e.now().Sub(start))
	monitoring.AddSettledAmount(payment.Currency, payment.Amount)
	e.publish(ctx, payment)
	return result, nil
}

// Reconcile scans the ledger for payments whose booking never got flagged
// paid (an attempt that died between sub-steps) and finishes their
// transitions. Returns the number of transitions completed.
func (e *Engine) Reconcile(ctx context.Context) (int, error) {
	payments, err := e.payments.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list payments: %w", err)
	}

	completed := 0
	for i := range payments {
		p := &payments[i]

		booking, err := e.bookings.GetByID(ctx, p.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				slog.Warn("reconcile: payment references missing booking",
					"transaction_id", p.TransactionID, "booking_id", p.BookingID)
				continue
			}
			return completed, fmt.Errorf("load booking %s: %w", p.BookingID, err)
		}
		if booking.Payment == domain.PaymentPaid {
			continue
		}

		if err := e.bookings.MarkPaid(ctx, p.BookingID); err != nil {
			slog.Error("reconcile: mark booking paid",
				"transaction_id", p.TransactionID, "booking_id", p.BookingID, "error", err)
			continue
		}
		if err := e.tickets.DecrementAvailableSits(ctx, p.TicketID, p.BuyingQuantity); err != nil {
			slog.Error("reconcile: decrement ticket",
				"transaction_id", p.TransactionID, "ticket_id", p.TicketID, "error", err)
			continue
		}
		completed++
	}
	return completed, nil
}

func (e *Engine) publish(ctx context.Context, p *domain.Payment) {
	if e.producer == nil || e.paymentTopic == "" {
		return
	}
	event := kafka.PaymentEvent{
		Type:           "payment_settled",
		TransactionID:  p.TransactionID,
		BookingID:      p.BookingID,
		TicketID:       p.TicketID,
		BuyingQuantity: p.BuyingQuantity,
		Amount:         p.Amount,
		Currency:       p.Currency,
		BuyerEmail:     p.BuyerEmail,
		VendorEmail:    p.VendorEmail,
		PaidAt:         p.PaidAt,
	}
	if err := e.producer.Publish(ctx, e.paymentTopic, p.TransactionID, event); err != nil {
		slog.Warn("publish payment event", "transaction_id", p.TransactionID, "error", err)
	}
	if e.notificationsTopic != "" {
		if err := e.producer.Publish(ctx, e.notificationsTopic, p.TransactionID, event); err != nil {
			slog.Warn("publish payment notification", "transaction_id", p.TransactionID, "error", err)
		}
	}
}

func (e *Engine) checkReferences(ctx context.Context, meta sessionMetadata) error {
	if _, err := e.bookings.GetByID(ctx, meta.bookingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: booking %s", domain.ErrDanglingReference, meta.bookingID)
		}
		return &domain.PersistenceError{Err: fmt.Errorf("load booking: %w", err)}
	}
	if _, err := e.tickets.GetByID(ctx, meta.ticketID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: ticket %s", domain.ErrDanglingReference, meta.ticketID)
		}
		return &domain.PersistenceError{Err: fmt.Errorf("load ticket: %w", err)}
	}
	return nil
}

type sessionMetadata struct {
	bookingID   string
	ticketID    string
	quantity    int
	buyerName   string
	sellerName  string
	sellerEmail string
}

func parseMetadata(meta map[string]string) (sessionMetadata, error) {
	m := sessionMetadata{
		bookingID:   meta["booking_id"],
		ticketID:    meta["ticket_id"],
		buyerName:   meta["buyer_name"],
		sellerName:  meta["seller_name"],
		sellerEmail: meta["seller_email"],
	}
	if m.bookingID == "" {
		return m, errors.New("session metadata missing booking_id")
	}
	if m.ticketID == "" {
		return m, errors.New("session metadata missing ticket_id")
	}

	qty, err := strconv.Atoi(meta["booking_quantity"])
	if err != nil || qty <= 0 {
		return m, fmt.Errorf("session metadata has invalid booking_quantity %q", meta["booking_quantity"])
	}
	m.quantity = qty
	return m, nil
}

var _ SettlementUseCase = (*Engine)(nil)
