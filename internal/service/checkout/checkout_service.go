package checkout

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/ticketkinen/server/internal/domain"
	"github.com/ticketkinen/server/internal/gateway"
	"github.com/ticketkinen/server/internal/monitoring"
)

// CheckoutIntent is the buyer's request to pay for a booking. Everything the
// settlement step will need later travels in the session metadata, so no
// local state is written here.
type CheckoutIntent struct {
	ProductName     string  `json:"productName"`
	BookingID       string  `json:"bookingId"`
	TicketID        string  `json:"ticketId"`
	UserEmail       string  `json:"userEmail"`
	UserName        string  `json:"userName"`
	VendorEmail     string  `json:"vendorEmail"`
	VendorName      string  `json:"vendorName"`
	UnitPrice       float64 `json:"unitPrice"`
	BookingQuantity int     `json:"bookingQuantity"`
}

type CheckoutUseCase interface {
	CreateCheckout(ctx context.Context, intent CheckoutIntent) (string, error)
}

type CheckoutService struct {
	gateway    gateway.Gateway
	currency   string
	siteDomain string
}

func NewCheckoutService(gw gateway.Gateway, currency, siteDomain string) *CheckoutService {
	return &CheckoutService{gateway: gw, currency: currency, siteDomain: siteDomain}
}

// CreateCheckout opens a hosted payment session for the intent and returns
// its redirect URL.
func (s *CheckoutService) CreateCheckout(ctx context.Context, intent CheckoutIntent) (string, error) {
	if err := intent.validate(); err != nil {
		return "", err
	}

	// The processor wants the price in minor units; prices are stored as
	// two-decimal currency values.
	unitAmount := decimal.NewFromFloat(intent.UnitPrice).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()

	sess, err := s.gateway.CreateSession(ctx, gateway.CreateSessionInput{
		ProductName:   intent.ProductName,
		UnitAmount:    unitAmount,
		Quantity:      int64(intent.BookingQuantity),
		Currency:      s.currency,
		CustomerEmail: intent.UserEmail,
		Metadata: map[string]string{
			"booking_id":       intent.BookingID,
			"booking_quantity": strconv.Itoa(intent.BookingQuantity),
			"ticket_id":        intent.TicketID,
			"buyer_name":       intent.UserName,
			"seller_name":      intent.VendorName,
			"seller_email":     intent.VendorEmail,
		},
		SuccessURL: s.siteDomain + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.siteDomain + "/payment-cancelled",
	})
	if err != nil {
		monitoring.ObserveCheckout("failed")
		return "", fmt.Errorf("%w: %w", domain.ErrGatewayUnavailable, err)
	}

	monitoring.ObserveCheckout("created")
	return sess.URL, nil
}

func (i CheckoutIntent) validate() error {
	switch {
	case i.ProductName == "":
		return fmt.Errorf("%w: product name is required", domain.ErrInvalidIntent)
	case i.BookingID == "":
		return fmt.Errorf("%w: booking id is required", domain.ErrInvalidIntent)
	case i.TicketID == "":
		return fmt.Errorf("%w: ticket id is required", domain.ErrInvalidIntent)
	case i.UserEmail == "":
		return fmt.Errorf("%w: user email is required", domain.ErrInvalidIntent)
	case i.UserName == "":
		return fmt.Errorf("%w: user name is required", domain.ErrInvalidIntent)
	case i.VendorEmail == "":
		return fmt.Errorf("%w: vendor email is required", domain.ErrInvalidIntent)
	case i.VendorName == "":
		return fmt.Errorf("%w: vendor name is required", domain.ErrInvalidIntent)
	case i.UnitPrice <= 0:
		return fmt.Errorf("%w: unit price must be positive", domain.ErrInvalidIntent)
	case i.BookingQuantity <= 0:
		return fmt.Errorf("%w: booking quantity must be positive", domain.ErrInvalidIntent)
	}
	return nil
}

var _ CheckoutUseCase = (*CheckoutService)(nil)
