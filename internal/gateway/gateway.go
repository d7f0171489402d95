package gateway

import "context"

type PaymentStatus string

const PaymentStatusPaid PaymentStatus = "paid"

// Session is the processor-side checkout record. The metadata bag round-trips
// unchanged between CreateSession and RetrieveSession; it is the only channel
// through which settlement recovers the booking context.
type Session struct {
	ID              string
	URL             string
	PaymentIntentID string
	AmountTotal     int64
	Currency        string
	PaymentStatus   PaymentStatus
	CustomerEmail   string
	CustomerName    string
	Metadata        map[string]string
}

type CreateSessionInput struct {
	ProductName   string
	UnitAmount    int64
	Quantity      int64
	Currency      string
	CustomerEmail string
	Metadata      map[string]string
	SuccessURL    string
	CancelURL     string
}

// Gateway is the payment processor seen by checkout and settlement.
type Gateway interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (*Session, error)
	RetrieveSession(ctx context.Context, id string) (*Session, error)
}
