package kafka

import "time"

// PaymentEvent is published when a checkout session settles into the ledger.
type PaymentEvent struct {
	Type           string    `json:"type"`
	TransactionID  string    `json:"transaction_id"`
	BookingID      string    `json:"booking_id"`
	TicketID       string    `json:"ticket_id"`
	BuyingQuantity int       `json:"buying_quantity"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	BuyerEmail     string    `json:"buyer_email"`
	VendorEmail    string    `json:"vendor_email"`
	PaidAt         time.Time `json:"paid_at"`
}

// BookingEvent tracks booking lifecycle changes.
type BookingEvent struct {
	Type        string    `json:"type"`
	BookingID   string    `json:"booking_id"`
	TicketID    string    `json:"ticket_id"`
	Quantity    int       `json:"quantity"`
	UserEmail   string    `json:"user_email"`
	VendorEmail string    `json:"vendor_email"`
	CreatedAt   time.Time `json:"created_at"`
}
