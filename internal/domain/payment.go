package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Payment is the append-only ledger entry for one settled checkout session.
// TransactionID carries a unique index, which makes the insert the
// idempotency gate for settlement.
type Payment struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Amount         float64       `bson:"amount" json:"amount"`
	Currency       string        `bson:"currency" json:"currency"`
	BookingID      string        `bson:"bookingId" json:"bookingId"`
	BuyingQuantity int           `bson:"buyingQuantity" json:"buyingQuantity"`
	TicketID       string        `bson:"ticketId" json:"ticketId"`
	BuyerEmail     string        `bson:"buyerEmail" json:"buyerEmail"`
	BuyerName      string        `bson:"buyerName" json:"buyerName"`
	VendorName     string        `bson:"vendorName" json:"vendorName"`
	VendorEmail    string        `bson:"vendorEmail" json:"vendorEmail"`
	TransactionID  string        `bson:"transactionId" json:"transactionId"`
	PaymentStatus  string        `bson:"paymentStatus" json:"paymentStatus"`
	PaidAt         time.Time     `bson:"paidAt" json:"paidAt"`
}
