package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type BookingStatus string

const (
	BookingStatusRequested BookingStatus = "requested"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusRejected  BookingStatus = "rejected"
)

type PaymentState string

const (
	PaymentUnpaid PaymentState = "unpaid"
	PaymentPaid   PaymentState = "paid"
)

type Booking struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TicketID      string        `bson:"ticketId" json:"ticketId"`
	Title         string        `bson:"title" json:"title"`
	Price         float64       `bson:"price" json:"price"`
	Quantity      int           `bson:"quantity" json:"quantity"`
	UserEmail     string        `bson:"userEmail" json:"userEmail"`
	UserName      string        `bson:"userName" json:"userName"`
	VendorEmail   string        `bson:"vendorEmail" json:"vendorEmail"`
	VendorName    string        `bson:"vendorName" json:"vendorName"`
	BookingStatus BookingStatus `bson:"bookingStatus" json:"bookingStatus"`
	Payment       PaymentState  `bson:"payment" json:"payment"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
}
