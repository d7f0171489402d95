package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type TicketStatus string

const (
	TicketStatusPending  TicketStatus = "pending"
	TicketStatusApproved TicketStatus = "approved"
	TicketStatusRejected TicketStatus = "rejected"
)

type Ticket struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title         string        `bson:"title" json:"title"`
	From          string        `bson:"from" json:"from"`
	To            string        `bson:"to" json:"to"`
	Category      string        `bson:"category" json:"category"`
	Price         float64       `bson:"price" json:"price"`
	AvailableSits int           `bson:"availableSits" json:"availableSits"`
	Date          string        `bson:"date" json:"date"`
	Time          string        `bson:"time" json:"time"`
	Breakfast     bool          `bson:"breakfast" json:"breakfast"`
	Meal          bool          `bson:"meal" json:"meal"`
	Water         bool          `bson:"water" json:"water"`
	Security      bool          `bson:"security" json:"security"`
	Image         string        `bson:"image,omitempty" json:"image,omitempty"`
	VendorName    string        `bson:"vendorName" json:"vendorName"`
	VendorEmail   string        `bson:"vendorEmail" json:"vendorEmail"`
	Status        TicketStatus  `bson:"status" json:"status"`
	OnAdd         bool          `bson:"onAdd" json:"onAdd"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
}

// TicketUpdate carries the vendor-editable fields of a ticket.
type TicketUpdate struct {
	Title         string  `json:"title"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	AvailableSits int     `json:"availableSits"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	Breakfast     bool    `json:"breakfast"`
	Meal          bool    `json:"meal"`
	Water         bool    `json:"water"`
	Security      bool    `json:"security"`
}

// TicketPage is one page of the public approved-ticket listing.
type TicketPage struct {
	Data         []Ticket `json:"data"`
	TotalTickets int64    `json:"totalTickets"`
}
