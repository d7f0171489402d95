package email

import (
	"context"
	"log/slog"

	"github.com/ticketkinen/server/internal/kafka"
)

// Sender delivers payment receipts to the buyer and vendor. Delivery is a
// stub that logs the outgoing mail.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.PaymentEvent) error {
	slog.Info("send payment receipt",
		"to", event.BuyerEmail,
		"transaction_id", event.TransactionID,
		"amount", event.Amount,
		"currency", event.Currency)
	slog.Info("send sale notification",
		"to", event.VendorEmail,
		"transaction_id", event.TransactionID,
		"quantity", event.BuyingQuantity)
	return nil
}
