package bookings

import (
	"context"
	"log/slog"
	"time"

	"github.com/ticketkinen/server/internal/domain"
	"github.com/ticketkinen/server/internal/kafka"
	"github.com/ticketkinen/server/internal/repository"
)

type BookingUseCase interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListByUser(ctx context.Context, userEmail string) ([]domain.Booking, error)
	ListByVendor(ctx context.Context, vendorEmail string) ([]domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error
	Delete(ctx context.Context, id string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	repo     repository.BookingRepository
	producer Producer
	topic    string
}

func NewBookingService(repo repository.BookingRepository, producer Producer, topic string) *BookingService {
	return &BookingService{repo: repo, producer: producer, topic: topic}
}

func (s *BookingService) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking.BookingStatus == "" {
		booking.BookingStatus = domain.BookingStatusRequested
	}
	booking.Payment = domain.PaymentUnpaid
	booking.CreatedAt = time.Now()

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

func (s *BookingService) ListByUser(ctx context.Context, userEmail string) ([]domain.Booking, error) {
	return s.repo.ListByUser(ctx, userEmail)
}

func (s *BookingService) ListByVendor(ctx context.Context, vendorEmail string) ([]domain.Booking, error) {
	return s.repo.ListByVendor(ctx, vendorEmail)
}

func (s *BookingService) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	if err := s.repo.UpdateBookingStatus(ctx, id, status); err != nil {
		return err
	}

	if booking, err := s.repo.GetByID(ctx, id); err == nil {
		s.publish(ctx, "booking_"+string(status), booking)
	}
	return nil
}

func (s *BookingService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID.Hex(),
		TicketID:    booking.TicketID,
		Quantity:    booking.Quantity,
		UserEmail:   booking.UserEmail,
		VendorEmail: booking.VendorEmail,
		CreatedAt:   booking.CreatedAt,
	}
	if err := s.producer.Publish(ctx, s.topic, event.BookingID, event); err != nil {
		slog.Warn("publish booking event", "type", eventType, "booking_id", event.BookingID, "error", err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
