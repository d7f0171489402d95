package tickets

import (
	"context"
	"log/slog"
	"time"

	"github.com/ticketkinen/server/internal/domain"
	"github.com/ticketkinen/server/internal/repository"
)

// approvedPageSize is the fixed page size of the public listing.
const approvedPageSize = 9

type TicketUseCase interface {
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListByVendor(ctx context.Context, vendorEmail string) ([]domain.Ticket, error)
	ApprovedPage(ctx context.Context, page int) (*domain.TicketPage, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error
	UpdateOnAdd(ctx context.Context, id string, onAdd bool) error
	Update(ctx context.Context, id string, update domain.TicketUpdate) error
	Delete(ctx context.Context, id string) error
}

type Cache interface {
	GetApprovedPage(ctx context.Context, page int) (*domain.TicketPage, error)
	SetApprovedPage(ctx context.Context, page int, result *domain.TicketPage) error
	InvalidateApproved(ctx context.Context) error
}

type TicketService struct {
	repo  repository.TicketRepository
	cache Cache
}

func NewTicketService(repo repository.TicketRepository, cache Cache) *TicketService {
	return &TicketService{repo: repo, cache: cache}
}

func (s *TicketService) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	if ticket.Status == "" {
		ticket.Status = domain.TicketStatusPending
	}
	ticket.CreatedAt = time.Now()
	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return ticket, nil
}

func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	return s.repo.List(ctx)
}

func (s *TicketService) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TicketService) ListByVendor(ctx context.Context, vendorEmail string) ([]domain.Ticket, error) {
	return s.repo.ListByVendor(ctx, vendorEmail)
}

func (s *TicketService) ApprovedPage(ctx context.Context, page int) (*domain.TicketPage, error) {
	if page < 1 {
		page = 1
	}

	if s.cache != nil {
		if cached, err := s.cache.GetApprovedPage(ctx, page); err == nil && cached != nil {
			return cached, nil
		}
	}

	result, err := s.repo.ListApproved(ctx, page, approvedPageSize)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetApprovedPage(ctx, page, result); err != nil {
			slog.Warn("cache approved tickets page", "page", page, "error", err)
		}
	}
	return result, nil
}

func (s *TicketService) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TicketService) UpdateOnAdd(ctx context.Context, id string, onAdd bool) error {
	if err := s.repo.UpdateOnAdd(ctx, id, onAdd); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TicketService) Update(ctx context.Context, id string, update domain.TicketUpdate) error {
	if err := s.repo.Update(ctx, id, update); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TicketService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TicketService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateApproved(ctx); err != nil {
		slog.Warn("invalidate approved tickets cache", "error", err)
	}
}

var _ TicketUseCase = (*TicketService)(nil)
