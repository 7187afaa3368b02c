package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
	"github.com/srgjo27/vehicle_rental/internal/core/ports"
)

type CreateTicketRequest struct {
	Subject     string `json:"subject" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

type UpdateTicketRequest struct {
	Subject     *string              `json:"subject" validate:"omitempty,max=255"`
	Description *string              `json:"description"`
	Status      *domain.TicketStatus `json:"status"`
}

type TicketReplyRequest struct {
	Message string `json:"message" validate:"required"`
}

type TicketStatusRequest struct {
	Status domain.TicketStatus `json:"status" validate:"required"`
}

type SupportService struct {
	tx       ports.Transactor
	tickets  ports.SupportTicketRepository
	notifier ports.Notifier
	logger   *zap.Logger
}

func NewSupportService(tx ports.Transactor, tickets ports.SupportTicketRepository, notifier ports.Notifier, logger *zap.Logger) *SupportService {
	return &SupportService{
		tx:       tx,
		tickets:  tickets,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *SupportService) ListTickets(ctx context.Context, caller domain.Principal, filter domain.TicketFilter) ([]domain.TicketView, error) {
	if !caller.IsAdmin() {
		filter.UserID = &caller.UserID
	}

	return s.tickets.List(ctx, filter)
}

func (s *SupportService) CreateTicket(ctx context.Context, caller domain.Principal, req CreateTicketRequest) (*domain.TicketView, error) {
	subject := strings.TrimSpace(req.Subject)
	description := strings.TrimSpace(req.Description)
	if subject == "" || description == "" {
		return nil, domain.ErrValidation("Subject and description are required")
	}

	ticket := &domain.SupportTicket{
		ID:          uuid.New(),
		UserID:      caller.UserID,
		Subject:     subject,
		Description: description,
		Status:      domain.TicketOpen,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	return s.tickets.GetByID(ctx, ticket.ID)
}

// GetTicket returns the ticket with its replies, oldest first.
func (s *SupportService) GetTicket(ctx context.Context, caller domain.Principal, ticketID uuid.UUID) (*domain.TicketView, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if !caller.CanAccess(ticket.UserID) {
		return nil, domain.ErrAccessDenied("Access denied")
	}

	replies, err := s.tickets.ListReplies(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	ticket.Replies = replies

	return ticket, nil
}

func (s *SupportService) UpdateTicket(ctx context.Context, ticketID uuid.UUID, req UpdateTicketRequest) (*domain.TicketView, error) {
	if req.Subject == nil && req.Description == nil && req.Status == nil {
		return nil, domain.ErrNoOp("No fields to update")
	}

	if req.Status != nil && !req.Status.Valid() {
		return nil, domain.ErrValidation("Invalid ticket status")
	}
	if req.Subject != nil && strings.TrimSpace(*req.Subject) == "" {
		return nil, domain.ErrValidation("Subject cannot be empty")
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		return nil, domain.ErrValidation("Description cannot be empty")
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	update := domain.TicketUpdate{
		Subject:     ticket.Subject,
		Description: ticket.Description,
		Status:      ticket.Status,
	}
	if req.Subject != nil {
		update.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.Description != nil {
		update.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		update.Status = *req.Status
	}

	if err := s.tickets.Update(ctx, ticketID, update); err != nil {
		return nil, err
	}

	return s.tickets.GetByID(ctx, ticketID)
}

func (s *SupportService) DeleteTicket(ctx context.Context, ticketID uuid.UUID) error {
	return s.tickets.Delete(ctx, ticketID)
}

// AddReply appends a reply by the ticket owner or an admin. Admin replies
// are emailed to the ticket owner.
func (s *SupportService) AddReply(ctx context.Context, caller domain.Principal, ticketID uuid.UUID, req TicketReplyRequest) (*domain.TicketReply, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, domain.ErrValidation("Message is required")
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if !caller.CanAccess(ticket.UserID) {
		return nil, domain.ErrAccessDenied("Access denied")
	}

	reply := &domain.TicketReply{
		ID:       uuid.New(),
		TicketID: ticketID,
		UserID:   caller.UserID,
		Message:  message,
		IsAdmin:  caller.IsAdmin(),
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.tickets.AddReply(ctx, reply); err != nil {
			return err
		}

		return s.tickets.Touch(ctx, ticketID)
	})
	if err != nil {
		return nil, err
	}

	saved, err := s.tickets.GetReply(ctx, reply.ID)
	if err != nil {
		return nil, err
	}

	if saved.IsAdmin && ticket.UserID != caller.UserID {
		if err := s.notifier.SendTicketReply(ctx, *ticket, *saved, caller.FullName()); err != nil {
			s.logger.Warn("failed to send ticket reply email", zap.String("ticket_id", ticketID.String()), zap.Error(err))
		}
	}

	return saved, nil
}

func (s *SupportService) UpdateStatus(ctx context.Context, ticketID uuid.UUID, req TicketStatusRequest) (*domain.TicketView, error) {
	if !req.Status.Valid() {
		return nil, domain.ErrValidation("Invalid ticket status")
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.tickets.UpdateStatus(ctx, ticketID, req.Status)
	})
	if err != nil {
		return nil, err
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.SendTicketStatus(ctx, *ticket); err != nil {
		s.logger.Warn("failed to send ticket status email", zap.String("ticket_id", ticketID.String()), zap.Error(err))
	}

	return ticket, nil
}

// TicketOwner resolves the owner of a ticket for authorization checks.
func (s *SupportService) TicketOwner(ctx context.Context, ticketID uuid.UUID) (uuid.UUID, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return uuid.Nil, err
	}

	return ticket.UserID, nil
}
