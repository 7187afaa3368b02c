package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
)

type SupportTicketRepository struct {
	db *sql.DB
}

func NewSupportTicketRepository(db *sql.DB) *SupportTicketRepository {
	return &SupportTicketRepository{db: db}
}

const ticketViewQuery = `
	SELECT t.ticket_id, t.user_id, t.subject, t.description, t.status, t.created_at, t.updated_at,
		u.first_name, u.last_name, u.email, u.contact_phone, u.role,
		(SELECT COUNT(*) FROM ticket_replies r WHERE r.ticket_id = t.ticket_id) AS reply_count
	FROM support_tickets t
	JOIN users u ON t.user_id = u.user_id
	`

const replyQuery = `
	SELECT r.reply_id, r.ticket_id, r.user_id, r.message, r.is_admin, r.created_at, r.updated_at,
		u.first_name, u.last_name, u.email, u.contact_phone, u.role
	FROM ticket_replies r
	JOIN users u ON r.user_id = u.user_id
	`

// ticketSortColumns maps accepted sort keys to columns; anything else falls
// back to created_at.
var ticketSortColumns = map[string]string{
	"created_at": "t.created_at",
	"updated_at": "t.updated_at",
	"subject":    "t.subject",
	"status":     "t.status",
}

func scanTicketView(row interface{ Scan(...any) error }) (*domain.TicketView, error) {
	var t domain.TicketView
	var phone sql.NullString

	if err := row.Scan(
		&t.ID, &t.UserID, &t.Subject, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		&t.Owner.FirstName, &t.Owner.LastName, &t.Owner.Email, &phone, &t.Owner.Role,
		&t.ReplyCount,
	); err != nil {
		return nil, err
	}

	t.Owner.ContactPhone = nullString(phone)

	return &t, nil
}

func scanReply(row interface{ Scan(...any) error }) (*domain.TicketReply, error) {
	var r domain.TicketReply
	var phone sql.NullString

	if err := row.Scan(
		&r.ID, &r.TicketID, &r.UserID, &r.Message, &r.IsAdmin, &r.CreatedAt, &r.UpdatedAt,
		&r.Author.FirstName, &r.Author.LastName, &r.Author.Email, &phone, &r.Author.Role,
	); err != nil {
		return nil, err
	}

	r.Author.ContactPhone = nullString(phone)

	return &r, nil
}

func (r *SupportTicketRepository) Create(ctx context.Context, ticket *domain.SupportTicket) error {
	query := `
	INSERT INTO support_tickets (ticket_id, user_id, subject, description, status)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`

	err := conn(ctx, r.db).QueryRowContext(ctx, query,
		ticket.ID, ticket.UserID, ticket.Subject, ticket.Description, ticket.Status,
	).Scan(&ticket.CreatedAt, &ticket.UpdatedAt)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.ErrNotFound("User not found")
		}
		return fmt.Errorf("failed to insert support ticket: %w", err)
	}

	return nil
}

func (r *SupportTicketRepository) GetByID(ctx context.Context, ticketID uuid.UUID) (*domain.TicketView, error) {
	t, err := scanTicketView(conn(ctx, r.db).QueryRowContext(ctx, ticketViewQuery+` WHERE t.ticket_id = $1`, ticketID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound("Support ticket not found")
		}
		return nil, fmt.Errorf("failed to get support ticket: %w", err)
	}

	return t, nil
}

func (r *SupportTicketRepository) List(ctx context.Context, filter domain.TicketFilter) ([]domain.TicketView, error) {
	var where []string
	var args []any

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where = append(where, fmt.Sprintf("t.user_id = $%d", len(args)))
	}
	if filter.Status != "" && filter.Status != "all" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("t.status = $%d", len(args)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(t.subject ILIKE $%[1]d OR t.description ILIKE $%[1]d OR u.first_name ILIKE $%[1]d OR u.last_name ILIKE $%[1]d OR u.email ILIKE $%[1]d)", n))
	}

	query := ticketViewQuery
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}

	column, ok := ticketSortColumns[filter.SortBy]
	if !ok {
		column = "t.created_at"
	}
	order := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = "ASC"
	}
	query += fmt.Sprintf(` ORDER BY %s %s`, column, order)

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list support tickets: %w", err)
	}

	defer rows.Close()

	tickets := []domain.TicketView{}
	for rows.Next() {
		t, err := scanTicketView(rows)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, *t)
	}

	return tickets, rows.Err()
}

func (r *SupportTicketRepository) Update(ctx context.Context, ticketID uuid.UUID, update domain.TicketUpdate) error {
	query := `
	UPDATE support_tickets
	SET subject = $1,
		description = $2,
		status = $3,
		updated_at = NOW()
	WHERE ticket_id = $4
	`

	res, err := conn(ctx, r.db).ExecContext(ctx, query, update.Subject, update.Description, update.Status, ticketID)
	if err != nil {
		return fmt.Errorf("failed to update support ticket: %w", err)
	}

	return affected(res, "Support ticket not found")
}

func (r *SupportTicketRepository) UpdateStatus(ctx context.Context, ticketID uuid.UUID, status domain.TicketStatus) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE support_tickets SET status = $1, updated_at = NOW() WHERE ticket_id = $2`, status, ticketID)
	if err != nil {
		return fmt.Errorf("failed to update support ticket status: %w", err)
	}

	return affected(res, "Support ticket not found")
}

func (r *SupportTicketRepository) Delete(ctx context.Context, ticketID uuid.UUID) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM support_tickets WHERE ticket_id = $1`, ticketID)
	if err != nil {
		return fmt.Errorf("failed to delete support ticket: %w", err)
	}

	return affected(res, "Support ticket not found")
}

func (r *SupportTicketRepository) AddReply(ctx context.Context, reply *domain.TicketReply) error {
	query := `
	INSERT INTO ticket_replies (reply_id, ticket_id, user_id, message, is_admin)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`

	err := conn(ctx, r.db).QueryRowContext(ctx, query,
		reply.ID, reply.TicketID, reply.UserID, reply.Message, reply.IsAdmin,
	).Scan(&reply.CreatedAt, &reply.UpdatedAt)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.ErrNotFound("Support ticket not found")
		}
		return fmt.Errorf("failed to insert ticket reply: %w", err)
	}

	return nil
}

func (r *SupportTicketRepository) GetReply(ctx context.Context, replyID uuid.UUID) (*domain.TicketReply, error) {
	reply, err := scanReply(conn(ctx, r.db).QueryRowContext(ctx, replyQuery+` WHERE r.reply_id = $1`, replyID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound("Reply not found")
		}
		return nil, fmt.Errorf("failed to get ticket reply: %w", err)
	}

	return reply, nil
}

func (r *SupportTicketRepository) ListReplies(ctx context.Context, ticketID uuid.UUID) ([]domain.TicketReply, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, replyQuery+` WHERE r.ticket_id = $1 ORDER BY r.created_at ASC`, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket replies: %w", err)
	}

	defer rows.Close()

	replies := []domain.TicketReply{}
	for rows.Next() {
		reply, err := scanReply(rows)
		if err != nil {
			return nil, err
		}

		replies = append(replies, *reply)
	}

	return replies, rows.Err()
}

func (r *SupportTicketRepository) Touch(ctx context.Context, ticketID uuid.UUID) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE support_tickets SET updated_at = NOW() WHERE ticket_id = $1`, ticketID)
	if err != nil {
		return fmt.Errorf("failed to touch support ticket: %w", err)
	}

	return affected(res, "Support ticket not found")
}
