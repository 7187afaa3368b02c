package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/vehicle_rental/internal/core/domain"
)

// Transactor runs fn inside one database transaction. Repositories called
// with the context passed to fn join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateRole(ctx context.Context, userID uuid.UUID, role domain.Role) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type VehicleSpecRepository interface {
	Create(ctx context.Context, spec *domain.VehicleSpec) error
	GetByID(ctx context.Context, specID uuid.UUID) (*domain.VehicleSpec, error)
	List(ctx context.Context) ([]domain.VehicleSpec, error)
	Update(ctx context.Context, spec *domain.VehicleSpec) error
	Delete(ctx context.Context, specID uuid.UUID) error
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, vehicleID uuid.UUID) (*domain.VehicleView, error)
	List(ctx context.Context) ([]domain.VehicleView, error)
	Update(ctx context.Context, vehicleID uuid.UUID, update domain.VehicleUpdate) error
	Delete(ctx context.Context, vehicleID uuid.UUID) error
	// MarkUnavailable claims an available vehicle. It fails with a Conflict
	// error when the vehicle was not Available at the time of the update.
	MarkUnavailable(ctx context.Context, vehicleID uuid.UUID) error
	SetAvailability(ctx context.Context, vehicleID uuid.UUID, availability domain.Availability) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.BookingView, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.BookingView, error)
	Update(ctx context.Context, bookingID uuid.UUID, update domain.BookingUpdate) error
	// Cancel records the cancellation. It fails with an InvalidState error
	// when the booking is already Cancelled or Completed.
	Cancel(ctx context.Context, bookingID uuid.UUID, c domain.Cancellation) error
	Delete(ctx context.Context, bookingID uuid.UUID) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, paymentID uuid.UUID) (*domain.PaymentView, error)
	List(ctx context.Context) ([]domain.PaymentView, error)
	Update(ctx context.Context, paymentID uuid.UUID, update domain.PaymentUpdate) error
	UpdateStatusByBooking(ctx context.Context, bookingID uuid.UUID, status domain.PaymentStatus) error
	Delete(ctx context.Context, paymentID uuid.UUID) error
}

type PasswordResetRepository interface {
	Create(ctx context.Context, token *domain.PasswordResetToken) error
	FindValid(ctx context.Context, token string, now time.Time) (*domain.PasswordResetToken, error)
	MarkUsed(ctx context.Context, token string) error
	// DeleteStale removes the user's used or expired tokens.
	DeleteStale(ctx context.Context, userID uuid.UUID, now time.Time) error
	DeleteExpired(ctx context.Context, userID uuid.UUID, now time.Time) error
	// Sweep removes every used or expired token and returns how many went.
	Sweep(ctx context.Context, now time.Time) (int64, error)
}

type SupportTicketRepository interface {
	Create(ctx context.Context, ticket *domain.SupportTicket) error
	GetByID(ctx context.Context, ticketID uuid.UUID) (*domain.TicketView, error)
	List(ctx context.Context, filter domain.TicketFilter) ([]domain.TicketView, error)
	Update(ctx context.Context, ticketID uuid.UUID, update domain.TicketUpdate) error
	UpdateStatus(ctx context.Context, ticketID uuid.UUID, status domain.TicketStatus) error
	Delete(ctx context.Context, ticketID uuid.UUID) error
	AddReply(ctx context.Context, reply *domain.TicketReply) error
	GetReply(ctx context.Context, replyID uuid.UUID) (*domain.TicketReply, error)
	ListReplies(ctx context.Context, ticketID uuid.UUID) ([]domain.TicketReply, error)
	Touch(ctx context.Context, ticketID uuid.UUID) error
}
