package ports

import (
	"context"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
)

// Notifier delivers transactional emails. Callers treat every method as
// best effort: an error is logged and never fails the operation.
type Notifier interface {
	SendWelcome(ctx context.Context, user domain.User) error
	SendBookingConfirmation(ctx context.Context, booking domain.BookingView) error
	SendBookingCancellation(ctx context.Context, booking domain.BookingView) error
	SendPasswordReset(ctx context.Context, user domain.User, resetLink string) error
	SendTicketReply(ctx context.Context, ticket domain.TicketView, reply domain.TicketReply, adminName string) error
	SendTicketStatus(ctx context.Context, ticket domain.TicketView) error
}
