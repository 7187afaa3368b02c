package notifier

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
	"github.com/srgjo27/vehicle_rental/internal/core/ports"
)

const sendTimeout = 30 * time.Second

// Async hands every notification to its own goroutine and returns at once.
// Failures are logged. The send context keeps request values but not the
// request's cancellation.
type Async struct {
	inner  ports.Notifier
	logger *zap.Logger
	wg     sync.WaitGroup
}

func NewAsync(inner ports.Notifier, logger *zap.Logger) *Async {
	return &Async{inner: inner, logger: logger}
}

func (a *Async) dispatch(ctx context.Context, kind string, fn func(ctx context.Context) error) {
	a.wg.Add(1)

	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			a.logger.Error("failed to send email", zap.String("kind", kind), zap.Error(err))
		}
	}()
}

// Wait blocks until every dispatched notification has finished.
func (a *Async) Wait() {
	a.wg.Wait()
}

func (a *Async) SendWelcome(ctx context.Context, user domain.User) error {
	a.dispatch(ctx, "welcome", func(ctx context.Context) error {
		return a.inner.SendWelcome(ctx, user)
	})
	return nil
}

func (a *Async) SendBookingConfirmation(ctx context.Context, booking domain.BookingView) error {
	a.dispatch(ctx, "booking_confirmed", func(ctx context.Context) error {
		return a.inner.SendBookingConfirmation(ctx, booking)
	})
	return nil
}

func (a *Async) SendBookingCancellation(ctx context.Context, booking domain.BookingView) error {
	a.dispatch(ctx, "booking_cancelled", func(ctx context.Context) error {
		return a.inner.SendBookingCancellation(ctx, booking)
	})
	return nil
}

func (a *Async) SendPasswordReset(ctx context.Context, user domain.User, resetLink string) error {
	a.dispatch(ctx, "password_reset", func(ctx context.Context) error {
		return a.inner.SendPasswordReset(ctx, user, resetLink)
	})
	return nil
}

func (a *Async) SendTicketReply(ctx context.Context, ticket domain.TicketView, reply domain.TicketReply, adminName string) error {
	a.dispatch(ctx, "ticket_reply", func(ctx context.Context) error {
		return a.inner.SendTicketReply(ctx, ticket, reply, adminName)
	})
	return nil
}

func (a *Async) SendTicketStatus(ctx context.Context, ticket domain.TicketView) error {
	a.dispatch(ctx, "ticket_status", func(ctx context.Context) error {
		return a.inner.SendTicketStatus(ctx, ticket)
	})
	return nil
}
