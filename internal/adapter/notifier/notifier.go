package notifier

import (
	"context"
	"fmt"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
)

// Message is a rendered email ready for a transport.
type Message struct {
	Kind    string `json:"kind"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Transport delivers rendered messages: SMTP, Kafka or the log.
type Transport interface {
	Deliver(ctx context.Context, msg Message) error
}

// Notifier renders transactional emails and hands them to a transport.
type Notifier struct {
	transport Transport
}

func New(transport Transport) *Notifier {
	return &Notifier{transport: transport}
}

func (n *Notifier) send(ctx context.Context, kind, to, subject, tmpl string, data any) error {
	html, err := render(tmpl, data)
	if err != nil {
		return err
	}

	if err := n.transport.Deliver(ctx, Message{Kind: kind, To: to, Subject: subject, HTML: html}); err != nil {
		return fmt.Errorf("deliver %s email: %w", kind, err)
	}

	return nil
}

func (n *Notifier) SendWelcome(ctx context.Context, user domain.User) error {
	return n.send(ctx, "welcome", user.Email, "Welcome to Vehicle Rental", "welcome", user)
}

func (n *Notifier) SendBookingConfirmation(ctx context.Context, booking domain.BookingView) error {
	return n.send(ctx, "booking_confirmed", booking.User.Email, "🚗 Booking Confirmed - Vehicle Rental", "booking_confirmed", booking)
}

func (n *Notifier) SendBookingCancellation(ctx context.Context, booking domain.BookingView) error {
	return n.send(ctx, "booking_cancelled", booking.User.Email, "Booking Cancelled - Vehicle Rental", "booking_cancelled", booking)
}

func (n *Notifier) SendPasswordReset(ctx context.Context, user domain.User, resetLink string) error {
	data := struct {
		User domain.User
		Link string
	}{user, resetLink}

	return n.send(ctx, "password_reset", user.Email, "Password Reset Request - Vehicle Rental", "password_reset", data)
}

func (n *Notifier) SendTicketReply(ctx context.Context, ticket domain.TicketView, reply domain.TicketReply, adminName string) error {
	data := struct {
		Ticket    domain.TicketView
		Reply     domain.TicketReply
		AdminName string
	}{ticket, reply, adminName}

	subject := fmt.Sprintf("New reply to your support ticket: %s", ticket.Subject)
	return n.send(ctx, "ticket_reply", ticket.Owner.Email, subject, "ticket_reply", data)
}

func (n *Notifier) SendTicketStatus(ctx context.Context, ticket domain.TicketView) error {
	subject := fmt.Sprintf("Support ticket %s: %s", ticket.Status, ticket.Subject)
	return n.send(ctx, "ticket_status", ticket.Owner.Email, subject, "ticket_status", ticket)
}
