package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
	"github.com/srgjo27/vehicle_rental/internal/core/ports/mocks"
)

type captureTransport struct {
	mu   sync.Mutex
	msgs []Message
	err  error
}

func (c *captureTransport) Deliver(_ context.Context, msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
	return c.err
}

func sampleBooking() domain.BookingView {
	reason := "plans changed"
	refund := 100.0

	return domain.BookingView{
		Booking: domain.Booking{
			ID:                 uuid.New(),
			BookingDate:        time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			ReturnDate:         time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
			TotalAmount:        200,
			Status:             domain.BookingCancelled,
			CancellationReason: &reason,
			RefundAmount:       &refund,
		},
		User:    domain.BookingOwner{FirstName: "Jane", Email: "jane@example.com"},
		Vehicle: domain.BookingVehicle{Spec: domain.VehicleSpec{Manufacturer: "Toyota", Model: "Corolla", Year: 2022}},
	}
}

func TestNotifier_BookingConfirmation(t *testing.T) {
	transport := &captureTransport{}
	n := New(transport)

	err := n.SendBookingConfirmation(context.Background(), sampleBooking())

	require.NoError(t, err)
	require.Len(t, transport.msgs, 1)
	msg := transport.msgs[0]
	assert.Equal(t, "jane@example.com", msg.To)
	assert.Contains(t, msg.Subject, "Booking Confirmed")
	assert.Contains(t, msg.HTML, "Toyota Corolla (2022)")
	assert.Contains(t, msg.HTML, "200.00")
}

func TestNotifier_BookingCancellation(t *testing.T) {
	transport := &captureTransport{}
	n := New(transport)

	require.NoError(t, n.SendBookingCancellation(context.Background(), sampleBooking()))

	assert.Contains(t, transport.msgs[0].HTML, "plans changed")
	assert.Contains(t, transport.msgs[0].HTML, "100.00")
}

func TestNotifier_PasswordResetLinkEscaped(t *testing.T) {
	transport := &captureTransport{}
	n := New(transport)

	user := domain.User{FirstName: "Jane", Email: "jane@example.com"}
	require.NoError(t, n.SendPasswordReset(context.Background(), user, "http://localhost:5173/forgot-password?token=abc"))

	assert.Contains(t, transport.msgs[0].HTML, `href="http://localhost:5173/forgot-password?token=abc"`)
}

func TestNotifier_TransportError(t *testing.T) {
	n := New(&captureTransport{err: errors.New("relay down")})

	err := n.SendWelcome(context.Background(), domain.User{Email: "jane@example.com"})

	assert.ErrorContains(t, err, "deliver welcome email")
}

type fakeSender struct {
	sent []*mail.Msg
}

func (f *fakeSender) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	f.sent = append(f.sent, messages...)
	return nil
}

func TestSMTPTransport_Deliver(t *testing.T) {
	sender := &fakeSender{}
	transport := &SMTPTransport{client: sender, from: "no-reply@vehicle-rental.local"}

	err := transport.Deliver(context.Background(), Message{To: "jane@example.com", Subject: "Hi", HTML: "<p>Hi</p>"})

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	rcpts, err := sender.sent[0].GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"jane@example.com"}, rcpts)
}

func TestSMTPTransport_InvalidRecipient(t *testing.T) {
	transport := &SMTPTransport{client: &fakeSender{}, from: "no-reply@vehicle-rental.local"}

	err := transport.Deliver(context.Background(), Message{To: "not an address"})

	assert.ErrorContains(t, err, "invalid recipient")
}

type fakeWriter struct {
	msgs []kafka.Message
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaTransport_Deliver(t *testing.T) {
	writer := &fakeWriter{}
	transport := &KafkaTransport{writer: writer}

	msg := Message{Kind: "welcome", To: "jane@example.com", Subject: "Welcome", HTML: "<p>hi</p>"}
	require.NoError(t, transport.Deliver(context.Background(), msg))

	require.Len(t, writer.msgs, 1)
	assert.Equal(t, []byte("jane@example.com"), writer.msgs[0].Key)

	var decoded Message
	require.NoError(t, json.Unmarshal(writer.msgs[0].Value, &decoded))
	assert.Equal(t, msg, decoded)
}

func TestAsync_DispatchesInBackground(t *testing.T) {
	inner := mocks.NewNotifier(t)
	async := NewAsync(inner, zap.NewNop())

	user := domain.User{Email: "jane@example.com"}
	inner.On("SendWelcome", mock.Anything, user).Return(errors.New("smtp down"))

	err := async.SendWelcome(context.Background(), user)
	async.Wait()

	assert.NoError(t, err)
}

func TestAsync_SurvivesRequestCancellation(t *testing.T) {
	inner := mocks.NewNotifier(t)
	async := NewAsync(inner, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	ticket := domain.TicketView{}

	var sendErr error
	inner.On("SendTicketStatus", mock.Anything, ticket).Return(nil).Run(func(args mock.Arguments) {
		sendErr = args.Get(0).(context.Context).Err()
	})

	_ = async.SendTicketStatus(ctx, ticket)
	cancel()
	async.Wait()

	assert.NoError(t, sendErr)
}
