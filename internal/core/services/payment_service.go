package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
	"github.com/srgjo27/vehicle_rental/internal/core/ports"
)

var paymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rental_payments_recorded_total",
	Help: "The total number of payments recorded, by status",
}, []string{"status"})

type CreatePaymentRequest struct {
	BookingID     uuid.UUID            `json:"booking_id" validate:"required"`
	Amount        float64              `json:"amount" validate:"required,gt=0"`
	Status        domain.PaymentStatus `json:"payment_status,omitempty"`
	Method        *string              `json:"payment_method"`
	TransactionID *string              `json:"transaction_id"`
}

type UpdatePaymentRequest struct {
	Status        *domain.PaymentStatus `json:"payment_status"`
	Method        *string               `json:"payment_method"`
	TransactionID *string               `json:"transaction_id"`
}

type PaymentService struct {
	payments ports.PaymentRepository
	bookings ports.BookingRepository
	now      func() time.Time
}

func NewPaymentService(payments ports.PaymentRepository, bookings ports.BookingRepository) *PaymentService {
	return &PaymentService{
		payments: payments,
		bookings: bookings,
		now:      time.Now,
	}
}

func (s *PaymentService) ListPayments(ctx context.Context) ([]domain.PaymentView, error) {
	return s.payments.List(ctx)
}

func (s *PaymentService) GetPayment(ctx context.Context, caller domain.Principal, paymentID uuid.UUID) (*domain.PaymentView, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if !caller.CanAccess(payment.Booking.User.ID) {
		return nil, domain.ErrAccessDenied("Access denied")
	}

	return payment, nil
}

// CreatePayment records a payment for an existing booking owned by the
// caller, or any booking when the caller is an admin.
func (s *PaymentService) CreatePayment(ctx context.Context, caller domain.Principal, req CreatePaymentRequest) (*domain.PaymentView, error) {
	status := domain.PaymentCompleted
	if req.Status != "" {
		if !req.Status.Valid() {
			return nil, domain.ErrValidation("Invalid payment status")
		}
		status = req.Status
	}

	booking, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if !caller.CanAccess(booking.UserID) {
		return nil, domain.ErrAccessDenied("You can only pay for your own bookings")
	}

	now := s.now()
	payment := &domain.Payment{
		ID:            uuid.New(),
		BookingID:     booking.ID,
		Amount:        req.Amount,
		Status:        status,
		PaymentDate:   &now,
		Method:        req.Method,
		TransactionID: req.TransactionID,
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	paymentsRecorded.WithLabelValues(string(status)).Inc()

	return s.payments.GetByID(ctx, payment.ID)
}

func (s *PaymentService) UpdatePayment(ctx context.Context, paymentID uuid.UUID, req UpdatePaymentRequest) (*domain.PaymentView, error) {
	update := domain.PaymentUpdate{
		Status:        req.Status,
		Method:        req.Method,
		TransactionID: req.TransactionID,
	}

	if update.Empty() {
		return nil, domain.ErrNoOp("No fields to update")
	}

	if update.Status != nil && !update.Status.Valid() {
		return nil, domain.ErrValidation("Invalid payment status")
	}

	if err := s.payments.Update(ctx, paymentID, update); err != nil {
		return nil, err
	}

	return s.payments.GetByID(ctx, paymentID)
}

func (s *PaymentService) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	return s.payments.Delete(ctx, paymentID)
}

// PaymentOwner resolves the owner of the payment's booking.
func (s *PaymentService) PaymentOwner(ctx context.Context, paymentID uuid.UUID) (uuid.UUID, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return uuid.Nil, err
	}

	return payment.Booking.User.ID, nil
}
