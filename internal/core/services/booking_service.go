package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
	"github.com/srgjo27/vehicle_rental/internal/core/ports"
)

var (
	bookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rental_bookings_created_total",
		Help: "The total number of bookings created",
	})
	bookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rental_bookings_cancelled_total",
		Help: "The total number of bookings cancelled by their owner",
	})
	bookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rental_booking_conflicts_total",
		Help: "The total number of bookings rejected because the vehicle was taken",
	})
)

type CreateBookingRequest struct {
	UserID      *uuid.UUID           `json:"user_id"`
	VehicleID   uuid.UUID            `json:"vehicle_id" validate:"required"`
	BookingDate time.Time            `json:"booking_date" validate:"required"`
	ReturnDate  time.Time            `json:"return_date" validate:"required"`
	TotalAmount float64              `json:"total_amount" validate:"required,gt=0"`
	Status      domain.BookingStatus `json:"booking_status,omitempty"`
}

type UpdateBookingRequest struct {
	Status      *domain.BookingStatus `json:"booking_status"`
	TotalAmount *float64              `json:"total_amount" validate:"omitempty,gt=0"`
	ReturnDate  *time.Time            `json:"return_date"`
}

// bookingDateLayouts are tried in order. A bare date is midnight UTC.
var bookingDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly}

func parseBookingDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range bookingDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.ErrValidation(field + " must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
}

func (r *CreateBookingRequest) UnmarshalJSON(data []byte) error {
	type plain CreateBookingRequest
	aux := struct {
		*plain
		BookingDate string `json:"booking_date"`
		ReturnDate  string `json:"return_date"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if r.BookingDate, err = parseBookingDate("booking_date", aux.BookingDate); err != nil {
		return err
	}
	r.ReturnDate, err = parseBookingDate("return_date", aux.ReturnDate)
	return err
}

func (r *UpdateBookingRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateBookingRequest
	aux := struct {
		*plain
		ReturnDate *string `json:"return_date"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.ReturnDate == nil {
		return nil
	}

	t, err := parseBookingDate("return_date", *aux.ReturnDate)
	if err != nil {
		return err
	}
	if !t.IsZero() {
		r.ReturnDate = &t
	}
	return nil
}

type CancelBookingRequest struct {
	Reason string `json:"cancellation_reason"`
}

// CancelBookingResponse is the refreshed booking plus the refund outcome.
type CancelBookingResponse struct {
	Booking      *domain.BookingView `json:"booking"`
	RefundAmount float64             `json:"refund_amount"`
	RefundStatus domain.RefundStatus `json:"refund_status"`
}

type BookingService struct {
	tx       ports.Transactor
	bookings ports.BookingRepository
	vehicles ports.VehicleRepository
	payments ports.PaymentRepository
	notifier ports.Notifier
	cache    *redis.Client
	logger   *zap.Logger
	now      func() time.Time
}

func NewBookingService(
	tx ports.Transactor,
	bookings ports.BookingRepository,
	vehicles ports.VehicleRepository,
	payments ports.PaymentRepository,
	notifier ports.Notifier,
	cache *redis.Client,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		tx:       tx,
		bookings: bookings,
		vehicles: vehicles,
		payments: payments,
		notifier: notifier,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, caller domain.Principal, req CreateBookingRequest) (*domain.BookingView, error) {
	userID := caller.UserID
	if req.UserID != nil && *req.UserID != uuid.Nil {
		userID = *req.UserID
	}

	if !caller.CanAccess(userID) {
		return nil, domain.ErrAccessDenied("You can only create bookings for yourself")
	}

	status := domain.BookingPending
	if req.Status != "" {
		if !req.Status.Valid() {
			return nil, domain.ErrValidation("Invalid booking status")
		}
		status = req.Status
	}

	vehicle, err := s.vehicles.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	if !vehicle.IsAvailable() {
		bookingConflicts.Inc()
		return nil, domain.NewError(domain.KindConflict, "Vehicle %s %s is not available", vehicle.Spec.Manufacturer, vehicle.Spec.Model)
	}

	booking := &domain.Booking{
		ID:          uuid.New(),
		UserID:      userID,
		VehicleID:   vehicle.ID,
		BookingDate: req.BookingDate,
		ReturnDate:  req.ReturnDate,
		TotalAmount: req.TotalAmount,
		Status:      status,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.vehicles.MarkUnavailable(ctx, vehicle.ID); err != nil {
			return err
		}

		if err := s.bookings.Create(ctx, booking); err != nil {
			return err
		}

		return s.payments.Create(ctx, &domain.Payment{
			ID:        uuid.New(),
			BookingID: booking.ID,
			Amount:    booking.TotalAmount,
			Status:    domain.PaymentPending,
		})
	})
	if err != nil {
		if domain.IsKind(err, domain.KindConflict) {
			bookingConflicts.Inc()
		}
		return nil, err
	}

	bookingsCreated.Inc()
	invalidateVehicle(ctx, s.cache, s.logger, vehicle.ID)

	view, err := s.bookings.GetByID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.SendBookingConfirmation(ctx, *view); err != nil {
		s.logger.Warn("failed to send booking confirmation", zap.String("booking_id", view.ID.String()), zap.Error(err))
	}

	return view, nil
}

func (s *BookingService) GetBooking(ctx context.Context, caller domain.Principal, bookingID uuid.UUID) (*domain.BookingView, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !caller.CanAccess(booking.UserID) {
		return nil, domain.ErrAccessDenied("Access denied")
	}

	return booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context, caller domain.Principal) ([]domain.BookingView, error) {
	var filter domain.BookingFilter
	if !caller.IsAdmin() {
		filter.UserID = &caller.UserID
	}

	return s.bookings.List(ctx, filter)
}

func (s *BookingService) UpdateBooking(ctx context.Context, bookingID uuid.UUID, req UpdateBookingRequest) (*domain.BookingView, error) {
	update := domain.BookingUpdate{
		Status:      req.Status,
		TotalAmount: req.TotalAmount,
		ReturnDate:  req.ReturnDate,
	}

	if update.Empty() {
		return nil, domain.ErrNoOp("No fields to update")
	}

	if update.Status != nil && !update.Status.Valid() {
		return nil, domain.ErrValidation("Invalid booking status")
	}

	if err := s.bookings.Update(ctx, bookingID, update); err != nil {
		return nil, err
	}

	return s.bookings.GetByID(ctx, bookingID)
}

// CancelBooking cancels the caller's own booking and applies the refund
// policy. Admins get no override here.
func (s *BookingService) CancelBooking(ctx context.Context, caller domain.Principal, bookingID uuid.UUID, req CancelBookingRequest) (*CancelBookingResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, domain.ErrValidation("Cancellation reason is required")
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != caller.UserID {
		return nil, domain.ErrAccessDenied("You can only cancel your own bookings")
	}

	if booking.IsTerminal() {
		if booking.Status == domain.BookingCancelled {
			return nil, domain.ErrInvalidState("Booking is already cancelled")
		}
		return nil, domain.ErrInvalidState("Cannot cancel a completed booking")
	}

	now := s.now()
	refund, refundStatus := domain.CalculateRefund(booking.TotalAmount, booking.BookingDate, now)

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		err := s.bookings.Cancel(ctx, bookingID, domain.Cancellation{
			Reason:       reason,
			CancelledAt:  now,
			RefundAmount: refund,
			RefundStatus: refundStatus,
		})
		if err != nil {
			return err
		}

		if err := s.vehicles.SetAvailability(ctx, booking.VehicleID, domain.VehicleAvailable); err != nil {
			return err
		}

		return s.payments.UpdateStatusByBooking(ctx, bookingID, domain.PaymentStatusAfterCancel(refund))
	})
	if err != nil {
		return nil, err
	}

	bookingsCancelled.Inc()
	invalidateVehicle(ctx, s.cache, s.logger, booking.VehicleID)

	view, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.SendBookingCancellation(ctx, *view); err != nil {
		s.logger.Warn("failed to send cancellation email", zap.String("booking_id", view.ID.String()), zap.Error(err))
	}

	return &CancelBookingResponse{
		Booking:      view,
		RefundAmount: refund,
		RefundStatus: refundStatus,
	}, nil
}

// DeleteBooking removes the booking with its payments and releases the
// vehicle, whatever state the booking was in.
func (s *BookingService) DeleteBooking(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.bookings.Delete(ctx, bookingID); err != nil {
			return err
		}

		return s.vehicles.SetAvailability(ctx, booking.VehicleID, domain.VehicleAvailable)
	})
	if err != nil {
		return fmt.Errorf("delete booking %s: %w", bookingID, err)
	}

	invalidateVehicle(ctx, s.cache, s.logger, booking.VehicleID)

	return nil
}

// BookingOwner resolves the owner of a booking for authorization checks.
func (s *BookingService) BookingOwner(ctx context.Context, bookingID uuid.UUID) (uuid.UUID, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return uuid.Nil, err
	}

	return booking.UserID, nil
}
