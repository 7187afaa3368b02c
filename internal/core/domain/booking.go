package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
	BookingCompleted BookingStatus = "Completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

type RefundStatus string

const (
	RefundPending RefundStatus = "pending"
	RefundNone    RefundStatus = "none"
)

type Booking struct {
	ID                 uuid.UUID     `json:"booking_id"`
	UserID             uuid.UUID     `json:"user_id"`
	VehicleID          uuid.UUID     `json:"vehicle_id"`
	BookingDate        time.Time     `json:"booking_date"`
	ReturnDate         time.Time     `json:"return_date"`
	TotalAmount        float64       `json:"total_amount"`
	Status             BookingStatus `json:"booking_status"`
	CancellationReason *string       `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`
	RefundAmount       *float64      `json:"refund_amount,omitempty"`
	RefundStatus       *RefundStatus `json:"refund_status,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// IsTerminal reports whether the booking can no longer be cancelled.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingCancelled || b.Status == BookingCompleted
}

type BookingOwner struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	Role         Role    `json:"role"`
}

type BookingVehicle struct {
	RentalRate   float64      `json:"rental_rate"`
	Availability Availability `json:"availability"`
	Spec         VehicleSpec  `json:"specification"`
}

type BookingPayment struct {
	ID            uuid.UUID     `json:"payment_id"`
	Status        PaymentStatus `json:"payment_status"`
	PaymentDate   *time.Time    `json:"payment_date"`
	Method        *string       `json:"payment_method"`
	TransactionID *string       `json:"transaction_id"`
}

// BookingView is the joined booking returned by the API.
type BookingView struct {
	Booking
	User    BookingOwner    `json:"user"`
	Vehicle BookingVehicle  `json:"vehicle"`
	Payment *BookingPayment `json:"payment"`
}

type BookingFilter struct {
	UserID *uuid.UUID
}

// BookingUpdate carries the fields of an administrative sparse update.
type BookingUpdate struct {
	Status      *BookingStatus
	TotalAmount *float64
	ReturnDate  *time.Time
}

func (u BookingUpdate) Empty() bool {
	return u.Status == nil && u.TotalAmount == nil && u.ReturnDate == nil
}

type Cancellation struct {
	Reason       string
	CancelledAt  time.Time
	RefundAmount float64
	RefundStatus RefundStatus
}

const (
	fullRefundWindow = 48 * time.Hour
	halfRefundWindow = 24 * time.Hour
)

// CalculateRefund applies the cancellation policy: 100% at least 48 hours
// before pickup, 50% at least 24 hours before, nothing after that.
func CalculateRefund(total float64, pickup, now time.Time) (float64, RefundStatus) {
	until := pickup.Sub(now)

	switch {
	case until >= fullRefundWindow:
		return total, RefundPending
	case until >= halfRefundWindow:
		return total * 0.5, RefundPending
	default:
		return 0, RefundNone
	}
}

// PaymentStatusAfterCancel is the status a booking's payment moves to when
// the booking is cancelled with the given refund.
func PaymentStatusAfterCancel(refund float64) PaymentStatus {
	if refund > 0 {
		return PaymentRefunded
	}
	return PaymentCancelled
}
