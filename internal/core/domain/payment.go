package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentRefunded  PaymentStatus = "Refunded"
	PaymentCancelled PaymentStatus = "Cancelled"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentRefunded, PaymentCancelled:
		return true
	}
	return false
}

type Payment struct {
	ID            uuid.UUID     `json:"payment_id"`
	BookingID     uuid.UUID     `json:"booking_id"`
	Amount        float64       `json:"amount"`
	Status        PaymentStatus `json:"payment_status"`
	PaymentDate   *time.Time    `json:"payment_date"`
	Method        *string       `json:"payment_method"`
	TransactionID *string       `json:"transaction_id"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type PaymentBookingUser struct {
	ID        uuid.UUID `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

type PaymentBookingVehicle struct {
	ID           uuid.UUID    `json:"vehicle_id"`
	RentalRate   float64      `json:"rental_rate"`
	Availability Availability `json:"availability"`
	Manufacturer string       `json:"manufacturer"`
	Model        string       `json:"model"`
	Year         int          `json:"year"`
	Image1       *string      `json:"image1"`
	Image2       *string      `json:"image2"`
	Image3       *string      `json:"image3"`
}

type PaymentBooking struct {
	ID          uuid.UUID             `json:"booking_id"`
	BookingDate time.Time             `json:"booking_date"`
	ReturnDate  time.Time             `json:"return_date"`
	TotalAmount float64               `json:"total_amount"`
	Status      BookingStatus         `json:"booking_status"`
	User        PaymentBookingUser    `json:"user"`
	Vehicle     PaymentBookingVehicle `json:"vehicle"`
}

// PaymentView is a payment with a summary of its booking.
type PaymentView struct {
	Payment
	Booking PaymentBooking `json:"booking"`
}

type PaymentUpdate struct {
	Status        *PaymentStatus
	Method        *string
	TransactionID *string
}

func (u PaymentUpdate) Empty() bool {
	return u.Status == nil && u.Method == nil && u.TransactionID == nil
}
