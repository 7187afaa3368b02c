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

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentViewQuery = `
	SELECT p.payment_id, p.booking_id, p.amount, p.payment_status, p.payment_date, p.payment_method,
		p.transaction_id, p.created_at, p.updated_at,
		b.booking_date, b.return_date, b.total_amount, b.booking_status,
		u.user_id, u.first_name, u.last_name, u.email,
		v.vehicle_id, v.rental_rate, v.availability,
		vs.manufacturer, vs.model, vs.year, vs.image1, vs.image2, vs.image3
	FROM payments p
	JOIN bookings b ON p.booking_id = b.booking_id
	JOIN users u ON b.user_id = u.user_id
	JOIN vehicles v ON b.vehicle_id = v.vehicle_id
	JOIN vehicle_specifications vs ON v.vehicle_spec_id = vs.vehicle_spec_id
	`

func scanPaymentView(row interface{ Scan(...any) error }) (*domain.PaymentView, error) {
	var p domain.PaymentView
	var paymentDate sql.NullTime
	var method, txnID, image1, image2, image3 sql.NullString

	if err := row.Scan(
		&p.ID, &p.BookingID, &p.Amount, &p.Status, &paymentDate, &method,
		&txnID, &p.CreatedAt, &p.UpdatedAt,
		&p.Booking.BookingDate, &p.Booking.ReturnDate, &p.Booking.TotalAmount, &p.Booking.Status,
		&p.Booking.User.ID, &p.Booking.User.FirstName, &p.Booking.User.LastName, &p.Booking.User.Email,
		&p.Booking.Vehicle.ID, &p.Booking.Vehicle.RentalRate, &p.Booking.Vehicle.Availability,
		&p.Booking.Vehicle.Manufacturer, &p.Booking.Vehicle.Model, &p.Booking.Vehicle.Year,
		&image1, &image2, &image3,
	); err != nil {
		return nil, err
	}

	p.Booking.ID = p.BookingID
	if paymentDate.Valid {
		p.PaymentDate = &paymentDate.Time
	}
	p.Method = nullString(method)
	p.TransactionID = nullString(txnID)
	p.Booking.Vehicle.Image1 = nullString(image1)
	p.Booking.Vehicle.Image2 = nullString(image2)
	p.Booking.Vehicle.Image3 = nullString(image3)

	return &p, nil
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
	INSERT INTO payments (payment_id, booking_id, amount, payment_status, payment_date, payment_method, transaction_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at, updated_at
	`

	err := conn(ctx, r.db).QueryRowContext(ctx, query,
		payment.ID, payment.BookingID, payment.Amount, payment.Status,
		payment.PaymentDate, payment.Method, payment.TransactionID,
	).Scan(&payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.ErrNotFound("Booking not found")
		}
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, paymentID uuid.UUID) (*domain.PaymentView, error) {
	p, err := scanPaymentView(conn(ctx, r.db).QueryRowContext(ctx, paymentViewQuery+` WHERE p.payment_id = $1`, paymentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound("Payment not found")
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return p, nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]domain.PaymentView, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, paymentViewQuery+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	defer rows.Close()

	payments := []domain.PaymentView{}
	for rows.Next() {
		p, err := scanPaymentView(rows)
		if err != nil {
			return nil, err
		}

		payments = append(payments, *p)
	}

	return payments, rows.Err()
}

func (r *PaymentRepository) Update(ctx context.Context, paymentID uuid.UUID, update domain.PaymentUpdate) error {
	var sets []string
	var args []any

	if update.Status != nil {
		args = append(args, *update.Status)
		sets = append(sets, fmt.Sprintf("payment_status = $%d", len(args)))
		if *update.Status == domain.PaymentCompleted {
			sets = append(sets, "payment_date = COALESCE(payment_date, NOW())")
		}
	}
	if update.Method != nil {
		args = append(args, *update.Method)
		sets = append(sets, fmt.Sprintf("payment_method = $%d", len(args)))
	}
	if update.TransactionID != nil {
		args = append(args, *update.TransactionID)
		sets = append(sets, fmt.Sprintf("transaction_id = $%d", len(args)))
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, paymentID)

	query := fmt.Sprintf(`UPDATE payments SET %s WHERE payment_id = $%d`, strings.Join(sets, ", "), len(args))

	res, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	return affected(res, "Payment not found")
}

// UpdateStatusByBooking moves every payment of the booking to status. A
// booking without payments is not an error.
func (r *PaymentRepository) UpdateStatusByBooking(ctx context.Context, bookingID uuid.UUID, status domain.PaymentStatus) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE payments SET payment_status = $1, updated_at = NOW() WHERE booking_id = $2`, status, bookingID)
	if err != nil {
		return fmt.Errorf("failed to update payments of booking: %w", err)
	}

	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, paymentID uuid.UUID) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM payments WHERE payment_id = $1`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	return affected(res, "Payment not found")
}
