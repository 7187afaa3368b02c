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

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// The latest payment of a booking is joined laterally so that extra
// payments never duplicate booking rows.
const bookingViewQuery = `
	SELECT b.booking_id, b.user_id, b.vehicle_id, b.booking_date, b.return_date, b.total_amount,
		b.booking_status, b.cancellation_reason, b.cancelled_at, b.refund_amount, b.refund_status,
		b.created_at, b.updated_at,
		u.first_name, u.last_name, u.email, u.contact_phone, u.address, u.role,
		v.rental_rate, v.availability,
		vs.vehicle_spec_id, vs.manufacturer, vs.model, vs.year, vs.fuel_type, vs.engine_capacity,
		vs.transmission, vs.seating_capacity, vs.color, vs.features, vs.image1, vs.image2, vs.image3,
		p.payment_id, p.payment_status, p.payment_date, p.payment_method, p.transaction_id
	FROM bookings b
	JOIN users u ON b.user_id = u.user_id
	JOIN vehicles v ON b.vehicle_id = v.vehicle_id
	JOIN vehicle_specifications vs ON v.vehicle_spec_id = vs.vehicle_spec_id
	LEFT JOIN LATERAL (
		SELECT payment_id, payment_status, payment_date, payment_method, transaction_id
		FROM payments
		WHERE payments.booking_id = b.booking_id
		ORDER BY created_at DESC
		LIMIT 1
	) p ON TRUE
	`

func scanBookingView(row interface{ Scan(...any) error }) (*domain.BookingView, error) {
	var b domain.BookingView
	var s specScan
	var (
		reason, refundStatus                sql.NullString
		cancelledAt, paymentDate            sql.NullTime
		refundAmount                        sql.NullFloat64
		phone, address                      sql.NullString
		paymentID                           uuid.NullUUID
		paymentStatus, paymentMethod, txnID sql.NullString
	)

	dest := []any{
		&b.ID, &b.UserID, &b.VehicleID, &b.BookingDate, &b.ReturnDate, &b.TotalAmount,
		&b.Status, &reason, &cancelledAt, &refundAmount, &refundStatus,
		&b.CreatedAt, &b.UpdatedAt,
		&b.User.FirstName, &b.User.LastName, &b.User.Email, &phone, &address, &b.User.Role,
		&b.Vehicle.RentalRate, &b.Vehicle.Availability,
	}
	dest = append(dest, s.dest(&b.Vehicle.Spec)...)
	dest = append(dest, &paymentID, &paymentStatus, &paymentDate, &paymentMethod, &txnID)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	s.apply(&b.Vehicle.Spec)
	b.User.ContactPhone = nullString(phone)
	b.User.Address = nullString(address)
	b.CancellationReason = nullString(reason)

	if cancelledAt.Valid {
		b.CancelledAt = &cancelledAt.Time
	}
	if refundAmount.Valid {
		b.RefundAmount = &refundAmount.Float64
	}
	if refundStatus.Valid {
		rs := domain.RefundStatus(refundStatus.String)
		b.RefundStatus = &rs
	}

	if paymentID.Valid {
		b.Payment = &domain.BookingPayment{
			ID:            paymentID.UUID,
			Status:        domain.PaymentStatus(paymentStatus.String),
			Method:        nullString(paymentMethod),
			TransactionID: nullString(txnID),
		}
		if paymentDate.Valid {
			b.Payment.PaymentDate = &paymentDate.Time
		}
	}

	return &b, nil
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
	INSERT INTO bookings (booking_id, user_id, vehicle_id, booking_date, return_date, total_amount, booking_status)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at, updated_at
	`

	err := conn(ctx, r.db).QueryRowContext(ctx, query,
		booking.ID, booking.UserID, booking.VehicleID, booking.BookingDate, booking.ReturnDate,
		booking.TotalAmount, booking.Status,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.ErrNotFound("User or vehicle not found")
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.BookingView, error) {
	b, err := scanBookingView(conn(ctx, r.db).QueryRowContext(ctx, bookingViewQuery+` WHERE b.booking_id = $1`, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound("Booking not found")
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return b, nil
}

func (r *BookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]domain.BookingView, error) {
	query := bookingViewQuery
	var args []any

	if filter.UserID != nil {
		query += ` WHERE b.user_id = $1`
		args = append(args, *filter.UserID)
	}
	query += ` ORDER BY b.created_at DESC`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	defer rows.Close()

	bookings := []domain.BookingView{}
	for rows.Next() {
		b, err := scanBookingView(rows)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, *b)
	}

	return bookings, rows.Err()
}

func (r *BookingRepository) Update(ctx context.Context, bookingID uuid.UUID, update domain.BookingUpdate) error {
	var sets []string
	var args []any

	if update.Status != nil {
		args = append(args, *update.Status)
		sets = append(sets, fmt.Sprintf("booking_status = $%d", len(args)))
	}
	if update.TotalAmount != nil {
		args = append(args, *update.TotalAmount)
		sets = append(sets, fmt.Sprintf("total_amount = $%d", len(args)))
	}
	if update.ReturnDate != nil {
		args = append(args, *update.ReturnDate)
		sets = append(sets, fmt.Sprintf("return_date = $%d", len(args)))
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, bookingID)

	query := fmt.Sprintf(`UPDATE bookings SET %s WHERE booking_id = $%d`, strings.Join(sets, ", "), len(args))

	res, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	return affected(res, "Booking not found")
}

func (r *BookingRepository) Cancel(ctx context.Context, bookingID uuid.UUID, c domain.Cancellation) error {
	query := `
	UPDATE bookings
	SET booking_status = $1,
		cancellation_reason = $2,
		cancelled_at = $3,
		refund_amount = $4,
		refund_status = $5,
		updated_at = NOW()
	WHERE booking_id = $6 AND booking_status NOT IN ($7, $8)
	`

	res, err := conn(ctx, r.db).ExecContext(ctx, query,
		domain.BookingCancelled, c.Reason, c.CancelledAt, c.RefundAmount, c.RefundStatus,
		bookingID, domain.BookingCancelled, domain.BookingCompleted,
	)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.ErrInvalidState("Booking can no longer be cancelled")
	}

	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, bookingID uuid.UUID) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM bookings WHERE booking_id = $1`, bookingID)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	return affected(res, "Booking not found")
}
