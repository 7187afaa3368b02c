package domain_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
)

func TestCalculateRefund(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		hoursAhead float64
		wantAmount float64
		wantStatus domain.RefundStatus
	}{
		{"50 hours ahead is a full refund", 50, 200, domain.RefundPending},
		{"exactly 48 hours is a full refund", 48, 200, domain.RefundPending},
		{"30 hours ahead is half", 30, 100, domain.RefundPending},
		{"exactly 24 hours is half", 24, 100, domain.RefundPending},
		{"10 hours ahead is nothing", 10, 0, domain.RefundNone},
		{"pickup already passed is nothing", -5, 0, domain.RefundNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pickup := now.Add(time.Duration(tt.hoursAhead * float64(time.Hour)))

			amount, status := domain.CalculateRefund(200, pickup, now)

			assert.Equal(t, tt.wantAmount, amount)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestPaymentStatusAfterCancel(t *testing.T) {
	assert.Equal(t, domain.PaymentRefunded, domain.PaymentStatusAfterCancel(0.01))
	assert.Equal(t, domain.PaymentCancelled, domain.PaymentStatusAfterCancel(0))
}

func TestBooking_IsTerminal(t *testing.T) {
	for status, want := range map[domain.BookingStatus]bool{
		domain.BookingPending:   false,
		domain.BookingConfirmed: false,
		domain.BookingCancelled: true,
		domain.BookingCompleted: true,
	} {
		b := domain.Booking{Status: status}
		assert.Equal(t, want, b.IsTerminal(), string(status))
	}
}

func TestPrincipal_CanAccess(t *testing.T) {
	owner := uuid.New()

	user := domain.Principal{UserID: owner, Role: domain.RoleUser}
	stranger := domain.Principal{UserID: uuid.New(), Role: domain.RoleUser}
	admin := domain.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}

	assert.True(t, user.CanAccess(owner))
	assert.False(t, stranger.CanAccess(owner))
	assert.True(t, admin.CanAccess(owner))
}

func TestPrincipal_FullName(t *testing.T) {
	assert.Equal(t, "Ada Admin", domain.Principal{FirstName: "Ada", LastName: "Admin"}.FullName())
	assert.Equal(t, "Ada", domain.Principal{FirstName: "Ada"}.FullName())
}

func TestPasswordResetToken_Valid(t *testing.T) {
	now := time.Now()

	fresh := domain.PasswordResetToken{ExpiresAt: now.Add(domain.PasswordResetTTL)}
	used := domain.PasswordResetToken{ExpiresAt: now.Add(time.Minute), Used: true}
	stale := domain.PasswordResetToken{ExpiresAt: now.Add(-time.Second)}

	assert.True(t, fresh.Valid(now))
	assert.False(t, used.Valid(now))
	assert.False(t, stale.Valid(now))
	assert.False(t, fresh.Valid(now.Add(16*time.Minute)))
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("create booking: %w", domain.ErrConflict("vehicle taken"))

	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.True(t, domain.IsKind(err, domain.KindConflict))
	assert.Equal(t, domain.KindInternal, domain.KindOf(fmt.Errorf("boom")))
	assert.False(t, domain.IsKind(nil, domain.KindInternal))
}
