//go:build unit

package booking_test

import (
	"testing"
	"time"

	"careserve/internal/domain/booking"
	"careserve/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryCreateBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusPending, actual.Status())
		assert.Equal(t, b.ClientID, actual.ClientID())
		assert.Equal(t, b.ProID, actual.ProID())
		assert.Equal(t, b.ServiceID, actual.ServiceID())
		assert.Nil(t, actual.ActualStart())
		assert.Nil(t, actual.ActualEnd())
		assert.Equal(t, "40.00", actual.ServicePrice().String())
		assert.Equal(t, "6.00", actual.PlatformFee().String())
		assert.Equal(t, "46.00", actual.TotalAmount().String())
		assert.Equal(t, b.CreatedAt, actual.CreatedAt())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("inherits franchise from service", func(t *testing.T) {
		franchiseID := uuid.New()
		actual, err := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.FranchiseID = &franchiseID }).
			BuildDomain()
		require.NoError(t, err)

		require.NotNil(t, actual.FranchiseID())
		assert.Equal(t, franchiseID, *actual.FranchiseID())
	})

	t.Run("unique booking IDs", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		first, err := b.BuildDomain()
		require.NoError(t, err)
		second, err := b.BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, first.ID(), second.ID())
	})
}

func TestBookingTransition(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	fromStatus := func(t *testing.T, status booking.Status) *booking.Booking {
		t.Helper()
		b, err := builder.NewBookingBuilder().
			With(func(bb *builder.BookingBuilder) { bb.Status = status }).
			BuildReconstructed()
		require.NoError(t, err)
		return b
	}

	t.Run("confirm", func(t *testing.T) {
		b := fromStatus(t, booking.StatusPending)
		require.NoError(t, b.Transition(booking.StatusConfirmed, now))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Nil(t, b.ActualStart())
	})

	t.Run("start records actual start", func(t *testing.T) {
		b := fromStatus(t, booking.StatusConfirmed)
		require.NoError(t, b.Transition(booking.StatusInProgress, now))

		require.NotNil(t, b.ActualStart())
		assert.Equal(t, now, *b.ActualStart())
		assert.Nil(t, b.ActualEnd())
	})

	t.Run("complete records actual end", func(t *testing.T) {
		b := fromStatus(t, booking.StatusInProgress)
		require.NoError(t, b.Transition(booking.StatusCompleted, now))

		require.NotNil(t, b.ActualEnd())
		assert.Equal(t, now, *b.ActualEnd())
	})

	t.Run("refund after completion", func(t *testing.T) {
		b := fromStatus(t, booking.StatusCompleted)
		require.NoError(t, b.Transition(booking.StatusRefunded, now))
		assert.Equal(t, booking.StatusRefunded, b.Status())
	})

	t.Run("cancel from pending and confirmed only", func(t *testing.T) {
		for _, status := range []booking.Status{booking.StatusPending, booking.StatusConfirmed} {
			b := fromStatus(t, status)
			assert.NoError(t, b.Transition(booking.StatusCancelled, now), "from %s", status)
		}
		for _, status := range []booking.Status{booking.StatusInProgress, booking.StatusCompleted, booking.StatusRefunded} {
			b := fromStatus(t, status)
			assert.ErrorIs(t, b.Transition(booking.StatusCancelled, now), booking.ErrInvalidTransition, "from %s", status)
		}
	})

	t.Run("invalid transition leaves state untouched", func(t *testing.T) {
		b := fromStatus(t, booking.StatusPending)
		err := b.Transition(booking.StatusCompleted, now)

		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Nil(t, b.ActualEnd())
	})
}
