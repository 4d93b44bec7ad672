package entitlement_test

import (
	"testing"
	"time"

	"course-checkout/internal/domain/entitlement"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntitlement(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	userID, courseID := uuid.New(), uuid.New()

	t.Run("validation", func(t *testing.T) {
		_, err := entitlement.NewEntitlement(uuid.Nil, courseID, "ORD-1", t0, t0.Add(time.Hour))
		assert.ErrorIs(t, err, entitlement.ErrMissingRef)
		_, err = entitlement.NewEntitlement(userID, courseID, "ORD-1", t0, t0)
		assert.ErrorIs(t, err, entitlement.ErrInvalidWindow)
	})

	t.Run("renew replaces the window", func(t *testing.T) {
		first, err := entitlement.NewEntitlement(userID, courseID, "ORD-1", t0, t0.Add(30*24*time.Hour))
		require.NoError(t, err)
		first.Expire()

		t1 := t0.Add(40 * 24 * time.Hour)
		second, err := entitlement.NewEntitlement(userID, courseID, "ORD-2", t1, t1.Add(30*24*time.Hour))
		require.NoError(t, err)

		first.RenewFrom(second)
		assert.Equal(t, "ORD-2", first.OrderNumber())
		assert.Equal(t, t1, first.PurchaseDate())
		assert.Equal(t, second.ExpiresAt(), first.ExpiresAt())
		assert.Equal(t, entitlement.StatusActive, first.Status())
	})

	t.Run("expiry boundary is strict", func(t *testing.T) {
		e, err := entitlement.NewEntitlement(userID, courseID, "ORD-1", t0, t0.Add(time.Hour))
		require.NoError(t, err)
		exp := e.ExpiresAt()

		assert.False(t, e.ExpiredAt(exp.Add(-time.Second)))
		assert.False(t, e.ExpiredAt(exp))
		assert.True(t, e.ExpiredAt(exp.Add(time.Second)))

		assert.True(t, e.Expire())
		assert.False(t, e.Expire())
	})
}
