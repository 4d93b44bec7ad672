//go:build e2e

package uow_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"course-checkout/internal/domain/booking"
	"course-checkout/internal/domain/order"
	sqlc "course-checkout/internal/infra/sqlc/generated"
	"course-checkout/internal/infra/uow"
	"course-checkout/internal/testutil/builder"
	"course-checkout/internal/testutil/pgtest"
	"course-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const racers = 20

func TestOrderStatusCompareAndSet(t *testing.T) {
	pool := pgtest.NewPool(t)
	ctx := context.Background()
	u := uow.NewPostgresUoW(pool, sqlc.New(), "Plastic certificate card")

	userID := pgtest.InsertUser(t, pool, "race@example.com")
	pending := builder.NewOnlineOrderBuilder().With(func(b *builder.OrderBuilder) { b.UserID = userID }).MustBuild(t)
	require.NoError(t, u.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Orders().Create(ctx, tx.DB(), pending)
	}))

	var (
		wg      sync.WaitGroup
		winners atomic.Int32
		start   = make(chan struct{})
	)
	for i := range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := u.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
				o, err := tx.Orders().FindByNumber(ctx, tx.DB(), pending.Number())
				if err != nil {
					return err
				}
				if o.Status() != order.StatusPending {
					return nil
				}
				if err := o.MarkPaid(builder.BaseTime.Add(time.Duration(i)*time.Second), "pi_race", 30*24*time.Hour); err != nil {
					return err
				}
				ok, err := tx.Orders().SaveTransition(ctx, tx.DB(), o, order.StatusPending)
				if err != nil {
					return err
				}
				if ok {
					winners.Add(1)
				}
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())

	var stored *order.Order
	require.NoError(t, u.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		stored, err = tx.Orders().FindByNumber(ctx, tx.DB(), pending.Number())
		return err
	}))
	assert.Equal(t, order.StatusPaid, stored.Status())
	require.NotNil(t, stored.ExpiresAt())
	assert.Equal(t, "pi_race", stored.PaymentIntentID())
}

func TestSeatCounterFloor(t *testing.T) {
	pool := pgtest.NewPool(t)
	ctx := context.Background()
	u := uow.NewPostgresUoW(pool, sqlc.New(), "Plastic certificate card")

	courseID := pgtest.InsertCourse(t, pool, "first-aid", 4900)
	offeringID, dateID := pgtest.InsertOffering(t, pool, courseID, builder.BaseTime.Add(14*24*time.Hour), 3)

	var (
		wg      sync.WaitGroup
		changed atomic.Int32
		floor   atomic.Int32
		start   = make(chan struct{})
	)
	for range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := u.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
				res, err := tx.Seats().Decrement(ctx, tx.DB(), offeringID, dateID)
				if err != nil {
					return err
				}
				switch res {
				case shared.SeatChanged:
					changed.Add(1)
				case shared.SeatAtFloor:
					floor.Add(1)
				}
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(3), changed.Load())
	assert.Equal(t, int32(racers-3), floor.Load())
	assert.Equal(t, 0, pgtest.AvailableSpots(t, pool, dateID))

	t.Run("release restores one seat", func(t *testing.T) {
		require.NoError(t, u.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
			res, err := tx.Seats().Increment(ctx, tx.DB(), offeringID, dateID)
			assert.Equal(t, shared.SeatChanged, res)
			return err
		}))
		assert.Equal(t, 1, pgtest.AvailableSpots(t, pool, dateID))
	})

	t.Run("unknown slot", func(t *testing.T) {
		require.NoError(t, u.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
			res, err := tx.Seats().Decrement(ctx, tx.DB(), offeringID, uuid.New())
			assert.Equal(t, shared.SeatSlotMissing, res)
			return err
		}))
	})
}

func TestParticipantUniqueness(t *testing.T) {
	pool := pgtest.NewPool(t)
	ctx := context.Background()
	u := uow.NewPostgresUoW(pool, sqlc.New(), "Plastic certificate card")

	userID := pgtest.InsertUser(t, pool, "seat@example.com")
	courseID := pgtest.InsertCourse(t, pool, "practical", 24900)
	offeringID, dateID := pgtest.InsertOffering(t, pool, courseID, builder.BaseTime.Add(14*24*time.Hour), 5)

	newOrder := func() *order.Order {
		o := builder.NewPracticalOrderBuilder().With(func(b *builder.OrderBuilder) {
			b.UserID = userID
			b.Practical.OfferingID = offeringID
			b.Practical.DateID = dateID
		}).MustBuild(t)
		require.NoError(t, u.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Orders().Create(ctx, tx.DB(), o)
		}))
		return o
	}
	insert := func(o *order.Order) bool {
		p, err := booking.NewParticipant(booking.NewParticipantParams{
			OrderID: o.ID(), OrderNumber: o.Number(), UserID: userID,
			OfferingID: offeringID, DateID: dateID, Now: builder.BaseTime,
		})
		require.NoError(t, err)
		var ok bool
		require.NoError(t, u.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
			ok, err = tx.Participants().Insert(ctx, tx.DB(), p)
			return err
		}))
		return ok
	}

	first := newOrder()
	assert.True(t, insert(first))
	assert.False(t, insert(first), "same order twice")
	assert.False(t, insert(newOrder()), "same user on the same slot")
}
