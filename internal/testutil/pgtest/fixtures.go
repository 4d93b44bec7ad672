//go:build e2e

package pgtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func InsertUser(t *testing.T, pool *pgxpool.Pool, email string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, password_hash, role, first_name, last_name) VALUES ($1, $2, 'x', 'customer', 'Test', 'User')`,
		id, email)
	require.NoError(t, err)
	return id
}

func InsertCourse(t *testing.T, pool *pgxpool.Pool, slug string, netCents int64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO courses (id, slug, title, price_net_cents) VALUES ($1, $2, $2, $3)`,
		id, slug, netCents)
	require.NoError(t, err)
	return id
}

// InsertOffering creates an offering with one date slot and returns both ids.
func InsertOffering(t *testing.T, pool *pgxpool.Pool, courseID uuid.UUID, startsAt time.Time, spots int) (offeringID, dateID uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	offeringID, dateID = uuid.New(), uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO practical_offerings (id, course_id, title, location_name, street, city, seat_price_net_cents, plastic_card_net_cents)
		 VALUES ($1, $2, 'Practical training', 'Center', 'Street 1', 'Berlin', 24900, 1000)`,
		offeringID, courseID)
	require.NoError(t, err)
	_, err = pool.Exec(ctx,
		`INSERT INTO offering_dates (id, offering_id, starts_at, ends_at, available_spots) VALUES ($1, $2, $3, $4, $5)`,
		dateID, offeringID, startsAt, startsAt.Add(8*time.Hour), spots)
	require.NoError(t, err)
	return offeringID, dateID
}

func AvailableSpots(t *testing.T, pool *pgxpool.Pool, dateID uuid.UUID) int {
	t.Helper()
	var spots int
	err := pool.QueryRow(context.Background(), `SELECT available_spots FROM offering_dates WHERE id = $1`, dateID).Scan(&spots)
	require.NoError(t, err)
	return spots
}
