package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		first_name VARCHAR(50) NOT NULL,
		last_name VARCHAR(50) NOT NULL,
		email VARCHAR(50) NOT NULL UNIQUE,
		role VARCHAR(10) NOT NULL,
		token VARCHAR(50)
	)`,
	`CREATE TABLE IF NOT EXISTS parkings (
		id SERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id SERIAL PRIMARY KEY,
		created_by_user INT,
		parking_spot INT,
		start_date_time TIMESTAMP NOT NULL,
		end_date_time TIMESTAMP NOT NULL,
		created_at TIMESTAMP DEFAULT(now() AT TIME ZONE 'UTC'),
		updated_at TIMESTAMP DEFAULT(now() AT TIME ZONE 'UTC'),
		CONSTRAINT fk_users FOREIGN KEY(created_by_user) REFERENCES users(id),
		CONSTRAINT fk_parkings FOREIGN KEY(parking_spot) REFERENCES parkings(id)
	)`,
	`ALTER TABLE bookings
		ALTER COLUMN created_at SET DEFAULT (now() AT TIME ZONE 'UTC'),
		ALTER COLUMN updated_at SET DEFAULT (now() AT TIME ZONE 'UTC')`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_parking_timeframe
		ON bookings (parking_spot, start_date_time, end_date_time)`,
}

var seedStatements = []string{
	`INSERT INTO users (first_name, last_name, email, role) VALUES
		('FName-1', 'LName-1', 'email-1@example.com', 'admin'),
		('FName-2', 'LName-2', 'email-2@example.com', 'standard'),
		('FName-3', 'LName-3', 'email-3@example.com', 'standard'),
		('FName-4', 'LName-4', 'email-4@example.com', 'standard'),
		('FName-5', 'LName-5', 'email-5@example.com', 'standard')
	ON CONFLICT (email) DO NOTHING`,
	`INSERT INTO parkings (name)
	SELECT v.name FROM (VALUES ('Parking 1'), ('Parking 2'), ('Parking 3')) AS v(name)
	WHERE NOT EXISTS (SELECT 1 FROM parkings)`,
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, db Execer) error {
	for i, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i+1, err)
		}
	}
	return nil
}

// Seed inserts the demo users (user 1 is the admin) and parkings. Running it twice is harmless.
func Seed(ctx context.Context, db Execer) error {
	for i, stmt := range seedStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("seed statement %d: %w", i+1, err)
		}
	}
	return nil
}
