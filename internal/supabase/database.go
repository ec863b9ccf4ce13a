package supabase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"sermon-art-backend/internal/credits"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// GetOrCreateCredits returns the user's balance, inserting the default row on
// first read and applying the monthly reset when it is due.
func (d *DatabaseClient) GetOrCreateCredits(ctx context.Context, userID uuid.UUID) (*credits.Balance, error) {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO user_credits (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create credits: %w", err)
	}

	_, err = d.db.ExecContext(ctx, `
		UPDATE user_credits
		SET credits_remaining = monthly_allowance,
		    next_reset_at = date_trunc('month', NOW()) + INTERVAL '1 month'
		WHERE user_id = $1 AND next_reset_at <= NOW()
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reset credits: %w", err)
	}

	var b credits.Balance
	err = d.db.QueryRowContext(ctx, `
		SELECT user_id, credits_remaining, next_reset_at
		FROM user_credits
		WHERE user_id = $1
	`, userID).Scan(&b.UserID, &b.CreditsRemaining, &b.NextResetAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get credits: %w", err)
	}

	return &b, nil
}

// ConsumeCredit decrements the balance by one. It returns credits.ErrNoCredits
// when the balance is already zero, leaving it untouched.
func (d *DatabaseClient) ConsumeCredit(ctx context.Context, userID uuid.UUID) (*credits.Balance, error) {
	var b credits.Balance
	err := d.db.QueryRowContext(ctx, `
		UPDATE user_credits
		SET credits_remaining = credits_remaining - 1
		WHERE user_id = $1 AND credits_remaining > 0
		RETURNING user_id, credits_remaining, next_reset_at
	`, userID).Scan(&b.UserID, &b.CreditsRemaining, &b.NextResetAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, credits.ErrNoCredits
	}
	if err != nil {
		return nil, fmt.Errorf("failed to consume credit: %w", err)
	}

	return &b, nil
}

func (d *DatabaseClient) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
