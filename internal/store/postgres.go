package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"glowcheck/config"
	"glowcheck/internal/models"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(cfg config.DBConfig) (*PostgresStore, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode, cfg.MaxOpenConns,
	)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DB connection string: %w", err)
	}

	// Set connection pool parameters
	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.ConnLifetime
	poolConfig.MaxConnIdleTime = 15 * time.Minute

	// Connect with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection works
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) SaveUser(ctx context.Context, user *models.User) error {
	query := `
        INSERT INTO users (id, email, name, password_hash)
        VALUES (gen_random_uuid(), $1, $2, $3)
        ON CONFLICT (email) DO UPDATE
        SET name = EXCLUDED.name,
            password_hash = COALESCE(NULLIF(EXCLUDED.password_hash, ''), users.password_hash),
            updated_at = NOW()
        RETURNING id
    `

	err := s.pool.QueryRow(ctx, query,
		user.Email, user.Name, user.PasswordHash,
	).Scan(&user.ID)

	return err
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
        SELECT id, email, name, password_hash, created_at, updated_at
        FROM users
        WHERE email = $1
    `

	var user models.User
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `
        SELECT id, email, name, password_hash, created_at, updated_at
        FROM users
        WHERE id = $1
    `

	var user models.User
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *PostgresStore) SaveSubscription(ctx context.Context, sub *models.Subscription) (bool, error) {
	// The unique constraint on stripe_payment_intent_id makes duplicate
	// webhook delivery a no-op instead of a second subscription row.
	query := `
        INSERT INTO subscriptions (id, user_id, plan_id, stripe_payment_intent_id, purchase_date)
        VALUES (gen_random_uuid(), $1, $2, $3, NOW())
        ON CONFLICT (stripe_payment_intent_id) DO NOTHING
        RETURNING id, purchase_date
    `

	err := s.pool.QueryRow(ctx, query,
		sub.UserID, sub.PlanID, sub.StripePaymentIntentID,
	).Scan(&sub.ID, &sub.PurchaseDate)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to save subscription: %w", err)
	}

	return true, nil
}

func (s *PostgresStore) LatestSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	query := `
        SELECT id, user_id, plan_id, stripe_payment_intent_id, purchase_date
        FROM subscriptions
        WHERE user_id = $1
        ORDER BY purchase_date DESC
        LIMIT 1
    `

	var sub models.Subscription
	err := s.pool.QueryRow(ctx, query, userID).Scan(
		&sub.ID, &sub.UserID, &sub.PlanID, &sub.StripePaymentIntentID, &sub.PurchaseDate,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &sub, nil
}
