package custody

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrWalletExists indicates the user already holds a wallet on that network.
	ErrWalletExists = errors.New("wallet exists")
	// ErrWalletNotFound indicates no wallet row matches the lookup.
	ErrWalletNotFound = errors.New("wallet not found")
)

// Repository persists custodial wallet descriptors.
type Repository interface {
	Create(ctx context.Context, w Wallet) error
	FindByUser(ctx context.Context, userID string) (Wallet, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed wallet repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a wallet row. UNIQUE(user_id, type) turns a racing
// duplicate provision into ErrWalletExists.
func (r *PostgresRepository) Create(ctx context.Context, w Wallet) error {
	walletID, err := uuid.Parse(w.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(w.UserID)
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `INSERT INTO wallets (id, user_id, type, wallet_reference, wallet_id, wallet_address, auto_offramp, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (user_id, type) DO NOTHING`,
		walletID, userID, w.Type, w.Reference, w.ProviderID, w.Address, w.AutoOfframp, w.CreatedAt.UTC())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrWalletExists
	}
	return nil
}

// FindByUser fetches the wallet owned by a user.
func (r *PostgresRepository) FindByUser(ctx context.Context, userID string) (Wallet, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return Wallet{}, ErrWalletNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, user_id, type, wallet_reference, wallet_id, wallet_address, auto_offramp, created_at
        FROM wallets WHERE user_id = $1`, uid)
	var (
		id        uuid.UUID
		owner     uuid.UUID
		createdAt time.Time
		w         Wallet
	)
	if err := row.Scan(&id, &owner, &w.Type, &w.Reference, &w.ProviderID, &w.Address, &w.AutoOfframp, &createdAt); err != nil {
		return Wallet{}, ErrWalletNotFound
	}
	w.ID = id.String()
	w.UserID = owner.String()
	w.CreatedAt = createdAt.UTC()
	return w, nil
}
