package transactions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateHash indicates a ledger entry with that hash already exists.
var ErrDuplicateHash = errors.New("duplicate transaction hash")

// Repository persists ledger entries.
type Repository interface {
	Create(ctx context.Context, t Transaction) error
	ListByAddress(ctx context.Context, address string) ([]Transaction, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed transaction repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a ledger entry. The unique hash constraint turns a replayed
// write into ErrDuplicateHash.
func (r *PostgresRepository) Create(ctx context.Context, t Transaction) error {
	id, err := uuid.Parse(t.ID)
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `INSERT INTO transactions (id, hash, from_address, to_address, amount, token, type, status, link_id, payload, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''), $11)
        ON CONFLICT (hash) DO NOTHING`,
		id, t.Hash, t.From, t.To, t.Amount, t.Token, t.Type, t.Status, t.LinkID, t.Payload, t.CreatedAt.UTC())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDuplicateHash
	}
	return nil
}

// ListByAddress fetches entries where the address is either side, newest first.
func (r *PostgresRepository) ListByAddress(ctx context.Context, address string) ([]Transaction, error) {
	rows, err := r.db.Query(ctx, `SELECT id, hash, from_address, to_address, amount, token, type, status, COALESCE(link_id, ''), COALESCE(payload, ''), created_at
        FROM transactions WHERE lower(from_address) = lower($1) OR lower(to_address) = lower($1)
        ORDER BY created_at DESC`, address)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Transaction
	for rows.Next() {
		var (
			id        uuid.UUID
			createdAt time.Time
			t         Transaction
		)
		if err := rows.Scan(&id, &t.Hash, &t.From, &t.To, &t.Amount, &t.Token, &t.Type, &t.Status, &t.LinkID, &t.Payload, &createdAt); err != nil {
			return nil, err
		}
		t.ID = id.String()
		t.CreatedAt = createdAt.UTC()
		entries = append(entries, t)
	}
	return entries, rows.Err()
}
