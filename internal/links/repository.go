package links

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrLinkNotFound indicates no link matches the lookup.
var ErrLinkNotFound = errors.New("link not found")

// Repository persists payment links.
type Repository interface {
	Create(ctx context.Context, l Link) error
	ListByUser(ctx context.Context, userID string) ([]Link, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed link repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a payment link.
func (r *PostgresRepository) Create(ctx context.Context, l Link) error {
	id, err := uuid.Parse(l.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(l.UserID)
	if err != nil {
		return err
	}
	var expiry *time.Time
	if l.ExpiryDate != nil {
		utc := l.ExpiryDate.UTC()
		expiry = &utc
	}
	_, err = r.db.Exec(ctx, `INSERT INTO links (id, link_id, user_id, address, amount, description, type, expiry_date, custom_fields, active, uses, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12)`,
		id, l.LinkID, userID, l.Address, l.Amount, l.Description, l.Type, expiry, l.CustomFields, l.Active, l.Uses, l.CreatedAt.UTC())
	return err
}

// ListByUser fetches a user's links, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Link, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrLinkNotFound
	}
	rows, err := r.db.Query(ctx, `SELECT id, link_id, user_id, address, amount, description, type, expiry_date, COALESCE(custom_fields, ''), active, uses, created_at
        FROM links WHERE user_id = $1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Link
	for rows.Next() {
		var (
			id        uuid.UUID
			owner     uuid.UUID
			expiry    *time.Time
			createdAt time.Time
			l         Link
		)
		if err := rows.Scan(&id, &l.LinkID, &owner, &l.Address, &l.Amount, &l.Description, &l.Type, &expiry, &l.CustomFields, &l.Active, &l.Uses, &createdAt); err != nil {
			return nil, err
		}
		l.ID = id.String()
		l.UserID = owner.String()
		l.ExpiryDate = expiry
		l.CreatedAt = createdAt.UTC()
		result = append(result, l)
	}
	return result, rows.Err()
}
