package kyc

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrRecordExists indicates a live submission already blocks this user.
	ErrRecordExists = errors.New("kyc already submitted")
	// ErrRecordNotFound indicates the user has no submission on file.
	ErrRecordNotFound = errors.New("kyc record not found")
)

// Repository persists submissions. Submit writes the record and flips the
// user to pending as one durable unit, so the local pending state outlives
// the external verification call that follows it.
type Repository interface {
	Submit(ctx context.Context, record Record, replace bool) error
	FindByUser(ctx context.Context, userID string) (Record, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed kyc repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Submit inserts the record and marks the user pending in one transaction.
// With replace set, a prior (rejected) submission is dropped first. The
// UNIQUE(user_id) constraint turns a racing duplicate into ErrRecordExists.
func (r *PostgresRepository) Submit(ctx context.Context, record Record, replace bool) error {
	recordID, err := uuid.Parse(record.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(record.UserID)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if replace {
		if _, err := tx.Exec(ctx, `DELETE FROM user_kyc WHERE user_id = $1`, userID); err != nil {
			return err
		}
	}

	cmd, err := tx.Exec(ctx, `INSERT INTO user_kyc (id, user_id, dob, identity_type, bvn, nin, created_at)
        VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)
        ON CONFLICT (user_id) DO NOTHING`,
		recordID, userID, record.DOB, string(record.IdentityType), record.BVN, record.NIN, record.CreatedAt.UTC())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrRecordExists
	}

	if _, err := tx.Exec(ctx, `UPDATE users SET kyc_status = 'pending' WHERE id = $1`, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// FindByUser fetches the submission owned by a user.
func (r *PostgresRepository) FindByUser(ctx context.Context, userID string) (Record, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return Record{}, ErrRecordNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, user_id, dob, identity_type, COALESCE(bvn, ''), COALESCE(nin, ''), created_at
        FROM user_kyc WHERE user_id = $1`, uid)
	var (
		id           uuid.UUID
		owner        uuid.UUID
		identityType string
		createdAt    time.Time
		rec          Record
	)
	if err := row.Scan(&id, &owner, &rec.DOB, &identityType, &rec.BVN, &rec.NIN, &createdAt); err != nil {
		return Record{}, ErrRecordNotFound
	}
	rec.ID = id.String()
	rec.UserID = owner.String()
	rec.IdentityType = IdentityType(identityType)
	rec.CreatedAt = createdAt.UTC()
	return rec, nil
}
