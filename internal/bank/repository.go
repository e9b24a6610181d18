package bank

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrAccountNotFound indicates no bank account matches the lookup for that
// owner.
var ErrAccountNotFound = errors.New("bank account not found")

// Repository persists linked bank accounts. Lookups are always scoped to the
// owning user.
type Repository interface {
	Create(ctx context.Context, a Account) error
	ListByUser(ctx context.Context, userID string) ([]Account, error)
	FindForUser(ctx context.Context, id, userID string) (Account, error)
	Delete(ctx context.Context, id, userID string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed bank account repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a linked account.
func (r *PostgresRepository) Create(ctx context.Context, a Account) error {
	accountID, err := uuid.Parse(a.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(a.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO bank_accounts (id, user_id, bank_code, bank_name, account_number, account_name, beneficiary_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		accountID, userID, a.BankCode, a.BankName, a.AccountNumber, a.AccountName, a.BeneficiaryID, a.CreatedAt.UTC())
	return err
}

// ListByUser fetches all accounts owned by a user, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Account, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrAccountNotFound
	}
	rows, err := r.db.Query(ctx, `SELECT id, user_id, bank_code, bank_name, account_number, account_name, beneficiary_id, created_at
        FROM bank_accounts WHERE user_id = $1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var (
			id        uuid.UUID
			owner     uuid.UUID
			createdAt time.Time
			a         Account
		)
		if err := rows.Scan(&id, &owner, &a.BankCode, &a.BankName, &a.AccountNumber, &a.AccountName, &a.BeneficiaryID, &createdAt); err != nil {
			return nil, err
		}
		a.ID = id.String()
		a.UserID = owner.String()
		a.CreatedAt = createdAt.UTC()
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// FindForUser fetches one account scoped to its owner.
func (r *PostgresRepository) FindForUser(ctx context.Context, id, userID string) (Account, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return Account{}, ErrAccountNotFound
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return Account{}, ErrAccountNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, user_id, bank_code, bank_name, account_number, account_name, beneficiary_id, created_at
        FROM bank_accounts WHERE id = $1 AND user_id = $2`, accountID, uid)
	var (
		rowID     uuid.UUID
		owner     uuid.UUID
		createdAt time.Time
		a         Account
	)
	if err := row.Scan(&rowID, &owner, &a.BankCode, &a.BankName, &a.AccountNumber, &a.AccountName, &a.BeneficiaryID, &createdAt); err != nil {
		return Account{}, ErrAccountNotFound
	}
	a.ID = rowID.String()
	a.UserID = owner.String()
	a.CreatedAt = createdAt.UTC()
	return a, nil
}

// Delete removes one account scoped to its owner.
func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return ErrAccountNotFound
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return ErrAccountNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM bank_accounts WHERE id = $1 AND user_id = $2`, accountID, uid)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}
