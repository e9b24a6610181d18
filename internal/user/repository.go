package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates no user row matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrExists indicates a conflicting user row already exists.
	ErrExists = errors.New("user exists")
	// ErrDetailsNotFound indicates the user has no details row yet.
	ErrDetailsNotFound = errors.New("user details not found")
)

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, u User) error
	FindByID(ctx context.Context, id string) (User, error)
	FindByAddress(ctx context.Context, address string) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, u User) error
	SetKycStatus(ctx context.Context, id string, status KycStatus) error
}

// DetailsRepository persists provider-facing user details.
type DetailsRepository interface {
	Create(ctx context.Context, d Details) error
	FindByUser(ctx context.Context, userID string) (Details, error)
	SetIdentityID(ctx context.Context, id, identityID string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user. A concurrent insert for the same address yields
// ErrExists so the caller can re-read instead of failing.
func (r *PostgresRepository) Create(ctx context.Context, u User) error {
	userID, err := uuid.Parse(u.ID)
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `INSERT INTO users (id, address, full_name, username, onboarded, kyc_status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (address) DO NOTHING`,
		userID, u.Address, u.FullName, u.Username, u.Onboarded, string(u.KycStatus), u.CreatedAt.UTC())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrExists
	}
	return nil
}

// FindByID fetches a user by primary key.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return User{}, ErrNotFound
	}
	return r.scanOne(ctx, `SELECT id, address, full_name, username, onboarded, kyc_status, created_at
        FROM users WHERE id = $1`, userID)
}

// FindByAddress fetches a user by wallet address.
func (r *PostgresRepository) FindByAddress(ctx context.Context, address string) (User, error) {
	return r.scanOne(ctx, `SELECT id, address, full_name, username, onboarded, kyc_status, created_at
        FROM users WHERE lower(address) = lower($1)`, address)
}

// FindByUsername fetches a user by username.
func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (User, error) {
	return r.scanOne(ctx, `SELECT id, address, full_name, username, onboarded, kyc_status, created_at
        FROM users WHERE username = $1`, username)
}

// Update stores profile fields set during onboarding.
func (r *PostgresRepository) Update(ctx context.Context, u User) error {
	userID, err := uuid.Parse(u.ID)
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `UPDATE users SET full_name = $1, username = $2, onboarded = $3 WHERE id = $4`,
		u.FullName, u.Username, u.Onboarded, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetKycStatus flips the persisted verification state.
func (r *PostgresRepository) SetKycStatus(ctx context.Context, id string, status KycStatus) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `UPDATE users SET kyc_status = $1 WHERE id = $2`, string(status), userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) scanOne(ctx context.Context, query string, arg any) (User, error) {
	row := r.db.QueryRow(ctx, query, arg)
	var (
		id        uuid.UUID
		status    string
		createdAt time.Time
		u         User
	)
	if err := row.Scan(&id, &u.Address, &u.FullName, &u.Username, &u.Onboarded, &status, &createdAt); err != nil {
		return User{}, ErrNotFound
	}
	u.ID = id.String()
	u.KycStatus = KycStatus(status)
	u.CreatedAt = createdAt.UTC()
	return u, nil
}

// PostgresDetailsRepository implements DetailsRepository using PostgreSQL.
type PostgresDetailsRepository struct {
	db *pgxpool.Pool
}

// NewPostgresDetailsRepository builds a Postgres-backed details repository.
func NewPostgresDetailsRepository(db *pgxpool.Pool) *PostgresDetailsRepository {
	return &PostgresDetailsRepository{db: db}
}

// Create inserts a details row; at most one exists per user.
func (r *PostgresDetailsRepository) Create(ctx context.Context, d Details) error {
	detailsID, err := uuid.Parse(d.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `INSERT INTO user_details (id, user_id, reference, identity_id, email, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (user_id) DO NOTHING`,
		detailsID, userID, d.Reference, d.IdentityID, d.Email, d.CreatedAt.UTC())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrExists
	}
	return nil
}

// FindByUser fetches the details row owned by a user.
func (r *PostgresDetailsRepository) FindByUser(ctx context.Context, userID string) (Details, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return Details{}, ErrDetailsNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, user_id, reference, identity_id, email, created_at
        FROM user_details WHERE user_id = $1`, uid)
	var (
		id        uuid.UUID
		owner     uuid.UUID
		createdAt time.Time
		d         Details
	)
	if err := row.Scan(&id, &owner, &d.Reference, &d.IdentityID, &d.Email, &createdAt); err != nil {
		return Details{}, ErrDetailsNotFound
	}
	d.ID = id.String()
	d.UserID = owner.String()
	d.CreatedAt = createdAt.UTC()
	return d, nil
}

// SetIdentityID attaches a provider identity id to an existing details row.
func (r *PostgresDetailsRepository) SetIdentityID(ctx context.Context, id, identityID string) error {
	detailsID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `UPDATE user_details SET identity_id = $1 WHERE id = $2`, identityID, detailsID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDetailsNotFound
	}
	return nil
}
