package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/velmark/crm-backend/internal/entity"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, username, email, role, is_staff, is_superuser, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query,
		u.ID, u.Username, u.Email, u.Role, u.IsStaff, u.IsSuperuser, u.CreatedAt, u.UpdatedAt,
	)
	return err
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT id, username, email, role, is_staff, is_superuser, created_at, updated_at
		FROM users WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `
		SELECT id, username, email, role, is_staff, is_superuser, created_at, updated_at
		FROM users WHERE username = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, username))
}

// GetOrCreate inserts the user unless the username is taken, in which case
// the existing row wins. Returns whether a new row was created.
func (r *UserRepository) GetOrCreate(ctx context.Context, u *entity.User) (*entity.User, bool, error) {
	existing, err := r.FindByUsername(ctx, u.Username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, entity.ErrUserNotFound) {
		return nil, false, err
	}

	if err := r.Create(ctx, u); err != nil {
		if isUniqueViolation(err) {
			// Lost the race: someone inserted the username first.
			existing, ferr := r.FindByUsername(ctx, u.Username)
			if ferr != nil {
				return nil, false, ferr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return u, true, nil
}

// DeleteNonSuperusers clears everyone except superusers. Used by the test
// data command.
func (r *UserRepository) DeleteNonSuperusers(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE is_superuser = FALSE`)
	return err
}

func (r *UserRepository) scanOne(row *sql.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.IsStaff, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
