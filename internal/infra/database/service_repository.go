package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/velmark/crm-backend/internal/entity"
)

type ServiceRepository struct {
	DB *sql.DB
}

func NewServiceRepository(db *sql.DB) *ServiceRepository {
	return &ServiceRepository{DB: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *entity.Service) error {
	query := `
		INSERT INTO services (id, name, description, price_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query,
		s.ID, s.Name, s.Description, s.PriceCents, s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (r *ServiceRepository) Update(ctx context.Context, s *entity.Service) error {
	query := `
		UPDATE services
		SET name = $2, description = $3, price_cents = $4, updated_at = $5
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, s.ID, s.Name, s.Description, s.PriceCents, s.UpdatedAt)
	if err != nil {
		return err
	}
	return requireRow(res, entity.ErrServiceNotFound)
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return entity.ErrProtected
		}
		return err
	}
	return requireRow(res, entity.ErrServiceNotFound)
}

func (r *ServiceRepository) FindByID(ctx context.Context, id string) (*entity.Service, error) {
	query := `
		SELECT id, name, description, price_cents, created_at, updated_at
		FROM services WHERE id = $1
	`
	var s entity.Service
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Description, &s.PriceCents, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrServiceNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List pages through services; the other list endpoints return everything,
// services are the only paginated listing.
func (r *ServiceRepository) List(ctx context.Context, limit, offset int) ([]*entity.Service, error) {
	query := `
		SELECT id, name, description, price_cents, created_at, updated_at
		FROM services
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []*entity.Service{}
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.PriceCents, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		services = append(services, &s)
	}
	return services, rows.Err()
}

func (r *ServiceRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM services`).Scan(&count)
	return count, err
}

// DeleteAll is only for the test data command.
func (r *ServiceRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM services`)
	return err
}

func requireRow(res sql.Result, missing error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return missing
	}
	return nil
}
