package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/velmark/crm-backend/internal/entity"
)

type ContractRepository struct {
	DB *sql.DB
}

func NewContractRepository(db *sql.DB) *ContractRepository {
	return &ContractRepository{DB: db}
}

func (r *ContractRepository) Create(ctx context.Context, c *entity.Contract) error {
	query := `
		INSERT INTO contracts (id, name, service_id, document, start_date, end_date, amount_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.Name, c.ServiceID, c.Document, c.StartDate, c.EndDate, c.AmountCents, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *ContractRepository) Update(ctx context.Context, c *entity.Contract) error {
	query := `
		UPDATE contracts
		SET name = $2, service_id = $3, document = $4, start_date = $5, end_date = $6, amount_cents = $7, updated_at = $8
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		c.ID, c.Name, c.ServiceID, c.Document, c.StartDate, c.EndDate, c.AmountCents, c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(res, entity.ErrContractNotFound)
}

func (r *ContractRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return entity.ErrProtected
		}
		return err
	}
	return requireRow(res, entity.ErrContractNotFound)
}

func (r *ContractRepository) FindByID(ctx context.Context, id string) (*entity.Contract, error) {
	query := `
		SELECT id, name, service_id, document, start_date, end_date, amount_cents, created_at, updated_at
		FROM contracts WHERE id = $1
	`
	var c entity.Contract
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.ServiceID, &c.Document, &c.StartDate, &c.EndDate, &c.AmountCents, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrContractNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContractRepository) List(ctx context.Context) ([]*entity.Contract, error) {
	query := `
		SELECT id, name, service_id, document, start_date, end_date, amount_cents, created_at, updated_at
		FROM contracts
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contracts := []*entity.Contract{}
	for rows.Next() {
		var c entity.Contract
		if err := rows.Scan(&c.ID, &c.Name, &c.ServiceID, &c.Document, &c.StartDate, &c.EndDate, &c.AmountCents, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contracts = append(contracts, &c)
	}
	return contracts, rows.Err()
}

func (r *ContractRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM contracts`)
	return err
}
