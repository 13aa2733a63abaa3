package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/velmark/crm-backend/internal/entity"
)

type ClientRepository struct {
	DB *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{DB: db}
}

// CreateConverting inserts the client and marks its lead converted in one
// transaction. The unique index on lead_id decides races: the second of two
// concurrent conversions gets entity.ErrLeadAlreadyConverted.
func (r *ClientRepository) CreateConverting(ctx context.Context, c *entity.Client) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO clients (id, lead_id, contract_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(ctx, insert, c.ID, c.LeadID, c.ContractID, c.CreatedAt, c.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return entity.ErrLeadAlreadyConverted
		}
		return err
	}

	flag := `UPDATE leads SET is_converted = TRUE, updated_at = $2 WHERE id = $1`
	res, err := tx.ExecContext(ctx, flag, c.LeadID, time.Now())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}

	return tx.Commit()
}

// DeleteResettingLead removes the client and resets the lead's converted
// flag in the same transaction. The bool reports whether a lead row was
// still there to reset.
func (r *ClientRepository) DeleteResettingLead(ctx context.Context, id string) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var leadID string
	err = tx.QueryRowContext(ctx, `SELECT lead_id FROM clients WHERE id = $1`, id).Scan(&leadID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, entity.ErrClientNotFound
		}
		return false, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id); err != nil {
		return false, err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE leads SET is_converted = FALSE, updated_at = $2 WHERE id = $1`, leadID, time.Now())
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *ClientRepository) Update(ctx context.Context, c *entity.Client) error {
	query := `UPDATE clients SET contract_id = $2, updated_at = $3 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, c.ID, c.ContractID, c.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("contract %s does not exist: %w", c.ContractID, entity.ErrContractNotFound)
		}
		return err
	}
	return requireRow(res, entity.ErrClientNotFound)
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	query := `SELECT id, lead_id, contract_id, created_at, updated_at FROM clients WHERE id = $1`
	var c entity.Client
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.LeadID, &c.ContractID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) List(ctx context.Context) ([]*entity.Client, error) {
	query := `
		SELECT id, lead_id, contract_id, created_at, updated_at
		FROM clients
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := []*entity.Client{}
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.LeadID, &c.ContractID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, &c)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM clients`)
	return err
}
