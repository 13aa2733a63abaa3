package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/velmark/crm-backend/internal/entity"
)

type CampaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

func (r *CampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	query := `
		INSERT INTO campaigns (id, name, service_id, channel, budget_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.Name, c.ServiceID, c.Channel, c.BudgetCents, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *CampaignRepository) Update(ctx context.Context, c *entity.Campaign) error {
	query := `
		UPDATE campaigns
		SET name = $2, service_id = $3, channel = $4, budget_cents = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, c.ID, c.Name, c.ServiceID, c.Channel, c.BudgetCents, c.UpdatedAt)
	if err != nil {
		return err
	}
	return requireRow(res, entity.ErrCampaignNotFound)
}

func (r *CampaignRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return entity.ErrProtected
		}
		return err
	}
	return requireRow(res, entity.ErrCampaignNotFound)
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	query := `
		SELECT id, name, service_id, channel, budget_cents, created_at, updated_at
		FROM campaigns WHERE id = $1
	`
	var c entity.Campaign
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.ServiceID, &c.Channel, &c.BudgetCents, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrCampaignNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) List(ctx context.Context) ([]*entity.Campaign, error) {
	query := `
		SELECT id, name, service_id, channel, budget_cents, created_at, updated_at
		FROM campaigns
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []*entity.Campaign{}
	for rows.Next() {
		var c entity.Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.ServiceID, &c.Channel, &c.BudgetCents, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, &c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM campaigns`)
	return err
}
