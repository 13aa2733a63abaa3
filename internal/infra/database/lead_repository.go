package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/velmark/crm-backend/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, l *entity.Lead) error {
	query := `
		INSERT INTO leads (id, full_name, phone, email, campaign_id, is_converted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query,
		l.ID, l.FullName, l.Phone, l.Email, l.CampaignID, l.IsConverted, l.CreatedAt, l.UpdatedAt,
	)
	return err
}

func (r *LeadRepository) Update(ctx context.Context, l *entity.Lead) error {
	query := `
		UPDATE leads
		SET full_name = $2, phone = $3, email = $4, campaign_id = $5, is_converted = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		l.ID, l.FullName, l.Phone, l.Email, l.CampaignID, l.IsConverted, l.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(res, entity.ErrLeadNotFound)
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return entity.ErrProtected
		}
		return err
	}
	return requireRow(res, entity.ErrLeadNotFound)
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `
		SELECT id, full_name, phone, email, campaign_id, is_converted, created_at, updated_at
		FROM leads WHERE id = $1
	`
	var l entity.Lead
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&l.ID, &l.FullName, &l.Phone, &l.Email, &l.CampaignID, &l.IsConverted, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *LeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	query := `
		SELECT id, full_name, phone, email, campaign_id, is_converted, created_at, updated_at
		FROM leads
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		var l entity.Lead
		if err := rows.Scan(&l.ID, &l.FullName, &l.Phone, &l.Email, &l.CampaignID, &l.IsConverted, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		leads = append(leads, &l)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM leads`)
	return err
}
