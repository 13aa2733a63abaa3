package database

import (
	"context"
	"database/sql"

	"github.com/velmark/crm-backend/internal/entity"
)

type StatsRepository struct {
	DB *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{DB: db}
}

// AggregateByCampaign runs the single reporting query: campaigns joined out
// to their leads, the leads' clients and the clients' contracts. ROI sums
// (contract amount minus campaign budget) over client rows, so the budget is
// subtracted once per client; with no clients the SUM is NULL and stays nil.
func (r *StatsRepository) AggregateByCampaign(ctx context.Context) ([]entity.CampaignStatsRow, error) {
	query := `
		SELECT
			c.id,
			c.name,
			c.channel,
			COUNT(DISTINCT l.id)                  AS lead_count,
			COUNT(cl.id)                          AS client_count,
			SUM(ct.amount_cents - c.budget_cents) AS roi_cents
		FROM campaigns c
		LEFT JOIN leads l      ON l.campaign_id = c.id
		LEFT JOIN clients cl   ON cl.lead_id = l.id
		LEFT JOIN contracts ct ON ct.id = cl.contract_id
		GROUP BY c.id, c.name, c.channel, c.created_at
		ORDER BY c.created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []entity.CampaignStatsRow{}
	for rows.Next() {
		var row entity.CampaignStatsRow
		var roi sql.NullInt64
		if err := rows.Scan(&row.CampaignID, &row.CampaignName, &row.Channel, &row.LeadCount, &row.ClientCount, &roi); err != nil {
			return nil, err
		}
		if roi.Valid {
			row.ROICents = &roi.Int64
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
