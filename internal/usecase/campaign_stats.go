package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/velmark/crm-backend/internal/entity"
)

type CampaignStats struct {
	CampaignID     string  `json:"campaign_id"`
	CampaignName   string  `json:"campaign_name"`
	Channel        string  `json:"channel"`
	LeadCount      int     `json:"lead_count"`
	ClientCount    int     `json:"client_count"`
	ROICents       *int64  `json:"roi_cents"`
	ConversionRate float64 `json:"conversion_rate"`
}

type StatsReport struct {
	Campaigns     []CampaignStats `json:"campaigns"`
	TotalLeads    int             `json:"total_leads"`
	TotalClients  int             `json:"total_clients"`
	TotalROICents int64           `json:"total_roi_cents"`
	AvgConversion float64         `json:"avg_conversion"`
}

type CampaignStatsUseCase struct {
	Repo StatsRepository
	Log  EventLog
}

func NewCampaignStatsUseCase(repo StatsRepository, log EventLog) *CampaignStatsUseCase {
	return &CampaignStatsUseCase{Repo: repo, Log: log}
}

// Execute builds the per-campaign report. Campaigns come back newest first.
// ROI is the sum over the campaign's clients of (contract amount minus
// campaign budget): the budget is deliberately subtracted once per client,
// not once per campaign. A failing query degrades to an empty report.
func (uc *CampaignStatsUseCase) Execute(ctx context.Context, actor *entity.User) (*StatsReport, error) {
	report := &StatsReport{Campaigns: []CampaignStats{}}

	rows, err := uc.Repo.AggregateByCampaign(ctx)
	if err != nil {
		uc.Log.Error(fmt.Sprintf("user %s failed to load campaign statistics: %v", actorName(actor), err))
		return report, databaseError("aggregate campaign statistics", err)
	}

	var rateSum float64
	for _, row := range rows {
		stats := CampaignStats{
			CampaignID:   row.CampaignID,
			CampaignName: row.CampaignName,
			Channel:      row.Channel,
			LeadCount:    row.LeadCount,
			ClientCount:  row.ClientCount,
			ROICents:     row.ROICents,
		}
		if row.LeadCount > 0 {
			stats.ConversionRate = round1(float64(row.ClientCount) * 100.0 / float64(row.LeadCount))
		}
		rateSum += stats.ConversionRate

		report.Campaigns = append(report.Campaigns, stats)
		report.TotalLeads += row.LeadCount
		report.TotalClients += row.ClientCount
		if row.ROICents != nil {
			report.TotalROICents += *row.ROICents
		}
	}

	if len(rows) > 0 {
		report.AvgConversion = rateSum / float64(len(rows))
	}

	uc.Log.Success(fmt.Sprintf("user %s loaded campaign statistics", actorName(actor)))
	return report, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
