package entity

// CampaignStatsRow is one campaign's slice of the reporting aggregation.
// ROICents is nil when the campaign has no clients; the report keeps that
// distinct from a zero ROI.
type CampaignStatsRow struct {
	CampaignID   string
	CampaignName string
	Channel      string
	LeadCount    int
	ClientCount  int
	ROICents     *int64
}
