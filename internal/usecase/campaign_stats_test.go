package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velmark/crm-backend/internal/entity"
	"github.com/velmark/crm-backend/internal/usecase"
)

func roi(cents int64) *int64 {
	return &cents
}

func TestCampaignStatsSeededDataset(t *testing.T) {
	ctx := context.Background()
	repo := new(MockStatsRepository)
	log := &memoryLog{}

	// The seeded dataset after converting Ivan against Contract 1:
	// SEO Promotion costs 50000.00, Summer Enrollment budget 100000.00,
	// Contract 1 amount 50000.00, so ROI is 50000.00 - 100000.00.
	repo.On("AggregateByCampaign", ctx).Return([]entity.CampaignStatsRow{
		{
			CampaignID:   "camp-summer",
			CampaignName: "Summer Enrollment",
			Channel:      "google",
			LeadCount:    1,
			ClientCount:  1,
			ROICents:     roi(-5000000),
		},
		{
			CampaignID:   "camp-newyear",
			CampaignName: "New Year Promo",
			Channel:      "yandex",
			LeadCount:    1,
			ClientCount:  0,
			ROICents:     nil,
		},
	}, nil)

	uc := usecase.NewCampaignStatsUseCase(repo, log)
	report, err := uc.Execute(ctx, userWithRole("manager", entity.RoleManager))

	assert.NoError(t, err)
	assert.Len(t, report.Campaigns, 2)

	summer := report.Campaigns[0]
	assert.Equal(t, 1, summer.LeadCount)
	assert.Equal(t, 1, summer.ClientCount)
	assert.Equal(t, 100.0, summer.ConversionRate)
	if assert.NotNil(t, summer.ROICents) {
		assert.Equal(t, int64(-5000000), *summer.ROICents)
	}

	newYear := report.Campaigns[1]
	assert.Equal(t, 0.0, newYear.ConversionRate)
	assert.Nil(t, newYear.ROICents)

	assert.Equal(t, 2, report.TotalLeads)
	assert.Equal(t, 1, report.TotalClients)
	assert.Equal(t, int64(-5000000), report.TotalROICents)
	assert.Equal(t, 50.0, report.AvgConversion)
}

func TestCampaignStatsZeroLeadsZeroRate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockStatsRepository)
	log := &memoryLog{}

	repo.On("AggregateByCampaign", ctx).Return([]entity.CampaignStatsRow{
		{CampaignID: "camp-1", CampaignName: "Quiet", Channel: "google"},
	}, nil)

	uc := usecase.NewCampaignStatsUseCase(repo, log)
	report, err := uc.Execute(ctx, userWithRole("manager", entity.RoleManager))

	assert.NoError(t, err)
	assert.Equal(t, 0.0, report.Campaigns[0].ConversionRate)
	assert.Equal(t, 0.0, report.AvgConversion)
}

func TestCampaignStatsNoCampaigns(t *testing.T) {
	ctx := context.Background()
	repo := new(MockStatsRepository)
	log := &memoryLog{}

	repo.On("AggregateByCampaign", ctx).Return([]entity.CampaignStatsRow{}, nil)

	uc := usecase.NewCampaignStatsUseCase(repo, log)
	report, err := uc.Execute(ctx, userWithRole("manager", entity.RoleManager))

	assert.NoError(t, err)
	assert.Empty(t, report.Campaigns)
	assert.Equal(t, 0.0, report.AvgConversion)
	assert.Equal(t, int64(0), report.TotalROICents)
}

func TestCampaignStatsRateRounding(t *testing.T) {
	ctx := context.Background()
	repo := new(MockStatsRepository)
	log := &memoryLog{}

	// 1 of 3 leads converted: 33.333... rounds to 33.3.
	repo.On("AggregateByCampaign", ctx).Return([]entity.CampaignStatsRow{
		{CampaignID: "camp-1", CampaignName: "Thirds", Channel: "google", LeadCount: 3, ClientCount: 1},
	}, nil)

	uc := usecase.NewCampaignStatsUseCase(repo, log)
	report, err := uc.Execute(ctx, userWithRole("manager", entity.RoleManager))

	assert.NoError(t, err)
	assert.Equal(t, 33.3, report.Campaigns[0].ConversionRate)
}

func TestCampaignStatsPerClientROI(t *testing.T) {
	ctx := context.Background()
	repo := new(MockStatsRepository)
	log := &memoryLog{}

	// Two clients on a campaign with budget 1000.00 and contracts of
	// 3000.00 each: (300000-100000) + (300000-100000) = 400000. The budget
	// is subtracted once per client row.
	repo.On("AggregateByCampaign", ctx).Return([]entity.CampaignStatsRow{
		{CampaignID: "camp-1", CampaignName: "Doubles", Channel: "google",
			LeadCount: 2, ClientCount: 2, ROICents: roi(400000)},
	}, nil)

	uc := usecase.NewCampaignStatsUseCase(repo, log)
	report, err := uc.Execute(ctx, userWithRole("manager", entity.RoleManager))

	assert.NoError(t, err)
	assert.Equal(t, int64(400000), report.TotalROICents)
}

func TestCampaignStatsDegradesToEmptyReport(t *testing.T) {
	ctx := context.Background()
	repo := new(MockStatsRepository)
	log := &memoryLog{}

	repo.On("AggregateByCampaign", ctx).Return(nil, errors.New("connection refused"))

	uc := usecase.NewCampaignStatsUseCase(repo, log)
	report, err := uc.Execute(ctx, userWithRole("manager", entity.RoleManager))

	assert.Error(t, err)
	assert.True(t, usecase.IsTechnicalError(err))
	if assert.NotNil(t, report) {
		assert.Empty(t, report.Campaigns)
		assert.Equal(t, 0, report.TotalLeads)
	}
	assert.Len(t, log.errors, 1)
}
