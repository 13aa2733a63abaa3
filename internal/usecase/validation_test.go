package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velmark/crm-backend/internal/usecase"
)

func fieldNames(errs []usecase.ValidationError) []string {
	names := make([]string, 0, len(errs))
	for _, e := range errs {
		names = append(names, e.Field)
	}
	return names
}

func TestValidateServiceInput(t *testing.T) {
	errs := usecase.ValidateServiceInput(usecase.ServiceInput{
		Name:       "SEO Promotion",
		PriceCents: 5000000,
	})
	assert.Empty(t, errs)

	errs = usecase.ValidateServiceInput(usecase.ServiceInput{
		Name:       "  ",
		PriceCents: -1,
	})
	assert.ElementsMatch(t, []string{"name", "price_cents"}, fieldNames(errs))

	errs = usecase.ValidateServiceInput(usecase.ServiceInput{
		Name: strings.Repeat("x", 256),
	})
	assert.Equal(t, []string{"name"}, fieldNames(errs))
}

func TestValidateLeadInput(t *testing.T) {
	errs := usecase.ValidateLeadInput(usecase.LeadInput{
		FullName:   "Ivan Ivanov",
		Phone:      "+79000000000",
		Email:      "ivan@example.com",
		CampaignID: "camp-1",
	})
	assert.Empty(t, errs)

	errs = usecase.ValidateLeadInput(usecase.LeadInput{
		FullName:   "Ivan Ivanov",
		Email:      "not-an-address",
		CampaignID: "camp-1",
	})
	assert.Equal(t, []string{"email"}, fieldNames(errs))

	errs = usecase.ValidateLeadInput(usecase.LeadInput{})
	assert.ElementsMatch(t, []string{"full_name", "email", "campaign_id"}, fieldNames(errs))
}

func TestValidateContractInputDates(t *testing.T) {
	valid := usecase.ContractInput{
		Name:        "Contract 1",
		ServiceID:   "svc-1",
		StartDate:   "2023-01-01",
		EndDate:     "2023-12-31",
		AmountCents: 5000000,
	}
	assert.Empty(t, usecase.ValidateContractInput(valid))

	inverted := valid
	inverted.StartDate = "2023-12-31"
	inverted.EndDate = "2023-01-01"
	errs := usecase.ValidateContractInput(inverted)
	assert.Equal(t, []string{"end_date"}, fieldNames(errs))

	garbled := valid
	garbled.StartDate = "01/01/2023"
	errs = usecase.ValidateContractInput(garbled)
	assert.Equal(t, []string{"start_date"}, fieldNames(errs))

	// Equal start and end is a one-day contract, not an error.
	sameDay := valid
	sameDay.StartDate = "2023-06-15"
	sameDay.EndDate = "2023-06-15"
	assert.Empty(t, usecase.ValidateContractInput(sameDay))
}

func TestValidateConvertLeadInput(t *testing.T) {
	errs := usecase.ValidateConvertLeadInput(usecase.ConvertLeadInput{})
	assert.ElementsMatch(t, []string{"lead_id", "contract_id"}, fieldNames(errs))

	errs = usecase.ValidateConvertLeadInput(usecase.ConvertLeadInput{
		LeadID:     "lead-1",
		ContractID: "contract-1",
	})
	assert.Empty(t, errs)
}

func TestValidateCampaignInput(t *testing.T) {
	errs := usecase.ValidateCampaignInput(usecase.CampaignInput{
		Name:        "Summer Enrollment",
		ServiceID:   "svc-1",
		Channel:     "google",
		BudgetCents: 10000000,
	})
	assert.Empty(t, errs)

	errs = usecase.ValidateCampaignInput(usecase.CampaignInput{
		Name:        "Summer Enrollment",
		BudgetCents: -5,
	})
	assert.ElementsMatch(t, []string{"service_id", "budget_cents"}, fieldNames(errs))
}
