package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ServiceInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
}

func ValidateServiceInput(input ServiceInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	} else if len(input.Name) > 255 {
		errs = append(errs, ValidationError{"name", "must not exceed 255 characters"})
	}
	if input.PriceCents < 0 {
		errs = append(errs, ValidationError{"price_cents", "must not be negative"})
	}

	return errs
}

type CampaignInput struct {
	Name        string `json:"name"`
	ServiceID   string `json:"service_id"`
	Channel     string `json:"channel"`
	BudgetCents int64  `json:"budget_cents"`
}

func ValidateCampaignInput(input CampaignInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	} else if len(input.Name) > 255 {
		errs = append(errs, ValidationError{"name", "must not exceed 255 characters"})
	}
	if strings.TrimSpace(input.ServiceID) == "" {
		errs = append(errs, ValidationError{"service_id", "is required"})
	}
	if len(input.Channel) > 100 {
		errs = append(errs, ValidationError{"channel", "must not exceed 100 characters"})
	}
	if input.BudgetCents < 0 {
		errs = append(errs, ValidationError{"budget_cents", "must not be negative"})
	}

	return errs
}

type LeadInput struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	CampaignID string `json:"campaign_id"`
}

func ValidateLeadInput(input LeadInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.FullName) == "" {
		errs = append(errs, ValidationError{"full_name", "is required"})
	} else if len(input.FullName) > 255 {
		errs = append(errs, ValidationError{"full_name", "must not exceed 255 characters"})
	}
	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}
	if len(input.Phone) > 20 {
		errs = append(errs, ValidationError{"phone", "must not exceed 20 characters"})
	}
	if strings.TrimSpace(input.CampaignID) == "" {
		errs = append(errs, ValidationError{"campaign_id", "is required"})
	}

	return errs
}

type ContractInput struct {
	Name        string `json:"name"`
	ServiceID   string `json:"service_id"`
	Document    string `json:"document"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	AmountCents int64  `json:"amount_cents"`
}

func ValidateContractInput(input ContractInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	} else if len(input.Name) > 255 {
		errs = append(errs, ValidationError{"name", "must not exceed 255 characters"})
	}
	if strings.TrimSpace(input.ServiceID) == "" {
		errs = append(errs, ValidationError{"service_id", "is required"})
	}

	start, startErr := parseDate(input.StartDate)
	if startErr != nil {
		errs = append(errs, ValidationError{"start_date", "must be a valid date (YYYY-MM-DD)"})
	}
	end, endErr := parseDate(input.EndDate)
	if endErr != nil {
		errs = append(errs, ValidationError{"end_date", "must be a valid date (YYYY-MM-DD)"})
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		errs = append(errs, ValidationError{"end_date", "must not precede start_date"})
	}

	if input.AmountCents < 0 {
		errs = append(errs, ValidationError{"amount_cents", "must not be negative"})
	}

	return errs
}

type ConvertLeadInput struct {
	LeadID     string `json:"lead_id"`
	ContractID string `json:"contract_id"`
}

func ValidateConvertLeadInput(input ConvertLeadInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.LeadID) == "" {
		errs = append(errs, ValidationError{"lead_id", "is required"})
	}
	if strings.TrimSpace(input.ContractID) == "" {
		errs = append(errs, ValidationError{"contract_id", "is required"})
	}

	return errs
}

type ClientUpdateInput struct {
	ContractID string `json:"contract_id"`
}

func ValidateClientUpdateInput(input ClientUpdateInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.ContractID) == "" {
		errs = append(errs, ValidationError{"contract_id", "is required"})
	}

	return errs
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(value))
}
