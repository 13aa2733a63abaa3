package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Campaign is a budgeted marketing effort promoting one service.
// Leads reference the campaign that produced them.
type Campaign struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ServiceID   string    `json:"service_id"`
	Channel     string    `json:"channel"`
	BudgetCents int64     `json:"budget_cents"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewCampaign(name, serviceID, channel string, budgetCents int64) (*Campaign, error) {
	campaign := &Campaign{
		ID:          uuid.New().String(),
		Name:        name,
		ServiceID:   serviceID,
		Channel:     channel,
		BudgetCents: budgetCents,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := campaign.Validate(); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (c *Campaign) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.ServiceID == "" {
		return errors.New("service is required")
	}
	if c.BudgetCents < 0 {
		return errors.New("budget must not be negative")
	}
	return nil
}
