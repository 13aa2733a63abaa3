package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrLeadAlreadyConverted is returned when a second client would be
	// created for the same lead. The unique index on clients.lead_id is
	// what actually enforces this under concurrent conversions.
	ErrLeadAlreadyConverted = errors.New("lead is already converted")

	ErrLeadNotFound = errors.New("lead not found")
)

// Lead is a prospective customer captured from a campaign.
// IsConverted is true exactly when a client row references the lead.
type Lead struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	CampaignID  string    `json:"campaign_id"`
	IsConverted bool      `json:"is_converted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewLead(fullName, phone, email, campaignID string) (*Lead, error) {
	lead := &Lead{
		ID:         uuid.New().String(),
		FullName:   fullName,
		Phone:      phone,
		Email:      email,
		CampaignID: campaignID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := lead.Validate(); err != nil {
		return nil, err
	}
	return lead, nil
}

func (l *Lead) Validate() error {
	if l.FullName == "" {
		return errors.New("full name is required")
	}
	if l.Email == "" {
		return errors.New("email is required")
	}
	if l.CampaignID == "" {
		return errors.New("campaign is required")
	}
	return nil
}
