package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrClientNotFound = errors.New("client not found")

// Client is a converted lead backed by a signed contract. At most one
// client exists per lead; a contract may back any number of clients.
type Client struct {
	ID         string    `json:"id"`
	LeadID     string    `json:"lead_id"`
	ContractID string    `json:"contract_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewClient(leadID, contractID string) (*Client, error) {
	client := &Client{
		ID:         uuid.New().String(),
		LeadID:     leadID,
		ContractID: contractID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := client.Validate(); err != nil {
		return nil, err
	}
	return client, nil
}

func (c *Client) Validate() error {
	if c.LeadID == "" {
		return errors.New("lead is required")
	}
	if c.ContractID == "" {
		return errors.New("contract is required")
	}
	return nil
}
