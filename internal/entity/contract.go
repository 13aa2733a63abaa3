package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Contract is a signed agreement for one service. Document holds the path
// to the uploaded contract file; the file itself lives outside the database.
type Contract struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ServiceID   string    `json:"service_id"`
	Document    string    `json:"document"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	AmountCents int64     `json:"amount_cents"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewContract(name, serviceID, document string, startDate, endDate time.Time, amountCents int64) (*Contract, error) {
	contract := &Contract{
		ID:          uuid.New().String(),
		Name:        name,
		ServiceID:   serviceID,
		Document:    document,
		StartDate:   startDate,
		EndDate:     endDate,
		AmountCents: amountCents,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := contract.Validate(); err != nil {
		return nil, err
	}
	return contract, nil
}

func (c *Contract) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.ServiceID == "" {
		return errors.New("service is required")
	}
	if c.EndDate.Before(c.StartDate) {
		return errors.New("end date must not precede start date")
	}
	if c.AmountCents < 0 {
		return errors.New("amount must not be negative")
	}
	return nil
}
