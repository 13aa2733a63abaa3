package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Service is a named offering sold through campaigns and contracts.
type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewService(name, description string, priceCents int64) (*Service, error) {
	service := &Service{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		PriceCents:  priceCents,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := service.Validate(); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *Service) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.PriceCents < 0 {
		return errors.New("price must not be negative")
	}
	return nil
}
