// Package fixtures seeds the database with a small, known dataset for
// local development and demos.
package fixtures

import (
	"context"
	"fmt"
	"time"

	"github.com/velmark/crm-backend/internal/entity"
	"github.com/velmark/crm-backend/internal/infra/database"
	"github.com/velmark/crm-backend/internal/usecase"
)

type Seeder struct {
	Users     *database.UserRepository
	Services  *database.ServiceRepository
	Campaigns *database.CampaignRepository
	Leads     *database.LeadRepository
	Contracts *database.ContractRepository
	Clients   *database.ClientRepository
	Log       usecase.EventLog
}

// Run wipes the CRM tables and recreates the test dataset. Deletion order
// follows the foreign keys: clients first, services last. Superusers survive
// the wipe.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.Clients.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear clients: %w", err)
	}
	if err := s.Contracts.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear contracts: %w", err)
	}
	if err := s.Leads.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear leads: %w", err)
	}
	if err := s.Campaigns.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear campaigns: %w", err)
	}
	if err := s.Services.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear services: %w", err)
	}
	if err := s.Users.DeleteNonSuperusers(ctx); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}

	if err := s.seedUsers(ctx); err != nil {
		return err
	}
	return s.seedCRM(ctx)
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	users := []struct {
		username  string
		email     string
		role      entity.Role
		staff     bool
		superuser bool
	}{
		{"admin", "admin@example.com", entity.RoleAdmin, true, true},
		{"operator", "operator@example.com", entity.RoleOperator, false, false},
		{"marketer", "marketer@example.com", entity.RoleMarketer, false, false},
		{"manager", "manager@example.com", entity.RoleManager, false, false},
	}

	for _, u := range users {
		user, err := entity.NewUser(u.username, u.email, u.role)
		if err != nil {
			return err
		}
		user.IsStaff = u.staff
		user.IsSuperuser = u.superuser

		_, created, err := s.Users.GetOrCreate(ctx, user)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.username, err)
		}
		if created {
			s.Log.Success("created user " + u.username)
		}
	}
	return nil
}

func (s *Seeder) seedCRM(ctx context.Context) error {
	seo, err := entity.NewService("SEO Promotion", "Full site SEO promotion", 5000000)
	if err != nil {
		return err
	}
	ads, err := entity.NewService("Contextual Advertising", "Ad setup and management", 3000000)
	if err != nil {
		return err
	}
	for _, svc := range []*entity.Service{seo, ads} {
		if err := s.Services.Create(ctx, svc); err != nil {
			return fmt.Errorf("seed service %s: %w", svc.Name, err)
		}
	}

	summer, err := entity.NewCampaign("Summer Enrollment", seo.ID, "google", 10000000)
	if err != nil {
		return err
	}
	newYear, err := entity.NewCampaign("New Year Promo", ads.ID, "yandex", 15000000)
	if err != nil {
		return err
	}
	for _, c := range []*entity.Campaign{summer, newYear} {
		if err := s.Campaigns.Create(ctx, c); err != nil {
			return fmt.Errorf("seed campaign %s: %w", c.Name, err)
		}
	}

	ivan, err := entity.NewLead("Ivan Ivanov", "+79000000000", "ivan@example.com", summer.ID)
	if err != nil {
		return err
	}
	petr, err := entity.NewLead("Petr Petrov", "+79167654321", "petr@example.com", newYear.ID)
	if err != nil {
		return err
	}
	for _, l := range []*entity.Lead{ivan, petr} {
		if err := s.Leads.Create(ctx, l); err != nil {
			return fmt.Errorf("seed lead %s: %w", l.FullName, err)
		}
	}

	c1, err := entity.NewContract("Contract 1", seo.ID, "path/to/document1.pdf",
		date(2023, time.January, 1), date(2023, time.December, 31), 5000000)
	if err != nil {
		return err
	}
	c2, err := entity.NewContract("Contract 2", ads.ID, "path/to/document2.pdf",
		date(2023, time.February, 1), date(2023, time.November, 30), 3000000)
	if err != nil {
		return err
	}
	for _, c := range []*entity.Contract{c1, c2} {
		if err := s.Contracts.Create(ctx, c); err != nil {
			return fmt.Errorf("seed contract %s: %w", c.Name, err)
		}
	}

	s.Log.Success("test data created")
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
