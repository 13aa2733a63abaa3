package usecase

import (
	"context"

	"github.com/velmark/crm-backend/internal/entity"
	"github.com/velmark/crm-backend/internal/infra/queue"
)

// EventLog is the sink every operation reports to. Implementations must not
// fail; a lost event is acceptable, a failed operation because of logging is not.
type EventLog interface {
	Success(message string)
	Warning(message string)
	Error(message string)
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, s *entity.Service) error
	Update(ctx context.Context, s *entity.Service) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Service, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Service, error)
	Count(ctx context.Context) (int, error)
}

type CampaignRepository interface {
	Create(ctx context.Context, c *entity.Campaign) error
	Update(ctx context.Context, c *entity.Campaign) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Campaign, error)
	List(ctx context.Context) ([]*entity.Campaign, error)
}

type LeadRepository interface {
	Create(ctx context.Context, l *entity.Lead) error
	Update(ctx context.Context, l *entity.Lead) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Lead, error)
	List(ctx context.Context) ([]*entity.Lead, error)
}

type ContractRepository interface {
	Create(ctx context.Context, c *entity.Contract) error
	Update(ctx context.Context, c *entity.Contract) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Contract, error)
	List(ctx context.Context) ([]*entity.Contract, error)
}

type ClientRepository interface {
	// CreateConverting inserts the client and flips the lead's converted
	// flag in a single database transaction.
	CreateConverting(ctx context.Context, c *entity.Client) error
	// DeleteResettingLead removes the client and, when the lead still
	// exists, resets its converted flag in the same transaction. The
	// returned bool reports whether a lead was there to reset.
	DeleteResettingLead(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, c *entity.Client) error
	FindByID(ctx context.Context, id string) (*entity.Client, error)
	List(ctx context.Context) ([]*entity.Client, error)
}

type StatsRepository interface {
	AggregateByCampaign(ctx context.Context) ([]entity.CampaignStatsRow, error)
}

// ConversionNotifier publishes a conversion event for asynchronous
// follow-up (welcome mail). Best effort: a publish failure is logged by the
// caller and never fails the conversion.
type ConversionNotifier interface {
	PublishConversion(ctx context.Context, payload queue.ConversionPayload) error
}
