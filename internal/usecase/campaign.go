package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/velmark/crm-backend/internal/entity"
)

type CampaignUseCase struct {
	Repo     CampaignRepository
	Services ServiceRepository
	Log      EventLog
}

func NewCampaignUseCase(repo CampaignRepository, services ServiceRepository, log EventLog) *CampaignUseCase {
	return &CampaignUseCase{Repo: repo, Services: services, Log: log}
}

func (uc *CampaignUseCase) Create(ctx context.Context, actor *entity.User, input CampaignInput) (*entity.Campaign, error) {
	if err := Authorize(actor, ResourceCampaign, ActionCreate); err != nil {
		uc.Log.Warning(fmt.Sprintf("user %s attempted to create a campaign without permission", actorName(actor)))
		return nil, err
	}

	if errs := ValidateCampaignInput(input); len(errs) > 0 {
		uc.Log.Warning(fmt.Sprintf("user %s submitted an invalid campaign: %v", actor.Username, errs))
		return nil, invalid(errs)
	}

	if err := uc.serviceExists(ctx, input.ServiceID); err != nil {
		return nil, err
	}

	campaign, err := entity.NewCampaign(input.Name, input.ServiceID, input.Channel, input.BudgetCents)
	if err != nil {
		return nil, &DomainError{Code: CodeValidationError, Message: err.Error()}
	}

	if err := uc.Repo.Create(ctx, campaign); err != nil {
		uc.Log.Error(fmt.Sprintf("user %s failed to create campaign %q: %v", actor.Username, input.Name, err))
		return nil, databaseError("create campaign", err)
	}

	uc.Log.Success(fmt.Sprintf("user %s created campaign %s", actor.Username, campaign.Name))
	return campaign, nil
}

func (uc *CampaignUseCase) Update(ctx context.Context, actor *entity.User, id string, input CampaignInput) (*entity.Campaign, error) {
	if err := Authorize(actor, ResourceCampaign, ActionUpdate); err != nil {
		uc.Log.Warning(fmt.Sprintf("user %s attempted to update campaign %s without permission", actorName(actor), id))
		return nil, err
	}

	if errs := ValidateCampaignInput(input); len(errs) > 0 {
		uc.Log.Warning(fmt.Sprintf("user %s submitted an invalid campaign update: %v", actor.Username, errs))
		return nil, invalid(errs)
	}

	campaign, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrCampaignNotFound) {
			return nil, notFound("campaign not found")
		}
		uc.Log.Error(fmt.Sprintf("user %s failed to load campaign %s: %v", actor.Username, id, err))
		return nil, databaseError("load campaign", err)
	}

	if err := uc.serviceExists(ctx, input.ServiceID); err != nil {
		return nil, err
	}

	campaign.Name = input.Name
	campaign.ServiceID = input.ServiceID
	campaign.Channel = input.Channel
	campaign.BudgetCents = input.BudgetCents
	campaign.UpdatedAt = time.Now()

	if err := uc.Repo.Update(ctx, campaign); err != nil {
		uc.Log.Error(fmt.Sprintf("user %s failed to update campaign %s: %v", actor.Username, id, err))
		return nil, databaseError("update campaign", err)
	}

	uc.Log.Success(fmt.Sprintf("user %s updated campaign %s", actor.Username, campaign.Name))
	return campaign, nil
}

func (uc *CampaignUseCase) Delete(ctx context.Context, actor *entity.User, id string) error {
	if err := Authorize(actor, ResourceCampaign, ActionDelete); err != nil {
		uc.Log.Warning(fmt.Sprintf("user %s attempted to delete campaign %s without permission", actorName(actor), id))
		return err
	}

	if err := uc.Repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, entity.ErrCampaignNotFound):
			return notFound("campaign not found")
		case errors.Is(err, entity.ErrProtected):
			uc.Log.Warning(fmt.Sprintf("user %s attempted to delete campaign %s that still owns leads", actor.Username, id))
			return conflict("campaign still owns leads")
		default:
			uc.Log.Error(fmt.Sprintf("user %s failed to delete campaign %s: %v", actor.Username, id, err))
			return databaseError("delete campaign", err)
		}
	}

	uc.Log.Success(fmt.Sprintf("user %s deleted campaign %s", actor.Username, id))
	return nil
}

func (uc *CampaignUseCase) serviceExists(ctx context.Context, serviceID string) error {
	if _, err := uc.Services.FindByID(ctx, serviceID); err != nil {
		if errors.Is(err, entity.ErrServiceNotFound) {
			return invalid([]ValidationError{{"service_id", "service does not exist"}})
		}
		return databaseError("load service", err)
	}
	return nil
}
