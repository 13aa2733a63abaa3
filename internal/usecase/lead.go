package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/velmark/crm-backend/internal/entity"
)

type LeadUseCase struct {
	Repo      LeadRepository
	Campaigns CampaignRepository
	Log       EventLog
}

func NewLeadUseCase(repo LeadRepository, campaigns CampaignRepository, log EventLog) *LeadUseCase {
	return &LeadUseCase{Repo: repo, Campaigns: campaigns, Log: log}
}

func (uc *LeadUseCase) Create(ctx context.Context, actor *entity.User, input LeadInput) (*entity.Lead, error) {
	if err := Authorize(actor, ResourceLead, ActionCreate); err != nil {
		uc.Log.Warning(fmt.Sprintf("user %s attempted to create a lead without permission", actorName(actor)))
		return nil, err
	}

	if errs := ValidateLeadInput(input); len(errs) > 0 {
		uc.Log.Warning(fmt.Sprintf("user %s submitted an invalid lead: %v", actor.Username, errs))
		return nil, invalid(errs)
	}

	if err := uc.campaignExists(ctx, input.CampaignID); err != nil {
		return nil, err
	}

	lead, err := entity.NewLead(input.FullName, input.Phone, input.Email, input.CampaignID)
	if err != nil {
		return nil, &DomainError{Code: CodeValidationError, Message: err.Error()}
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		uc.Log.Error(fmt.Sprintf("user %s failed to create lead %q: %v", actor.Username, input.FullName, err))
		return nil, databaseError("create lead", err)
	}

	uc.Log.Success(fmt.Sprintf("user %s created lead %s", actor.Username, lead.FullName))
	return lead, nil
}

func (uc *LeadUseCase) Update(ctx context.Context, actor *entity.User, id string, input LeadInput) (*entity.Lead, error) {
	if err := Authorize(actor, ResourceLead, ActionUpdate); err != nil {
		uc.Log.Warning(fmt.Sprintf("user %s attempted to update lead %s without permission", actorName(actor), id))
		return nil, err
	}

	if errs := ValidateLeadInput(input); len(errs) > 0 {
		uc.Log.Warning(fmt.Sprintf("user %s submitted an invalid lead update: %v", actor.Username, errs))
		return nil, invalid(errs)
	}

	lead, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, notFound("lead not found")
		}
		uc.Log.Error(fmt.Sprintf("user %s failed to load lead %s: %v", actor.Username, id, err))
		return nil, databaseError("load lead", err)
	}

	if err := uc.campaignExists(ctx, input.CampaignID); err != nil {
		return nil, err
	}

	lead.FullName = input.FullName
	lead.Phone = input.Phone
	lead.Email = input.Email
	lead.CampaignID = input.CampaignID
	lead.UpdatedAt = time.Now()

	if err := uc.Repo.Update(ctx, lead); err != nil {
		uc.Log.Error(fmt.Sprintf("user %s failed to update lead %s: %v", actor.Username, id, err))
		return nil, databaseError("update lead", err)
	}

	uc.Log.Success(fmt.Sprintf("user %s updated lead %s", actor.Username, lead.FullName))
	return lead, nil
}

func (uc *LeadUseCase) Delete(ctx context.Context, actor *entity.User, id string) error {
	if err := Authorize(actor, ResourceLead, ActionDelete); err != nil {
		uc.Log.Warning(fmt.Sprintf("user %s attempted to delete lead %s without permission", actorName(actor), id))
		return err
	}

	if err := uc.Repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, entity.ErrLeadNotFound):
			return notFound("lead not found")
		case errors.Is(err, entity.ErrProtected):
			uc.Log.Warning(fmt.Sprintf("user %s attempted to delete lead %s that already became a client", actor.Username, id))
			return conflict("lead was converted; delete the client first")
		default:
			uc.Log.Error(fmt.Sprintf("user %s failed to delete lead %s: %v", actor.Username, id, err))
			return databaseError("delete lead", err)
		}
	}

	uc.Log.Success(fmt.Sprintf("user %s deleted lead %s", actor.Username, id))
	return nil
}

func (uc *LeadUseCase) campaignExists(ctx context.Context, campaignID string) error {
	if _, err := uc.Campaigns.FindByID(ctx, campaignID); err != nil {
		if errors.Is(err, entity.ErrCampaignNotFound) {
			return invalid([]ValidationError{{"campaign_id", "campaign does not exist"}})
		}
		return databaseError("load campaign", err)
	}
	return nil
}
