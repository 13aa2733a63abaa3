package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/velmark/crm-backend/internal/entity"
	"github.com/velmark/crm-backend/internal/infra/queue"
)

// ConvertLeadUseCase is the one multi-entity write in the system: it turns a
// lead into a client against a contract picked by the acting manager. The
// client insert and the lead flag update happen in a single database
// transaction inside ClientRepository.CreateConverting.
type ConvertLeadUseCase struct {
	Clients   ClientRepository
	Leads     LeadRepository
	Contracts ContractRepository
	Notifier  ConversionNotifier
	Log       EventLog
}

func NewConvertLeadUseCase(
	clients ClientRepository,
	leads LeadRepository,
	contracts ContractRepository,
	notifier ConversionNotifier,
	log EventLog,
) *ConvertLeadUseCase {
	return &ConvertLeadUseCase{
		Clients:   clients,
		Leads:     leads,
		Contracts: contracts,
		Notifier:  notifier,
		Log:       log,
	}
}

func (uc *ConvertLeadUseCase) Execute(ctx context.Context, actor *entity.User, input ConvertLeadInput) (*entity.Client, error) {
	if err := Authorize(actor, ResourceConversion, ActionConvert); err != nil {
		uc.Log.Warning(fmt.Sprintf("user %s attempted to convert lead %s without permission", actorName(actor), input.LeadID))
		return nil, err
	}

	if errs := ValidateConvertLeadInput(input); len(errs) > 0 {
		uc.Log.Warning(fmt.Sprintf("user %s submitted an invalid conversion: %v", actor.Username, errs))
		return nil, invalid(errs)
	}

	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, notFound("lead not found")
		}
		uc.Log.Error(fmt.Sprintf("user %s failed to load lead %s for conversion: %v", actor.Username, input.LeadID, err))
		return nil, databaseError("load lead", err)
	}
	if lead.IsConverted {
		uc.Log.Warning(fmt.Sprintf("user %s attempted to convert lead %s twice", actor.Username, lead.FullName))
		return nil, conflict("lead is already converted")
	}

	contract, err := uc.Contracts.FindByID(ctx, input.ContractID)
	if err != nil {
		if errors.Is(err, entity.ErrContractNotFound) {
			return nil, invalid([]ValidationError{{"contract_id", "contract does not exist"}})
		}
		uc.Log.Error(fmt.Sprintf("user %s failed to load contract %s for conversion: %v", actor.Username, input.ContractID, err))
		return nil, databaseError("load contract", err)
	}

	client, err := entity.NewClient(lead.ID, contract.ID)
	if err != nil {
		return nil, &DomainError{Code: CodeValidationError, Message: err.Error()}
	}

	if err := uc.Clients.CreateConverting(ctx, client); err != nil {
		// Two managers racing on the same lead: the unique index on
		// clients.lead_id lets only the first insert through.
		if errors.Is(err, entity.ErrLeadAlreadyConverted) {
			uc.Log.Warning(fmt.Sprintf("user %s attempted to convert lead %s twice", actor.Username, lead.FullName))
			return nil, conflict("lead is already converted")
		}
		uc.Log.Error(fmt.Sprintf("user %s failed to convert lead %s: %v", actor.Username, lead.FullName, err))
		return nil, databaseError("convert lead", err)
	}

	uc.Log.Success(fmt.Sprintf("user %s converted lead %s into client %s", actor.Username, lead.FullName, client.ID))

	if uc.Notifier != nil {
		payload := queue.ConversionPayload{
			ClientID:     client.ID,
			LeadID:       lead.ID,
			LeadName:     lead.FullName,
			LeadEmail:    lead.Email,
			ContractID:   contract.ID,
			ContractName: contract.Name,
			ConvertedBy:  actor.Username,
		}
		if err := uc.Notifier.PublishConversion(ctx, payload); err != nil {
			// Converted in the database but the event did not go out.
			uc.Log.Warning(fmt.Sprintf("conversion of lead %s saved, but the event was not published: %v", lead.FullName, err))
		}
	}

	return client, nil
}
