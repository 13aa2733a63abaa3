package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/velmark/crm-backend/internal/entity"
)

type ContractUseCase struct {
	Repo     ContractRepository
	Services ServiceRepository
	Log      EventLog
}

func NewContractUseCase(repo ContractRepository, services ServiceRepository, log EventLog) *ContractUseCase {
	return &ContractUseCase{Repo: repo, Services: services, Log: log}
}

func (uc *ContractUseCase) Create(ctx context.Context, actor *entity.User, input ContractInput) (*entity.Contract, error) {
	if err := Authorize(actor, ResourceContract, ActionCreate); err != nil {
		uc.Log.Warning(fmt.Sprintf("user %s attempted to create a contract without permission", actorName(actor)))
		return nil, err
	}

	if errs := ValidateContractInput(input); len(errs) > 0 {
		uc.Log.Warning(fmt.Sprintf("user %s submitted an invalid contract: %v", actor.Username, errs))
		return nil, invalid(errs)
	}

	if err := uc.serviceExists(ctx, input.ServiceID); err != nil {
		return nil, err
	}

	start, _ := parseDate(input.StartDate)
	end, _ := parseDate(input.EndDate)

	contract, err := entity.NewContract(input.Name, input.ServiceID, input.Document, start, end, input.AmountCents)
	if err != nil {
		return nil, &DomainError{Code: CodeValidationError, Message: err.Error()}
	}

	if err := uc.Repo.Create(ctx, contract); err != nil {
		uc.Log.Error(fmt.Sprintf("user %s failed to create contract %q: %v", actor.Username, input.Name, err))
		return nil, databaseError("create contract", err)
	}

	uc.Log.Success(fmt.Sprintf("user %s created contract %s", actor.Username, contract.Name))
	return contract, nil
}

func (uc *ContractUseCase) Update(ctx context.Context, actor *entity.User, id string, input ContractInput) (*entity.Contract, error) {
	if err := Authorize(actor, ResourceContract, ActionUpdate); err != nil {
		uc.Log.Warning(fmt.Sprintf("user %s attempted to update contract %s without permission", actorName(actor), id))
		return nil, err
	}

	if errs := ValidateContractInput(input); len(errs) > 0 {
		uc.Log.Warning(fmt.Sprintf("user %s submitted an invalid contract update: %v", actor.Username, errs))
		return nil, invalid(errs)
	}

	contract, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrContractNotFound) {
			return nil, notFound("contract not found")
		}
		uc.Log.Error(fmt.Sprintf("user %s failed to load contract %s: %v", actor.Username, id, err))
		return nil, databaseError("load contract", err)
	}

	if err := uc.serviceExists(ctx, input.ServiceID); err != nil {
		return nil, err
	}

	start, _ := parseDate(input.StartDate)
	end, _ := parseDate(input.EndDate)

	contract.Name = input.Name
	contract.ServiceID = input.ServiceID
	contract.Document = input.Document
	contract.StartDate = start
	contract.EndDate = end
	contract.AmountCents = input.AmountCents
	contract.UpdatedAt = time.Now()

	if err := uc.Repo.Update(ctx, contract); err != nil {
		uc.Log.Error(fmt.Sprintf("user %s failed to update contract %s: %v", actor.Username, id, err))
		return nil, databaseError("update contract", err)
	}

	uc.Log.Success(fmt.Sprintf("user %s updated contract %s", actor.Username, contract.Name))
	return contract, nil
}

func (uc *ContractUseCase) Delete(ctx context.Context, actor *entity.User, id string) error {
	if err := Authorize(actor, ResourceContract, ActionDelete); err != nil {
		uc.Log.Warning(fmt.Sprintf("user %s attempted to delete contract %s without permission", actorName(actor), id))
		return err
	}

	if err := uc.Repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, entity.ErrContractNotFound):
			return notFound("contract not found")
		case errors.Is(err, entity.ErrProtected):
			uc.Log.Warning(fmt.Sprintf("user %s attempted to delete contract %s that still backs clients", actor.Username, id))
			return conflict("contract still backs clients")
		default:
			uc.Log.Error(fmt.Sprintf("user %s failed to delete contract %s: %v", actor.Username, id, err))
			return databaseError("delete contract", err)
		}
	}

	uc.Log.Success(fmt.Sprintf("user %s deleted contract %s", actor.Username, id))
	return nil
}

func (uc *ContractUseCase) serviceExists(ctx context.Context, serviceID string) error {
	if _, err := uc.Services.FindByID(ctx, serviceID); err != nil {
		if errors.Is(err, entity.ErrServiceNotFound) {
			return invalid([]ValidationError{{"service_id", "service does not exist"}})
		}
		return databaseError("load service", err)
	}
	return nil
}
