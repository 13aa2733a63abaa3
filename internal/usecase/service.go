package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/velmark/crm-backend/internal/entity"
)

type ServiceUseCase struct {
	Repo ServiceRepository
	Log  EventLog
}

func NewServiceUseCase(repo ServiceRepository, log EventLog) *ServiceUseCase {
	return &ServiceUseCase{Repo: repo, Log: log}
}

func (uc *ServiceUseCase) Create(ctx context.Context, actor *entity.User, input ServiceInput) (*entity.Service, error) {
	if err := Authorize(actor, ResourceService, ActionCreate); err != nil {
		uc.Log.Warning(fmt.Sprintf("user %s attempted to create a service without permission", actorName(actor)))
		return nil, err
	}

	if errs := ValidateServiceInput(input); len(errs) > 0 {
		uc.Log.Warning(fmt.Sprintf("user %s submitted an invalid service: %v", actor.Username, errs))
		return nil, invalid(errs)
	}

	service, err := entity.NewService(input.Name, input.Description, input.PriceCents)
	if err != nil {
		return nil, &DomainError{Code: CodeValidationError, Message: err.Error()}
	}

	if err := uc.Repo.Create(ctx, service); err != nil {
		uc.Log.Error(fmt.Sprintf("user %s failed to create service %q: %v", actor.Username, input.Name, err))
		return nil, databaseError("create service", err)
	}

	uc.Log.Success(fmt.Sprintf("user %s created service %s", actor.Username, service.Name))
	return service, nil
}

func (uc *ServiceUseCase) Update(ctx context.Context, actor *entity.User, id string, input ServiceInput) (*entity.Service, error) {
	if err := Authorize(actor, ResourceService, ActionUpdate); err != nil {
		uc.Log.Warning(fmt.Sprintf("user %s attempted to update service %s without permission", actorName(actor), id))
		return nil, err
	}

	if errs := ValidateServiceInput(input); len(errs) > 0 {
		uc.Log.Warning(fmt.Sprintf("user %s submitted an invalid service update: %v", actor.Username, errs))
		return nil, invalid(errs)
	}

	service, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrServiceNotFound) {
			return nil, notFound("service not found")
		}
		uc.Log.Error(fmt.Sprintf("user %s failed to load service %s: %v", actor.Username, id, err))
		return nil, databaseError("load service", err)
	}

	service.Name = input.Name
	service.Description = input.Description
	service.PriceCents = input.PriceCents
	service.UpdatedAt = time.Now()

	if err := uc.Repo.Update(ctx, service); err != nil {
		uc.Log.Error(fmt.Sprintf("user %s failed to update service %s: %v", actor.Username, id, err))
		return nil, databaseError("update service", err)
	}

	uc.Log.Success(fmt.Sprintf("user %s updated service %s", actor.Username, service.Name))
	return service, nil
}

func (uc *ServiceUseCase) Delete(ctx context.Context, actor *entity.User, id string) error {
	if err := Authorize(actor, ResourceService, ActionDelete); err != nil {
		uc.Log.Warning(fmt.Sprintf("user %s attempted to delete service %s without permission", actorName(actor), id))
		return err
	}

	if err := uc.Repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, entity.ErrServiceNotFound):
			return notFound("service not found")
		case errors.Is(err, entity.ErrProtected):
			uc.Log.Warning(fmt.Sprintf("user %s attempted to delete service %s that is still referenced", actor.Username, id))
			return conflict("service is referenced by campaigns or contracts")
		default:
			uc.Log.Error(fmt.Sprintf("user %s failed to delete service %s: %v", actor.Username, id, err))
			return databaseError("delete service", err)
		}
	}

	uc.Log.Success(fmt.Sprintf("user %s deleted service %s", actor.Username, id))
	return nil
}
