package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/velmark/crm-backend/internal/entity"
)

// ClientUseCase covers updating and deleting clients. Clients are never
// created here; the only way a client comes into existence is the
// conversion workflow in convert_lead.go.
type ClientUseCase struct {
	Repo      ClientRepository
	Contracts ContractRepository
	Log       EventLog
}

func NewClientUseCase(repo ClientRepository, contracts ContractRepository, log EventLog) *ClientUseCase {
	return &ClientUseCase{Repo: repo, Contracts: contracts, Log: log}
}

func (uc *ClientUseCase) Update(ctx context.Context, actor *entity.User, id string, input ClientUpdateInput) (*entity.Client, error) {
	if err := Authorize(actor, ResourceClient, ActionUpdate); err != nil {
		uc.Log.Warning(fmt.Sprintf("user %s attempted to update client %s without permission", actorName(actor), id))
		return nil, err
	}

	if errs := ValidateClientUpdateInput(input); len(errs) > 0 {
		uc.Log.Warning(fmt.Sprintf("user %s submitted an invalid client update: %v", actor.Username, errs))
		return nil, invalid(errs)
	}

	client, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrClientNotFound) {
			return nil, notFound("client not found")
		}
		uc.Log.Error(fmt.Sprintf("user %s failed to load client %s: %v", actor.Username, id, err))
		return nil, databaseError("load client", err)
	}

	if _, err := uc.Contracts.FindByID(ctx, input.ContractID); err != nil {
		if errors.Is(err, entity.ErrContractNotFound) {
			return nil, invalid([]ValidationError{{"contract_id", "contract does not exist"}})
		}
		return nil, databaseError("load contract", err)
	}

	client.ContractID = input.ContractID
	client.UpdatedAt = time.Now()

	if err := uc.Repo.Update(ctx, client); err != nil {
		uc.Log.Error(fmt.Sprintf("user %s failed to update client %s: %v", actor.Username, id, err))
		return nil, databaseError("update client", err)
	}

	uc.Log.Success(fmt.Sprintf("user %s updated client %s", actor.Username, client.ID))
	return client, nil
}

// Delete removes a client and resets the owning lead back to unconverted.
// Both writes run inside one database transaction so a failure cannot leave
// a converted lead with no client behind it.
func (uc *ClientUseCase) Delete(ctx context.Context, actor *entity.User, id string) error {
	if err := Authorize(actor, ResourceClient, ActionDelete); err != nil {
		uc.Log.Warning(fmt.Sprintf("user %s attempted to delete client %s without permission", actorName(actor), id))
		return err
	}

	leadReset, err := uc.Repo.DeleteResettingLead(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrClientNotFound) {
			return notFound("client not found")
		}
		uc.Log.Error(fmt.Sprintf("user %s failed to delete client %s: %v", actor.Username, id, err))
		return databaseError("delete client", err)
	}

	if leadReset {
		uc.Log.Success(fmt.Sprintf("user %s deleted client %s and reset its lead", actor.Username, id))
	} else {
		uc.Log.Success(fmt.Sprintf("user %s deleted client %s (no lead to reset)", actor.Username, id))
	}
	return nil
}
