package usecase

import (
	"fmt"

	"github.com/velmark/crm-backend/internal/entity"
)

type Resource string

const (
	ResourceService  Resource = "service"
	ResourceCampaign Resource = "campaign"
	ResourceLead     Resource = "lead"
	ResourceContract Resource = "contract"
	ResourceClient   Resource = "client"
	// Conversion is authorized on its own, it is not a plain lead mutation.
	ResourceConversion Resource = "conversion"
)

type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionConvert Action = "convert"
)

// mutationRoles is the per-resource allow-list. ADMIN is allowed everywhere,
// so only the second role varies. Reads are open to any authenticated user
// and never consult this table.
var mutationRoles = map[Resource]entity.Role{
	ResourceService:    entity.RoleMarketer,
	ResourceCampaign:   entity.RoleMarketer,
	ResourceLead:       entity.RoleOperator,
	ResourceContract:   entity.RoleManager,
	ResourceClient:     entity.RoleManager,
	ResourceConversion: entity.RoleManager,
}

// Authorize decides whether actor may perform action on resource. It is the
// single policy gate for every mutating operation and runs before any other
// side effect.
func Authorize(actor *entity.User, resource Resource, action Action) error {
	if actor == nil {
		return forbidden("authentication required")
	}
	if actor.IsAdmin() {
		return nil
	}
	if role, ok := mutationRoles[resource]; ok && actor.Role == role {
		return nil
	}
	return forbidden(fmt.Sprintf("user %s is not allowed to %s %s", actor.Username, action, resource))
}

func actorName(actor *entity.User) string {
	if actor == nil {
		return "anonymous"
	}
	return actor.Username
}
