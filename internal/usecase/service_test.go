package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/velmark/crm-backend/internal/entity"
	"github.com/velmark/crm-backend/internal/usecase"
)

func TestCreateServiceAsMarketer(t *testing.T) {
	ctx := context.Background()
	repo := new(MockServiceRepository)
	log := &memoryLog{}

	repo.On("Create", ctx, mock.MatchedBy(func(s *entity.Service) bool {
		return s.Name == "SEO Promotion" && s.PriceCents == 5000000
	})).Return(nil)

	uc := usecase.NewServiceUseCase(repo, log)
	marketer := userWithRole("marketer", entity.RoleMarketer)

	service, err := uc.Create(ctx, marketer, usecase.ServiceInput{
		Name:        "SEO Promotion",
		Description: "Full site SEO promotion",
		PriceCents:  5000000,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, service.ID)
	assert.Len(t, log.successes, 1)
}

func TestCreateServiceInvalidInputNotPersisted(t *testing.T) {
	ctx := context.Background()
	repo := new(MockServiceRepository)
	log := &memoryLog{}

	uc := usecase.NewServiceUseCase(repo, log)
	marketer := userWithRole("marketer", entity.RoleMarketer)

	service, err := uc.Create(ctx, marketer, usecase.ServiceInput{
		Name:       "",
		PriceCents: -100,
	})

	assert.Nil(t, service)
	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, usecase.CodeValidationError, domainErr.Code)
	repo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	assert.True(t, log.hasWarningContaining("invalid service"))
}

func TestDeleteServiceStillReferenced(t *testing.T) {
	ctx := context.Background()
	repo := new(MockServiceRepository)
	log := &memoryLog{}

	repo.On("Delete", ctx, "svc-1").Return(entity.ErrProtected)

	uc := usecase.NewServiceUseCase(repo, log)
	marketer := userWithRole("marketer", entity.RoleMarketer)

	err := uc.Delete(ctx, marketer, "svc-1")

	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, usecase.CodeConflict, domainErr.Code)
	assert.True(t, log.hasWarningContaining("still referenced"))
}

func TestDeleteServiceNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockServiceRepository)
	log := &memoryLog{}

	repo.On("Delete", ctx, "missing").Return(entity.ErrServiceNotFound)

	uc := usecase.NewServiceUseCase(repo, log)
	admin := userWithRole("admin", entity.RoleAdmin)

	err := uc.Delete(ctx, admin, "missing")

	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, usecase.CodeNotFound, domainErr.Code)
}
