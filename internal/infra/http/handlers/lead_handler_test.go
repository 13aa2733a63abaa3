package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/velmark/crm-backend/internal/entity"
	"github.com/velmark/crm-backend/internal/infra/http/handlers"
	"github.com/velmark/crm-backend/internal/infra/http/middleware"
	"github.com/velmark/crm-backend/internal/infra/logging"
	"github.com/velmark/crm-backend/internal/usecase"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, l *entity.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLeadRepository) Update(ctx context.Context, l *entity.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) Create(ctx context.Context, c *entity.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContractRepository) Update(ctx context.Context, c *entity.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContractRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContractRepository) FindByID(ctx context.Context, id string) (*entity.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contract), args.Error(1)
}

func (m *MockContractRepository) List(ctx context.Context) ([]*entity.Contract, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Contract), args.Error(1)
}

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) CreateConverting(ctx context.Context, c *entity.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteResettingLead(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) Update(ctx context.Context, c *entity.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Client), args.Error(1)
}

func (m *MockClientRepository) List(ctx context.Context) ([]*entity.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Client), args.Error(1)
}

func convertTestRouter(t *testing.T, users *MockUserRepository, leads *MockLeadRepository, contracts *MockContractRepository, clients *MockClientRepository) http.Handler {
	t.Helper()
	log := logging.NewNop()

	leadUC := usecase.NewLeadUseCase(leads, nil, log)
	convertUC := usecase.NewConvertLeadUseCase(clients, leads, contracts, nil, log)
	handler := handlers.NewLeadHandler(leadUC, convertUC, leads, log)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Actor(users))
		r.Post("/leads/{id}/convert", handler.HandleConvert)
	})
	return r
}

func TestHandleConvertCreatesClient(t *testing.T) {
	users := new(MockUserRepository)
	leads := new(MockLeadRepository)
	contracts := new(MockContractRepository)
	clients := new(MockClientRepository)

	manager, _ := entity.NewUser("manager", "manager@example.com", entity.RoleManager)
	lead, _ := entity.NewLead("Ivan Ivanov", "+79000000000", "ivan@example.com", "camp-1")
	contract, _ := entity.NewContract("Contract 1", "svc-1", "path/to/document1.pdf",
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), 5000000)

	users.On("FindByID", mock.Anything, manager.ID).Return(manager, nil)
	leads.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
	contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	clients.On("CreateConverting", mock.Anything, mock.MatchedBy(func(c *entity.Client) bool {
		return c.LeadID == lead.ID && c.ContractID == contract.ID
	})).Return(nil)

	router := convertTestRouter(t, users, leads, contracts, clients)

	body, _ := json.Marshal(map[string]string{"contract_id": contract.ID})
	req := httptest.NewRequest(http.MethodPost, "/leads/"+lead.ID+"/convert", bytes.NewReader(body))
	req.Header.Set("X-User-ID", manager.ID)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var created entity.Client
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, lead.ID, created.LeadID)
	assert.Equal(t, contract.ID, created.ContractID)
}

func TestHandleConvertForbiddenForOperator(t *testing.T) {
	users := new(MockUserRepository)
	leads := new(MockLeadRepository)
	contracts := new(MockContractRepository)
	clients := new(MockClientRepository)

	operator, _ := entity.NewUser("operator", "operator@example.com", entity.RoleOperator)
	users.On("FindByID", mock.Anything, operator.ID).Return(operator, nil)

	router := convertTestRouter(t, users, leads, contracts, clients)

	body, _ := json.Marshal(map[string]string{"contract_id": "contract-1"})
	req := httptest.NewRequest(http.MethodPost, "/leads/lead-1/convert", bytes.NewReader(body))
	req.Header.Set("X-User-ID", operator.ID)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	clients.AssertNotCalled(t, "CreateConverting", mock.Anything, mock.Anything)
}

func TestHandleConvertRequiresActor(t *testing.T) {
	users := new(MockUserRepository)
	router := convertTestRouter(t, users, new(MockLeadRepository), new(MockContractRepository), new(MockClientRepository))

	req := httptest.NewRequest(http.MethodPost, "/leads/lead-1/convert", bytes.NewReader([]byte(`{"contract_id":"c-1"}`)))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleConvertAlreadyConverted(t *testing.T) {
	users := new(MockUserRepository)
	leads := new(MockLeadRepository)
	contracts := new(MockContractRepository)
	clients := new(MockClientRepository)

	manager, _ := entity.NewUser("manager", "manager@example.com", entity.RoleManager)
	lead, _ := entity.NewLead("Ivan Ivanov", "+79000000000", "ivan@example.com", "camp-1")
	lead.IsConverted = true

	users.On("FindByID", mock.Anything, manager.ID).Return(manager, nil)
	leads.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)

	router := convertTestRouter(t, users, leads, contracts, clients)

	body, _ := json.Marshal(map[string]string{"contract_id": "contract-1"})
	req := httptest.NewRequest(http.MethodPost, "/leads/"+lead.ID+"/convert", bytes.NewReader(body))
	req.Header.Set("X-User-ID", manager.ID)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
