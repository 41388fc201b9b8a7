package handlers

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

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type mockPlanGenerator struct {
	mock.Mock
}

func (m *mockPlanGenerator) Execute(ctx context.Context, input usecase.GeneratePlanInput) (*usecase.GeneratePlanOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.GeneratePlanOutput), args.Error(1)
}

type mockStatusUpdater struct {
	mock.Mock
}

func (m *mockStatusUpdater) Execute(ctx context.Context, input usecase.UpdateStepStatusInput) (*entity.OutreachStep, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OutreachStep), args.Error(1)
}

type mockStepRepo struct {
	mock.Mock
}

func (m *mockStepRepo) InsertBatch(ctx context.Context, steps []*entity.OutreachStep) error {
	args := m.Called(ctx, steps)
	return args.Error(0)
}

func (m *mockStepRepo) SetStatus(ctx context.Context, stepID string, state entity.StepState) (*entity.OutreachStep, error) {
	args := m.Called(ctx, stepID, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OutreachStep), args.Error(1)
}

func (m *mockStepRepo) ListByDeal(ctx context.Context, dealID string) ([]*entity.OutreachStep, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.OutreachStep), args.Error(1)
}

func newOutreachRouter(h *OutreachHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/deals/{dealId}/outreach/plan", h.HandleGeneratePlan)
	r.Get("/deals/{dealId}/outreach/steps", h.HandleListSteps)
	r.Patch("/outreach/steps/{stepId}/status", h.HandleUpdateStepStatus)
	return r
}

func TestHandleGeneratePlanCreated(t *testing.T) {
	gen := new(mockPlanGenerator)
	repo := new(mockStepRepo)

	step := &entity.OutreachStep{
		ID:      "step-1",
		DealID:  "deal-1",
		DueDate: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		Channel: entity.ChannelEmail,
		Intent:  entity.IntentFirstContact,
		Status:  entity.PendingStatus(),
	}
	gen.On("Execute", mock.Anything, usecase.GeneratePlanInput{DealID: "deal-1", HorizonDays: 7}).
		Return(&usecase.GeneratePlanOutput{Source: usecase.PlanSourceAI, Steps: []*entity.OutreachStep{step}}, nil)

	h := NewOutreachHandler(gen, new(mockStatusUpdater), repo)

	body := bytes.NewBufferString(`{"horizon_days": 7}`)
	req := httptest.NewRequest(http.MethodPost, "/deals/deal-1/outreach/plan", body)
	rec := httptest.NewRecorder()
	newOutreachRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Source string            `json:"source"`
		Steps  []json.RawMessage `json:"steps"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ai", resp.Source)
	assert.Len(t, resp.Steps, 1)
}

func TestHandleGeneratePlanWithoutBody(t *testing.T) {
	gen := new(mockPlanGenerator)

	// Corpo ausente: horizonte zero chega ao usecase, que aplica o default
	gen.On("Execute", mock.Anything, usecase.GeneratePlanInput{DealID: "deal-1", HorizonDays: 0}).
		Return(&usecase.GeneratePlanOutput{Source: usecase.PlanSourceFallback, Steps: []*entity.OutreachStep{}}, nil)

	h := NewOutreachHandler(gen, new(mockStatusUpdater), new(mockStepRepo))

	req := httptest.NewRequest(http.MethodPost, "/deals/deal-1/outreach/plan", nil)
	rec := httptest.NewRecorder()
	newOutreachRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	gen.AssertExpectations(t)
}

func TestHandleGeneratePlanDealNotFound(t *testing.T) {
	gen := new(mockPlanGenerator)
	gen.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &usecase.DomainError{Code: "DEAL_NOT_FOUND", Message: "deal não encontrado"})

	h := NewOutreachHandler(gen, new(mockStatusUpdater), new(mockStepRepo))

	req := httptest.NewRequest(http.MethodPost, "/deals/ghost/outreach/plan", nil)
	rec := httptest.NewRecorder()
	newOutreachRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleUpdateStepStatusOK(t *testing.T) {
	updater := new(mockStatusUpdater)
	now := time.Now()
	updater.On("Execute", mock.Anything, usecase.UpdateStepStatusInput{StepID: "step-1", Status: "done"}).
		Return(&entity.OutreachStep{ID: "step-1", Status: entity.DoneStatus(now)}, nil)

	h := NewOutreachHandler(new(mockPlanGenerator), updater, new(mockStepRepo))

	body := bytes.NewBufferString(`{"status": "done"}`)
	req := httptest.NewRequest(http.MethodPatch, "/outreach/steps/step-1/status", body)
	rec := httptest.NewRecorder()
	newOutreachRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp UpdateStepStatusResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "done", resp.Status)
	assert.NotNil(t, resp.CompletedAt)
}

func TestHandleUpdateStepStatusNotFound(t *testing.T) {
	updater := new(mockStatusUpdater)
	updater.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &usecase.DomainError{Code: "STEP_NOT_FOUND", Message: "outreach step não encontrado"})

	h := NewOutreachHandler(new(mockPlanGenerator), updater, new(mockStepRepo))

	body := bytes.NewBufferString(`{"status": "done"}`)
	req := httptest.NewRequest(http.MethodPatch, "/outreach/steps/ghost/status", body)
	rec := httptest.NewRecorder()
	newOutreachRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleUpdateStepStatusInvalid(t *testing.T) {
	updater := new(mockStatusUpdater)
	updater.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &usecase.DomainError{Code: "INVALID_STATUS", Message: "status inválido"})

	h := NewOutreachHandler(new(mockPlanGenerator), updater, new(mockStepRepo))

	body := bytes.NewBufferString(`{"status": "cancelled"}`)
	req := httptest.NewRequest(http.MethodPatch, "/outreach/steps/step-1/status", body)
	rec := httptest.NewRecorder()
	newOutreachRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListStepsEmpty(t *testing.T) {
	repo := new(mockStepRepo)
	repo.On("ListByDeal", mock.Anything, "deal-1").Return(nil, nil)

	h := NewOutreachHandler(new(mockPlanGenerator), new(mockStatusUpdater), repo)

	req := httptest.NewRequest(http.MethodGet, "/deals/deal-1/outreach/steps", nil)
	rec := httptest.NewRecorder()
	newOutreachRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// lista vazia sai como [], nunca null
	assert.Equal(t, "[]", string(bytes.TrimSpace(rec.Body.Bytes())))
}
