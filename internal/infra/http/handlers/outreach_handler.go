package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// Interfaces declaradas aqui para o handler ser testável sem banco/planner
type PlanGenerator interface {
	Execute(ctx context.Context, input usecase.GeneratePlanInput) (*usecase.GeneratePlanOutput, error)
}

type StepStatusUpdater interface {
	Execute(ctx context.Context, input usecase.UpdateStepStatusInput) (*entity.OutreachStep, error)
}

type OutreachHandler struct {
	GeneratePlan PlanGenerator
	UpdateStatus StepStatusUpdater
	StepRepo     entity.OutreachStepRepositoryInterface
}

func NewOutreachHandler(generatePlan PlanGenerator, updateStatus StepStatusUpdater, stepRepo entity.OutreachStepRepositoryInterface) *OutreachHandler {
	return &OutreachHandler{
		GeneratePlan: generatePlan,
		UpdateStatus: updateStatus,
		StepRepo:     stepRepo,
	}
}

type GeneratePlanRequest struct {
	HorizonDays int `json:"horizon_days"`
}

// HandleGeneratePlan: POST /deals/{dealId}/outreach/plan
func (h *OutreachHandler) HandleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	dealID := chi.URLParam(r, "dealId")

	var req GeneratePlanRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "JSON inválido", http.StatusBadRequest)
			return
		}
	}

	output, err := h.GeneratePlan.Execute(r.Context(), usecase.GeneratePlanInput{
		DealID:      dealID,
		HorizonDays: req.HorizonDays,
	})
	if err != nil {
		if usecase.IsDomainError(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	middleware.RecordPlanGenerated(output.Source, len(output.Steps))

	writeJSON(w, http.StatusCreated, output)
}

type UpdateStepStatusRequest struct {
	Status string `json:"status"`
}

type UpdateStepStatusResponse struct {
	OK          bool   `json:"ok"`
	Status      string `json:"status"`
	CompletedAt any    `json:"completed_at"`
}

// HandleUpdateStepStatus: PATCH /outreach/steps/{stepId}/status
func (h *OutreachHandler) HandleUpdateStepStatus(w http.ResponseWriter, r *http.Request) {
	stepID := chi.URLParam(r, "stepId")

	var req UpdateStepStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	step, err := h.UpdateStatus.Execute(r.Context(), usecase.UpdateStepStatusInput{
		StepID: stepID,
		Status: req.Status,
	})
	if err != nil {
		if domainErr, ok := err.(*usecase.DomainError); ok {
			if domainErr.Code == "STEP_NOT_FOUND" {
				http.Error(w, domainErr.Message, http.StatusNotFound)
				return
			}
			http.Error(w, domainErr.Message, http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	middleware.RecordStepStatusUpdate(string(step.Status.State()))

	writeJSON(w, http.StatusOK, UpdateStepStatusResponse{
		OK:          true,
		Status:      string(step.Status.State()),
		CompletedAt: step.Status.CompletedAt(),
	})
}

// HandleListSteps: GET /deals/{dealId}/outreach/steps
func (h *OutreachHandler) HandleListSteps(w http.ResponseWriter, r *http.Request) {
	steps, err := h.StepRepo.ListByDeal(r.Context(), chi.URLParam(r, "dealId"))
	if err != nil {
		http.Error(w, "Failed to list steps", http.StatusInternalServerError)
		return
	}
	if steps == nil {
		steps = []*entity.OutreachStep{}
	}

	writeJSON(w, http.StatusOK, steps)
}
