package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ActivityHandler struct {
	activityRepo entity.ActivityRepositoryInterface
	dealRepo     entity.DealRepositoryInterface
}

func NewActivityHandler(activityRepo entity.ActivityRepositoryInterface, dealRepo entity.DealRepositoryInterface) *ActivityHandler {
	return &ActivityHandler{
		activityRepo: activityRepo,
		dealRepo:     dealRepo,
	}
}

type CreateActivityRequest struct {
	Type string `json:"type"`
	Note string `json:"note,omitempty"`
}

func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dealID := chi.URLParam(r, "dealId")

	// Garante que o deal existe antes de registrar histórico nele
	if _, err := h.dealRepo.FindByID(ctx, dealID); err != nil {
		if errors.Is(err, entity.ErrDealNotFound) {
			http.Error(w, "Deal não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch deal", http.StatusInternalServerError)
		return
	}

	var req CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	activity, err := entity.NewActivity(dealID, req.Type, req.Note)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.activityRepo.Create(ctx, activity); err != nil {
		http.Error(w, "Failed to create activity", http.StatusInternalServerError)
		return
	}

	// Atividade registrada conta como contato para o planner
	if err := h.dealRepo.TouchLastContact(ctx, dealID, time.Now()); err != nil {
		log.Printf("⚠️ Falha ao atualizar last_contact_at do deal %s: %v", dealID, err)
	}

	writeJSON(w, http.StatusCreated, activity)
}

func (h *ActivityHandler) ListByDeal(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activityRepo.ListByDeal(r.Context(), chi.URLParam(r, "dealId"))
	if err != nil {
		http.Error(w, "Failed to list activities", http.StatusInternalServerError)
		return
	}
	if activities == nil {
		activities = []*entity.Activity{}
	}

	writeJSON(w, http.StatusOK, activities)
}
