package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type DealHandler struct {
	dealRepo entity.DealRepositoryInterface
}

func NewDealHandler(dealRepo entity.DealRepositoryInterface) *DealHandler {
	return &DealHandler{dealRepo: dealRepo}
}

func (h *DealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateDealInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	if errs := usecase.ValidateCreateDealInput(req); len(errs) > 0 {
		http.Error(w, errs[0].Error(), http.StatusBadRequest)
		return
	}

	deal, err := entity.NewDeal(req.LeadID, req.Title, req.ContactName, req.ContactEmail, req.ContactPhone, req.ValueCents)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Stage != "" {
		deal.Stage = entity.CanonicalStage(req.Stage)
	}

	if err := h.dealRepo.Create(r.Context(), deal); err != nil {
		http.Error(w, "Failed to create deal", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, deal)
}

func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	deals, err := h.dealRepo.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to list deals", http.StatusInternalServerError)
		return
	}
	if deals == nil {
		deals = []*entity.Deal{}
	}

	writeJSON(w, http.StatusOK, deals)
}

func (h *DealHandler) Get(w http.ResponseWriter, r *http.Request) {
	deal, err := h.dealRepo.FindByID(r.Context(), chi.URLParam(r, "dealId"))
	if err != nil {
		if errors.Is(err, entity.ErrDealNotFound) {
			http.Error(w, "Deal não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch deal", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, deal)
}

func (h *DealHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dealID := chi.URLParam(r, "dealId")

	deal, err := h.dealRepo.FindByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, entity.ErrDealNotFound) {
			http.Error(w, "Deal não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch deal", http.StatusInternalServerError)
		return
	}

	var req usecase.CreateDealInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if errs := usecase.ValidateCreateDealInput(req); len(errs) > 0 {
		http.Error(w, errs[0].Error(), http.StatusBadRequest)
		return
	}

	deal.Title = req.Title
	deal.ContactName = req.ContactName
	deal.ContactEmail = req.ContactEmail
	deal.ContactPhone = req.ContactPhone
	deal.ValueCents = req.ValueCents
	if req.Stage != "" {
		deal.Stage = entity.CanonicalStage(req.Stage)
	}

	if err := h.dealRepo.Update(ctx, deal); err != nil {
		http.Error(w, "Failed to update deal", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, deal)
}

type UpdateStageRequest struct {
	Stage string `json:"stage"`
}

func (h *DealHandler) UpdateStage(w http.ResponseWriter, r *http.Request) {
	dealID := chi.URLParam(r, "dealId")

	var req UpdateStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	if !entity.IsValidStage(req.Stage) {
		http.Error(w, "stage must be one of: new, qualified, proposal_sent, won, lost", http.StatusBadRequest)
		return
	}

	err := h.dealRepo.UpdateStage(r.Context(), dealID, entity.CanonicalStage(req.Stage))
	if err != nil {
		if errors.Is(err, entity.ErrDealNotFound) {
			http.Error(w, "Deal não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update stage", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "stage": entity.CanonicalStage(req.Stage)})
}
