package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type LeadHandler struct {
	leadRepo    entity.LeadRepositoryInterface
	dealRepo    entity.DealRepositoryInterface
	rateLimiter *RateLimiter
}

func NewLeadHandler(leadRepo entity.LeadRepositoryInterface, dealRepo entity.DealRepositoryInterface) *LeadHandler {
	return &LeadHandler{
		leadRepo:    leadRepo,
		dealRepo:    dealRepo,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min por IP
	}
}

type CaptureLeadResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// CaptureLead é o endpoint público do formulário do site, por isso tem
// rate limit por IP.
func (h *LeadHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, CaptureLeadResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var req usecase.CaptureLeadInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}

	if errs := usecase.ValidateCaptureLeadInput(req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: errs[0].Error(),
		})
		return
	}

	lead, err := entity.NewLead(req.Email, req.Name, req.Phone, req.Company, req.Source)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	if err := h.leadRepo.Upsert(ctx, lead); err != nil {
		writeJSON(w, http.StatusInternalServerError, CaptureLeadResponse{
			Success: false,
			Message: "Failed to capture lead",
		})
		return
	}

	writeJSON(w, http.StatusOK, CaptureLeadResponse{
		Success: true,
		ID:      lead.ID,
	})
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leadRepo.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to list leads", http.StatusInternalServerError)
		return
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}

	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.leadRepo.FindByID(r.Context(), chi.URLParam(r, "leadId"))
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			http.Error(w, "Lead não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch lead", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	leadID := chi.URLParam(r, "leadId")

	lead, err := h.leadRepo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			http.Error(w, "Lead não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch lead", http.StatusInternalServerError)
		return
	}

	var req usecase.CaptureLeadInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if errs := usecase.ValidateCaptureLeadInput(req); len(errs) > 0 {
		http.Error(w, errs[0].Error(), http.StatusBadRequest)
		return
	}

	lead.Email = req.Email
	lead.Name = req.Name
	lead.Phone = req.Phone
	lead.Company = req.Company
	lead.Source = req.Source

	if err := h.leadRepo.Update(ctx, lead); err != nil {
		http.Error(w, "Failed to update lead", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.leadRepo.Delete(r.Context(), chi.URLParam(r, "leadId"))
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			http.Error(w, "Lead não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete lead", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type ConvertLeadRequest struct {
	Title      string `json:"title"`
	ValueCents int    `json:"value_cents"`
}

// Convert cria um deal em estágio "new" a partir do lead e marca o lead
// como CONVERTED.
func (h *LeadHandler) Convert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	leadID := chi.URLParam(r, "leadId")

	lead, err := h.leadRepo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			http.Error(w, "Lead não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch lead", http.StatusInternalServerError)
		return
	}

	var req ConvertLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		req.Title = "Oportunidade " + firstNonEmpty(lead.Company, lead.Name, lead.Email)
	}

	contactName := firstNonEmpty(lead.Name, lead.Email)
	deal, err := entity.NewDeal(lead.ID, req.Title, contactName, lead.Email, lead.Phone, req.ValueCents)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.dealRepo.Create(ctx, deal); err != nil {
		http.Error(w, "Failed to create deal", http.StatusInternalServerError)
		return
	}

	if err := h.leadRepo.UpdateStatus(ctx, lead.ID, "CONVERTED"); err != nil {
		// Deal criado, status do lead ficou para trás: loga e segue,
		// o front enxerga o deal de qualquer forma.
		http.Error(w, "Deal criado mas lead não atualizado", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, deal)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
