package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shop-sweeps/internal/core/domain"
	"shop-sweeps/internal/core/port"
)

type createPromoRequest struct {
	StoreID            string          `json:"store_id"`
	Name               string          `json:"name"`
	StartsAt           *time.Time      `json:"starts_at"`
	EndsAt             *time.Time      `json:"ends_at"`
	PrizeName          string          `json:"prize_name"`
	PrizeAmount        decimal.Decimal `json:"prize_amount"`
	EntriesPerDollar   int             `json:"entries_per_dollar"`
	MaxEntriesPerEmail int             `json:"max_entries_per_email"`
	MaxEntriesPerIP    int             `json:"max_entries_per_ip"`
}

type promoResponse struct {
	ID                 uuid.UUID       `json:"id"`
	StoreID            string          `json:"store_id"`
	Name               string          `json:"name"`
	Status             string          `json:"status"`
	StartsAt           *time.Time      `json:"starts_at,omitempty"`
	EndsAt             *time.Time      `json:"ends_at,omitempty"`
	PrizeName          string          `json:"prize_name"`
	PrizeAmount        decimal.Decimal `json:"prize_amount"`
	EntriesPerDollar   int             `json:"entries_per_dollar"`
	MaxEntriesPerEmail int             `json:"max_entries_per_email"`
	MaxEntriesPerIP    int             `json:"max_entries_per_ip"`
	CreatedAt          time.Time       `json:"created_at"`
}

func toPromoResponse(p *domain.Promo) promoResponse {
	return promoResponse{
		ID:                 p.ID,
		StoreID:            p.StoreID,
		Name:               p.Name,
		Status:             string(p.Status),
		StartsAt:           p.StartsAt,
		EndsAt:             p.EndsAt,
		PrizeName:          p.PrizeName,
		PrizeAmount:        p.PrizeAmount,
		EntriesPerDollar:   p.EntriesPerDollar,
		MaxEntriesPerEmail: p.MaxEntriesPerEmail,
		MaxEntriesPerIP:    p.MaxEntriesPerIP,
		CreatedAt:          p.CreatedAt,
	}
}

// promoID binds the {promoID} path parameter. On parse failure it writes
// a 400 and returns false.
func (h *Handler) promoID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "promoID"))
	if err != nil {
		http.Error(w, "invalid promo id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) handleCreatePromo(w http.ResponseWriter, r *http.Request) {
	var req createPromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	p, err := h.svc.CreatePromo(r.Context(), port.CreatePromo{
		StoreID:            req.StoreID,
		Name:               req.Name,
		StartsAt:           req.StartsAt,
		EndsAt:             req.EndsAt,
		PrizeName:          req.PrizeName,
		PrizeAmount:        req.PrizeAmount,
		EntriesPerDollar:   req.EntriesPerDollar,
		MaxEntriesPerEmail: req.MaxEntriesPerEmail,
		MaxEntriesPerIP:    req.MaxEntriesPerIP,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, toPromoResponse(p))
}

func (h *Handler) handleGetPromo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.promoID(w, r)
	if !ok {
		return
	}
	p, err := h.svc.GetPromo(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respond(w, http.StatusOK, toPromoResponse(p))
}

func (h *Handler) handleSetPromoStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.promoID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	p, err := h.svc.SetPromoStatus(r.Context(), id, domain.PromoStatus(req.Status))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respond(w, http.StatusOK, toPromoResponse(p))
}
