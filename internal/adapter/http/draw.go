package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shop-sweeps/internal/core/domain"
)

type winnerResponse struct {
	ID            uuid.UUID       `json:"id"`
	PromoID       uuid.UUID       `json:"promo_id"`
	EntryID       uuid.UUID       `json:"entry_id"`
	CustomerEmail string          `json:"customer_email"`
	CustomerName  string          `json:"customer_name,omitempty"`
	PrizeName     string          `json:"prize_name"`
	PrizeAmount   decimal.Decimal `json:"prize_amount"`
	DrawnAt       time.Time       `json:"drawn_at"`
	Notified      bool            `json:"notified"`
	NotifiedAt    *time.Time      `json:"notified_at,omitempty"`
	Claimed       bool            `json:"claimed"`
	ClaimedAt     *time.Time      `json:"claimed_at,omitempty"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

func toWinnerResponse(w *domain.Winner) winnerResponse {
	return winnerResponse{
		ID:            w.ID,
		PromoID:       w.PromoID,
		EntryID:       w.EntryID,
		CustomerEmail: w.CustomerEmail,
		CustomerName:  w.CustomerName,
		PrizeName:     w.PrizeName,
		PrizeAmount:   w.PrizeAmount,
		DrawnAt:       w.DrawnAt,
		Notified:      w.Notified,
		NotifiedAt:    w.NotifiedAt,
		Claimed:       w.Claimed,
		ClaimedAt:     w.ClaimedAt,
		CreatedBy:     w.CreatedBy,
	}
}

// handleDraw triggers the single weighted draw for a promo. The promo
// transitions to "ended" as part of a successful draw.
func (h *Handler) handleDraw(w http.ResponseWriter, r *http.Request) {
	id, ok := h.promoID(w, r)
	if !ok {
		return
	}
	var req struct {
		Operator string `json:"operator"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
	}
	winner, err := h.svc.SelectWinner(r.Context(), id, req.Operator)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logger.Info("winner drawn",
		slog.String("promo", id.String()),
		slog.String("entry", winner.EntryID.String()),
		slog.String("operator", req.Operator))
	h.respond(w, http.StatusCreated, toWinnerResponse(winner))
}

func (h *Handler) handleGetWinner(w http.ResponseWriter, r *http.Request) {
	id, ok := h.promoID(w, r)
	if !ok {
		return
	}
	winner, err := h.svc.GetWinner(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respond(w, http.StatusOK, toWinnerResponse(winner))
}

func (h *Handler) handleWinnerNotified(w http.ResponseWriter, r *http.Request) {
	id, ok := h.promoID(w, r)
	if !ok {
		return
	}
	if err := h.svc.MarkWinnerNotified(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleWinnerClaimed(w http.ResponseWriter, r *http.Request) {
	id, ok := h.promoID(w, r)
	if !ok {
		return
	}
	if err := h.svc.MarkWinnerClaimed(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
