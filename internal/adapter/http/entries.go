package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shop-sweeps/internal/core/domain"
	"shop-sweeps/internal/core/port"
)

type manualEntryRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Consent bool   `json:"consent"`

	// Admin marks an operator-recorded entry instead of a self signup.
	Admin bool `json:"admin"`
}

type entryResponse struct {
	ID            uuid.UUID        `json:"id"`
	CustomerEmail string           `json:"customer_email"`
	EmailHash     string           `json:"email_hash"`
	CustomerName  string           `json:"customer_name,omitempty"`
	EntryCount    int              `json:"entry_count"`
	Source        string           `json:"source"`
	OrderID       *string          `json:"order_id,omitempty"`
	OrderTotal    *decimal.Decimal `json:"order_total,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// handleManualEntry records a direct signup: always exactly one entry, or
// a refusal when the email or IP cap is reached.
func (h *Handler) handleManualEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := h.promoID(w, r)
	if !ok {
		return
	}
	var req manualEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	source := domain.SourceDirect
	if req.Admin {
		source = domain.SourceAdminManual
	}
	res, err := h.svc.AccrueManual(r.Context(), port.ManualAccrual{
		PromoID:   id,
		Email:     req.Email,
		Name:      req.Name,
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
		Consent:   req.Consent,
		Source:    source,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logger.Info("manual entry recorded",
		slog.String("promo", id.String()), slog.Int("entries_added", res.EntriesAdded))
	h.respond(w, http.StatusCreated, res)
}

// handleListEntries returns the promo's ledger in stable order.
func (h *Handler) handleListEntries(w http.ResponseWriter, r *http.Request) {
	id, ok := h.promoID(w, r)
	if !ok {
		return
	}
	entries, err := h.svc.ListEntries(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]entryResponse, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		out = append(out, entryResponse{
			ID:            e.ID,
			CustomerEmail: e.CustomerEmail,
			EmailHash:     e.EmailHash,
			CustomerName:  e.CustomerName,
			EntryCount:    e.EntryCount,
			Source:        string(e.Source),
			OrderID:       e.OrderID,
			OrderTotal:    e.OrderTotal,
			CreatedAt:     e.CreatedAt,
		})
	}
	h.respond(w, http.StatusOK, map[string]any{"entries": out})
}

// clientIP extracts the requester address, preferring the first
// X-Forwarded-For hop when present.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.Index(xff, ","); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
