package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shop-sweeps/internal/config/configs"
	"shop-sweeps/internal/core/port"
)

// Handler is the inbound HTTP adapter. It holds the sweepstakes usecase,
// a structured logger and the webhook verification settings, and
// registers all routes on a chi.Router.
type Handler struct {
	svc     port.SweepsUseCase
	logger  *slog.Logger
	shopify configs.Shopify
	router  chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.SweepsUseCase, shopify configs.Shopify, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger, shopify: shopify}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/webhooks/orders", h.handleOrderWebhook)

		r.Route("/promos", func(r chi.Router) {
			r.Post("/", h.handleCreatePromo)
			r.Route("/{promoID}", func(r chi.Router) {
				r.Get("/", h.handleGetPromo)
				r.Post("/status", h.handleSetPromoStatus)
				r.Get("/entries", h.handleListEntries)
				r.Post("/entries", h.handleManualEntry)
				r.Post("/draw", h.handleDraw)
				r.Get("/winner", h.handleGetWinner)
				r.Post("/winner/notified", h.handleWinnerNotified)
				r.Post("/winner/claimed", h.handleWinnerClaimed)
			})
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

type errorResponse struct {
	Error   string `json:"error"`
	Current *int   `json:"current,omitempty"`
	Max     *int   `json:"max,omitempty"`
}

// writeError maps domain rejections onto HTTP statuses. Storage and other
// unexpected failures are logged and reported as a generic 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		vErr   *port.ValidationError
		capErr *port.CapReachedError
	)
	switch {
	case errors.As(err, &vErr):
		h.respond(w, http.StatusBadRequest, errorResponse{Error: vErr.Msg})
	case errors.As(err, &capErr):
		h.respond(w, http.StatusConflict, errorResponse{
			Error: capErr.Error(), Current: &capErr.Current, Max: &capErr.Max,
		})
	case errors.Is(err, port.ErrPromoNotFound), errors.Is(err, port.ErrWinnerNotFound):
		h.respond(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, port.ErrPromoNotActive),
		errors.Is(err, port.ErrWinnerExists),
		errors.Is(err, port.ErrNoEntries),
		errors.Is(err, port.ErrInvalidStatusTransition):
		h.respond(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("request failed", slog.Any("error", err))
		h.respond(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (h *Handler) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
