// Package notify implements the best-effort notification collaborator.
// Events are posted as JSON callbacks to a configured endpoint; delivery
// failures are logged and never surfaced to the accrual or draw caller.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"shop-sweeps/internal/core/domain"
)

// Event names carried in callback payloads.
const (
	EventEntryConfirmed = "entry_confirmed"
	EventWinnerSelected = "winner_selected"
	EventAdminAlert     = "admin_alert"
)

// Payload is the JSON body of an outbound callback.
type Payload struct {
	Event         string    `json:"event"`
	StoreID       string    `json:"store_id"`
	PromoID       string    `json:"promo_id"`
	PromoName     string    `json:"promo_name"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	CustomerName  string    `json:"customer_name,omitempty"`
	EntriesAdded  int       `json:"entries_added,omitempty"`
	PrizeName     string    `json:"prize_name,omitempty"`
	PrizeAmount   string    `json:"prize_amount,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// CallbackNotifier posts events to a webhook URL. Each send runs in its
// own goroutine so callers never block on delivery.
type CallbackNotifier struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewCallbackNotifier builds a notifier posting to url with the given
// per-request timeout.
func NewCallbackNotifier(url string, timeout time.Duration, logger *slog.Logger) *CallbackNotifier {
	return &CallbackNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

func (n *CallbackNotifier) EntryConfirmed(_ context.Context, promo *domain.Promo, entry *domain.Entry) {
	n.send(Payload{
		Event:         EventEntryConfirmed,
		StoreID:       promo.StoreID,
		PromoID:       promo.ID.String(),
		PromoName:     promo.Name,
		CustomerEmail: entry.CustomerEmail,
		CustomerName:  entry.CustomerName,
		EntriesAdded:  entry.EntryCount,
		OccurredAt:    time.Now().UTC(),
	})
}

func (n *CallbackNotifier) WinnerSelected(_ context.Context, promo *domain.Promo, winner *domain.Winner) {
	n.send(Payload{
		Event:         EventWinnerSelected,
		StoreID:       promo.StoreID,
		PromoID:       promo.ID.String(),
		PromoName:     promo.Name,
		CustomerEmail: winner.CustomerEmail,
		CustomerName:  winner.CustomerName,
		PrizeName:     winner.PrizeName,
		PrizeAmount:   winner.PrizeAmount.String(),
		OccurredAt:    winner.DrawnAt,
	})
}

func (n *CallbackNotifier) AdminAlert(_ context.Context, promo *domain.Promo, winner *domain.Winner) {
	n.send(Payload{
		Event:       EventAdminAlert,
		StoreID:     promo.StoreID,
		PromoID:     promo.ID.String(),
		PromoName:   promo.Name,
		PrizeName:   winner.PrizeName,
		PrizeAmount: winner.PrizeAmount.String(),
		OccurredAt:  winner.DrawnAt,
	})
}

func (n *CallbackNotifier) send(p Payload) {
	go func() {
		body, err := json.Marshal(p)
		if err != nil {
			n.logger.Error("marshal notification", slog.Any("error", err))
			return
		}
		req, err := http.NewRequest(http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			n.logger.Error("build notification request", slog.Any("error", err))
			return
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := n.client.Do(req)
		if err != nil {
			n.logger.Warn("notification delivery failed",
				slog.String("event", p.Event), slog.Any("error", err))
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			n.logger.Warn("notification rejected",
				slog.String("event", p.Event), slog.Int("status", resp.StatusCode))
		}
	}()
}

// Nop discards all notifications. Used when no callback URL is
// configured.
type Nop struct{}

func (Nop) EntryConfirmed(context.Context, *domain.Promo, *domain.Entry)  {}
func (Nop) WinnerSelected(context.Context, *domain.Promo, *domain.Winner) {}
func (Nop) AdminAlert(context.Context, *domain.Promo, *domain.Winner)     {}
