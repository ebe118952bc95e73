package httpadapter

import (
	"io"
	"log/slog"
	"net/http"

	"shop-sweeps/internal/shopify"
)

// handleOrderWebhook ingests an order-created webhook. The HMAC signature
// over the raw body is verified before anything touches the ledger;
// unsigned or tampered deliveries get 401. Verified deliveries always get
// 200 — including duplicates and zero-entry outcomes — so the provider
// stops retrying.
func (h *Handler) handleOrderWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "cannot read body", http.StatusBadRequest)
		return
	}

	if h.shopify.SkipVerify {
		// Explicit non-production bypass, off by default.
		h.logger.Warn("webhook signature verification skipped")
	} else if !shopify.VerifySignature(h.shopify.WebhookSecret, body, r.Header.Get(shopify.HeaderHmac)) {
		h.logger.Warn("webhook signature mismatch",
			slog.String("shop", r.Header.Get(shopify.HeaderShopDomain)))
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	storeID := r.Header.Get(shopify.HeaderShopDomain)
	if storeID == "" {
		http.Error(w, "missing shop domain header", http.StatusBadRequest)
		return
	}
	ev, err := shopify.DecodeOrder(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	results, err := h.svc.IngestPurchase(r.Context(), storeID, *ev)
	if err != nil {
		h.writeError(w, err)
		return
	}
	for _, res := range results {
		h.logger.Info("purchase accrued",
			slog.String("store", storeID),
			slog.String("promo", res.PromoID.String()),
			slog.Int64("order", ev.OrderID),
			slog.Int("entries_added", res.EntriesAdded),
			slog.Bool("capped", res.Capped),
			slog.Bool("duplicate", res.Duplicate))
	}
	h.respond(w, http.StatusOK, map[string]any{"results": results})
}
