package httpadapter

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"shop-sweeps/internal/config/configs"
	"shop-sweeps/internal/core/domain"
	"shop-sweeps/internal/core/port"
	"shop-sweeps/internal/shopify"
)

// stubService overrides only the operations a test needs; everything else
// panics through the embedded nil interface.
type stubService struct {
	port.SweepsUseCase
	ingest func(ctx context.Context, storeID string, ev domain.PurchaseEvent) ([]port.AccrualResult, error)
}

func (s *stubService) IngestPurchase(ctx context.Context, storeID string, ev domain.PurchaseEvent) ([]port.AccrualResult, error) {
	return s.ingest(ctx, storeID, ev)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestOrderWebhookRejectsBadSignature(t *testing.T) {
	svc := &stubService{ingest: func(context.Context, string, domain.PurchaseEvent) ([]port.AccrualResult, error) {
		t.Fatal("accrual engine must not be reached on signature failure")
		return nil, nil
	}}
	h := NewHandler(svc, configs.Shopify{WebhookSecret: "secret"}, discardLogger())

	body := []byte(`{"id":98765,"total_price":"3.00"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/orders", bytes.NewReader(body))
	req.Header.Set(shopify.HeaderShopDomain, "store.example")
	req.Header.Set(shopify.HeaderHmac, "bogus")
	rec := httptest.NewRecorder()

	h.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrderWebhookAcceptsSignedDelivery(t *testing.T) {
	var gotStore string
	var gotOrder int64
	svc := &stubService{ingest: func(_ context.Context, storeID string, ev domain.PurchaseEvent) ([]port.AccrualResult, error) {
		gotStore = storeID
		gotOrder = ev.OrderID
		return []port.AccrualResult{{EntriesAdded: 3, Total: 3}}, nil
	}}
	h := NewHandler(svc, configs.Shopify{WebhookSecret: "secret"}, discardLogger())

	body := []byte(`{"id":98765,"email":"amy@example.com","total_price":"3.00","currency":"USD"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/orders", bytes.NewReader(body))
	req.Header.Set(shopify.HeaderShopDomain, "store.example")
	req.Header.Set(shopify.HeaderHmac, shopify.Sign("secret", body))
	rec := httptest.NewRecorder()

	h.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "store.example", gotStore)
	require.Equal(t, int64(98765), gotOrder)
}

func TestOrderWebhookSkipVerifyBypass(t *testing.T) {
	svc := &stubService{ingest: func(context.Context, string, domain.PurchaseEvent) ([]port.AccrualResult, error) {
		return nil, nil
	}}
	h := NewHandler(svc, configs.Shopify{SkipVerify: true}, discardLogger())

	body := []byte(`{"id":1,"total_price":"1.00"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/orders", bytes.NewReader(body))
	req.Header.Set(shopify.HeaderShopDomain, "store.example")
	rec := httptest.NewRecorder()

	h.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderWebhookRequiresShopDomain(t *testing.T) {
	svc := &stubService{ingest: func(context.Context, string, domain.PurchaseEvent) ([]port.AccrualResult, error) {
		return nil, nil
	}}
	h := NewHandler(svc, configs.Shopify{SkipVerify: true}, discardLogger())

	body := []byte(`{"id":1,"total_price":"1.00"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/orders", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
