package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shop-sweeps/internal/core/domain"
	"shop-sweeps/internal/core/port"
)

// IngestPurchase fans one verified order event out to every active promo
// of the store. Promos whose window has not opened or already closed are
// skipped silently; the caller gets one result per promo that was
// actually considered.
func (u *SweepsUseCase) IngestPurchase(ctx context.Context, storeID string, ev domain.PurchaseEvent) ([]port.AccrualResult, error) {
	if storeID == "" {
		return nil, port.Validationf("store id is required")
	}
	if ev.OrderID == 0 {
		return nil, port.Validationf("purchase event has no order id")
	}
	if ev.TotalPrice.IsNegative() {
		return nil, port.Validationf("purchase total must not be negative")
	}

	promos, err := u.promos.ListActiveByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("list active promos: %w", err)
	}
	results := make([]port.AccrualResult, 0, len(promos))
	for i := range promos {
		res, err := u.AccruePurchase(ctx, port.PurchaseAccrual{PromoID: promos[i].ID, Event: ev})
		if errors.Is(err, port.ErrPromoNotActive) {
			continue
		}
		if err != nil {
			return results, err
		}
		results = append(results, *res)
	}
	return results, nil
}

// AccruePurchase converts one purchase into entries for one promo.
//
// The rules, in order: a redelivered (promo, order) pair is an idempotent
// zero-added success; the raw entitlement is floor(total * entries per
// dollar); the entitlement is clamped so the customer's running total
// never exceeds the promo's cap; a zero outcome writes no ledger row at
// all. The final clamp and the duplicate guarantee both live in the
// storage layer, so concurrent webhook deliveries cannot overrun the cap
// or double-record an order.
func (u *SweepsUseCase) AccruePurchase(ctx context.Context, req port.PurchaseAccrual) (*port.AccrualResult, error) {
	promo, err := u.promos.Get(ctx, req.PromoID)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, port.ErrPromoNotFound
	}
	now := time.Now().UTC()
	if !promo.AcceptsEntriesAt(now) {
		return nil, port.ErrPromoNotActive
	}

	ev := req.Event
	if ev.OrderID == 0 {
		return nil, port.Validationf("purchase event has no order id")
	}
	if ev.TotalPrice.IsNegative() {
		return nil, port.Validationf("purchase total must not be negative")
	}
	orderID := strconv.FormatInt(ev.OrderID, 10)
	identity := ResolveIdentity(&ev)

	// Fast-path replay check. The partial unique index on
	// (promo_id, order_id) is the actual guarantee; this only spares the
	// common redelivery case a write attempt.
	exists, err := u.entries.OrderExists(ctx, req.PromoID, orderID)
	if err != nil {
		return nil, err
	}
	if exists {
		total, err := u.entries.SumEntryCount(ctx, req.PromoID, identity)
		if err != nil {
			return nil, err
		}
		return &port.AccrualResult{PromoID: req.PromoID, Total: total, Duplicate: true}, nil
	}

	existing, err := u.entries.SumEntryCount(ctx, req.PromoID, identity)
	if err != nil {
		return nil, err
	}
	limit := promo.MaxEntriesPerEmail
	if existing >= limit {
		// Already at cap: the purchase still succeeds, just with zero new
		// entries. No row is written because entry_count must be >= 1.
		return &port.AccrualResult{PromoID: req.PromoID, Total: existing, Capped: true}, nil
	}

	wanted := int(ev.TotalPrice.Mul(decimal.NewFromInt(int64(promo.EntriesPerDollar))).IntPart())
	if wanted <= 0 {
		return &port.AccrualResult{PromoID: req.PromoID, Total: existing}, nil
	}
	toAdd := wanted
	if existing+toAdd > limit {
		toAdd = limit - existing
	}

	total := ev.TotalPrice
	e := &domain.Entry{
		ID:            uuid.New(),
		PromoID:       req.PromoID,
		StoreID:       promo.StoreID,
		CustomerEmail: identity,
		EmailHash:     domain.HashEmail(identity),
		CustomerName:  ev.CustomerName(),
		EntryCount:    toAdd,
		Source:        domain.SourcePurchase,
		OrderID:       &orderID,
		OrderTotal:    &total,
		Meta: domain.EntryMeta{
			Currency:   ev.Currency,
			Capped:     toAdd < wanted,
			LineItems:  ev.LineItems,
			OccurredAt: ev.CreatedAt,
		},
		CreatedAt: now,
	}
	added, err := u.entries.InsertClamped(ctx, e, limit)
	if errors.Is(err, port.ErrDuplicateOrder) {
		// Lost the race against a concurrent delivery of the same order.
		return &port.AccrualResult{PromoID: req.PromoID, Total: existing, Duplicate: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("append entry: %w", err)
	}
	if added > 0 {
		u.notifier.EntryConfirmed(ctx, promo, e)
	}
	return &port.AccrualResult{
		PromoID:      req.PromoID,
		EntriesAdded: added,
		Total:        existing + added,
		Capped:       added < wanted,
	}, nil
}

// AccrueManual records exactly one entry for a direct signup. Manual
// entries are all-or-nothing: a customer at the email cap or an IP at the
// IP cap is refused with a CapReachedError, never clamped.
func (u *SweepsUseCase) AccrueManual(ctx context.Context, req port.ManualAccrual) (*port.AccrualResult, error) {
	promo, err := u.promos.Get(ctx, req.PromoID)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, port.ErrPromoNotFound
	}
	now := time.Now().UTC()
	if !promo.AcceptsEntriesAt(now) {
		return nil, port.ErrPromoNotActive
	}

	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, port.Validationf("invalid email address %q", req.Email)
	}
	source := req.Source
	switch source {
	case "":
		source = domain.SourceDirect
	case domain.SourceDirect, domain.SourceAdminManual:
	default:
		return nil, port.Validationf("invalid manual entry source %q", source)
	}

	existing, err := u.entries.SumEntryCount(ctx, req.PromoID, email)
	if err != nil {
		return nil, err
	}
	if existing >= promo.MaxEntriesPerEmail {
		return nil, &port.CapReachedError{Scope: "email", Current: existing, Max: promo.MaxEntriesPerEmail}
	}
	if req.IP != "" {
		fromIP, err := u.entries.CountByIP(ctx, req.PromoID, req.IP)
		if err != nil {
			return nil, err
		}
		if fromIP >= promo.MaxEntriesPerIP {
			return nil, &port.CapReachedError{Scope: "ip", Current: fromIP, Max: promo.MaxEntriesPerIP}
		}
	}

	e := &domain.Entry{
		ID:            uuid.New(),
		PromoID:       req.PromoID,
		StoreID:       promo.StoreID,
		CustomerEmail: email,
		EmailHash:     domain.HashEmail(email),
		CustomerName:  req.Name,
		EntryCount:    1,
		Source:        source,
		Meta: domain.EntryMeta{
			IP:        req.IP,
			UserAgent: req.UserAgent,
			Consent:   req.Consent,
		},
		CreatedAt: now,
	}
	if err = u.entries.Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("append entry: %w", err)
	}
	u.notifier.EntryConfirmed(ctx, promo, e)
	return &port.AccrualResult{PromoID: req.PromoID, EntriesAdded: 1, Total: existing + 1}, nil
}
