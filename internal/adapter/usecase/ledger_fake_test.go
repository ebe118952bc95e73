package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"shop-sweeps/internal/core/domain"
	"shop-sweeps/internal/core/port"
)

// fakeLedger is an in-memory port.EntryRepository that mirrors the
// semantics the postgres implementation gets from its constraints: the
// (promo, order) uniqueness and the clamped insert. It lets tests run
// sequences of accruals against a single accumulating ledger.
type fakeLedger struct {
	mu      sync.Mutex
	entries []domain.Entry
}

func (f *fakeLedger) Insert(_ context.Context, e *domain.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.OrderID != nil && f.orderExistsLocked(e.PromoID, *e.OrderID) {
		return port.ErrDuplicateOrder
	}
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeLedger) InsertClamped(_ context.Context, e *domain.Entry, maxTotal int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.OrderID != nil && f.orderExistsLocked(e.PromoID, *e.OrderID) {
		return 0, port.ErrDuplicateOrder
	}
	existing := f.sumLocked(e.PromoID, e.CustomerEmail)
	toAdd := e.EntryCount
	if existing+toAdd > maxTotal {
		toAdd = maxTotal - existing
	}
	if toAdd <= 0 {
		return 0, nil
	}
	e.EntryCount = toAdd
	f.entries = append(f.entries, *e)
	return toAdd, nil
}

func (f *fakeLedger) SumEntryCount(_ context.Context, promoID uuid.UUID, email string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sumLocked(promoID, email), nil
}

func (f *fakeLedger) CountByIP(_ context.Context, promoID uuid.UUID, ip string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for i := range f.entries {
		if f.entries[i].PromoID == promoID && f.entries[i].Meta.IP == ip {
			n++
		}
	}
	return n, nil
}

func (f *fakeLedger) OrderExists(_ context.Context, promoID uuid.UUID, orderID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderExistsLocked(promoID, orderID), nil
}

func (f *fakeLedger) ListByPromo(_ context.Context, promoID uuid.UUID) ([]domain.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Entry
	for i := range f.entries {
		if f.entries[i].PromoID == promoID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *fakeLedger) sumLocked(promoID uuid.UUID, email string) int {
	total := 0
	for i := range f.entries {
		if f.entries[i].PromoID == promoID && f.entries[i].CustomerEmail == email {
			total += f.entries[i].EntryCount
		}
	}
	return total
}

func (f *fakeLedger) orderExistsLocked(promoID uuid.UUID, orderID string) bool {
	for i := range f.entries {
		if f.entries[i].PromoID == promoID && f.entries[i].OrderID != nil && *f.entries[i].OrderID == orderID {
			return true
		}
	}
	return false
}

// nopNotifier discards notifications; accrual and draw success must not
// depend on them anyway.
type nopNotifier struct{}

func (nopNotifier) EntryConfirmed(context.Context, *domain.Promo, *domain.Entry)  {}
func (nopNotifier) WinnerSelected(context.Context, *domain.Promo, *domain.Winner) {}
func (nopNotifier) AdminAlert(context.Context, *domain.Promo, *domain.Winner)     {}
