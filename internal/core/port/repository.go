package port

import (
	"context"

	"github.com/google/uuid"

	"shop-sweeps/internal/core/domain"
)

// PromoRepository is the outbound persistence port for promos.
// Implementations must be concurrency-safe.
type PromoRepository interface {
	// Create stores a new promo.
	Create(ctx context.Context, p *domain.Promo) error
	// Get returns a promo by id, or nil when it does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.Promo, error)
	// ListActiveByStore returns the store's promos in active status, used
	// to fan an order webhook out to every running giveaway.
	ListActiveByStore(ctx context.Context, storeID string) ([]domain.Promo, error)
	// UpdateStatus sets the promo status. It does not validate the
	// transition; callers check domain.PromoStatus.CanTransitionTo first.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PromoStatus) error
}

// EntryRepository is the outbound port for the entry ledger. Inserts carry
// the idempotency guarantee: a partial unique index on
// (promo_id, order_id) makes redelivered purchase webhooks collide.
type EntryRepository interface {
	// Insert appends one entry. It returns ErrDuplicateOrder when the
	// entry's (promo, order) pair already exists for any customer.
	Insert(ctx context.Context, e *domain.Entry) error
	// InsertClamped appends a purchase entry inside a serializing
	// transaction, re-clamping e.EntryCount so that the customer's total
	// never exceeds maxTotal even under concurrent accruals. It returns
	// the number of entries actually added; 0 means the customer was
	// already at the cap and no row was written.
	InsertClamped(ctx context.Context, e *domain.Entry, maxTotal int) (int, error)
	// SumEntryCount returns the customer's accrued total for the promo,
	// 0 when they have no entries.
	SumEntryCount(ctx context.Context, promoID uuid.UUID, email string) (int, error)
	// CountByIP counts entries whose metadata IP matches ip. Used only by
	// the manual-entry IP cap.
	CountByIP(ctx context.Context, promoID uuid.UUID, ip string) (int, error)
	// OrderExists reports whether the promo already has an entry for the
	// order. A pre-check only; the unique index is the real guarantee.
	OrderExists(ctx context.Context, promoID uuid.UUID, orderID string) (bool, error)
	// ListByPromo returns the promo's full ledger in stable
	// (created_at, id) order. Read-only; feeds the draw.
	ListByPromo(ctx context.Context, promoID uuid.UUID) ([]domain.Entry, error)
}

// WinnerRepository is the outbound port for winner records.
type WinnerRepository interface {
	// CreateAndEndPromo inserts the winner and moves its promo to the
	// terminal "ended" status as one transaction. The unique constraint on
	// winners.promo_id is the authoritative guard against concurrent
	// draws; a collision surfaces as ErrWinnerExists.
	CreateAndEndPromo(ctx context.Context, w *domain.Winner) error
	// GetByPromo returns the promo's winner, or nil when none exists.
	GetByPromo(ctx context.Context, promoID uuid.UUID) (*domain.Winner, error)
	// MarkNotified records that the winner was told they won.
	MarkNotified(ctx context.Context, promoID uuid.UUID) error
	// MarkClaimed records that the prize was claimed.
	MarkClaimed(ctx context.Context, promoID uuid.UUID) error
}
