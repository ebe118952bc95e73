package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shop-sweeps/internal/core/domain"
)

// SweepsUseCase defines the business operations of the sweepstakes core.
// This is the primary inbound port; the HTTP adapter speaks only to this
// interface.
type SweepsUseCase interface {
	// IngestPurchase fans a verified order webhook out to every active
	// promo of the store, accruing entries against each. It returns one
	// result per promo touched. Redelivered orders are reported as
	// zero-added duplicates, never as errors.
	IngestPurchase(ctx context.Context, storeID string, ev domain.PurchaseEvent) ([]AccrualResult, error)

	// AccruePurchase accrues entries for one purchase against one promo,
	// clamping against the promo's per-customer cap. A duplicate
	// (promo, order) pair and a customer already at the cap are both
	// legitimate zero-added successes.
	AccruePurchase(ctx context.Context, req PurchaseAccrual) (*AccrualResult, error)

	// AccrueManual records exactly one entry for a direct signup. Unlike
	// purchases it never clamps: a customer at the email cap, or an IP at
	// the IP cap, is refused with a CapReachedError.
	AccrueManual(ctx context.Context, req ManualAccrual) (*AccrualResult, error)

	// SelectWinner performs the single weighted random draw for the promo
	// and transitions it to "ended". Probability is proportional to each
	// entry's count; the random source is cryptographically secure.
	SelectWinner(ctx context.Context, promoID uuid.UUID, operator string) (*domain.Winner, error)

	CreatePromo(ctx context.Context, req CreatePromo) (*domain.Promo, error)
	GetPromo(ctx context.Context, id uuid.UUID) (*domain.Promo, error)
	SetPromoStatus(ctx context.Context, id uuid.UUID, status domain.PromoStatus) (*domain.Promo, error)
	ListEntries(ctx context.Context, promoID uuid.UUID) ([]domain.Entry, error)

	GetWinner(ctx context.Context, promoID uuid.UUID) (*domain.Winner, error)
	MarkWinnerNotified(ctx context.Context, promoID uuid.UUID) error
	MarkWinnerClaimed(ctx context.Context, promoID uuid.UUID) error
}

// PurchaseAccrual targets one promo with one normalized purchase event.
type PurchaseAccrual struct {
	PromoID uuid.UUID
	Event   domain.PurchaseEvent
}

// ManualAccrual is a direct or operator-recorded signup.
type ManualAccrual struct {
	PromoID   uuid.UUID
	Email     string
	Name      string
	IP        string
	UserAgent string
	Consent   bool
	Source    domain.EntrySource // direct or admin_manual; defaults to direct
}

// AccrualResult reports the outcome of one accrual. EntriesAdded may be 0
// on a legitimate success: a duplicate order, a sub-dollar purchase, or a
// customer already at the cap.
type AccrualResult struct {
	PromoID      uuid.UUID `json:"promo_id"`
	EntriesAdded int       `json:"entries_added"`
	Total        int       `json:"total"` // customer's total after this accrual
	Capped       bool      `json:"capped"`
	Duplicate    bool      `json:"duplicate"`
}

// CreatePromo carries the attributes for a new promo. Zero caps fall back
// to defaults (1 entry per email, 3 per IP) and EntriesPerDollar defaults
// to 1.
type CreatePromo struct {
	StoreID            string
	Name               string
	StartsAt           *time.Time
	EndsAt             *time.Time
	PrizeName          string
	PrizeAmount        decimal.Decimal
	EntriesPerDollar   int
	MaxEntriesPerEmail int
	MaxEntriesPerIP    int
}
