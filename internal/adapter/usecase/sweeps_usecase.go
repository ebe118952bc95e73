package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"shop-sweeps/internal/core/domain"
	"shop-sweeps/internal/core/port"
)

// Default caps applied when a store creates a promo without configuring
// its own limits.
const (
	defaultEntriesPerDollar = 1
	defaultEmailCap         = 1
	defaultIPCap            = 3
)

// SweepsUseCase implements the sweepstakes business rules: entry accrual,
// winner selection and the promo lifecycle. It orchestrates the
// repository ports and emits best-effort notifications.
type SweepsUseCase struct {
	promos   port.PromoRepository
	entries  port.EntryRepository
	winners  port.WinnerRepository
	notifier port.Notifier
}

// NewSweepsUseCase creates a usecase wired to the given ports.
func NewSweepsUseCase(promos port.PromoRepository, entries port.EntryRepository, winners port.WinnerRepository, notifier port.Notifier) *SweepsUseCase {
	return &SweepsUseCase{promos: promos, entries: entries, winners: winners, notifier: notifier}
}

// CreatePromo stores a new promo in draft status, filling unset knobs with
// defaults.
func (u *SweepsUseCase) CreatePromo(ctx context.Context, req port.CreatePromo) (*domain.Promo, error) {
	if req.StoreID == "" {
		return nil, port.Validationf("store id is required")
	}
	if req.Name == "" {
		return nil, port.Validationf("promo name is required")
	}
	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		return nil, port.Validationf("promo window ends before it starts")
	}
	if req.EntriesPerDollar < 0 || req.MaxEntriesPerEmail < 0 || req.MaxEntriesPerIP < 0 {
		return nil, port.Validationf("caps and entries_per_dollar must be positive")
	}
	if req.PrizeAmount.IsNegative() {
		return nil, port.Validationf("prize amount must not be negative")
	}

	now := time.Now().UTC()
	p := &domain.Promo{
		ID:                 uuid.New(),
		StoreID:            req.StoreID,
		Name:               req.Name,
		Status:             domain.PromoDraft,
		StartsAt:           req.StartsAt,
		EndsAt:             req.EndsAt,
		PrizeName:          req.PrizeName,
		PrizeAmount:        req.PrizeAmount,
		EntriesPerDollar:   req.EntriesPerDollar,
		MaxEntriesPerEmail: req.MaxEntriesPerEmail,
		MaxEntriesPerIP:    req.MaxEntriesPerIP,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if p.EntriesPerDollar == 0 {
		p.EntriesPerDollar = defaultEntriesPerDollar
	}
	if p.MaxEntriesPerEmail == 0 {
		p.MaxEntriesPerEmail = defaultEmailCap
	}
	if p.MaxEntriesPerIP == 0 {
		p.MaxEntriesPerIP = defaultIPCap
	}
	if err := u.promos.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPromo returns the promo or ErrPromoNotFound.
func (u *SweepsUseCase) GetPromo(ctx context.Context, id uuid.UUID) (*domain.Promo, error) {
	p, err := u.promos.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, port.ErrPromoNotFound
	}
	return p, nil
}

// SetPromoStatus applies an operator-requested lifecycle transition.
// "ended" is terminal; the status machine in domain.PromoStatus decides
// what is legal.
func (u *SweepsUseCase) SetPromoStatus(ctx context.Context, id uuid.UUID, status domain.PromoStatus) (*domain.Promo, error) {
	if !status.Valid() {
		return nil, port.Validationf("unknown promo status %q", status)
	}
	p, err := u.GetPromo(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == status {
		return p, nil
	}
	if !p.Status.CanTransitionTo(status) {
		return nil, port.ErrInvalidStatusTransition
	}
	if err = u.promos.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	p.Status = status
	return p, nil
}

// ListEntries returns the promo's full ledger in stable order.
func (u *SweepsUseCase) ListEntries(ctx context.Context, promoID uuid.UUID) ([]domain.Entry, error) {
	if _, err := u.GetPromo(ctx, promoID); err != nil {
		return nil, err
	}
	return u.entries.ListByPromo(ctx, promoID)
}

// GetWinner returns the promo's winner or ErrWinnerNotFound.
func (u *SweepsUseCase) GetWinner(ctx context.Context, promoID uuid.UUID) (*domain.Winner, error) {
	w, err := u.winners.GetByPromo(ctx, promoID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, port.ErrWinnerNotFound
	}
	return w, nil
}

// MarkWinnerNotified records the notification step of the post-draw
// workflow.
func (u *SweepsUseCase) MarkWinnerNotified(ctx context.Context, promoID uuid.UUID) error {
	if _, err := u.GetWinner(ctx, promoID); err != nil {
		return err
	}
	return u.winners.MarkNotified(ctx, promoID)
}

// MarkWinnerClaimed records that the prize was claimed.
func (u *SweepsUseCase) MarkWinnerClaimed(ctx context.Context, promoID uuid.UUID) error {
	if _, err := u.GetWinner(ctx, promoID); err != nil {
		return err
	}
	return u.winners.MarkClaimed(ctx, promoID)
}
