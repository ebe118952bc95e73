package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"shop-sweeps/internal/core/domain"
	"shop-sweeps/internal/core/port"
)

// SelectWinner performs the single weighted draw for a promo and moves it
// to the terminal "ended" status.
//
// The draw treats the ledger as an implicit population in which every
// entry is repeated entry_count times, without materializing it: a
// cryptographically random integer in [0, total weight) is picked and the
// entries are walked in stable order accumulating weight until the sum
// passes it. crypto/rand.Int uses rejection sampling, so the pick is
// unbiased for any weight total. The winner insert and the promo status
// flip commit as one transaction, with the unique constraint on
// winners.promo_id as the final guard against a concurrent draw.
func (u *SweepsUseCase) SelectWinner(ctx context.Context, promoID uuid.UUID, operator string) (*domain.Winner, error) {
	promo, err := u.promos.Get(ctx, promoID)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, port.ErrPromoNotFound
	}
	if promo.Status != domain.PromoActive {
		return nil, port.ErrPromoNotActive
	}
	existing, err := u.winners.GetByPromo(ctx, promoID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, port.ErrWinnerExists
	}

	entries, err := u.entries.ListByPromo(ctx, promoID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, port.ErrNoEntries
	}

	chosen, err := drawWeighted(entries)
	if err != nil {
		return nil, err
	}

	w := &domain.Winner{
		ID:            uuid.New(),
		PromoID:       promoID,
		StoreID:       promo.StoreID,
		EntryID:       chosen.ID,
		CustomerEmail: chosen.CustomerEmail,
		CustomerName:  chosen.CustomerName,
		PrizeName:     promo.PrizeName,
		PrizeAmount:   promo.PrizeAmount,
		DrawnAt:       time.Now().UTC(),
		CreatedBy:     operator,
	}
	if err = u.winners.CreateAndEndPromo(ctx, w); err != nil {
		if errors.Is(err, port.ErrWinnerExists) {
			return nil, port.ErrWinnerExists
		}
		return nil, fmt.Errorf("record winner: %w", err)
	}

	u.notifier.WinnerSelected(ctx, promo, w)
	u.notifier.AdminAlert(ctx, promo, w)
	return w, nil
}

// drawWeighted picks one entry with probability proportional to its
// entry count.
func drawWeighted(entries []domain.Entry) (*domain.Entry, error) {
	var total int64
	for i := range entries {
		total += int64(entries[i].EntryCount)
	}
	if total <= 0 {
		return nil, port.ErrNoEntries
	}
	r, err := rand.Int(rand.Reader, big.NewInt(total))
	if err != nil {
		return nil, fmt.Errorf("random draw: %w", err)
	}
	pick := r.Int64()
	var acc int64
	for i := range entries {
		acc += int64(entries[i].EntryCount)
		if pick < acc {
			return &entries[i], nil
		}
	}
	// unreachable: pick < total == acc after the loop
	return &entries[len(entries)-1], nil
}
