package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-sweeps/internal/core/domain"
	"shop-sweeps/internal/core/port"
)

// WinnerRepository implements port.WinnerRepository using pgxpool. The
// unique constraint on winners.promo_id is the authoritative at-most-once
// draw guard.
type WinnerRepository struct {
	pool *pgxpool.Pool
}

// NewWinnerRepository returns a new repository instance.
func NewWinnerRepository(pool *pgxpool.Pool) *WinnerRepository {
	return &WinnerRepository{pool: pool}
}

// CreateAndEndPromo inserts the winner row and flips its promo to the
// terminal "ended" status in one transaction, so the draw result and the
// lifecycle change commit together. A concurrent draw loses on the
// promo_id constraint and gets ErrWinnerExists.
func (r *WinnerRepository) CreateAndEndPromo(ctx context.Context, w *domain.Winner) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
		if isUniqueViolation(err) {
			err = port.ErrWinnerExists
		}
	}()

	_, err = tx.Exec(ctx, `INSERT INTO winners
(id, promo_id, store_id, entry_id, customer_email, customer_name, prize_name, prize_amount,
 drawn_at, notified, claimed, created_by)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,FALSE,FALSE,$10)`,
		w.ID, w.PromoID, w.StoreID, w.EntryID, w.CustomerEmail, w.CustomerName,
		w.PrizeName, w.PrizeAmount, w.DrawnAt, w.CreatedBy)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx,
		`UPDATE promos SET status = 'ended', updated_at = now() WHERE id = $1`, w.PromoID)
	return err
}

// GetByPromo returns the promo's winner, or nil when none exists.
func (r *WinnerRepository) GetByPromo(ctx context.Context, promoID uuid.UUID) (*domain.Winner, error) {
	var w domain.Winner
	err := r.pool.QueryRow(ctx, `SELECT id, promo_id, store_id, entry_id, customer_email,
	customer_name, prize_name, prize_amount, drawn_at, notified, notified_at, claimed, claimed_at, created_by
FROM winners WHERE promo_id = $1`, promoID).
		Scan(&w.ID, &w.PromoID, &w.StoreID, &w.EntryID, &w.CustomerEmail,
			&w.CustomerName, &w.PrizeName, &w.PrizeAmount, &w.DrawnAt,
			&w.Notified, &w.NotifiedAt, &w.Claimed, &w.ClaimedAt, &w.CreatedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// MarkNotified records the winner-notified step.
func (r *WinnerRepository) MarkNotified(ctx context.Context, promoID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE winners SET notified = TRUE, notified_at = now() WHERE promo_id = $1`, promoID)
	return err
}

// MarkClaimed records the prize-claimed step.
func (r *WinnerRepository) MarkClaimed(ctx context.Context, promoID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE winners SET claimed = TRUE, claimed_at = now() WHERE promo_id = $1`, promoID)
	return err
}
