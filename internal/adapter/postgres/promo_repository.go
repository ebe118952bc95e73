package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-sweeps/internal/core/domain"
)

// PromoRepository implements port.PromoRepository using pgxpool.
type PromoRepository struct {
	pool *pgxpool.Pool
}

// NewPromoRepository returns a new repository instance.
func NewPromoRepository(pool *pgxpool.Pool) *PromoRepository {
	return &PromoRepository{pool: pool}
}

const promoColumns = `id, store_id, name, status, starts_at, ends_at, prize_name, prize_amount,
	entries_per_dollar, max_entries_per_email, max_entries_per_ip, created_at, updated_at`

// Create stores a new promo.
func (r *PromoRepository) Create(ctx context.Context, p *domain.Promo) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO promos
(id, store_id, name, status, starts_at, ends_at, prize_name, prize_amount,
 entries_per_dollar, max_entries_per_email, max_entries_per_ip, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		p.ID, p.StoreID, p.Name, p.Status, p.StartsAt, p.EndsAt, p.PrizeName, p.PrizeAmount,
		p.EntriesPerDollar, p.MaxEntriesPerEmail, p.MaxEntriesPerIP, p.CreatedAt, p.UpdatedAt)
	return err
}

// Get returns a promo by id, or nil when it does not exist.
func (r *PromoRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Promo, error) {
	var p domain.Promo
	err := r.pool.QueryRow(ctx, `SELECT `+promoColumns+` FROM promos WHERE id = $1`, id).
		Scan(&p.ID, &p.StoreID, &p.Name, &p.Status, &p.StartsAt, &p.EndsAt, &p.PrizeName, &p.PrizeAmount,
			&p.EntriesPerDollar, &p.MaxEntriesPerEmail, &p.MaxEntriesPerIP, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListActiveByStore returns the store's active promos, oldest first.
func (r *PromoRepository) ListActiveByStore(ctx context.Context, storeID string) ([]domain.Promo, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+promoColumns+`
FROM promos WHERE store_id = $1 AND status = 'active' ORDER BY created_at, id`, storeID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Promo, error) {
		var p domain.Promo
		err := row.Scan(&p.ID, &p.StoreID, &p.Name, &p.Status, &p.StartsAt, &p.EndsAt, &p.PrizeName, &p.PrizeAmount,
			&p.EntriesPerDollar, &p.MaxEntriesPerEmail, &p.MaxEntriesPerIP, &p.CreatedAt, &p.UpdatedAt)
		return p, err
	})
}

// UpdateStatus sets the promo status. Transition legality is checked by
// the caller against the domain status machine.
func (r *PromoRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PromoStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE promos SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	return err
}
