package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-sweeps/internal/core/domain"
	"shop-sweeps/internal/core/port"
)

// EntryRepository implements port.EntryRepository using pgxpool. The
// partial unique index ux_entries_promo_order backs the webhook
// idempotency guarantee; constraint violations surface as
// port.ErrDuplicateOrder.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository returns a new repository instance.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const insertEntrySQL = `INSERT INTO entries
(id, promo_id, store_id, customer_email, email_hash, customer_name, entry_count,
 source, order_id, order_total, meta, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`

// Insert appends one entry. A collision on (promo_id, order_id) returns
// ErrDuplicateOrder.
func (r *EntryRepository) Insert(ctx context.Context, e *domain.Entry) error {
	meta, err := json.Marshal(e.Meta)
	if err != nil {
		return fmt.Errorf("marshal entry meta: %w", err)
	}
	_, err = r.pool.Exec(ctx, insertEntrySQL,
		e.ID, e.PromoID, e.StoreID, e.CustomerEmail, e.EmailHash, e.CustomerName, e.EntryCount,
		e.Source, e.OrderID, e.OrderTotal, meta, e.CreatedAt)
	if isUniqueViolation(err) {
		return port.ErrDuplicateOrder
	}
	return err
}

// InsertClamped appends a purchase entry inside a serializable
// transaction, re-reading the customer's total so concurrent accruals
// cannot push it past maxTotal. Returns the entry count actually written;
// 0 means the customer was already at the cap and no row was inserted.
func (r *EntryRepository) InsertClamped(ctx context.Context, e *domain.Entry, maxTotal int) (added int, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
		if isUniqueViolation(err) {
			added, err = 0, port.ErrDuplicateOrder
		}
	}()

	var existing int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(entry_count), 0) FROM entries WHERE promo_id = $1 AND customer_email = $2`,
		e.PromoID, e.CustomerEmail).Scan(&existing)
	if err != nil {
		return 0, err
	}
	toAdd := e.EntryCount
	if existing+toAdd > maxTotal {
		toAdd = maxTotal - existing
	}
	if toAdd <= 0 {
		return 0, nil
	}
	e.EntryCount = toAdd
	meta, err := json.Marshal(e.Meta)
	if err != nil {
		return 0, fmt.Errorf("marshal entry meta: %w", err)
	}
	_, err = tx.Exec(ctx, insertEntrySQL,
		e.ID, e.PromoID, e.StoreID, e.CustomerEmail, e.EmailHash, e.CustomerName, e.EntryCount,
		e.Source, e.OrderID, e.OrderTotal, meta, e.CreatedAt)
	if err != nil {
		return 0, err
	}
	return toAdd, nil
}

// SumEntryCount returns the customer's accrued total for the promo.
func (r *EntryRepository) SumEntryCount(ctx context.Context, promoID uuid.UUID, email string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(entry_count), 0) FROM entries WHERE promo_id = $1 AND customer_email = $2`,
		promoID, email).Scan(&total)
	return total, err
}

// CountByIP counts entries whose recorded metadata IP matches ip.
func (r *EntryRepository) CountByIP(ctx context.Context, promoID uuid.UUID, ip string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM entries WHERE promo_id = $1 AND meta->>'ip' = $2`,
		promoID, ip).Scan(&n)
	return n, err
}

// OrderExists reports whether an entry for (promo, order) already exists.
func (r *EntryRepository) OrderExists(ctx context.Context, promoID uuid.UUID, orderID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM entries WHERE promo_id = $1 AND order_id = $2)`,
		promoID, orderID).Scan(&exists)
	return exists, err
}

// ListByPromo returns the promo's full ledger in stable order.
func (r *EntryRepository) ListByPromo(ctx context.Context, promoID uuid.UUID) ([]domain.Entry, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, promo_id, store_id, customer_email, email_hash,
	customer_name, entry_count, source, order_id, order_total, meta, created_at
FROM entries WHERE promo_id = $1 ORDER BY created_at, id`, promoID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Entry, error) {
		var (
			e   domain.Entry
			raw []byte
		)
		err := row.Scan(&e.ID, &e.PromoID, &e.StoreID, &e.CustomerEmail, &e.EmailHash,
			&e.CustomerName, &e.EntryCount, &e.Source, &e.OrderID, &e.OrderTotal, &raw, &e.CreatedAt)
		if err != nil {
			return e, err
		}
		if len(raw) > 0 {
			if err = json.Unmarshal(raw, &e.Meta); err != nil {
				return e, fmt.Errorf("decode entry meta: %w", err)
			}
		}
		return e, nil
	})
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
