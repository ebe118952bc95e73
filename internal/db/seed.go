package db

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-sweeps/internal/core/domain"
)

// Seed inserts demo promos and entries for local development. Entry
// counts use math/rand; the draw itself never does.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	store := "demo-store.myshopify.com"

	for i := 1; i <= 3; i++ {
		promoID := uuid.New()
		name := fmt.Sprintf("Demo Giveaway %d", i)
		starts := time.Now().AddDate(0, 0, -7)
		ends := time.Now().AddDate(0, 1, 0)
		_, err := db.Exec(ctx, `INSERT INTO promos
(id, store_id, name, status, starts_at, ends_at, prize_name, prize_amount,
 entries_per_dollar, max_entries_per_email, max_entries_per_ip, created_at, updated_at)
VALUES ($1,$2,$3,'active',$4,$5,$6,$7,$8,$9,$10,now(),now()) ON CONFLICT DO NOTHING`,
			promoID, store, name, starts, ends,
			fmt.Sprintf("Prize %d", i), 50*i, 1, 10, 3)
		if err != nil {
			return err
		}

		// a few purchase entries per promo
		for j := 1; j <= 10; j++ {
			email := fmt.Sprintf("customer-%d@example.com", r.Intn(5)+1)
			orderID := fmt.Sprintf("%d%03d", 100000*i, j)
			total := float64(r.Intn(20) + 1)
			meta, _ := json.Marshal(map[string]any{"currency": "USD"})
			_, err = db.Exec(ctx, `INSERT INTO entries
(id, promo_id, store_id, customer_email, email_hash, customer_name, entry_count,
 source, order_id, order_total, meta, created_at)
VALUES ($1,$2,$3,$4,$5,'',$6,'purchase',$7,$8,$9,now()) ON CONFLICT DO NOTHING`,
				uuid.New(), promoID, store, email, domain.HashEmail(email), r.Intn(5)+1, orderID, total, meta)
			if err != nil {
				return err
			}
		}

		// and a couple of direct signups
		for j := 1; j <= 3; j++ {
			email := fmt.Sprintf("signup-%d@example.com", j)
			meta, _ := json.Marshal(map[string]any{"ip": fmt.Sprintf("192.0.2.%d", j)})
			_, err = db.Exec(ctx, `INSERT INTO entries
(id, promo_id, store_id, customer_email, email_hash, customer_name, entry_count,
 source, meta, created_at)
VALUES ($1,$2,$3,$4,$5,'',1,'direct',$6,now()) ON CONFLICT DO NOTHING`,
				uuid.New(), promoID, store, email, domain.HashEmail(email), meta)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
