package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Winner is the result of exactly one draw for a promo. Prize fields are
// copied from the promo at draw time so later promo edits do not alter the
// record. At most one winner exists per promo, enforced by a unique
// constraint on PromoID.
type Winner struct {
	ID            uuid.UUID
	PromoID       uuid.UUID
	StoreID       string
	EntryID       uuid.UUID
	CustomerEmail string
	CustomerName  string
	PrizeName     string
	PrizeAmount   decimal.Decimal
	DrawnAt       time.Time
	Notified      bool
	NotifiedAt    *time.Time
	Claimed       bool
	ClaimedAt     *time.Time
	CreatedBy     string // operator who triggered the draw
}
