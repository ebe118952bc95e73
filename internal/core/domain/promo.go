package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PromoStatus is the lifecycle state of a promo.
type PromoStatus string

const (
	PromoDraft  PromoStatus = "draft"
	PromoActive PromoStatus = "active"
	PromoPaused PromoStatus = "paused"
	PromoEnded  PromoStatus = "ended"
)

// Valid reports whether s is one of the known statuses.
func (s PromoStatus) Valid() bool {
	switch s {
	case PromoDraft, PromoActive, PromoPaused, PromoEnded:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status machine allows moving from s
// to next. "ended" is terminal: no transition ever leaves it. Any
// non-terminal status may be ended by an operator; the draw ends a promo
// automatically.
func (s PromoStatus) CanTransitionTo(next PromoStatus) bool {
	if s == PromoEnded {
		return false
	}
	switch s {
	case PromoDraft:
		return next == PromoActive || next == PromoEnded
	case PromoActive:
		return next == PromoPaused || next == PromoEnded
	case PromoPaused:
		return next == PromoActive || next == PromoEnded
	}
	return false
}

// Promo represents a single sweepstakes campaign run by a store.
// Caps and the entries-per-dollar multiplier are promo attributes, not
// process configuration.
type Promo struct {
	ID      uuid.UUID
	StoreID string
	Name    string
	Status  PromoStatus

	// StartsAt and EndsAt bound the accrual window. A nil bound means
	// unbounded on that side.
	StartsAt           *time.Time
	EndsAt             *time.Time
	PrizeName          string
	PrizeAmount        decimal.Decimal
	EntriesPerDollar   int
	MaxEntriesPerEmail int // cap on total entries per customer identity
	MaxEntriesPerIP    int // manual entries only
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// AcceptsEntriesAt reports whether the promo takes new entries at t: it
// must be active and t must fall inside the configured window.
func (p *Promo) AcceptsEntriesAt(t time.Time) bool {
	if p.Status != PromoActive {
		return false
	}
	if p.StartsAt != nil && t.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && t.After(*p.EndsAt) {
		return false
	}
	return true
}
