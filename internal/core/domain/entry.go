package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntrySource identifies how an entry was accrued.
type EntrySource string

const (
	SourceDirect      EntrySource = "direct"
	SourcePurchase    EntrySource = "purchase"
	SourceAdminManual EntrySource = "admin_manual"
)

// EntryMeta carries free-form context captured at accrual time. It is the
// only part of an entry that may be annotated after creation.
type EntryMeta struct {
	IP         string     `json:"ip,omitempty"`
	UserAgent  string     `json:"user_agent,omitempty"`
	Currency   string     `json:"currency,omitempty"`
	Consent    bool       `json:"consent,omitempty"`
	Capped     bool       `json:"capped,omitempty"` // cap truncated the raw entitlement
	LineItems  []LineItem `json:"line_items,omitempty"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"` // timestamp of the originating event
}

// Entry is one accrual record: N weighted chances for a customer in a
// promo. EntryCount is always >= 1; a zero-entry outcome is expressed by
// not writing a row at all. OrderID is set only for purchase entries and
// together with PromoID forms the idempotency key for webhook redelivery.
type Entry struct {
	ID            uuid.UUID
	PromoID       uuid.UUID
	StoreID       string
	CustomerEmail string // real address or synthesized placeholder
	EmailHash     string
	CustomerName  string
	EntryCount    int
	Source        EntrySource
	OrderID       *string
	OrderTotal    *decimal.Decimal
	Meta          EntryMeta
	CreatedAt     time.Time
}

// HashEmail returns the one-way hash stored alongside the raw identity so
// exports can reference a customer without exposing the address.
func HashEmail(email string) string {
	sum := sha256.Sum256([]byte(email))
	return hex.EncodeToString(sum[:])
}
