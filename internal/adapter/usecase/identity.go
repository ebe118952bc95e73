package usecase

import (
	"fmt"
	"strings"

	"shop-sweeps/internal/core/domain"
)

// ResolveIdentity derives the stable ledger key for a purchase event. In
// priority order: a usable email (top-level, contact, or nested customer),
// then a placeholder built from the phone number, then a placeholder built
// from the order id. The function is deterministic, so redelivered
// webhooks for the same order always resolve to the same key.
//
// Known limitation: two purchases with neither email nor phone get
// per-order placeholders and can never be merged into one customer.
func ResolveIdentity(ev *domain.PurchaseEvent) string {
	emails := []*string{ev.Email, ev.ContactEmail}
	if ev.Customer != nil {
		emails = append(emails, ev.Customer.Email)
	}
	for _, c := range emails {
		if c == nil {
			continue
		}
		if e := normalizeEmail(*c); e != "" {
			return e
		}
	}

	phones := []*string{ev.Phone}
	if ev.Customer != nil {
		phones = append(phones, ev.Customer.Phone)
	}
	for _, c := range phones {
		if c == nil {
			continue
		}
		if digits := stripNonDigits(*c); digits != "" {
			return fmt.Sprintf("phone_%s@phone.customer", digits)
		}
	}

	return fmt.Sprintf("order_%d@noemail.customer", ev.OrderID)
}

// normalizeEmail lowercases and trims s, returning "" when the result is
// not email-shaped.
func normalizeEmail(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if !looksLikeEmail(s) {
		return ""
	}
	return s
}

// looksLikeEmail is a shape check, not RFC validation: one "@" with a
// non-empty local part and a dotted domain.
func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	dom := s[at+1:]
	if dom == "" || strings.Contains(s, " ") {
		return false
	}
	dot := strings.Index(dom, ".")
	return dot > 0 && dot < len(dom)-1
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
