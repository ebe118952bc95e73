package port

import (
	"context"

	"shop-sweeps/internal/core/domain"
)

// Notifier is the fire-and-forget notification collaborator. Calls are
// best-effort: implementations log failures and never return them, and a
// failed notification must never roll back the accrual or draw that
// triggered it.
type Notifier interface {
	// EntryConfirmed tells the customer their entries were recorded.
	EntryConfirmed(ctx context.Context, promo *domain.Promo, entry *domain.Entry)
	// WinnerSelected tells the winning customer they won.
	WinnerSelected(ctx context.Context, promo *domain.Promo, winner *domain.Winner)
	// AdminAlert tells the store owner a draw completed.
	AdminAlert(ctx context.Context, promo *domain.Promo, winner *domain.Winner)
}
