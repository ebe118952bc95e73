package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shop-sweeps/internal/core/domain"
	"shop-sweeps/internal/core/port"
	"shop-sweeps/internal/core/port/mocks"
)

func activePromo(cap, perDollar int) *domain.Promo {
	return &domain.Promo{
		ID:                 uuid.New(),
		StoreID:            "gadget-shop.example",
		Name:               "Summer Giveaway",
		Status:             domain.PromoActive,
		PrizeName:          "Gift Card",
		PrizeAmount:        decimal.NewFromInt(100),
		EntriesPerDollar:   perDollar,
		MaxEntriesPerEmail: cap,
		MaxEntriesPerIP:    3,
	}
}

func purchase(orderID int64, email string, total string) domain.PurchaseEvent {
	return domain.PurchaseEvent{
		OrderID:    orderID,
		Email:      &email,
		TotalPrice: decimal.RequireFromString(total),
		Currency:   "USD",
	}
}

// TestPurchaseClampSequence runs the canonical cap scenario: cap 5,
// 1 entry per dollar. $3 adds 3, $10 adds only 2, $1 adds 0 but still
// succeeds.
func TestPurchaseClampSequence(t *testing.T) {
	promo := activePromo(5, 1)
	promos := new(mocks.PromoRepository)
	promos.On("Get", mock.Anything, promo.ID).Return(promo, nil)
	ledger := &fakeLedger{}
	svc := NewSweepsUseCase(promos, ledger, nil, nopNotifier{})

	res, err := svc.AccruePurchase(context.Background(), port.PurchaseAccrual{
		PromoID: promo.ID, Event: purchase(1001, "amy@example.com", "3.00"),
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.EntriesAdded)
	require.Equal(t, 3, res.Total)
	require.False(t, res.Capped)

	res, err = svc.AccruePurchase(context.Background(), port.PurchaseAccrual{
		PromoID: promo.ID, Event: purchase(1002, "amy@example.com", "10.00"),
	})
	require.NoError(t, err)
	require.Equal(t, 2, res.EntriesAdded)
	require.Equal(t, 5, res.Total)
	require.True(t, res.Capped)

	res, err = svc.AccruePurchase(context.Background(), port.PurchaseAccrual{
		PromoID: promo.ID, Event: purchase(1003, "amy@example.com", "1.00"),
	})
	require.NoError(t, err)
	require.Equal(t, 0, res.EntriesAdded)
	require.Equal(t, 5, res.Total)
	require.True(t, res.Capped)

	entries, err := ledger.ListByPromo(context.Background(), promo.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2, "the at-cap purchase must not write a row")
}

// TestPurchaseIdempotentReplay submits the identical webhook payload twice
// and expects exactly one ledger row.
func TestPurchaseIdempotentReplay(t *testing.T) {
	promo := activePromo(10, 1)
	promos := new(mocks.PromoRepository)
	promos.On("Get", mock.Anything, promo.ID).Return(promo, nil)
	ledger := &fakeLedger{}
	svc := NewSweepsUseCase(promos, ledger, nil, nopNotifier{})

	ev := purchase(98765, "bob@example.com", "4.00")
	res, err := svc.AccruePurchase(context.Background(), port.PurchaseAccrual{PromoID: promo.ID, Event: ev})
	require.NoError(t, err)
	require.Equal(t, 4, res.EntriesAdded)
	require.False(t, res.Duplicate)

	res, err = svc.AccruePurchase(context.Background(), port.PurchaseAccrual{PromoID: promo.ID, Event: ev})
	require.NoError(t, err)
	require.Equal(t, 0, res.EntriesAdded)
	require.True(t, res.Duplicate)
	require.Equal(t, 4, res.Total)

	entries, err := ledger.ListByPromo(context.Background(), promo.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "98765", *entries[0].OrderID)
}

// TestPurchaseRaceLostToConstraint covers the concurrent-delivery path:
// the pre-check misses but the insert collides with the unique index. The
// call must still report an idempotent success.
func TestPurchaseRaceLostToConstraint(t *testing.T) {
	promo := activePromo(10, 1)
	promos := new(mocks.PromoRepository)
	promos.On("Get", mock.Anything, promo.ID).Return(promo, nil)
	entries := new(mocks.EntryRepository)
	entries.On("OrderExists", mock.Anything, promo.ID, "777").Return(false, nil)
	entries.On("SumEntryCount", mock.Anything, promo.ID, "carol@example.com").Return(0, nil)
	entries.On("InsertClamped", mock.Anything, mock.AnythingOfType("*domain.Entry"), 10).
		Return(0, port.ErrDuplicateOrder)
	svc := NewSweepsUseCase(promos, entries, nil, nopNotifier{})

	res, err := svc.AccruePurchase(context.Background(), port.PurchaseAccrual{
		PromoID: promo.ID, Event: purchase(777, "carol@example.com", "2.00"),
	})
	require.NoError(t, err)
	require.True(t, res.Duplicate)
	require.Equal(t, 0, res.EntriesAdded)
}

func TestPurchaseSubDollarAddsNothing(t *testing.T) {
	promo := activePromo(5, 1)
	promos := new(mocks.PromoRepository)
	promos.On("Get", mock.Anything, promo.ID).Return(promo, nil)
	ledger := &fakeLedger{}
	svc := NewSweepsUseCase(promos, ledger, nil, nopNotifier{})

	res, err := svc.AccruePurchase(context.Background(), port.PurchaseAccrual{
		PromoID: promo.ID, Event: purchase(42, "dan@example.com", "0.99"),
	})
	require.NoError(t, err)
	require.Equal(t, 0, res.EntriesAdded)

	entries, _ := ledger.ListByPromo(context.Background(), promo.ID)
	require.Empty(t, entries)
}

func TestPurchaseRejectedWhenPromoNotActive(t *testing.T) {
	promo := activePromo(5, 1)
	promo.Status = domain.PromoEnded
	promos := new(mocks.PromoRepository)
	promos.On("Get", mock.Anything, promo.ID).Return(promo, nil)
	svc := NewSweepsUseCase(promos, &fakeLedger{}, nil, nopNotifier{})

	_, err := svc.AccruePurchase(context.Background(), port.PurchaseAccrual{
		PromoID: promo.ID, Event: purchase(1, "eve@example.com", "5.00"),
	})
	require.ErrorIs(t, err, port.ErrPromoNotActive)
}

// TestManualEntryRefusesAtCap verifies the asymmetry with purchases: a
// customer at the email cap is refused outright, never clamped.
func TestManualEntryRefusesAtCap(t *testing.T) {
	promo := activePromo(2, 1)
	promos := new(mocks.PromoRepository)
	promos.On("Get", mock.Anything, promo.ID).Return(promo, nil)
	ledger := &fakeLedger{}
	svc := NewSweepsUseCase(promos, ledger, nil, nopNotifier{})

	req := port.ManualAccrual{PromoID: promo.ID, Email: "Fay@Example.com", IP: "10.0.0.1"}
	for i := 0; i < 2; i++ {
		res, err := svc.AccrueManual(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, 1, res.EntriesAdded)
	}

	_, err := svc.AccrueManual(context.Background(), req)
	var capErr *port.CapReachedError
	require.ErrorAs(t, err, &capErr)
	require.Equal(t, "email", capErr.Scope)
	require.Equal(t, 2, capErr.Current)
	require.Equal(t, 2, capErr.Max)

	total, _ := ledger.SumEntryCount(context.Background(), promo.ID, "fay@example.com")
	require.Equal(t, 2, total, "refusal must not record a partial entry")
}

func TestManualEntryIPCap(t *testing.T) {
	promo := activePromo(10, 1)
	promo.MaxEntriesPerIP = 2
	promos := new(mocks.PromoRepository)
	promos.On("Get", mock.Anything, promo.ID).Return(promo, nil)
	ledger := &fakeLedger{}
	svc := NewSweepsUseCase(promos, ledger, nil, nopNotifier{})

	for _, email := range []string{"g1@example.com", "g2@example.com"} {
		_, err := svc.AccrueManual(context.Background(), port.ManualAccrual{
			PromoID: promo.ID, Email: email, IP: "203.0.113.9",
		})
		require.NoError(t, err)
	}

	_, err := svc.AccrueManual(context.Background(), port.ManualAccrual{
		PromoID: promo.ID, Email: "g3@example.com", IP: "203.0.113.9",
	})
	var capErr *port.CapReachedError
	require.ErrorAs(t, err, &capErr)
	require.Equal(t, "ip", capErr.Scope)
}

func TestManualEntryRejectsMalformedEmail(t *testing.T) {
	promo := activePromo(5, 1)
	promos := new(mocks.PromoRepository)
	promos.On("Get", mock.Anything, promo.ID).Return(promo, nil)
	svc := NewSweepsUseCase(promos, &fakeLedger{}, nil, nopNotifier{})

	_, err := svc.AccrueManual(context.Background(), port.ManualAccrual{PromoID: promo.ID, Email: "not-an-email"})
	var vErr *port.ValidationError
	require.True(t, errors.As(err, &vErr))
}

// TestAccrualFiresWelcomeNotification asserts the best-effort side effect
// on a successful purchase accrual.
func TestAccrualFiresWelcomeNotification(t *testing.T) {
	promo := activePromo(5, 1)
	promos := new(mocks.PromoRepository)
	promos.On("Get", mock.Anything, promo.ID).Return(promo, nil)
	notifier := new(mocks.Notifier)
	notifier.On("EntryConfirmed", mock.Anything, promo, mock.AnythingOfType("*domain.Entry")).Once()
	svc := NewSweepsUseCase(promos, &fakeLedger{}, nil, notifier)

	_, err := svc.AccruePurchase(context.Background(), port.PurchaseAccrual{
		PromoID: promo.ID, Event: purchase(11, "hana@example.com", "2.00"),
	})
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

// TestIngestPurchaseFansOut delivers one order against two active promos
// of the same store.
func TestIngestPurchaseFansOut(t *testing.T) {
	p1 := activePromo(5, 1)
	p2 := activePromo(5, 2)
	p2.StoreID = p1.StoreID
	promos := new(mocks.PromoRepository)
	promos.On("ListActiveByStore", mock.Anything, p1.StoreID).Return([]domain.Promo{*p1, *p2}, nil)
	promos.On("Get", mock.Anything, p1.ID).Return(p1, nil)
	promos.On("Get", mock.Anything, p2.ID).Return(p2, nil)
	ledger := &fakeLedger{}
	svc := NewSweepsUseCase(promos, ledger, nil, nopNotifier{})

	results, err := svc.IngestPurchase(context.Background(), p1.StoreID, purchase(500, "ivy@example.com", "2.00"))
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, 2, results[0].EntriesAdded) // 1 entry per dollar
	require.Equal(t, 4, results[1].EntriesAdded) // 2 entries per dollar
}
