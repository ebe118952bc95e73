package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shop-sweeps/internal/core/domain"
	"shop-sweeps/internal/core/port"
	"shop-sweeps/internal/core/port/mocks"
)

func TestCreatePromoDefaults(t *testing.T) {
	promos := new(mocks.PromoRepository)
	promos.On("Create", mock.Anything, mock.AnythingOfType("*domain.Promo")).Return(nil)
	svc := NewSweepsUseCase(promos, &fakeLedger{}, nil, nopNotifier{})

	p, err := svc.CreatePromo(context.Background(), port.CreatePromo{
		StoreID: "store.example", Name: "Launch Giveaway",
	})
	require.NoError(t, err)
	require.Equal(t, domain.PromoDraft, p.Status)
	require.Equal(t, 1, p.EntriesPerDollar)
	require.Equal(t, 1, p.MaxEntriesPerEmail)
	require.Equal(t, 3, p.MaxEntriesPerIP)
}

func TestCreatePromoValidation(t *testing.T) {
	svc := NewSweepsUseCase(new(mocks.PromoRepository), &fakeLedger{}, nil, nopNotifier{})

	_, err := svc.CreatePromo(context.Background(), port.CreatePromo{Name: "No Store"})
	var vErr *port.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = svc.CreatePromo(context.Background(), port.CreatePromo{StoreID: "s"})
	require.ErrorAs(t, err, &vErr)
}

func TestSetPromoStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to domain.PromoStatus
		ok       bool
	}{
		{domain.PromoDraft, domain.PromoActive, true},
		{domain.PromoActive, domain.PromoPaused, true},
		{domain.PromoPaused, domain.PromoActive, true},
		{domain.PromoActive, domain.PromoEnded, true},
		{domain.PromoDraft, domain.PromoPaused, false},
		{domain.PromoEnded, domain.PromoActive, false},
		{domain.PromoEnded, domain.PromoDraft, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			promo := activePromo(1, 1)
			promo.Status = tc.from
			promos := new(mocks.PromoRepository)
			promos.On("Get", mock.Anything, promo.ID).Return(promo, nil)
			promos.On("UpdateStatus", mock.Anything, promo.ID, tc.to).Return(nil)
			svc := NewSweepsUseCase(promos, &fakeLedger{}, nil, nopNotifier{})

			p, err := svc.SetPromoStatus(context.Background(), promo.ID, tc.to)
			if tc.ok {
				require.NoError(t, err)
				require.Equal(t, tc.to, p.Status)
			} else {
				require.ErrorIs(t, err, port.ErrInvalidStatusTransition)
			}
		})
	}
}

func TestGetPromoNotFound(t *testing.T) {
	promos := new(mocks.PromoRepository)
	promos.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
	svc := NewSweepsUseCase(promos, &fakeLedger{}, nil, nopNotifier{})

	_, err := svc.GetPromo(context.Background(), activePromo(1, 1).ID)
	require.ErrorIs(t, err, port.ErrPromoNotFound)
}
