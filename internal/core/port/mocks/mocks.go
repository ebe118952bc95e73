// Package mocks provides testify mocks for the repository and notifier
// ports, used by usecase tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"shop-sweeps/internal/core/domain"
)

// PromoRepository mocks port.PromoRepository.
type PromoRepository struct {
	mock.Mock
}

func (m *PromoRepository) Create(ctx context.Context, p *domain.Promo) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PromoRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Promo, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Promo)
	return p, args.Error(1)
}

func (m *PromoRepository) ListActiveByStore(ctx context.Context, storeID string) ([]domain.Promo, error) {
	args := m.Called(ctx, storeID)
	ps, _ := args.Get(0).([]domain.Promo)
	return ps, args.Error(1)
}

func (m *PromoRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PromoStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// EntryRepository mocks port.EntryRepository.
type EntryRepository struct {
	mock.Mock
}

func (m *EntryRepository) Insert(ctx context.Context, e *domain.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EntryRepository) InsertClamped(ctx context.Context, e *domain.Entry, maxTotal int) (int, error) {
	args := m.Called(ctx, e, maxTotal)
	return args.Int(0), args.Error(1)
}

func (m *EntryRepository) SumEntryCount(ctx context.Context, promoID uuid.UUID, email string) (int, error) {
	args := m.Called(ctx, promoID, email)
	return args.Int(0), args.Error(1)
}

func (m *EntryRepository) CountByIP(ctx context.Context, promoID uuid.UUID, ip string) (int, error) {
	args := m.Called(ctx, promoID, ip)
	return args.Int(0), args.Error(1)
}

func (m *EntryRepository) OrderExists(ctx context.Context, promoID uuid.UUID, orderID string) (bool, error) {
	args := m.Called(ctx, promoID, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *EntryRepository) ListByPromo(ctx context.Context, promoID uuid.UUID) ([]domain.Entry, error) {
	args := m.Called(ctx, promoID)
	es, _ := args.Get(0).([]domain.Entry)
	return es, args.Error(1)
}

// WinnerRepository mocks port.WinnerRepository.
type WinnerRepository struct {
	mock.Mock
}

func (m *WinnerRepository) CreateAndEndPromo(ctx context.Context, w *domain.Winner) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *WinnerRepository) GetByPromo(ctx context.Context, promoID uuid.UUID) (*domain.Winner, error) {
	args := m.Called(ctx, promoID)
	w, _ := args.Get(0).(*domain.Winner)
	return w, args.Error(1)
}

func (m *WinnerRepository) MarkNotified(ctx context.Context, promoID uuid.UUID) error {
	args := m.Called(ctx, promoID)
	return args.Error(0)
}

func (m *WinnerRepository) MarkClaimed(ctx context.Context, promoID uuid.UUID) error {
	args := m.Called(ctx, promoID)
	return args.Error(0)
}

// Notifier mocks port.Notifier.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) EntryConfirmed(ctx context.Context, promo *domain.Promo, entry *domain.Entry) {
	m.Called(ctx, promo, entry)
}

func (m *Notifier) WinnerSelected(ctx context.Context, promo *domain.Promo, winner *domain.Winner) {
	m.Called(ctx, promo, winner)
}

func (m *Notifier) AdminAlert(ctx context.Context, promo *domain.Promo, winner *domain.Winner) {
	m.Called(ctx, promo, winner)
}
