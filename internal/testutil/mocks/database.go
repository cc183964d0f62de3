// Package mocks provides shared testify mocks of the persistence ports.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/kevin07696/settlement-ledger/internal/db/sqlc"
	"github.com/stretchr/testify/mock"
)

// MockQuerier provides a full mock implementation of sqlc.Querier.
type MockQuerier struct {
	mock.Mock
}

var _ sqlc.Querier = (*MockQuerier)(nil)

// Shop accounts

func (m *MockQuerier) CreateShopAccount(ctx context.Context, arg sqlc.CreateShopAccountParams) (sqlc.ShopAccount, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(sqlc.ShopAccount), args.Error(1)
}

func (m *MockQuerier) GetShopAccountByID(ctx context.Context, id uuid.UUID) (sqlc.ShopAccount, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(sqlc.ShopAccount), args.Error(1)
}

func (m *MockQuerier) GetShopAccountByShopID(ctx context.Context, shopID string) (sqlc.ShopAccount, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).(sqlc.ShopAccount), args.Error(1)
}

func (m *MockQuerier) GetShopAccountForUpdate(ctx context.Context, id uuid.UUID) (sqlc.ShopAccount, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(sqlc.ShopAccount), args.Error(1)
}

func (m *MockQuerier) ShopAccountExistsByShopID(ctx context.Context, shopID string) (bool, error) {
	args := m.Called(ctx, shopID)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuerier) UpdateShopAccount(ctx context.Context, arg sqlc.UpdateShopAccountParams) (sqlc.ShopAccount, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(sqlc.ShopAccount), args.Error(1)
}

func (m *MockQuerier) SetCurrentSettlementPeriod(ctx context.Context, arg sqlc.SetCurrentSettlementPeriodParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}

func (m *MockQuerier) ClearCurrentSettlementPeriod(ctx context.Context, arg sqlc.ClearCurrentSettlementPeriodParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}

func (m *MockQuerier) AddShopAccountTotals(ctx context.Context, arg sqlc.AddShopAccountTotalsParams) (sqlc.ShopAccount, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(sqlc.ShopAccount), args.Error(1)
}

// Settlement periods

func (m *MockQuerier) CreateSettlementPeriod(ctx context.Context, arg sqlc.CreateSettlementPeriodParams) (sqlc.SettlementPeriod, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(sqlc.SettlementPeriod), args.Error(1)
}

func (m *MockQuerier) GetSettlementPeriodByID(ctx context.Context, id uuid.UUID) (sqlc.SettlementPeriod, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(sqlc.SettlementPeriod), args.Error(1)
}

func (m *MockQuerier) GetSettlementPeriodForShare(ctx context.Context, id uuid.UUID) (sqlc.SettlementPeriod, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(sqlc.SettlementPeriod), args.Error(1)
}

func (m *MockQuerier) GetSettlementPeriodForUpdate(ctx context.Context, id uuid.UUID) (sqlc.SettlementPeriod, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(sqlc.SettlementPeriod), args.Error(1)
}

func (m *MockQuerier) GetActiveSettlementPeriod(ctx context.Context, shopAccountID uuid.UUID) (sqlc.SettlementPeriod, error) {
	args := m.Called(ctx, shopAccountID)
	return args.Get(0).(sqlc.SettlementPeriod), args.Error(1)
}

func (m *MockQuerier) GetMaxPeriodNumber(ctx context.Context, shopAccountID uuid.UUID) (int32, error) {
	args := m.Called(ctx, shopAccountID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockQuerier) CloseSettlementPeriod(ctx context.Context, arg sqlc.CloseSettlementPeriodParams) (sqlc.SettlementPeriod, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(sqlc.SettlementPeriod), args.Error(1)
}

func (m *MockQuerier) UpdateSettlementPeriodAmounts(ctx context.Context, arg sqlc.UpdateSettlementPeriodAmountsParams) (sqlc.SettlementPeriod, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(sqlc.SettlementPeriod), args.Error(1)
}

func (m *MockQuerier) ReleaseSettlementPeriod(ctx context.Context, arg sqlc.ReleaseSettlementPeriodParams) (sqlc.SettlementPeriod, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(sqlc.SettlementPeriod), args.Error(1)
}

func (m *MockQuerier) UpdateSettlementPeriodComment(ctx context.Context, arg sqlc.UpdateSettlementPeriodCommentParams) (sqlc.SettlementPeriod, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(sqlc.SettlementPeriod), args.Error(1)
}

func (m *MockQuerier) ListSettlementPeriods(ctx context.Context, arg sqlc.ListSettlementPeriodsParams) ([]sqlc.SettlementPeriod, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]sqlc.SettlementPeriod), args.Error(1)
}

func (m *MockQuerier) CountSettlementPeriods(ctx context.Context, arg sqlc.CountSettlementPeriodsParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuerier) ListDueSettlementPeriods(ctx context.Context, arg sqlc.ListDueSettlementPeriodsParams) ([]sqlc.SettlementPeriod, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]sqlc.SettlementPeriod), args.Error(1)
}

// Settlement period transactions

func (m *MockQuerier) CreateSettlementPeriodTransaction(ctx context.Context, arg sqlc.CreateSettlementPeriodTransactionParams) (sqlc.SettlementPeriodTransaction, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(sqlc.SettlementPeriodTransaction), args.Error(1)
}

func (m *MockQuerier) GetSettlementPeriodTransactionByID(ctx context.Context, id uuid.UUID) (sqlc.SettlementPeriodTransaction, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(sqlc.SettlementPeriodTransaction), args.Error(1)
}

func (m *MockQuerier) GetSettlementPeriodTransactionForUpdate(ctx context.Context, id uuid.UUID) (sqlc.SettlementPeriodTransaction, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(sqlc.SettlementPeriodTransaction), args.Error(1)
}

func (m *MockQuerier) UpdateSettlementPeriodTransaction(ctx context.Context, arg sqlc.UpdateSettlementPeriodTransactionParams) (sqlc.SettlementPeriodTransaction, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(sqlc.SettlementPeriodTransaction), args.Error(1)
}

func (m *MockQuerier) MoveSettlementPeriodTransaction(ctx context.Context, arg sqlc.MoveSettlementPeriodTransactionParams) (sqlc.SettlementPeriodTransaction, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(sqlc.SettlementPeriodTransaction), args.Error(1)
}

func (m *MockQuerier) ListCompletedTransactionsByPeriod(ctx context.Context, settlementPeriodID uuid.UUID) ([]sqlc.SettlementPeriodTransaction, error) {
	args := m.Called(ctx, settlementPeriodID)
	return args.Get(0).([]sqlc.SettlementPeriodTransaction), args.Error(1)
}

func (m *MockQuerier) ListSettlementPeriodTransactions(ctx context.Context, arg sqlc.ListSettlementPeriodTransactionsParams) ([]sqlc.SettlementPeriodTransaction, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]sqlc.SettlementPeriodTransaction), args.Error(1)
}

func (m *MockQuerier) CountSettlementPeriodTransactions(ctx context.Context, arg sqlc.CountSettlementPeriodTransactionsParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}

// Outbox

func (m *MockQuerier) InsertLedgerOutboxEvent(ctx context.Context, arg sqlc.InsertLedgerOutboxEventParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}

func (m *MockQuerier) ListPendingLedgerOutboxEvents(ctx context.Context, arg sqlc.ListPendingLedgerOutboxEventsParams) ([]sqlc.LedgerOutbox, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]sqlc.LedgerOutbox), args.Error(1)
}

func (m *MockQuerier) MarkLedgerOutboxEventSent(ctx context.Context, arg sqlc.MarkLedgerOutboxEventSentParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}

func (m *MockQuerier) MarkLedgerOutboxEventFailed(ctx context.Context, arg sqlc.MarkLedgerOutboxEventFailedParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}

// MockTransactionManager runs fn against Querier without a real transaction
type MockTransactionManager struct {
	Querier sqlc.Querier
}

func (m *MockTransactionManager) WithTx(ctx context.Context, fn func(sqlc.Querier) error) error {
	return fn(m.Querier)
}
