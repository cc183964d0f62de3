package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/kevin07696/settlement-ledger/internal/domain"
	"github.com/kevin07696/settlement-ledger/internal/services/ports"
	"github.com/kevin07696/settlement-ledger/internal/testutil/fakes"
	"github.com/kevin07696/settlement-ledger/pkg/timeutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testStart = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type harness struct {
	store *fakes.Store
	clock *timeutil.ManualClock
	svc   ports.LedgerService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := fakes.NewStore()
	clock := timeutil.NewManualClock(testStart)
	return &harness{
		store: store,
		clock: clock,
		svc:   NewLedgerService(store, store.TxManager(), zap.NewNop(), WithClock(clock)),
	}
}

func ptr[T any](v T) *T {
	return &v
}

// openAccount creates an account with its first ACTIVE period
func (h *harness) openAccount(t *testing.T, shopID string) *domain.ShopAccount {
	t.Helper()
	account, err := h.svc.CreateShopAccount(context.Background(), nil, &ports.CreateShopAccountRequest{
		ShopID:          shopID,
		SellerAccountID: "seller-" + shopID,
		OpenFirstPeriod: true,
	})
	require.NoError(t, err)
	require.True(t, account.HasCurrentPeriod())
	return account
}

func (h *harness) record(t *testing.T, accountID string, txnType domain.TransactionType, amount string, status domain.TransactionStatus) *domain.SettlementPeriodTransaction {
	t.Helper()
	txn, err := h.svc.CreateTransaction(context.Background(), nil, &ports.CreateTransactionRequest{
		ShopAccountID: accountID,
		Type:          txnType,
		Amount:        decimal.RequireFromString(amount),
		Status:        &status,
	})
	require.NoError(t, err)
	return txn
}

func (h *harness) current(t *testing.T, accountID string) *domain.SettlementPeriod {
	t.Helper()
	period, err := h.svc.GetCurrentPeriod(context.Background(), accountID)
	require.NoError(t, err)
	return period
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestNewLedgerService_Defaults(t *testing.T) {
	h := newHarness(t)
	account, err := h.svc.CreateShopAccount(context.Background(), nil, &ports.CreateShopAccountRequest{
		ShopID:          "shop-defaults",
		SellerAccountID: "seller-1",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultFreezePeriodDays, account.FreezePeriodDays)
	assertDecimal(t, "10", account.CommissionPercent)
	assert.Equal(t, domain.ShopAccountStatusActive, account.Status)
	assert.False(t, account.HasCurrentPeriod())
	assert.True(t, testStart.Equal(account.CreatedAt))
}

func TestNewLedgerService_WithDefaults(t *testing.T) {
	store := fakes.NewStore()
	svc := NewLedgerService(store, store.TxManager(), zap.NewNop(), WithDefaults(Defaults{
		FreezePeriodDays:  7,
		CommissionPercent: decimal.RequireFromString("12.5"),
	}))

	account, err := svc.CreateShopAccount(context.Background(), nil, &ports.CreateShopAccountRequest{
		ShopID:          "shop-custom",
		SellerAccountID: "seller-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, account.FreezePeriodDays)
	assertDecimal(t, "12.5", account.CommissionPercent)
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int32
	}{
		{0, 0, ports.DefaultPageLimit, 0},
		{-5, -1, ports.DefaultPageLimit, 0},
		{10, 20, 10, 20},
		{10000, 0, ports.MaxPageLimit, 0},
	}
	for _, tt := range tests {
		limit, offset := normalizePage(tt.limit, tt.offset)
		assert.Equal(t, tt.wantLimit, limit)
		assert.Equal(t, tt.wantOffset, offset)
	}
}

func TestParseID(t *testing.T) {
	_, err := parseID("shop_account_id", "")
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeValidationMissingField))

	_, err = parseID("shop_account_id", "not-a-uuid")
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeValidationInvalidID))
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
