package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kevin07696/settlement-ledger/internal/db/sqlc"
	"github.com/kevin07696/settlement-ledger/internal/domain"
	"github.com/kevin07696/settlement-ledger/internal/services/ports"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateShopAccount_OpensFirstPeriod(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	account := h.openAccount(t, "shop-1")
	assert.Contains(t, account.DisplayID, "SA-")

	period := h.current(t, account.ID)
	assert.Equal(t, *account.CurrentSettlementPeriodID, period.ID)
	assert.Equal(t, int32(1), period.PeriodNumber)

	stored, err := h.svc.GetShopAccount(ctx, &ports.GetShopAccountRequest{ShopAccountID: account.ID})
	require.NoError(t, err)
	require.NotNil(t, stored.CurrentSettlementPeriodID)
	assert.Equal(t, period.ID, *stored.CurrentSettlementPeriodID)
}

func TestCreateShopAccount_DuplicateShop(t *testing.T) {
	h := newHarness(t)
	h.openAccount(t, "shop-1")

	_, err := h.svc.CreateShopAccount(context.Background(), nil, &ports.CreateShopAccountRequest{
		ShopID:          "shop-1",
		SellerAccountID: "someone-else",
	})
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeShopAccountExists))
	assert.True(t, domain.IsConflictError(err))
}

func TestCreateShopAccount_DisplayIDCollisionIsNotConflict(t *testing.T) {
	h := newHarness(t)
	h.store.FailOn("CreateShopAccount", &pgconn.PgError{Code: "23505", ConstraintName: "shop_accounts_display_id_key"})

	_, err := h.svc.CreateShopAccount(context.Background(), nil, &ports.CreateShopAccountRequest{
		ShopID:          "shop-1",
		SellerAccountID: "seller-1",
	})
	require.Error(t, err)
	assert.False(t, domain.IsConflictError(err))
}

func TestCreateShopAccount_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *ports.CreateShopAccountRequest
		code domain.ErrorCode
	}{
		{
			name: "missing_shop_id",
			req:  &ports.CreateShopAccountRequest{SellerAccountID: "s"},
			code: domain.ErrorCodeValidationMissingField,
		},
		{
			name: "missing_seller",
			req:  &ports.CreateShopAccountRequest{ShopID: "shop"},
			code: domain.ErrorCodeValidationMissingField,
		},
		{
			name: "freeze_period_too_long",
			req:  &ports.CreateShopAccountRequest{ShopID: "shop", SellerAccountID: "s", FreezePeriodDays: ptr(366)},
			code: domain.ErrorCodeValidationFailed,
		},
		{
			name: "freeze_period_zero",
			req:  &ports.CreateShopAccountRequest{ShopID: "shop", SellerAccountID: "s", FreezePeriodDays: ptr(0)},
			code: domain.ErrorCodeValidationFailed,
		},
		{
			name: "commission_over_100",
			req: &ports.CreateShopAccountRequest{
				ShopID: "shop", SellerAccountID: "s", CommissionPercent: ptr(decimal.NewFromInt(101)),
			},
			code: domain.ErrorCodeValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			_, err := h.svc.CreateShopAccount(context.Background(), nil, tt.req)
			assert.True(t, domain.IsDomainError(err, tt.code), "got %v", err)
		})
	}
}

func TestCreateShopAccount_JoinsCallerUnitOfWork(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	var accountID string
	err := h.store.TxManager().WithTx(ctx, func(q sqlc.Querier) error {
		account, err := h.svc.CreateShopAccount(ctx, q, &ports.CreateShopAccountRequest{
			ShopID:          "shop-rollback",
			SellerAccountID: "seller",
			OpenFirstPeriod: true,
		})
		if err != nil {
			return err
		}
		accountID = account.ID
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	require.NotEmpty(t, accountID)

	_, err = h.svc.GetShopAccount(ctx, &ports.GetShopAccountRequest{ShopAccountID: accountID})
	assert.True(t, domain.IsNotFoundError(err), "caller rollback must discard the account")
	assert.Empty(t, h.store.OutboxEvents(), "caller rollback must discard the opened event")
}

func TestUpdateShopAccount(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	account := h.openAccount(t, "shop-1")

	suspended := domain.ShopAccountStatusSuspended
	updated, err := h.svc.UpdateShopAccount(ctx, nil, &ports.UpdateShopAccountRequest{
		ShopAccountID:    account.ID,
		Status:           &suspended,
		FreezePeriodDays: ptr(30),
		Comment:          ptr("manual review"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ShopAccountStatusSuspended, updated.Status)
	assert.Equal(t, 30, updated.FreezePeriodDays)
	assert.Equal(t, "manual review", updated.Comment)
	assertDecimal(t, "10", updated.CommissionPercent)

	// Untouched fields survive a second partial update
	updated, err = h.svc.UpdateShopAccount(ctx, nil, &ports.UpdateShopAccountRequest{
		ShopAccountID:     account.ID,
		CommissionPercent: ptr(decimal.RequireFromString("7.5")),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ShopAccountStatusSuspended, updated.Status)
	assert.Equal(t, 30, updated.FreezePeriodDays)
	assertDecimal(t, "7.5", updated.CommissionPercent)
}

func TestUpdateShopAccount_Errors(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	account := h.openAccount(t, "shop-1")

	_, err := h.svc.UpdateShopAccount(ctx, nil, &ports.UpdateShopAccountRequest{ShopAccountID: uuid.NewString()})
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeShopAccountNotFound))

	bogus := domain.ShopAccountStatus("CLOSED")
	_, err = h.svc.UpdateShopAccount(ctx, nil, &ports.UpdateShopAccountRequest{ShopAccountID: account.ID, Status: &bogus})
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeValidationFailed))

	_, err = h.svc.UpdateShopAccount(ctx, nil, &ports.UpdateShopAccountRequest{ShopAccountID: account.ID, FreezePeriodDays: ptr(0)})
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeValidationFailed))
}

func TestGetShopAccount(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	account := h.openAccount(t, "shop-1")

	byShop, err := h.svc.GetShopAccount(ctx, &ports.GetShopAccountRequest{ShopID: "shop-1"})
	require.NoError(t, err)
	assert.Equal(t, account.ID, byShop.ID)

	_, err = h.svc.GetShopAccount(ctx, &ports.GetShopAccountRequest{ShopID: "missing"})
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeShopAccountNotFound))

	_, err = h.svc.GetShopAccount(ctx, &ports.GetShopAccountRequest{})
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeValidationMissingField))

	_, err = h.svc.GetShopAccount(ctx, &ports.GetShopAccountRequest{ShopAccountID: "nope"})
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeValidationInvalidID))
}
