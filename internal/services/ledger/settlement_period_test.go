package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kevin07696/settlement-ledger/internal/domain"
	"github.com/kevin07696/settlement-ledger/internal/services/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlementLifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	account := h.openAccount(t, "shop-1")

	period := h.current(t, account.ID)
	assert.Equal(t, int32(1), period.PeriodNumber)
	assert.Equal(t, domain.SettlementPeriodStatusActive, period.Status)
	assert.True(t, period.EndDate.Equal(period.StartDate.AddDate(0, 0, 14)))

	h.record(t, account.ID, domain.TransactionTypeOrderIncome, "1000", domain.TransactionStatusCompleted)
	h.record(t, account.ID, domain.TransactionTypePenalty, "200", domain.TransactionStatusPending)

	closed, err := h.svc.CloseSettlementPeriod(ctx, nil, period.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SettlementPeriodStatusPendingApproval, closed.Status)
	assertDecimal(t, "1000", closed.Amounts.OrderCompletions)
	assertDecimal(t, "0", closed.Amounts.Penalties)
	assertDecimal(t, "1000", closed.TotalAmount)
	require.NotNil(t, closed.ClosedAt)

	stored, err := h.svc.GetShopAccount(ctx, &ports.GetShopAccountRequest{ShopAccountID: account.ID})
	require.NoError(t, err)
	assert.Nil(t, stored.CurrentSettlementPeriodID, "close clears the current period pointer")

	released, err := h.svc.ApproveSettlementPeriod(ctx, nil, &ports.ApproveSettlementPeriodRequest{
		SettlementPeriodID: period.ID,
		Comment:            ptr("approved by ops"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SettlementPeriodStatusReleased, released.Status)
	require.NotNil(t, released.ReleasedAmount)
	assertDecimal(t, "1000", *released.ReleasedAmount)
	assert.Equal(t, "approved by ops", released.Comment)
	require.NotNil(t, released.ReleasedAt)

	_, err = h.svc.CloseSettlementPeriod(ctx, nil, period.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodePeriodInvalidState))
	_, err = h.svc.ApproveSettlementPeriod(ctx, nil, &ports.ApproveSettlementPeriodRequest{SettlementPeriodID: period.ID})
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodePeriodInvalidState))

	stored, err = h.svc.GetShopAccount(ctx, &ports.GetShopAccountRequest{ShopAccountID: account.ID})
	require.NoError(t, err)
	assertDecimal(t, "1000", stored.LifetimeEarnings)
	assertDecimal(t, "0", stored.TotalPenalties)

	events := h.store.OutboxEvents()
	require.Len(t, events, 3)
	assert.Equal(t, string(domain.EventSettlementPeriodOpened), events[0].EventType)
	assert.Equal(t, string(domain.EventSettlementPeriodClosed), events[1].EventType)
	assert.Equal(t, string(domain.EventSettlementPeriodReleased), events[2].EventType)

	var payload domain.SettlementPeriodEvent
	require.NoError(t, json.Unmarshal(events[2].Payload, &payload))
	assert.Equal(t, period.ID, payload.SettlementPeriodID)
	require.NotNil(t, payload.ReleasedAmount)
	assertDecimal(t, "1000", *payload.ReleasedAmount)
}

func TestOpenSettlementPeriod_SecondOpenConflicts(t *testing.T) {
	h := newHarness(t)
	account := h.openAccount(t, "shop-1")

	_, err := h.svc.OpenSettlementPeriod(context.Background(), nil, account.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodePeriodAlreadyActive))
	assert.True(t, domain.IsConflictError(err))
}

func TestOpenSettlementPeriod_ConcurrentOpensYieldOneActive(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	account, err := h.svc.CreateShopAccount(ctx, nil, &ports.CreateShopAccountRequest{
		ShopID:          "shop-race",
		SellerAccountID: "seller",
	})
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = h.svc.OpenSettlementPeriod(ctx, nil, account.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, domain.IsConflictError(err), "got %v", err)
	}
	assert.Equal(t, 1, succeeded)

	periods, total, err := h.svc.GetSettlementPeriods(ctx, &ports.ListSettlementPeriodsFilter{ShopAccountID: account.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, periods, 1)
}

func TestOpenSettlementPeriod_UnknownAccount(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.OpenSettlementPeriod(context.Background(), nil, uuid.NewString())
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeShopAccountNotFound))
}

func TestRollover_SequentialNumbering(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	account := h.openAccount(t, "shop-1")

	for want := int32(1); want <= 4; want++ {
		period := h.current(t, account.ID)
		assert.Equal(t, want, period.PeriodNumber)

		h.clock.Advance(15 * 24 * time.Hour)
		closed, opened, err := h.svc.RolloverSettlementPeriod(ctx, nil, period.ID)
		require.NoError(t, err)
		assert.Equal(t, period.ID, closed.ID)
		assert.Equal(t, domain.SettlementPeriodStatusPendingApproval, closed.Status)
		assert.Equal(t, want+1, opened.PeriodNumber)
		assert.True(t, opened.StartDate.Equal(h.clock.Now()))
	}

	periods, total, err := h.svc.GetSettlementPeriods(ctx, &ports.ListSettlementPeriodsFilter{ShopID: "shop-1"})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	for i, p := range periods {
		assert.Equal(t, int32(5-i), p.PeriodNumber, "periods are listed newest first")
	}

	active := domain.SettlementPeriodStatusActive
	_, activeCount, err := h.svc.GetSettlementPeriods(ctx, &ports.ListSettlementPeriodsFilter{ShopAccountID: account.ID, Status: &active})
	require.NoError(t, err)
	assert.Equal(t, 1, activeCount)
}

func TestOpenSettlementPeriod_OnlyActiveIndexIsConflict(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	account, err := h.svc.CreateShopAccount(ctx, nil, &ports.CreateShopAccountRequest{
		ShopID: "shop-1", SellerAccountID: "seller-1",
	})
	require.NoError(t, err)

	h.store.FailOn("CreateSettlementPeriod", &pgconn.PgError{Code: "23505", ConstraintName: "settlement_periods_one_active_idx"})
	_, err = h.svc.OpenSettlementPeriod(ctx, nil, account.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodePeriodAlreadyActive))
	assert.True(t, domain.IsConflictError(err))

	h.store.FailOn("CreateSettlementPeriod", &pgconn.PgError{Code: "23505", ConstraintName: "settlement_periods_number_key"})
	_, err = h.svc.OpenSettlementPeriod(ctx, nil, account.ID)
	require.Error(t, err)
	assert.False(t, domain.IsConflictError(err), "a duplicate period number is not a lost open race")

	h.store.FailOn("CreateSettlementPeriod", nil)
	_, err = h.svc.OpenSettlementPeriod(ctx, nil, account.ID)
	require.NoError(t, err)
}

func TestRollover_FailureKeepsPeriodActive(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	account := h.openAccount(t, "shop-1")
	period := h.current(t, account.ID)

	h.store.FailOn("CreateSettlementPeriod", errors.New("disk full"))
	_, _, err := h.svc.RolloverSettlementPeriod(ctx, nil, period.ID)
	require.Error(t, err)
	h.store.FailOn("CreateSettlementPeriod", nil)

	still := h.current(t, account.ID)
	assert.Equal(t, period.ID, still.ID)
	assert.Equal(t, domain.SettlementPeriodStatusActive, still.Status)
	assert.Len(t, h.store.OutboxEvents(), 1, "only the original opened event survives")
}

func TestCloseSettlementPeriod_ConservesCompletedAmounts(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	account := h.openAccount(t, "shop-1")
	period := h.current(t, account.ID)

	h.record(t, account.ID, domain.TransactionTypeOrderIncome, "250.10", domain.TransactionStatusCompleted)
	h.record(t, account.ID, domain.TransactionTypeOrderIncome, "49.90", domain.TransactionStatusCompleted)
	h.record(t, account.ID, domain.TransactionTypeCommission, "30", domain.TransactionStatusCompleted)
	h.record(t, account.ID, domain.TransactionTypeDeliveryFee, "4.5", domain.TransactionStatusCompleted)
	h.record(t, account.ID, domain.TransactionTypeBonus, "10", domain.TransactionStatusCompleted)
	failed := h.record(t, account.ID, domain.TransactionTypeBonus, "500", domain.TransactionStatusPending)
	canceled := h.record(t, account.ID, domain.TransactionTypePayout, "500", domain.TransactionStatusPending)

	_, err := h.svc.UpdateTransaction(ctx, nil, &ports.UpdateTransactionRequest{
		TransactionID: failed.ID,
		Status:        ptr(domain.TransactionStatusFailed),
	})
	require.NoError(t, err)
	_, err = h.svc.CancelTransaction(ctx, nil, &ports.CancelTransactionRequest{TransactionID: canceled.ID, Reason: "duplicate"})
	require.NoError(t, err)

	closed, err := h.svc.CloseSettlementPeriod(ctx, nil, period.ID)
	require.NoError(t, err)

	assertDecimal(t, "300", closed.Amounts.OrderCompletions)
	assertDecimal(t, "30", closed.Amounts.Commissions)
	assertDecimal(t, "4.5", closed.Amounts.DeliveryFees)
	assertDecimal(t, "10", closed.Amounts.Bonuses)
	assertDecimal(t, "0", closed.Amounts.Payouts)
	assertDecimal(t, "275.5", closed.TotalAmount)
	assert.True(t, closed.TotalAmount.Equal(closed.Amounts.Net()))
}

func TestCloseSettlementPeriod_AbortsOnDirectionMismatch(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	account := h.openAccount(t, "shop-1")
	period := h.current(t, account.ID)

	txn := h.record(t, account.ID, domain.TransactionTypeOrderIncome, "10", domain.TransactionStatusCompleted)
	row, err := h.store.GetSettlementPeriodTransactionByID(ctx, uuid.MustParse(txn.ID))
	require.NoError(t, err)
	row.Direction = string(domain.DirectionDebit)
	h.store.PutTransaction(row)

	_, err = h.svc.CloseSettlementPeriod(ctx, nil, period.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeTxnDirectionMismatch))
	assert.Equal(t, domain.SettlementPeriodStatusActive, h.current(t, account.ID).Status)
}

func TestCloseSettlementPeriod_Errors(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.CloseSettlementPeriod(ctx, nil, uuid.NewString())
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodePeriodNotFound))

	_, err = h.svc.CloseSettlementPeriod(ctx, nil, "")
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeValidationMissingField))
}

func TestApproveSettlementPeriod_RequiresPendingApproval(t *testing.T) {
	h := newHarness(t)
	account := h.openAccount(t, "shop-1")
	period := h.current(t, account.ID)

	_, err := h.svc.ApproveSettlementPeriod(context.Background(), nil, &ports.ApproveSettlementPeriodRequest{SettlementPeriodID: period.ID})
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodePeriodInvalidState))
}

func TestApproveSettlementPeriod_IncludesLateCorrections(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	account := h.openAccount(t, "shop-1")
	period := h.current(t, account.ID)

	h.record(t, account.ID, domain.TransactionTypeOrderIncome, "100", domain.TransactionStatusCompleted)
	closed, err := h.svc.CloseSettlementPeriod(ctx, nil, period.ID)
	require.NoError(t, err)
	assertDecimal(t, "100", closed.TotalAmount)

	completed := domain.TransactionStatusCompleted
	_, err = h.svc.CreateTransaction(ctx, nil, &ports.CreateTransactionRequest{
		SettlementPeriodID: period.ID,
		Type:               domain.TransactionTypeCorrectionOut,
		Amount:             mustDecimal("15"),
		Status:             &completed,
	})
	require.NoError(t, err)

	// Frozen totals do not move until recompute or approval
	frozen, err := h.svc.GetSettlementPeriod(ctx, period.ID)
	require.NoError(t, err)
	assertDecimal(t, "100", frozen.TotalAmount)

	recomputed, err := h.svc.RecomputeSettlementPeriod(ctx, nil, period.ID)
	require.NoError(t, err)
	assertDecimal(t, "85", recomputed.TotalAmount)
	assertDecimal(t, "15", recomputed.Amounts.CorrectionsOut)

	released, err := h.svc.ApproveSettlementPeriod(ctx, nil, &ports.ApproveSettlementPeriodRequest{SettlementPeriodID: period.ID})
	require.NoError(t, err)
	assertDecimal(t, "85", *released.ReleasedAmount)
}

func TestApproveSettlementPeriod_RollsBackOnOutboxFailure(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	account := h.openAccount(t, "shop-1")
	period := h.current(t, account.ID)
	h.record(t, account.ID, domain.TransactionTypeOrderIncome, "100", domain.TransactionStatusCompleted)
	_, err := h.svc.CloseSettlementPeriod(ctx, nil, period.ID)
	require.NoError(t, err)

	h.store.FailOn("InsertLedgerOutboxEvent", errors.New("outbox unavailable"))
	_, err = h.svc.ApproveSettlementPeriod(ctx, nil, &ports.ApproveSettlementPeriodRequest{SettlementPeriodID: period.ID})
	require.Error(t, err)
	h.store.FailOn("InsertLedgerOutboxEvent", nil)

	stored, err := h.svc.GetSettlementPeriod(ctx, period.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SettlementPeriodStatusPendingApproval, stored.Status)
	assert.Nil(t, stored.ReleasedAmount)

	acct, err := h.svc.GetShopAccount(ctx, &ports.GetShopAccountRequest{ShopAccountID: account.ID})
	require.NoError(t, err)
	assertDecimal(t, "0", acct.LifetimeEarnings)
}

func TestRecomputeSettlementPeriod_RequiresPendingApproval(t *testing.T) {
	h := newHarness(t)
	account := h.openAccount(t, "shop-1")
	period := h.current(t, account.ID)

	_, err := h.svc.RecomputeSettlementPeriod(context.Background(), nil, period.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodePeriodInvalidState))
}

func TestUpdateSettlementPeriod_Comment(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	account := h.openAccount(t, "shop-1")
	period := h.current(t, account.ID)

	updated, err := h.svc.UpdateSettlementPeriod(ctx, nil, &ports.UpdateSettlementPeriodRequest{
		SettlementPeriodID: period.ID,
		Comment:            "holiday week",
	})
	require.NoError(t, err)
	assert.Equal(t, "holiday week", updated.Comment)
	assert.Equal(t, domain.SettlementPeriodStatusActive, updated.Status)

	_, err = h.svc.UpdateSettlementPeriod(ctx, nil, &ports.UpdateSettlementPeriodRequest{SettlementPeriodID: uuid.NewString()})
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodePeriodNotFound))
}

func TestGetCurrentPeriod_Errors(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.GetCurrentPeriod(ctx, uuid.NewString())
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeShopAccountNotFound))

	account, err := h.svc.CreateShopAccount(ctx, nil, &ports.CreateShopAccountRequest{ShopID: "shop-2", SellerAccountID: "s"})
	require.NoError(t, err)
	_, err = h.svc.GetCurrentPeriod(ctx, account.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeActivePeriodNotFound))
}

func TestListDueSettlementPeriods(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	fast, err := h.svc.CreateShopAccount(ctx, nil, &ports.CreateShopAccountRequest{
		ShopID: "fast", SellerAccountID: "s", FreezePeriodDays: ptr(1), OpenFirstPeriod: true,
	})
	require.NoError(t, err)
	h.openAccount(t, "slow")

	due, err := h.svc.ListDueSettlementPeriods(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, due)

	h.clock.Advance(24 * time.Hour)
	due, err = h.svc.ListDueSettlementPeriods(ctx, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, fast.ID, due[0].ShopAccountID)

	h.clock.Advance(14 * 24 * time.Hour)
	due, err = h.svc.ListDueSettlementPeriods(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, due, 2)
}

func TestGetSettlementPeriods_Filters(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.openAccount(t, "shop-a")
	h.openAccount(t, "shop-b")

	all, total, err := h.svc.GetSettlementPeriods(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, all, 2)

	onlyA, total, err := h.svc.GetSettlementPeriods(ctx, &ports.ListSettlementPeriodsFilter{ShopID: "shop-a"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, a.ID, onlyA[0].ShopAccountID)

	later := testStart.Add(time.Hour)
	_, total, err = h.svc.GetSettlementPeriods(ctx, &ports.ListSettlementPeriodsFilter{From: &later})
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	page, total, err := h.svc.GetSettlementPeriods(ctx, &ports.ListSettlementPeriodsFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, page, 1)

	bogus := domain.SettlementPeriodStatus("OPEN")
	_, _, err = h.svc.GetSettlementPeriods(ctx, &ports.ListSettlementPeriodsFilter{Status: &bogus})
	assert.True(t, domain.IsValidationError(err))
}
