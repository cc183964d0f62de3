package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/kevin07696/settlement-ledger/internal/domain"
	"github.com/kevin07696/settlement-ledger/internal/services/ledger"
	"github.com/kevin07696/settlement-ledger/internal/testutil/fakes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCLI() (*ledgerCLI, *bytes.Buffer) {
	store := fakes.NewStore()
	out := &bytes.Buffer{}
	return &ledgerCLI{
		svc: ledger.NewLedgerService(store, store.TxManager(), zap.NewNop()),
		out: out,
	}, out
}

func runJSON(t *testing.T, cli *ledgerCLI, out *bytes.Buffer, args ...string) map[string]interface{} {
	t.Helper()
	out.Reset()
	require.NoError(t, cli.run(context.Background(), args))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded), out.String())
	return decoded
}

func TestCLI_AccountLifecycle(t *testing.T) {
	cli, out := newCLI()

	account := runJSON(t, cli, out, "-action=create-account", "-shop=shop-1", "-seller=seller-1", "-commission=12.5")
	accountID := account["id"].(string)
	periodID := account["current_settlement_period_id"].(string)
	assert.Equal(t, "12.5", account["commission_percent"])

	txn := runJSON(t, cli, out, "-action=correct", "-account="+accountID, "-type=correction_in", "-amount=25.50", "-comment=goodwill")
	assert.Equal(t, string(domain.TransactionTypeCorrectionIn), txn["type"])
	assert.Equal(t, string(domain.TransactionStatusCompleted), txn["status"])

	closed := runJSON(t, cli, out, "-action=close-period", "-period="+periodID)
	assert.Equal(t, string(domain.SettlementPeriodStatusPendingApproval), closed["status"])
	assert.Equal(t, "25.5", closed["total_amount"])

	released := runJSON(t, cli, out, "-action=approve-period", "-period="+periodID, "-comment=ok")
	assert.Equal(t, string(domain.SettlementPeriodStatusReleased), released["status"])
	assert.Equal(t, "25.5", released["released_amount"])

	opened := runJSON(t, cli, out, "-action=open-period", "-account="+accountID)
	assert.Equal(t, float64(2), opened["period_number"])

	periods := runJSON(t, cli, out, "-action=list-periods", "-account="+accountID)
	assert.Equal(t, float64(2), periods["total"])

	released2 := runJSON(t, cli, out, "-action=list-periods", "-account="+accountID, "-status=released")
	assert.Equal(t, float64(1), released2["total"])

	txns := runJSON(t, cli, out, "-action=list-transactions", "-account="+accountID, "-type=CORRECTION_IN")
	assert.Equal(t, float64(1), txns["total"])
}

func TestCLI_CorrectRejectsRegularTypes(t *testing.T) {
	cli, out := newCLI()
	account := runJSON(t, cli, out, "-action=create-account", "-shop=shop-1", "-seller=seller-1")

	err := cli.run(context.Background(), []string{
		"-action=correct", "-account=" + account["id"].(string), "-type=ORDER_INCOME", "-amount=10",
	})
	assert.ErrorContains(t, err, "CORRECTION_IN")

	err = cli.run(context.Background(), []string{
		"-action=correct", "-account=" + account["id"].(string), "-type=CORRECTION_OUT", "-amount=ten",
	})
	assert.ErrorContains(t, err, "-amount")
}

func TestCLI_RolloverAndCancel(t *testing.T) {
	cli, out := newCLI()
	account := runJSON(t, cli, out, "-action=create-account", "-shop=shop-1", "-seller=seller-1")
	periodID := account["current_settlement_period_id"].(string)

	txn := runJSON(t, cli, out, "-action=correct", "-period="+periodID, "-type=CORRECTION_OUT", "-amount=3", "-completed=false")
	assert.Equal(t, string(domain.TransactionStatusPending), txn["status"])

	canceled := runJSON(t, cli, out, "-action=cancel-transaction", "-txn="+txn["id"].(string), "-reason=duplicate")
	assert.Equal(t, string(domain.TransactionStatusCanceled), canceled["status"])

	rolled := runJSON(t, cli, out, "-action=rollover-period", "-period="+periodID)
	assert.Equal(t, float64(2), rolled["opened"].(map[string]interface{})["period_number"])

	recomputed := runJSON(t, cli, out, "-action=recompute-period", "-period="+periodID)
	assert.Equal(t, "0", recomputed["total_amount"])
}

func TestCLI_Usage(t *testing.T) {
	cli, out := newCLI()

	err := cli.run(context.Background(), nil)
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, out.String(), "Usage: ledgerctl")

	err = cli.run(context.Background(), []string{"-action=explode"})
	assert.ErrorContains(t, err, "unknown action")

	err = cli.run(context.Background(), []string{"-no-such-flag"})
	assert.Error(t, err)
}

func TestCLI_ServiceErrorsPropagate(t *testing.T) {
	cli, _ := newCLI()
	err := cli.run(context.Background(), []string{"-action=close-period", "-period=not-a-uuid"})
	assert.True(t, domain.IsValidationError(err))
}
