package cron

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kevin07696/settlement-ledger/internal/domain"
	"github.com/kevin07696/settlement-ledger/internal/services/ledger"
	"github.com/kevin07696/settlement-ledger/internal/services/outbox"
	"github.com/kevin07696/settlement-ledger/internal/services/ports"
	"github.com/kevin07696/settlement-ledger/internal/testutil/fakes"
	"github.com/kevin07696/settlement-ledger/pkg/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "cron-secret"

type stubDispatcher struct {
	result *outbox.Result
	err    error
	limit  int
}

func (d *stubDispatcher) Dispatch(_ context.Context, limit int) (*outbox.Result, error) {
	d.limit = limit
	return d.result, d.err
}

type fixture struct {
	store      *fakes.Store
	clock      *timeutil.ManualClock
	svc        ports.LedgerService
	dispatcher *stubDispatcher
	router     chi.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := fakes.NewStore()
	clock := timeutil.NewManualClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	svc := ledger.NewLedgerService(store, store.TxManager(), zap.NewNop(), ledger.WithClock(clock))
	dispatcher := &stubDispatcher{result: &outbox.Result{}}

	router := chi.NewRouter()
	NewSettlementHandler(svc, dispatcher, zap.NewNop(), testSecret).Register(router)
	return &fixture{store: store, clock: clock, svc: svc, dispatcher: dispatcher, router: router}
}

func (f *fixture) openAccount(t *testing.T, shopID string) *domain.ShopAccount {
	t.Helper()
	account, err := f.svc.CreateShopAccount(context.Background(), nil, &ports.CreateShopAccountRequest{
		ShopID:          shopID,
		SellerAccountID: "seller-" + shopID,
		OpenFirstPeriod: true,
	})
	require.NoError(t, err)
	return account
}

func (f *fixture) do(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authed {
		req.Header.Set("X-Cron-Secret", testSecret)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestRollover_ClosesDuePeriodsAndOpensNext(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	due := f.openAccount(t, "shop-due")
	f.clock.Advance(time.Duration(domain.DefaultFreezePeriodDays) * 24 * time.Hour)
	notDue := f.openAccount(t, "shop-fresh")

	rec := f.do(t, http.MethodPost, "/cron/settlement/rollover", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp RolloverResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Processed)
	assert.Equal(t, 1, resp.SuccessCount)

	current, err := f.svc.GetCurrentPeriod(ctx, due.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), current.PeriodNumber)

	first, err := f.svc.GetSettlementPeriod(ctx, *due.CurrentSettlementPeriodID)
	require.NoError(t, err)
	assert.Equal(t, domain.SettlementPeriodStatusPendingApproval, first.Status)

	untouched, err := f.svc.GetCurrentPeriod(ctx, notDue.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(1), untouched.PeriodNumber)
}

func TestRollover_PartialFailureReturns206(t *testing.T) {
	f := newFixture(t)
	f.openAccount(t, "shop-1")
	f.clock.Advance(30 * 24 * time.Hour)
	f.store.FailOn("InsertLedgerOutboxEvent", errors.New("disk full"))

	rec := f.do(t, http.MethodPost, "/cron/settlement/rollover", "", true)
	require.Equal(t, http.StatusPartialContent, rec.Code)

	var resp RolloverResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, 1, resp.FailureCount)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "disk full")
}

func TestRollover_ListFailure(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn("ListDueSettlementPeriods", errors.New("timeout"))

	rec := f.do(t, http.MethodPost, "/cron/settlement/rollover", "", true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRollover_BatchSizeValidation(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/cron/settlement/rollover", `{"batch_size": 0}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/cron/settlement/rollover", `{"batch_size": 5000}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/cron/settlement/rollover", `{not json`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDispatchEvents(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.result = &outbox.Result{Sent: 3}

	rec := f.do(t, http.MethodPost, "/cron/settlement/dispatch-events", `{"batch_size": 25}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 25, f.dispatcher.limit)

	var resp DispatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Sent)

	f.dispatcher.result = &outbox.Result{Sent: 1, Failed: 2}
	rec = f.do(t, http.MethodPost, "/cron/settlement/dispatch-events", "", true)
	assert.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Equal(t, defaultBatchSize, f.dispatcher.limit)

	f.dispatcher.err = errors.New("db down")
	rec = f.do(t, http.MethodPost, "/cron/settlement/dispatch-events", "", true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDispatchEvents_NotConfigured(t *testing.T) {
	store := fakes.NewStore()
	svc := ledger.NewLedgerService(store, store.TxManager(), zap.NewNop())
	router := chi.NewRouter()
	NewSettlementHandler(svc, nil, zap.NewNop(), testSecret).Register(router)

	req := httptest.NewRequest(http.MethodPost, "/cron/settlement/dispatch-events", nil)
	req.Header.Set("X-Cron-Secret", testSecret)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCronAuthentication(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/cron/settlement/rollover", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/cron/settlement/dispatch-events", nil)
	req.Header.Set("X-Cron-Secret", "wrong")
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/cron/settlement/dispatch-events", nil)
	req.Header.Set("Authorization", "Bearer "+testSecret)
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/cron/settlement/rollover", "", true)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = f.do(t, http.MethodGet, "/cron/health", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticateRequest_EmptySecretRejectsAll(t *testing.T) {
	h := NewSettlementHandler(nil, nil, zap.NewNop(), "")
	req := httptest.NewRequest(http.MethodPost, "/cron/settlement/rollover", nil)
	req.Header.Set("X-Cron-Secret", "")
	assert.False(t, h.authenticateRequest(req))
}
