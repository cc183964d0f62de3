// Package fakes provides an in-memory sqlc.Querier that mirrors the ledger's
// SQL semantics closely enough to exercise the service end to end.
package fakes

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kevin07696/settlement-ledger/internal/converters"
	"github.com/kevin07696/settlement-ledger/internal/db/sqlc"
	"github.com/shopspring/decimal"
)

const (
	statusActive          = "ACTIVE"
	statusPendingApproval = "PENDING_APPROVAL"
	statusReleased        = "RELEASED"
	statusCompleted       = "COMPLETED"

	// NUMERIC(19,4): four fractional digits, fifteen integral
	amountScale = 4
)

var amountLimit = decimal.New(1, 15)

type state struct {
	accounts     map[uuid.UUID]sqlc.ShopAccount
	periods      map[uuid.UUID]sqlc.SettlementPeriod
	txns         map[uuid.UUID]sqlc.SettlementPeriodTransaction
	outbox       map[uuid.UUID]sqlc.LedgerOutbox
	periodOrder  []uuid.UUID
	txnOrder     []uuid.UUID
	outboxOrder  []uuid.UUID
	accountOrder []uuid.UUID
}

func newState() state {
	return state{
		accounts: make(map[uuid.UUID]sqlc.ShopAccount),
		periods:  make(map[uuid.UUID]sqlc.SettlementPeriod),
		txns:     make(map[uuid.UUID]sqlc.SettlementPeriodTransaction),
		outbox:   make(map[uuid.UUID]sqlc.LedgerOutbox),
	}
}

// clone copies the tables. Rows are values and their pointer fields are never
// mutated in place, so a shallow row copy is enough.
func (s state) clone() state {
	c := newState()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.periods {
		c.periods[k] = v
	}
	for k, v := range s.txns {
		c.txns[k] = v
	}
	for k, v := range s.outbox {
		c.outbox[k] = v
	}
	c.periodOrder = append([]uuid.UUID(nil), s.periodOrder...)
	c.txnOrder = append([]uuid.UUID(nil), s.txnOrder...)
	c.outboxOrder = append([]uuid.UUID(nil), s.outboxOrder...)
	c.accountOrder = append([]uuid.UUID(nil), s.accountOrder...)
	return c
}

// Store is an in-memory sqlc.Querier. Units of work opened through TxManager
// are serialized and rolled back on error.
type Store struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	data     state
	failures map[string]error
}

var _ sqlc.Querier = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		data:     newState(),
		failures: make(map[string]error),
	}
}

// FailOn makes every later call to method return err until cleared with a nil err
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, method)
		return
	}
	s.failures[method] = err
}

func (s *Store) injected(method string) error {
	return s.failures[method]
}

// TxManager returns a database.TransactionManager over the store
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

// TxManager snapshots the store before fn and restores it if fn fails or panics
type TxManager struct {
	store *Store
}

func (m *TxManager) WithTx(ctx context.Context, fn func(sqlc.Querier) error) (err error) {
	s := m.store
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	rollback := func() {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err = fn(s); err != nil {
		rollback()
	}
	return err
}

// OutboxEvents returns every outbox row in insertion order
func (s *Store) OutboxEvents() []sqlc.LedgerOutbox {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]sqlc.LedgerOutbox, 0, len(s.data.outboxOrder))
	for _, id := range s.data.outboxOrder {
		events = append(events, s.data.outbox[id])
	}
	return events
}

// Transactions returns every transaction row in insertion order
func (s *Store) Transactions() []sqlc.SettlementPeriodTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]sqlc.SettlementPeriodTransaction, 0, len(s.data.txnOrder))
	for _, id := range s.data.txnOrder {
		rows = append(rows, s.data.txns[id])
	}
	return rows
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint, Message: fmt.Sprintf("duplicate key value violates unique constraint %q", constraint)}
}

func foreignKeyViolation(constraint string) error {
	return &pgconn.PgError{Code: "23503", ConstraintName: constraint, Message: "insert or update violates foreign key constraint"}
}

func numericOverflow() error {
	return &pgconn.PgError{Code: "22003", Message: "numeric field overflow"}
}

// toAmountColumn rounds like a NUMERIC(19,4) column and rejects what it cannot hold
func toAmountColumn(n pgtype.Numeric) (pgtype.Numeric, error) {
	d := converters.NumericToDecimal(n)
	if d.Abs().GreaterThanOrEqual(amountLimit) {
		return pgtype.Numeric{}, numericOverflow()
	}
	return converters.DecimalToNumeric(d.Round(amountScale)), nil
}

func checkViolation(constraint string) error {
	return &pgconn.PgError{Code: "23514", ConstraintName: constraint, Message: "new row violates check constraint"}
}

var zero = converters.DecimalToNumeric(decimal.Zero)

func addNumeric(a, b pgtype.Numeric) pgtype.Numeric {
	return converters.DecimalToNumeric(converters.NumericToDecimal(a).Add(converters.NumericToDecimal(b)))
}

func matchUUID(filter pgtype.UUID, id uuid.UUID) bool {
	return !filter.Valid || uuid.UUID(filter.Bytes) == id
}

func matchText(filter pgtype.Text, v string) bool {
	return !filter.Valid || filter.String == v
}

func page[T any](rows []T, limit, offset int32) []T {
	if int(offset) >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if int(limit) < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// Shop accounts

func (s *Store) CreateShopAccount(ctx context.Context, arg sqlc.CreateShopAccountParams) (sqlc.ShopAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("CreateShopAccount"); err != nil {
		return sqlc.ShopAccount{}, err
	}
	for _, a := range s.data.accounts {
		if a.ShopID == arg.ShopID {
			return sqlc.ShopAccount{}, uniqueViolation("shop_accounts_shop_id_key")
		}
	}
	if arg.FreezePeriodDays < 1 || arg.FreezePeriodDays > 365 {
		return sqlc.ShopAccount{}, checkViolation("shop_accounts_freeze_period_days_check")
	}

	row := sqlc.ShopAccount{
		ID:                arg.ID,
		DisplayID:         arg.DisplayID,
		ShopID:            arg.ShopID,
		SellerAccountID:   arg.SellerAccountID,
		Status:            arg.Status,
		FreezePeriodDays:  arg.FreezePeriodDays,
		CommissionPercent: arg.CommissionPercent,
		LifetimeEarnings:  zero,
		TotalPenalties:    zero,
		TotalCommissions:  zero,
		Comment:           arg.Comment,
		CreatedAt:         arg.CreatedAt,
		UpdatedAt:         arg.CreatedAt,
	}
	s.data.accounts[row.ID] = row
	s.data.accountOrder = append(s.data.accountOrder, row.ID)
	return row, nil
}

func (s *Store) getAccount(id uuid.UUID) (sqlc.ShopAccount, error) {
	a, ok := s.data.accounts[id]
	if !ok {
		return sqlc.ShopAccount{}, pgx.ErrNoRows
	}
	return a, nil
}

func (s *Store) GetShopAccountByID(ctx context.Context, id uuid.UUID) (sqlc.ShopAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("GetShopAccountByID"); err != nil {
		return sqlc.ShopAccount{}, err
	}
	return s.getAccount(id)
}

func (s *Store) GetShopAccountForUpdate(ctx context.Context, id uuid.UUID) (sqlc.ShopAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("GetShopAccountForUpdate"); err != nil {
		return sqlc.ShopAccount{}, err
	}
	return s.getAccount(id)
}

func (s *Store) GetShopAccountByShopID(ctx context.Context, shopID string) (sqlc.ShopAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.data.accounts {
		if a.ShopID == shopID {
			return a, nil
		}
	}
	return sqlc.ShopAccount{}, pgx.ErrNoRows
}

func (s *Store) ShopAccountExistsByShopID(ctx context.Context, shopID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.data.accounts {
		if a.ShopID == shopID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) UpdateShopAccount(ctx context.Context, arg sqlc.UpdateShopAccountParams) (sqlc.ShopAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.getAccount(arg.ID)
	if err != nil {
		return a, err
	}
	if arg.Status.Valid {
		a.Status = arg.Status.String
	}
	if arg.FreezePeriodDays.Valid {
		a.FreezePeriodDays = arg.FreezePeriodDays.Int32
	}
	if arg.CommissionPercent.Valid {
		a.CommissionPercent = arg.CommissionPercent
	}
	if arg.Comment.Valid {
		a.Comment = arg.Comment
	}
	a.UpdatedAt = arg.UpdatedAt
	s.data.accounts[a.ID] = a
	return a, nil
}

func (s *Store) SetCurrentSettlementPeriod(ctx context.Context, arg sqlc.SetCurrentSettlementPeriodParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("SetCurrentSettlementPeriod"); err != nil {
		return err
	}
	a, ok := s.data.accounts[arg.ID]
	if !ok {
		return nil
	}
	a.CurrentSettlementPeriodID = arg.CurrentSettlementPeriodID
	a.UpdatedAt = arg.UpdatedAt
	s.data.accounts[a.ID] = a
	return nil
}

func (s *Store) ClearCurrentSettlementPeriod(ctx context.Context, arg sqlc.ClearCurrentSettlementPeriodParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.data.accounts[arg.ID]
	if !ok || !a.CurrentSettlementPeriodID.Valid || !arg.CurrentSettlementPeriodID.Valid ||
		a.CurrentSettlementPeriodID.Bytes != arg.CurrentSettlementPeriodID.Bytes {
		return nil
	}
	a.CurrentSettlementPeriodID = pgtype.UUID{}
	a.UpdatedAt = arg.UpdatedAt
	s.data.accounts[a.ID] = a
	return nil
}

func (s *Store) AddShopAccountTotals(ctx context.Context, arg sqlc.AddShopAccountTotalsParams) (sqlc.ShopAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("AddShopAccountTotals"); err != nil {
		return sqlc.ShopAccount{}, err
	}
	a, err := s.getAccount(arg.ID)
	if err != nil {
		return a, err
	}
	a.LifetimeEarnings = addNumeric(a.LifetimeEarnings, arg.LifetimeEarnings)
	a.TotalPenalties = addNumeric(a.TotalPenalties, arg.TotalPenalties)
	a.TotalCommissions = addNumeric(a.TotalCommissions, arg.TotalCommissions)
	a.UpdatedAt = arg.UpdatedAt
	s.data.accounts[a.ID] = a
	return a, nil
}

// Settlement periods

func (s *Store) CreateSettlementPeriod(ctx context.Context, arg sqlc.CreateSettlementPeriodParams) (sqlc.SettlementPeriod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("CreateSettlementPeriod"); err != nil {
		return sqlc.SettlementPeriod{}, err
	}
	if _, ok := s.data.accounts[arg.ShopAccountID]; !ok {
		return sqlc.SettlementPeriod{}, foreignKeyViolation("settlement_periods_shop_account_id_fkey")
	}
	for _, p := range s.data.periods {
		if p.ShopAccountID != arg.ShopAccountID {
			continue
		}
		if p.PeriodNumber == arg.PeriodNumber {
			return sqlc.SettlementPeriod{}, uniqueViolation("settlement_periods_number_key")
		}
		if p.Status == statusActive {
			return sqlc.SettlementPeriod{}, uniqueViolation("settlement_periods_one_active_idx")
		}
	}

	row := sqlc.SettlementPeriod{
		ID:               arg.ID,
		DisplayID:        arg.DisplayID,
		ShopAccountID:    arg.ShopAccountID,
		PeriodNumber:     arg.PeriodNumber,
		Status:           statusActive,
		StartDate:        arg.StartDate,
		EndDate:          arg.EndDate,
		OrderCompletions: zero,
		Refunds:          zero,
		Penalties:        zero,
		Commissions:      zero,
		Bonuses:          zero,
		Payouts:          zero,
		DeliveryFees:     zero,
		CorrectionsIn:    zero,
		CorrectionsOut:   zero,
		TotalAmount:      zero,
		CreatedAt:        arg.CreatedAt,
		UpdatedAt:        arg.CreatedAt,
	}
	s.data.periods[row.ID] = row
	s.data.periodOrder = append(s.data.periodOrder, row.ID)
	return row, nil
}

func (s *Store) getPeriod(id uuid.UUID) (sqlc.SettlementPeriod, error) {
	p, ok := s.data.periods[id]
	if !ok {
		return sqlc.SettlementPeriod{}, pgx.ErrNoRows
	}
	return p, nil
}

func (s *Store) GetSettlementPeriodByID(ctx context.Context, id uuid.UUID) (sqlc.SettlementPeriod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getPeriod(id)
}

func (s *Store) GetSettlementPeriodForShare(ctx context.Context, id uuid.UUID) (sqlc.SettlementPeriod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getPeriod(id)
}

func (s *Store) GetSettlementPeriodForUpdate(ctx context.Context, id uuid.UUID) (sqlc.SettlementPeriod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("GetSettlementPeriodForUpdate"); err != nil {
		return sqlc.SettlementPeriod{}, err
	}
	return s.getPeriod(id)
}

func (s *Store) GetActiveSettlementPeriod(ctx context.Context, shopAccountID uuid.UUID) (sqlc.SettlementPeriod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.data.periods {
		if p.ShopAccountID == shopAccountID && p.Status == statusActive {
			return p, nil
		}
	}
	return sqlc.SettlementPeriod{}, pgx.ErrNoRows
}

func (s *Store) GetMaxPeriodNumber(ctx context.Context, shopAccountID uuid.UUID) (int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var highest int32
	for _, p := range s.data.periods {
		if p.ShopAccountID == shopAccountID && p.PeriodNumber > highest {
			highest = p.PeriodNumber
		}
	}
	return highest, nil
}

func (s *Store) CloseSettlementPeriod(ctx context.Context, arg sqlc.CloseSettlementPeriodParams) (sqlc.SettlementPeriod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("CloseSettlementPeriod"); err != nil {
		return sqlc.SettlementPeriod{}, err
	}
	p, ok := s.data.periods[arg.ID]
	if !ok || p.Status != statusActive {
		return sqlc.SettlementPeriod{}, pgx.ErrNoRows
	}
	p.Status = statusPendingApproval
	p.OrderCompletions = arg.OrderCompletions
	p.Refunds = arg.Refunds
	p.Penalties = arg.Penalties
	p.Commissions = arg.Commissions
	p.Bonuses = arg.Bonuses
	p.Payouts = arg.Payouts
	p.DeliveryFees = arg.DeliveryFees
	p.CorrectionsIn = arg.CorrectionsIn
	p.CorrectionsOut = arg.CorrectionsOut
	p.TotalAmount = arg.TotalAmount
	p.ClosedAt = arg.ClosedAt
	p.UpdatedAt = arg.ClosedAt
	s.data.periods[p.ID] = p
	return p, nil
}

func (s *Store) UpdateSettlementPeriodAmounts(ctx context.Context, arg sqlc.UpdateSettlementPeriodAmountsParams) (sqlc.SettlementPeriod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data.periods[arg.ID]
	if !ok || p.Status != statusPendingApproval {
		return sqlc.SettlementPeriod{}, pgx.ErrNoRows
	}
	p.OrderCompletions = arg.OrderCompletions
	p.Refunds = arg.Refunds
	p.Penalties = arg.Penalties
	p.Commissions = arg.Commissions
	p.Bonuses = arg.Bonuses
	p.Payouts = arg.Payouts
	p.DeliveryFees = arg.DeliveryFees
	p.CorrectionsIn = arg.CorrectionsIn
	p.CorrectionsOut = arg.CorrectionsOut
	p.TotalAmount = arg.TotalAmount
	p.UpdatedAt = arg.UpdatedAt
	s.data.periods[p.ID] = p
	return p, nil
}

func (s *Store) ReleaseSettlementPeriod(ctx context.Context, arg sqlc.ReleaseSettlementPeriodParams) (sqlc.SettlementPeriod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("ReleaseSettlementPeriod"); err != nil {
		return sqlc.SettlementPeriod{}, err
	}
	p, ok := s.data.periods[arg.ID]
	if !ok || p.Status != statusPendingApproval {
		return sqlc.SettlementPeriod{}, pgx.ErrNoRows
	}
	p.Status = statusReleased
	p.ReleasedAmount = p.TotalAmount
	p.ReleasedAt = arg.ReleasedAt
	if arg.Comment.Valid {
		p.Comment = arg.Comment
	}
	p.UpdatedAt = arg.ReleasedAt
	s.data.periods[p.ID] = p
	return p, nil
}

func (s *Store) UpdateSettlementPeriodComment(ctx context.Context, arg sqlc.UpdateSettlementPeriodCommentParams) (sqlc.SettlementPeriod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.getPeriod(arg.ID)
	if err != nil {
		return p, err
	}
	p.Comment = arg.Comment
	p.UpdatedAt = arg.UpdatedAt
	s.data.periods[p.ID] = p
	return p, nil
}

func (s *Store) filterPeriods(accountID pgtype.UUID, shopID, status pgtype.Text, start, end pgtype.Timestamptz) []sqlc.SettlementPeriod {
	var rows []sqlc.SettlementPeriod
	for _, id := range s.data.periodOrder {
		p := s.data.periods[id]
		if !matchUUID(accountID, p.ShopAccountID) || !matchText(status, p.Status) {
			continue
		}
		if shopID.Valid && s.data.accounts[p.ShopAccountID].ShopID != shopID.String {
			continue
		}
		if start.Valid && p.StartDate.Time.Before(start.Time) {
			continue
		}
		if end.Valid && !p.StartDate.Time.Before(end.Time) {
			continue
		}
		rows = append(rows, p)
	}
	return rows
}

func (s *Store) ListSettlementPeriods(ctx context.Context, arg sqlc.ListSettlementPeriodsParams) ([]sqlc.SettlementPeriod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.filterPeriods(arg.ShopAccountID, arg.ShopID, arg.Status, arg.StartDate, arg.EndDate)
	sort.SliceStable(rows, func(i, j int) bool {
		if c := bytes.Compare(rows[i].ShopAccountID[:], rows[j].ShopAccountID[:]); c != 0 {
			return c < 0
		}
		return rows[i].PeriodNumber > rows[j].PeriodNumber
	})
	return page(rows, arg.LimitVal, arg.OffsetVal), nil
}

func (s *Store) CountSettlementPeriods(ctx context.Context, arg sqlc.CountSettlementPeriodsParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.filterPeriods(arg.ShopAccountID, arg.ShopID, arg.Status, arg.StartDate, arg.EndDate))), nil
}

func (s *Store) ListDueSettlementPeriods(ctx context.Context, arg sqlc.ListDueSettlementPeriodsParams) ([]sqlc.SettlementPeriod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("ListDueSettlementPeriods"); err != nil {
		return nil, err
	}
	var rows []sqlc.SettlementPeriod
	for _, id := range s.data.periodOrder {
		p := s.data.periods[id]
		if p.Status == statusActive && !p.EndDate.Time.After(arg.AsOf.Time) {
			rows = append(rows, p)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].EndDate.Time.Before(rows[j].EndDate.Time)
	})
	return page(rows, arg.LimitVal, 0), nil
}

// Settlement period transactions

func (s *Store) CreateSettlementPeriodTransaction(ctx context.Context, arg sqlc.CreateSettlementPeriodTransactionParams) (sqlc.SettlementPeriodTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("CreateSettlementPeriodTransaction"); err != nil {
		return sqlc.SettlementPeriodTransaction{}, err
	}
	if _, ok := s.data.periods[arg.SettlementPeriodID]; !ok {
		return sqlc.SettlementPeriodTransaction{}, foreignKeyViolation("settlement_period_transactions_settlement_period_id_fkey")
	}
	if _, ok := s.data.accounts[arg.ShopAccountID]; !ok {
		return sqlc.SettlementPeriodTransaction{}, foreignKeyViolation("settlement_period_transactions_shop_account_id_fkey")
	}
	if arg.ReferenceTransactionID.Valid {
		if _, ok := s.data.txns[arg.ReferenceTransactionID.Bytes]; !ok {
			return sqlc.SettlementPeriodTransaction{}, foreignKeyViolation("settlement_period_transactions_reference_transaction_id_fkey")
		}
	}
	amount, err := toAmountColumn(arg.Amount)
	if err != nil {
		return sqlc.SettlementPeriodTransaction{}, err
	}
	if converters.NumericToDecimal(amount).IsNegative() {
		return sqlc.SettlementPeriodTransaction{}, checkViolation("settlement_period_transactions_amount_check")
	}

	row := sqlc.SettlementPeriodTransaction{
		ID:                     arg.ID,
		DisplayID:              arg.DisplayID,
		SettlementPeriodID:     arg.SettlementPeriodID,
		ShopAccountID:          arg.ShopAccountID,
		Type:                   arg.Type,
		Direction:              arg.Direction,
		Amount:                 amount,
		Status:                 arg.Status,
		Description:            arg.Description,
		Comment:                arg.Comment,
		OrderID:                arg.OrderID,
		PenaltyID:              arg.PenaltyID,
		RefundID:               arg.RefundID,
		BonusID:                arg.BonusID,
		PayoutID:               arg.PayoutID,
		ReferenceTransactionID: arg.ReferenceTransactionID,
		CompletedAt:            arg.CompletedAt,
		CreatedAt:              arg.CreatedAt,
		UpdatedAt:              arg.CreatedAt,
	}
	s.data.txns[row.ID] = row
	s.data.txnOrder = append(s.data.txnOrder, row.ID)
	return row, nil
}

// PutTransaction stores row as-is, bypassing the checks CreateSettlementPeriodTransaction applies
func (s *Store) PutTransaction(row sqlc.SettlementPeriodTransaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.txns[row.ID]; !ok {
		s.data.txnOrder = append(s.data.txnOrder, row.ID)
	}
	s.data.txns[row.ID] = row
}

func (s *Store) getTxn(id uuid.UUID) (sqlc.SettlementPeriodTransaction, error) {
	t, ok := s.data.txns[id]
	if !ok {
		return sqlc.SettlementPeriodTransaction{}, pgx.ErrNoRows
	}
	return t, nil
}

func (s *Store) GetSettlementPeriodTransactionByID(ctx context.Context, id uuid.UUID) (sqlc.SettlementPeriodTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getTxn(id)
}

func (s *Store) GetSettlementPeriodTransactionForUpdate(ctx context.Context, id uuid.UUID) (sqlc.SettlementPeriodTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getTxn(id)
}

func (s *Store) UpdateSettlementPeriodTransaction(ctx context.Context, arg sqlc.UpdateSettlementPeriodTransactionParams) (sqlc.SettlementPeriodTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("UpdateSettlementPeriodTransaction"); err != nil {
		return sqlc.SettlementPeriodTransaction{}, err
	}
	t, err := s.getTxn(arg.ID)
	if err != nil {
		return t, err
	}
	t.Status = arg.Status
	if arg.Description.Valid {
		t.Description = arg.Description
	}
	if arg.Comment.Valid {
		t.Comment = arg.Comment
	}
	if arg.CancelReason.Valid {
		t.CancelReason = arg.CancelReason
	}
	if arg.CompletedAt.Valid {
		t.CompletedAt = arg.CompletedAt
	}
	if arg.CanceledAt.Valid {
		t.CanceledAt = arg.CanceledAt
	}
	t.UpdatedAt = arg.UpdatedAt
	s.data.txns[t.ID] = t
	return t, nil
}

func (s *Store) MoveSettlementPeriodTransaction(ctx context.Context, arg sqlc.MoveSettlementPeriodTransactionParams) (sqlc.SettlementPeriodTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.getTxn(arg.ID)
	if err != nil {
		return t, err
	}
	if _, ok := s.data.periods[arg.SettlementPeriodID]; !ok {
		return sqlc.SettlementPeriodTransaction{}, foreignKeyViolation("settlement_period_transactions_settlement_period_id_fkey")
	}
	t.SettlementPeriodID = arg.SettlementPeriodID
	t.UpdatedAt = arg.UpdatedAt
	s.data.txns[t.ID] = t
	return t, nil
}

func (s *Store) ListCompletedTransactionsByPeriod(ctx context.Context, settlementPeriodID uuid.UUID) ([]sqlc.SettlementPeriodTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("ListCompletedTransactionsByPeriod"); err != nil {
		return nil, err
	}
	rows := []sqlc.SettlementPeriodTransaction{}
	for _, id := range s.data.txnOrder {
		t := s.data.txns[id]
		if t.SettlementPeriodID == settlementPeriodID && t.Status == statusCompleted {
			rows = append(rows, t)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.Time.Before(rows[j].CreatedAt.Time)
	})
	return rows, nil
}

func (s *Store) filterTxns(periodID, accountID pgtype.UUID, txnType, status pgtype.Text, after, before pgtype.Timestamptz) []sqlc.SettlementPeriodTransaction {
	rows := []sqlc.SettlementPeriodTransaction{}
	for _, id := range s.data.txnOrder {
		t := s.data.txns[id]
		if !matchUUID(periodID, t.SettlementPeriodID) || !matchUUID(accountID, t.ShopAccountID) {
			continue
		}
		if !matchText(txnType, t.Type) || !matchText(status, t.Status) {
			continue
		}
		if after.Valid && t.CreatedAt.Time.Before(after.Time) {
			continue
		}
		if before.Valid && !t.CreatedAt.Time.Before(before.Time) {
			continue
		}
		rows = append(rows, t)
	}
	return rows
}

func (s *Store) ListSettlementPeriodTransactions(ctx context.Context, arg sqlc.ListSettlementPeriodTransactionsParams) ([]sqlc.SettlementPeriodTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.filterTxns(arg.SettlementPeriodID, arg.ShopAccountID, arg.Type, arg.Status, arg.CreatedAfter, arg.CreatedBefore)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.Time.After(rows[j].CreatedAt.Time)
	})
	return page(rows, arg.LimitVal, arg.OffsetVal), nil
}

func (s *Store) CountSettlementPeriodTransactions(ctx context.Context, arg sqlc.CountSettlementPeriodTransactionsParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.filterTxns(arg.SettlementPeriodID, arg.ShopAccountID, arg.Type, arg.Status, arg.CreatedAfter, arg.CreatedBefore))), nil
}

// Outbox

func (s *Store) InsertLedgerOutboxEvent(ctx context.Context, arg sqlc.InsertLedgerOutboxEventParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("InsertLedgerOutboxEvent"); err != nil {
		return err
	}
	s.data.outbox[arg.ID] = sqlc.LedgerOutbox{
		ID:            arg.ID,
		EventType:     arg.EventType,
		AggregateID:   arg.AggregateID,
		ShopAccountID: arg.ShopAccountID,
		Payload:       arg.Payload,
		Status:        "pending",
		CreatedAt:     arg.CreatedAt,
	}
	s.data.outboxOrder = append(s.data.outboxOrder, arg.ID)
	return nil
}

func (s *Store) ListPendingLedgerOutboxEvents(ctx context.Context, arg sqlc.ListPendingLedgerOutboxEventsParams) ([]sqlc.LedgerOutbox, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("ListPendingLedgerOutboxEvents"); err != nil {
		return nil, err
	}
	rows := []sqlc.LedgerOutbox{}
	for _, id := range s.data.outboxOrder {
		e := s.data.outbox[id]
		if (e.Status == "pending" || e.Status == "failed") && e.Attempts < arg.MaxAttempts {
			rows = append(rows, e)
		}
	}
	return page(rows, arg.LimitVal, 0), nil
}

func (s *Store) MarkLedgerOutboxEventSent(ctx context.Context, arg sqlc.MarkLedgerOutboxEventSentParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("MarkLedgerOutboxEventSent"); err != nil {
		return err
	}
	e, ok := s.data.outbox[arg.ID]
	if !ok {
		return nil
	}
	e.Status = "sent"
	e.Attempts++
	e.LastError = pgtype.Text{}
	e.SentAt = arg.SentAt
	s.data.outbox[e.ID] = e
	return nil
}

func (s *Store) MarkLedgerOutboxEventFailed(ctx context.Context, arg sqlc.MarkLedgerOutboxEventFailedParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("MarkLedgerOutboxEventFailed"); err != nil {
		return err
	}
	e, ok := s.data.outbox[arg.ID]
	if !ok {
		return nil
	}
	e.Status = "failed"
	e.Attempts++
	e.LastError = arg.LastError
	s.data.outbox[e.ID] = e
	return nil
}
