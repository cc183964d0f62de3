package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/kevin07696/settlement-ledger/internal/adapters/database"
	"github.com/kevin07696/settlement-ledger/internal/db/sqlc"
	"github.com/kevin07696/settlement-ledger/internal/domain"
	"github.com/kevin07696/settlement-ledger/internal/services/ports"
	"github.com/kevin07696/settlement-ledger/pkg/timeutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Unique constraints that signal a lost race rather than a bug
const (
	constraintShopAccountShopID = "shop_accounts_shop_id_key"
	constraintOneActivePeriod   = "settlement_periods_one_active_idx"
)

// Defaults applied to new shop accounts
type Defaults struct {
	FreezePeriodDays  int
	CommissionPercent decimal.Decimal
}

// Option configures the ledger service
type Option func(*ledgerService)

// WithClock overrides the clock used to stamp records
func WithClock(clock timeutil.Clock) Option {
	return func(s *ledgerService) {
		s.clock = clock
	}
}

// WithDefaults overrides the account defaults
func WithDefaults(d Defaults) Option {
	return func(s *ledgerService) {
		s.defaults = d
	}
}

// ledgerService implements ports.LedgerService
type ledgerService struct {
	queries   sqlc.Querier
	txManager database.TransactionManager
	clock     timeutil.Clock
	defaults  Defaults
	logger    *zap.Logger
}

// NewLedgerService creates the settlement ledger. queries serves reads outside a
// unit of work; txManager opens one for mutations called without a tx.
func NewLedgerService(
	queries sqlc.Querier,
	txManager database.TransactionManager,
	logger *zap.Logger,
	opts ...Option,
) ports.LedgerService {
	s := &ledgerService{
		queries:   queries,
		txManager: txManager,
		clock:     timeutil.SystemClock{},
		defaults: Defaults{
			FreezePeriodDays:  domain.DefaultFreezePeriodDays,
			CommissionPercent: domain.DefaultCommissionPercent,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// inTx joins the caller's unit of work when tx is set, otherwise opens one
func (s *ledgerService) inTx(ctx context.Context, tx sqlc.Querier, fn func(q sqlc.Querier) error) error {
	if tx != nil {
		return fn(tx)
	}
	return s.txManager.WithTx(ctx, fn)
}

func parseID(field, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, domain.Errorf(domain.ErrorCodeValidationMissingField, "%s is required", field)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, domain.Errorf(domain.ErrorCodeValidationInvalidID, "%s %q is not a valid id", field, value)
	}
	return id, nil
}

// notFound maps pgx.ErrNoRows to a NotFound domain error and any other
// storage failure to INTERNAL_DATABASE_ERROR
func notFound(err error, code domain.ErrorCode, what string, id interface{}) error {
	if database.IsNoRows(err) {
		return domain.Errorf(code, "%s %v not found", what, id)
	}
	return domain.WrapError(domain.ErrorCodeDatabaseError, "failed to get "+what, err)
}

func normalizePage(limit, offset int) (int32, int32) {
	if limit <= 0 {
		limit = ports.DefaultPageLimit
	}
	if limit > ports.MaxPageLimit {
		limit = ports.MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return int32(limit), int32(offset)
}
