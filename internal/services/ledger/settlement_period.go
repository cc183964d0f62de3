package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kevin07696/settlement-ledger/internal/adapters/database"
	"github.com/kevin07696/settlement-ledger/internal/converters"
	"github.com/kevin07696/settlement-ledger/internal/db/sqlc"
	"github.com/kevin07696/settlement-ledger/internal/domain"
	"github.com/kevin07696/settlement-ledger/internal/services/ports"
	"github.com/kevin07696/settlement-ledger/pkg/observability"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OpenSettlementPeriod starts the next ACTIVE period for an account
func (s *ledgerService) OpenSettlementPeriod(ctx context.Context, tx sqlc.Querier, shopAccountID string) (*domain.SettlementPeriod, error) {
	accountID, err := parseID("shop_account_id", shopAccountID)
	if err != nil {
		return nil, err
	}

	var period *domain.SettlementPeriod
	err = s.inTx(ctx, tx, func(q sqlc.Querier) error {
		var err error
		period, err = s.openPeriod(ctx, q, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}

	observability.RecordPeriodTransition("opened")
	return period, nil
}

// openPeriod must run inside a unit of work. The account row lock serializes
// concurrent opens; the partial unique index catches anything that slips past.
func (s *ledgerService) openPeriod(ctx context.Context, q sqlc.Querier, accountID uuid.UUID) (*domain.SettlementPeriod, error) {
	account, err := q.GetShopAccountForUpdate(ctx, accountID)
	if err != nil {
		return nil, notFound(err, domain.ErrorCodeShopAccountNotFound, "shop account", accountID)
	}

	active, err := q.GetActiveSettlementPeriod(ctx, accountID)
	switch {
	case err == nil:
		return nil, domain.Errorf(domain.ErrorCodePeriodAlreadyActive,
			"shop account %s already has active settlement period %s", accountID, active.ID)
	case !database.IsNoRows(err):
		return nil, fmt.Errorf("failed to check active settlement period: %w", err)
	}

	maxNumber, err := q.GetMaxPeriodNumber(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get last period number: %w", err)
	}

	now := s.clock.Now()
	row, err := q.CreateSettlementPeriod(ctx, sqlc.CreateSettlementPeriodParams{
		ID:            uuid.New(),
		DisplayID:     domain.NewDisplayID(domain.SettlementPeriodIDPrefix, now),
		ShopAccountID: accountID,
		PeriodNumber:  maxNumber + 1,
		StartDate:     converters.ToTimestamptz(now),
		EndDate:       converters.ToTimestamptz(domain.PeriodEndDate(now, int(account.FreezePeriodDays))),
		CreatedAt:     converters.ToTimestamptz(now),
	})
	if err != nil {
		if database.IsUniqueViolation(err, constraintOneActivePeriod) {
			return nil, domain.Errorf(domain.ErrorCodePeriodAlreadyActive,
				"shop account %s already has an active settlement period", accountID)
		}
		return nil, fmt.Errorf("failed to create settlement period: %w", err)
	}

	if err := q.SetCurrentSettlementPeriod(ctx, sqlc.SetCurrentSettlementPeriodParams{
		ID:                        accountID,
		CurrentSettlementPeriodID: pgtype.UUID{Bytes: row.ID, Valid: true},
		UpdatedAt:                 converters.ToTimestamptz(now),
	}); err != nil {
		return nil, fmt.Errorf("failed to set current settlement period: %w", err)
	}

	period := sqlcSettlementPeriodToDomain(&row)
	if err := s.enqueueEvent(ctx, q, domain.EventSettlementPeriodOpened, period, now); err != nil {
		return nil, err
	}

	s.logger.Info("Settlement period opened",
		zap.String("shop_account_id", period.ShopAccountID),
		zap.String("settlement_period_id", period.ID),
		zap.Int32("period_number", period.PeriodNumber),
		zap.Time("end_date", period.EndDate),
	)

	return period, nil
}

// CloseSettlementPeriod freezes the period's totals and hands it to approval
func (s *ledgerService) CloseSettlementPeriod(ctx context.Context, tx sqlc.Querier, settlementPeriodID string) (*domain.SettlementPeriod, error) {
	periodID, err := parseID("settlement_period_id", settlementPeriodID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var period *domain.SettlementPeriod
	err = s.inTx(ctx, tx, func(q sqlc.Querier) error {
		var err error
		period, err = s.closePeriod(ctx, q, periodID)
		return err
	})
	if err != nil {
		return nil, err
	}

	observability.RecordPeriodTransition("closed")
	observability.ObservePeriodClose(time.Since(start).Seconds())
	return period, nil
}

func (s *ledgerService) closePeriod(ctx context.Context, q sqlc.Querier, periodID uuid.UUID) (*domain.SettlementPeriod, error) {
	row, err := q.GetSettlementPeriodForUpdate(ctx, periodID)
	if err != nil {
		return nil, notFound(err, domain.ErrorCodePeriodNotFound, "settlement period", periodID)
	}
	current := sqlcSettlementPeriodToDomain(&row)
	if err := current.CanClose(); err != nil {
		return nil, err
	}

	amounts, total, err := s.aggregate(ctx, q, periodID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	closed, err := q.CloseSettlementPeriod(ctx, sqlc.CloseSettlementPeriodParams{
		OrderCompletions: converters.DecimalToNumeric(amounts.OrderCompletions),
		Refunds:          converters.DecimalToNumeric(amounts.Refunds),
		Penalties:        converters.DecimalToNumeric(amounts.Penalties),
		Commissions:      converters.DecimalToNumeric(amounts.Commissions),
		Bonuses:          converters.DecimalToNumeric(amounts.Bonuses),
		Payouts:          converters.DecimalToNumeric(amounts.Payouts),
		DeliveryFees:     converters.DecimalToNumeric(amounts.DeliveryFees),
		CorrectionsIn:    converters.DecimalToNumeric(amounts.CorrectionsIn),
		CorrectionsOut:   converters.DecimalToNumeric(amounts.CorrectionsOut),
		TotalAmount:      converters.DecimalToNumeric(total),
		ClosedAt:         converters.ToTimestamptz(now),
		ID:               periodID,
	})
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.Errorf(domain.ErrorCodePeriodInvalidState, "settlement period %s is no longer active", periodID)
		}
		return nil, fmt.Errorf("failed to close settlement period: %w", err)
	}

	// The pointer is weak: only clear it if it still names this period
	if err := q.ClearCurrentSettlementPeriod(ctx, sqlc.ClearCurrentSettlementPeriodParams{
		ID:                        closed.ShopAccountID,
		CurrentSettlementPeriodID: pgtype.UUID{Bytes: closed.ID, Valid: true},
		UpdatedAt:                 converters.ToTimestamptz(now),
	}); err != nil {
		return nil, fmt.Errorf("failed to clear current settlement period: %w", err)
	}

	period := sqlcSettlementPeriodToDomain(&closed)
	if err := s.enqueueEvent(ctx, q, domain.EventSettlementPeriodClosed, period, now); err != nil {
		return nil, err
	}

	s.logger.Info("Settlement period closed",
		zap.String("shop_account_id", period.ShopAccountID),
		zap.String("settlement_period_id", period.ID),
		zap.Int32("period_number", period.PeriodNumber),
		zap.String("total_amount", period.TotalAmount.String()),
	)

	return period, nil
}

// ApproveSettlementPeriod releases a PENDING_APPROVAL period. Totals are
// re-aggregated first so corrections added during review are included.
func (s *ledgerService) ApproveSettlementPeriod(ctx context.Context, tx sqlc.Querier, req *ports.ApproveSettlementPeriodRequest) (*domain.SettlementPeriod, error) {
	periodID, err := parseID("settlement_period_id", req.SettlementPeriodID)
	if err != nil {
		return nil, err
	}

	var period *domain.SettlementPeriod
	err = s.inTx(ctx, tx, func(q sqlc.Querier) error {
		row, err := q.GetSettlementPeriodForUpdate(ctx, periodID)
		if err != nil {
			return notFound(err, domain.ErrorCodePeriodNotFound, "settlement period", periodID)
		}
		if err := sqlcSettlementPeriodToDomain(&row).CanApprove(); err != nil {
			return err
		}

		if _, err := s.recompute(ctx, q, periodID); err != nil {
			return err
		}

		now := s.clock.Now()
		released, err := q.ReleaseSettlementPeriod(ctx, sqlc.ReleaseSettlementPeriodParams{
			ReleasedAt: converters.ToTimestamptz(now),
			Comment:    converters.ToNullableText(req.Comment),
			ID:         periodID,
		})
		if err != nil {
			if database.IsNoRows(err) {
				return domain.Errorf(domain.ErrorCodePeriodInvalidState, "settlement period %s is no longer pending approval", periodID)
			}
			return fmt.Errorf("failed to release settlement period: %w", err)
		}
		period = sqlcSettlementPeriodToDomain(&released)

		if _, err := q.AddShopAccountTotals(ctx, sqlc.AddShopAccountTotalsParams{
			LifetimeEarnings: released.ReleasedAmount,
			TotalPenalties:   released.Penalties,
			TotalCommissions: released.Commissions,
			UpdatedAt:        converters.ToTimestamptz(now),
			ID:               released.ShopAccountID,
		}); err != nil {
			return notFound(err, domain.ErrorCodeShopAccountNotFound, "shop account", released.ShopAccountID)
		}

		return s.enqueueEvent(ctx, q, domain.EventSettlementPeriodReleased, period, now)
	})
	if err != nil {
		return nil, err
	}

	releasedAmount, _ := period.ReleasedAmount.Float64()
	observability.RecordPeriodRelease(releasedAmount)

	s.logger.Info("Settlement period released",
		zap.String("shop_account_id", period.ShopAccountID),
		zap.String("settlement_period_id", period.ID),
		zap.Int32("period_number", period.PeriodNumber),
		zap.String("released_amount", period.ReleasedAmount.String()),
	)

	return period, nil
}

// UpdateSettlementPeriod changes the advisory comment; allowed in any status
func (s *ledgerService) UpdateSettlementPeriod(ctx context.Context, tx sqlc.Querier, req *ports.UpdateSettlementPeriodRequest) (*domain.SettlementPeriod, error) {
	periodID, err := parseID("settlement_period_id", req.SettlementPeriodID)
	if err != nil {
		return nil, err
	}

	var period *domain.SettlementPeriod
	err = s.inTx(ctx, tx, func(q sqlc.Querier) error {
		row, err := q.UpdateSettlementPeriodComment(ctx, sqlc.UpdateSettlementPeriodCommentParams{
			ID:        periodID,
			Comment:   converters.NullText(req.Comment),
			UpdatedAt: converters.ToTimestamptz(s.clock.Now()),
		})
		if err != nil {
			return notFound(err, domain.ErrorCodePeriodNotFound, "settlement period", periodID)
		}
		period = sqlcSettlementPeriodToDomain(&row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return period, nil
}

// RecomputeSettlementPeriod refreshes the frozen totals of a PENDING_APPROVAL period
func (s *ledgerService) RecomputeSettlementPeriod(ctx context.Context, tx sqlc.Querier, settlementPeriodID string) (*domain.SettlementPeriod, error) {
	periodID, err := parseID("settlement_period_id", settlementPeriodID)
	if err != nil {
		return nil, err
	}

	var period *domain.SettlementPeriod
	err = s.inTx(ctx, tx, func(q sqlc.Querier) error {
		row, err := q.GetSettlementPeriodForUpdate(ctx, periodID)
		if err != nil {
			return notFound(err, domain.ErrorCodePeriodNotFound, "settlement period", periodID)
		}
		if row.Status != string(domain.SettlementPeriodStatusPendingApproval) {
			return domain.Errorf(domain.ErrorCodePeriodInvalidState,
				"settlement period %s cannot be recomputed from status %s", periodID, row.Status)
		}
		period, err = s.recompute(ctx, q, periodID)
		return err
	})
	if err != nil {
		return nil, err
	}

	observability.RecordPeriodTransition("recomputed")
	s.logger.Info("Settlement period recomputed",
		zap.String("settlement_period_id", period.ID),
		zap.String("total_amount", period.TotalAmount.String()),
	)

	return period, nil
}

// recompute expects the period row to be locked by the caller
func (s *ledgerService) recompute(ctx context.Context, q sqlc.Querier, periodID uuid.UUID) (*domain.SettlementPeriod, error) {
	amounts, total, err := s.aggregate(ctx, q, periodID)
	if err != nil {
		return nil, err
	}

	row, err := q.UpdateSettlementPeriodAmounts(ctx, sqlc.UpdateSettlementPeriodAmountsParams{
		OrderCompletions: converters.DecimalToNumeric(amounts.OrderCompletions),
		Refunds:          converters.DecimalToNumeric(amounts.Refunds),
		Penalties:        converters.DecimalToNumeric(amounts.Penalties),
		Commissions:      converters.DecimalToNumeric(amounts.Commissions),
		Bonuses:          converters.DecimalToNumeric(amounts.Bonuses),
		Payouts:          converters.DecimalToNumeric(amounts.Payouts),
		DeliveryFees:     converters.DecimalToNumeric(amounts.DeliveryFees),
		CorrectionsIn:    converters.DecimalToNumeric(amounts.CorrectionsIn),
		CorrectionsOut:   converters.DecimalToNumeric(amounts.CorrectionsOut),
		TotalAmount:      converters.DecimalToNumeric(total),
		UpdatedAt:        converters.ToTimestamptz(s.clock.Now()),
		ID:               periodID,
	})
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.Errorf(domain.ErrorCodePeriodInvalidState, "settlement period %s is not pending approval", periodID)
		}
		return nil, fmt.Errorf("failed to update settlement period amounts: %w", err)
	}

	return sqlcSettlementPeriodToDomain(&row), nil
}

func (s *ledgerService) aggregate(ctx context.Context, q sqlc.Querier, periodID uuid.UUID) (domain.SettlementAmounts, decimal.Decimal, error) {
	rows, err := q.ListCompletedTransactionsByPeriod(ctx, periodID)
	if err != nil {
		return domain.SettlementAmounts{}, decimal.Zero, fmt.Errorf("failed to list completed transactions: %w", err)
	}

	amounts, total, err := domain.Aggregate(sqlcTransactionsToDomain(rows))
	if err != nil {
		s.logger.Error("Settlement period contains an inconsistent transaction",
			zap.String("settlement_period_id", periodID.String()),
			zap.Error(err),
		)
		return domain.SettlementAmounts{}, decimal.Zero, err
	}
	return amounts, total, nil
}

// RolloverSettlementPeriod closes a period and opens the account's next one in one unit of work
func (s *ledgerService) RolloverSettlementPeriod(ctx context.Context, tx sqlc.Querier, settlementPeriodID string) (*domain.SettlementPeriod, *domain.SettlementPeriod, error) {
	periodID, err := parseID("settlement_period_id", settlementPeriodID)
	if err != nil {
		return nil, nil, err
	}

	var closed, opened *domain.SettlementPeriod
	err = s.inTx(ctx, tx, func(q sqlc.Querier) error {
		var err error
		closed, err = s.closePeriod(ctx, q, periodID)
		if err != nil {
			return err
		}
		accountID, err := uuid.Parse(closed.ShopAccountID)
		if err != nil {
			return fmt.Errorf("invalid shop account id on period %s: %w", closed.ID, err)
		}
		opened, err = s.openPeriod(ctx, q, accountID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	observability.RecordPeriodTransition("closed")
	observability.RecordPeriodTransition("opened")

	return closed, opened, nil
}

// GetSettlementPeriod retrieves a period by id
func (s *ledgerService) GetSettlementPeriod(ctx context.Context, settlementPeriodID string) (*domain.SettlementPeriod, error) {
	periodID, err := parseID("settlement_period_id", settlementPeriodID)
	if err != nil {
		return nil, err
	}

	row, err := s.queries.GetSettlementPeriodByID(ctx, periodID)
	if err != nil {
		return nil, notFound(err, domain.ErrorCodePeriodNotFound, "settlement period", periodID)
	}
	return sqlcSettlementPeriodToDomain(&row), nil
}

// GetSettlementPeriods lists periods matching filter along with the total match count
func (s *ledgerService) GetSettlementPeriods(ctx context.Context, filter *ports.ListSettlementPeriodsFilter) ([]*domain.SettlementPeriod, int, error) {
	if filter == nil {
		filter = &ports.ListSettlementPeriodsFilter{}
	}

	var accountID pgtype.UUID
	if filter.ShopAccountID != "" {
		id, err := parseID("shop_account_id", filter.ShopAccountID)
		if err != nil {
			return nil, 0, err
		}
		accountID = pgtype.UUID{Bytes: id, Valid: true}
	}

	var status pgtype.Text
	if filter.Status != nil {
		if !filter.Status.IsValid() {
			return nil, 0, domain.Errorf(domain.ErrorCodeValidationFailed, "invalid settlement period status %q", *filter.Status)
		}
		status = pgtype.Text{String: string(*filter.Status), Valid: true}
	}

	limit, offset := normalizePage(filter.Limit, filter.Offset)
	shopID := converters.NullText(filter.ShopID)
	from := converters.ToNullableTimestamptz(filter.From)
	to := converters.ToNullableTimestamptz(filter.To)

	rows, err := s.queries.ListSettlementPeriods(ctx, sqlc.ListSettlementPeriodsParams{
		ShopAccountID: accountID,
		ShopID:        shopID,
		Status:        status,
		StartDate:     from,
		EndDate:       to,
		LimitVal:      limit,
		OffsetVal:     offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settlement periods: %w", err)
	}

	count, err := s.queries.CountSettlementPeriods(ctx, sqlc.CountSettlementPeriodsParams{
		ShopAccountID: accountID,
		ShopID:        shopID,
		Status:        status,
		StartDate:     from,
		EndDate:       to,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count settlement periods: %w", err)
	}

	periods := make([]*domain.SettlementPeriod, len(rows))
	for i := range rows {
		periods[i] = sqlcSettlementPeriodToDomain(&rows[i])
	}

	return periods, int(count), nil
}

// GetCurrentPeriod returns the account's ACTIVE period
func (s *ledgerService) GetCurrentPeriod(ctx context.Context, shopAccountID string) (*domain.SettlementPeriod, error) {
	accountID, err := parseID("shop_account_id", shopAccountID)
	if err != nil {
		return nil, err
	}

	if _, err := s.queries.GetShopAccountByID(ctx, accountID); err != nil {
		return nil, notFound(err, domain.ErrorCodeShopAccountNotFound, "shop account", accountID)
	}

	row, err := s.queries.GetActiveSettlementPeriod(ctx, accountID)
	if err != nil {
		return nil, notFound(err, domain.ErrorCodeActivePeriodNotFound, "active settlement period for shop account", accountID)
	}
	return sqlcSettlementPeriodToDomain(&row), nil
}

// ListDueSettlementPeriods returns ACTIVE periods whose EndDate is not after now
func (s *ledgerService) ListDueSettlementPeriods(ctx context.Context, limit int) ([]*domain.SettlementPeriod, error) {
	pageLimit, _ := normalizePage(limit, 0)

	rows, err := s.queries.ListDueSettlementPeriods(ctx, sqlc.ListDueSettlementPeriodsParams{
		AsOf:     converters.ToTimestamptz(s.clock.Now()),
		LimitVal: pageLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list due settlement periods: %w", err)
	}

	periods := make([]*domain.SettlementPeriod, len(rows))
	for i := range rows {
		periods[i] = sqlcSettlementPeriodToDomain(&rows[i])
	}
	return periods, nil
}
