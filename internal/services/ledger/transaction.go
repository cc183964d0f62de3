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
	"go.uber.org/zap"
)

// CreateTransaction records a ledger entry in the target period
func (s *ledgerService) CreateTransaction(ctx context.Context, tx sqlc.Querier, req *ports.CreateTransactionRequest) (*domain.SettlementPeriodTransaction, error) {
	if req.ShopAccountID == "" && req.SettlementPeriodID == "" {
		return nil, domain.Errorf(domain.ErrorCodeValidationMissingField, "shop_account_id or settlement_period_id is required")
	}

	direction, err := req.Type.Direction()
	if err != nil {
		return nil, domain.WrapError(domain.ErrorCodeValidationFailed, "invalid transaction type", err)
	}
	if req.Direction != nil && *req.Direction != direction {
		return nil, domain.Errorf(domain.ErrorCodeValidationFailed,
			"direction %s does not match %s, which is always %s", *req.Direction, req.Type, direction)
	}

	if err := domain.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}
	amount := req.Amount.Abs()

	status := domain.TransactionStatusPending
	if req.Status != nil {
		status = *req.Status
	}
	if status != domain.TransactionStatusPending && status != domain.TransactionStatusCompleted {
		return nil, domain.Errorf(domain.ErrorCodeValidationFailed,
			"initial status must be %s or %s, got %s", domain.TransactionStatusPending, domain.TransactionStatusCompleted, status)
	}

	var accountID, periodID uuid.UUID
	if req.ShopAccountID != "" {
		if accountID, err = parseID("shop_account_id", req.ShopAccountID); err != nil {
			return nil, err
		}
	}
	if req.SettlementPeriodID != "" {
		if periodID, err = parseID("settlement_period_id", req.SettlementPeriodID); err != nil {
			return nil, err
		}
	}

	var referenceID pgtype.UUID
	if ref := req.References.ReferenceSettlementPeriodTransactionID; ref != "" {
		id, err := parseID("reference_settlement_period_transaction_id", ref)
		if err != nil {
			return nil, err
		}
		referenceID = pgtype.UUID{Bytes: id, Valid: true}
	}

	var txn *domain.SettlementPeriodTransaction
	err = s.inTx(ctx, tx, func(q sqlc.Querier) error {
		period, err := s.resolveTargetPeriod(ctx, q, accountID, periodID)
		if err != nil {
			return err
		}
		if err := period.AcceptsTransaction(req.Type); err != nil {
			return err
		}

		if referenceID.Valid {
			ref, err := q.GetSettlementPeriodTransactionByID(ctx, referenceID.Bytes)
			if err != nil {
				return notFound(err, domain.ErrorCodeTxnNotFound, "referenced transaction", uuid.UUID(referenceID.Bytes))
			}
			if ref.ShopAccountID.String() != period.ShopAccountID {
				return domain.Errorf(domain.ErrorCodeValidationFailed,
					"referenced transaction %s belongs to another shop account", ref.ID)
			}
		}

		now := s.clock.Now()
		var completedAt pgtype.Timestamptz
		if status == domain.TransactionStatusCompleted {
			completedAt = converters.ToTimestamptz(now)
		}

		row, err := q.CreateSettlementPeriodTransaction(ctx, sqlc.CreateSettlementPeriodTransactionParams{
			ID:                     uuid.New(),
			DisplayID:              domain.NewDisplayID(domain.TransactionIDPrefix, now),
			SettlementPeriodID:     uuid.MustParse(period.ID),
			ShopAccountID:          uuid.MustParse(period.ShopAccountID),
			Type:                   string(req.Type),
			Direction:              string(direction),
			Amount:                 converters.DecimalToNumeric(amount),
			Status:                 string(status),
			Description:            converters.NullText(req.Description),
			Comment:                converters.NullText(req.Comment),
			OrderID:                converters.NullText(req.References.OrderID),
			PenaltyID:              converters.NullText(req.References.PenaltyID),
			RefundID:               converters.NullText(req.References.RefundID),
			BonusID:                converters.NullText(req.References.BonusID),
			PayoutID:               converters.NullText(req.References.PayoutID),
			ReferenceTransactionID: referenceID,
			CompletedAt:            completedAt,
			CreatedAt:              converters.ToTimestamptz(now),
		})
		if err != nil {
			return fmt.Errorf("failed to create settlement period transaction: %w", err)
		}
		txn = sqlcTransactionToDomain(&row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.RecordLedgerTransaction(string(txn.Type), string(txn.Status), "created")
	s.logger.Info("Settlement period transaction created",
		zap.String("transaction_id", txn.ID),
		zap.String("settlement_period_id", txn.SettlementPeriodID),
		zap.String("type", string(txn.Type)),
		zap.String("status", string(txn.Status)),
		zap.String("amount", txn.Amount.String()),
	)

	return txn, nil
}

// resolveTargetPeriod finds and share-locks the period an entry is written to.
// A zero periodID means the account's ACTIVE period.
func (s *ledgerService) resolveTargetPeriod(ctx context.Context, q sqlc.Querier, accountID, periodID uuid.UUID) (*domain.SettlementPeriod, error) {
	if periodID == uuid.Nil {
		if _, err := q.GetShopAccountByID(ctx, accountID); err != nil {
			return nil, notFound(err, domain.ErrorCodeShopAccountNotFound, "shop account", accountID)
		}
		active, err := q.GetActiveSettlementPeriod(ctx, accountID)
		if err != nil {
			return nil, notFound(err, domain.ErrorCodeActivePeriodNotFound, "active settlement period for shop account", accountID)
		}
		periodID = active.ID
	}

	row, err := q.GetSettlementPeriodForShare(ctx, periodID)
	if err != nil {
		return nil, notFound(err, domain.ErrorCodePeriodNotFound, "settlement period", periodID)
	}
	if accountID != uuid.Nil && row.ShopAccountID != accountID {
		return nil, domain.Errorf(domain.ErrorCodeValidationFailed,
			"settlement period %s does not belong to shop account %s", periodID, accountID)
	}

	return sqlcSettlementPeriodToDomain(&row), nil
}

// UpdateTransaction moves an entry through its status machine and/or updates advisory fields
func (s *ledgerService) UpdateTransaction(ctx context.Context, tx sqlc.Querier, req *ports.UpdateTransactionRequest) (*domain.SettlementPeriodTransaction, error) {
	txnID, err := parseID("transaction_id", req.TransactionID)
	if err != nil {
		return nil, err
	}
	if req.Status != nil && !req.Status.IsValid() {
		return nil, domain.Errorf(domain.ErrorCodeValidationFailed, "invalid transaction status %q", *req.Status)
	}

	var txn *domain.SettlementPeriodTransaction
	err = s.inTx(ctx, tx, func(q sqlc.Querier) error {
		var err error
		txn, err = s.updateTransaction(ctx, q, txnID, req.Status, req.Description, req.Comment, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	observability.RecordLedgerTransaction(string(txn.Type), string(txn.Status), "updated")
	s.logger.Info("Settlement period transaction updated",
		zap.String("transaction_id", txn.ID),
		zap.String("settlement_period_id", txn.SettlementPeriodID),
		zap.String("status", string(txn.Status)),
	)

	return txn, nil
}

// CancelTransaction cancels a PENDING or FAILED entry
func (s *ledgerService) CancelTransaction(ctx context.Context, tx sqlc.Querier, req *ports.CancelTransactionRequest) (*domain.SettlementPeriodTransaction, error) {
	txnID, err := parseID("transaction_id", req.TransactionID)
	if err != nil {
		return nil, err
	}

	canceled := domain.TransactionStatusCanceled
	var reason *string
	if req.Reason != "" {
		reason = &req.Reason
	}

	var txn *domain.SettlementPeriodTransaction
	err = s.inTx(ctx, tx, func(q sqlc.Querier) error {
		var err error
		txn, err = s.updateTransaction(ctx, q, txnID, &canceled, nil, nil, reason)
		return err
	})
	if err != nil {
		return nil, err
	}

	observability.RecordLedgerTransaction(string(txn.Type), string(txn.Status), "canceled")
	s.logger.Info("Settlement period transaction canceled",
		zap.String("transaction_id", txn.ID),
		zap.String("reason", req.Reason),
	)

	return txn, nil
}

func (s *ledgerService) updateTransaction(
	ctx context.Context,
	q sqlc.Querier,
	txnID uuid.UUID,
	next *domain.TransactionStatus,
	description, comment, cancelReason *string,
) (*domain.SettlementPeriodTransaction, error) {
	row, err := q.GetSettlementPeriodTransactionForUpdate(ctx, txnID)
	if err != nil {
		return nil, notFound(err, domain.ErrorCodeTxnNotFound, "settlement period transaction", txnID)
	}
	current := sqlcTransactionToDomain(&row)

	if current.Status.IsTerminal() && (description != nil || next != nil) {
		return nil, domain.Errorf(domain.ErrorCodeTxnInvalidState,
			"transaction %s is %s; only its comment can change", txnID, current.Status)
	}

	now := s.clock.Now()
	params := sqlc.UpdateSettlementPeriodTransactionParams{
		Status:       row.Status,
		Description:  converters.ToNullableText(description),
		Comment:      converters.ToNullableText(comment),
		CancelReason: converters.ToNullableText(cancelReason),
		UpdatedAt:    converters.ToTimestamptz(now),
		ID:           txnID,
	}

	if next != nil && *next != current.Status {
		if !current.Status.CanTransitionTo(*next) {
			return nil, domain.Errorf(domain.ErrorCodeTxnInvalidState,
				"transaction %s cannot move from %s to %s", txnID, current.Status, *next)
		}
		params.Status = string(*next)

		switch *next {
		case domain.TransactionStatusCompleted:
			if err := s.attributeCompletion(ctx, q, current, now); err != nil {
				return nil, err
			}
			params.CompletedAt = converters.ToTimestamptz(now)
		case domain.TransactionStatusCanceled:
			params.CanceledAt = converters.ToTimestamptz(now)
		}
	}

	updated, err := q.UpdateSettlementPeriodTransaction(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update settlement period transaction: %w", err)
	}

	return sqlcTransactionToDomain(&updated), nil
}

// attributeCompletion makes sure a completing entry lands in a period that may
// still change. Entries whose period has been closed move to the account's
// ACTIVE period; corrections stay put while their period awaits approval.
func (s *ledgerService) attributeCompletion(ctx context.Context, q sqlc.Querier, txn *domain.SettlementPeriodTransaction, now time.Time) error {
	periodID := uuid.MustParse(txn.SettlementPeriodID)
	row, err := q.GetSettlementPeriodForShare(ctx, periodID)
	if err != nil {
		return notFound(err, domain.ErrorCodePeriodNotFound, "settlement period", periodID)
	}
	period := sqlcSettlementPeriodToDomain(&row)

	gateErr := period.AcceptsTransaction(txn.Type)
	if gateErr == nil {
		return nil
	}

	active, err := q.GetActiveSettlementPeriod(ctx, row.ShopAccountID)
	if err != nil {
		if database.IsNoRows(err) {
			// Nowhere to move it: surface why the original period refused it
			return gateErr
		}
		return fmt.Errorf("failed to get active settlement period: %w", err)
	}
	if _, err := q.GetSettlementPeriodForShare(ctx, active.ID); err != nil {
		return fmt.Errorf("failed to lock active settlement period: %w", err)
	}

	if _, err := q.MoveSettlementPeriodTransaction(ctx, sqlc.MoveSettlementPeriodTransactionParams{
		ID:                 uuid.MustParse(txn.ID),
		SettlementPeriodID: active.ID,
		UpdatedAt:          converters.ToTimestamptz(now),
	}); err != nil {
		return fmt.Errorf("failed to move settlement period transaction: %w", err)
	}

	s.logger.Info("Late completion moved to active settlement period",
		zap.String("transaction_id", txn.ID),
		zap.String("from_settlement_period_id", txn.SettlementPeriodID),
		zap.String("to_settlement_period_id", active.ID.String()),
	)
	return nil
}

// GetTransaction retrieves an entry by id
func (s *ledgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.SettlementPeriodTransaction, error) {
	txnID, err := parseID("transaction_id", transactionID)
	if err != nil {
		return nil, err
	}

	row, err := s.queries.GetSettlementPeriodTransactionByID(ctx, txnID)
	if err != nil {
		return nil, notFound(err, domain.ErrorCodeTxnNotFound, "settlement period transaction", txnID)
	}
	return sqlcTransactionToDomain(&row), nil
}

// GetTransactions lists entries matching filter along with the total match count
func (s *ledgerService) GetTransactions(ctx context.Context, filter *ports.ListTransactionsFilter) ([]*domain.SettlementPeriodTransaction, int, error) {
	if filter == nil {
		filter = &ports.ListTransactionsFilter{}
	}

	var periodID, accountID pgtype.UUID
	if filter.SettlementPeriodID != "" {
		id, err := parseID("settlement_period_id", filter.SettlementPeriodID)
		if err != nil {
			return nil, 0, err
		}
		periodID = pgtype.UUID{Bytes: id, Valid: true}
	}
	if filter.ShopAccountID != "" {
		id, err := parseID("shop_account_id", filter.ShopAccountID)
		if err != nil {
			return nil, 0, err
		}
		accountID = pgtype.UUID{Bytes: id, Valid: true}
	}

	var txnType, status pgtype.Text
	if filter.Type != nil {
		if !filter.Type.IsValid() {
			return nil, 0, domain.Errorf(domain.ErrorCodeValidationFailed, "invalid transaction type %q", *filter.Type)
		}
		txnType = pgtype.Text{String: string(*filter.Type), Valid: true}
	}
	if filter.Status != nil {
		if !filter.Status.IsValid() {
			return nil, 0, domain.Errorf(domain.ErrorCodeValidationFailed, "invalid transaction status %q", *filter.Status)
		}
		status = pgtype.Text{String: string(*filter.Status), Valid: true}
	}

	limit, offset := normalizePage(filter.Limit, filter.Offset)
	from := converters.ToNullableTimestamptz(filter.From)
	to := converters.ToNullableTimestamptz(filter.To)

	rows, err := s.queries.ListSettlementPeriodTransactions(ctx, sqlc.ListSettlementPeriodTransactionsParams{
		SettlementPeriodID: periodID,
		ShopAccountID:      accountID,
		Type:               txnType,
		Status:             status,
		CreatedAfter:       from,
		CreatedBefore:      to,
		LimitVal:           limit,
		OffsetVal:          offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settlement period transactions: %w", err)
	}

	count, err := s.queries.CountSettlementPeriodTransactions(ctx, sqlc.CountSettlementPeriodTransactionsParams{
		SettlementPeriodID: periodID,
		ShopAccountID:      accountID,
		Type:               txnType,
		Status:             status,
		CreatedAfter:       from,
		CreatedBefore:      to,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count settlement period transactions: %w", err)
	}

	return sqlcTransactionsToDomain(rows), int(count), nil
}
