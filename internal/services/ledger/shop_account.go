package ledger

import (
	"context"
	"fmt"

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

// CreateShopAccount creates the financial account of a shop
func (s *ledgerService) CreateShopAccount(ctx context.Context, tx sqlc.Querier, req *ports.CreateShopAccountRequest) (*domain.ShopAccount, error) {
	if req.ShopID == "" {
		return nil, domain.Errorf(domain.ErrorCodeValidationMissingField, "shop_id is required")
	}
	if req.SellerAccountID == "" {
		return nil, domain.Errorf(domain.ErrorCodeValidationMissingField, "seller_account_id is required")
	}

	freezeDays := s.defaults.FreezePeriodDays
	if req.FreezePeriodDays != nil {
		freezeDays = *req.FreezePeriodDays
	}
	if err := domain.ValidateFreezePeriodDays(freezeDays); err != nil {
		return nil, err
	}

	commission := s.defaults.CommissionPercent
	if req.CommissionPercent != nil {
		commission = *req.CommissionPercent
	}
	if err := domain.ValidateCommissionPercent(commission); err != nil {
		return nil, err
	}

	s.logger.Info("Creating shop account",
		zap.String("shop_id", req.ShopID),
		zap.String("seller_account_id", req.SellerAccountID),
		zap.Bool("open_first_period", req.OpenFirstPeriod),
	)

	var account *domain.ShopAccount
	var opened *domain.SettlementPeriod
	err := s.inTx(ctx, tx, func(q sqlc.Querier) error {
		exists, err := q.ShopAccountExistsByShopID(ctx, req.ShopID)
		if err != nil {
			return fmt.Errorf("failed to check shop account existence: %w", err)
		}
		if exists {
			return domain.Errorf(domain.ErrorCodeShopAccountExists, "shop %s already has a financial account", req.ShopID)
		}

		now := s.clock.Now()
		row, err := q.CreateShopAccount(ctx, sqlc.CreateShopAccountParams{
			ID:                uuid.New(),
			DisplayID:         domain.NewDisplayID(domain.ShopAccountIDPrefix, now),
			ShopID:            req.ShopID,
			SellerAccountID:   req.SellerAccountID,
			Status:            string(domain.ShopAccountStatusActive),
			FreezePeriodDays:  int32(freezeDays),
			CommissionPercent: converters.DecimalToNumeric(commission),
			Comment:           converters.ToNullableText(req.Comment),
			CreatedAt:         converters.ToTimestamptz(now),
		})
		if err != nil {
			if database.IsUniqueViolation(err, constraintShopAccountShopID) {
				return domain.Errorf(domain.ErrorCodeShopAccountExists, "shop %s already has a financial account", req.ShopID)
			}
			return fmt.Errorf("failed to create shop account: %w", err)
		}
		account = sqlcShopAccountToDomain(&row)

		if req.OpenFirstPeriod {
			opened, err = s.openPeriod(ctx, q, row.ID)
			if err != nil {
				return err
			}
			account.CurrentSettlementPeriodID = &opened.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Shop account created",
		zap.String("shop_account_id", account.ID),
		zap.String("display_id", account.DisplayID),
		zap.String("shop_id", account.ShopID),
	)
	if opened != nil {
		observability.RecordPeriodTransition("opened")
	}

	return account, nil
}

// UpdateShopAccount applies a partial update to status and configuration
func (s *ledgerService) UpdateShopAccount(ctx context.Context, tx sqlc.Querier, req *ports.UpdateShopAccountRequest) (*domain.ShopAccount, error) {
	accountID, err := parseID("shop_account_id", req.ShopAccountID)
	if err != nil {
		return nil, err
	}

	params := sqlc.UpdateShopAccountParams{ID: accountID}

	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, domain.Errorf(domain.ErrorCodeValidationFailed, "invalid shop account status %q", *req.Status)
		}
		params.Status = pgtype.Text{String: string(*req.Status), Valid: true}
	}
	if req.FreezePeriodDays != nil {
		if err := domain.ValidateFreezePeriodDays(*req.FreezePeriodDays); err != nil {
			return nil, err
		}
		params.FreezePeriodDays = converters.ToNullableInt32(req.FreezePeriodDays)
	}
	if req.CommissionPercent != nil {
		if err := domain.ValidateCommissionPercent(*req.CommissionPercent); err != nil {
			return nil, err
		}
		params.CommissionPercent = converters.ToNullableNumeric(req.CommissionPercent)
	}
	params.Comment = converters.ToNullableText(req.Comment)

	var account *domain.ShopAccount
	err = s.inTx(ctx, tx, func(q sqlc.Querier) error {
		params.UpdatedAt = converters.ToTimestamptz(s.clock.Now())
		row, err := q.UpdateShopAccount(ctx, params)
		if err != nil {
			return notFound(err, domain.ErrorCodeShopAccountNotFound, "shop account", accountID)
		}
		account = sqlcShopAccountToDomain(&row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Shop account updated",
		zap.String("shop_account_id", account.ID),
		zap.String("status", string(account.Status)),
		zap.Int("freeze_period_days", account.FreezePeriodDays),
	)

	return account, nil
}

// GetShopAccount retrieves an account by id, or by shop id when no id is given
func (s *ledgerService) GetShopAccount(ctx context.Context, req *ports.GetShopAccountRequest) (*domain.ShopAccount, error) {
	var (
		row sqlc.ShopAccount
		err error
	)

	switch {
	case req.ShopAccountID != "":
		accountID, perr := parseID("shop_account_id", req.ShopAccountID)
		if perr != nil {
			return nil, perr
		}
		row, err = s.queries.GetShopAccountByID(ctx, accountID)
		if err != nil {
			return nil, notFound(err, domain.ErrorCodeShopAccountNotFound, "shop account", accountID)
		}
	case req.ShopID != "":
		row, err = s.queries.GetShopAccountByShopID(ctx, req.ShopID)
		if err != nil {
			return nil, notFound(err, domain.ErrorCodeShopAccountNotFound, "shop account for shop", req.ShopID)
		}
	default:
		return nil, domain.Errorf(domain.ErrorCodeValidationMissingField, "shop_account_id or shop_id is required")
	}

	return sqlcShopAccountToDomain(&row), nil
}
