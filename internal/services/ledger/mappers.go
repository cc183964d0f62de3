package ledger

import (
	"github.com/kevin07696/settlement-ledger/internal/converters"
	"github.com/kevin07696/settlement-ledger/internal/db/sqlc"
	"github.com/kevin07696/settlement-ledger/internal/domain"
)

func sqlcShopAccountToDomain(a *sqlc.ShopAccount) *domain.ShopAccount {
	return &domain.ShopAccount{
		ID:                        a.ID.String(),
		DisplayID:                 a.DisplayID,
		ShopID:                    a.ShopID,
		SellerAccountID:           a.SellerAccountID,
		Status:                    domain.ShopAccountStatus(a.Status),
		FreezePeriodDays:          int(a.FreezePeriodDays),
		CommissionPercent:         converters.NumericToDecimal(a.CommissionPercent),
		CurrentSettlementPeriodID: converters.UUIDStringPtr(a.CurrentSettlementPeriodID),
		LifetimeEarnings:          converters.NumericToDecimal(a.LifetimeEarnings),
		TotalPenalties:            converters.NumericToDecimal(a.TotalPenalties),
		TotalCommissions:          converters.NumericToDecimal(a.TotalCommissions),
		Comment:                   converters.TextOrEmpty(a.Comment),
		CreatedAt:                 a.CreatedAt.Time,
		UpdatedAt:                 a.UpdatedAt.Time,
	}
}

func sqlcSettlementPeriodToDomain(p *sqlc.SettlementPeriod) *domain.SettlementPeriod {
	return &domain.SettlementPeriod{
		ID:            p.ID.String(),
		DisplayID:     p.DisplayID,
		ShopAccountID: p.ShopAccountID.String(),
		PeriodNumber:  p.PeriodNumber,
		Status:        domain.SettlementPeriodStatus(p.Status),
		StartDate:     p.StartDate.Time,
		EndDate:       p.EndDate.Time,
		ClosedAt:      converters.TimestamptzToTimePtr(p.ClosedAt),
		ReleasedAt:    converters.TimestamptzToTimePtr(p.ReleasedAt),
		Amounts: domain.SettlementAmounts{
			OrderCompletions: converters.NumericToDecimal(p.OrderCompletions),
			Refunds:          converters.NumericToDecimal(p.Refunds),
			Penalties:        converters.NumericToDecimal(p.Penalties),
			Commissions:      converters.NumericToDecimal(p.Commissions),
			Bonuses:          converters.NumericToDecimal(p.Bonuses),
			Payouts:          converters.NumericToDecimal(p.Payouts),
			DeliveryFees:     converters.NumericToDecimal(p.DeliveryFees),
			CorrectionsIn:    converters.NumericToDecimal(p.CorrectionsIn),
			CorrectionsOut:   converters.NumericToDecimal(p.CorrectionsOut),
		},
		TotalAmount:    converters.NumericToDecimal(p.TotalAmount),
		ReleasedAmount: converters.NumericToDecimalPtr(p.ReleasedAmount),
		Comment:        converters.TextOrEmpty(p.Comment),
		CreatedAt:      p.CreatedAt.Time,
		UpdatedAt:      p.UpdatedAt.Time,
	}
}

func sqlcTransactionToDomain(t *sqlc.SettlementPeriodTransaction) *domain.SettlementPeriodTransaction {
	return &domain.SettlementPeriodTransaction{
		ID:                 t.ID.String(),
		DisplayID:          t.DisplayID,
		SettlementPeriodID: t.SettlementPeriodID.String(),
		ShopAccountID:      t.ShopAccountID.String(),
		Type:               domain.TransactionType(t.Type),
		Direction:          domain.Direction(t.Direction),
		Amount:             converters.NumericToDecimal(t.Amount),
		Status:             domain.TransactionStatus(t.Status),
		Description:        converters.TextOrEmpty(t.Description),
		Comment:            converters.TextOrEmpty(t.Comment),
		CancelReason:       converters.TextOrEmpty(t.CancelReason),
		References: domain.TransactionReferences{
			OrderID:                                converters.TextOrEmpty(t.OrderID),
			PenaltyID:                              converters.TextOrEmpty(t.PenaltyID),
			RefundID:                               converters.TextOrEmpty(t.RefundID),
			BonusID:                                converters.TextOrEmpty(t.BonusID),
			PayoutID:                               converters.TextOrEmpty(t.PayoutID),
			ReferenceSettlementPeriodTransactionID: converters.UUIDStringOrEmpty(t.ReferenceTransactionID),
		},
		CompletedAt: converters.TimestamptzToTimePtr(t.CompletedAt),
		CanceledAt:  converters.TimestamptzToTimePtr(t.CanceledAt),
		CreatedAt:   t.CreatedAt.Time,
		UpdatedAt:   t.UpdatedAt.Time,
	}
}

func sqlcTransactionsToDomain(rows []sqlc.SettlementPeriodTransaction) []*domain.SettlementPeriodTransaction {
	txns := make([]*domain.SettlementPeriodTransaction, len(rows))
	for i := range rows {
		txns[i] = sqlcTransactionToDomain(&rows[i])
	}
	return txns
}
