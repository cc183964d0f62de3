package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEventType names an event written to the ledger outbox
type LedgerEventType string

const (
	EventSettlementPeriodOpened   LedgerEventType = "settlement_period.opened"
	EventSettlementPeriodClosed   LedgerEventType = "settlement_period.closed"
	EventSettlementPeriodReleased LedgerEventType = "settlement_period.released"
)

// SettlementPeriodEvent is the payload published for every period lifecycle change.
// Consumers of settlement_period.released execute the payout; the ledger never does.
type SettlementPeriodEvent struct {
	OccurredAt         time.Time              `json:"occurred_at"`
	Amounts            SettlementAmounts      `json:"amounts"`
	TotalAmount        decimal.Decimal        `json:"total_amount"`
	ReleasedAmount     *decimal.Decimal       `json:"released_amount,omitempty"`
	Type               LedgerEventType        `json:"type"`
	SettlementPeriodID string                 `json:"settlement_period_id"`
	DisplayID          string                 `json:"display_id"`
	ShopAccountID      string                 `json:"shop_account_id"`
	Status             SettlementPeriodStatus `json:"status"`
	PeriodNumber       int32                  `json:"period_number"`
}

// NewSettlementPeriodEvent snapshots p as an event of type t
func NewSettlementPeriodEvent(t LedgerEventType, p *SettlementPeriod, at time.Time) SettlementPeriodEvent {
	return SettlementPeriodEvent{
		OccurredAt:         at,
		Amounts:            p.Amounts,
		TotalAmount:        p.TotalAmount,
		ReleasedAmount:     p.ReleasedAmount,
		Type:               t,
		SettlementPeriodID: p.ID,
		DisplayID:          p.DisplayID,
		ShopAccountID:      p.ShopAccountID,
		Status:             p.Status,
		PeriodNumber:       p.PeriodNumber,
	}
}
