package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementPeriodStatus is the lifecycle state of a settlement period.
// Transitions are linear: ACTIVE -> PENDING_APPROVAL -> RELEASED.
type SettlementPeriodStatus string

const (
	SettlementPeriodStatusActive          SettlementPeriodStatus = "ACTIVE"
	SettlementPeriodStatusPendingApproval SettlementPeriodStatus = "PENDING_APPROVAL"
	SettlementPeriodStatusReleased        SettlementPeriodStatus = "RELEASED"
)

// IsValid reports whether s is a known status
func (s SettlementPeriodStatus) IsValid() bool {
	switch s {
	case SettlementPeriodStatusActive, SettlementPeriodStatusPendingApproval, SettlementPeriodStatusReleased:
		return true
	default:
		return false
	}
}

// SettlementAmounts is the per-category breakdown frozen onto a period at close.
// Every bucket holds a non-negative magnitude.
type SettlementAmounts struct {
	OrderCompletions decimal.Decimal `json:"order_completions"`
	Refunds          decimal.Decimal `json:"refunds"`
	Penalties        decimal.Decimal `json:"penalties"`
	Commissions      decimal.Decimal `json:"commissions"`
	Bonuses          decimal.Decimal `json:"bonuses"`
	Payouts          decimal.Decimal `json:"payouts"`
	DeliveryFees     decimal.Decimal `json:"delivery_fees"`
	CorrectionsIn    decimal.Decimal `json:"corrections_in"`
	CorrectionsOut   decimal.Decimal `json:"corrections_out"`
}

// ZeroSettlementAmounts returns a breakdown with every bucket set to zero
func ZeroSettlementAmounts() SettlementAmounts {
	return SettlementAmounts{
		OrderCompletions: decimal.Zero,
		Refunds:          decimal.Zero,
		Penalties:        decimal.Zero,
		Commissions:      decimal.Zero,
		Bonuses:          decimal.Zero,
		Payouts:          decimal.Zero,
		DeliveryFees:     decimal.Zero,
		CorrectionsIn:    decimal.Zero,
		CorrectionsOut:   decimal.Zero,
	}
}

// Add accumulates amount into the bucket owned by t
func (a *SettlementAmounts) Add(t TransactionType, amount decimal.Decimal) error {
	switch t {
	case TransactionTypeOrderIncome:
		a.OrderCompletions = a.OrderCompletions.Add(amount)
	case TransactionTypeOrderRefund:
		a.Refunds = a.Refunds.Add(amount)
	case TransactionTypePenalty:
		a.Penalties = a.Penalties.Add(amount)
	case TransactionTypeCommission:
		a.Commissions = a.Commissions.Add(amount)
	case TransactionTypeBonus:
		a.Bonuses = a.Bonuses.Add(amount)
	case TransactionTypePayout:
		a.Payouts = a.Payouts.Add(amount)
	case TransactionTypeDeliveryFee:
		a.DeliveryFees = a.DeliveryFees.Add(amount)
	case TransactionTypeCorrectionIn:
		a.CorrectionsIn = a.CorrectionsIn.Add(amount)
	case TransactionTypeCorrectionOut:
		a.CorrectionsOut = a.CorrectionsOut.Add(amount)
	default:
		return Errorf(ErrorCodeValidationFailed, "unknown transaction type %q", t)
	}
	return nil
}

// Credits returns the sum of every credit bucket
func (a SettlementAmounts) Credits() decimal.Decimal {
	return a.OrderCompletions.Add(a.Bonuses).Add(a.CorrectionsIn)
}

// Debits returns the sum of every debit bucket
func (a SettlementAmounts) Debits() decimal.Decimal {
	return a.Refunds.
		Add(a.Penalties).
		Add(a.Commissions).
		Add(a.Payouts).
		Add(a.DeliveryFees).
		Add(a.CorrectionsOut)
}

// Net returns credits minus debits
func (a SettlementAmounts) Net() decimal.Decimal {
	return a.Credits().Sub(a.Debits())
}

// Aggregate partitions the COMPLETED entries into category buckets and returns the
// breakdown together with the signed net total. Entries in any other status
// contribute nothing. An entry whose direction disagrees with its type aborts the
// aggregation so a corrupted row can never be frozen into a period.
func Aggregate(txns []*SettlementPeriodTransaction) (SettlementAmounts, decimal.Decimal, error) {
	amounts := ZeroSettlementAmounts()
	total := decimal.Zero

	for _, txn := range txns {
		if !txn.IsCompleted() {
			continue
		}
		if err := txn.CheckIntegrity(); err != nil {
			return SettlementAmounts{}, decimal.Zero, err
		}
		if err := amounts.Add(txn.Type, txn.Amount); err != nil {
			return SettlementAmounts{}, decimal.Zero, err
		}
		total = total.Add(txn.SignedAmount())
	}

	return amounts, total, nil
}

// SettlementPeriod is a bounded accounting window owned by a shop account
type SettlementPeriod struct {
	StartDate      time.Time              `json:"start_date"`
	EndDate        time.Time              `json:"end_date"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	ClosedAt       *time.Time             `json:"closed_at,omitempty"`
	ReleasedAt     *time.Time             `json:"released_at,omitempty"`
	ReleasedAmount *decimal.Decimal       `json:"released_amount,omitempty"`
	Amounts        SettlementAmounts      `json:"amounts"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	ID             string                 `json:"id"`
	DisplayID      string                 `json:"display_id"`
	ShopAccountID  string                 `json:"shop_account_id"`
	Status         SettlementPeriodStatus `json:"status"`
	Comment        string                 `json:"comment,omitempty"`
	PeriodNumber   int32                  `json:"period_number"`
}

// IsActive returns true while the period accepts regular transactions
func (p *SettlementPeriod) IsActive() bool {
	return p.Status == SettlementPeriodStatusActive
}

// IsDue returns true once the freeze window has elapsed
func (p *SettlementPeriod) IsDue(now time.Time) bool {
	return p.IsActive() && !now.Before(p.EndDate)
}

// AcceptsTransaction enforces write gating for a new entry of type t
func (p *SettlementPeriod) AcceptsTransaction(t TransactionType) error {
	switch p.Status {
	case SettlementPeriodStatusActive:
		return nil
	case SettlementPeriodStatusPendingApproval:
		if t.IsCorrection() {
			return nil
		}
		return Errorf(ErrorCodePeriodCorrectionsOnly,
			"settlement period %s is pending approval and only accepts corrections, got %s", p.ID, t)
	case SettlementPeriodStatusReleased:
		return Errorf(ErrorCodePeriodReleased, "settlement period %s is released", p.ID)
	default:
		return Errorf(ErrorCodePeriodInvalidState, "settlement period %s has unknown status %s", p.ID, p.Status)
	}
}

// CanClose returns an error unless the period is ACTIVE
func (p *SettlementPeriod) CanClose() error {
	if p.Status != SettlementPeriodStatusActive {
		return Errorf(ErrorCodePeriodInvalidState,
			"settlement period %s cannot be closed from status %s", p.ID, p.Status)
	}
	return nil
}

// CanApprove returns an error unless the period is PENDING_APPROVAL
func (p *SettlementPeriod) CanApprove() error {
	if p.Status != SettlementPeriodStatusPendingApproval {
		return Errorf(ErrorCodePeriodInvalidState,
			"settlement period %s cannot be approved from status %s", p.ID, p.Status)
	}
	return nil
}

// PeriodEndDate computes the end of a period opened at start
func PeriodEndDate(start time.Time, freezePeriodDays int) time.Time {
	return start.AddDate(0, 0, freezePeriodDays)
}
