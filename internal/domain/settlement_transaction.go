package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the closed catalog of ledger entry kinds
type TransactionType string

const (
	// Credits (increase the shop's payable balance)
	TransactionTypeOrderIncome  TransactionType = "ORDER_INCOME"
	TransactionTypeBonus        TransactionType = "BONUS"
	TransactionTypeCorrectionIn TransactionType = "CORRECTION_IN"

	// Debits (decrease the shop's payable balance)
	TransactionTypePenalty       TransactionType = "PENALTY"
	TransactionTypeOrderRefund   TransactionType = "ORDER_REFUND"
	TransactionTypePayout        TransactionType = "PAYOUT"
	TransactionTypeCommission    TransactionType = "COMMISSION"
	TransactionTypeDeliveryFee   TransactionType = "DELIVERY_FEE"
	TransactionTypeCorrectionOut TransactionType = "CORRECTION_OUT"
)

// TransactionTypes lists every catalog entry
var TransactionTypes = []TransactionType{
	TransactionTypeOrderIncome,
	TransactionTypeBonus,
	TransactionTypeCorrectionIn,
	TransactionTypePenalty,
	TransactionTypeOrderRefund,
	TransactionTypePayout,
	TransactionTypeCommission,
	TransactionTypeDeliveryFee,
	TransactionTypeCorrectionOut,
}

// Direction is whether an entry credits or debits the period balance
type Direction string

const (
	DirectionCredit Direction = "CREDIT"
	DirectionDebit  Direction = "DEBIT"
)

// Sign returns +1 for credits and -1 for debits
func (d Direction) Sign() decimal.Decimal {
	if d == DirectionCredit {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(-1)
}

// IsValid reports whether d is a known direction
func (d Direction) IsValid() bool {
	return d == DirectionCredit || d == DirectionDebit
}

// Direction returns the canonical direction of the type.
// Every catalog entry must be listed here; unknown types return an error.
func (t TransactionType) Direction() (Direction, error) {
	switch t {
	case TransactionTypeOrderIncome, TransactionTypeBonus, TransactionTypeCorrectionIn:
		return DirectionCredit, nil
	case TransactionTypePenalty,
		TransactionTypeOrderRefund,
		TransactionTypePayout,
		TransactionTypeCommission,
		TransactionTypeDeliveryFee,
		TransactionTypeCorrectionOut:
		return DirectionDebit, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", t)
	}
}

// IsValid reports whether t belongs to the catalog
func (t TransactionType) IsValid() bool {
	_, err := t.Direction()
	return err == nil
}

// IsCorrection reports whether t is one of the correction types
func (t TransactionType) IsCorrection() bool {
	return t == TransactionTypeCorrectionIn || t == TransactionTypeCorrectionOut
}

// TransactionStatus is the lifecycle state of a ledger entry
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusCanceled  TransactionStatus = "CANCELED"
)

// IsValid reports whether s is a known status
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed, TransactionStatusCanceled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further status change is allowed
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusCanceled
}

// CanTransitionTo reports whether the status machine allows s -> next.
// FAILED may be retried (back to PENDING) or canceled.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	switch s {
	case TransactionStatusPending:
		return next == TransactionStatusCompleted ||
			next == TransactionStatusFailed ||
			next == TransactionStatusCanceled
	case TransactionStatusFailed:
		return next == TransactionStatusPending || next == TransactionStatusCanceled
	default:
		return false
	}
}

// TransactionReferences are opaque identifiers of the records that caused an entry.
// The ledger stores them for audit and lookup and never dereferences them.
type TransactionReferences struct {
	OrderID                                string `json:"order_id,omitempty"`
	PenaltyID                              string `json:"penalty_id,omitempty"`
	RefundID                               string `json:"refund_id,omitempty"`
	BonusID                                string `json:"bonus_id,omitempty"`
	PayoutID                               string `json:"payout_id,omitempty"`
	ReferenceSettlementPeriodTransactionID string `json:"reference_settlement_period_transaction_id,omitempty"`
}

// SettlementPeriodTransaction is a single money movement inside a settlement period
type SettlementPeriodTransaction struct {
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
	CompletedAt        *time.Time            `json:"completed_at,omitempty"`
	CanceledAt         *time.Time            `json:"canceled_at,omitempty"`
	References         TransactionReferences `json:"references"`
	Amount             decimal.Decimal       `json:"amount"`
	ID                 string                `json:"id"`
	DisplayID          string                `json:"display_id"`
	SettlementPeriodID string                `json:"settlement_period_id"`
	ShopAccountID      string                `json:"shop_account_id"`
	Type               TransactionType       `json:"type"`
	Direction          Direction             `json:"direction"`
	Status             TransactionStatus     `json:"status"`
	Description        string                `json:"description,omitempty"`
	Comment            string                `json:"comment,omitempty"`
	CancelReason       string                `json:"cancel_reason,omitempty"`
}

// AmountScale is the number of fractional digits money columns hold
const AmountScale = 4

// MaxAmount is the smallest magnitude a NUMERIC(19,4) column cannot hold
var MaxAmount = decimal.New(1, 15)

// ValidateAmount rejects amounts that storage would round away or overflow
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsZero() {
		return Errorf(ErrorCodeValidationAmountInvalid, "amount must be non-zero")
	}
	if !amount.Equal(amount.Round(AmountScale)) {
		return Errorf(ErrorCodeValidationAmountInvalid, "amount %s has more than %d decimal places", amount, AmountScale)
	}
	if amount.Abs().GreaterThanOrEqual(MaxAmount) {
		return Errorf(ErrorCodeValidationAmountInvalid, "amount %s must be less than %s in magnitude", amount, MaxAmount)
	}
	return nil
}

// SignedAmount returns the amount with the direction's sign applied
func (t *SettlementPeriodTransaction) SignedAmount() decimal.Decimal {
	return t.Amount.Mul(t.Direction.Sign())
}

// IsCompleted returns true if the entry counts towards period totals
func (t *SettlementPeriodTransaction) IsCompleted() bool {
	return t.Status == TransactionStatusCompleted
}

// CheckIntegrity verifies the stored direction and amount agree with the catalog
func (t *SettlementPeriodTransaction) CheckIntegrity() error {
	if t.Amount.IsNegative() {
		return Errorf(ErrorCodeValidationAmountInvalid, "transaction %s has negative amount %s", t.ID, t.Amount)
	}
	canonical, err := t.Type.Direction()
	if err != nil {
		return WrapError(ErrorCodeValidationFailed, "invalid transaction type", err)
	}
	if canonical != t.Direction {
		return Errorf(ErrorCodeTxnDirectionMismatch,
			"transaction %s has direction %s but type %s is %s", t.ID, t.Direction, t.Type, canonical)
	}
	return nil
}
