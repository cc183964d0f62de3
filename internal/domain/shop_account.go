package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShopAccountStatus represents whether a shop account is in good standing
type ShopAccountStatus string

const (
	ShopAccountStatusActive    ShopAccountStatus = "ACTIVE"
	ShopAccountStatusSuspended ShopAccountStatus = "SUSPENDED"
)

// IsValid reports whether s is a known status
func (s ShopAccountStatus) IsValid() bool {
	return s == ShopAccountStatusActive || s == ShopAccountStatusSuspended
}

const (
	DefaultFreezePeriodDays = 14
	MinFreezePeriodDays     = 1
	MaxFreezePeriodDays     = 365
)

// DefaultCommissionPercent is applied when an account is created without one
var DefaultCommissionPercent = decimal.NewFromInt(10)

// ShopAccount is the per-shop root of the settlement ledger
type ShopAccount struct {
	CreatedAt                 time.Time         `json:"created_at"`
	UpdatedAt                 time.Time         `json:"updated_at"`
	CurrentSettlementPeriodID *string           `json:"current_settlement_period_id,omitempty"`
	CommissionPercent         decimal.Decimal   `json:"commission_percent"`
	LifetimeEarnings          decimal.Decimal   `json:"lifetime_earnings"`
	TotalPenalties            decimal.Decimal   `json:"total_penalties"`
	TotalCommissions          decimal.Decimal   `json:"total_commissions"`
	ID                        string            `json:"id"`
	DisplayID                 string            `json:"display_id"`
	ShopID                    string            `json:"shop_id"`
	SellerAccountID           string            `json:"seller_account_id"`
	Status                    ShopAccountStatus `json:"status"`
	Comment                   string            `json:"comment,omitempty"`
	FreezePeriodDays          int               `json:"freeze_period_days"`
}

// IsActive returns true if the account is not suspended
func (a *ShopAccount) IsActive() bool {
	return a.Status == ShopAccountStatusActive
}

// HasCurrentPeriod returns true if the account points at an ACTIVE period
func (a *ShopAccount) HasCurrentPeriod() bool {
	return a.CurrentSettlementPeriodID != nil && *a.CurrentSettlementPeriodID != ""
}

// ValidateFreezePeriodDays checks the freeze window bounds
func ValidateFreezePeriodDays(days int) error {
	if days < MinFreezePeriodDays || days > MaxFreezePeriodDays {
		return Errorf(ErrorCodeValidationFailed,
			"freeze_period_days must be between %d and %d, got %d", MinFreezePeriodDays, MaxFreezePeriodDays, days)
	}
	return nil
}

// ValidateCommissionPercent checks the commission bounds (0..100 inclusive)
func ValidateCommissionPercent(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return Errorf(ErrorCodeValidationFailed, "commission_percent must be between 0 and 100, got %s", percent)
	}
	return nil
}
