package ports

import (
	"context"
	"time"

	"github.com/kevin07696/settlement-ledger/internal/db/sqlc"
	"github.com/kevin07696/settlement-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// Pagination bounds for list queries
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 500
)

// CreateShopAccountRequest contains parameters for creating a shop's financial account
type CreateShopAccountRequest struct {
	ShopID            string
	SellerAccountID   string
	FreezePeriodDays  *int             // defaults to 14
	CommissionPercent *decimal.Decimal // defaults to 10
	Comment           *string
	OpenFirstPeriod   bool // open period #1 in the same unit of work
}

// UpdateShopAccountRequest contains the fields to change; nil fields are left alone
type UpdateShopAccountRequest struct {
	ShopAccountID     string
	Status            *domain.ShopAccountStatus
	FreezePeriodDays  *int
	CommissionPercent *decimal.Decimal
	Comment           *string
}

// GetShopAccountRequest looks an account up by its id or by the owning shop
type GetShopAccountRequest struct {
	ShopAccountID string
	ShopID        string
}

// ApproveSettlementPeriodRequest contains parameters for releasing a period
type ApproveSettlementPeriodRequest struct {
	SettlementPeriodID string
	Comment            *string
}

// UpdateSettlementPeriodRequest updates advisory fields of a period
type UpdateSettlementPeriodRequest struct {
	SettlementPeriodID string
	Comment            string
}

// ListSettlementPeriodsFilter filters GetSettlementPeriods. From/To bound StartDate.
type ListSettlementPeriodsFilter struct {
	ShopID        string
	ShopAccountID string
	Status        *domain.SettlementPeriodStatus
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

// CreateTransactionRequest contains parameters for recording a ledger entry.
// Either ShopAccountID or SettlementPeriodID must be set; with only the account
// the entry lands in the account's ACTIVE period.
type CreateTransactionRequest struct {
	ShopAccountID      string
	SettlementPeriodID string
	Type               domain.TransactionType
	Direction          *domain.Direction         // optional, must match the type
	Amount             decimal.Decimal           // sign is ignored, stored as abs
	Status             *domain.TransactionStatus // PENDING (default) or COMPLETED
	Description        string
	Comment            string
	References         domain.TransactionReferences
}

// UpdateTransactionRequest changes status and/or advisory fields of an entry
type UpdateTransactionRequest struct {
	TransactionID string
	Status        *domain.TransactionStatus
	Description   *string
	Comment       *string
}

// CancelTransactionRequest contains parameters for canceling an entry
type CancelTransactionRequest struct {
	TransactionID string
	Reason        string
}

// ListTransactionsFilter filters GetTransactions. From/To bound CreatedAt.
type ListTransactionsFilter struct {
	SettlementPeriodID string
	ShopAccountID      string
	Type               *domain.TransactionType
	Status             *domain.TransactionStatus
	From               *time.Time
	To                 *time.Time
	Limit              int
	Offset             int
}

// Every mutating method takes tx: nil opens and commits a unit of work inside
// the ledger, non-nil joins the caller's unit of work and leaves commit or
// rollback to the caller.

// ShopAccountService defines the port for shop account management
type ShopAccountService interface {
	CreateShopAccount(ctx context.Context, tx sqlc.Querier, req *CreateShopAccountRequest) (*domain.ShopAccount, error)
	UpdateShopAccount(ctx context.Context, tx sqlc.Querier, req *UpdateShopAccountRequest) (*domain.ShopAccount, error)
	GetShopAccount(ctx context.Context, req *GetShopAccountRequest) (*domain.ShopAccount, error)
}

// SettlementPeriodService defines the port for the period lifecycle
type SettlementPeriodService interface {
	// OpenSettlementPeriod starts the next ACTIVE period for an account
	OpenSettlementPeriod(ctx context.Context, tx sqlc.Querier, shopAccountID string) (*domain.SettlementPeriod, error)

	// CloseSettlementPeriod freezes totals and moves the period to PENDING_APPROVAL
	CloseSettlementPeriod(ctx context.Context, tx sqlc.Querier, settlementPeriodID string) (*domain.SettlementPeriod, error)

	// ApproveSettlementPeriod re-aggregates and releases the period. No money moves.
	ApproveSettlementPeriod(ctx context.Context, tx sqlc.Querier, req *ApproveSettlementPeriodRequest) (*domain.SettlementPeriod, error)

	UpdateSettlementPeriod(ctx context.Context, tx sqlc.Querier, req *UpdateSettlementPeriodRequest) (*domain.SettlementPeriod, error)

	// RecomputeSettlementPeriod re-runs aggregation on a PENDING_APPROVAL period
	RecomputeSettlementPeriod(ctx context.Context, tx sqlc.Querier, settlementPeriodID string) (*domain.SettlementPeriod, error)

	// RolloverSettlementPeriod closes the period and opens the account's next one
	RolloverSettlementPeriod(ctx context.Context, tx sqlc.Querier, settlementPeriodID string) (closed, opened *domain.SettlementPeriod, err error)

	GetSettlementPeriod(ctx context.Context, settlementPeriodID string) (*domain.SettlementPeriod, error)
	GetSettlementPeriods(ctx context.Context, filter *ListSettlementPeriodsFilter) ([]*domain.SettlementPeriod, int, error)
	GetCurrentPeriod(ctx context.Context, shopAccountID string) (*domain.SettlementPeriod, error)

	// ListDueSettlementPeriods returns ACTIVE periods whose EndDate has passed
	ListDueSettlementPeriods(ctx context.Context, limit int) ([]*domain.SettlementPeriod, error)
}

// TransactionService defines the port for ledger entries
type TransactionService interface {
	CreateTransaction(ctx context.Context, tx sqlc.Querier, req *CreateTransactionRequest) (*domain.SettlementPeriodTransaction, error)
	UpdateTransaction(ctx context.Context, tx sqlc.Querier, req *UpdateTransactionRequest) (*domain.SettlementPeriodTransaction, error)
	CancelTransaction(ctx context.Context, tx sqlc.Querier, req *CancelTransactionRequest) (*domain.SettlementPeriodTransaction, error)
	GetTransaction(ctx context.Context, transactionID string) (*domain.SettlementPeriodTransaction, error)
	GetTransactions(ctx context.Context, filter *ListTransactionsFilter) ([]*domain.SettlementPeriodTransaction, int, error)
}

// LedgerService is the full settlement ledger
type LedgerService interface {
	ShopAccountService
	SettlementPeriodService
	TransactionService
}
