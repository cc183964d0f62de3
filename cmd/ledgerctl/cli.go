package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/kevin07696/settlement-ledger/internal/domain"
	"github.com/kevin07696/settlement-ledger/internal/services/ports"
	"github.com/shopspring/decimal"
)

var errUsage = errors.New("usage")

const usage = `Usage: ledgerctl -action=<action> [options]

Actions:
  create-account     -shop -seller [-freeze-days] [-commission] [-comment] [-open]
  open-period        -account
  close-period       -period
  approve-period     -period [-comment]
  recompute-period   -period
  rollover-period    -period
  correct            -account|-period -type=CORRECTION_IN|CORRECTION_OUT -amount [-comment] [-completed]
  cancel-transaction -txn [-reason]
  list-periods       [-account] [-shop] [-status] [-limit] [-offset]
  list-transactions  [-account] [-period] [-type] [-status] [-limit] [-offset]
`

type ledgerCLI struct {
	svc ports.LedgerService
	out io.Writer
}

type cliFlags struct {
	action     string
	shop       string
	seller     string
	account    string
	period     string
	txn        string
	txnType    string
	status     string
	amount     string
	commission string
	comment    string
	reason     string
	freezeDays int
	limit      int
	offset     int
	open       bool
	completed  bool
}

func parseFlags(args []string, out io.Writer) (*cliFlags, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("ledgerctl", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { fmt.Fprint(out, usage) }

	fs.StringVar(&f.action, "action", "", "action to perform")
	fs.StringVar(&f.shop, "shop", "", "shop id")
	fs.StringVar(&f.seller, "seller", "", "seller account id")
	fs.StringVar(&f.account, "account", "", "shop account id")
	fs.StringVar(&f.period, "period", "", "settlement period id")
	fs.StringVar(&f.txn, "txn", "", "transaction id")
	fs.StringVar(&f.txnType, "type", "", "transaction type")
	fs.StringVar(&f.status, "status", "", "status filter")
	fs.StringVar(&f.amount, "amount", "", "decimal amount")
	fs.StringVar(&f.commission, "commission", "", "commission percent")
	fs.StringVar(&f.comment, "comment", "", "comment")
	fs.StringVar(&f.reason, "reason", "", "cancel reason")
	fs.IntVar(&f.freezeDays, "freeze-days", 0, "freeze period in days")
	fs.IntVar(&f.limit, "limit", ports.DefaultPageLimit, "page size")
	fs.IntVar(&f.offset, "offset", 0, "page offset")
	fs.BoolVar(&f.open, "open", true, "open the first settlement period")
	fs.BoolVar(&f.completed, "completed", true, "record the correction as COMPLETED")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if f.action == "" {
		fs.Usage()
		return nil, errUsage
	}
	return f, nil
}

func (c *ledgerCLI) run(ctx context.Context, args []string) error {
	f, err := parseFlags(args, c.out)
	if err != nil {
		return err
	}

	var result interface{}
	switch f.action {
	case "create-account":
		result, err = c.createAccount(ctx, f)
	case "open-period":
		result, err = c.svc.OpenSettlementPeriod(ctx, nil, f.account)
	case "close-period":
		result, err = c.svc.CloseSettlementPeriod(ctx, nil, f.period)
	case "approve-period":
		req := &ports.ApproveSettlementPeriodRequest{SettlementPeriodID: f.period}
		if f.comment != "" {
			req.Comment = &f.comment
		}
		result, err = c.svc.ApproveSettlementPeriod(ctx, nil, req)
	case "recompute-period":
		result, err = c.svc.RecomputeSettlementPeriod(ctx, nil, f.period)
	case "rollover-period":
		closed, opened, rerr := c.svc.RolloverSettlementPeriod(ctx, nil, f.period)
		result, err = map[string]interface{}{"closed": closed, "opened": opened}, rerr
	case "correct":
		result, err = c.correct(ctx, f)
	case "cancel-transaction":
		result, err = c.svc.CancelTransaction(ctx, nil, &ports.CancelTransactionRequest{
			TransactionID: f.txn,
			Reason:        f.reason,
		})
	case "list-periods":
		result, err = c.listPeriods(ctx, f)
	case "list-transactions":
		result, err = c.listTransactions(ctx, f)
	default:
		fmt.Fprint(c.out, usage)
		return fmt.Errorf("unknown action: %s", f.action)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func (c *ledgerCLI) createAccount(ctx context.Context, f *cliFlags) (*domain.ShopAccount, error) {
	req := &ports.CreateShopAccountRequest{
		ShopID:          f.shop,
		SellerAccountID: f.seller,
		OpenFirstPeriod: f.open,
	}
	if f.freezeDays != 0 {
		req.FreezePeriodDays = &f.freezeDays
	}
	if f.commission != "" {
		p, err := decimal.NewFromString(f.commission)
		if err != nil {
			return nil, fmt.Errorf("invalid -commission: %w", err)
		}
		req.CommissionPercent = &p
	}
	if f.comment != "" {
		req.Comment = &f.comment
	}
	return c.svc.CreateShopAccount(ctx, nil, req)
}

// correct records a manual correction; only correction types are accepted here
func (c *ledgerCLI) correct(ctx context.Context, f *cliFlags) (*domain.SettlementPeriodTransaction, error) {
	txnType := domain.TransactionType(strings.ToUpper(f.txnType))
	if !txnType.IsCorrection() {
		return nil, fmt.Errorf("-type must be CORRECTION_IN or CORRECTION_OUT")
	}
	amount, err := decimal.NewFromString(f.amount)
	if err != nil {
		return nil, fmt.Errorf("invalid -amount: %w", err)
	}

	status := domain.TransactionStatusPending
	if f.completed {
		status = domain.TransactionStatusCompleted
	}
	return c.svc.CreateTransaction(ctx, nil, &ports.CreateTransactionRequest{
		ShopAccountID:      f.account,
		SettlementPeriodID: f.period,
		Type:               txnType,
		Amount:             amount,
		Status:             &status,
		Description:        "manual correction",
		Comment:            f.comment,
	})
}

type page struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
}

func (c *ledgerCLI) listPeriods(ctx context.Context, f *cliFlags) (*page, error) {
	filter := &ports.ListSettlementPeriodsFilter{
		ShopID:        f.shop,
		ShopAccountID: f.account,
		Limit:         f.limit,
		Offset:        f.offset,
	}
	if f.status != "" {
		s := domain.SettlementPeriodStatus(strings.ToUpper(f.status))
		filter.Status = &s
	}
	periods, total, err := c.svc.GetSettlementPeriods(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &page{Items: periods, Total: total}, nil
}

func (c *ledgerCLI) listTransactions(ctx context.Context, f *cliFlags) (*page, error) {
	filter := &ports.ListTransactionsFilter{
		ShopAccountID:      f.account,
		SettlementPeriodID: f.period,
		Limit:              f.limit,
		Offset:             f.offset,
	}
	if f.txnType != "" {
		t := domain.TransactionType(strings.ToUpper(f.txnType))
		filter.Type = &t
	}
	if f.status != "" {
		s := domain.TransactionStatus(strings.ToUpper(f.status))
		filter.Status = &s
	}
	txns, total, err := c.svc.GetTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &page{Items: txns, Total: total}, nil
}
