package outbox

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kevin07696/settlement-ledger/internal/adapters/database"
	"github.com/kevin07696/settlement-ledger/internal/converters"
	"github.com/kevin07696/settlement-ledger/internal/db/sqlc"
	"github.com/kevin07696/settlement-ledger/pkg/observability"
	"github.com/kevin07696/settlement-ledger/pkg/timeutil"
	"go.uber.org/zap"
)

const (
	DefaultBatchSize   = 100
	DefaultMaxAttempts = 10
	maxErrorLength     = 500
)

// Event is one outbox row ready to leave the process
type Event struct {
	ID            string
	Type          string
	AggregateID   string
	ShopAccountID string
	Payload       []byte
	CreatedAt     time.Time
}

// Publisher delivers ledger events to the broker
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Result summarizes one Dispatch call
type Result struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Dispatcher drains the ledger outbox.
// Rows are claimed with FOR UPDATE SKIP LOCKED so concurrent dispatchers never
// publish the same batch; delivery is at-least-once.
type Dispatcher struct {
	txManager   database.TransactionManager
	publisher   Publisher
	clock       timeutil.Clock
	logger      *zap.Logger
	maxAttempts int32
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithMaxAttempts stops retrying an event after n failed publishes
func WithMaxAttempts(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxAttempts = int32(n)
		}
	}
}

// WithClock overrides the clock used to stamp sent_at
func WithClock(clock timeutil.Clock) Option {
	return func(d *Dispatcher) {
		d.clock = clock
	}
}

func NewDispatcher(txManager database.TransactionManager, publisher Publisher, logger *zap.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		txManager:   txManager,
		publisher:   publisher,
		clock:       timeutil.SystemClock{},
		logger:      logger,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch publishes up to limit pending events and records each outcome.
// A failed publish marks the row failed and moves on; a storage error aborts
// the batch and rolls every mark back so the rows are retried.
func (d *Dispatcher) Dispatch(ctx context.Context, limit int) (*Result, error) {
	if limit <= 0 {
		limit = DefaultBatchSize
	}

	var result Result
	err := d.txManager.WithTx(ctx, func(q sqlc.Querier) error {
		result = Result{}
		rows, err := q.ListPendingLedgerOutboxEvents(ctx, sqlc.ListPendingLedgerOutboxEventsParams{
			MaxAttempts: d.maxAttempts,
			LimitVal:    int32(limit),
		})
		if err != nil {
			return fmt.Errorf("failed to list pending outbox events: %w", err)
		}

		for _, row := range rows {
			event := toEvent(row)
			if pubErr := d.publisher.Publish(ctx, event); pubErr != nil {
				d.logger.Warn("Failed to publish ledger event",
					zap.String("event_id", event.ID),
					zap.String("event_type", event.Type),
					zap.Int32("attempts", row.Attempts+1),
					zap.Error(pubErr),
				)
				if err := q.MarkLedgerOutboxEventFailed(ctx, sqlc.MarkLedgerOutboxEventFailedParams{
					ID:        row.ID,
					LastError: converters.NullText(truncate(pubErr.Error(), maxErrorLength)),
				}); err != nil {
					return fmt.Errorf("failed to mark outbox event %s failed: %w", event.ID, err)
				}
				observability.RecordOutboxDispatch(event.Type, "failed")
				result.Failed++
				continue
			}

			if err := q.MarkLedgerOutboxEventSent(ctx, sqlc.MarkLedgerOutboxEventSentParams{
				ID:     row.ID,
				SentAt: converters.ToTimestamptz(d.clock.Now()),
			}); err != nil {
				return fmt.Errorf("failed to mark outbox event %s sent: %w", event.ID, err)
			}
			observability.RecordOutboxDispatch(event.Type, "sent")
			result.Sent++
		}
		return nil
	})
	if err != nil {
		d.logger.Error("Outbox dispatch aborted", zap.Error(err))
		return nil, err
	}

	if result.Sent > 0 || result.Failed > 0 {
		d.logger.Info("Dispatched ledger events",
			zap.Int("sent", result.Sent),
			zap.Int("failed", result.Failed),
		)
	}
	return &result, nil
}

func toEvent(row sqlc.LedgerOutbox) Event {
	e := Event{
		ID:            row.ID.String(),
		Type:          row.EventType,
		AggregateID:   row.AggregateID.String(),
		ShopAccountID: row.ShopAccountID.String(),
		Payload:       row.Payload,
	}
	if row.CreatedAt.Valid {
		e.CreatedAt = row.CreatedAt.Time
	}
	return e
}

// truncate caps s at n bytes without splitting a character; TEXT columns reject invalid UTF-8
func truncate(s string, n int) string {
	s = strings.ToValidUTF8(s, "?")
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
