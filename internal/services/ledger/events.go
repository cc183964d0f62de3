package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kevin07696/settlement-ledger/internal/converters"
	"github.com/kevin07696/settlement-ledger/internal/db/sqlc"
	"github.com/kevin07696/settlement-ledger/internal/domain"
)

// enqueueEvent writes a period event to the outbox inside the caller's unit of work,
// so the event exists if and only if the state change commits
func (s *ledgerService) enqueueEvent(ctx context.Context, q sqlc.Querier, eventType domain.LedgerEventType, period *domain.SettlementPeriod, at time.Time) error {
	payload, err := json.Marshal(domain.NewSettlementPeriodEvent(eventType, period, at))
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	periodID, err := uuid.Parse(period.ID)
	if err != nil {
		return fmt.Errorf("invalid settlement period id %q: %w", period.ID, err)
	}
	accountID, err := uuid.Parse(period.ShopAccountID)
	if err != nil {
		return fmt.Errorf("invalid shop account id %q: %w", period.ShopAccountID, err)
	}

	if err := q.InsertLedgerOutboxEvent(ctx, sqlc.InsertLedgerOutboxEventParams{
		ID:            uuid.New(),
		EventType:     string(eventType),
		AggregateID:   periodID,
		ShopAccountID: accountID,
		Payload:       payload,
		CreatedAt:     converters.ToTimestamptz(at),
	}); err != nil {
		return fmt.Errorf("failed to enqueue %s event: %w", eventType, err)
	}
	return nil
}
