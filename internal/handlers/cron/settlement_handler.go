package cron

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kevin07696/settlement-ledger/internal/services/outbox"
	"github.com/kevin07696/settlement-ledger/internal/services/ports"
	"github.com/kevin07696/settlement-ledger/pkg/observability"
	"github.com/kevin07696/settlement-ledger/pkg/timeutil"
	"go.uber.org/zap"
)

const (
	defaultBatchSize = 100
	maxBatchSize     = 1000
)

// EventDispatcher drains the ledger outbox. A nil dispatcher disables the
// dispatch route; events then wait in the outbox.
type EventDispatcher interface {
	Dispatch(ctx context.Context, limit int) (*outbox.Result, error)
}

// SettlementHandler exposes the settlement batch jobs to Cloud Scheduler
type SettlementHandler struct {
	periods    ports.SettlementPeriodService
	dispatcher EventDispatcher
	logger     *zap.Logger
	clock      timeutil.Clock
	cronSecret string
}

// NewSettlementHandler creates the settlement cron handler
func NewSettlementHandler(
	periods ports.SettlementPeriodService,
	dispatcher EventDispatcher,
	logger *zap.Logger,
	cronSecret string,
) *SettlementHandler {
	return &SettlementHandler{
		periods:    periods,
		dispatcher: dispatcher,
		logger:     logger,
		clock:      timeutil.SystemClock{},
		cronSecret: cronSecret,
	}
}

// Register mounts the cron routes. Every route but health requires the shared secret.
func (h *SettlementHandler) Register(r chi.Router) {
	r.Route("/cron", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)
		r.Group(func(r chi.Router) {
			r.Use(h.requireSecret)
			r.Post("/settlement/rollover", h.Rollover)
			r.Post("/settlement/dispatch-events", h.DispatchEvents)
		})
	})
}

// BatchRequest carries the optional batch size of a cron run
type BatchRequest struct {
	BatchSize *int `json:"batch_size"`
}

// RolloverResponse summarizes a rollover run
type RolloverResponse struct {
	Success      bool     `json:"success"`
	Processed    int      `json:"processed"`
	SuccessCount int      `json:"success_count"`
	FailureCount int      `json:"failure_count"`
	Errors       []string `json:"errors,omitempty"`
	ProcessedAt  string   `json:"processed_at"`
}

// DispatchResponse summarizes an outbox dispatch run
type DispatchResponse struct {
	Success     bool   `json:"success"`
	Sent        int    `json:"sent"`
	Failed      int    `json:"failed"`
	ProcessedAt string `json:"processed_at"`
}

// Rollover handles POST /cron/settlement/rollover.
// Every ACTIVE period whose end date has passed is closed and the next one
// opened, each period in its own unit of work so one failure never blocks the rest.
func (h *SettlementHandler) Rollover(w http.ResponseWriter, r *http.Request) {
	batchSize, err := parseBatchSize(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	due, err := h.periods.ListDueSettlementPeriods(ctx, batchSize)
	if err != nil {
		h.logger.Error("Failed to list due settlement periods", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to list due settlement periods")
		return
	}

	resp := RolloverResponse{Processed: len(due)}
	for _, period := range due {
		closed, opened, err := h.periods.RolloverSettlementPeriod(ctx, nil, period.ID)
		if err != nil {
			observability.RecordRollover("failed")
			resp.FailureCount++
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %v", period.ID, err))
			h.logger.Warn("Settlement period rollover failed",
				zap.String("settlement_period_id", period.ID),
				zap.String("shop_account_id", period.ShopAccountID),
				zap.Error(err),
			)
			continue
		}
		observability.RecordRollover("success")
		resp.SuccessCount++
		h.logger.Debug("Settlement period rolled over",
			zap.String("closed_period_id", closed.ID),
			zap.String("opened_period_id", opened.ID),
		)
	}
	resp.Success = resp.FailureCount == 0
	resp.ProcessedAt = h.clock.Now().Format(time.RFC3339)

	h.logger.Info("Settlement rollover completed",
		zap.Int("processed", resp.Processed),
		zap.Int("success", resp.SuccessCount),
		zap.Int("failed", resp.FailureCount),
	)
	h.respond(w, resp.Success, resp)
}

// DispatchEvents handles POST /cron/settlement/dispatch-events
func (h *SettlementHandler) DispatchEvents(w http.ResponseWriter, r *http.Request) {
	if h.dispatcher == nil {
		h.respondError(w, http.StatusServiceUnavailable, "event publishing is not configured")
		return
	}

	batchSize, err := parseBatchSize(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.dispatcher.Dispatch(r.Context(), batchSize)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to dispatch ledger events")
		return
	}

	resp := DispatchResponse{
		Success:     result.Failed == 0,
		Sent:        result.Sent,
		Failed:      result.Failed,
		ProcessedAt: h.clock.Now().Format(time.RFC3339),
	}
	h.respond(w, resp.Success, resp)
}

// HealthCheck handles GET /cron/health
func (h *SettlementHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   h.clock.Now().Format(time.RFC3339),
	})
}

func (h *SettlementHandler) requireSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.authenticateRequest(r) {
			h.logger.Warn("Unauthorized cron request",
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
			)
			h.respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authenticateRequest accepts the secret in X-Cron-Secret or as a bearer token
func (h *SettlementHandler) authenticateRequest(r *http.Request) bool {
	if h.cronSecret == "" {
		return false
	}
	if secretMatches(r.Header.Get("X-Cron-Secret"), h.cronSecret) {
		return true
	}
	return secretMatches(r.Header.Get("Authorization"), "Bearer "+h.cronSecret)
}

func secretMatches(got, want string) bool {
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func parseBatchSize(r *http.Request) (int, error) {
	var req BatchRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return 0, fmt.Errorf("invalid request body: %v", err)
		}
	}
	if req.BatchSize == nil {
		return defaultBatchSize, nil
	}
	if *req.BatchSize < 1 || *req.BatchSize > maxBatchSize {
		return 0, fmt.Errorf("batch_size must be between 1 and %d", maxBatchSize)
	}
	return *req.BatchSize, nil
}

// respond writes 200 on full success and 206 when part of the batch failed
func (h *SettlementHandler) respond(w http.ResponseWriter, success bool, body interface{}) {
	status := http.StatusOK
	if !success {
		status = http.StatusPartialContent
	}
	h.writeJSON(w, status, body)
}

func (h *SettlementHandler) respondError(w http.ResponseWriter, statusCode int, message string) {
	h.writeJSON(w, statusCode, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

func (h *SettlementHandler) writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
