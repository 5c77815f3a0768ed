package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Poleswar/netsuite-order-sync/internal/models"
	"github.com/Poleswar/netsuite-order-sync/internal/netsuite"
	"github.com/Poleswar/netsuite-order-sync/internal/payload"
	"github.com/Poleswar/netsuite-order-sync/pkg/metrics"
)

// OrderRepository defines the source-store access contract for the pipeline
type OrderRepository interface {
	FetchBatch(ctx context.Context, orderIDs []string) ([]models.OrderWithTerms, error)
	SetNSOrderID(ctx context.Context, orderID, nsOrderID string) error
}

// AuditLog defines the append-only outcome sink contract
type AuditLog interface {
	Append(ctx context.Context, entry models.AuditEntry) error
}

// IntegrationClient defines the outbound callout contract
type IntegrationClient interface {
	SyncOrder(ctx context.Context, body payload.Order, bearerToken string) netsuite.Result
}

// SyncService runs one batch of order synchronizations end to end: token
// once, then a strictly sequential per-order loop of assemble, call, audit
// and conditional write-back. It is the only component with cross-layer
// knowledge.
type SyncService struct {
	repo   OrderRepository
	audit  AuditLog
	client IntegrationClient
	tokens netsuite.TokenSource
	logger *slog.Logger
}

func NewSyncService(repo OrderRepository, audit AuditLog, client IntegrationClient, tokens netsuite.TokenSource, logger *slog.Logger) *SyncService {
	return &SyncService{
		repo:   repo,
		audit:  audit,
		client: client,
		tokens: tokens,
		logger: logger,
	}
}

// RunBatch is the pipeline entry point. It is fire-and-forget: outcomes
// surface only through the audit log and the write-back side effect, and
// nothing — not even a panic in a collaborator — escapes to the trigger.
func (s *SyncService) RunBatch(ctx context.Context, orderIDs []string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Batch aborted by panic", "panic", r)
		}
	}()

	start := time.Now()
	metrics.BatchSize.Observe(float64(len(orderIDs)))
	defer func() {
		metrics.BatchDuration.Observe(time.Since(start).Seconds())
	}()

	if err := s.ready(); err != nil {
		// Configuration error: exit with zero orders processed
		s.logger.Error("Batch skipped: integration not configured", "error", err)
		return
	}
	if len(orderIDs) == 0 {
		return
	}

	// One token per batch, shared read-only by every order attempt.
	// If issuance fails no callout happens and no order is touched.
	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.logger.Error("Token issuance failed, aborting batch", "error", err, "orders", len(orderIDs))
		s.appendAudit(ctx, models.AuditEntry{
			AttemptID: uuid.NewString(),
			Channel:   models.ChannelNetSuite,
			Source:    models.SourceToken,
			Response:  err.Error(),
			CreatedAt: time.Now(),
		})
		return
	}

	orders, err := s.repo.FetchBatch(ctx, orderIDs)
	if err != nil {
		s.logger.Error("Batch fetch failed, no orders processed", "error", err)
		return
	}

	s.logger.Info("Batch started", "requested", len(orderIDs), "fetched", len(orders))

	for _, ow := range orders {
		s.syncOne(ctx, ow, token)
	}

	s.logger.Info("Batch finished", "count", len(orders), "duration_ms", time.Since(start).Milliseconds())
}

// syncOne performs exactly one attempt for one order. Failures are isolated:
// they are audited and the loop moves on.
func (s *SyncService) syncOne(ctx context.Context, ow models.OrderWithTerms, token string) {
	orderID := ow.Order.ID
	l := s.logger.With("order_id", orderID)

	body := payload.Build(ow)

	callStart := time.Now()
	res := s.client.SyncOrder(ctx, body, token)
	metrics.CalloutDuration.Observe(time.Since(callStart).Seconds())

	status := "failure"
	if res.Success {
		status = "success"
	}
	metrics.OrdersSynced.WithLabelValues(status).Inc()

	s.appendAudit(ctx, models.AuditEntry{
		AttemptID: uuid.NewString(),
		OrderID:   orderID,
		Channel:   models.ChannelNetSuite,
		Source:    models.SourceOrderSync,
		Request:   string(res.RequestBody),
		Response:  res.ResponseBody,
		Success:   res.Success,
		CreatedAt: time.Now(),
	})

	if !res.Success {
		l.Warn("Order synchronization failed", "http_status", res.HTTPStatus)
		return
	}

	if res.ExternalID == "" {
		l.Info("Order synchronized, response carried no external ID")
		return
	}

	// Write-once: an order that already carries its NetSuite ID is never
	// overwritten, regardless of what a later response says.
	if ow.Order.NSOrderID.Valid && ow.Order.NSOrderID.String != "" {
		l.Debug("External ID already set, write-back skipped", "ns_order_id", ow.Order.NSOrderID.String)
		return
	}

	if err := s.repo.SetNSOrderID(ctx, orderID, res.ExternalID); err != nil {
		// The external call succeeded; the sync itself is done. The local
		// update failure is its own outcome and must not mask the success.
		l.Error("External ID write-back failed", "ns_order_id", res.ExternalID, "error", err)
		metrics.WriteBackFailures.Inc()
		s.appendAudit(ctx, models.AuditEntry{
			AttemptID: uuid.NewString(),
			OrderID:   orderID,
			Channel:   models.ChannelNetSuite,
			Source:    models.SourceWriteBack,
			Request:   res.ExternalID,
			Response:  err.Error(),
			CreatedAt: time.Now(),
		})
		return
	}

	l.Info("Order synchronized", "ns_order_id", res.ExternalID)
}

func (s *SyncService) appendAudit(ctx context.Context, e models.AuditEntry) {
	if err := s.audit.Append(ctx, e); err != nil {
		// The sink is best-effort; a dead audit store must not stop the batch
		s.logger.Error("Audit log append failed", "order_id", e.OrderID, "source", e.Source, "error", err)
	}
}

func (s *SyncService) ready() error {
	switch {
	case s.repo == nil:
		return fmt.Errorf("order repository not configured")
	case s.audit == nil:
		return fmt.Errorf("audit log not configured")
	case s.client == nil:
		return fmt.Errorf("integration client not configured")
	case s.tokens == nil:
		return fmt.Errorf("token source not configured")
	}
	return nil
}
