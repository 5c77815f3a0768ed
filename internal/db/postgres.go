package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Poleswar/netsuite-order-sync/internal/models"
)

// AuditLogStore persists integration outcomes to the append-only
// integration_log table. Entries are never updated or deleted here.
type AuditLogStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewAuditLogStore(ctx context.Context, connString string, logger *slog.Logger) (*AuditLogStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres pool config: %w", err)
	}

	p, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := p.Ping(ctx); err != nil {
		return nil, fmt.Errorf("no response from postgres: %w", err)
	}

	return &AuditLogStore{pool: p, logger: logger}, nil
}

// Append records one integration attempt.
func (s *AuditLogStore) Append(ctx context.Context, e models.AuditEntry) error {
	query := `
		INSERT INTO integration_log
			(attempt_id, order_id, channel, source, request_body, response_body, success, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.pool.Exec(ctx, query,
		e.AttemptID, e.OrderID, e.Channel, e.Source, e.Request, e.Response, e.Success, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func (s *AuditLogStore) Close() {
	s.logger.Info("Closing Postgres audit log pool")
	s.pool.Close()
}
