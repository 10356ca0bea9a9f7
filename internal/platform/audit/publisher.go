// Package audit provides the engine's audit event sink.
package audit

import (
	"context"
	"log/slog"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	portssvc "github.com/kelvinbaffour/branchledger/internal/core/ports/services"
	"github.com/kelvinbaffour/branchledger/internal/middleware"
)

// slogPublisher writes audit events to the request-scoped structured logger.
// The JSON log stream is the audit trail's transport; shipping it somewhere
// durable is the log pipeline's job.
type slogPublisher struct{}

// NewSlogPublisher creates an AuditPublisher backed by slog.
func NewSlogPublisher() portssvc.AuditPublisher {
	return &slogPublisher{}
}

var _ portssvc.AuditPublisher = (*slogPublisher)(nil)

func (p *slogPublisher) Publish(ctx context.Context, event domain.AuditEvent) {
	logger := middleware.GetLoggerFromCtx(ctx)

	attrs := []slog.Attr{
		slog.String("audit_action", event.Action),
		slog.String("entity_type", event.EntityType),
		slog.String("entity_id", event.EntityID),
		slog.String("actor_id", event.ActorID),
		slog.String("branch_id", event.BranchID),
	}
	if len(event.Details) > 0 {
		attrs = append(attrs, slog.Any("details", event.Details))
	}

	level := slog.LevelInfo
	switch event.Severity {
	case domain.SeverityWarning:
		level = slog.LevelWarn
	case domain.SeverityCritical:
		level = slog.LevelError
	}
	logger.LogAttrs(ctx, level, "audit", attrs...)
}
