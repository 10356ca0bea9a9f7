package services

import (
	"context"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
)

// AuditPublisher is the outbound port for structured audit events. The engine
// emits one event for every post, mapping change and reversal outcome; delivery
// and format of the sink are external concerns.
type AuditPublisher interface {
	Publish(ctx context.Context, event domain.AuditEvent)
}
