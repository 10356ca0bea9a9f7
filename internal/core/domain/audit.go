package domain

// AuditSeverity grades an audit event.
type AuditSeverity string

const (
	SeverityInfo     AuditSeverity = "INFO"
	SeverityWarning  AuditSeverity = "WARNING"
	SeverityCritical AuditSeverity = "CRITICAL"
)

// AuditEvent is the structured event emitted for every post, mapping change and
// reversal outcome. Delivery and storage of the sink are external concerns.
type AuditEvent struct {
	Action     string         `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityID"`
	ActorID    string         `json:"actorID"`
	BranchID   string         `json:"branchID"`
	Severity   AuditSeverity  `json:"severity"`
	Details    map[string]any `json:"details,omitempty"`
}
