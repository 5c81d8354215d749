package domain

// EventType classifies what happened. New types can be added freely; the
// chain format does not depend on the set.
type EventType string

const (
	EventPIIScan         EventType = "PII_SCAN"
	EventUserDecision    EventType = "USER_DECISION"
	EventAPIRequest      EventType = "API_REQUEST"
	EventAPIResponse     EventType = "API_RESPONSE"
	EventAuditLogCleared EventType = "AUDIT_LOG_CLEARED"
	EventSystem          EventType = "SYSTEM"
)

// Severity grades an event for diagnostics and review filtering.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityError    Severity = "ERROR"
	SeverityCritical Severity = "CRITICAL"
)

// Actor identifies who initiated the recorded action.
type Actor string

const (
	ActorUser     Actor = "USER"
	ActorSystem   Actor = "SYSTEM"
	ActorProvider Actor = "PROVIDER"
)

// Integrity check names reported by the chain verifier.
const (
	CheckSequence  = "sequence"
	CheckLinkage   = "linkage"
	CheckContent   = "content"
	CheckSignature = "signature"
)
