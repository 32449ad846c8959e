package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType names an audit event.
type EventType string

const (
	EventSubmissionAccepted EventType = "submission_accepted"
	EventSubmissionRejected EventType = "submission_rejected"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventRoleAssigned       EventType = "role_assigned"
	EventRoleMismatch       EventType = "role_mismatch"
	EventCandidateExport    EventType = "candidate_export"
)

// AuditEvent is one entry in the audit trail. Subject is masked before it
// is written.
type AuditEvent struct {
	Event     EventType
	Subject   string
	IP        string
	RequestID string
	Details   map[string]interface{}
}

// AuditLogger writes audit events through zap.
type AuditLogger struct {
	log         *zap.Logger
	serviceName string
	environment string
}

// InitAuditLogger builds a production JSON logger on stdout.
func InitAuditLogger(serviceName, environment string) *AuditLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		l, _ = zap.NewProduction()
	}
	return NewAuditLogger(l, serviceName, environment)
}

// NewAuditLogger wraps an existing zap logger.
func NewAuditLogger(l *zap.Logger, serviceName, environment string) *AuditLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &AuditLogger{log: l, serviceName: serviceName, environment: environment}
}

// NopAuditLogger discards everything.
func NopAuditLogger() *AuditLogger {
	return NewAuditLogger(zap.NewNop(), "", "")
}

func levelFor(e EventType) zapcore.Level {
	switch e {
	case EventSubmissionAccepted, EventRoleAssigned, EventCandidateExport:
		return zapcore.InfoLevel
	case EventUnauthorizedAccess:
		return zapcore.ErrorLevel
	}
	return zapcore.WarnLevel
}

// Log writes e. A nil *AuditLogger discards it.
func (a *AuditLogger) Log(_ context.Context, e AuditEvent) {
	if a == nil {
		return
	}
	fields := []zap.Field{
		zap.String("service", a.serviceName),
		zap.String("env", a.environment),
		zap.String("event", string(e.Event)),
	}
	if e.Subject != "" {
		fields = append(fields, zap.String("subject", MaskEmail(e.Subject)))
	}
	if e.IP != "" {
		fields = append(fields, zap.String("ip", e.IP))
	}
	if e.RequestID != "" {
		fields = append(fields, zap.String("request_id", e.RequestID))
	}
	if len(e.Details) > 0 {
		fields = append(fields, zap.Any("details", e.Details))
	}
	a.log.Log(levelFor(e.Event), string(e.Event), fields...)
}

func (a *AuditLogger) SubmissionAccepted(ctx context.Context, email, candidateID string) {
	a.Log(ctx, AuditEvent{Event: EventSubmissionAccepted, Subject: email, Details: map[string]interface{}{"candidate_id": candidateID}})
}

func (a *AuditLogger) SubmissionRejected(ctx context.Context, email, reason string) {
	a.Log(ctx, AuditEvent{Event: EventSubmissionRejected, Subject: email, Details: map[string]interface{}{"reason": reason}})
}

func (a *AuditLogger) RateLimitTriggered(ctx context.Context, ip, requestID, endpoint string) {
	a.Log(ctx, AuditEvent{Event: EventRateLimitTriggered, IP: ip, RequestID: requestID, Details: map[string]interface{}{"endpoint": endpoint}})
}

func (a *AuditLogger) UnauthorizedAccess(ctx context.Context, ip, requestID, reason string) {
	a.Log(ctx, AuditEvent{Event: EventUnauthorizedAccess, IP: ip, RequestID: requestID, Details: map[string]interface{}{"reason": reason}})
}

func (a *AuditLogger) RoleAssigned(ctx context.Context, email, role string) {
	a.Log(ctx, AuditEvent{Event: EventRoleAssigned, Subject: email, Details: map[string]interface{}{"role": role}})
}

func (a *AuditLogger) RoleMismatch(ctx context.Context, email, have, want string) {
	a.Log(ctx, AuditEvent{Event: EventRoleMismatch, Subject: email, Details: map[string]interface{}{"role": have, "intended": want}})
}

func (a *AuditLogger) CandidateExport(ctx context.Context, email, format string, rows int) {
	a.Log(ctx, AuditEvent{Event: EventCandidateExport, Subject: email, Details: map[string]interface{}{"format": format, "rows": rows}})
}

// Sync flushes any buffered log entries
func (a *AuditLogger) Sync() error {
	if a == nil {
		return nil
	}
	return a.log.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	switch {
	case len(email) < 3:
		return "***"
	case at < 0:
		return HashValue(email)
	case at <= 1:
		return "***" + email[at:]
	}
	return email[:1] + "***" + email[at:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}
