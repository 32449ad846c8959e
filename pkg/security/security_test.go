package security_test

import (
	"context"
	"testing"
	"time"

	"hireable-backend/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAuditLogger(t *testing.T) {
	ctx := context.Background()

	t.Run("Submission events mask the subject", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		audit := security.NewAuditLogger(zap.New(core), "hireable", "test")

		audit.SubmissionAccepted(ctx, "jane@example.com", "c-1")

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.InfoLevel, entry.Level)
		assert.Equal(t, "submission_accepted", entry.Message)
		fields := entry.ContextMap()
		assert.Equal(t, "j***@example.com", fields["subject"])
		assert.Equal(t, "hireable", fields["service"])
	})

	t.Run("Access failures are logged at error level", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		audit := security.NewAuditLogger(zap.New(core), "hireable", "test")

		audit.UnauthorizedAccess(ctx, "10.0.0.1", "req-1", "missing token")
		audit.RoleMismatch(ctx, "bob@example.com", "candidate", "employer")

		require.Equal(t, 2, logs.Len())
		assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
		assert.Equal(t, "req-1", logs.All()[0].ContextMap()["request_id"])
		assert.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
	})

	t.Run("Nil logger is tolerated", func(t *testing.T) {
		assert.NotPanics(t, func() {
			security.NewAuditLogger(nil, "", "").CandidateExport(ctx, "a@b.co", "xlsx", 3)
		})
	})
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", security.MaskEmail("jane@example.com"))
	assert.Equal(t, "***@example.com", security.MaskEmail("j@example.com"))
	assert.Equal(t, "***", security.MaskEmail("ab"))
	assert.Equal(t, security.HashValue("no-at-sign"), security.MaskEmail("no-at-sign"))
}

func TestUploadLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("Per-IP burst is enforced without Redis", func(t *testing.T) {
		ul := security.NewUploadLimiter(nil, 2, 100)
		for i := 0; i < 2; i++ {
			ok, _, err := ul.AllowUpload(ctx, "10.0.0.1", "")
			require.NoError(t, err)
			assert.True(t, ok)
		}
		ok, wait, err := ul.AllowUpload(ctx, "10.0.0.1", "")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, time.Minute, wait)

		ok, _, _ = ul.AllowUpload(ctx, "10.0.0.2", "")
		assert.True(t, ok, "other addresses are unaffected")
	})

	t.Run("Per-user daily cap applies across addresses", func(t *testing.T) {
		ul := security.NewUploadLimiter(nil, 100, 1)
		ok, _, _ := ul.AllowUpload(ctx, "10.0.0.1", "jane@example.com")
		assert.True(t, ok)
		ok, wait, _ := ul.AllowUpload(ctx, "10.0.0.2", "jane@example.com")
		assert.False(t, ok)
		assert.Equal(t, 24*time.Hour, wait)
	})
}
