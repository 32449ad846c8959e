package resume

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	ctx := context.Background()
	e := &Extractor{convert: func(data []byte, contentType string) (string, error) {
		if contentType != "application/pdf" {
			return "", errors.New("unexpected type " + contentType)
		}
		return "  Senior\n\nGo   engineer\t(Kubernetes) ", nil
	}}

	t.Run("Text is normalised", func(t *testing.T) {
		text, err := e.ExtractText(ctx, []byte("%PDF"), "application/pdf; charset=binary")
		require.NoError(t, err)
		assert.Equal(t, "Senior Go engineer (Kubernetes)", text)
	})

	t.Run("Images are not parsed", func(t *testing.T) {
		_, err := e.ExtractText(ctx, []byte{0xFF, 0xD8}, "image/jpeg")
		assert.ErrorIs(t, err, ErrUnsupported)
	})
}

func TestNormalizeTruncates(t *testing.T) {
	long := strings.Repeat("é", MaxTextLength)
	out := Normalize(long)
	assert.LessOrEqual(t, len(out), MaxTextLength)
	assert.True(t, strings.HasSuffix(out, "é"))
}
