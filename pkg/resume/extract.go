// Package resume pulls searchable text out of uploaded resumes.
package resume

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"code.sajari.com/docconv"
)

// MaxTextLength bounds the stored resume text.
const MaxTextLength = 64 << 10

var ErrUnsupported = errors.New("resume: unsupported document type")

var supported = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// Extractor implements domain.TextExtractor on top of docconv.
type Extractor struct {
	convert func(data []byte, contentType string) (string, error)
}

func NewExtractor() *Extractor {
	return &Extractor{convert: convertDocconv}
}

func convertDocconv(data []byte, contentType string) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), contentType, false)
	if err != nil {
		return "", err
	}
	return res.Body, nil
}

// ExtractText returns normalised plain text. Unsupported types yield
// ErrUnsupported.
func (e *Extractor) ExtractText(ctx context.Context, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	base, _, _ := strings.Cut(contentType, ";")
	if !supported[strings.TrimSpace(base)] {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, contentType)
	}
	text, err := e.convert(data, strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("failed to parse document: %w", err)
	}
	return Normalize(text), nil
}

// Normalize collapses whitespace runs and truncates to MaxTextLength.
func Normalize(text string) string {
	text = strings.Join(strings.FieldsFunc(text, unicode.IsSpace), " ")
	if len(text) > MaxTextLength {
		text = text[:MaxTextLength]
		// Do not leave half a UTF-8 sequence behind.
		text = strings.ToValidUTF8(text, "")
	}
	return text
}
