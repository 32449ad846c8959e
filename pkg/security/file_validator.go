package security

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Purpose selects the whitelist a file is checked against.
type Purpose int

const (
	PurposeResume Purpose = iota
	PurposePicture
	PurposeVideo
	PurposeAudio
)

const (
	MaxResumeBytes  = 5 << 20
	MaxPictureBytes = 2 << 20
	MaxMediaBytes   = 50 << 20
)

var (
	ErrEmptyFile      = errors.New("file is empty")
	ErrFileTooLarge   = errors.New("file is too large")
	ErrFileType       = errors.New("file type not allowed")
	ErrContentSpoofed = errors.New("file content does not match extension")
)

type policy struct {
	maxBytes   int
	extensions map[string]bool
	mimes      map[string]bool
}

var policies = map[Purpose]policy{
	PurposeResume: {
		maxBytes:   MaxResumeBytes,
		extensions: map[string]bool{".pdf": true, ".doc": true, ".docx": true},
		mimes: map[string]bool{
			"application/pdf":    true,
			"application/msword": true,
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
			// OLE and ZIP containers the detector could not narrow down
			"application/x-ole-storage": true,
			"application/zip":           true,
		},
	},
	PurposePicture: {
		maxBytes:   MaxPictureBytes,
		extensions: map[string]bool{".jpg": true, ".jpeg": true, ".png": true},
		mimes:      map[string]bool{"image/jpeg": true, "image/png": true},
	},
	PurposeVideo: {
		maxBytes:   MaxMediaBytes,
		extensions: map[string]bool{".webm": true},
		mimes:      map[string]bool{"video/webm": true, "audio/webm": true, "video/x-matroska": true},
	},
	PurposeAudio: {
		maxBytes:   MaxMediaBytes,
		extensions: map[string]bool{".webm": true},
		mimes:      map[string]bool{"audio/webm": true, "video/webm": true, "video/x-matroska": true},
	},
}

// Magic byte prefixes per extension. WebM is EBML.
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},
	".docx": {{0x50, 0x4B, 0x03, 0x04}},
	".webm": {{0x1A, 0x45, 0xDF, 0xA3}},
}

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool
	Extension    string
	DetectedMIME string
	Err          error
}

// ValidateFile checks size, the extension whitelist, the magic bytes and
// the detected MIME type, in that order.
func ValidateFile(p Purpose, filename string, data []byte) FileValidationResult {
	var result FileValidationResult
	pol, ok := policies[p]
	if !ok {
		result.Err = ErrFileType
		return result
	}
	if len(data) == 0 {
		result.Err = ErrEmptyFile
		return result
	}
	if len(data) > pol.maxBytes {
		result.Err = fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, len(data), pol.maxBytes)
		return result
	}

	ext := strings.ToLower(filepath.Ext(filename))
	result.Extension = ext
	if !pol.extensions[ext] {
		result.Err = fmt.Errorf("%w: %q", ErrFileType, ext)
		return result
	}
	if !hasMagic(ext, data) {
		result.Err = ErrContentSpoofed
		return result
	}

	mime := mimetype.Detect(data)
	result.DetectedMIME = mime.String()
	if !allowedMIME(pol, mime) {
		result.Err = fmt.Errorf("%w: %s", ErrFileType, mime.String())
		return result
	}

	result.Valid = true
	return result
}

// DetectMIME returns the detected content type without parameters.
func DetectMIME(data []byte) string {
	return mimetype.Detect(data).String()
}

func allowedMIME(pol policy, m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		base, _, _ := strings.Cut(m.String(), ";")
		if pol.mimes[base] {
			return true
		}
	}
	return false
}

func hasMagic(ext string, data []byte) bool {
	for _, sig := range magicBytes[ext] {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// IsImageExtension checks if the extension is an image type
func IsImageExtension(ext string) bool {
	ext = strings.ToLower(ext)
	return ext == ".jpg" || ext == ".jpeg" || ext == ".png"
}
