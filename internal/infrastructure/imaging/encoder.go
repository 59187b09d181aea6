package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/menuscan/backend/internal/domain"
)

// MaxImageBytes is the largest image accepted for inline upload to the model (20MB)
const MaxImageBytes = 20 * 1024 * 1024

// acceptedMIMETypes are the image types the model endpoint accepts inline
var acceptedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

// Encode reads the whole stream and returns it base64 encoded
func Encode(r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("%w: nil reader", domain.ErrEncoding)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}

	return EncodeBytes(data)
}

// EncodeBytes base64 encodes an in-memory image
func EncodeBytes(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image stream", domain.ErrEncoding)
	}
	if len(data) > MaxImageBytes {
		return "", fmt.Errorf("%w: image exceeds %d bytes", domain.ErrEncoding, MaxImageBytes)
	}

	var buf bytes.Buffer
	buf.Grow(base64.StdEncoding.EncodedLen(len(data)))
	enc := base64.NewEncoder(base64.StdEncoding, &buf)
	if _, err := enc.Write(data); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}

	return buf.String(), nil
}

// DetectMIMEType sniffs the content type from the image bytes, without parameters
func DetectMIMEType(data []byte) string {
	mtype := mimetype.Detect(data)
	return NormalizeMIMEType(mtype.String())
}

// NormalizeMIMEType lowercases a MIME type and drops any parameters
func NormalizeMIMEType(mimeType string) string {
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if mimeType == "image/jpg" {
		return "image/jpeg"
	}
	return mimeType
}

// IsAcceptedMIMEType checks whether the model accepts this image type inline
func IsAcceptedMIMEType(mimeType string) bool {
	return acceptedMIMETypes[NormalizeMIMEType(mimeType)]
}
