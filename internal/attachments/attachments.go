// Package attachments turns uploaded files into inline data URL attachments
package attachments

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/peertutor/backend/internal/models"
)

// Kind identifies which attachment slot of a course a file is uploaded for
type Kind string

const (
	KindCoverImage     Kind = "coverImage"
	KindCourseDocument Kind = "courseDocument"
)

const pdfContentType = "application/pdf"

var (
	// ErrUnsupportedType is returned when the file content does not fit the attachment kind
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrEmptyFile is returned when the uploaded file has no content
	ErrEmptyFile = errors.New("file is empty")
	// ErrInvalidDataURL is returned when an attachment does not hold a base64 data URL
	ErrInvalidDataURL = errors.New("invalid data URL")
)

// Encode reads the file and embeds it as a data URL.
//
// Cover images must be images and course documents must be PDF files; the type is detected from
// the content, not from the file name. The file name is kept on the attachment.
func Encode(r io.Reader, filename string, kind Kind) (*models.Attachment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	detected := mimetype.Detect(data)
	contentType := detected.String()
	switch kind {
	case KindCoverImage:
		if !strings.HasPrefix(contentType, "image/") {
			return nil, fmt.Errorf("%w: cover image must be an image, got %s", ErrUnsupportedType, contentType)
		}
	case KindCourseDocument:
		if !detected.Is(pdfContentType) {
			return nil, fmt.Errorf("%w: course document must be a PDF, got %s", ErrUnsupportedType, contentType)
		}
		contentType = pdfContentType
	default:
		return nil, fmt.Errorf("unknown attachment kind: %s", kind)
	}

	return &models.Attachment{
		Name: filename,
		Data: "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// Decode extracts the content type and the raw bytes of an attachment
func Decode(attachment *models.Attachment) (string, []byte, error) {
	if attachment == nil {
		return "", nil, fmt.Errorf("%w: attachment is missing", ErrInvalidDataURL)
	}

	header, payload, found := strings.Cut(attachment.Data, ",")
	if !found || !strings.HasPrefix(header, "data:") {
		return "", nil, ErrInvalidDataURL
	}

	contentType, isBase64 := strings.CutSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("%w: only base64 payloads are supported", ErrInvalidDataURL)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}

	return contentType, data, nil
}
