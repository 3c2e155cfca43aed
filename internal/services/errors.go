package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateFile = errors.New("duplicate file")
	ErrDecode        = errors.New("decode failure")
	ErrMetadataRead  = errors.New("metadata read failure")
	ErrMetadataWrite = errors.New("metadata write failure")
	ErrCopy          = errors.New("copy failure")
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrLocked        = errors.New("library locked")
)

// Error kinds reported alongside per-item batch outcomes.
const (
	KindNone          = ""
	KindDuplicateFile = "duplicate_file"
	KindDecode        = "decode_failure"
	KindMetadataRead  = "metadata_read_failure"
	KindMetadataWrite = "metadata_write_failure"
	KindCopy          = "copy_failure"
	KindNotFound      = "not_found"
	KindValidation    = "validation"
	KindConfiguration = "configuration"
	KindLocked        = "locked"
	KindCanceled      = "canceled"
	KindUnclassified  = "unclassified"
)

// Wrap builds an error message that includes operation context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		return fmt.Errorf("%s: %w", detail, err)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind maps an error to the stable kind string used in outcome reports.
func Kind(err error) string {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrDuplicateFile):
		return KindDuplicateFile
	case errors.Is(err, ErrDecode):
		return KindDecode
	case errors.Is(err, ErrMetadataRead):
		return KindMetadataRead
	case errors.Is(err, ErrMetadataWrite):
		return KindMetadataWrite
	case errors.Is(err, ErrCopy):
		return KindCopy
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrLocked):
		return KindLocked
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindUnclassified
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "library failure"
	}
	return strings.Join(parts, ": ")
}
