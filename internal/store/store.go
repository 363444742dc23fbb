package store

import (
	"errors"
	"log/slog"
	"strings"
	"time"
)

var (
	// ErrDuplicate is returned when a write violates a UNIQUE constraint.
	ErrDuplicate = errors.New("duplicate value")
	// ErrHasChildren is returned when deleting a category that is still a parent.
	ErrHasChildren = errors.New("category has subcategories")
)

// Timestamps are stored as Unix milliseconds so range filters compare numbers.
func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

type rowCloser interface {
	Close() error
}

func closeRows(rows rowCloser) {
	if err := rows.Close(); err != nil {
		slog.Error("failed to close rows", "error", err)
	}
}
