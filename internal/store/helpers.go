package store

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"categoryassign/internal/services"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func parseTimeOrZero(value sql.NullString) time.Time {
	t, err := parseTimeString(value.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

func validationError(operation, message string) error {
	return services.Wrap(services.ErrValidation, "store", operation, message, nil)
}

// constraintError maps SQLite constraint failures to a validation error so
// callers can report bad input instead of a storage failure.
func constraintError(operation string, err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return services.Wrap(services.ErrConflict, "store", operation, "already exists", err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return services.Wrap(services.ErrValidation, "store", operation, "references a missing category or stage", err)
	}
	return services.Wrap(services.ErrTransient, "store", operation, "", err)
}
