package db

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether the provided error is a unique constraint
// violation. When constraintName is provided, the violation must reference
// that constraint. Falls back to message inspection for drivers that do not
// surface typed errors (sqlite in tests).
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code != uniqueViolationCode {
			return false
		}
		if constraintName != "" {
			return pqErr.Constraint == constraintName || strings.Contains(pqErr.Message, constraintName)
		}
		return true
	}

	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}
