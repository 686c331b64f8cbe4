package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolationTypedError(t *testing.T) {
	pqErr := &pq.Error{
		Code:       "23505",
		Constraint: "idx_orders_checkout_session",
		Message:    `duplicate key value violates unique constraint "idx_orders_checkout_session"`,
	}

	if !IsUniqueViolation(pqErr, "") {
		t.Fatal("expected unique violation without constraint filter")
	}
	if !IsUniqueViolation(pqErr, "idx_orders_checkout_session") {
		t.Fatal("expected match on constraint name")
	}
	if !IsUniqueViolation(fmt.Errorf("create order: %w", pqErr), "checkout_session") {
		t.Fatal("expected match on wrapped error and partial name")
	}
	if IsUniqueViolation(pqErr, "idx_other") {
		t.Fatal("unexpected match for unrelated constraint")
	}

	otherCode := &pq.Error{Code: "23503"}
	if IsUniqueViolation(otherCode, "") {
		t.Fatal("foreign key violations are not unique violations")
	}
}

func TestIsUniqueViolationMessageFallback(t *testing.T) {
	if !IsUniqueViolation(errors.New("UNIQUE constraint failed: orders.checkout_session_id"), "") {
		t.Fatal("expected sqlite message to match")
	}
	if !IsUniqueViolation(errors.New("UNIQUE constraint failed: orders.checkout_session_id"), "checkout_session") {
		t.Fatal("expected sqlite message to match constraint substring")
	}
	if IsUniqueViolation(errors.New("connection refused"), "") {
		t.Fatal("unrelated errors must not match")
	}
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error must not match")
	}
}
