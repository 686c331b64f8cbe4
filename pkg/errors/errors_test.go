package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeIdempotency, status: http.StatusConflict, publicMsg: "idempotency key reused", detailsOK: true},
		{code: CodePaymentNotCompleted, status: http.StatusBadRequest, publicMsg: "payment not completed", detailsOK: true},
		{code: CodePaymentProvider, status: http.StatusBadGateway, publicMsg: "payment provider error", detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing product")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing product" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	detail := map[string]any{"field": "product"}
	base.WithDetails(detail)
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeDependency, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestWrapNilCause(t *testing.T) {
	wrapped := Wrap(CodeNotFound, nil, "missing")
	if wrapped.Code() != CodeNotFound {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
	if wrapped.Unwrap() != nil {
		t.Fatalf("expected nil cause")
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodePaymentNotCompleted, "payment was not successful")
	typed := As(err)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodePaymentNotCompleted {
		t.Fatalf("unexpected code %s", typed.Code())
	}

	if As(stdErrors.New("plain")) != nil {
		t.Fatal("plain errors should not convert")
	}
	if As(nil) != nil {
		t.Fatal("nil should not convert")
	}
}
