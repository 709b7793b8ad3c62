package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/khanhnv2901/headercheck/internal/auditor"
	sharedErrors "github.com/khanhnv2901/headercheck/internal/shared/errors"
)

func TestAuditFailedErrorMessage(t *testing.T) {
	err := &AuditFailedError{
		Target: "example.com",
		Result: &auditor.ErrorResult{
			Kind:    auditor.KindValidation,
			Message: auditor.ValidationMessage,
			Err:     sharedErrors.ErrMissingScheme,
		},
	}

	msg := err.Error()
	for _, want := range []string{`"example.com"`, "validation", auditor.ValidationMessage} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}

	if !errors.Is(err, sharedErrors.ErrMissingScheme) {
		t.Fatal("expected unwrap chain to reach ErrMissingScheme")
	}

	var er *auditor.ErrorResult
	if !errors.As(err, &er) || er.Kind != auditor.KindValidation {
		t.Fatalf("expected ErrorResult in chain, got %v", er)
	}
}

func TestAuditFailedErrorWithoutResult(t *testing.T) {
	err := &AuditFailedError{Target: "https://example.com"}
	if got := err.Error(); got != `audit of "https://example.com" failed` {
		t.Fatalf("unexpected message: %s", got)
	}
	if err.Unwrap() != nil {
		t.Fatal("expected nil unwrap without result")
	}
}
