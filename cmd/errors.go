package cmd

import (
	"fmt"

	"github.com/khanhnv2901/headercheck/internal/auditor"
)

// AuditFailedError is returned by `check --fail-on-error` so the process
// exits non-zero when no CheckResult could be produced.
type AuditFailedError struct {
	Target string
	Result *auditor.ErrorResult
}

func (e *AuditFailedError) Error() string {
	if e.Result == nil {
		return fmt.Sprintf("audit of %q failed", e.Target)
	}
	return fmt.Sprintf("audit of %q failed (%s): %s", e.Target, e.Result.Kind, e.Result.Message)
}

func (e *AuditFailedError) Unwrap() error {
	if e.Result == nil {
		return nil
	}
	return e.Result
}
