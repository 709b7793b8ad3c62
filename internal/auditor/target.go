package auditor

import (
	"strings"

	sharedErrors "github.com/khanhnv2901/headercheck/internal/shared/errors"
)

// ValidationMessage is shown when the submitted URL lacks a scheme.
const ValidationMessage = "Please include http:// or https:// in the URL."

// NormalizeTarget trims surrounding whitespace and checks for a literal
// http:// or https:// prefix. The prefix check is case-sensitive.
func NormalizeTarget(raw string) (string, error) {
	target := strings.TrimSpace(raw)
	if !strings.HasPrefix(target, httpPrefix) && !strings.HasPrefix(target, httpsPrefix) {
		return "", &ErrorResult{
			Kind:    KindValidation,
			Message: ValidationMessage,
			Err:     sharedErrors.ErrMissingScheme,
		}
	}
	return target, nil
}

func isHTTPS(u string) bool {
	return strings.HasPrefix(u, httpsPrefix)
}
