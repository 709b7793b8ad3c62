// Package auditor implements the security header audit behind headercheck.
//
// Architecture overview:
//
//   - Headers returns a copy of the fixed, ordered watch-list of five
//     response headers.
//   - Auditor.Check validates the URL, issues exactly one GET (10 second
//     timeout, default redirect following) and evaluates the watch-list
//     against the response headers of the final URL.
//   - A successful audit yields a *CheckResult; every failure yields an
//     *ErrorResult, which also implements error. Outcome folds the two into
//     the single document rendered by the CLI and the web form.
//
// HTTP status codes are never treated as failures: a 404 or 500 response is
// audited exactly like a 200.
package auditor
