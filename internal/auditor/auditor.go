package auditor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	consts "github.com/khanhnv2901/headercheck/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/headercheck/internal/shared/errors"
	"go.uber.org/zap"
)

// Auditor checks a single URL for the watch-list security headers.
// It holds no per-request state and is safe for concurrent use.
type Auditor struct {
	client *http.Client
	logger *zap.Logger
}

// Option configures an Auditor.
type Option func(*Auditor)

// WithHTTPClient replaces the default client. Tests use it to trust
// httptest TLS certificates.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Auditor) {
		if c != nil {
			a.client = c
		}
	}
}

// WithLogger attaches a structured logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(a *Auditor) {
		if l != nil {
			a.logger = l
		}
	}
}

// New returns an Auditor using a client with the fixed request timeout and
// the standard redirect policy.
func New(opts ...Option) *Auditor {
	a := &Auditor{
		client: NewHTTPClient(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewHTTPClient builds the client used for audits: 10 second total timeout,
// default redirect following, no extra request headers.
func NewHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &http.Client{
		Timeout:   consts.RequestTimeout,
		Transport: transport,
	}
}

// Check audits rawURL. It returns a *CheckResult, or a nil result and an
// *ErrorResult describing why the audit could not be performed.
func (a *Auditor) Check(ctx context.Context, rawURL string) (*CheckResult, error) {
	target, err := NormalizeTarget(rawURL)
	if err != nil {
		a.logger.Debug("audit_rejected", zap.String("url", rawURL), zap.Error(err))
		return nil, err
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, a.transportError(target, err, start)
	}

	a.logger.Debug("audit_request", zap.String("url", target))
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, a.transportError(target, err, start)
	}
	defer resp.Body.Close()
	// Only headers matter; drain a bounded amount so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, consts.MaxDrainBytes))

	finalURL := target
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	result := Evaluate(finalURL, resp.StatusCode, resp.Header)
	a.logger.Debug("audit_result",
		zap.String("url", target),
		zap.String("final_url", result.FinalURL),
		zap.Int("status", result.StatusCode),
		zap.String("score", result.Score),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

func (a *Auditor) transportError(target string, cause error, start time.Time) error {
	a.logger.Debug("audit_failed",
		zap.String("url", target),
		zap.Duration("duration", time.Since(start)),
		zap.Error(cause),
	)
	return &ErrorResult{
		Kind:    KindTransport,
		Message: fmt.Sprintf("Request failed: %v", cause),
		Err:     fmt.Errorf("%w: %w", sharedErrors.ErrRequestFailed, cause),
	}
}

// Evaluate builds the CheckResult for a response that reached finalURL.
// HTTPS-only headers are not applicable unless finalURL starts with https://.
func Evaluate(finalURL string, statusCode int, header http.Header) *CheckResult {
	headers := canonicalizeHeaders(header)
	secure := isHTTPS(finalURL)

	result := &CheckResult{
		FinalURL:   finalURL,
		StatusCode: statusCode,
		Findings:   make([]HeaderFinding, 0, len(securityHeaders)),
	}

	for _, spec := range securityHeaders {
		finding := HeaderFinding{Name: spec.Name}
		value, ok := headers[spec.Name]

		switch {
		case spec.HTTPSOnly && !secure:
			finding.State = StateNotApplicable
			finding.Value = NotApplicableMarker
		case ok:
			finding.State = StatePresent
			finding.Value = value
		default:
			finding.State = StateMissing
			finding.Value = MissingMarker
		}

		if finding.Applicable() {
			result.ApplicableHeaders++
		}
		// Counted by recorded value, so a header whose literal value is a
		// marker string does not count as present.
		if finding.Value != MissingMarker && finding.Value != NotApplicableMarker {
			result.PresentHeaders++
		}
		result.Findings = append(result.Findings, finding)
	}

	result.Score = fmt.Sprintf("%d/%d", result.PresentHeaders, result.ApplicableHeaders)
	return result
}

// canonicalizeHeaders title-cases every header name so lookups do not depend
// on how the server spelled it. Repeated headers are joined with ", ".
func canonicalizeHeaders(header http.Header) map[string]string {
	out := make(map[string]string, len(header))
	for name, values := range header {
		key := textproto.CanonicalMIMEHeaderKey(name)
		joined := strings.Join(values, ", ")
		if prev, ok := out[key]; ok {
			joined = prev + ", " + joined
		}
		out[key] = joined
	}
	return out
}
