package auditor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// HeaderState classifies one watch-list entry of a CheckResult.
type HeaderState string

const (
	StatePresent       HeaderState = "present"
	StateMissing       HeaderState = "missing"
	StateNotApplicable HeaderState = "not_applicable"
)

// HeaderFinding is the recorded outcome for a single watch-list header.
type HeaderFinding struct {
	Name  string      `json:"name"`
	State HeaderState `json:"state"`
	// Value holds the literal header value, MissingMarker or NotApplicableMarker.
	Value string `json:"value"`
}

// Applicable reports whether the finding counts towards applicable_headers.
func (f HeaderFinding) Applicable() bool {
	return f.State != StateNotApplicable
}

// Field is one key/value pair of a rendered result document.
type Field struct {
	Key   string
	Value interface{}
}

// Document is the serializable shape shared by CheckResult and ErrorResult.
type Document interface {
	Fields() []Field
}

// CheckResult is produced once per successful audit and never mutated afterwards.
type CheckResult struct {
	FinalURL          string
	StatusCode        int
	PresentHeaders    int
	ApplicableHeaders int
	Score             string
	Findings          []HeaderFinding
}

// Value returns the recorded entry for the named header, or "" if the name
// is not on the watch-list.
func (r *CheckResult) Value(name string) string {
	for _, f := range r.Findings {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Fields returns the result document in its stable key order: the summary
// keys followed by one key per watch-list header.
func (r *CheckResult) Fields() []Field {
	fields := []Field{
		{Key: "final_url", Value: r.FinalURL},
		{Key: "status_code", Value: r.StatusCode},
		{Key: "present_headers", Value: r.PresentHeaders},
		{Key: "applicable_headers", Value: r.ApplicableHeaders},
		{Key: "score", Value: r.Score},
	}
	for _, f := range r.Findings {
		fields = append(fields, Field{Key: f.Name, Value: f.Value})
	}
	return fields
}

// MarshalJSON encodes the flat document, preserving Fields order.
func (r *CheckResult) MarshalJSON() ([]byte, error) {
	return marshalFields(r.Fields())
}

// Kind separates input validation failures from transport failures.
type Kind string

const (
	KindValidation Kind = "validation"
	KindTransport  Kind = "transport"
)

// ErrorResult is the alternative outcome of an audit. It implements error so
// Check can follow the usual (value, error) convention.
type ErrorResult struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *ErrorResult) Error() string {
	return e.Message
}

func (e *ErrorResult) Unwrap() error {
	return e.Err
}

// Fields returns the single-key error document.
func (e *ErrorResult) Fields() []Field {
	return []Field{{Key: "error", Value: e.Message}}
}

// MarshalJSON encodes {"error": message}.
func (e *ErrorResult) MarshalJSON() ([]byte, error) {
	return marshalFields(e.Fields())
}

// Outcome folds the return values of Check into the one document a caller
// renders. Errors that are not an *ErrorResult are reported as transport errors.
func Outcome(res *CheckResult, err error) Document {
	if err != nil {
		var er *ErrorResult
		if errors.As(err, &er) {
			return er
		}
		return &ErrorResult{Kind: KindTransport, Message: err.Error(), Err: err}
	}
	return res
}

func marshalFields(fields []Field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", f.Key, err)
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal value for %q: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
