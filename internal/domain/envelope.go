package domain

import "encoding/json"

// ErrorKind classifies a tool failure in the error envelope.
type ErrorKind string

const (
	// ErrValidation marks malformed caller input, detected before any API call.
	ErrValidation ErrorKind = "validation_error"
	// ErrAPI marks a failure reported by the Intervals.icu API; the upstream
	// message is passed through verbatim.
	ErrAPI ErrorKind = "api_error"
	// ErrNoData marks a successful request for which nothing exists to analyze.
	ErrNoData ErrorKind = "no_data"
	// ErrInternal marks any error not otherwise classified.
	ErrInternal ErrorKind = "internal_error"
	// ErrUnexpected is an alias kind kept for responses that predate the
	// internal_error naming.
	ErrUnexpected ErrorKind = "unexpected_error"
)

// Response describes a successful tool result before serialization.
// Data is required; an empty map or slice is a valid result and is emitted
// as-is. Analysis and Metadata are dropped from the output entirely when nil
// or empty, never rendered as empty objects.
type Response struct {
	Data      any
	Analysis  map[string]any
	Metadata  map[string]any
	QueryType string
}

type successEnvelope struct {
	Data      any            `json:"data"`
	Analysis  map[string]any `json:"analysis,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	QueryType string         `json:"query_type,omitempty"`
}

// Build renders the envelope as a JSON string. A nil Data is normalized to an
// empty object so the data key is always present.
func (r Response) Build() string {
	env := successEnvelope{
		Data:      r.Data,
		Analysis:  r.Analysis,
		Metadata:  r.Metadata,
		QueryType: r.QueryType,
	}
	if env.Data == nil {
		env.Data = map[string]any{}
	}
	out, err := json.Marshal(env)
	if err != nil {
		return ErrorResponse{
			Message: "failed to encode response: " + err.Error(),
			Kind:    ErrInternal,
		}.Build()
	}
	return string(out)
}

// ErrorResponse describes a failed tool result. Message must be non-empty
// human-readable text. Suggestions, when present, are short remediation hints
// in order of usefulness; an empty slice is treated as absent.
type ErrorResponse struct {
	Message     string
	Kind        ErrorKind
	Suggestions []string
}

type errorEnvelope struct {
	Error       string    `json:"error"`
	ErrorType   ErrorKind `json:"error_type,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

// Build renders the error envelope as a JSON string.
func (e ErrorResponse) Build() string {
	out, err := json.Marshal(errorEnvelope{
		Error:       e.Message,
		ErrorType:   e.Kind,
		Suggestions: e.Suggestions,
	})
	if err != nil {
		// Only reachable if Message itself is not encodable.
		return `{"error":"failed to encode error response","error_type":"internal_error"}`
	}
	return string(out)
}
