package model

import "encoding/json"

// AbsentReason explains why a call produced no payload. It exists for logs
// and metrics only; callers branch on Outcome.OK.
type AbsentReason string

const (
	AbsentDisabled              AbsentReason = "disabled"
	AbsentPreviouslyUnreachable AbsentReason = "previously-unreachable"
	AbsentTimeout               AbsentReason = "timeout"
	AbsentTransportError        AbsentReason = "transport-error"
	AbsentNon2xxStatus          AbsentReason = "non-2xx-status"
)

// AbsentReasons lists every reason in a stable order.
var AbsentReasons = []AbsentReason{
	AbsentDisabled,
	AbsentPreviouslyUnreachable,
	AbsentTimeout,
	AbsentTransportError,
	AbsentNon2xxStatus,
}

// Outcome is the result of a single backend call: either a JSON payload or
// an absence with a diagnostic reason.
type Outcome struct {
	Payload json.RawMessage
	Reason  AbsentReason

	// StatusCode and Message are populated for non-2xx responses when the
	// server returned them.
	StatusCode int
	Message    string
}

// Success wraps a decoded JSON payload.
func Success(payload json.RawMessage) Outcome {
	return Outcome{Payload: payload}
}

// Absent reports a call that produced no payload.
func Absent(reason AbsentReason) Outcome {
	return Outcome{Reason: reason}
}

// OK reports whether the outcome carries a payload.
func (o Outcome) OK() bool {
	return o.Reason == ""
}

// ErrorPayload is the error body returned by the remote service on non-2xx
// responses. Either field may be missing.
type ErrorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// Text returns the most descriptive message carried by the payload.
func (p ErrorPayload) Text() string {
	switch {
	case p.Message != "":
		return p.Message
	case p.Detail != "":
		return p.Detail
	default:
		return p.Error
	}
}
