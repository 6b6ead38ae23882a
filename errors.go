package mimiry

import (
	"fmt"
	"time"
)

// ErrorKind classifies an API failure.
type ErrorKind string

const (
	KindAuthentication      ErrorKind = "authentication"       // HTTP 401
	KindInsufficientCredits ErrorKind = "insufficient_credits" // HTTP 402
	KindInsufficientScope   ErrorKind = "insufficient_scope"   // HTTP 403
	KindNotFound            ErrorKind = "not_found"            // HTTP 404
	KindRateLimit           ErrorKind = "rate_limit"           // HTTP 429
	KindServer              ErrorKind = "server"               // HTTP 5xx
	KindGeneric             ErrorKind = "generic"              // any other non-2xx
	KindConfiguration       ErrorKind = "configuration"        // client-side, no HTTP exchange
)

// statusKinds maps HTTP status codes to error kinds.
var statusKinds = map[int]ErrorKind{
	401: KindAuthentication,
	402: KindInsufficientCredits,
	403: KindInsufficientScope,
	404: KindNotFound,
	429: KindRateLimit,
}

// Error is an API or configuration failure. StatusCode is zero and Body nil
// for client-side errors; for HTTP failures Body holds the decoded response
// so callers can inspect fields beyond the extracted message.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Body       map[string]any
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
	}
	return e.Message
}

// TimeoutError is returned by WaitForJob when the job does not reach a
// terminal status within the configured deadline. It is raised purely
// client-side; the job itself is not cancelled.
type TimeoutError struct {
	JobID      string
	Timeout    time.Duration
	LastStatus string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for job %s after %s (last status: %s)",
		e.JobID, e.Timeout, e.LastStatus)
}

// classifyStatus maps a completed HTTP exchange to an error. 2xx responses
// yield nil. The message prefers the body's "error" key, then "message".
func classifyStatus(status int, body map[string]any) error {
	if status >= 200 && status < 300 {
		return nil
	}

	message := "Unknown error"
	if v, ok := body["error"]; ok {
		message = fmt.Sprint(v)
	} else if v, ok := body["message"]; ok {
		message = fmt.Sprint(v)
	}

	kind, ok := statusKinds[status]
	if !ok {
		if status >= 500 {
			kind = KindServer
		} else {
			kind = KindGeneric
		}
	}

	return &Error{Kind: kind, Message: message, StatusCode: status, Body: body}
}

func configError(format string, args ...any) error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...)}
}
