package analyses

import "fmt"

// Failure kinds, used verbatim as wire error codes.
const (
	KindInvalidRequest     = "INVALID_REQUEST"
	KindUnreadableDocument = "UNREADABLE_DOCUMENT"
	KindUpstreamRejected   = "UPSTREAM_REJECTED"
	KindExhaustedRetries   = "EXHAUSTED_RETRIES"
	KindTimedOut           = "TIMED_OUT"
	KindAdmissionRejected  = "ADMISSION_REJECTED"
	KindInternalFault      = "INTERNAL_FAULT"
)

// Retry-After values advertised on retryable failures, in seconds.
const (
	RetryAfterExhausted = 60
	RetryAfterTimedOut  = 120
)

// Failure is the terminal error outcome of an analysis.
type Failure struct {
	Kind    string
	Message string
	Details map[string]any
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func newFailure(kind, message string) *Failure {
	return &Failure{Kind: kind, Message: message}
}
