package llm

import (
	"errors"
	"fmt"
)

// UpstreamError is a failure reported by the analysis collaborator itself,
// as opposed to transport-level failures which surface as net errors.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (status %d): %s", e.StatusCode, e.Message)
}

// Transient reports whether retrying the same request could succeed:
// rate limits, request timeouts and server-side failures qualify.
func (e *UpstreamError) Transient() bool {
	switch {
	case e.StatusCode == 429:
		return true
	case e.StatusCode == 408:
		return true
	case e.StatusCode >= 500:
		return true
	default:
		return false
	}
}

// AsUpstream unwraps err into an UpstreamError when possible.
func AsUpstream(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
