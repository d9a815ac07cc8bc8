// Package llm abstracts the external analysis collaborator: a remote model
// that takes extracted CV text and returns a JSON report. The collaborator
// is opaque; callers only see raw JSON or a typed error.
package llm

import (
	"context"
	"encoding/json"
)

// Client abstracts analysis providers.
type Client interface {
	AnalyzeCV(ctx context.Context, input AnalyzeInput) (json.RawMessage, error)
}

// AnalyzeInput captures the inputs for one analysis call.
type AnalyzeInput struct {
	CVText           string
	TargetRole       string
	Language         string // requested output language: "es" or "en"
	DetectedLanguage string // language detected in the CV text
	PageCount        int
	Confidence       float64
}

// RepairRequest asks the collaborator to fix its previous response instead
// of producing a fresh one. Raw is the response that failed validation and
// Issues lists the concrete validation failures.
type RepairRequest struct {
	Raw    string
	Issues []string
}

type repairKey struct{}

// WithRepair returns a context signaling a repair round-trip.
func WithRepair(ctx context.Context, req RepairRequest) context.Context {
	return context.WithValue(ctx, repairKey{}, req)
}

// RepairFromContext returns the repair request, if any.
func RepairFromContext(ctx context.Context) (RepairRequest, bool) {
	req, ok := ctx.Value(repairKey{}).(RepairRequest)
	return req, ok
}
