package analyses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cvsec-backend/internal/llm"
	"cvsec-backend/internal/shared/telemetry"
)

// Orchestrator drives the model conversation for one analysis: call, validate,
// repair malformed output, retry transient upstream failures with backoff, and
// give up at the attempt budget or the hard deadline, whichever comes first.
// The deadline always wins over a pending retry.
type Orchestrator struct {
	client      llm.Client
	maxAttempts int
	delays      []time.Duration
	deadline    time.Duration

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewOrchestrator wires an orchestrator around an llm.Client. delays is the
// backoff schedule per failed attempt; the last entry repeats if attempts
// outnumber entries.
func NewOrchestrator(client llm.Client, maxAttempts int, delays []time.Duration, deadline time.Duration) *Orchestrator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if len(delays) == 0 {
		delays = []time.Duration{time.Second}
	}
	return &Orchestrator{
		client:      client,
		maxAttempts: maxAttempts,
		delays:      delays,
		deadline:    deadline,
		now:         time.Now,
		sleep:       sleepCtx,
	}
}

// Run executes the analysis conversation and returns either a finalized report
// or a terminal failure. It never returns both nil.
func (o *Orchestrator) Run(ctx context.Context, requestID string, input llm.AnalyzeInput) (*Report, *Failure) {
	ctx, cancel := context.WithTimeout(ctx, o.deadline)
	defer cancel()

	started := o.now()
	attempt := 0
	repairUsed := false
	var repair *llm.RepairRequest

	for {
		attempt++
		callCtx := ctx
		if repair != nil {
			callCtx = llm.WithRepair(ctx, *repair)
			repair = nil
		}

		raw, err := o.client.AnalyzeCV(callCtx, input)
		if err != nil {
			if timedOut(ctx, err) {
				return nil, o.timedOutFailure(started, attempt)
			}
			if up, ok := llm.AsUpstream(err); ok && !up.Transient() {
				telemetry.Warn("analysis.upstream_rejected", map[string]any{
					"request_id": requestID,
					"attempt":    attempt,
					"status":     up.StatusCode,
				})
				return nil, newFailure(KindUpstreamRejected, "The analysis provider rejected the request")
			}

			telemetry.Warn("analysis.attempt_failed", map[string]any{
				"request_id": requestID,
				"attempt":    attempt,
				"error":      err.Error(),
			})
			if sleepErr := o.sleep(ctx, o.delayFor(attempt)); sleepErr != nil {
				return nil, o.timedOutFailure(started, attempt)
			}
			if attempt >= o.maxAttempts {
				return nil, exhaustedFailure(attempt)
			}
			continue
		}

		report, issues := parseReport(raw)
		if len(issues) == 0 {
			finalizeReport(report)
			telemetry.Info("analysis.succeeded", map[string]any{
				"request_id": requestID,
				"attempts":   attempt,
				"elapsed_ms": o.now().Sub(started).Milliseconds(),
			})
			return report, nil
		}

		telemetry.Warn("analysis.schema_mismatch", map[string]any{
			"request_id": requestID,
			"attempt":    attempt,
			"issues":     len(issues),
		})
		if !repairUsed {
			// One repair round-trip is allowed per run. It re-requests
			// immediately and consumes a budget unit like any other attempt.
			if attempt >= o.maxAttempts {
				f := exhaustedFailure(attempt)
				f.Details = map[string]any{"validation_issues": issues}
				return nil, f
			}
			repairUsed = true
			repair = &llm.RepairRequest{Raw: string(raw), Issues: issues}
			continue
		}

		// Repair already spent; a still-invalid payload counts as a
		// transient failure from here on.
		if sleepErr := o.sleep(ctx, o.delayFor(attempt)); sleepErr != nil {
			return nil, o.timedOutFailure(started, attempt)
		}
		if attempt >= o.maxAttempts {
			f := exhaustedFailure(attempt)
			f.Details = map[string]any{"validation_issues": issues}
			return nil, f
		}
	}
}

// delayFor returns the backoff delay after the given 1-based attempt.
func (o *Orchestrator) delayFor(attempt int) time.Duration {
	idx := attempt - 1
	if idx >= len(o.delays) {
		idx = len(o.delays) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return o.delays[idx]
}

func (o *Orchestrator) timedOutFailure(started time.Time, attempt int) *Failure {
	f := newFailure(KindTimedOut, fmt.Sprintf("Analysis did not complete within %s", o.deadline))
	f.Details = map[string]any{
		"elapsed_ms": o.now().Sub(started).Milliseconds(),
		"attempts":   attempt,
	}
	return f
}

func exhaustedFailure(attempts int) *Failure {
	return newFailure(KindExhaustedRetries, fmt.Sprintf("Analysis failed after %d attempts", attempts))
}

func timedOut(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
