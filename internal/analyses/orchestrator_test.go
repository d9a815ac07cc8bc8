package analyses

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"cvsec-backend/internal/llm"
)

type fakeLLM struct {
	calls     int
	responses []fakeResponse
	repairs   []bool
}

type fakeResponse struct {
	raw json.RawMessage
	err error
}

func (f *fakeLLM) AnalyzeCV(ctx context.Context, _ llm.AnalyzeInput) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, repairing := llm.RepairFromContext(ctx)
	f.repairs = append(f.repairs, repairing)

	idx := f.calls
	f.calls++
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return f.responses[idx].raw, f.responses[idx].err
}

type blockingLLM struct{}

func (blockingLLM) AnalyzeCV(ctx context.Context, _ llm.AnalyzeInput) (json.RawMessage, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func newTestOrchestrator(client llm.Client, maxAttempts int, deadline time.Duration) (*Orchestrator, *[]time.Duration) {
	o := NewOrchestrator(client, maxAttempts, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, deadline)
	slept := &[]time.Duration{}
	o.sleep = func(ctx context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return ctx.Err()
	}
	return o, slept
}

func TestRunSucceedsFirstAttempt(t *testing.T) {
	client := &fakeLLM{responses: []fakeResponse{{raw: validPayload(t)}}}
	o, slept := newTestOrchestrator(client, 3, 30*time.Second)

	report, failure := o.Run(context.Background(), "req-1", llm.AnalyzeInput{})
	if failure != nil {
		t.Fatalf("unexpected failure: %v", failure)
	}
	if client.calls != 1 {
		t.Fatalf("expected 1 call, got %d", client.calls)
	}
	if len(*slept) != 0 {
		t.Fatalf("expected no backoff sleeps, got %v", *slept)
	}
	if report.CandidateSummary.TotalScore < 0 || report.CandidateSummary.TotalScore > 10 {
		t.Fatalf("total score out of range: %v", report.CandidateSummary.TotalScore)
	}
}

func TestRunExhaustsRetriesOnTransientErrors(t *testing.T) {
	client := &fakeLLM{responses: []fakeResponse{
		{err: &llm.UpstreamError{StatusCode: 503, Message: "overloaded"}},
	}}
	o, slept := newTestOrchestrator(client, 3, 30*time.Second)

	report, failure := o.Run(context.Background(), "req-1", llm.AnalyzeInput{})
	if report != nil {
		t.Fatal("expected no report")
	}
	if failure == nil || failure.Kind != KindExhaustedRetries {
		t.Fatalf("expected EXHAUSTED_RETRIES, got %v", failure)
	}
	if client.calls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", client.calls)
	}
	// The full backoff schedule is waited out, including after the final
	// attempt, so exhausting the budget takes at least 1+2+4 seconds.
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	if len(*slept) != len(want) {
		t.Fatalf("expected sleeps %v, got %v", want, *slept)
	}
	for i := range want {
		if (*slept)[i] != want[i] {
			t.Fatalf("sleep %d: expected %v, got %v", i, want[i], (*slept)[i])
		}
	}
}

func TestRunDoesNotRetryPermanentRejection(t *testing.T) {
	client := &fakeLLM{responses: []fakeResponse{
		{err: &llm.UpstreamError{StatusCode: 400, Message: "cannot process"}},
	}}
	o, slept := newTestOrchestrator(client, 3, 30*time.Second)

	_, failure := o.Run(context.Background(), "req-1", llm.AnalyzeInput{})
	if failure == nil || failure.Kind != KindUpstreamRejected {
		t.Fatalf("expected UPSTREAM_REJECTED, got %v", failure)
	}
	if client.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", client.calls)
	}
	if len(*slept) != 0 {
		t.Fatalf("expected no sleeps, got %v", *slept)
	}
}

func TestRunRepairsInvalidPayloadOnce(t *testing.T) {
	client := &fakeLLM{responses: []fakeResponse{
		{raw: json.RawMessage(`{"strengths": []}`)},
		{raw: validPayload(t)},
	}}
	o, _ := newTestOrchestrator(client, 3, 30*time.Second)

	report, failure := o.Run(context.Background(), "req-1", llm.AnalyzeInput{})
	if failure != nil {
		t.Fatalf("unexpected failure: %v", failure)
	}
	if report == nil {
		t.Fatal("expected report")
	}
	if client.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", client.calls)
	}
	if client.repairs[0] || !client.repairs[1] {
		t.Fatalf("expected second call to be the repair round, got %v", client.repairs)
	}
}

func TestRunRepairConsumesBudget(t *testing.T) {
	// A single-attempt budget leaves no room for the repair round.
	client := &fakeLLM{responses: []fakeResponse{
		{raw: json.RawMessage(`{"strengths": []}`)},
	}}
	o, _ := newTestOrchestrator(client, 1, 30*time.Second)

	_, failure := o.Run(context.Background(), "req-1", llm.AnalyzeInput{})
	if failure == nil || failure.Kind != KindExhaustedRetries {
		t.Fatalf("expected EXHAUSTED_RETRIES, got %v", failure)
	}
	if client.calls != 1 {
		t.Fatalf("expected 1 call, got %d", client.calls)
	}
	if failure.Details == nil || failure.Details["validation_issues"] == nil {
		t.Fatal("expected validation issues in failure details")
	}
}

func TestRunDeadlineWinsOverRetry(t *testing.T) {
	o := NewOrchestrator(blockingLLM{}, 3, []time.Duration{time.Second}, 50*time.Millisecond)

	start := time.Now()
	_, failure := o.Run(context.Background(), "req-1", llm.AnalyzeInput{})
	elapsed := time.Since(start)

	if failure == nil || failure.Kind != KindTimedOut {
		t.Fatalf("expected TIMED_OUT, got %v", failure)
	}
	if elapsed > 2*time.Second {
		t.Fatalf("deadline not enforced, took %v", elapsed)
	}
}

func TestRunDeadlineDuringBackoff(t *testing.T) {
	client := &fakeLLM{responses: []fakeResponse{
		{err: &llm.UpstreamError{StatusCode: 429, Message: "rate limited"}},
	}}
	o := NewOrchestrator(client, 3, []time.Duration{time.Second}, 50*time.Millisecond)
	o.sleep = func(ctx context.Context, d time.Duration) error {
		return context.DeadlineExceeded
	}

	_, failure := o.Run(context.Background(), "req-1", llm.AnalyzeInput{})
	if failure == nil || failure.Kind != KindTimedOut {
		t.Fatalf("expected TIMED_OUT when the deadline cuts a backoff wait, got %v", failure)
	}
	if client.calls != 1 {
		t.Fatalf("expected no further attempts after the deadline, got %d calls", client.calls)
	}
}

// validPayload builds a response that satisfies every schema constraint.
func validPayload(t *testing.T) json.RawMessage {
	t.Helper()

	param := map[string]any{
		"score":         8.0,
		"justification": "Strong background demonstrated across multiple engagements.",
		"evidence":      []string{"OSCP certification", "Red team lead"},
		"weight":        1.0,
	}
	scores := map[string]any{}
	for name := range parameterWeights {
		scores[name] = param
	}

	strength := map[string]any{
		"area":         "Cloud Security",
		"description":  "Extensive AWS security experience with strong certifications.",
		"score":        9.0,
		"market_value": "high",
	}

	payload := map[string]any{
		"candidate_summary": map[string]any{
			"name":            "Jane Candidate",
			"total_score":     0.0,
			"percentile":      0,
			"detected_role":   "Security Engineer",
			"seniority_level": "Senior",
			"years_experience": map[string]any{
				"total_it":      10.0,
				"cybersecurity": 6.0,
				"current_role":  2.5,
			},
		},
		"detailed_scores": scores,
		"strengths":       []any{strength, strength, strength, strength, strength},
		"improvement_areas": []any{map[string]any{
			"area":            "Forensics",
			"current_score":   4.0,
			"gap_description": "Limited digital forensics experience in recent roles.",
			"recommendations": []string{"Take a forensics course"},
			"priority":        "medium",
		}},
		"red_flags": []any{},
		"recommendations": map[string]any{
			"certifications":        []string{"CISSP"},
			"training":              []string{"Kubernetes security"},
			"experience_areas":      []string{"Container security"},
			"next_role_suggestions": []string{"Principal Security Engineer"},
		},
		"interview_suggestions": map[string]any{
			"technical_questions":    []string{"q1", "q2", "q3"},
			"scenario_questions":     []string{"s1", "s2"},
			"verification_questions": []string{},
		},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		t.Fatal("empty payload")
	}
	return raw
}
