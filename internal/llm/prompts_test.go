package llm

import (
	"context"
	"strings"
	"testing"
)

func TestBuildPromptRendersPlaceholders(t *testing.T) {
	_, user := BuildPrompt(AnalyzeInput{
		CVText:           "Security engineer with cloud experience.",
		TargetRole:       "Pentester",
		Language:         "en",
		DetectedLanguage: "en",
		PageCount:        2,
		Confidence:       0.87,
	})

	for _, want := range []string{
		"Security engineer with cloud experience.",
		"Pentester",
		"0.87",
	} {
		if !strings.Contains(user, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
	if strings.Contains(user, "{{") {
		t.Fatalf("prompt has unrendered placeholders: %s", user[:200])
	}
}

func TestBuildPromptSelectsTemplateByLanguage(t *testing.T) {
	input := AnalyzeInput{CVText: "text", Language: "es", DetectedLanguage: "es", PageCount: 1}
	_, spanish := BuildPrompt(input)

	input.Language = "en"
	_, english := BuildPrompt(input)

	if spanish == english {
		t.Fatal("expected different templates per output language")
	}
}

func TestBuildPromptDefaultsTargetRole(t *testing.T) {
	_, user := BuildPrompt(AnalyzeInput{CVText: "text", Language: "en", PageCount: 1})
	if !strings.Contains(user, "not specified") {
		t.Fatal("expected default target role marker")
	}
}

func TestBuildRepairPromptQuotesIssuesAndRaw(t *testing.T) {
	user := BuildRepairPrompt(RepairRequest{
		Raw:    `{"strengths": []}`,
		Issues: []string{"strengths must contain exactly 5 entries, got 0"},
	})

	if !strings.Contains(user, "strengths must contain exactly 5 entries, got 0") {
		t.Fatal("repair prompt missing validation issue")
	}
	if !strings.Contains(user, `{"strengths": []}`) {
		t.Fatal("repair prompt missing previous response")
	}
}

func TestRepairContextRoundTrip(t *testing.T) {
	req := RepairRequest{Raw: "{}", Issues: []string{"issue"}}
	ctx := WithRepair(context.Background(), req)

	got, ok := RepairFromContext(ctx)
	if !ok || got.Raw != "{}" || len(got.Issues) != 1 {
		t.Fatalf("repair round trip failed: %v %v", got, ok)
	}
	if _, ok := RepairFromContext(context.Background()); ok {
		t.Fatal("expected no repair request on a fresh context")
	}
}
