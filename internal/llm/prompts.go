package llm

import (
	_ "embed"
	"fmt"
	"strings"
)

var (
	//go:embed prompts/analyze_en.txt
	analyzePromptEN string
	//go:embed prompts/analyze_es.txt
	analyzePromptES string
)

const systemPrompt = "You are an expert cybersecurity recruiter and technical assessor. " +
	"You evaluate CVs rigorously, cite evidence from the text, and respond with valid JSON only."

// BuildPrompt renders the system and user messages for one analysis call.
func BuildPrompt(input AnalyzeInput) (system string, user string) {
	template := analyzePromptEN
	if input.Language == "es" {
		template = analyzePromptES
	}

	targetRole := strings.TrimSpace(input.TargetRole)
	if targetRole == "" {
		targetRole = "not specified"
	}

	replacer := strings.NewReplacer(
		"{{TARGET_ROLE}}", targetRole,
		"{{DETECTED_LANGUAGE}}", input.DetectedLanguage,
		"{{CONFIDENCE}}", fmt.Sprintf("%.2f", input.Confidence),
		"{{PAGE_COUNT}}", fmt.Sprintf("%d", input.PageCount),
		"{{CV_TEXT}}", input.CVText,
	)
	return systemPrompt, replacer.Replace(template)
}

// BuildRepairPrompt renders the user message for a repair round-trip: the
// previous raw output plus the concrete validation failures.
func BuildRepairPrompt(req RepairRequest) string {
	var b strings.Builder
	b.WriteString("Your previous response failed schema validation. Fix the JSON so it satisfies every constraint. ")
	b.WriteString("Keep the analytical content; change only what is needed to satisfy the schema. Return ONLY the corrected JSON object.\n\n")
	b.WriteString("Validation failures:\n")
	for _, issue := range req.Issues {
		b.WriteString("- ")
		b.WriteString(issue)
		b.WriteString("\n")
	}
	b.WriteString("\nPrevious response:\n")
	b.WriteString(req.Raw)
	return b.String()
}
