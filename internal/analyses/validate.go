package analyses

import (
	"encoding/json"
	"fmt"
)

const (
	minJustificationChars = 20
	minDescriptionChars   = 20
	requiredStrengths     = 5
	minTechnicalQuestions = 3
	minScenarioQuestions  = 2
)

// parseReport decodes the raw model output. A decode failure is reported as a
// single issue so the repair round can quote it back to the model.
func parseReport(raw json.RawMessage) (*Report, []string) {
	var report Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, []string{fmt.Sprintf("response is not a valid JSON object: %v", err)}
	}
	if issues := validateReport(&report); len(issues) > 0 {
		return nil, issues
	}
	return &report, nil
}

// validateReport checks the decoded payload against the response contract and
// returns every violation found. An empty slice means the payload is valid.
func validateReport(r *Report) []string {
	var issues []string

	cs := r.CandidateSummary
	if len(cs.Name) < 2 {
		issues = append(issues, "candidate_summary.name must be at least 2 characters")
	}
	if cs.DetectedRole == "" {
		issues = append(issues, "candidate_summary.detected_role is required")
	}
	if _, ok := seniorityLevels[cs.SeniorityLevel]; !ok {
		issues = append(issues, fmt.Sprintf("candidate_summary.seniority_level %q must be one of Junior, Mid, Senior, Lead, Executive", cs.SeniorityLevel))
	}
	if cs.YearsExperience.TotalIT < 0 || cs.YearsExperience.Cybersecurity < 0 || cs.YearsExperience.CurrentRole < 0 {
		issues = append(issues, "candidate_summary.years_experience values must be non-negative")
	}

	for _, np := range r.DetailedScores.parameters() {
		if np.param.Score < 0 || np.param.Score > 10 {
			issues = append(issues, fmt.Sprintf("detailed_scores.%s.score %.2f must be between 0 and 10", np.name, np.param.Score))
		}
		if len(np.param.Justification) < minJustificationChars {
			issues = append(issues, fmt.Sprintf("detailed_scores.%s.justification must be at least %d characters", np.name, minJustificationChars))
		}
	}

	if len(r.Strengths) != requiredStrengths {
		issues = append(issues, fmt.Sprintf("strengths must contain exactly %d entries, got %d", requiredStrengths, len(r.Strengths)))
	}
	for i, s := range r.Strengths {
		if s.Area == "" {
			issues = append(issues, fmt.Sprintf("strengths[%d].area is required", i))
		}
		if len(s.Description) < minDescriptionChars {
			issues = append(issues, fmt.Sprintf("strengths[%d].description must be at least %d characters", i, minDescriptionChars))
		}
		if s.Score < 7 || s.Score > 10 {
			issues = append(issues, fmt.Sprintf("strengths[%d].score %.2f must be between 7 and 10", i, s.Score))
		}
		if _, ok := priorityLevels[s.MarketValue]; !ok {
			issues = append(issues, fmt.Sprintf("strengths[%d].market_value %q must be high, medium or low", i, s.MarketValue))
		}
	}

	for i, ia := range r.ImprovementAreas {
		if ia.Area == "" {
			issues = append(issues, fmt.Sprintf("improvement_areas[%d].area is required", i))
		}
		if ia.CurrentScore < 0 || ia.CurrentScore > 10 {
			issues = append(issues, fmt.Sprintf("improvement_areas[%d].current_score %.2f must be between 0 and 10", i, ia.CurrentScore))
		}
		if len(ia.GapDescription) < minDescriptionChars {
			issues = append(issues, fmt.Sprintf("improvement_areas[%d].gap_description must be at least %d characters", i, minDescriptionChars))
		}
		if len(ia.Recommendations) == 0 {
			issues = append(issues, fmt.Sprintf("improvement_areas[%d].recommendations must contain at least one entry", i))
		}
		if _, ok := priorityLevels[ia.Priority]; !ok {
			issues = append(issues, fmt.Sprintf("improvement_areas[%d].priority %q must be high, medium or low", i, ia.Priority))
		}
	}

	for i, rf := range r.RedFlags {
		if rf.Type == "" {
			issues = append(issues, fmt.Sprintf("red_flags[%d].type is required", i))
		}
		if _, ok := priorityLevels[rf.Severity]; !ok {
			issues = append(issues, fmt.Sprintf("red_flags[%d].severity %q must be low, medium or high", i, rf.Severity))
		}
		if len(rf.Description) < minDescriptionChars {
			issues = append(issues, fmt.Sprintf("red_flags[%d].description must be at least %d characters", i, minDescriptionChars))
		}
		if len(rf.Impact) < minDescriptionChars {
			issues = append(issues, fmt.Sprintf("red_flags[%d].impact must be at least %d characters", i, minDescriptionChars))
		}
	}

	is := r.InterviewSuggestions
	if len(is.TechnicalQuestions) < minTechnicalQuestions {
		issues = append(issues, fmt.Sprintf("interview_suggestions.technical_questions must contain at least %d entries", minTechnicalQuestions))
	}
	if len(is.ScenarioQuestions) < minScenarioQuestions {
		issues = append(issues, fmt.Sprintf("interview_suggestions.scenario_questions must contain at least %d entries", minScenarioQuestions))
	}

	return issues
}

// finalizeReport replaces model-reported weights with the canonical table and
// recomputes the derived summary figures. Scoring is never delegated to the
// model.
func finalizeReport(r *Report) {
	applyWeights(&r.DetailedScores)
	r.CandidateSummary.TotalScore = weightedTotal(&r.DetailedScores)
	r.CandidateSummary.Percentile = percentileFor(r.CandidateSummary.TotalScore)
	if r.ImprovementAreas == nil {
		r.ImprovementAreas = []ImprovementArea{}
	}
	if r.RedFlags == nil {
		r.RedFlags = []RedFlag{}
	}
	if r.InterviewSuggestions.VerificationQuestions == nil {
		r.InterviewSuggestions.VerificationQuestions = []string{}
	}
}
