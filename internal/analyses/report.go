package analyses

import "time"

// Response JSON (v1):
// {
//   "analysis_metadata": {
//     "timestamp": "RFC3339",
//     "parsing_confidence": "number (0-1)",
//     "cv_language": "es | en",
//     "analysis_version": "string",
//     "processing_duration_ms": "integer"
//   },
//   "candidate_summary": {
//     "name": "string",
//     "total_score": "number (0-10)",
//     "percentile": "integer (0-100)",
//     "detected_role": "string",
//     "seniority_level": "Junior | Mid | Senior | Lead | Executive",
//     "years_experience": {"total_it": number, "cybersecurity": number, "current_role": number}
//   },
//   "detailed_scores": { <24 named parameters, each:
//     {"score": number 0-10, "justification": "string >=20 chars",
//      "evidence": ["string"], "weight": number 0.5-1.5} },
//   "strengths": [ exactly 5 of
//     {"area", "description", "score" (>=7), "market_value": "high|medium|low"} ],
//   "improvement_areas": [
//     {"area", "current_score", "gap_description", "recommendations" (>=1), "priority"} ],
//   "red_flags": [
//     {"type", "severity": "low|medium|high", "description", "impact"} ],
//   "recommendations": {"certifications": [], "training": [], "experience_areas": [], "next_role_suggestions": []},
//   "interview_suggestions": {"technical_questions" (>=3), "scenario_questions" (>=2), "verification_questions"}
// }

// Report is the complete analysis result returned to the client.
type Report struct {
	AnalysisMetadata     AnalysisMetadata     `json:"analysis_metadata"`
	CandidateSummary     CandidateSummary     `json:"candidate_summary"`
	DetailedScores       DetailedScores       `json:"detailed_scores"`
	Strengths            []Strength           `json:"strengths"`
	ImprovementAreas     []ImprovementArea    `json:"improvement_areas"`
	RedFlags             []RedFlag            `json:"red_flags"`
	Recommendations      Recommendations      `json:"recommendations"`
	InterviewSuggestions InterviewSuggestions `json:"interview_suggestions"`
}

// AnalysisMetadata describes how this analysis was produced. It is filled in
// server-side, never by the model.
type AnalysisMetadata struct {
	Timestamp            time.Time `json:"timestamp"`
	ParsingConfidence    float64   `json:"parsing_confidence"`
	CVLanguage           string    `json:"cv_language"`
	AnalysisVersion      string    `json:"analysis_version"`
	ProcessingDurationMS int64     `json:"processing_duration_ms"`
}

type YearsExperience struct {
	TotalIT       float64 `json:"total_it"`
	Cybersecurity float64 `json:"cybersecurity"`
	CurrentRole   float64 `json:"current_role"`
}

type CandidateSummary struct {
	Name            string          `json:"name"`
	TotalScore      float64         `json:"total_score"`
	Percentile      int             `json:"percentile"`
	DetectedRole    string          `json:"detected_role"`
	SeniorityLevel  string          `json:"seniority_level"`
	YearsExperience YearsExperience `json:"years_experience"`
}

// Parameter is one scored cybersecurity evaluation dimension.
type Parameter struct {
	Score         float64  `json:"score"`
	Justification string   `json:"justification"`
	Evidence      []string `json:"evidence"`
	Weight        float64  `json:"weight"`
}

// DetailedScores holds all 24 evaluation parameters. Field order follows the
// public response contract.
type DetailedScores struct {
	Certifications   Parameter `json:"certifications"`
	OffensiveSkills  Parameter `json:"offensive_skills"`
	DefensiveSkills  Parameter `json:"defensive_skills"`
	Governance       Parameter `json:"governance"`
	CloudSecurity    Parameter `json:"cloud_security"`
	Tools            Parameter `json:"tools"`
	Programming      Parameter `json:"programming"`
	Architecture     Parameter `json:"architecture"`
	Education        Parameter `json:"education"`
	SoftSkills       Parameter `json:"soft_skills"`
	Languages        Parameter `json:"languages"`
	DevSecOps        Parameter `json:"devsecops"`
	Forensics        Parameter `json:"forensics"`
	Cryptography     Parameter `json:"cryptography"`
	OTICS            Parameter `json:"ot_ics"`
	MobileIoT        Parameter `json:"mobile_iot"`
	ThreatIntel      Parameter `json:"threat_intel"`
	Contributions    Parameter `json:"contributions"`
	Publications     Parameter `json:"publications"`
	Management       Parameter `json:"management"`
	Crisis           Parameter `json:"crisis"`
	Transformation   Parameter `json:"transformation"`
	NicheSpecialties Parameter `json:"niche_specialties"`
	Experience       Parameter `json:"experience"`
}

type Strength struct {
	Area        string  `json:"area"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
	MarketValue string  `json:"market_value"`
}

type ImprovementArea struct {
	Area            string   `json:"area"`
	CurrentScore    float64  `json:"current_score"`
	GapDescription  string   `json:"gap_description"`
	Recommendations []string `json:"recommendations"`
	Priority        string   `json:"priority"`
}

type RedFlag struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

type Recommendations struct {
	Certifications      []string `json:"certifications"`
	Training            []string `json:"training"`
	ExperienceAreas     []string `json:"experience_areas"`
	NextRoleSuggestions []string `json:"next_role_suggestions"`
}

type InterviewSuggestions struct {
	TechnicalQuestions    []string `json:"technical_questions"`
	ScenarioQuestions     []string `json:"scenario_questions"`
	VerificationQuestions []string `json:"verification_questions"`
}

var seniorityLevels = map[string]struct{}{
	"Junior":    {},
	"Mid":       {},
	"Senior":    {},
	"Lead":      {},
	"Executive": {},
}

var priorityLevels = map[string]struct{}{
	"high":   {},
	"medium": {},
	"low":    {},
}
