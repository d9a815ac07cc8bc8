package extract

import "strings"

var spanishKeywords = []string{
	"experiencia", "profesional", "educación", "habilidades", "certificación",
	"certificaciones", "años", "universidad", "licenciatura", "maestría",
	"español", "conocimientos", "proyectos", "técnico", "desarrollador",
	"ingeniero", "analista", "gerente", "trabajé", "trabajó",
}

var englishKeywords = []string{
	"experience", "professional", "education", "skills", "certification",
	"certifications", "years", "university", "bachelor", "master",
	"english", "knowledge", "projects", "technical", "developer",
	"engineer", "analyst", "manager", "worked", "developed",
}

// DetectLanguage guesses whether the text is Spanish or English by keyword
// counting. English wins ties and empty input.
func DetectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return "en"
	}

	lower := strings.ToLower(text)
	spanish := 0
	for _, kw := range spanishKeywords {
		if strings.Contains(lower, kw) {
			spanish++
		}
	}
	english := 0
	for _, kw := range englishKeywords {
		if strings.Contains(lower, kw) {
			english++
		}
	}

	if spanish > english {
		return "es"
	}
	return "en"
}
