package extract

import (
	"math"
	"strings"
	"unicode"
)

var cvKeywords = []string{
	"experience", "education", "skills", "professional", "certification",
	"security", "developer", "engineer", "analyst", "manager", "project",
	"technical", "years", "university", "degree",
}

// Confidence scores how trustworthy the extracted text looks, in [0,1].
// It blends text length, character diversity, alphanumeric ratio and the
// presence of common CV keywords, then penalizes very short texts and
// multi-page documents with too few characters per page.
func Confidence(text string, pageCount int) float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0.0
	}

	textLength := len(trimmed)
	lengthScore := math.Min(float64(textLength)/2000.0, 1.0)

	unique := make(map[rune]struct{})
	alnum := 0
	total := 0
	for _, r := range text {
		unique[r] = struct{}{}
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			alnum++
		}
	}
	diversityScore := math.Min(float64(len(unique))/100.0, 1.0)

	alnumRatio := 0.0
	if total > 0 {
		alnumRatio = float64(alnum) / float64(total)
	}
	alnumScore := math.Min(alnumRatio*2.0, 1.0)

	lower := strings.ToLower(text)
	matches := 0
	for _, kw := range cvKeywords {
		if strings.Contains(lower, kw) {
			matches++
		}
	}
	keywordScore := math.Min(float64(matches)/5.0, 1.0)

	confidence := lengthScore*0.25 + diversityScore*0.20 + alnumScore*0.30 + keywordScore*0.25

	// Very short texts usually mean a failed or image-only extraction.
	if textLength < 500 {
		confidence *= float64(textLength) / 500.0
	}

	// Multi-page documents with sparse text per page are suspicious too.
	if pageCount > 1 {
		charsPerPage := float64(textLength) / float64(pageCount)
		if charsPerPage < 800 {
			confidence *= 0.8
		}
	}

	confidence = math.Max(0.0, math.Min(1.0, confidence))
	return math.Round(confidence*100) / 100
}
