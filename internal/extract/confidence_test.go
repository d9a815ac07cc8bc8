package extract

import (
	"math"
	"strings"
	"testing"
)

func TestConfidenceEmptyText(t *testing.T) {
	if got := Confidence("", 1); got != 0.0 {
		t.Fatalf("expected 0.0 for empty text, got %v", got)
	}
	if got := Confidence("   \n\t  ", 1); got != 0.0 {
		t.Fatalf("expected 0.0 for whitespace text, got %v", got)
	}
}

func TestConfidenceRichCVScoresHigh(t *testing.T) {
	text := strings.Repeat(
		"Professional experience as a security engineer. Education: university degree. "+
			"Skills include penetration testing, cloud security and incident response. "+
			"Certification: OSCP. Years of technical project work as analyst and manager. ", 10)

	got := Confidence(text, 2)
	if got < 0.8 {
		t.Fatalf("expected high confidence for a rich CV, got %v", got)
	}
	if got > 1.0 {
		t.Fatalf("confidence must not exceed 1.0, got %v", got)
	}
}

func TestConfidenceShortTextPenalty(t *testing.T) {
	short := "Security engineer with experience."
	long := strings.Repeat(short+" ", 30)

	if Confidence(short, 1) >= Confidence(long, 1) {
		t.Fatal("expected short text to score below the same text repeated")
	}
}

func TestConfidenceSparsePagesPenalty(t *testing.T) {
	// Same text, but spread over many pages: under 800 chars/page triggers
	// the sparse-page penalty.
	text := strings.Repeat("experience education skills security engineer university ", 20)

	dense := Confidence(text, 1)
	sparse := Confidence(text, 10)
	if sparse >= dense {
		t.Fatalf("expected sparse pagination to lower confidence: dense=%v sparse=%v", dense, sparse)
	}
}

func TestConfidenceIsRoundedToTwoDecimals(t *testing.T) {
	text := strings.Repeat("experience security engineer analyst ", 40)
	got := Confidence(text, 1)
	scaled := got * 100
	if diff := math.Abs(scaled - math.Round(scaled)); diff > 1e-9 {
		t.Fatalf("expected two-decimal rounding, got %v", got)
	}
}
