// Package symptoms detects FAST stroke indicators in patient-reported text.
package symptoms

import (
	"strings"
	"unicode"
)

// Category identifies one FAST symptom group.
type Category string

const (
	CategoryFace   Category = "face"
	CategoryArm    Category = "arm"
	CategorySpeech Category = "speech"
	CategoryOther  Category = "other"
)

// Severity is the coarse tier derived from the FAST score and other-symptom count.
type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Analysis is the immutable output of one extraction pass.
type Analysis struct {
	DetectedSymptoms map[Category][]string `json:"detected_symptoms"`
	Keywords         []string              `json:"extracted_keywords,omitempty"`
	FASTScore        int                   `json:"fast_score"`
	Severity         Severity              `json:"severity"`
	RequiresTriage   bool                  `json:"requires_triage"`
}

// Matched reports whether the given category has at least one match.
func (a Analysis) Matched(c Category) bool {
	return len(a.DetectedSymptoms[c]) > 0
}

// Extractor matches input text against a symptom vocabulary. Safe for
// concurrent use; the vocabulary source returns immutable snapshots.
type Extractor struct {
	source Source
}

func NewExtractor(source Source) *Extractor {
	if source == nil {
		source = NewStaticSource(DefaultVocabulary())
	}
	return &Extractor{source: source}
}

// Extract scans raw text for FAST indicators. It never fails: unmatched or
// malformed input yields an empty analysis with normal severity.
func (e *Extractor) Extract(raw string) Analysis {
	input := strings.ToLower(raw)
	vocab := e.source.Current()

	detected := map[Category][]string{
		CategoryFace:   matchPhrases(input, vocab.Face),
		CategoryArm:    matchPhrases(input, vocab.Arm),
		CategorySpeech: matchPhrases(input, vocab.Speech),
		CategoryOther:  matchPhrases(input, vocab.Other),
	}

	// Face and arm contribute 33 each, speech 34 so a full FAST hit lands
	// exactly on 100.
	fastScore := 0
	if len(detected[CategoryFace]) > 0 {
		fastScore += 33
	}
	if len(detected[CategoryArm]) > 0 {
		fastScore += 33
	}
	if len(detected[CategorySpeech]) > 0 {
		fastScore += 34
	}

	otherCount := len(detected[CategoryOther])
	var severity Severity
	switch {
	case fastScore >= 60 || otherCount >= 2:
		severity = SeverityCritical
	case fastScore >= 33 || otherCount >= 1:
		severity = SeverityWarning
	default:
		severity = SeverityNormal
	}

	requiresTriage := false
	for _, matches := range detected {
		if len(matches) > 0 {
			requiresTriage = true
			break
		}
	}

	return Analysis{
		DetectedSymptoms: detected,
		Keywords:         ExtractKeywords(input),
		FASTScore:        fastScore,
		Severity:         severity,
		RequiresTriage:   requiresTriage,
	}
}

func matchPhrases(input string, phrases []string) []string {
	var matched []string
	for _, phrase := range phrases {
		if strings.Contains(input, phrase) {
			matched = append(matched, phrase)
		}
	}
	return matched
}

// medicalKeywords are single-word markers surfaced for audit detail; they do
// not affect scoring.
var medicalKeywords = []string{
	"pain", "headache", "weakness", "numbness", "tingling", "dizziness",
	"nausea", "vomiting", "confusion", "speech", "vision", "balance",
	"coordination", "paralysis", "drooping", "slurred",
}

// ExtractKeywords pulls recognized medical keywords out of the input.
func ExtractKeywords(input string) []string {
	lower := strings.ToLower(input)
	var found []string
	for _, kw := range medicalKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return found
}

// NormalizeVoice strips punctuation from transcribed voice input before
// matching, mirroring how speech-to-text output is cleaned upstream.
func NormalizeVoice(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '\'' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
