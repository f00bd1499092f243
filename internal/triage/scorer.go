// Package triage converts a symptom analysis into an urgency score, a triage
// level, and the emergency-response gate.
package triage

import (
	"github.com/strokesense/orchestrator/internal/symptoms"
)

// Level is the coarse triage bucket derived from symptom severity.
type Level string

const (
	LevelGreen  Level = "GREEN"
	LevelYellow Level = "YELLOW"
	LevelRed    Level = "RED"
)

// FASTResults are the per-category presence flags, derived for display and audit.
type FASTResults struct {
	Face   bool `json:"face"`
	Arm    bool `json:"arm"`
	Speech bool `json:"speech"`
}

// Assessment is the immutable output of one scoring pass.
type Assessment struct {
	UrgencyScore               int         `json:"urgency_score"`
	Level                      Level       `json:"triage_level"`
	RequiresImmediateAttention bool        `json:"requires_immediate_attention"`
	FASTResults                FASTResults `json:"fast_results"`
	EstimatedResponseTime      string      `json:"estimated_response_time"`
}

// Emergency gate. A case alerts when urgency reaches the threshold OR severity
// is critical; the OR matters because a warning-severity case that reaches the
// threshold via the other-symptom bonus must still alert.
const immediateAttentionThreshold = 70

// Score computes the triage assessment for a symptom analysis. Callers invoke
// it only when the analysis requires triage.
func Score(analysis symptoms.Analysis) Assessment {
	fast := FASTResults{
		Face:   analysis.Matched(symptoms.CategoryFace),
		Arm:    analysis.Matched(symptoms.CategoryArm),
		Speech: analysis.Matched(symptoms.CategorySpeech),
	}

	urgency := 0
	if fast.Face {
		urgency += 30
	}
	if fast.Arm {
		urgency += 30
	}
	if fast.Speech {
		urgency += 30
	}
	// Other symptoms add 5 points each, capped at 10.
	otherBonus := len(analysis.DetectedSymptoms[symptoms.CategoryOther]) * 5
	if otherBonus > 10 {
		otherBonus = 10
	}
	urgency += otherBonus

	var level Level
	switch analysis.Severity {
	case symptoms.SeverityCritical:
		level = LevelRed
	case symptoms.SeverityWarning:
		level = LevelYellow
	default:
		level = LevelGreen
	}

	immediate := urgency >= immediateAttentionThreshold ||
		analysis.Severity == symptoms.SeverityCritical

	eta := "< 15 minutes"
	if analysis.Severity == symptoms.SeverityCritical {
		eta = "< 5 minutes"
	}

	return Assessment{
		UrgencyScore:               urgency,
		Level:                      level,
		RequiresImmediateAttention: immediate,
		FASTResults:                fast,
		EstimatedResponseTime:      eta,
	}
}
