package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strokesense/orchestrator/internal/symptoms"
)

func analysisWith(face, arm, speech bool, other int, severity symptoms.Severity) symptoms.Analysis {
	detected := map[symptoms.Category][]string{}
	if face {
		detected[symptoms.CategoryFace] = []string{"face drooping"}
	}
	if arm {
		detected[symptoms.CategoryArm] = []string{"arm weakness"}
	}
	if speech {
		detected[symptoms.CategorySpeech] = []string{"slurred speech"}
	}
	for i := 0; i < other; i++ {
		detected[symptoms.CategoryOther] = append(detected[symptoms.CategoryOther], "other")
	}
	return symptoms.Analysis{
		DetectedSymptoms: detected,
		Severity:         severity,
		RequiresTriage:   true,
	}
}

func TestUrgencyScore(t *testing.T) {
	tests := []struct {
		name              string
		face, arm, speech bool
		other             int
		want              int
	}{
		{"no categories", false, false, false, 0, 0},
		{"one category", true, false, false, 0, 30},
		{"two categories", true, true, false, 0, 60},
		{"three categories", true, true, true, 0, 90},
		{"one other symptom", false, false, false, 1, 5},
		{"other bonus caps at ten", false, false, false, 5, 10},
		{"full fast plus capped other", true, true, true, 3, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := analysisWith(tt.face, tt.arm, tt.speech, tt.other, symptoms.SeverityWarning)
			assert.Equal(t, tt.want, Score(a).UrgencyScore)
		})
	}
}

func TestUrgencyMonotonicInCategories(t *testing.T) {
	// Holding the other count fixed, urgency never decreases as categories
	// are added.
	for other := 0; other <= 3; other++ {
		prev := -1
		steps := []struct{ face, arm, speech bool }{
			{false, false, false},
			{true, false, false},
			{true, true, false},
			{true, true, true},
		}
		for _, s := range steps {
			score := Score(analysisWith(s.face, s.arm, s.speech, other, symptoms.SeverityWarning)).UrgencyScore
			assert.GreaterOrEqual(t, score, prev)
			prev = score
		}
	}
}

func TestLevelIsPureFunctionOfSeverity(t *testing.T) {
	assert.Equal(t, LevelRed, Score(analysisWith(true, true, true, 0, symptoms.SeverityCritical)).Level)
	assert.Equal(t, LevelYellow, Score(analysisWith(true, false, false, 0, symptoms.SeverityWarning)).Level)
	assert.Equal(t, LevelGreen, Score(analysisWith(false, false, false, 0, symptoms.SeverityNormal)).Level)
}

func TestImmediateAttentionGate(t *testing.T) {
	// Critical severity alerts regardless of urgency: two categories score 60,
	// below the 70 threshold, but critical severity trips the OR.
	a := Score(analysisWith(false, true, true, 0, symptoms.SeverityCritical))
	assert.Equal(t, 60, a.UrgencyScore)
	assert.True(t, a.RequiresImmediateAttention)

	// Warning severity below threshold does not alert.
	b := Score(analysisWith(true, false, false, 0, symptoms.SeverityWarning))
	assert.Equal(t, 30, b.UrgencyScore)
	assert.False(t, b.RequiresImmediateAttention)

	// The urgency arm of the gate holds even without critical severity. Not
	// reachable through the current severity rule, but the boundary is part
	// of the contract.
	c := Score(analysisWith(true, true, false, 2, symptoms.SeverityWarning))
	assert.Equal(t, 70, c.UrgencyScore)
	assert.True(t, c.RequiresImmediateAttention)
}

func TestFASTResultsDerived(t *testing.T) {
	a := Score(analysisWith(true, false, true, 0, symptoms.SeverityCritical))
	assert.True(t, a.FASTResults.Face)
	assert.False(t, a.FASTResults.Arm)
	assert.True(t, a.FASTResults.Speech)
}

func TestEstimatedResponseTime(t *testing.T) {
	assert.Equal(t, "< 5 minutes",
		Score(analysisWith(true, true, true, 0, symptoms.SeverityCritical)).EstimatedResponseTime)
	assert.Equal(t, "< 15 minutes",
		Score(analysisWith(true, false, false, 0, symptoms.SeverityWarning)).EstimatedResponseTime)
}
