package alerting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strokesense/orchestrator/internal/triage"
)

func redAssessment() triage.Assessment {
	return triage.Assessment{
		UrgencyScore:               90,
		Level:                      triage.LevelRed,
		RequiresImmediateAttention: true,
		EstimatedResponseTime:      "< 5 minutes",
	}
}

func TestBuildAlert(t *testing.T) {
	alert := Build(redAssessment(), "patient-42", nil)

	assert.NotEmpty(t, alert.AlertID)
	assert.True(t, alert.AlertSent)
	assert.Equal(t, "4-6 minutes", alert.EstimatedResponseTime)
	assert.Equal(t, DefaultRecipients, alert.DispatchInfo.Recipients)
	assert.Equal(t, EmergencyType, alert.DispatchInfo.EmergencyType)
	assert.Equal(t, "RED", alert.DispatchInfo.UrgencyLevel)
	assert.Contains(t, alert.DispatchInfo.Message, "patient-42")
	assert.Nil(t, alert.DispatchInfo.Location)
}

func TestBuildIsIdempotentExceptID(t *testing.T) {
	// Two alerts for the same assessment differ only in their ids: no state
	// leaks into the dispatch content.
	a := Build(redAssessment(), "patient-42", nil)
	b := Build(redAssessment(), "patient-42", nil)

	assert.NotEqual(t, a.AlertID, b.AlertID)
	assert.Equal(t, a.DispatchInfo, b.DispatchInfo)
	assert.Equal(t, a.EstimatedResponseTime, b.EstimatedResponseTime)
	assert.Equal(t, a.AlertSent, b.AlertSent)
}

func TestBuildPassesLocationThrough(t *testing.T) {
	lat, lon := 40.7128, -74.006
	loc := &Location{Address: "1 Main St", Latitude: &lat, Longitude: &lon}

	alert := Build(redAssessment(), "patient-7", loc)
	assert.Equal(t, loc, alert.DispatchInfo.Location)
}
