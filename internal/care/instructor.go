// Package care composes situational care guidance from the upstream symptom
// and triage results. Every bundle is a pure function of (categories present,
// severity, alert state); there is no scoring here, only selection.
package care

import (
	"github.com/strokesense/orchestrator/internal/symptoms"
	"github.com/strokesense/orchestrator/internal/triage"
)

// Instructions is the guidance bundle returned for one assessment.
type Instructions struct {
	ImmediateActions     []string `json:"immediate_actions"`
	Monitoring           []string `json:"monitoring"`
	Positioning          []string `json:"positioning"`
	DoNotDo              []string `json:"do_not_do"`
	FaceCare             []string `json:"face_care,omitempty"`
	ArmCare              []string `json:"arm_care,omitempty"`
	Communication        []string `json:"communication,omitempty"`
	TransportPreparation []string `json:"transport_preparation,omitempty"`
	FamilyGuidance       []string `json:"family_guidance,omitempty"`
	ComfortMeasures      []string `json:"comfort_measures,omitempty"`
	DeteriorationSigns   []string `json:"deterioration_signs,omitempty"`
}

// Compose builds the instruction bundle. alertPresent selects the emergency
// variant with transport preparation; high-urgency cases additionally get
// family guidance, comfort measures, and the deterioration checklist.
func Compose(analysis symptoms.Analysis, assessment triage.Assessment, alertPresent bool) Instructions {
	inst := Instructions{
		ImmediateActions: immediateActions(alertPresent),
		Monitoring: []string{
			"Watch for changes in consciousness",
			"Monitor breathing rate and effort",
			"Check for new or worsening speech difficulties",
			"Observe for facial drooping or arm weakness",
		},
		Positioning: []string{
			"Keep patient upright if conscious and able to sit",
			"Place patient on their side if unconscious",
			"Keep head slightly elevated when lying down",
			"Loosen tight clothing around the neck",
		},
		DoNotDo: []string{
			"Do not give food, water, or medications",
			"Do not give aspirin",
			"Do not leave patient alone",
			"Do not allow patient to drive",
		},
	}

	if analysis.Matched(symptoms.CategoryFace) {
		inst.FaceCare = []string{
			"Support the affected side of the face if drooping",
			"Clear any saliva from the mouth",
			"Speak clearly and slowly to the patient",
		}
	}
	if analysis.Matched(symptoms.CategoryArm) {
		inst.ArmCare = []string{
			"Support the weakened arm with a pillow",
			"Do not force movement of the affected limb",
			"Protect the arm from injury",
		}
	}
	if analysis.Matched(symptoms.CategorySpeech) {
		inst.Communication = []string{
			"Be patient with speech difficulties",
			"Use yes/no questions",
			"Give the patient time to respond",
		}
	}

	if alertPresent {
		inst.TransportPreparation = []string{
			"Prepare for immediate transport",
			"Gather all medications the patient is taking",
			"Have identification and insurance information ready",
			"Designate someone to accompany the patient",
		}
	}

	if highUrgency(assessment) {
		inst.FamilyGuidance = []string{
			"Stay calm and reassure the patient",
			"One person should stay with the patient at all times",
			"Write down the time symptoms started for responders",
			"Clear a path to the door for emergency crews",
		}
		inst.ComfortMeasures = []string{
			"Keep the room quiet and well lit",
			"Cover the patient with a light blanket",
			"Hold the patient's unaffected hand for reassurance",
		}
		inst.DeteriorationSigns = []string{
			"Loss of consciousness or unresponsiveness",
			"Vomiting or difficulty swallowing",
			"Seizure activity",
			"Sudden worsening of weakness or speech",
		}
	}

	return inst
}

func immediateActions(alertPresent bool) []string {
	actions := []string{
		"Call emergency services if not already done",
		"Note the exact time symptoms started",
		"Keep the patient still and calm",
	}
	if !alertPresent {
		// Non-emergency path: emphasize prompt evaluation over dispatch.
		actions = append(actions, "Arrange urgent evaluation by a healthcare provider")
	}
	return actions
}

func highUrgency(assessment triage.Assessment) bool {
	return assessment.RequiresImmediateAttention || assessment.UrgencyScore >= 70
}
