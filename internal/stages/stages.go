// Package stages enumerates the pipeline stages and their static display
// metadata. A fixed enum plus a lookup table replaces dispatching on raw
// agent-name strings while preserving the status display contract.
package stages

import "strings"

// Stage identifies one pipeline stage.
type Stage int

const (
	Symptom Stage = iota
	Triage
	Alert
	Care
	Followup
)

type metadata struct {
	name        string
	description string
	icon        string
}

var table = [...]metadata{
	Symptom:  {"symptom_agent", "Detects FAST stroke indicators in patient input", "stethoscope"},
	Triage:   {"triage_agent", "Scores urgency and decides the emergency gate", "scale"},
	Alert:    {"alert_agent", "Synthesizes the emergency dispatch record", "siren"},
	Care:     {"care_agent", "Composes situational care guidance", "clipboard"},
	Followup: {"followup_agent", "Records the assessment with the log sink", "archive"},
}

// All returns every stage in pipeline order.
func All() []Stage {
	return []Stage{Symptom, Triage, Alert, Care, Followup}
}

// Name is the wire name recorded in stages_executed.
func (s Stage) Name() string {
	if s < 0 || int(s) >= len(table) {
		return "unknown"
	}
	return table[s].name
}

func (s Stage) Description() string {
	if s < 0 || int(s) >= len(table) {
		return ""
	}
	return table[s].description
}

func (s Stage) Icon() string {
	if s < 0 || int(s) >= len(table) {
		return ""
	}
	return table[s].icon
}

// Action renders a wire name as the human-readable summary line:
// "symptom_agent" becomes "symptom executed".
func Action(wireName string) string {
	base := strings.TrimSuffix(wireName, "_agent")
	return strings.ReplaceAll(base, "_", " ") + " executed"
}
