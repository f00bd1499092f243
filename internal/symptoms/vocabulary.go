package symptoms

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocabulary holds the fixed phrase lists matched against patient input.
// Instances are read-only after construction; hot reload swaps the whole
// vocabulary rather than mutating one in place.
type Vocabulary struct {
	Face   []string `yaml:"face" json:"face"`
	Arm    []string `yaml:"arm" json:"arm"`
	Speech []string `yaml:"speech" json:"speech"`
	Other  []string `yaml:"other" json:"other"`
}

// Source provides the current vocabulary snapshot. Implemented by the static
// default and by the hot-reloading manager in internal/config.
type Source interface {
	Current() *Vocabulary
}

// StaticSource wraps a fixed vocabulary.
type StaticSource struct {
	vocab *Vocabulary
}

func NewStaticSource(v *Vocabulary) *StaticSource {
	return &StaticSource{vocab: v}
}

func (s *StaticSource) Current() *Vocabulary { return s.vocab }

// DefaultVocabulary returns the built-in FAST phrase lists.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Face: []string{
			"face drooping", "facial droop", "face droop", "one side of face",
			"smile uneven", "can't smile", "mouth drooping", "facial weakness",
			"numb face", "face feels strange",
		},
		Arm: []string{
			"arm weakness", "can't lift arm", "can't lift", "arm feels heavy",
			"arm numb", "one arm weak", "arm tingling", "can't raise arm",
			"arm paralyzed", "hand weakness", "drop arm",
		},
		Speech: []string{
			"slurred speech", "slurred", "can't speak", "speech unclear",
			"difficulty speaking", "words don't come out", "trouble talking",
			"speech problems", "mumbling", "can't find words", "confused speech",
		},
		Other: []string{
			"sudden headache", "severe headache", "worst headache", "vision loss",
			"double vision", "blurred vision", "dizziness", "loss of balance",
			"confusion", "sudden numbness", "sudden weakness",
		},
	}
}

// LoadVocabulary reads a vocabulary override file. Empty categories fall back
// to the defaults so a partial override file stays safe.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary file: %w", err)
	}
	return ParseVocabulary(data)
}

// ParseVocabulary parses YAML vocabulary content and applies defaults for
// missing categories.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	def := DefaultVocabulary()
	if len(v.Face) == 0 {
		v.Face = def.Face
	}
	if len(v.Arm) == 0 {
		v.Arm = def.Arm
	}
	if len(v.Speech) == 0 {
		v.Speech = def.Speech
	}
	if len(v.Other) == 0 {
		v.Other = def.Other
	}
	return &v, nil
}
