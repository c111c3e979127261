package domain

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty classifies how demanding a sequence is to execute.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// SequenceMetadata carries descriptive attributes used for ranking.
type SequenceMetadata struct {
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Equipment  []string   `json:"equipment,omitempty"`
}

// Sequence is an imaging sequence to be placed on the timeline. It is a
// read-only input to the scheduler; the surrounding application owns its
// lifecycle.
type Sequence struct {
	ID                uuid.UUID
	Name              string
	TargetID          uuid.UUID
	EstimatedDuration time.Duration
	Metadata          SequenceMetadata
}
