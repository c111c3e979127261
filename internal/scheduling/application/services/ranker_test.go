package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(start, end time.Time) domain.SchedulingOptions {
	return domain.SchedulingOptions{
		StartDate: start,
		EndDate:   end,
		Location:  domain.Location{Latitude: 48.1, Longitude: 11.6},
		Constraints: domain.Constraints{
			MinAltitude: 30,
			MaxAirmass:  2,
		},
	}
}

func TestRank_ScoreComposition(t *testing.T) {
	start := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	options := testOptions(start, start.Add(9*time.Hour))
	target := domain.Target{ID: uuid.New(), Name: "M42"}

	tests := []struct {
		name     string
		sequence domain.Sequence
		altitude float64
		airmass  float64
		want     float64
	}{
		{
			name: "beginner, visible, low airmass",
			sequence: domain.Sequence{
				EstimatedDuration: time.Hour,
				Metadata:          domain.SequenceMetadata{Difficulty: domain.DifficultyBeginner},
			},
			altitude: 55,
			airmass:  1.2,
			want:     10 + 50 + 30,
		},
		{
			name: "advanced, below horizon",
			sequence: domain.Sequence{
				EstimatedDuration: time.Hour,
				Metadata:          domain.SequenceMetadata{Difficulty: domain.DifficultyAdvanced},
			},
			altitude: 5,
			airmass:  9,
			want:     30,
		},
		{
			name: "intermediate, visible, long session penalty",
			sequence: domain.Sequence{
				EstimatedDuration: 5 * time.Hour,
				Metadata:          domain.SequenceMetadata{Difficulty: domain.DifficultyIntermediate},
			},
			altitude: 55,
			airmass:  1.2,
			want:     20 + 50 + 30 - 20,
		},
		{
			name:     "no difficulty set",
			sequence: domain.Sequence{EstimatedDuration: time.Hour},
			altitude: 55,
			airmass:  1.2,
			want:     50 + 30,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranker := NewPriorityRanker(fixedProvider(tt.altitude, tt.airmass))
			score, err := ranker.Rank(context.Background(), tt.sequence, target, options)
			require.NoError(t, err)
			assert.Equal(t, tt.want, score)
		})
	}
}

func TestRank_AirmassAtThresholdGetsNoBonus(t *testing.T) {
	start := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	options := testOptions(start, start.Add(9*time.Hour))
	target := domain.Target{ID: uuid.New()}
	sequence := domain.Sequence{EstimatedDuration: time.Hour}

	ranker := NewPriorityRanker(fixedProvider(55, 2.0))
	score, err := ranker.Rank(context.Background(), sequence, target, options)
	require.NoError(t, err)
	assert.Equal(t, 50.0, score)
}

func TestRank_ProviderErrorPropagates(t *testing.T) {
	start := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	options := testOptions(start, start.Add(9*time.Hour))
	providerErr := errors.New("ephemeris service unavailable")

	ranker := NewPriorityRanker(failingProvider(providerErr))
	_, err := ranker.Rank(context.Background(), domain.Sequence{}, domain.Target{}, options)
	require.Error(t, err)
	assert.ErrorIs(t, err, providerErr)
}
