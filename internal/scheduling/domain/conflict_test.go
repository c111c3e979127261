package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeRangeOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	r := func(startOffset, endOffset time.Duration) TimeRange {
		return TimeRange{Start: base.Add(startOffset), End: base.Add(endOffset)}
	}

	tests := []struct {
		name string
		a, b TimeRange
		want bool
	}{
		{"partial overlap", r(0, 2*time.Hour), r(time.Hour, 3*time.Hour), true},
		{"containment", r(0, 4*time.Hour), r(time.Hour, 2*time.Hour), true},
		{"identical", r(0, time.Hour), r(0, time.Hour), true},
		{"disjoint", r(0, time.Hour), r(2*time.Hour, 3*time.Hour), false},
		{"touching endpoints", r(0, time.Hour), r(time.Hour, 2*time.Hour), false},
		{"reverse touching", r(time.Hour, 2*time.Hour), r(0, time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func makePlacement(t *testing.T, start, end time.Time) *ScheduledSequence {
	t.Helper()
	s, err := NewScheduledSequence(uuid.New(), uuid.New(), start, end, 0, SequenceMetadata{})
	require.NoError(t, err)
	return s
}

func TestDetectOverlaps_NoConflictsForDisjointSchedule(t *testing.T) {
	base := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	scheduled := []*ScheduledSequence{
		makePlacement(t, base, base.Add(time.Hour)),
		makePlacement(t, base.Add(time.Hour), base.Add(2*time.Hour)),
		makePlacement(t, base.Add(3*time.Hour), base.Add(4*time.Hour)),
	}

	assert.Empty(t, DetectOverlaps(scheduled))
}

func TestDetectOverlaps_ReportsEachOverlappingPair(t *testing.T) {
	base := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	a := makePlacement(t, base, base.Add(2*time.Hour))
	b := makePlacement(t, base.Add(time.Hour), base.Add(3*time.Hour))
	c := makePlacement(t, base.Add(90*time.Minute), base.Add(4*time.Hour))

	conflicts := DetectOverlaps([]*ScheduledSequence{a, b, c})
	require.Len(t, conflicts, 3)

	for _, conflict := range conflicts {
		assert.Equal(t, ConflictTypeTimeOverlap, conflict.Type)
		assert.Equal(t, SeverityHigh, conflict.Severity)
		assert.Len(t, conflict.SequenceIDs, 2)
		assert.NotEmpty(t, conflict.Description)
	}
}

func TestDetectOverlaps_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, DetectOverlaps(nil))

	base := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	single := []*ScheduledSequence{makePlacement(t, base, base.Add(time.Hour))}
	assert.Empty(t, DetectOverlaps(single))
}
