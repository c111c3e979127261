package domain

import "time"

// Constraints bound what counts as a feasible observation window.
type Constraints struct {
	MinAltitude         float64            `json:"minAltitude"`
	MaxAirmass          float64            `json:"maxAirmass"`
	WeatherRequirements map[string]float64 `json:"weatherRequirements,omitempty"`
}

// SchedulingOptions is the immutable per-run input to the orchestrator.
type SchedulingOptions struct {
	StartDate   time.Time   `json:"startDate"`
	EndDate     time.Time   `json:"endDate"`
	Location    Location    `json:"location"`
	Constraints Constraints `json:"constraints"`
}

// Window returns the full scheduling window.
func (o SchedulingOptions) Window() TimeRange {
	return TimeRange{Start: o.StartDate, End: o.EndDate}
}

// Statistics summarizes a scheduling run.
type Statistics struct {
	// TotalTime is the sum of estimated durations over placed sequences.
	TotalTime time.Duration `json:"totalTime"`
	// UtilizationRate is TotalTime divided by the scheduling window length.
	UtilizationRate float64 `json:"utilizationRate"`
	SequenceCount   int     `json:"sequenceCount"`
	// TargetCount is the number of distinct targets among placed sequences.
	TargetCount int `json:"targetCount"`
}

// SchedulingResult is the outcome of one orchestrator run. Every failure
// mode short of an ephemeris provider outage is represented here as
// conflicts or warnings rather than an error.
type SchedulingResult struct {
	Success    bool                 `json:"success"`
	Scheduled  []*ScheduledSequence `json:"scheduledSequences"`
	Conflicts  []SchedulingConflict `json:"conflicts"`
	Warnings   []string             `json:"warnings"`
	Statistics Statistics           `json:"statistics"`
}
