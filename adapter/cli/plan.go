package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	planInput  string
	planOutput string
	planStart  string
	planEnd    string
)

// planFile is the JSON shape accepted by `astrosched plan`.
type planFile struct {
	Targets   []planTarget             `json:"targets"`
	Sequences []planSequence           `json:"sequences"`
	Options   *domain.SchedulingOptions `json:"options,omitempty"`
}

type planTarget struct {
	ID   uuid.UUID `json:"id,omitempty"`
	Name string    `json:"name"`
	RA   float64   `json:"ra"`
	Dec  float64   `json:"dec"`
}

type planSequence struct {
	ID               uuid.UUID               `json:"id,omitempty"`
	Name             string                  `json:"name"`
	TargetID         uuid.UUID               `json:"targetId,omitempty"`
	TargetName       string                  `json:"target,omitempty"`
	EstimatedMinutes int                     `json:"estimatedMinutes"`
	Metadata         domain.SequenceMetadata `json:"metadata,omitempty"`
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan an observation session",
	Long: `Run the scheduler over a set of imaging sequences.

Reads targets, sequences, and options from a JSON input file, places
every sequence it can into the scheduling window, and prints the
resulting timetable together with any conflicts.

Examples:
  astrosched plan --input tonight.json
  astrosched plan --input tonight.json --start 2026-08-29T20:00:00Z --end 2026-08-30T05:00:00Z
  astrosched plan --input tonight.json --output result.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getContainer()
		if c == nil {
			return fmt.Errorf("scheduler is not initialized")
		}

		input, err := readPlanFile(planInput)
		if err != nil {
			return err
		}

		runCmd, err := buildRunCommand(input)
		if err != nil {
			return err
		}

		result, err := c.RunScheduleHandler.Handle(cmd.Context(), runCmd)
		if err != nil {
			return fmt.Errorf("scheduling run failed: %w", err)
		}

		if planOutput != "" {
			if err := writeResult(planOutput, input, result); err != nil {
				return err
			}
		}

		printResult(result, runCmd.Targets)
		return nil
	},
}

func init() {
	planCmd.Flags().StringVarP(&planInput, "input", "i", "", "JSON file with targets, sequences, and options (required)")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "", "write the run result as JSON to this file")
	planCmd.Flags().StringVar(&planStart, "start", "", "override window start (RFC 3339)")
	planCmd.Flags().StringVar(&planEnd, "end", "", "override window end (RFC 3339)")
	_ = planCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(planCmd)
}

func readPlanFile(path string) (*planFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	var input planFile
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	if len(input.Sequences) == 0 {
		return nil, fmt.Errorf("input contains no sequences")
	}
	return &input, nil
}

func buildRunCommand(input *planFile) (commands.RunScheduleCommand, error) {
	c := getContainer()

	targets := make([]domain.Target, 0, len(input.Targets))
	targetsByName := make(map[string]uuid.UUID, len(input.Targets))
	for _, t := range input.Targets {
		id := t.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		targets = append(targets, domain.Target{ID: id, Name: t.Name, RA: t.RA, Dec: t.Dec})
		targetsByName[t.Name] = id
	}

	sequences := make([]domain.Sequence, 0, len(input.Sequences))
	for _, s := range input.Sequences {
		id := s.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		targetID := s.TargetID
		if targetID == uuid.Nil && s.TargetName != "" {
			targetID = targetsByName[s.TargetName]
		}
		sequences = append(sequences, domain.Sequence{
			ID:                id,
			Name:              s.Name,
			TargetID:          targetID,
			EstimatedDuration: time.Duration(s.EstimatedMinutes) * time.Minute,
			Metadata:          s.Metadata,
		})
	}

	options := defaultOptions()
	if input.Options != nil {
		options = *input.Options
		if options.Constraints.MinAltitude == 0 {
			options.Constraints.MinAltitude = c.Config.MinAltitude
		}
		if options.Constraints.MaxAirmass == 0 {
			options.Constraints.MaxAirmass = c.Config.MaxAirmass
		}
	}
	if planStart != "" {
		t, err := time.Parse(time.RFC3339, planStart)
		if err != nil {
			return commands.RunScheduleCommand{}, fmt.Errorf("invalid --start, use RFC 3339: %w", err)
		}
		options.StartDate = t
	}
	if planEnd != "" {
		t, err := time.Parse(time.RFC3339, planEnd)
		if err != nil {
			return commands.RunScheduleCommand{}, fmt.Errorf("invalid --end, use RFC 3339: %w", err)
		}
		options.EndDate = t
	}
	if !options.EndDate.After(options.StartDate) {
		return commands.RunScheduleCommand{}, fmt.Errorf("scheduling window end must be after start")
	}

	return commands.RunScheduleCommand{
		Sequences: sequences,
		Targets:   targets,
		Options:   options,
	}, nil
}

// defaultOptions plans tonight, from local evening to early morning at the
// configured observer site.
func defaultOptions() domain.SchedulingOptions {
	cont := getContainer()
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 20, 0, 0, 0, now.Location())
	if now.After(start) {
		start = now
	}
	return domain.SchedulingOptions{
		StartDate: start,
		EndDate:   start.Add(9 * time.Hour),
		Location: domain.Location{
			Latitude:  cont.Config.ObserverLatitude,
			Longitude: cont.Config.ObserverLongitude,
		},
		Constraints: domain.Constraints{
			MinAltitude: cont.Config.MinAltitude,
			MaxAirmass:  cont.Config.MaxAirmass,
		},
	}
}

type resultPlacement struct {
	SequenceID     uuid.UUID `json:"sequenceId"`
	TargetID       uuid.UUID `json:"targetId"`
	ScheduledStart time.Time `json:"scheduledStart"`
	ScheduledEnd   time.Time `json:"scheduledEnd"`
	Status         string    `json:"status"`
	Priority       float64   `json:"priority"`
}

type resultFile struct {
	Success    bool                        `json:"success"`
	Scheduled  []resultPlacement           `json:"scheduledSequences"`
	Conflicts  []domain.SchedulingConflict `json:"conflicts"`
	Warnings   []string                    `json:"warnings"`
	Statistics domain.Statistics           `json:"statistics"`
}

func writeResult(path string, input *planFile, result *domain.SchedulingResult) error {
	out := resultFile{
		Success:    result.Success,
		Scheduled:  make([]resultPlacement, 0, len(result.Scheduled)),
		Conflicts:  result.Conflicts,
		Warnings:   result.Warnings,
		Statistics: result.Statistics,
	}
	for _, s := range result.Scheduled {
		out.Scheduled = append(out.Scheduled, resultPlacement{
			SequenceID:     s.SequenceID(),
			TargetID:       s.TargetID(),
			ScheduledStart: s.ScheduledStart(),
			ScheduledEnd:   s.ScheduledEnd(),
			Status:         string(s.Status()),
			Priority:       s.Priority(),
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func printResult(result *domain.SchedulingResult, targets []domain.Target) {
	names := make(map[uuid.UUID]string, len(targets))
	for _, t := range targets {
		names[t.ID] = t.Name
	}

	fmt.Println()
	if result.Success {
		fmt.Println("  SCHEDULE")
	} else {
		fmt.Println("  SCHEDULE (with conflicts)")
	}
	fmt.Println(strings.Repeat("=", 60))

	for _, s := range result.Scheduled {
		name := names[s.TargetID()]
		if name == "" {
			name = s.TargetID().String()
		}
		fmt.Printf("  %s - %s  %-20s (priority %.0f)\n",
			s.ScheduledStart().Format("15:04"),
			s.ScheduledEnd().Format("15:04"),
			name,
			s.Priority(),
		)
	}
	if len(result.Scheduled) == 0 {
		fmt.Println("  nothing scheduled")
	}

	for _, w := range result.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	for _, c := range result.Conflicts {
		fmt.Printf("  conflict [%s/%s]: %s\n", c.Type, c.Severity, c.Description)
		for _, s := range c.Suggestions {
			fmt.Printf("    - %s\n", s)
		}
	}

	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("  %d sequences, %d targets, %s total, %.0f%% utilization\n",
		result.Statistics.SequenceCount,
		result.Statistics.TargetCount,
		result.Statistics.TotalTime,
		result.Statistics.UtilizationRate*100,
	)
}
