package cli

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Inspect and track scheduled sequences",
}

var sequenceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduled sequences",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getContainer()
		if c == nil {
			return fmt.Errorf("scheduler is not initialized")
		}
		scheduled, err := c.ScheduledRepo.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(scheduled) == 0 {
			fmt.Println("no scheduled sequences")
			return nil
		}
		fmt.Printf("  %-36s  %-16s  %-16s  %-10s\n", "ID", "START", "END", "STATUS")
		fmt.Println(strings.Repeat("-", 86))
		for _, s := range scheduled {
			fmt.Printf("  %-36s  %-16s  %-16s  %-10s\n",
				s.ID(),
				s.ScheduledStart().Format("Jan 02 15:04"),
				s.ScheduledEnd().Format("Jan 02 15:04"),
				s.Status(),
			)
		}
		return nil
	},
}

var sequenceNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next upcoming scheduled sequence",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getContainer()
		if c == nil {
			return fmt.Errorf("scheduler is not initialized")
		}
		next, err := c.Tracker.NextScheduled(cmd.Context())
		if err != nil {
			return err
		}
		if next == nil {
			fmt.Println("nothing scheduled")
			return nil
		}
		fmt.Printf("next: %s at %s (ends %s)\n",
			next.ID(),
			next.ScheduledStart().Format("Jan 02 15:04"),
			next.ScheduledEnd().Format("15:04"),
		)
		return nil
	},
}

var sequenceStatusCmd = &cobra.Command{
	Use:   "status <scheduled-id> <status>",
	Short: "Update the execution status of a scheduled sequence",
	Long: `Update the execution status of a scheduled sequence.

Valid statuses: running, completed, failed, cancelled.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getContainer()
		if c == nil {
			return fmt.Errorf("scheduler is not initialized")
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid scheduled sequence id: %w", err)
		}
		status := domain.SequenceStatus(args[1])
		switch status {
		case domain.StatusRunning, domain.StatusCompleted, domain.StatusFailed, domain.StatusCancelled:
		default:
			return fmt.Errorf("invalid status %q", args[1])
		}
		if err := c.Tracker.UpdateStatus(cmd.Context(), id, status); err != nil {
			return err
		}
		fmt.Printf("status updated to %s\n", status)
		return nil
	},
}

func init() {
	sequenceCmd.AddCommand(sequenceListCmd)
	sequenceCmd.AddCommand(sequenceNextCmd)
	sequenceCmd.AddCommand(sequenceStatusCmd)
	rootCmd.AddCommand(sequenceCmd)
}
