package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	ruleName     string
	rulePriority int
	ruleFile     string
)

var ruleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage scheduling rules",
}

var ruleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduling rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getContainer()
		if c == nil {
			return fmt.Errorf("scheduler is not initialized")
		}
		rules, err := c.Rules.GetRules(cmd.Context())
		if err != nil {
			return err
		}
		if len(rules) == 0 {
			fmt.Println("no rules defined")
			return nil
		}
		fmt.Printf("  %-36s  %-24s  %-8s  %-8s\n", "ID", "NAME", "PRIORITY", "ENABLED")
		fmt.Println(strings.Repeat("-", 84))
		for _, r := range rules {
			fmt.Printf("  %-36s  %-24s  %-8d  %-8t\n", r.ID(), r.Name(), r.Priority(), r.IsEnabled())
		}
		return nil
	},
}

// ruleInput is the JSON shape accepted by `astrosched rule add --file`.
type ruleInput struct {
	Name       string                     `json:"name"`
	Conditions []domain.ScheduleCondition `json:"conditions"`
	Actions    []domain.ScheduleAction    `json:"actions"`
	Priority   int                        `json:"priority"`
}

var ruleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a scheduling rule",
	Long: `Add a scheduling rule from a JSON file or from flags.

Examples:
  astrosched rule add --name "clear skies only" --file rule.json
  astrosched rule add --name "prefer weekends" --priority 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getContainer()
		if c == nil {
			return fmt.Errorf("scheduler is not initialized")
		}

		input := ruleInput{Name: ruleName, Priority: rulePriority}
		if ruleFile != "" {
			data, err := os.ReadFile(ruleFile)
			if err != nil {
				return fmt.Errorf("read rule file: %w", err)
			}
			if err := json.Unmarshal(data, &input); err != nil {
				return fmt.Errorf("parse rule file: %w", err)
			}
			if ruleName != "" {
				input.Name = ruleName
			}
			if cmd.Flags().Changed("priority") {
				input.Priority = rulePriority
			}
		}

		rule, err := c.Rules.AddRule(cmd.Context(), input.Name, input.Conditions, input.Actions, input.Priority)
		if err != nil {
			return err
		}
		fmt.Printf("rule %q created (%s)\n", rule.Name(), rule.ID())
		return nil
	},
}

var ruleDeleteCmd = &cobra.Command{
	Use:   "delete <rule-id>",
	Short: "Delete a scheduling rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getContainer()
		if c == nil {
			return fmt.Errorf("scheduler is not initialized")
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid rule id: %w", err)
		}
		if err := c.Rules.DeleteRule(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("rule deleted")
		return nil
	},
}

func init() {
	ruleAddCmd.Flags().StringVarP(&ruleName, "name", "n", "", "rule name")
	ruleAddCmd.Flags().IntVarP(&rulePriority, "priority", "p", 0, "rule priority")
	ruleAddCmd.Flags().StringVarP(&ruleFile, "file", "f", "", "JSON file with conditions and actions")

	ruleCmd.AddCommand(ruleListCmd)
	ruleCmd.AddCommand(ruleAddCmd)
	ruleCmd.AddCommand(ruleDeleteCmd)
	rootCmd.AddCommand(ruleCmd)
}
