// Package main implements the allocation rule CLI commands.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"alchemist/cmd/alchemist/ui"
	"alchemist/internal/rulegen"
	"alchemist/internal/types"
)

var (
	ruleName        string
	ruleDescription string
	ruleType        string
	ruleTasks       []string
	ruleGroup       string
	ruleMaxSlots    int
	ruleTaskID      string
	rulePhases      []int
	rulePriority    int
	ruleNewPriority int
	weightsValues   []float64
)

// rulesCmd groups the rule management commands
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage allocation rules and priority weights",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all rules",
	RunE:  runRulesList,
}

var rulesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a rule from builder flags",
	Long: `Assembles a rule's condition/action text from the builder flags and
saves it.

Types:
  coRun       --task (repeatable, needs two or more)
  loadLimit   --group and --max-slots
  phaseWindow --task-id and --phase (repeatable)`,
	Example: `  alchemist rules create --type coRun --name "ship together" --task 3 --task 7
  alchemist rules create --type loadLimit --group GroupA --max-slots 5`,
	RunE: runRulesCreate,
}

var rulesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a rule's name, description or priority",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesUpdate,
}

var rulesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesDelete,
}

var rulesActivateCmd = &cobra.Command{
	Use:   "activate <id> <true|false>",
	Short: "Toggle a rule's active flag",
	Args:  cobra.ExactArgs(2),
	RunE:  runRulesActivate,
}

var rulesPrioritiesCmd = &cobra.Command{
	Use:   "priorities",
	Short: "Show the allocation priority weights",
	RunE:  runPrioritiesGet,
}

var rulesPrioritiesSetCmd = &cobra.Command{
	Use:     "set",
	Short:   "Set the allocation priority weights",
	Example: `  alchemist rules priorities set --weights 0.4,0.3,0.3`,
	RunE:    runPrioritiesSet,
}

func init() {
	rulesCreateCmd.Flags().StringVar(&ruleName, "name", "", "Rule name")
	rulesCreateCmd.Flags().StringVar(&ruleType, "type", "coRun", "Rule type: coRun, loadLimit or phaseWindow")
	rulesCreateCmd.Flags().StringSliceVar(&ruleTasks, "task", nil, "Task ID for co-run rules, repeatable")
	rulesCreateCmd.Flags().StringVar(&ruleGroup, "group", "", "Worker group for load-limit rules")
	rulesCreateCmd.Flags().IntVar(&ruleMaxSlots, "max-slots", 1, "Max slots per phase for load-limit rules")
	rulesCreateCmd.Flags().StringVar(&ruleTaskID, "task-id", "", "Task ID for phase-window rules")
	rulesCreateCmd.Flags().IntSliceVar(&rulePhases, "phase", nil, "Allowed phase for phase-window rules, repeatable")
	rulesCreateCmd.Flags().IntVar(&rulePriority, "priority", 5, "Rule priority, 1-10")

	rulesUpdateCmd.Flags().StringVar(&ruleName, "name", "", "New rule name")
	rulesUpdateCmd.Flags().StringVar(&ruleDescription, "description", "", "New rule description")
	rulesUpdateCmd.Flags().IntVar(&ruleNewPriority, "priority", 0, "New rule priority, 1-10")

	rulesPrioritiesSetCmd.Flags().Float64SliceVar(&weightsValues, "weights", nil,
		"Three weights: priorityLevel,fairness,cost")
	rulesPrioritiesCmd.AddCommand(rulesPrioritiesSetCmd)

	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesCreateCmd)
	rulesCmd.AddCommand(rulesUpdateCmd)
	rulesCmd.AddCommand(rulesDeleteCmd)
	rulesCmd.AddCommand(rulesActivateCmd)
	rulesCmd.AddCommand(rulesPrioritiesCmd)
}

func runRulesList(cmd *cobra.Command, args []string) error {
	c := newClient()
	rules, err := c.Rules().List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list rules: %w", err)
	}
	if len(rules) == 0 {
		fmt.Println("No rules defined.")
		return nil
	}

	styles := ui.NewStyles(ui.ThemeByName(cfg.Output.Theme))
	t := ui.NewDataTable("Rules", "id", "name", "type", "priority", "active", "condition")
	for _, r := range rules {
		t.AddRow(strconv.Itoa(r.ID), r.Name, string(r.Type),
			strconv.Itoa(r.Priority), strconv.FormatBool(r.Active), r.Condition)
	}
	fmt.Print(t.View(styles))
	return nil
}

// buildRule assembles the rule from the create flags.
func buildRule() (types.Rule, error) {
	var fields rulegen.Fields
	rtype := types.RuleType(ruleType)
	switch rtype {
	case types.RuleCoRun:
		var warn bool
		fields, warn = rulegen.CoRunFields(rulegen.CoRunForm{TaskIDs: ruleTasks})
		if warn {
			fmt.Println("warning: a co-run rule needs at least two distinct tasks")
		}
	case types.RuleLoadLimit:
		fields = rulegen.LoadLimitFields(rulegen.LoadLimitForm{WorkerGroup: ruleGroup, MaxSlots: ruleMaxSlots})
	case types.RulePhaseWindow:
		fields = rulegen.PhaseWindowFields(rulegen.PhaseWindowForm{TaskID: ruleTaskID, Phases: rulePhases})
	default:
		return types.Rule{}, fmt.Errorf("unknown rule type %q", ruleType)
	}
	if fields.Condition == "" {
		return types.Rule{}, fmt.Errorf("incomplete %s rule: see --help for the required flags", ruleType)
	}

	name := ruleName
	if name == "" {
		name = ruleType + " rule"
	}
	return types.Rule{
		Name:      name,
		Type:      rtype,
		Condition: fields.Condition,
		Action:    fields.Action,
		Priority:  rulePriority,
		Active:    true,
	}, nil
}

func runRulesCreate(cmd *cobra.Command, args []string) error {
	rule, err := buildRule()
	if err != nil {
		return err
	}
	c := newClient()
	saved, err := c.Rules().Create(cmd.Context(), rule)
	if err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}
	fmt.Printf("Created rule %d: %s\n", saved.ID, saved.Name)
	fmt.Printf("  condition: %s\n  action:    %s\n", saved.Condition, saved.Action)
	return nil
}

func runRulesUpdate(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("rule ID must be numeric: %w", err)
	}
	c := newClient()
	rules, err := c.Rules().List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list rules: %w", err)
	}
	var current *types.Rule
	for i := range rules {
		if rules[i].ID == id {
			current = &rules[i]
			break
		}
	}
	if current == nil {
		return fmt.Errorf("rule %d not found", id)
	}

	if ruleName != "" {
		current.Name = ruleName
	}
	if ruleDescription != "" {
		current.Description = ruleDescription
	}
	if ruleNewPriority > 0 {
		current.Priority = ruleNewPriority
	}
	saved, err := c.Rules().Update(cmd.Context(), id, *current)
	if err != nil {
		return fmt.Errorf("failed to update rule %d: %w", id, err)
	}
	fmt.Printf("Updated rule %d: %s\n", saved.ID, saved.Name)
	return nil
}

func runRulesDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("rule ID must be numeric: %w", err)
	}
	c := newClient()
	if err := c.Rules().Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete rule %d: %w", id, err)
	}
	fmt.Printf("Deleted rule %d\n", id)
	return nil
}

func runRulesActivate(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("rule ID must be numeric: %w", err)
	}
	active, err := strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("expected true or false: %w", err)
	}
	c := newClient()
	rule, err := c.Rules().SetActive(cmd.Context(), id, active)
	if err != nil {
		return fmt.Errorf("failed to toggle rule %d: %w", id, err)
	}
	state := "inactive"
	if rule.Active {
		state = "active"
	}
	fmt.Printf("Rule %d is now %s\n", rule.ID, state)
	return nil
}

func runPrioritiesGet(cmd *cobra.Command, args []string) error {
	c := newClient()
	p, err := c.Rules().GetPriorities(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch priorities: %w", err)
	}
	printPriorities(*p)
	return nil
}

func runPrioritiesSet(cmd *cobra.Command, args []string) error {
	if len(weightsValues) != 3 {
		return fmt.Errorf("expected exactly three weights, got %d", len(weightsValues))
	}
	p := types.RulePriorities{
		PriorityLevel: weightsValues[0],
		Fairness:      weightsValues[1],
		Cost:          weightsValues[2],
	}
	if !p.WithinTolerance() {
		return fmt.Errorf("weights sum to %.2f, must be 1.0 within %.2f", p.Sum(), types.WeightTolerance)
	}

	c := newClient()
	if err := c.Rules().SetPriorities(cmd.Context(), p); err != nil {
		return fmt.Errorf("failed to save priorities: %w", err)
	}
	fmt.Println("Priorities saved")
	printPriorities(p)
	return nil
}

func printPriorities(p types.RulePriorities) {
	fmt.Println("Priority weights")
	fmt.Println(strings.Repeat("─", 30))
	fmt.Printf("  %-16s %.2f\n", "priority level", p.PriorityLevel)
	fmt.Printf("  %-16s %.2f\n", "fairness", p.Fairness)
	fmt.Printf("  %-16s %.2f\n", "cost", p.Cost)
	fmt.Printf("  %-16s %.2f\n", "sum", p.Sum())
}
