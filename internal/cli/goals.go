package cli

import (
	"fmt"

	"goalsapp/pkg/client"

	"github.com/spf13/cobra"
)

func (a *app) goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "List, inspect and edit goals",
	}

	cmd.AddCommand(
		a.goalsListCmd(),
		a.goalsShowCmd(),
		a.goalsCreateCmd(),
		a.goalsEditCmd(),
		a.goalsDeleteCmd(),
	)

	return cmd
}

func (a *app) goalsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every goal, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			goals, err := a.client.ListGoals(commandContext(cmd))
			if err != nil {
				return err
			}

			renderGoalList(cmd.OutOrStdout(), goals)
			return nil
		},
	}
}

func (a *app) goalsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <goal-id>",
		Short: "Show a goal with its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			goal, err := a.client.GetGoal(ctx, id)
			if err != nil {
				return err
			}

			tasks, err := a.client.ListTasks(ctx, id)
			if err != nil {
				return err
			}

			renderGoalDetail(cmd.OutOrStdout(), goal, tasks)
			return nil
		},
	}
}

func (a *app) goalsCreateCmd() *cobra.Command {
	var input client.GoalInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			goal, err := a.client.CreateGoal(commandContext(cmd), input)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created goal #%d: %s\n", goal.ID, goal.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "Goal name")
	cmd.Flags().StringVar(&input.StartDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&input.PlannedEndDate, "end", "", "Planned end date (YYYY-MM-DD)")

	return cmd
}

func (a *app) goalsEditCmd() *cobra.Command {
	var (
		name, start, end    string
		clearStart, clearEnd bool
	)

	cmd := &cobra.Command{
		Use:   "edit <goal-id>",
		Short: "Change only the given fields of a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			patch := client.GoalPatch{
				ClearStartDate:      clearStart,
				ClearPlannedEndDate: clearEnd,
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("start") {
				patch.StartDate = &start
			}
			if flags.Changed("end") {
				patch.PlannedEndDate = &end
			}

			goal, err := a.client.UpdateGoal(commandContext(cmd), id, patch)
			if err != nil {
				return err
			}

			renderGoal(cmd.OutOrStdout(), goal)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "New planned end date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearStart, "clear-start", false, "Remove the start date")
	cmd.Flags().BoolVar(&clearEnd, "clear-end", false, "Remove the planned end date")
	cmd.MarkFlagsMutuallyExclusive("start", "clear-start")
	cmd.MarkFlagsMutuallyExclusive("end", "clear-end")

	return cmd
}

func (a *app) goalsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <goal-id>",
		Short: "Delete a goal and all of its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := a.client.DeleteGoal(commandContext(cmd), id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted goal #%d\n", id)
			return nil
		},
	}
}
