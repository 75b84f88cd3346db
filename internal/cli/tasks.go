package cli

import (
	"fmt"

	"goalsapp/pkg/client"

	"github.com/spf13/cobra"
)

func (a *app) tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage the tasks of a goal",
	}

	cmd.AddCommand(
		a.tasksListCmd(),
		a.tasksAddCmd(),
		a.tasksShowCmd(),
		a.tasksEditCmd(),
		a.tasksToggleCmd(),
		a.tasksDeleteCmd(),
	)

	return cmd
}

func (a *app) tasksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <goal-id>",
		Short: "List the tasks of a goal, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goalID, err := parseID(args[0])
			if err != nil {
				return err
			}

			tasks, err := a.client.ListTasks(commandContext(cmd), goalID)
			if err != nil {
				return err
			}

			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "This goal has no tasks yet.")
				return nil
			}

			renderTaskList(cmd.OutOrStdout(), tasks)
			return nil
		},
	}
}

func (a *app) tasksAddCmd() *cobra.Command {
	var input client.TaskInput

	cmd := &cobra.Command{
		Use:   "add <goal-id>",
		Short: "Add a task to a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goalID, err := parseID(args[0])
			if err != nil {
				return err
			}

			task, err := a.client.CreateTask(commandContext(cmd), goalID, input)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added task #%d to goal #%d: %s\n", task.ID, goalID, task.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Title, "title", "", "Task title")
	cmd.Flags().StringVar(&input.Description, "description", "", "Optional description")

	return cmd
}

func (a *app) tasksShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			task, err := a.client.GetTask(commandContext(cmd), id)
			if err != nil {
				return err
			}

			renderTask(cmd.OutOrStdout(), task)
			return nil
		},
	}
}

func (a *app) tasksEditCmd() *cobra.Command {
	var (
		title, desc           string
		completed, clearDesc bool
	)

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Change only the given fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			patch := client.TaskPatch{ClearDescription: clearDesc}

			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &desc
			}
			if flags.Changed("completed") {
				patch.Completed = &completed
			}

			task, err := a.client.UpdateTask(commandContext(cmd), id, patch)
			if err != nil {
				return err
			}

			renderTask(cmd.OutOrStdout(), task)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&desc, "description", "", "New description")
	cmd.Flags().BoolVar(&completed, "completed", false, "Mark as done (--completed=false to reopen)")
	cmd.Flags().BoolVar(&clearDesc, "clear-description", false, "Remove the description")
	cmd.MarkFlagsMutuallyExclusive("description", "clear-description")

	return cmd
}

func (a *app) tasksToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <task-id>",
		Short: "Flip a task between done and open",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			task, err := a.client.ToggleTask(commandContext(cmd), id)
			if err != nil {
				return err
			}

			renderTask(cmd.OutOrStdout(), task)
			return nil
		},
	}
}

func (a *app) tasksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := a.client.DeleteTask(commandContext(cmd), id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d\n", id)
			return nil
		},
	}
}
