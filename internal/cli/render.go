package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"goalsapp/internal/core/domain"
)

const notSpecified = "not specified"

func dateOrDefault(d *domain.Date) string {
	if d == nil {
		return notSpecified
	}

	return d.String()
}

func renderGoalList(w io.Writer, goals []domain.Goal) {
	if len(goals) == 0 {
		fmt.Fprintln(w, "No goals yet. Create one with: goalsctl goals create --name <name>")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTART\tPLANNED END")

	for _, goal := range goals {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", goal.ID, goal.Name, dateOrDefault(goal.StartDate), dateOrDefault(goal.PlannedEndDate))
	}

	tw.Flush()
}

func renderGoal(w io.Writer, goal domain.Goal) {
	fmt.Fprintf(w, "Goal #%d: %s\n", goal.ID, goal.Name)
	fmt.Fprintf(w, "  Start date:       %s\n", dateOrDefault(goal.StartDate))
	fmt.Fprintf(w, "  Planned end date: %s\n", dateOrDefault(goal.PlannedEndDate))
}

func renderGoalDetail(w io.Writer, goal domain.Goal, tasks []domain.Task) {
	renderGoal(w, goal)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Tasks:")
	if len(tasks) == 0 {
		fmt.Fprintln(w, "  This goal has no tasks yet.")
		return
	}

	renderTaskList(w, tasks)
}

func renderTaskList(w io.Writer, tasks []domain.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tDONE\tTITLE\tDESCRIPTION")

	for _, task := range tasks {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", task.ID, checkbox(task.Completed), task.Title, description(task))
	}

	tw.Flush()
}

func renderTask(w io.Writer, task domain.Task) {
	fmt.Fprintf(w, "Task #%d %s %s\n", task.ID, checkbox(task.Completed), task.Title)
	fmt.Fprintf(w, "  Goal:        %d\n", task.GoalID)
	fmt.Fprintf(w, "  Description: %s\n", description(task))
}

func checkbox(completed domain.Flag) string {
	if completed.Bool() {
		return "[x]"
	}

	return "[ ]"
}

func description(task domain.Task) string {
	if task.Description == nil || *task.Description == "" {
		return "-"
	}

	return *task.Description
}
