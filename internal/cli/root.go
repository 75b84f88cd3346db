package cli

import (
	"context"
	"os"
	"strconv"

	"goalsapp/pkg/client"

	"github.com/spf13/cobra"
)

type app struct {
	baseURL string
	client  *client.Client
}

// NewRootCmd builds the goalsctl command tree. Output goes to cmd.OutOrStdout
// so tests can capture it.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "goalsctl",
		Short:         "Track goals and their tasks from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.client = client.New(a.baseURL)
		},
	}

	defaultURL := os.Getenv("GOALS_API_URL")
	if defaultURL == "" {
		defaultURL = client.DefaultBaseURL
	}

	rootCmd.PersistentFlags().StringVar(&a.baseURL, "api-url", defaultURL, "Goals API base URL (or set GOALS_API_URL)")

	rootCmd.AddCommand(a.goalsCmd(), a.tasksCmd())

	return rootCmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &usageError{"id must be a positive integer, got " + strconv.Quote(raw)}
	}

	return id, nil
}

type usageError struct {
	message string
}

func (e *usageError) Error() string {
	return e.message
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
