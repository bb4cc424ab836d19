package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/escala/pkg/core/services"
)

// ReportCmd creates the report command
func ReportCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Participation ranking and volunteers never scheduled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireManager(); err != nil {
				return err
			}

			result := services.Report(app.Store.Snapshot(), app.Logger)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "\nVolunteers: %d (%d active)   Assignments: %d\n\n",
				result.TotalVolunteers, result.ActiveVolunteers, result.TotalAssignments)

			fmt.Fprintf(out, "Participation (distinct service days):\n")
			for i, p := range result.Ranking {
				fmt.Fprintf(out, "  %2d. %-24s %3d\n", i+1, p.Volunteer.Name, p.Days)
			}

			fmt.Fprintf(out, "\nNever scheduled (%d):\n", len(result.Unscheduled))
			for _, v := range result.Unscheduled {
				fmt.Fprintf(out, "  - %s %s\n", v.Name, FormatPhone(v.Phone))
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
