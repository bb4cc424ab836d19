package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/escala/pkg/core/services"
	"github.com/jakechorley/escala/pkg/core/store"
)

// AutoFillCmd creates the autoFill command
func AutoFillCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autoFill <date>",
		Short: "Ask the configured advisor to fill open slots on a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireManager(); err != nil {
				return err
			}
			if app.Advisor == nil {
				return fmt.Errorf("no advisor configured (advisor.provider is none)")
			}

			dryRun, _ := cmd.Flags().GetBool("dry-run")
			app.Logger.Debug("autoFill command", zap.String("date", args[0]), zap.Bool("dry_run", dryRun))

			result, err := services.AutoFill(app.Ctx, app.Store, app.Advisor, app.Logger, args[0], app.minVolunteers(), dryRun)
			if result != nil {
				printAutoFillResult(cmd.OutOrStdout(), app.Store.Snapshot(), result)
			}
			return err
		},
	}

	cmd.Flags().Bool("dry-run", false, "Show validated suggestions without applying them")

	return cmd
}

func printAutoFillResult(out io.Writer, snap store.Snapshot, result *services.AutoFillResult) {
	name := func(id string) string {
		if v, ok := snap.Volunteer(id); ok {
			return v.Name
		}
		return id
	}

	if result.AdvisorErr != nil {
		fmt.Fprintf(out, "\n⚠️  No suggestions: %v\n\n", result.AdvisorErr)
		return
	}

	if result.DryRun {
		fmt.Fprintf(out, "\nSuggestions for %s (dry run, nothing applied):\n", result.Date)
		for _, p := range result.Accepted {
			fmt.Fprintf(out, "  - %s → %s  %s\n", name(p.VolunteerID), p.RoomID, p.Reason)
		}
	} else {
		fmt.Fprintf(out, "\n✓ Applied %d suggestion(s) for %s\n", len(result.Applied), result.Date)
		for _, a := range result.Applied {
			fmt.Fprintf(out, "  - %s → %s (%s)\n", name(a.Proposal.VolunteerID), a.Proposal.RoomID, a.Result)
		}
	}

	if collisions := result.Collisions(); len(collisions) > 0 {
		fmt.Fprintf(out, "\n⚠️  %d suggestion(s) matched an existing assignment and removed it:\n", len(collisions))
		for _, c := range collisions {
			fmt.Fprintf(out, "  - %s in %s\n", name(c.Proposal.VolunteerID), c.Proposal.RoomID)
		}
	}

	if len(result.Rejected) > 0 {
		fmt.Fprintf(out, "\n✗ Rejected %d suggestion(s):\n", len(result.Rejected))
		for _, r := range result.Rejected {
			fmt.Fprintf(out, "  - %s/%s: %s\n", r.Proposal.RoomID, r.Proposal.VolunteerID, r.Reason)
		}
	}
	fmt.Fprintln(out)
}
