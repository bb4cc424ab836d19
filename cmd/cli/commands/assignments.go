package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/escala/pkg/core/model"
	"github.com/jakechorley/escala/pkg/core/services"
)

// ToggleCmd creates the toggle command
func ToggleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <date> <room_id> <volunteer_id>",
		Short: "Assign a volunteer to a room on a date, or unassign if already assigned",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.Toggle(app.Ctx, app.Store, app.Logger, args[0], args[1], args[2])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch result.Result {
			case model.Added:
				fmt.Fprintf(out, "✓ %s assigned to %s on %s\n", result.Volunteer.Name, result.Room.Name, args[0])
			case model.Removed:
				fmt.Fprintf(out, "✓ %s removed from %s on %s\n", result.Volunteer.Name, result.Room.Name, args[0])
			}
			if result.OverCapacity {
				fmt.Fprintf(out, "⚠️  %s is over capacity (%d)\n", result.Room.Name, result.Room.Capacity)
			}
			if result.DoubleBooked {
				fmt.Fprintf(out, "⚠️  %s now serves in more than one room on %s\n", result.Volunteer.Name, args[0])
			}
			return nil
		},
	}
}

// RemoveAssignmentCmd creates the removeAssignment command
func RemoveAssignmentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "removeAssignment <assignment_id>",
		Short: "Remove a single assignment by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := app.Store.RemoveAssignment(app.Ctx, args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "No assignment with id %s.\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Assignment %s removed\n", args[0])
			return nil
		},
	}
}
