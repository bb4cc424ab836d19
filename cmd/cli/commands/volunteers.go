package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/escala/pkg/core/model"
	"github.com/jakechorley/escala/pkg/core/schedule"
	"github.com/jakechorley/escala/pkg/core/store"
)

// AddVolunteerCmd creates the addVolunteer command
func AddVolunteerCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addVolunteer <name> <phone>",
		Short: "Register a new active volunteer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireManager(); err != nil {
				return err
			}

			v, err := app.Store.AddVolunteer(app.Ctx, args[0], args[1])
			var verr *store.ValidationError
			if errors.As(err, &verr) {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "\n✗ Volunteer not added:\n")
				for _, f := range verr.Fields {
					fmt.Fprintf(out, "  - %s %s\n", f.Field, f.Reason)
				}
				fmt.Fprintln(out)
				return err
			}
			if v == nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Volunteer added!\n\n")
			fmt.Fprintf(cmd.OutOrStdout(), "ID:    %s\nName:  %s\nPhone: %s\n\n", v.ID, v.Name, FormatPhone(v.Phone))
			return err
		},
	}
}

// ListVolunteersCmd creates the listVolunteers command
func ListVolunteersCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listVolunteers",
		Short: "List registered volunteers with their participation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			search, _ := cmd.Flags().GetString("search")
			app.Logger.Debug("listVolunteers command", zap.String("search", search))

			snap := app.Store.Snapshot()
			volunteers := schedule.SearchVolunteers(snap, search)
			printVolunteers(cmd.OutOrStdout(), snap, volunteers)
			return nil
		},
	}

	cmd.Flags().StringP("search", "s", "", "Only list volunteers whose name contains this text")

	return cmd
}

// DeleteVolunteerCmd creates the deleteVolunteer command
func DeleteVolunteerCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteVolunteer <volunteer_id>",
		Short: "Delete a volunteer and all of their assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireManager(); err != nil {
				return err
			}

			id := args[0]
			v, known := app.Store.Snapshot().Volunteer(id)

			cascaded, err := app.Store.DeleteVolunteer(app.Ctx, id)
			if err != nil {
				return err
			}

			if !known {
				fmt.Fprintf(cmd.OutOrStdout(), "No volunteer with id %s, nothing deleted.\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Deleted %s and %d assignment(s)\n\n", v.Name, cascaded)
			return nil
		},
	}
}

// SetActiveCmd creates the setActive command
func SetActiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setActive <volunteer_id> <true|false>",
		Short: "Mark a volunteer active or inactive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireManager(); err != nil {
				return err
			}

			active, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("active must be true or false, got: %s", args[1])
			}

			found, err := app.Store.SetVolunteerActive(app.Ctx, args[0], active)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "No volunteer with id %s.\n", args[0])
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is now %s\n", args[0], activeLabel(active))
			return nil
		},
	}
}

func printVolunteers(out io.Writer, snap store.Snapshot, volunteers []model.Volunteer) {
	fmt.Fprintf(out, "\nFound %d volunteers:\n\n", len(volunteers))
	for _, v := range volunteers {
		fmt.Fprintf(out, "- %s (%s) - %s - %s - %d day(s) served\n",
			v.Name,
			v.ID,
			FormatPhone(v.Phone),
			activeLabel(v.IsActive),
			schedule.ParticipationDays(snap, v.ID),
		)
	}
	fmt.Fprintln(out)
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

// FormatPhone renders a 10-digit phone as (DD) DDDD-DDDD; anything else is returned as stored
func FormatPhone(digits string) string {
	if len(digits) != store.PhoneDigits {
		return digits
	}
	return fmt.Sprintf("(%s) %s-%s", digits[:2], digits[2:6], digits[6:])
}
