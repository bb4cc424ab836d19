package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/escala/pkg/core/model"
	"github.com/jakechorley/escala/pkg/core/schedule"
	"github.com/jakechorley/escala/pkg/core/services"
)

// VacantMarker is printed for rooms with nobody assigned
const VacantMarker = "(vacant)"

// DashboardCmd creates the dashboard command
func DashboardCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard [date]",
		Short: "Show fill status for a service date (defaults to the next one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var date string
			if len(args) > 0 {
				date = args[0]
			}

			result, err := services.Dashboard(app.Store.Snapshot(), app.Calendar, app.Logger, date, app.now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			s := result.Summary
			fmt.Fprintf(out, "\nService %s  (previous %s, next %s)\n", s.Date, result.Previous, result.Next)
			fmt.Fprintf(out, "Filled %d/%d slots, %d full room(s)\n\n", s.Filled, s.TotalSlots, s.FullRooms)

			for _, rr := range result.Roster {
				occ := rr.Occupancy
				marker := " "
				switch {
				case occ.OverCapacity:
					marker = "!"
				case occ.IsFull:
					marker = "✓"
				}
				fmt.Fprintf(out, " %s %-16s %d/%d  %s\n", marker, rr.Room.Name, occ.Count, occ.Capacity, namesOrVacant(rr.Names))
			}

			if len(s.DoubleBooked) > 0 {
				snap := app.Store.Snapshot()
				fmt.Fprintf(out, "\n⚠️  Serving in more than one room:\n")
				for _, id := range s.DoubleBooked {
					v, _ := snap.Volunteer(id)
					fmt.Fprintf(out, "  - %s\n", v.Name)
				}
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

// MonthCmd creates the month command
func MonthCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "month [month] [year]",
		Short: "Summarise every service date in a month (defaults to the current month)",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseMonthArgs(args, app.now())
			if err != nil {
				return err
			}

			app.Logger.Debug("month command", zap.Int("year", year), zap.Int("month", int(month)))

			result, err := services.MonthOverview(app.Store.Snapshot(), app.Calendar, app.Logger, year, month)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%s %d: %d service date(s)\n\n", result.Month, result.Year, len(result.Dates))
			for _, s := range result.Dates {
				fmt.Fprintf(out, "  %s  %2d/%d filled  %d full room(s)", s.Date, s.Filled, s.TotalSlots, s.FullRooms)
				if len(s.DoubleBooked) > 0 {
					fmt.Fprintf(out, "  ⚠️  %d doubled", len(s.DoubleBooked))
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

// RosterCmd creates the roster command
func RosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "roster <date>",
		Short: "Print a shareable text roster for a service date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := args[0]
			if _, err := model.ParseDate(date); err != nil {
				return err
			}

			roster := schedule.Roster(app.Store.Snapshot(), date)
			fmt.Fprint(cmd.OutOrStdout(), FormatRoster(date, roster))
			return nil
		},
	}
}

// FormatRoster renders one line per room with its assigned names or VacantMarker
func FormatRoster(date string, roster []schedule.RoomRoster) string {
	var b strings.Builder

	heading := date
	if t, err := model.ParseDate(date); err == nil {
		heading = t.Format("Monday, 2 January 2006")
	}
	fmt.Fprintf(&b, "ROSTER - %s\n\n", strings.ToUpper(heading))

	for _, rr := range roster {
		fmt.Fprintf(&b, "%s: %s\n", rr.Room.Name, namesOrVacant(rr.Names))
	}
	return b.String()
}

func namesOrVacant(names []string) string {
	if len(names) == 0 {
		return VacantMarker
	}
	return strings.Join(names, ", ")
}

// parseMonthArgs reads optional [month] [year] arguments, defaulting to now
func parseMonthArgs(args []string, now time.Time) (int, time.Month, error) {
	year, month := now.Year(), now.Month()

	if len(args) > 0 {
		m, err := strconv.Atoi(args[0])
		if err != nil || m < 1 || m > 12 {
			return 0, 0, fmt.Errorf("month must be a number between 1 and 12, got: %s", args[0])
		}
		month = time.Month(m)
	}
	if len(args) > 1 {
		y, err := strconv.Atoi(args[1])
		if err != nil || y < 1 {
			return 0, 0, fmt.Errorf("year must be a positive number, got: %s", args[1])
		}
		year = y
	}

	return year, month, nil
}
