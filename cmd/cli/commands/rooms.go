package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RoomsCmd creates the rooms command
func RoomsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List the room catalog and capacities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := app.Store.Catalog()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "\n%-14s %-16s %-8s %s\n", "ID", "NAME", "SLOTS", "DESCRIPTION")
			for _, r := range cat.Rooms() {
				fmt.Fprintf(out, "%-14s %-16s %-8d %s\n", r.ID, r.Name, r.Capacity, r.Description)
			}
			fmt.Fprintf(out, "\nTotal slots per service: %d\n\n", cat.TotalCapacity())
			return nil
		},
	}
}
