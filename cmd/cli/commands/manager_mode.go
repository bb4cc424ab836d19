package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ManagerModeCmd creates the managerMode command
func ManagerModeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:       "managerMode [on|off]",
		Short:     "Show or change manager mode",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := app.Store.SetManagerMode(app.Ctx, args[0] == "on"); err != nil {
					return err
				}
			}

			state := "off"
			if app.Store.ManagerMode() {
				state = "on"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Manager mode is %s\n", state)
			return nil
		},
	}
}
