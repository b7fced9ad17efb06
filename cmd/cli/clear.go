package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/gearvrf/gvrf-exporter/internal/common"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every object from the device's main scene",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes {
			confirmed := false

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Clear the scene on %s?", cfg.Remote.Host)).
						Description("Everything in the main scene is removed, including objects the app created").
						Value(&confirmed),
				),
			)

			if err := form.Run(); err != nil {
				return fmt.Errorf("prompt cancelled: %w", err)
			}
			if !confirmed {
				fmt.Println(infoStyle.Render("Nothing changed"))
				return nil
			}
		}

		ctx, cleanup := common.WithInterrupt(cmd.Context())
		defer cleanup()

		session, err := connectSession(ctx)
		if err != nil {
			return err
		}
		defer session.Disconnect()

		if err := session.ExecAll(ctx, session.Builder().Clear()); err != nil {
			return err
		}

		fmt.Println(successStyle.Render("Scene cleared"))
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	rootCmd.AddCommand(clearCmd)
}
