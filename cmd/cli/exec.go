package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gearvrf/gvrf-exporter/internal/common"
)

var execCmd = &cobra.Command{
	Use:   "exec <statement>",
	Short: "Run one JavaScript statement in the device console",
	Long: `Run one JavaScript statement in the device console after the usual
bootstrap (scene and camera are bound) and print what the console answered.`,
	Example: `  gvrf-exporter exec --host 192.168.1.20 'scene.getSceneObjects().size()'`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cleanup := common.WithInterrupt(cmd.Context())
		defer cleanup()

		session, err := connectSession(ctx)
		if err != nil {
			return err
		}
		defer session.Disconnect()

		out, err := session.Eval(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		if out = strings.TrimSpace(out); len(out) > 0 {
			fmt.Println(consoleStyle.Render(out))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}
