package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gearvrf/gvrf-exporter/internal/common"
	"github.com/gearvrf/gvrf-exporter/internal/daemon"
	"github.com/gearvrf/gvrf-exporter/internal/exporter"
	"github.com/gearvrf/gvrf-exporter/internal/models"
	"github.com/gearvrf/gvrf-exporter/internal/staging"
)

var exportCmd = &cobra.Command{
	Use:   "export <manifest>",
	Short: "Export a scene manifest to the device",
	Long: `Stage the models of a scene manifest, serve them over HTTP and rebuild
the scene on the device through its debug console.

Only root objects are sent; children travel inside their root's model file.
With --only, just the named objects are exported.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	only, _ := cmd.Flags().GetStringSlice("only")
	watch, _ := cmd.Flags().GetBool("watch")
	noServe, _ := cmd.Flags().GetBool("no-serve")

	ctx, cleanup := common.WithInterrupt(cmd.Context())
	defer cleanup()

	var stager *staging.Stager
	var probe exporter.Probe

	if cfg.Server.Enabled && !noServe {
		server, err := daemon.StartAssetServer(cfg)
		if err != nil {
			return err
		}
		defer server.Stop()

		stager = server.Stager
		probe = exporter.NewHTTPProbe(
			strings.TrimSuffix(stager.BaseURL(), "/") + cfg.Server.Health.Path)
	} else {
		var err error
		stager, err = staging.NewStager(cfg.Server.Root, cfg.GetPublicURL())
		if err != nil {
			return err
		}
	}

	fmt.Println(infoStyle.Render(fmt.Sprintf("Serving assets from %s at %s", stager.Root(), stager.BaseURL())))

	exportOnce := func(ctx context.Context, manifest *models.Manifest) error {
		session, err := connectSession(ctx)
		if err != nil {
			return err
		}
		defer session.Disconnect()

		report, err := exporter.NewExporter(session, stager, probe).Export(ctx, manifest, only)
		printReport(report)
		return err
	}

	if watch {
		fmt.Println(infoStyle.Render("Watching for changes, press Ctrl+C to stop"))
		return exporter.Watch(ctx, args[0], exporter.DefaultDebounce, exportOnce)
	}

	manifest, err := exporter.LoadManifest(args[0])
	if err != nil {
		return err
	}

	return exportOnce(ctx, manifest)
}

func printReport(report *exporter.Report) {
	if report == nil {
		return
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Export " + report.Run))
	fmt.Printf("  meshes: %d  lights: %d  cameras: %d  textures copied: %d  (%s)\n",
		report.Meshes, report.Lights, report.Cameras, report.Textures, report.Duration.Round(time.Millisecond))

	for _, s := range report.Skipped {
		fmt.Println(warningStyle.Render(fmt.Sprintf("  skipped %s: %v", s.Name, s.Reason)))
	}
	for _, w := range report.Warnings {
		fmt.Println(warningStyle.Render(fmt.Sprintf("  warning: %v", w)))
	}

	if report.Exported() > 0 {
		fmt.Println(successStyle.Render(fmt.Sprintf("Exported %d objects", report.Exported())))
	} else {
		logrus.WithField(models.RunField, report.Run).Warnln("Nothing was exported")
	}
}

func init() {
	exportCmd.Flags().StringSlice("only", nil, "Export only these objects (and their children)")
	exportCmd.Flags().BoolP("watch", "w", false, "Export again whenever the manifest or its files change")
	exportCmd.Flags().Bool("no-serve", false, "Do not start the asset server; files are served elsewhere")

	rootCmd.AddCommand(exportCmd)
}
