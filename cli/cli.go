package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/cedarctl/cedarctl/curator"
	"github.com/cedarctl/cedarctl/report"
)

const AppName = "cedarctl"

type App struct {
	logger zerolog.Logger
	cli    *cli.App
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
		cli: &cli.App{
			Name:  AppName,
			Usage: "Build, summarize and upload performance-test telemetry",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "Enable verbose (debug) logging",
				},
			},
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("verbose") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				return nil
			},
		},
	}
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "report",
		Usage:  "Build a test-result report from run metadata and upload it",
		Action: app.report,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "output-dir",
				Usage: "Directory the report file is written to",
				Value: ".",
			},
			&cli.StringFlag{
				Name:  "report-file",
				Usage: "Name of the generated report file",
				Value: report.DefaultFileName,
			},
			&cli.StringFlag{
				Name:  "test-name",
				Usage: "Human friendly name for this test, defaults to the EVG_task_name environment variable",
			},
			&cli.StringSliceFlag{
				Name:  "metrics-file",
				Usage: "Local metric file to reference in the report (can be specified multiple times)",
			},
			&cli.DurationFlag{
				Name:  "test-run-time",
				Usage: "Wall-clock duration of the test run",
			},
			&cli.StringFlag{
				Name:  "service",
				Usage: "Results service endpoint (host:port)",
				Value: curator.DefaultService,
			},
			&cli.StringFlag{
				Name:  "curator",
				Usage: "Curator binary to invoke for the upload",
				Value: "curator",
			},
			&cli.StringFlag{
				Name:  "cert-dir",
				Usage: "Directory PEM files are cached in",
				Value: ".",
			},
			&cli.BoolFlag{
				Name:  "skip-upload",
				Usage: "Build and write the report without uploading it",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "rollups",
		Usage:     "Extract summary statistics from raw telemetry captures",
		ArgsUsage: "<capture-dir> <curator-dir>",
		Action:    app.rollups,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "scratch-dir",
				Usage: "Directory the calculator's output files are written to (default: system temp dir)",
			},
		},
		Description: `Extract summary statistics from raw telemetry captures.

For every *.ftdc file in <capture-dir>, invokes the curator binary in
<curator-dir> to compute rollups, keeps the recognized fields converted
to reporting units, and prints the aggregate as JSON keyed by capture
name. Captures whose calculation or output parse fails are skipped;
the rest of the batch is unaffected.`,
	})
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}
