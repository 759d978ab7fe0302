package cli

// This file contains the report command: build the test-result
// document from the run environment, write it to disk, and send it to
// the results service.

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/cedarctl/cedarctl/config"
	"github.com/cedarctl/cedarctl/report"
	"github.com/cedarctl/cedarctl/runner"
	"github.com/cedarctl/cedarctl/upload"
)

func (a *App) report(ctx *cli.Context) error {
	cfg, err := config.FromEnv(os.LookupEnv, config.Options{
		TestName:         ctx.String("test-name"),
		MetricsFileNames: ctx.StringSlice("metrics-file"),
		TestRunTime:      ctx.Duration("test-run-time"),
	})
	if err != nil {
		a.logger.Error().Err(err).Msg("Invalid run configuration")
		return err
	}

	doc := report.Build(cfg)
	reportPath := filepath.Join(ctx.String("output-dir"), ctx.String("report-file"))

	if err := report.Write(doc, reportPath); err != nil {
		a.logger.Error().Err(err).Str("path", reportPath).Msg("Failed to write report")
		return err
	}

	a.logger.Info().
		Str("path", reportPath).
		Int("artifacts", len(doc.Tests[0].Artifacts)).
		Bool("mainline", doc.Mainline).
		Msg("Report written")

	if ctx.Bool("skip-upload") {
		a.logger.Info().Msg("Skipping upload")
		return nil
	}

	retriever := upload.NewCertRetriever(cfg.JiraUser, cfg.JiraPassword,
		upload.WithCacheDir(ctx.String("cert-dir")))

	uploader := upload.NewUploader(a.logger, retriever, runner.Exec{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	uploader.Binary = ctx.String("curator")
	uploader.Service = ctx.String("service")

	if err := uploader.Upload(reportPath); err != nil {
		a.logger.Error().Err(err).Msg("Report upload failed")
		return err
	}

	return nil
}
