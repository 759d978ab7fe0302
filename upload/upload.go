package upload

// upload.go sends a built report file to the results service through
// the external curator binary, authenticating with the PEM bundle
// from the cert retriever.

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cedarctl/cedarctl/curator"
	"github.com/cedarctl/cedarctl/runner"
)

// Uploader transmits report files to the results service.
type Uploader struct {
	logger    zerolog.Logger
	retriever *CertRetriever
	runner    runner.Runner
	// Curator binary to invoke; "curator" (resolved via PATH) if empty
	Binary string
	// Results service endpoint; curator.DefaultService if empty
	Service string
}

// NewUploader creates an Uploader that authenticates with the given
// retriever and runs curator through the given runner.
func NewUploader(logger zerolog.Logger, retriever *CertRetriever, r runner.Runner) *Uploader {
	return &Uploader{
		logger:    logger,
		retriever: retriever,
		runner:    r,
	}
}

// Upload fetches the PEM bundle and sends the report at reportPath.
// Any fetch failure and a non-zero curator exit are fatal; there are
// no retries.
func (u *Uploader) Upload(reportPath string) error {
	certFile, err := u.retriever.UserCert()
	if err != nil {
		return fmt.Errorf("failed to retrieve user certificate: %w", err)
	}

	keyFile, err := u.retriever.UserKey()
	if err != nil {
		return fmt.Errorf("failed to retrieve user key: %w", err)
	}

	caFile, err := u.retriever.RootCA()
	if err != nil {
		return fmt.Errorf("failed to retrieve root CA: %w", err)
	}

	binary := u.Binary
	if binary == "" {
		binary = "curator"
	}

	opts := curator.SendOptions{
		Service:  u.Service,
		CertFile: certFile,
		KeyFile:  keyFile,
		CAFile:   caFile,
		Path:     reportPath,
	}

	u.logger.Info().
		Str("command", curator.BuildSendCommand(binary, opts)).
		Msg("Sending report")

	if err := u.runner.Run(binary, curator.BuildSendArgs(opts)...); err != nil {
		if code := runner.ExitCode(err); code >= 0 {
			return fmt.Errorf("report upload failed with exit code %d: %w", code, err)
		}
		return fmt.Errorf("report upload failed: %w", err)
	}

	u.logger.Info().Str("report", reportPath).Msg("Report sent")
	return nil
}
