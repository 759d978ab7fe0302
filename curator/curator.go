package curator

// curator.go contains utilities for building command lines for the
// external curator binary: rollup calculation over a raw capture
// file, and poplar report upload to the results service.

import (
	"strings"

	"al.essio.dev/pkg/shellescape"
)

// DefaultService is the results service endpoint reports are sent to.
const DefaultService = "cedar.mongodb.com:7070"

// RollupOptions contains options for curator calculate-rollups.
type RollupOptions struct {
	InputFile  string // Raw capture file to compute rollups for
	OutputFile string // Where curator writes the computed rollups
}

// BuildRollupArgs builds curator calculate-rollups command arguments.
func BuildRollupArgs(opts RollupOptions) []string {
	return []string{
		"calculate-rollups",
		"--inputFile", opts.InputFile,
		"--outputFile", opts.OutputFile,
	}
}

// BuildRollupCommand builds the calculate-rollups command string with
// proper shell escaping, for logging.
func BuildRollupCommand(binary string, opts RollupOptions) string {
	return renderCommand(binary, BuildRollupArgs(opts))
}

// SendOptions contains options for curator poplar send.
type SendOptions struct {
	Service  string // Results service endpoint (host:port); DefaultService if empty
	CertFile string // Client certificate PEM path
	KeyFile  string // Client key PEM path
	CAFile   string // Root CA PEM path
	Path     string // Report file to send
}

// BuildSendArgs builds curator poplar send command arguments.
func BuildSendArgs(opts SendOptions) []string {
	service := opts.Service
	if service == "" {
		service = DefaultService
	}

	return []string{
		"poplar", "send",
		"--service", service,
		"--cert", opts.CertFile,
		"--key", opts.KeyFile,
		"--ca", opts.CAFile,
		"--path", opts.Path,
	}
}

// BuildSendCommand builds the poplar send command string with proper
// shell escaping, for logging.
func BuildSendCommand(binary string, opts SendOptions) string {
	return renderCommand(binary, BuildSendArgs(opts))
}

func renderCommand(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, binary)

	for _, arg := range args {
		parts = append(parts, shellescape.Quote(arg))
	}

	return strings.Join(parts, " ")
}
