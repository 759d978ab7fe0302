package rollup

// extract.go runs the external rollup calculator over a directory of
// raw capture files and collects the recognized, unit-converted
// fields per capture. Failures are isolated per file: a capture whose
// tool invocation or output parse fails is skipped with a diagnostic
// and never affects the other captures in the batch.

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cedarctl/cedarctl/curator"
	"github.com/cedarctl/cedarctl/runner"
)

// CaptureExtension identifies raw telemetry capture files.
const CaptureExtension = ".ftdc"

// Summary maps capture identifier (capture filename without
// extension) to recognized field name to rounded, unit-converted
// value.
type Summary map[string]map[string]float64

// record is one entry of the calculator's output, a JSON array of
// named values.
type record struct {
	Name  string  `json:"Name"`
	Value float64 `json:"Value"`
}

// Processor extracts rollup summaries from capture files.
type Processor struct {
	logger zerolog.Logger
	runner runner.Runner
	// Directory the calculator's per-capture output files are
	// written to; os.TempDir() if empty.
	ScratchDir string
}

// NewProcessor returns a Processor that invokes the calculator
// through the given runner.
func NewProcessor(logger zerolog.Logger, r runner.Runner) *Processor {
	return &Processor{logger: logger, runner: r}
}

// Process runs the rollup calculator over every capture file in
// captureDir and returns the aggregate summary. curatorDir is the
// directory containing the curator binary. Captures that fail are
// logged and skipped; only a failure to read the directory itself is
// fatal.
func (p *Processor) Process(captureDir, curatorDir string) (Summary, error) {
	entries, err := os.ReadDir(captureDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read capture directory: %w", err)
	}

	scratch := p.ScratchDir
	if scratch == "" {
		scratch = os.TempDir()
	}

	binary := filepath.Join(curatorDir, "curator")
	summary := make(Summary)

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, CaptureExtension) {
			continue
		}

		baseName := strings.TrimSuffix(name, CaptureExtension)
		outputPath := filepath.Join(scratch, baseName+".output")

		opts := curator.RollupOptions{
			InputFile:  filepath.Join(captureDir, name),
			OutputFile: outputPath,
		}

		p.logger.Debug().
			Str("command", curator.BuildRollupCommand(binary, opts)).
			Msg("Calculating rollups")

		if err := p.runner.Run(binary, curator.BuildRollupArgs(opts)...); err != nil {
			p.logger.Warn().
				Err(err).
				Str("capture", name).
				Int("exit_code", runner.ExitCode(err)).
				Msg("Rollup calculation failed, skipping capture")
			continue
		}

		fields, err := extractFields(outputPath)
		if err != nil {
			p.logger.Warn().
				Err(err).
				Str("capture", name).
				Msg("Failed to read rollup output, skipping capture")
			continue
		}

		summary[baseName] = fields
	}

	return summary, nil
}

// extractFields reads one calculator output file and keeps the
// recognized fields, unit-converted and rounded to three decimals.
func extractFields(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse rollup output: %w", err)
	}

	fields := make(map[string]float64)
	for _, r := range records {
		converted, ok := Convert(r.Name, r.Value)
		if !ok {
			continue
		}
		fields[r.Name] = round3(converted)
	}

	return fields, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
