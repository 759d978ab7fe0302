package report

// This file builds the test-result document from a run configuration
// snapshot and persists it as JSON.

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cedarctl/cedarctl/config"
	"github.com/cedarctl/cedarctl/model"
)

// DefaultFileName is the report filename used when none is given.
const DefaultFileName = "cedar_report.json"

// Build constructs the report document from a Config snapshot. It is
// a pure function: it touches neither the filesystem nor the network,
// and the same snapshot always produces the same document.
func Build(cfg *config.Config) model.Report {
	artifacts := make([]model.TestArtifact, 0, len(cfg.MetricsFileNames))
	for _, path := range cfg.MetricsFileNames {
		artifacts = append(artifacts, model.TestArtifact{
			Bucket:         cfg.CloudBucket,
			Path:           filepath.Base(path),
			Tags:           []string{},
			LocalPath:      path,
			CreatedAt:      cfg.CreatedAt(),
			IsUncompressed: true,
		})
	}

	bucket := model.BucketConfig{
		APIKey:    cfg.APIKey,
		APISecret: cfg.APISecret,
		Region:    cfg.CloudRegion,
		Name:      cfg.CloudBucket,
		// Stable for retries of the same execution, distinct across
		// executions of the same task.
		Prefix: fmt.Sprintf("%s_%d", cfg.TaskID, cfg.ExecutionNumber),
	}

	test := model.Test{
		Info: model.TestInfo{
			TestName: cfg.TestName,
			Trial:    0,
			Tags:     []string{},
			Args:     map[string]string{},
		},
		CreatedAt:   cfg.CreatedAt(),
		CompletedAt: cfg.Now,
		Artifacts:   artifacts,
	}

	return model.Report{
		Project:         cfg.Project,
		Version:         cfg.Version,
		Variant:         cfg.Variant,
		TaskName:        cfg.TaskName,
		TaskID:          cfg.TaskID,
		ExecutionNumber: cfg.ExecutionNumber,
		Mainline:        cfg.Mainline,
		Tests:           []model.Test{test},
		Bucket:          bucket,
	}
}

// Write serializes the report as JSON to the given path. Timestamps
// are RFC 3339 text.
func Write(r model.Report, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// Load reads a report document back from disk.
func Load(path string) (model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Report{}, err
	}

	var r model.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return model.Report{}, fmt.Errorf("failed to parse report: %w", err)
	}

	return r, nil
}
