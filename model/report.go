package model

import "time"

// BucketConfig describes the remote object-storage location test
// artifacts are uploaded to.
type BucketConfig struct {
	// Access key for the bucket
	APIKey string `json:"api_key"`
	// Access secret for the bucket
	APISecret string `json:"api_secret"`
	// Optional session token; null for long-lived credentials
	APIToken *string `json:"api_token"`
	// Bucket region (e.g., "us-east-1")
	Region string `json:"region"`
	// Bucket name
	Name string `json:"name"`
	// Per-run path prefix, "<task_id>_<execution_number>". Must be
	// unique across concurrent executions of the same task so
	// artifacts from retries never collide.
	Prefix string `json:"prefix"`
}

// TestArtifact is a single file uploaded alongside the test results.
type TestArtifact struct {
	// Name of the bucket the artifact is stored in
	Bucket string `json:"bucket"`
	// Remote path within the bucket (basename of LocalPath)
	Path string `json:"path"`
	// Free-form tags (currently unused, kept for extensibility)
	Tags []string `json:"tags"`
	// Path of the file on the local filesystem. Must exist at upload
	// time; the builder does not validate it.
	LocalPath string `json:"local_path"`
	// Timestamp the artifact was created
	CreatedAt time.Time `json:"created_at"`
	// Whether the artifact is stored without compression
	IsUncompressed bool `json:"is_uncompressed"`
}

// TestInfo identifies a single sub-test.
type TestInfo struct {
	// Human friendly test name
	TestName string `json:"test_name"`
	// Trial number; multiple trials of the same named test are
	// distinguished by this field
	Trial int `json:"trial"`
	// Free-form tags
	Tags []string `json:"tags"`
	// Free-form test parameters
	Args map[string]string `json:"args"`
}

// Metric is a named measurement attached to a test. Reserved for
// future structured-metric reporting; nothing populates it yet.
type Metric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Test is the result of one sub-test.
type Test struct {
	Info TestInfo `json:"info"`
	// Timestamp the test started
	CreatedAt time.Time `json:"created_at"`
	// Timestamp the test finished; never before CreatedAt
	CompletedAt time.Time `json:"completed_at"`
	// Artifacts produced by this test
	Artifacts []TestArtifact `json:"artifacts"`
	// Reserved for future structured-metric reporting
	Metrics []Metric `json:"metrics"`
	// Reserved for nested sub-tests
	SubTests []Test `json:"sub_tests"`
}

// Report is the top-level test-result document sent to the results
// service. It is constructed once per run and never mutated after
// construction.
type Report struct {
	// Project identifier from the execution environment
	Project string `json:"project"`
	// Version (commit) identifier
	Version string `json:"version"`
	// Build variant
	Variant string `json:"variant"`
	// Task name
	TaskName string `json:"task_name"`
	// Task ID
	TaskID string `json:"task_id"`
	// Retry counter for this task instance
	ExecutionNumber int `json:"execution_number"`
	// True unless the run is part of a code-review patch build
	Mainline bool `json:"mainline"`
	// Sub-test results
	Tests []Test `json:"tests"`
	// Storage location for the artifacts referenced by Tests
	Bucket BucketConfig `json:"bucket"`
}
