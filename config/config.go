package config

// This file snapshots the run metadata this tool needs from the
// execution environment. All environment reads happen here, once, so
// the report builder stays a pure function of the snapshot.

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// Region the metrics bucket lives in (N. Virginia).
	cloudRegion = "us-east-1"
	// Bucket all metric artifacts are uploaded to.
	cloudBucket = "dsi-genny-metrics"
)

// requiredKeys are the environment keys a run cannot proceed without.
var requiredKeys = []string{
	"EVG_project",
	"EVG_version",
	"EVG_variant",
	"EVG_task_name",
	"EVG_task_id",
	"EVG_execution_number",
	"EVG_is_patch",
	"aws_key",
	"aws_secret",
	"perf_jira_user",
	"perf_jira_pw",
}

// LookupFunc resolves a key from some key-value source. os.LookupEnv
// satisfies it; tests inject a map-backed one.
type LookupFunc func(key string) (string, bool)

// Options are the per-invocation inputs that do not come from the
// environment.
type Options struct {
	// TestName defaults to the EVG task name when empty
	TestName string
	// Local paths of the metric files to reference in the report
	MetricsFileNames []string
	// Wall-clock duration of the test run
	TestRunTime time.Duration
	// Now is the report-build instant; zero means time.Now().UTC()
	Now time.Time
}

// Config is an immutable snapshot of everything the report builder
// needs. Construct it once per run with FromEnv.
type Config struct {
	Project         string
	Version         string
	Variant         string
	TaskName        string
	TaskID          string
	ExecutionNumber int
	// True unless the run is part of a patch build
	Mainline bool

	TestName         string
	MetricsFileNames []string
	TestRunTime      time.Duration
	Now              time.Time

	APIKey      string
	APISecret   string
	CloudRegion string
	CloudBucket string

	JiraUser     string
	JiraPassword string
}

// FromEnv builds a Config from the given key-value source. A missing
// required key is a fatal configuration error reported before any I/O
// happens.
func FromEnv(lookup LookupFunc, opts Options) (*Config, error) {
	env := make(map[string]string, len(requiredKeys))
	for _, key := range requiredKeys {
		value, ok := lookup(key)
		if !ok {
			return nil, fmt.Errorf("missing required environment variable %q", key)
		}
		env[key] = value
	}

	execution, err := strconv.Atoi(env["EVG_execution_number"])
	if err != nil {
		return nil, fmt.Errorf("invalid EVG_execution_number %q: %w", env["EVG_execution_number"], err)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	testName := opts.TestName
	if testName == "" {
		testName = env["EVG_task_name"]
	}

	return &Config{
		Project:         env["EVG_project"],
		Version:         env["EVG_version"],
		Variant:         env["EVG_variant"],
		TaskName:        env["EVG_task_name"],
		TaskID:          env["EVG_task_id"],
		ExecutionNumber: execution,
		// EVG_is_patch is either the string "true" or something else
		Mainline: env["EVG_is_patch"] != "true",

		TestName:         testName,
		MetricsFileNames: opts.MetricsFileNames,
		TestRunTime:      opts.TestRunTime,
		Now:              now,

		APIKey:      env["aws_key"],
		APISecret:   env["aws_secret"],
		CloudRegion: cloudRegion,
		CloudBucket: cloudBucket,

		JiraUser:     env["perf_jira_user"],
		JiraPassword: env["perf_jira_pw"],
	}, nil
}

// CreatedAt returns the instant the test run started.
func (c *Config) CreatedAt() time.Time {
	return c.Now.Add(-c.TestRunTime)
}
