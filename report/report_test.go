package report

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cedarctl/cedarctl/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Project:          "genny",
		Version:          "abcdef0123456789",
		Variant:          "linux-standalone",
		TaskName:         "big_update",
		TaskID:           "genny_linux_standalone_big_update_1234",
		ExecutionNumber:  2,
		Mainline:         true,
		TestName:         "big_update",
		MetricsFileNames: []string{"/tmp/a.txt", "/tmp/b.txt"},
		TestRunTime:      90 * time.Second,
		Now:              time.Date(2021, 4, 1, 12, 0, 0, 0, time.UTC),
		APIKey:           "AKIAEXAMPLE",
		APISecret:        "secret",
		CloudRegion:      "us-east-1",
		CloudBucket:      "dsi-genny-metrics",
	}
}

func TestBuildArtifacts(t *testing.T) {
	r := Build(testConfig())

	require.Len(t, r.Tests, 1)

	test := r.Tests[0]
	require.Len(t, test.Artifacts, 2)

	require.Equal(t, "a.txt", test.Artifacts[0].Path)
	require.Equal(t, "/tmp/a.txt", test.Artifacts[0].LocalPath)
	require.Equal(t, "b.txt", test.Artifacts[1].Path)
	require.Equal(t, "/tmp/b.txt", test.Artifacts[1].LocalPath)

	for _, artifact := range test.Artifacts {
		require.Equal(t, "dsi-genny-metrics", artifact.Bucket)
		require.True(t, artifact.IsUncompressed)
		require.Equal(t, test.CreatedAt, artifact.CreatedAt)
	}
}

func TestBuildTimestamps(t *testing.T) {
	cfg := testConfig()
	r := Build(cfg)

	test := r.Tests[0]
	require.Equal(t, cfg.Now.Add(-90*time.Second), test.CreatedAt)
	require.Equal(t, cfg.Now, test.CompletedAt)
	require.False(t, test.CompletedAt.Before(test.CreatedAt))
}

func TestBuildBucketPrefix(t *testing.T) {
	r := Build(testConfig())
	require.Equal(t, "genny_linux_standalone_big_update_1234_2", r.Bucket.Prefix)
}

func TestBuildMainline(t *testing.T) {
	for _, mainline := range []bool{true, false} {
		cfg := testConfig()
		cfg.Mainline = mainline
		require.Equal(t, mainline, Build(cfg).Mainline)
	}
}

func TestBuildIsPure(t *testing.T) {
	cfg := testConfig()

	first, err := json.Marshal(Build(cfg))
	require.NoError(t, err)
	second, err := json.Marshal(Build(cfg))
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestBuildSerializedShape(t *testing.T) {
	data, err := json.Marshal(Build(testConfig()))
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))

	for _, key := range []string{
		"project", "version", "variant", "task_name", "task_id",
		"execution_number", "mainline", "tests", "bucket",
	} {
		require.Contains(t, doc, key)
	}

	tests := doc["tests"].([]interface{})
	test := tests[0].(map[string]interface{})
	require.Contains(t, test, "info")
	require.Contains(t, test, "artifacts")

	// Timestamps serialize as ISO-8601 text.
	require.Equal(t, "2021-04-01T12:00:00Z", test["completed_at"])
	require.Equal(t, "2021-04-01T11:58:30Z", test["created_at"])

	// The session token key is always present, null when unset.
	bucket := doc["bucket"].(map[string]interface{})
	require.Contains(t, bucket, "api_token")
	require.Nil(t, bucket["api_token"])
}

func TestWriteLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	built := Build(testConfig())
	require.NoError(t, Write(built, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, built, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
