package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cedarctl/cedarctl/report"
)

func setReportEnv(t *testing.T) {
	t.Helper()

	t.Setenv("EVG_project", "genny")
	t.Setenv("EVG_version", "abcdef0123456789")
	t.Setenv("EVG_variant", "linux-standalone")
	t.Setenv("EVG_task_name", "big_update")
	t.Setenv("EVG_task_id", "genny_linux_standalone_big_update_1234")
	t.Setenv("EVG_execution_number", "0")
	t.Setenv("EVG_is_patch", "true")
	t.Setenv("aws_key", "AKIAEXAMPLE")
	t.Setenv("aws_secret", "secret")
	t.Setenv("perf_jira_user", "perf.user")
	t.Setenv("perf_jira_pw", "hunter2")
}

func TestReportCommandSkipUpload(t *testing.T) {
	setReportEnv(t)
	outputDir := t.TempDir()

	app := New()
	err := app.Run([]string{
		"cedarctl", "report",
		"--output-dir", outputDir,
		"--metrics-file", "/tmp/a.txt",
		"--metrics-file", "/tmp/b.txt",
		"--test-run-time", "90s",
		"--skip-upload",
	})
	require.NoError(t, err)

	doc, err := report.Load(filepath.Join(outputDir, report.DefaultFileName))
	require.NoError(t, err)

	require.Equal(t, "genny", doc.Project)
	require.False(t, doc.Mainline)
	require.Len(t, doc.Tests, 1)
	require.Len(t, doc.Tests[0].Artifacts, 2)
	require.Equal(t, "a.txt", doc.Tests[0].Artifacts[0].Path)
	require.Equal(t, "b.txt", doc.Tests[0].Artifacts[1].Path)
	require.Equal(t, "genny_linux_standalone_big_update_1234_0", doc.Bucket.Prefix)
}

func TestReportCommandMissingEnv(t *testing.T) {
	setReportEnv(t)
	os.Unsetenv("EVG_project")

	app := New()
	err := app.Run([]string{"cedarctl", "report", "--skip-upload"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "EVG_project")
}

// fakeCurator writes a shell stand-in for the curator binary that
// emits a fixed rollup output file.
func fakeCurator(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	script := `#!/bin/sh
out=""
while [ $# -gt 0 ]; do
  if [ "$1" = "--outputFile" ]; then out="$2"; fi
  shift
done
printf '[{"Name":"AverageLatency","Value":2000000},{"Name":"Unused","Value":5}]' > "$out"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "curator"), []byte(script), 0755))
	return dir
}

func TestRollupsCommand(t *testing.T) {
	captureDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(captureDir, "run1.ftdc"), []byte("ftdc"), 0644))

	app := New()
	var stdout bytes.Buffer
	app.cli.Writer = &stdout

	err := app.Run([]string{
		"cedarctl", "rollups",
		"--scratch-dir", t.TempDir(),
		captureDir, fakeCurator(t),
	})
	require.NoError(t, err)

	var summary map[string]map[string]float64
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
	require.Equal(t, map[string]map[string]float64{
		"run1": {"AverageLatency": 2.0},
	}, summary)
}

func TestRollupsCommandUsage(t *testing.T) {
	app := New()
	err := app.Run([]string{"cedarctl", "rollups", "only-one-arg"})
	require.Error(t, err)
}
