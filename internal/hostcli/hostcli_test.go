package hostcli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "workloads.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newHost() *Host {
	log, _ := test.NewNullLogger()
	return &Host{Log: log, Ctx: context.Background()}
}

func TestDriveRejectsZeroIterations(t *testing.T) {
	cmd := &DriveCmd{Catalog: "unused.yaml", Iterations: 0, Timeout: time.Second}
	assert.EqualError(t, cmd.Run(newHost()), "iterations must be at least 1")
}

func TestDriveUnknownWorkload(t *testing.T) {
	catalog := writeCatalog(t, `
workloads:
  - name: edu-1
    command: [artifact-workloads, serve, edu-1]
`)

	cmd := &DriveCmd{Catalog: catalog, Iterations: 1, Timeout: time.Second, Workloads: []string{"wiki-1"}}
	assert.EqualError(t, cmd.Run(newHost()), "workload 'wiki-1' not found in catalog")
}

func TestDriveReportsFailedWorkloads(t *testing.T) {
	catalog := writeCatalog(t, `
workloads:
  - name: edu-1
    command: [/nonexistent/artifact-workloads, serve, edu-1]
  - name: wiki-1
    command: [/nonexistent/artifact-workloads, serve, wiki-1]
`)

	cmd := &DriveCmd{Catalog: catalog, Iterations: 1, Timeout: time.Second}
	err := cmd.Run(newHost())
	require.Error(t, err)
	assert.Equal(t, "2 of 2 workloads failed: edu-1, wiki-1", err.Error())
}

func TestListMissingCatalog(t *testing.T) {
	cmd := &ListCmd{Catalog: filepath.Join(t.TempDir(), "missing.yaml")}
	assert.Error(t, cmd.Run(newHost()))
}
