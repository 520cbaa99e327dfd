package args

import (
	"context"
	"testing"

	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/core"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSuite struct {
	log *logrus.Logger
}

func (s *fakeSuite) Name() string { return "fake" }

func (s *fakeSuite) Logger() *logrus.Logger { return s.log }

func (s *fakeSuite) Artifacts() []core.Artifact { return nil }

func (s *fakeSuite) Artifact(string) core.Artifact { return nil }

func (s *fakeSuite) AzureDevops() bool { return false }

func (s *fakeSuite) Context() context.Context { return context.Background() }

type stockArgs struct {
	NumStocks  int `default:"100"`
	NumSectors int `default:"11"`
}

type stocks struct {
	core.BaseArtifact
	args stockArgs
}

func (a *stocks) Name() string { return "finance-1" }

func (a *stocks) Args() any { return &a.args }

func (a *stocks) RegisterTestCases(core.TestRegistrar) error { return nil }

func newSuite() *fakeSuite {
	log, _ := test.NewNullLogger()
	return &fakeSuite{log: log}
}

func TestLocation(t *testing.T) {
	location, err := Location("", "finance-1")
	require.NoError(t, err)
	assert.Equal(t, "https://speedometer-artifact-workloads.pages.dev/workloads/finance-1/", location)

	location, err = Location("http://localhost:5173/workloads/finance-1/?numStocks=5", "finance-1")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5173/workloads/finance-1/?numStocks=5", location)
}

func TestParseDefaults(t *testing.T) {
	artifact := &stocks{}
	require.NoError(t, Parse(newSuite(), artifact, "http://localhost/workloads/finance-1/", nil))
	assert.Equal(t, stockArgs{NumStocks: 100, NumSectors: 11}, artifact.args)
}

func TestParseURLThenFlags(t *testing.T) {
	artifact := &stocks{}
	location := "http://localhost/workloads/finance-1/?numStocks=200&numSectors=3"

	require.NoError(t, Parse(newSuite(), artifact, location, []string{"--", "--num-sectors=4"}))
	assert.Equal(t, stockArgs{NumStocks: 200, NumSectors: 4}, artifact.args)
}

func TestParseUnknownFlag(t *testing.T) {
	artifact := &stocks{}
	err := Parse(newSuite(), artifact, "http://localhost/workloads/finance-1/?colour=red", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse arguments for artifact 'finance-1'")
}

func TestParseNoArgs(t *testing.T) {
	artifact := &noArgs{}
	assert.NoError(t, Parse(newSuite(), artifact, "http://localhost/?anything=1", []string{"--x"}))
}

type noArgs struct {
	core.BaseArtifact
}

func (a *noArgs) Name() string { return "plain" }

func (a *noArgs) RegisterTestCases(core.TestRegistrar) error { return nil }
