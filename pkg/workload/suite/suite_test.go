package suite

import (
	"testing"

	"github.com/bgrins/speedometer-artifact-workloads/internal/cli"
	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/core"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedArtifact struct {
	core.BaseArtifact
	name string
}

func (a *namedArtifact) Name() string { return a.name }

func (a *namedArtifact) RegisterTestCases(core.TestRegistrar) error { return nil }

func TestSuiteArtifacts(t *testing.T) {
	s := newSuite("artifacts", nil, cli.GlobalOpts{Verbosity: logrus.WarnLevel, AzureDevops: true})
	defer s.stop()

	s.AddArtifact(&namedArtifact{name: "edu-1"})
	s.AddArtifact(&namedArtifact{name: "wiki-1"})

	assert.Equal(t, "artifacts", s.Name())
	assert.True(t, s.AzureDevops())
	assert.Equal(t, logrus.WarnLevel, s.Logger().GetLevel())
	assert.Len(t, s.Artifacts(), 2)
	assert.Equal(t, "wiki-1", s.Artifact("wiki-1").Name())
	assert.NoError(t, s.Context().Err())

	_, err := s.lookupArtifact("video-2")
	require.Error(t, err)
	assert.Equal(t, "artifact 'video-2' not found", err.Error())
}
