package suite

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/bgrins/speedometer-artifact-workloads/internal/cli"
	"github.com/bgrins/speedometer-artifact-workloads/internal/devops"
	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/core"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
)

type WorkloadSuite struct {
	name        string
	artifacts   []core.Artifact
	kctx        *kong.Context
	ctx         context.Context
	stop        context.CancelFunc
	azureDevops bool
	Log         *logrus.Logger
}

func CreateSuite(name string) *WorkloadSuite {
	kctx, global := cli.ParseCommandLine(name)
	return newSuite(name, kctx, global)
}

func newSuite(name string, kctx *kong.Context, global cli.GlobalOpts) *WorkloadSuite {
	logger := logrus.New()
	// stdout may carry the page's messages to its parent.
	logger.SetOutput(os.Stderr)
	logger.SetLevel(global.Verbosity)
	logger.SetFormatter(&logrus.TextFormatter{
		ForceColors: true,
	})
	devops.SetOutput(os.Stderr)

	logger.Debugf("Creating suite '%s'", name)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	return &WorkloadSuite{
		name:        name,
		artifacts:   make([]core.Artifact, 0),
		kctx:        kctx,
		ctx:         ctx,
		stop:        stop,
		azureDevops: global.AzureDevops,
		Log:         logger,
	}
}

// Run the suite
func (s *WorkloadSuite) Run() {
	if s.kctx == nil {
		s.Log.Fatalf("Suite '%s' not initialized", s.name)
	}
	defer s.stop()

	s.Log.Debugf("Running suite '%s' - %d artifacts collected.", s.name, len(s.artifacts))
	s.kctx.BindTo(s, (*core.SuiteContext)(nil))
	err := s.kctx.Run()
	s.reportExitStatus(err)
}

// Adds an artifact to the suite
func (s *WorkloadSuite) AddArtifact(artifact core.Artifact) {
	if err := core.ValidateEntityName(artifact.Name(), "artifact"); err != nil {
		s.Log.Fatal(err)
	}

	if slices.ContainsFunc(s.artifacts, func(a core.Artifact) bool {
		return a.Name() == artifact.Name()
	}) {
		s.Log.Fatalf("Artifact '%s' already exists", artifact.Name())
	}

	s.Log.Tracef("Registering artifact '%s'", artifact.Name())
	s.artifacts = append(s.artifacts, artifact)
}

// Returns the name of the suite
func (s *WorkloadSuite) Name() string {
	return s.name
}

// Returns a list of all artifacts
func (s *WorkloadSuite) Artifacts() []core.Artifact {
	return s.artifacts
}

// Returns an artifact by name, will exit with an error if the artifact is not
// found.
func (s *WorkloadSuite) Artifact(name string) core.Artifact {
	artifact, err := s.lookupArtifact(name)
	if err != nil {
		s.Log.Fatal(err)
	}

	return artifact
}

func (s *WorkloadSuite) lookupArtifact(name string) (core.Artifact, error) {
	for _, artifact := range s.artifacts {
		if artifact.Name() == name {
			return artifact, nil
		}
	}

	return nil, fmt.Errorf("artifact '%s' not found", name)
}

func (s *WorkloadSuite) Logger() *logrus.Logger {
	return s.Log
}

func (s *WorkloadSuite) AzureDevops() bool {
	return s.azureDevops
}

func (s *WorkloadSuite) Context() context.Context {
	return s.ctx
}
