package suite

import (
	"os"

	"github.com/bgrins/speedometer-artifact-workloads/internal/devops"
)

// Exit the program and report the exit status
func (s *WorkloadSuite) reportExitStatus(err error) {
	if err == nil {
		s.Log.Debugf("Suite '%s' completed", s.name)
		os.Exit(0)
	}

	if s.azureDevops {
		devops.LogError("Suite '%s' failed: %s", s.name, err)
	}

	s.Log.WithError(err).Fatalf("Suite '%s' failed", s.name)
}
