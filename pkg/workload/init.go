// Package workload is the entry point for programs that host artifact
// workloads: they create a suite, add their artifacts and run it.
//
//	func main() {
//		s := workload.CreateSuite("artifact-workloads")
//		s.AddArtifact(&finance.Artifact{})
//		s.Run()
//	}
package workload

import (
	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/core"
	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/suite"
)

type Artifact = core.Artifact
type BaseArtifact = core.BaseArtifact
type LoadContext = core.LoadContext

type TestRegistrar = core.TestRegistrar
type TestCase = core.TestCase
type TestAction = core.TestAction

type LoggerProvider = core.LoggerProvider

// Creates a new suite with the given name.
func CreateSuite(name string) *suite.WorkloadSuite {
	return suite.CreateSuite(name)
}
