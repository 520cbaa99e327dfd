package core

import "context"

type SuiteContext interface {
	Named

	LoggerProvider

	// Returns a list of all artifacts
	Artifacts() []Artifact

	// Returns an artifact by name, will exit with an error if the artifact is
	// not found.
	Artifact(name string) Artifact

	// Returns whether the suite has Azure DevOps integration enabled
	AzureDevops() bool

	// Returns a context for the suite, cancelled on interrupt.
	Context() context.Context
}
