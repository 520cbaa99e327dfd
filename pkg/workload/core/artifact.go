package core

type Artifact interface {
	Argumented
	TestRegistrant

	// Short human readable description shown when listing artifacts.
	Description() string

	// Load builds the artifact's initial state from its parsed arguments. It
	// is called once per page before RegisterTestCases.
	Load(LoadContext) error
}

type LoadContext interface {
	LoggerProvider
	Named
}

// BaseArtifact is a partial implementation of the Artifact interface. It is
// meant to be used for composition when not all methods of the Artifact
// interface are needed. It does NOT provide a default implementation for the
// Name() and RegisterTestCases() methods.
type BaseArtifact struct{}

func (a BaseArtifact) Args() any {
	return nil
}

func (a BaseArtifact) Description() string {
	return ""
}

func (a BaseArtifact) Load(LoadContext) error {
	return nil
}
