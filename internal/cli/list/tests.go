package list

import (
	"fmt"

	"github.com/bgrins/speedometer-artifact-workloads/internal/cli/args"
	"github.com/bgrins/speedometer-artifact-workloads/internal/page"
	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/core"
)

type ListTestsCmd struct {
	Artifact     string   `arg:"" name:"artifact" help:"Name of the artifact"`
	ArtifactArgs []string `arg:"" passthrough:"all" help:"Arguments to pass to the artifact, you may use '--' to force passthrough." optional:""`
}

func (cmd *ListTestsCmd) Run(suite core.SuiteContext) error {
	log := suite.Logger()
	log.Infof("Listing tests of '%s'", cmd.Artifact)

	artifact := suite.Artifact(cmd.Artifact)

	location, err := args.Location("", artifact.Name())
	if err != nil {
		return err
	}

	if err := args.Parse(suite, artifact, location, cmd.ArtifactArgs); err != nil {
		return err
	}

	window := page.NewWindow(artifact, location, nil, log)
	if err := window.Load(); err != nil {
		return err
	}

	for _, name := range window.Tests().Names() {
		fmt.Println(name)
	}

	return nil
}
