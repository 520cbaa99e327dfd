package list

import (
	"fmt"

	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/core"
)

type ListArtifactsCmd struct {
	Long bool `short:"l" help:"Show descriptions"`
}

func (cmd *ListArtifactsCmd) Run(suite core.SuiteContext) error {
	log := suite.Logger()
	log.Info("Listing artifacts")

	for _, artifact := range suite.Artifacts() {
		if cmd.Long && artifact.Description() != "" {
			fmt.Printf("%-16s %s\n", artifact.Name(), artifact.Description())
		} else {
			fmt.Println(artifact.Name())
		}
	}

	return nil
}
