package manifest

import (
	"os"

	"github.com/bgrins/speedometer-artifact-workloads/internal/manifest"
	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/core"
)

type ManifestCmd struct {
	BaseURL string `short:"b" name:"base-url" help:"URL the workload pages are deployed under" default:"${default_base_url}"`
	Output  string `short:"o" help:"Write the manifest to this file instead of stdout" type:"path"`
}

func (cmd *ManifestCmd) Run(suite core.SuiteContext) error {
	log := suite.Logger()

	names := make([]string, 0, len(suite.Artifacts()))
	for _, artifact := range suite.Artifacts() {
		names = append(names, artifact.Name())
	}

	entries, err := manifest.Build(cmd.BaseURL, names)
	if err != nil {
		return err
	}

	if cmd.Output == "" {
		return manifest.Write(os.Stdout, entries)
	}

	log.Infof("Writing %d workloads to '%s'", len(entries), cmd.Output)
	return manifest.WriteFile(cmd.Output, entries)
}
