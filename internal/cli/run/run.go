package run

import (
	"fmt"
	"os"
	"slices"

	"github.com/bgrins/speedometer-artifact-workloads/internal/cli/args"
	"github.com/bgrins/speedometer-artifact-workloads/internal/page"
	"github.com/bgrins/speedometer-artifact-workloads/internal/protocol"
	"github.com/bgrins/speedometer-artifact-workloads/internal/reporter"
	"github.com/bgrins/speedometer-artifact-workloads/internal/testmgr"
	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/core"
	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/utils"
)

type RunCmd struct {
	Tests        []string `short:"t" name:"test" help:"Only run the named tests. May be repeated."`
	URL          string   `short:"u" name:"url" help:"Location of the page. Its query string is parsed as artifact arguments."`
	Artifact     string   `arg:"" name:"artifact" help:"Name of the artifact to run"`
	ArtifactArgs []string `arg:"" passthrough:"all" help:"Arguments to pass to the artifact, you may use '--' to force passthrough." optional:""`
}

func (cmd *RunCmd) Run(suite core.SuiteContext) error {
	log := suite.Logger()
	log.Infof("Running artifact '%s'", cmd.Artifact)

	artifact := suite.Artifact(cmd.Artifact)

	location, err := args.Location(cmd.URL, artifact.Name())
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

	if err := selectTests(window.Tests(), cmd.Tests); err != nil {
		return err
	}

	var result error
	window.Handler().OnRunComplete = func(tm *testmgr.TestManager) {
		rep := reporter.NewTestReporter(tm)
		rep.PrintReport(os.Stdout)
		result = rep.ExitError()
	}

	window.Handler().Handle(protocol.RunRequest{})

	return result
}

// selectTests narrows the registry down to the named tests, keeping their
// registration order.
func selectTests(registry *core.Registry, names []string) error {
	if len(names) == 0 {
		return nil
	}

	tests, _ := registry.Tests()
	filter := utils.NewStringFilterFromSlice(names)

	missing := filter.Missing(core.TestNames(tests))
	if len(missing) != 0 {
		slices.Sort(missing)
		return fmt.Errorf("unknown tests: %v", missing)
	}

	selected := make([]core.TestCase, 0, len(names))
	for _, test := range tests {
		if filter.Match(test.Name) {
			selected = append(selected, test)
		}
	}

	registry.Set(selected)
	return nil
}
