// Package args parses an artifact's tuning arguments, from the page URL
// query and from the command line.
package args

import (
	"fmt"

	"github.com/bgrins/speedometer-artifact-workloads/internal/manifest"
	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/core"

	"github.com/alecthomas/kong"
)

// Location returns the page location for the artifact: rawURL when set, or
// the artifact's entry under the default manifest base URL.
func Location(rawURL string, name string) (string, error) {
	if rawURL != "" {
		return rawURL, nil
	}

	entries, err := manifest.Build(manifest.DefaultBaseURL, []string{name})
	if err != nil {
		return "", err
	}

	return entries[0].URL, nil
}

// Parse parses the query of location followed by argList into the
// artifact's arguments, so that explicit flags win over the URL.
func Parse(suite core.SuiteContext, artifact core.Artifact, location string, argList []string) error {
	if artifact.Args() == nil {
		return nil
	}

	parser, err := kong.New(
		artifact.Args(),
		kong.Name(artifact.Name()),
		kong.Description(fmt.Sprintf("Arguments for artifact '%s' in the '%s' suite.", artifact.Name(), suite.Name())),
		kong.ConfigureHelp(kong.HelpOptions{NoAppSummary: true}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser for artifact '%s': %w", artifact.Name(), err)
	}

	urlArgs, err := manifest.ArgsFromURL(location)
	if err != nil {
		return err
	}

	// If the first argument is '--', we skip it
	if len(argList) != 0 && argList[0] == "--" {
		argList = argList[1:]
	}

	actualArgs := append(urlArgs, argList...)

	suite.Logger().Debugf("Parsing arguments for artifact '%s': %v", artifact.Name(), actualArgs)
	if _, err = parser.Parse(actualArgs); err != nil {
		return fmt.Errorf("failed to parse arguments for artifact '%s': %w", artifact.Name(), err)
	}

	return nil
}
