package serve

import (
	"context"
	"errors"
	"fmt"

	"github.com/bgrins/speedometer-artifact-workloads/internal/adapter"
	"github.com/bgrins/speedometer-artifact-workloads/internal/cli/args"
	"github.com/bgrins/speedometer-artifact-workloads/internal/manifest"
	"github.com/bgrins/speedometer-artifact-workloads/internal/page"
	"github.com/bgrins/speedometer-artifact-workloads/internal/transport"
	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/core"
)

type ServeCmd struct {
	Parent       string   `short:"p" help:"Parent context to attach to: 'stdio' or a ws:// URL. Empty serves the page standalone." env:"ARTIFACT_WORKLOAD_PARENT"`
	URL          string   `short:"u" name:"url" help:"Location of the page. Its query string is parsed as artifact arguments."`
	Artifact     string   `arg:"" name:"artifact" help:"Name of the artifact to serve. Defaults to the last path segment of --url." optional:""`
	ArtifactArgs []string `arg:"" passthrough:"all" help:"Arguments to pass to the artifact, you may use '--' to force passthrough." optional:""`
}

func (cmd *ServeCmd) Run(suite core.SuiteContext) error {
	log := suite.Logger()
	ctx := suite.Context()

	name, err := cmd.artifactName()
	if err != nil {
		return err
	}
	artifact := suite.Artifact(name)

	location, err := args.Location(cmd.URL, artifact.Name())
	if err != nil {
		return err
	}

	if err := args.Parse(suite, artifact, location, cmd.ArtifactArgs); err != nil {
		return err
	}

	conn, err := transport.Open(ctx, cmd.Parent)
	if err != nil {
		return fmt.Errorf("failed to attach to parent: %w", err)
	}

	// A nil Conn must stay a nil Poster so the page knows it has no parent.
	var parent adapter.Poster
	if conn != nil {
		defer conn.Close()
		parent = conn
	}

	window := page.NewWindow(artifact, location, parent, log)
	window.ContentLoaded()

	if conn == nil {
		log.Infof("Serving '%s' at %s without a parent", artifact.Name(), location)
	} else {
		log.Infof("Serving '%s' at %s to parent '%s'", artifact.Name(), location, cmd.Parent)
		go listen(ctx, conn, window)
	}

	err = window.Loop().Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Debug("Interrupted")
		return nil
	}

	return err
}

// artifactName is the artifact argument, or the workload a page URL points
// at: https://host/workloads/edu-1/ serves edu-1.
func (cmd *ServeCmd) artifactName() (string, error) {
	if cmd.Artifact != "" {
		return cmd.Artifact, nil
	}
	if cmd.URL == "" {
		return "", fmt.Errorf("an artifact name or --url is required")
	}

	return manifest.NameFromURL(cmd.URL)
}

// listen feeds the parent's messages to the page and closes the page once
// the parent goes away, after the messages already queued.
func listen(ctx context.Context, conn transport.Conn, window *page.Window) {
	log := window.Logger()

	err := conn.Listen(ctx, func(data []byte) {
		window.Dispatch(data)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("Lost connection to parent")
	} else {
		log.Debug("Parent disconnected")
	}

	loop := window.Loop()
	loop.Post(loop.Close)
}
