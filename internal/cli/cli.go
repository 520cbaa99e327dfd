package cli

import (
	"os"

	"github.com/bgrins/speedometer-artifact-workloads/internal/cli/list"
	"github.com/bgrins/speedometer-artifact-workloads/internal/cli/manifest"
	"github.com/bgrins/speedometer-artifact-workloads/internal/cli/run"
	"github.com/bgrins/speedometer-artifact-workloads/internal/cli/serve"
	internalmanifest "github.com/bgrins/speedometer-artifact-workloads/internal/manifest"

	"github.com/alecthomas/kong"
	log "github.com/sirupsen/logrus"
)

type GlobalOpts struct {
	Verbosity   log.Level `short:"v" help:"Set log level" default:"info"`
	AzureDevops bool      `short:"a" help:"Enable Azure DevOps integration" env:"TF_BUILD"`
}

type cli struct {
	Global   GlobalOpts           `embed:""`
	List     list.ListCmd         `cmd:"" help:"List resources"`
	Serve    serve.ServeCmd       `cmd:"" help:"Serve an artifact page to a parent context"`
	Run      run.RunCmd           `cmd:"" help:"Run the tests of an artifact locally"`
	Manifest manifest.ManifestCmd `cmd:"" help:"Write the workload manifest"`
}

func ParseCommandLine(name string) (*kong.Context, GlobalOpts) {
	// Force display help if no arguments are provided
	if len(os.Args) < 2 {
		os.Args = append(os.Args, "--help")
	}

	cli := cli{}
	ctx := kong.Parse(&cli,
		kong.Name(name),
		kong.Vars{"default_base_url": internalmanifest.DefaultBaseURL},
	)
	return ctx, cli.Global
}
