// Package hostcli is the command line of the host side: it starts workload
// pages from a catalog and drives them through their tests.
package hostcli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bgrins/speedometer-artifact-workloads/internal/devops"

	"github.com/alecthomas/kong"
	log "github.com/sirupsen/logrus"
)

type GlobalOpts struct {
	Verbosity   log.Level `short:"v" help:"Set log level" default:"info"`
	AzureDevops bool      `short:"a" help:"Enable Azure DevOps integration" env:"TF_BUILD"`
}

type cli struct {
	Global GlobalOpts `embed:""`
	Drive  DriveCmd   `cmd:"" help:"Drive workloads through their tests"`
	List   ListCmd    `cmd:"" help:"List the workloads of a catalog"`
}

// Host is what every command runs with.
type Host struct {
	Log         *log.Logger
	Ctx         context.Context
	AzureDevops bool
}

func Main(name string) {
	// Force display help if no arguments are provided
	if len(os.Args) < 2 {
		os.Args = append(os.Args, "--help")
	}

	cli := cli{}
	kctx := kong.Parse(&cli, kong.Name(name))

	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(cli.Global.Verbosity)
	logger.SetFormatter(&log.TextFormatter{
		ForceColors: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := &Host{
		Log:         logger,
		Ctx:         ctx,
		AzureDevops: cli.Global.AzureDevops,
	}

	err := kctx.Run(host)
	if err == nil {
		return
	}

	if host.AzureDevops {
		devops.LogError("%s failed: %s", name, err)
	}

	stop()
	logger.WithError(err).Fatalf("%s failed", name)
}
