package hostcli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bgrins/speedometer-artifact-workloads/internal/devops"
	"github.com/bgrins/speedometer-artifact-workloads/internal/host"
)

type DriveCmd struct {
	Catalog    string        `short:"c" help:"Workload catalog" default:"workloads.yaml" type:"existingfile"`
	Iterations int           `short:"n" help:"Number of runs per workload" default:"1"`
	Timeout    time.Duration `short:"t" help:"Time limit for each workload, startup included" default:"5m"`
	Workloads  []string      `arg:"" optional:"" help:"Workloads to drive. All workloads of the catalog when empty."`
}

func (cmd *DriveCmd) Run(h *Host) error {
	if cmd.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1")
	}

	catalog, err := host.LoadCatalog(cmd.Catalog)
	if err != nil {
		return err
	}

	workloads, err := catalog.Select(cmd.Workloads)
	if err != nil {
		return err
	}

	var failed []string
	for _, w := range workloads {
		if err := cmd.drive(h, w); err != nil {
			h.Log.WithError(err).Errorf("Workload '%s' failed", w.Name)
			if h.AzureDevops {
				devops.LogError("Workload '%s' failed: %s", w.Name, err)
			}
			failed = append(failed, w.Name)
		}

		if h.Ctx.Err() != nil {
			return h.Ctx.Err()
		}
	}

	if len(failed) != 0 {
		return fmt.Errorf("%d of %d workloads failed: %s", len(failed), len(workloads), strings.Join(failed, ", "))
	}

	return nil
}

func (cmd *DriveCmd) drive(h *Host, w host.Workload) error {
	if h.AzureDevops {
		group := devops.OpenGroup(fmt.Sprintf("Workload '%s'", w.Name))
		defer group.Close()
	}

	ctx, cancel := context.WithTimeout(h.Ctx, cmd.Timeout)
	defer cancel()

	log := h.Log.WithField("workload", w.Name)
	log.Infof("Starting over %s", w.Transport)

	session, err := host.Open(ctx, w, h.Log)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.WithError(err).Warn("Workload did not shut down cleanly")
		}
	}()

	driver := host.NewDriver(w.Name, session, h.Log)

	names, err := driver.Metadata(ctx)
	if err != nil {
		return err
	}
	log.WithField("tests", names).Infof("Page reports %d tests", len(names))

	results := make([]*host.RunResult, 0, cmd.Iterations)
	for i := 0; i < cmd.Iterations; i++ {
		result, err := driver.Run(ctx)
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	host.PrintRunResults(os.Stdout, w.Name, results)
	return nil
}
