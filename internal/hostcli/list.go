package hostcli

import (
	"fmt"
	"strings"

	"github.com/bgrins/speedometer-artifact-workloads/internal/host"
)

type ListCmd struct {
	Catalog string `short:"c" help:"Workload catalog" default:"workloads.yaml" type:"existingfile"`
}

func (cmd *ListCmd) Run(h *Host) error {
	catalog, err := host.LoadCatalog(cmd.Catalog)
	if err != nil {
		return err
	}

	for _, w := range catalog.Workloads {
		fmt.Printf("%-16s %-10s %s\n", w.Name, w.Transport, strings.Join(w.Command, " "))
	}

	return nil
}
