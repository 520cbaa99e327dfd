package host

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

type TransportKind string

const (
	TransportStdio     TransportKind = "stdio"
	TransportWebsocket TransportKind = "websocket"
)

// Workload describes how to start one workload page.
type Workload struct {
	Name      string        `yaml:"name"`
	Command   []string      `yaml:"command"`
	Transport TransportKind `yaml:"transport,omitempty"`
}

// Catalog is the list of workloads a host can drive, usually read from a
// workloads.yaml file:
//
//	workloads:
//	  - name: edu-1
//	    command: [artifact-workloads, serve, edu-1]
//	  - name: finance-1
//	    command: [artifact-workloads, serve, finance-1, --, --num-stocks=200]
//	    transport: websocket
type Catalog struct {
	Workloads []Workload `yaml:"workloads"`
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse workload catalog: %w", err)
	}

	seen := make(map[string]bool)
	for i := range catalog.Workloads {
		w := &catalog.Workloads[i]
		if w.Name == "" {
			return nil, fmt.Errorf("workload #%d has no name", i)
		}
		if seen[w.Name] {
			return nil, fmt.Errorf("workload '%s' is listed more than once", w.Name)
		}
		seen[w.Name] = true

		if len(w.Command) == 0 {
			return nil, fmt.Errorf("workload '%s' has no command", w.Name)
		}

		switch w.Transport {
		case "":
			w.Transport = TransportStdio
		case TransportStdio, TransportWebsocket:
		default:
			return nil, fmt.Errorf("workload '%s' has unknown transport '%s'", w.Name, w.Transport)
		}
	}

	return &catalog, nil
}

func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workload catalog: %w", err)
	}

	return ParseCatalog(data)
}

// Select returns the named workloads in catalog order, or all of them when
// names is empty.
func (c *Catalog) Select(names []string) ([]Workload, error) {
	if len(names) == 0 {
		return c.Workloads, nil
	}

	for _, name := range names {
		if !slices.ContainsFunc(c.Workloads, func(w Workload) bool { return w.Name == name }) {
			return nil, fmt.Errorf("workload '%s' not found in catalog", name)
		}
	}

	selected := make([]Workload, 0, len(names))
	for _, w := range c.Workloads {
		if slices.Contains(names, w.Name) {
			selected = append(selected, w)
		}
	}

	return selected, nil
}
