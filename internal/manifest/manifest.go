// Package manifest produces the list of workload URLs a benchmark host loads,
// and maps workload URLs back to artifact names and tuning arguments.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"sort"
	"strings"
)

// DefaultBaseURL is where the static workload pages are published.
const DefaultBaseURL = "https://speedometer-artifact-workloads.pages.dev"

type Entry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Build returns one entry per workload, sorted by name, each pointing at
// <base>/workloads/<name>/.
func Build(baseURL string, names []string) ([]Entry, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL '%s': %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL '%s': must be absolute", baseURL)
	}

	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	entries := make([]Entry, 0, len(sorted))
	for _, name := range sorted {
		u := *base
		u.Path = path.Join("/", base.Path, "workloads", name) + "/"
		entries = append(entries, Entry{Name: name, URL: u.String()})
	}

	return entries, nil
}

// Write encodes the entries as indented JSON.
func Write(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}

// WriteFile writes the manifest to path, replacing any existing file.
func WriteFile(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}

	if err := Write(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return f.Close()
}

// NameFromURL returns the workload name a page URL points at, the last
// non-empty path segment: https://host/workloads/edu-1/ is "edu-1".
func NameFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid workload URL '%s': %w", rawURL, err)
	}

	name := path.Base(strings.TrimSuffix(u.Path, "/"))
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("workload URL '%s' has no workload name", rawURL)
	}

	return name, nil
}

// ArgsFromURL converts the query string of a page URL into long command line
// flags, so ?numStocks=200 becomes --num-stocks=200. Flags are sorted by key
// for a stable order.
func ArgsFromURL(rawURL string) ([]string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid workload URL '%s': %w", rawURL, err)
	}

	query := u.Query()
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	args := make([]string, 0, len(keys))
	for _, key := range keys {
		for _, value := range query[key] {
			args = append(args, fmt.Sprintf("--%s=%s", kebabCase(key), value))
		}
	}

	return args, nil
}

func kebabCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		if r == '_' {
			b.WriteByte('-')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
