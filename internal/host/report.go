package host

import (
	"fmt"
	"io"
	"time"

	"github.com/bgrins/speedometer-artifact-workloads/internal/reporter"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// PrintRunResults prints the raw per-test times observed for each run of a
// workload. No aggregation is done beyond the per-run total.
func PrintRunResults(w io.Writer, workload string, results []*RunResult) {
	reporter.PrintSeparatorWithTitle(w, fmt.Sprintf("Workload '%s'", workload))

	if len(results) == 0 {
		fmt.Fprintln(w, "  no runs")
		return
	}

	if len(results[0].Tests) == 0 {
		fmt.Fprintf(w, "  %s\n", color.YellowString("no tests reported"))
	}

	for i, result := range results {
		fmt.Fprintf(w, "  iteration %s (%s): %s total\n",
			humanize.Ordinal(i+1),
			result.ID.String(),
			formatDuration(result.Total),
		)
		for _, timing := range result.Timings {
			fmt.Fprintf(w, "    %-40s %s\n", timing.Name, formatDuration(timing.Elapsed))
		}
	}
}

func formatDuration(d time.Duration) string {
	return humanize.SIWithDigits(d.Seconds(), 2, "s")
}
