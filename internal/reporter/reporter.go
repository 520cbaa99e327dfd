// Package reporter prints the outcome of a standalone run of a workload
// page's test registry.
package reporter

import (
	"fmt"
	"io"

	"github.com/bgrins/speedometer-artifact-workloads/internal/testmgr"
)

type TestReporter struct {
	testManager *testmgr.TestManager
	summary     TestSummary
}

func NewTestReporter(tm *testmgr.TestManager) *TestReporter {
	return &TestReporter{
		testManager: tm,
		summary:     newSummaryFromTestManager(tm),
	}
}

func (r *TestReporter) Summary() TestSummary {
	return r.summary
}

func (r *TestReporter) PrintReport(w io.Writer) {
	PrintSeparatorWithTitle(w, fmt.Sprintf("Workload '%s'", r.testManager.Name()))

	for _, testCase := range r.testManager.TestCases() {
		fmt.Fprintf(w, "  %-40s %s (%s)\n", testCase.Name(), testCase.Status().ColorString(), testCase.RunTime())
	}

	for _, testCase := range r.testManager.TestCases() {
		if testCase.Status().Passed() {
			continue
		}

		PrintSeparator(w)
		fmt.Fprintf(w, "Test case: '%s' status: %s; collected logs:\n", testCase.Name(), testCase.Status().String())
		for _, line := range testCase.LogLines() {
			for _, wrapped := range simpleWordWrap(line, TermWidth()-6) {
				fmt.Fprintln(w, "    ", wrapped)
			}
		}
	}

	PrintSeparator(w)
	fmt.Fprintf(w, "TEST RESULT: %s. %s\n", r.summary.Status().ColorString(), r.summary.Summary())
}

// ExitError returns an error when any test case did not pass.
func (r *TestReporter) ExitError() error {
	if r.summary.Status().IsBad() {
		return fmt.Errorf("workload '%s' finished with %d failed and %d errored test cases",
			r.testManager.Name(), r.summary.failed, r.summary.errored)
	}

	return nil
}
