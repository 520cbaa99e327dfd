package reporter

import (
	"fmt"
	"strings"

	"github.com/bgrins/speedometer-artifact-workloads/internal/testmgr"
)

type TestSummary struct {
	total   int
	passed  int
	failed  int
	errored int
}

func newSummaryFromTestManager(tm *testmgr.TestManager) TestSummary {
	var summary TestSummary

	for _, testCase := range tm.TestCases() {
		summary.total++
		switch testCase.Status() {
		case testmgr.TestCaseStatusPassed:
			summary.passed++
		case testmgr.TestCaseStatusFailed:
			summary.failed++
		case testmgr.TestCaseStatusError:
			summary.errored++
		default:
			panic("Invalid test case status")
		}
	}

	return summary
}

// Status is the worst status among the summarized test cases: an error wins
// over a failure, and a run with no test cases passes.
func (s TestSummary) Status() testmgr.TestCaseStatus {
	if s.errored > 0 {
		return testmgr.TestCaseStatusError
	}
	if s.failed > 0 {
		return testmgr.TestCaseStatusFailed
	}
	return testmgr.TestCaseStatusPassed
}

func (s TestSummary) Summary() string {
	var out []string

	if s.failed > 0 {
		out = append(out, fmt.Sprintf("failed: %d", s.failed))
	}

	if s.errored > 0 {
		out = append(out, fmt.Sprintf("errored: %d", s.errored))
	}

	out = append(out, fmt.Sprintf("passed: %d", s.passed))
	out = append(out, fmt.Sprintf("total: %d", s.total))

	return strings.Join(out, "; ")
}
