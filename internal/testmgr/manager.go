package testmgr

import (
	"time"

	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/core"
)

// TestManager keeps the result records of one run of a page's test registry.
type TestManager struct {
	page      core.LoggerProvider
	name      string
	startTime time.Time
	endTime   time.Time
	testCases []*TestCase
}

func NewTestManager(page interface {
	core.Named
	core.LoggerProvider
}) *TestManager {
	return &TestManager{
		page:      page,
		name:      page.Name(),
		startTime: time.Now(),
		testCases: make([]*TestCase, 0),
	}
}

// NewTestCase creates a record for the next test case in the run and marks
// it running.
func (m *TestManager) NewTestCase(name string) *TestCase {
	tc := newTestCase(name, uint(len(m.testCases)), m)
	m.testCases = append(m.testCases, tc)
	return tc
}

// Close marks the end of the run. Any test case still running at this point
// was never completed and is closed with the given error, or passed when err
// is nil.
func (m *TestManager) Close(err error) {
	m.endTime = time.Now()
	m.page.Logger().Debug("Closing test manager")
	if len(m.testCases) == 0 {
		return
	}

	lastTestCase := m.testCases[len(m.testCases)-1]
	if lastTestCase.isRunning() {
		if err != nil {
			lastTestCase.MarkError(err)
		} else {
			lastTestCase.Pass()
		}
	}
}

func (m *TestManager) TestCases() []*TestCase {
	return m.testCases
}

// Name returns the name of the page the run belongs to.
func (m *TestManager) Name() string {
	return m.name
}

func (m *TestManager) RunTime() time.Duration {
	if m.endTime.IsZero() {
		return time.Since(m.startTime)
	}

	return m.endTime.Sub(m.startTime)
}
