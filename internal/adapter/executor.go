package adapter

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/bgrins/speedometer-artifact-workloads/internal/testmgr"
	"github.com/bgrins/speedometer-artifact-workloads/internal/workloaderror"
	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/core"
)

// Executor runs a page's test cases one at a time, in registry order.
type Executor struct {
	page interface {
		core.Named
		core.LoggerProvider
	}
}

func NewExecutor(page interface {
	core.Named
	core.LoggerProvider
}) *Executor {
	return &Executor{page: page}
}

// Execute invokes every action exactly once, in order, and calls finished
// with the name of each test right after its action returns, whether it
// succeeded or not. A failing action never stops the sequence. The returned
// manager holds the per-test results.
func (e *Executor) Execute(tests []core.TestCase, finished func(name string)) *testmgr.TestManager {
	testMgr := testmgr.NewTestManager(e.page)

	for _, test := range tests {
		testCase := testMgr.NewTestCase(test.Name)
		testCase.Logger().Debugf("Running test %s", test.Name)

		// Closing the test case logs its status, with the error of a failed
		// action, on the page logger.
		executeTestCase(testCase, test.Action)

		if finished != nil {
			finished(test.Name)
		}
	}

	testMgr.Close(nil)
	return testMgr
}

func executeTestCase(testCase *testmgr.TestCase, action core.TestAction) {
	var err error
	var wg sync.WaitGroup
	exited := true

	// Run the action in a separate goroutine so that a runtime.Goexit() inside
	// it cannot stop the page loop. The loop blocks until it returns, so the
	// action still runs on the caller's turn.
	wg.Add(1)
	go func() {
		defer wg.Done()
		err = runCatchPanic(action)
		exited = false
	}()

	wg.Wait()

	switch {
	case exited:
		testCase.MarkError(fmt.Errorf("test action exited without returning"))
	case err == nil:
		testCase.Pass()
	case isPanic(err):
		testCase.MarkError(err)
	default:
		testCase.MarkFailed(err)
	}
}

func isPanic(err error) bool {
	_, ok := err.(workloaderror.PanicError)
	return ok
}

func runCatchPanic(f core.TestAction) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = workloaderror.NewPanicError(r, debug.Stack())
		}
	}()

	if f == nil {
		return fmt.Errorf("test case has no action")
	}

	return f()
}
