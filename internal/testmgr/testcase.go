package testmgr

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

type TestCase struct {
	name      string
	index     uint
	parent    *TestManager
	startTime time.Time
	endTime   time.Time
	status    TestCaseStatus
	err       error
	log       *logrus.Logger
	logBuffer bytes.Buffer
}

// Implementer of logrus.Hook interface to tee log messages from the test case
// logger to the page logger
type testCaseLogTee struct {
	pageLogger *logrus.Logger
	testCaseId string
}

func (tee testCaseLogTee) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (tee testCaseLogTee) Fire(entry *logrus.Entry) error {
	// Make a shallow copy so that we can modify the logger pointer
	newEntry := tee.pageLogger.WithFields(entry.Data)
	newEntry.Caller = entry.Caller
	newEntry.Log(entry.Level, fmt.Sprintf("[%s] > %s", tee.testCaseId, entry.Message))
	return nil
}

func newTestCase(name string, index uint, parent *TestManager) *TestCase {
	tc := &TestCase{
		name:      name,
		index:     index,
		parent:    parent,
		startTime: time.Now(),
		status:    TestCaseStatusRunning,
		log:       logrus.New(),
	}

	tc.log.SetLevel(logrus.TraceLevel)
	tc.log.SetOutput(&tc.logBuffer)
	tc.log.SetFormatter(&logrus.TextFormatter{
		ForceColors:      true,
		DisableTimestamp: false,
	})
	tc.log.AddHook(testCaseLogTee{
		pageLogger: parent.page.Logger(),
		testCaseId: tc.id(),
	})

	return tc
}

func (tc *TestCase) Status() TestCaseStatus {
	return tc.status
}

func (tc *TestCase) id() string {
	return fmt.Sprintf("%04d:%s", tc.index, tc.name)
}

func (tc *TestCase) isRunning() bool {
	return tc.status == TestCaseStatusRunning
}

func (tc *TestCase) Name() string {
	return tc.name
}

func (tc *TestCase) Index() uint {
	return tc.index
}

// Err returns the error the test case was closed with, if any.
func (tc *TestCase) Err() error {
	return tc.err
}

func (tc *TestCase) LogLines() []string {
	rawLines := bytes.Split(bytes.TrimRight(tc.logBuffer.Bytes(), "\n"), []byte("\n"))
	lines := make([]string, len(rawLines))
	for i, line := range rawLines {
		lines[i] = string(line)
	}

	return lines
}

func (tc *TestCase) Logger() *logrus.Logger {
	return tc.log
}

func (tc *TestCase) close(status TestCaseStatus, err error) {
	if tc.status != TestCaseStatusRunning {
		tc.parent.page.
			Logger().
			Warnf(
				"Attempted to close test case '%s' with status '%s', but it was already closed with status '%s'. Ignoring.",
				tc.name,
				status.String(),
				tc.status.String(),
			)
		return
	}

	if status == TestCaseStatusRunning {
		panic("cannot close test case with status running")
	}

	tc.status = status
	tc.err = err
	tc.endTime = time.Now()

	// Record the status in the test case log only; the page logger gets a
	// single line below.
	tc.log.ReplaceHooks(make(logrus.LevelHooks))
	localEntry := logrus.NewEntry(tc.log)
	if err != nil {
		localEntry = localEntry.WithError(err)
	}
	localEntry.Log(tc.status.logLevel(), tc.status.String())

	tc.log.Out = io.Discard

	entry := tc.parent.page.Logger().
		WithField("testCase", tc.name).
		WithField("status", tc.status.String()).
		WithField("runTime", tc.RunTime())
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Logf(tc.status.logLevel(), "%s: %s", tc.Name(), tc.status.String())
}

func (tc *TestCase) Pass() {
	tc.close(TestCaseStatusPassed, nil)
}

// MarkFailed closes the test case with an error returned by its action.
func (tc *TestCase) MarkFailed(err error) {
	tc.close(TestCaseStatusFailed, err)
}

// MarkError closes the test case with an error that did not come from a
// regular return, such as a recovered panic.
func (tc *TestCase) MarkError(err error) {
	tc.close(TestCaseStatusError, err)
}

func (tc *TestCase) RunTime() time.Duration {
	if tc.status == TestCaseStatusRunning {
		return time.Since(tc.startTime)
	}

	return tc.endTime.Sub(tc.startTime)
}
