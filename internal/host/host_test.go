package host

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bgrins/speedometer-artifact-workloads/internal/adapter"
	"github.com/bgrins/speedometer-artifact-workloads/internal/protocol"
	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/core"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSession replies to every control message with a fixed list of
// reports.
type scriptedSession struct {
	replies map[string][]protocol.Report
	reports chan Received
	sent    []protocol.Control
}

func newScriptedSession(replies map[string][]protocol.Report) *scriptedSession {
	return &scriptedSession{replies: replies, reports: make(chan Received, 64)}
}

func (s *scriptedSession) Send(c protocol.Control) error {
	s.sent = append(s.sent, c)
	for _, r := range s.replies[c.Type()] {
		s.reports <- Received{Report: r, At: time.Now()}
	}
	return nil
}

func (s *scriptedSession) Reports() <-chan Received { return s.reports }

func (s *scriptedSession) Close() error {
	close(s.reports)
	return nil
}

// adapterSession connects the driver straight to an in-process adapter.
type adapterSession struct {
	handler *adapter.Handler
	reports chan Received
}

type testPage struct {
	log *logrus.Logger
}

func (p *testPage) Name() string { return "in-process" }
func (p *testPage) Logger() *logrus.Logger { return p.log }

func (s *adapterSession) PostMessage(r protocol.Report) error {
	s.reports <- Received{Report: r, At: time.Now()}
	return nil
}

func (s *adapterSession) Send(c protocol.Control) error {
	data, err := protocol.EncodeControl(c)
	if err != nil {
		return err
	}
	s.handler.HandleMessage(data)
	return nil
}

func (s *adapterSession) Reports() <-chan Received { return s.reports }
func (s *adapterSession) Close() error { return nil }

func newAdapterSession(tests ...core.TestCase) *adapterSession {
	log, _ := logtest.NewNullLogger()
	registry := core.NewRegistry()
	registry.Set(tests)
	s := &adapterSession{reports: make(chan Received, 64)}
	s.handler = adapter.NewHandler(&testPage{log: log}, "test://in-process/", registry, adapter.NewReporter(s, log))
	return s
}

func testLogger() *logrus.Logger {
	log, _ := logtest.NewNullLogger()
	return log
}

func TestDriverAgainstAdapter(t *testing.T) {
	session := newAdapterSession(
		core.TestCase{Name: "A", Action: func() error { time.Sleep(time.Millisecond); return nil }},
		core.TestCase{Name: "B", Action: func() error { return errors.New("boom") }},
	)
	driver := NewDriver("in-process", session, testLogger())
	ctx := context.Background()

	names, err := driver.Metadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names)

	result, err := driver.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, result.Tests)
	require.Len(t, result.Timings, 2)
	assert.Equal(t, "A", result.Timings[0].Name)
	assert.GreaterOrEqual(t, result.Timings[0].Elapsed, time.Millisecond)
	assert.Equal(t, "B", result.Timings[1].Name)
	assert.Positive(t, result.Total)
}

func TestDriverProtocolViolations(t *testing.T) {
	tests := []struct {
		name    string
		replies []protocol.Report
		reason  string
	}{
		{
			name:    "done first",
			replies: []protocol.Report{protocol.DoneReport{}},
			reason:  "expected 'tests' report first, got 'done'",
		},
		{
			name: "out of order",
			replies: []protocol.Report{
				protocol.TestsReport{Names: []string{"A", "B"}},
				protocol.TestReport{Name: "B"},
			},
			reason: "expected report for 'A', got 'B'",
		},
		{
			name: "missing test",
			replies: []protocol.Report{
				protocol.TestsReport{Names: []string{"A", "B"}},
				protocol.TestReport{Name: "A"},
				protocol.DoneReport{},
			},
			reason: "done after 1 of 2 tests",
		},
		{
			name: "extra test",
			replies: []protocol.Report{
				protocol.TestsReport{Names: []string{"A"}},
				protocol.TestReport{Name: "A"},
				protocol.TestReport{Name: "A"},
			},
			reason: "unexpected report for 'A' after all 1 tests",
		},
		{
			name: "second tests report",
			replies: []protocol.Report{
				protocol.TestsReport{Names: []string{"A"}},
				protocol.TestsReport{Names: []string{"A"}},
			},
			reason: "unexpected 'tests' report during run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := newScriptedSession(map[string][]protocol.Report{protocol.TypeRun: tt.replies})
			driver := NewDriver("scripted", session, testLogger())

			_, err := driver.Run(context.Background())

			var protoErr *ProtocolError
			require.ErrorAs(t, err, &protoErr)
			assert.Equal(t, "scripted", protoErr.Workload)
			assert.Equal(t, tt.reason, protoErr.Reason)
		})
	}
}

func TestDriverTimeout(t *testing.T) {
	session := newScriptedSession(map[string][]protocol.Report{
		protocol.TypeRun: {protocol.TestsReport{Names: []string{"Hangs"}}},
	})
	driver := NewDriver("scripted", session, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := driver.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDriverDisconnect(t *testing.T) {
	session := newScriptedSession(nil)
	driver := NewDriver("scripted", session, testLogger())
	require.NoError(t, session.Close())

	_, err := driver.Metadata(context.Background())
	assert.ErrorIs(t, err, errPageDisconnected)
}

func TestDriverMalformedReport(t *testing.T) {
	session := newScriptedSession(nil)
	session.reports <- Received{Err: errors.New("malformed report")}
	driver := NewDriver("scripted", session, testLogger())

	_, err := driver.Metadata(context.Background())
	assert.ErrorContains(t, err, "malformed report")
}

func TestPrintRunResults(t *testing.T) {
	color.NoColor = true
	session := newAdapterSession(core.TestCase{Name: "SortAllColumns", Action: func() error { return nil }})
	driver := NewDriver("finance-1", session, testLogger())

	var results []*RunResult
	for i := 0; i < 2; i++ {
		result, err := driver.Run(context.Background())
		require.NoError(t, err)
		results = append(results, result)
	}

	var out bytes.Buffer
	PrintRunResults(&out, "finance-1", results)

	assert.Contains(t, out.String(), "Workload 'finance-1'")
	assert.Contains(t, out.String(), "iteration 1st")
	assert.Contains(t, out.String(), "iteration 2nd")
	assert.Contains(t, out.String(), "SortAllColumns")
}

func TestPrintRunResultsNoTests(t *testing.T) {
	color.NoColor = true
	driver := NewDriver("empty", newAdapterSession(), testLogger())
	result, err := driver.Run(context.Background())
	require.NoError(t, err)

	var out bytes.Buffer
	PrintRunResults(&out, "empty", []*RunResult{result})
	assert.Contains(t, out.String(), "no tests reported")
}
