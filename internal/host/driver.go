package host

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/bgrins/speedometer-artifact-workloads/internal/protocol"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TestTiming is the time between the report preceding a test's completion
// and the completion itself, as observed by the host.
type TestTiming struct {
	Name    string
	Elapsed time.Duration
}

type RunResult struct {
	ID        uuid.UUID
	Workload  string
	Tests     []string
	Timings   []TestTiming
	StartTime time.Time
	Total     time.Duration
}

// Driver sends control messages to one page and validates its reports.
type Driver struct {
	workload string
	session  Session
	log      *logrus.Logger
}

func NewDriver(workload string, session Session, log *logrus.Logger) *Driver {
	return &Driver{
		workload: workload,
		session:  session,
		log:      log,
	}
}

// Metadata asks the page for its test names.
func (d *Driver) Metadata(ctx context.Context) ([]string, error) {
	if err := d.session.Send(protocol.MetadataRequest{}); err != nil {
		return nil, fmt.Errorf("failed to send metadata request to '%s': %w", d.workload, err)
	}

	r, err := receive(ctx, d.session)
	if err != nil {
		return nil, fmt.Errorf("waiting for test names from '%s': %w", d.workload, err)
	}

	tests, ok := r.Report.(protocol.TestsReport)
	if !ok {
		return nil, newProtocolError(d.workload, "expected '%s' report, got '%s'", protocol.TypeTests, r.Report.Type())
	}

	return tests.Names, nil
}

// Run asks the page to execute its registry and waits for the done report.
// It checks that the page announces its tests first, then reports each
// announced test exactly once in order, then reports done.
func (d *Driver) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{
		ID:        uuid.New(),
		Workload:  d.workload,
		StartTime: time.Now(),
	}
	log := d.log.WithField("workload", d.workload).WithField("runId", result.ID.String())

	if err := d.session.Send(protocol.RunRequest{}); err != nil {
		return nil, fmt.Errorf("failed to send run request to '%s': %w", d.workload, err)
	}
	log.Debug("Run requested")

	r, err := receive(ctx, d.session)
	if err != nil {
		return nil, fmt.Errorf("waiting for test names from '%s': %w", d.workload, err)
	}

	tests, ok := r.Report.(protocol.TestsReport)
	if !ok {
		return nil, newProtocolError(d.workload, "expected '%s' report first, got '%s'", protocol.TypeTests, r.Report.Type())
	}
	result.Tests = slices.Clone(tests.Names)
	last := r.At

	for {
		r, err := receive(ctx, d.session)
		if err != nil {
			return nil, fmt.Errorf("waiting for reports from '%s': %w", d.workload, err)
		}

		switch report := r.Report.(type) {
		case protocol.TestReport:
			next := len(result.Timings)
			if next >= len(result.Tests) {
				return nil, newProtocolError(d.workload, "unexpected report for '%s' after all %d tests", report.Name, len(result.Tests))
			}
			if report.Name != result.Tests[next] {
				return nil, newProtocolError(d.workload, "expected report for '%s', got '%s'", result.Tests[next], report.Name)
			}

			timing := TestTiming{Name: report.Name, Elapsed: r.At.Sub(last)}
			result.Timings = append(result.Timings, timing)
			last = r.At
			log.WithField("testCase", timing.Name).Debugf("Finished in %s", timing.Elapsed)

		case protocol.DoneReport:
			if len(result.Timings) != len(result.Tests) {
				return nil, newProtocolError(d.workload, "done after %d of %d tests", len(result.Timings), len(result.Tests))
			}
			result.Total = r.At.Sub(result.StartTime)
			log.Debugf("Run done in %s", result.Total)
			return result, nil

		default:
			return nil, newProtocolError(d.workload, "unexpected '%s' report during run", report.Type())
		}
	}
}
