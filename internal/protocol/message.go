// Package protocol defines the messages exchanged between a benchmark host
// and a workload page.
//
// Inbound (host to page) messages are control requests, outbound (page to
// host) messages are reports. Both are closed sets: only the types declared
// here implement Control and Report.
package protocol

const (
	TypeMetadata = "metadata"
	TypeRun      = "run"

	TypeTests = "tests"
	TypeTest  = "test"
	TypeDone  = "done"
)

// Control is an inbound instruction from the host.
type Control interface {
	Type() string
	control()
}

// MetadataRequest asks the page for the names of its test cases.
type MetadataRequest struct{}

func (MetadataRequest) Type() string { return TypeMetadata }
func (MetadataRequest) control() {}

// RunRequest asks the page to execute every registered test case.
type RunRequest struct{}

func (RunRequest) Type() string { return TypeRun }
func (RunRequest) control() {}

// Report is an outbound status update to the host.
type Report interface {
	Type() string
	report()
}

// TestsReport lists the registered test names in registry order.
type TestsReport struct {
	Names []string
}

func (TestsReport) Type() string { return TypeTests }
func (TestsReport) report() {}

// TestReport announces that a single test case finished executing. It does
// not say whether the test succeeded.
type TestReport struct {
	Name string
}

func (TestReport) Type() string { return TypeTest }
func (TestReport) report() {}

// DoneReport announces that a run has attempted every test case.
type DoneReport struct{}

func (DoneReport) Type() string { return TypeDone }
func (DoneReport) report() {}
