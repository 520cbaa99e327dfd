package protocol

import (
	"encoding/json"
	"fmt"
)

// controlEnvelope only looks at the type so that unrelated fields of any
// shape never get a control message dropped.
type controlEnvelope struct {
	Type *string `json:"type"`
}

type reportEnvelope struct {
	Type  *string   `json:"type"`
	Tests *[]string `json:"tests,omitempty"`
	Name  *string   `json:"name,omitempty"`
}

type testsBody struct {
	Type  string   `json:"type"`
	Tests []string `json:"tests"`
}

type testBody struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type typeBody struct {
	Type string `json:"type"`
}

// DecodeControl parses an inbound payload. It returns false for anything that
// is not a JSON object carrying a known control type; such payloads are to be
// ignored by the caller.
func DecodeControl(data []byte) (Control, bool) {
	var env controlEnvelope
	if err := json.Unmarshal(data, &env); err != nil || env.Type == nil {
		return nil, false
	}

	switch *env.Type {
	case TypeMetadata:
		return MetadataRequest{}, true
	case TypeRun:
		return RunRequest{}, true
	default:
		return nil, false
	}
}

// EncodeControl serializes a control request for the wire.
func EncodeControl(c Control) ([]byte, error) {
	switch c.(type) {
	case MetadataRequest, RunRequest:
		return json.Marshal(typeBody{Type: c.Type()})
	default:
		return nil, fmt.Errorf("unsupported control message %T", c)
	}
}

// EncodeReport serializes a report for the wire. A TestsReport always carries
// a "tests" array, empty when there are no test cases.
func EncodeReport(r Report) ([]byte, error) {
	switch m := r.(type) {
	case TestsReport:
		names := m.Names
		if names == nil {
			names = []string{}
		}
		return json.Marshal(testsBody{Type: TypeTests, Tests: names})
	case TestReport:
		return json.Marshal(testBody{Type: TypeTest, Name: m.Name})
	case DoneReport:
		return json.Marshal(typeBody{Type: TypeDone})
	default:
		return nil, fmt.Errorf("unsupported report message %T", r)
	}
}

// DecodeReport parses an outbound payload as seen by the host.
func DecodeReport(data []byte) (Report, error) {
	var env reportEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed report: %w", err)
	}

	if env.Type == nil {
		return nil, fmt.Errorf("malformed report: missing type")
	}

	switch *env.Type {
	case TypeTests:
		if env.Tests == nil {
			return nil, fmt.Errorf("malformed %s report: missing tests", TypeTests)
		}
		return TestsReport{Names: *env.Tests}, nil
	case TypeTest:
		if env.Name == nil {
			return nil, fmt.Errorf("malformed %s report: missing name", TypeTest)
		}
		return TestReport{Name: *env.Name}, nil
	case TypeDone:
		return DoneReport{}, nil
	default:
		return nil, fmt.Errorf("unknown report type '%s'", *env.Type)
	}
}
