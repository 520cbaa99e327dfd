package host

import (
	"errors"
	"fmt"
)

var errPageDisconnected = errors.New("workload page disconnected")

// ProtocolError is returned when a page sends reports that break the
// ordering contract of a run.
type ProtocolError struct {
	Workload string
	Reason   string
}

func (pe *ProtocolError) Error() string {
	return fmt.Sprintf("protocol violation from '%s': %s", pe.Workload, pe.Reason)
}

func newProtocolError(workload string, format string, args ...any) *ProtocolError {
	return &ProtocolError{
		Workload: workload,
		Reason:   fmt.Sprintf(format, args...),
	}
}
