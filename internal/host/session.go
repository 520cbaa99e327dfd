// Package host drives workload pages from the embedding side: it sends
// control messages and checks the reports that come back. It does not score
// or aggregate results.
package host

import (
	"context"
	"time"

	"github.com/bgrins/speedometer-artifact-workloads/internal/protocol"
)

// Received is one report together with its arrival time, or the error that
// ended the stream.
type Received struct {
	Report protocol.Report
	Err    error
	At     time.Time
}

// Session is a live connection to one workload page.
type Session interface {
	// Send delivers a control message to the page.
	Send(protocol.Control) error

	// Reports yields every report the page sends, in arrival order. The
	// channel is closed when the page disconnects.
	Reports() <-chan Received

	Close() error
}

func receive(ctx context.Context, s Session) (Received, error) {
	select {
	case <-ctx.Done():
		return Received{}, ctx.Err()
	case r, ok := <-s.Reports():
		if !ok {
			return Received{}, errPageDisconnected
		}
		if r.Err != nil {
			return Received{}, r.Err
		}
		return r, nil
	}
}
