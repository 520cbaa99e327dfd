// Package transport connects a workload page to the context that embeds it.
package transport

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bgrins/speedometer-artifact-workloads/internal/protocol"
)

const ParentStdio = "stdio"

// ParentEnv is the environment variable a host sets to tell a workload
// process where its parent is.
const ParentEnv = "ARTIFACT_WORKLOAD_PARENT"

// Conn is a connection from a page to its parent context.
type Conn interface {
	// PostMessage sends a report to the parent. It is safe to call from any
	// goroutine.
	PostMessage(protocol.Report) error

	// Listen delivers every inbound payload to dispatch until the parent
	// disconnects or ctx is cancelled. It returns nil when the parent closed
	// the connection normally.
	Listen(ctx context.Context, dispatch func([]byte)) error

	Close() error
}

// Open connects to the parent described by parent: "" for none, "stdio" for
// the standard streams, or a ws:// or wss:// URL. A nil Conn is returned when
// the page has no parent.
func Open(ctx context.Context, parent string) (Conn, error) {
	switch {
	case parent == "":
		return nil, nil
	case parent == ParentStdio:
		return NewStreamConn(os.Stdin, os.Stdout), nil
	case strings.HasPrefix(parent, "ws://"), strings.HasPrefix(parent, "wss://"):
		return DialWebsocket(ctx, parent)
	default:
		return nil, fmt.Errorf("unsupported parent '%s'", parent)
	}
}

// closeOnDone closes c when ctx is cancelled, unblocking any pending read.
func closeOnDone(ctx context.Context, c io.Closer) (stop func()) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			c.Close()
		case <-done:
		}
	}()

	return func() { close(done) }
}
