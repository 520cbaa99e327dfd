package transport

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/bgrins/speedometer-artifact-workloads/internal/protocol"
)

const maxLineSize = 1024 * 1024

// StreamConn exchanges newline-delimited JSON messages over a pair of
// streams, normally the standard input and output of a workload process
// started by its host.
type StreamConn struct {
	in      io.ReadCloser
	out     io.Writer
	writeMu sync.Mutex
}

func NewStreamConn(in io.ReadCloser, out io.Writer) *StreamConn {
	return &StreamConn{in: in, out: out}
}

func (c *StreamConn) PostMessage(r protocol.Report) error {
	data, err := protocol.EncodeReport(r)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_, err = c.out.Write(append(data, '\n'))
	return err
}

func (c *StreamConn) Listen(ctx context.Context, dispatch func([]byte)) error {
	stop := closeOnDone(ctx, c.in)
	defer stop()

	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		// The scanner reuses its buffer.
		dispatch(append([]byte(nil), line...))
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	err := scanner.Err()
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}

func (c *StreamConn) Close() error {
	return c.in.Close()
}
