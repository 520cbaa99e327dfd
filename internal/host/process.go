package host

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/bgrins/speedometer-artifact-workloads/internal/protocol"
	"github.com/bgrins/speedometer-artifact-workloads/internal/transport"
	"github.com/sirupsen/logrus"
)

// ProcessSession runs a workload as a child process and talks to it over its
// standard streams. The child's stderr is forwarded to the host's log output.
type ProcessSession struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stderr  io.WriteCloser
	reports chan Received
	writeMu sync.Mutex
	waitErr chan error
}

// StartProcess launches argv with its parent set to the standard streams.
func StartProcess(ctx context.Context, argv []string, log *logrus.Logger) (*ProcessSession, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty workload command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), transport.ParentEnv+"="+transport.ParentStdio)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdin of '%s': %w", argv[0], err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout of '%s': %w", argv[0], err)
	}

	stderr := log.WriterLevel(logrus.DebugLevel)
	cmd.Stderr = stderr

	log.Debugf("Starting workload process: %v", cmd.Args)
	if err := cmd.Start(); err != nil {
		stderr.Close()
		return nil, fmt.Errorf("failed to start '%s': %w", argv[0], err)
	}

	s := &ProcessSession{
		cmd:     cmd,
		stdin:   stdin,
		stderr:  stderr,
		reports: make(chan Received, 64),
		waitErr: make(chan error, 1),
	}

	go s.readReports(stdout)
	return s, nil
}

func (s *ProcessSession) readReports(stdout io.Reader) {
	defer close(s.reports)

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}

		report, err := protocol.DecodeReport(scanner.Bytes())
		s.reports <- Received{Report: report, Err: err, At: time.Now()}
	}

	if err := scanner.Err(); err != nil {
		s.reports <- Received{Err: fmt.Errorf("failed to read reports: %w", err), At: time.Now()}

		// The child may still be writing; Wait must not run before stdout
		// is drained.
		_, _ = io.Copy(io.Discard, stdout)
	}

	err := s.cmd.Wait()
	s.stderr.Close()
	s.waitErr <- err
}

func (s *ProcessSession) Send(c protocol.Control) error {
	data, err := protocol.EncodeControl(c)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, err = s.stdin.Write(append(data, '\n'))
	return err
}

func (s *ProcessSession) Reports() <-chan Received {
	return s.reports
}

// Close closes the child's stdin, which ends its page, and waits for it to
// exit.
func (s *ProcessSession) Close() error {
	s.writeMu.Lock()
	err := s.stdin.Close()
	s.writeMu.Unlock()
	if err != nil {
		return err
	}

	// Drain whatever is left so the reader can reach Wait.
	for range s.reports {
	}

	return <-s.waitErr
}
