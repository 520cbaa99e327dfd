package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/bgrins/speedometer-artifact-workloads/internal/transport"
	"github.com/sirupsen/logrus"
)

// Open starts the workload's command and returns a session with its page.
func Open(ctx context.Context, w Workload, log *logrus.Logger) (Session, error) {
	switch w.Transport {
	case TransportStdio, "":
		session, err := StartProcess(ctx, w.Command, log)
		if err != nil {
			return nil, err
		}
		return session, nil
	case TransportWebsocket:
		return startWebsocketWorkload(ctx, w, log)
	default:
		return nil, fmt.Errorf("workload '%s' has unknown transport '%s'", w.Name, w.Transport)
	}
}

// websocketWorkload ties a websocket session to the process and listener
// that back it.
type websocketWorkload struct {
	*WebsocketSession
	cmd      *exec.Cmd
	output   io.WriteCloser
	listener *WebsocketListener
}

func startWebsocketWorkload(ctx context.Context, w Workload, log *logrus.Logger) (Session, error) {
	if len(w.Command) == 0 {
		return nil, fmt.Errorf("workload '%s' has no command", w.Name)
	}

	listener, err := ListenWebsocket("127.0.0.1:0", log)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, w.Command[0], w.Command[1:]...)
	cmd.Env = append(os.Environ(), transport.ParentEnv+"="+listener.URL())
	output := log.WriterLevel(logrus.DebugLevel)
	cmd.Stdout = output
	cmd.Stderr = output

	log.Debugf("Starting workload process: %v", cmd.Args)
	if err := cmd.Start(); err != nil {
		output.Close()
		listener.Close()
		return nil, fmt.Errorf("failed to start '%s': %w", w.Command[0], err)
	}

	session, err := listener.Accept(ctx)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		output.Close()
		listener.Close()
		return nil, err
	}

	return &websocketWorkload{
		WebsocketSession: session,
		cmd:              cmd,
		output:           output,
		listener:         listener,
	}, nil
}

func (w *websocketWorkload) Close() error {
	err := w.WebsocketSession.Close()
	err = errors.Join(err, w.cmd.Wait())
	w.output.Close()
	return errors.Join(err, w.listener.Close())
}
