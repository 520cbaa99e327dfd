// Package adapter implements the benchmark-runner adapter that lives inside
// every workload page: it answers host control messages by reporting the
// page's test names or by running the whole test registry.
package adapter

import (
	"github.com/bgrins/speedometer-artifact-workloads/internal/protocol"
	"github.com/bgrins/speedometer-artifact-workloads/internal/testmgr"
	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/core"
	"github.com/sirupsen/logrus"
)

// RegistrySource is the read side of the page's test registry.
type RegistrySource interface {
	// Tests returns the registered test cases and false when the artifact
	// never assigned the registry.
	Tests() ([]core.TestCase, bool)
}

type Handler struct {
	location string
	registry RegistrySource
	executor *Executor
	reporter *Reporter
	log      *logrus.Logger
	state    State

	// Called with the results of every completed run.
	OnRunComplete func(*testmgr.TestManager)
}

// NewHandler wires a handler for the page. location identifies the page in
// diagnostics, the same way the page URL does in a browser.
func NewHandler(page interface {
	core.Named
	core.LoggerProvider
}, location string, registry RegistrySource, reporter *Reporter) *Handler {
	return &Handler{
		location: location,
		registry: registry,
		executor: NewExecutor(page),
		reporter: reporter,
		log:      page.Logger(),
		state:    StateIdle,
	}
}

func (h *Handler) State() State {
	return h.state
}

// HandleMessage handles one raw inbound payload. Payloads that are not a
// known control message are ignored.
func (h *Handler) HandleMessage(data []byte) {
	msg, ok := protocol.DecodeControl(data)
	if !ok {
		h.log.Tracef("Ignoring message %q", data)
		return
	}

	h.Handle(msg)
}

func (h *Handler) Handle(msg protocol.Control) {
	h.log.Debugf("Message posted: %s", msg.Type())

	if h.state != StateIdle {
		h.log.Warnf("Received '%s' while %s, ignoring", msg.Type(), h.state)
		return
	}

	switch msg.(type) {
	case protocol.MetadataRequest:
		h.handleMetadata()
	case protocol.RunRequest:
		h.handleRun()
	}
}

func (h *Handler) handleMetadata() {
	h.state = StateHandlingMetadata
	defer func() { h.state = StateIdle }()

	tests, _ := h.registry.Tests()
	h.reporter.AnnounceTests(core.TestNames(tests))
}

func (h *Handler) handleRun() {
	h.state = StateRunning
	defer func() { h.state = StateIdle }()

	h.log.Info("Request to run")

	tests, ok := h.registry.Tests()
	h.reporter.AnnounceTests(core.TestNames(tests))

	if !ok {
		h.log.Warnf("No tests found on %s", h.location)
	} else {
		testMgr := h.executor.Execute(tests, h.reporter.AnnounceTest)
		if h.OnRunComplete != nil {
			h.OnRunComplete(testMgr)
		}
	}

	h.reporter.AnnounceDone()
}
