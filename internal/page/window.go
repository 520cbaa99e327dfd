package page

import (
	"fmt"

	"github.com/bgrins/speedometer-artifact-workloads/internal/adapter"
	"github.com/bgrins/speedometer-artifact-workloads/internal/collector"
	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/core"
	"github.com/sirupsen/logrus"
)

// Window is one loaded workload page: the artifact, its test registry, the
// optional parent context and the adapter answering the parent.
type Window struct {
	name     string
	location string
	artifact core.Artifact
	log      *logrus.Logger
	loop     *Loop
	registry *core.Registry
	parent   adapter.Poster
	handler  *adapter.Handler
}

// NewWindow creates a page for the artifact. parent may be nil for a page
// that was opened standalone.
func NewWindow(artifact core.Artifact, location string, parent adapter.Poster, log *logrus.Logger) *Window {
	w := &Window{
		name:     artifact.Name(),
		location: location,
		artifact: artifact,
		log:      log,
		loop:     NewLoop(),
		registry: core.NewRegistry(),
		parent:   parent,
	}

	w.handler = adapter.NewHandler(w, location, w.registry, adapter.NewReporter(parent, log))
	return w
}

func (w *Window) Name() string {
	return w.name
}

func (w *Window) Logger() *logrus.Logger {
	return w.log
}

func (w *Window) Location() string {
	return w.location
}

// Tests is the page's test registry slot.
func (w *Window) Tests() *core.Registry {
	return w.registry
}

func (w *Window) Loop() *Loop {
	return w.loop
}

func (w *Window) Handler() *adapter.Handler {
	return w.handler
}

// HasParent reports whether the page is embedded in a host context.
func (w *Window) HasParent() bool {
	return w.parent != nil
}

// Load initializes the artifact and assigns its test cases to the registry.
// When it fails the registry stays absent and runs report no tests.
func (w *Window) Load() error {
	if err := w.artifact.Load(w); err != nil {
		return newLoadError(w.name, err)
	}

	tests, err := collector.CollectTestCases(w.artifact, w.log)
	if err != nil {
		return newLoadError(w.name, err)
	}

	w.registry.Set(tests)
	return nil
}

// ContentLoaded runs Load on the loop and logs the discovered test names, the
// way a browser page reacts to DOMContentLoaded.
func (w *Window) ContentLoaded() bool {
	return w.loop.Post(func() {
		if err := w.Load(); err != nil {
			w.log.WithError(err).Error("Failed to load artifact")
		}

		if _, ok := w.registry.Tests(); !ok {
			w.log.Warnf("No tests registered on %s", w.location)
			return
		}

		w.log.WithField("tests", w.registry.Names()).Infof("Loaded '%s'", w.name)
		for _, name := range w.registry.Names() {
			w.log.Debugf("  %s", name)
		}
	})
}

// Dispatch queues an inbound message for the adapter. It returns false when
// the page is closed.
func (w *Window) Dispatch(data []byte) bool {
	return w.loop.Post(func() {
		w.handler.HandleMessage(data)
	})
}

type loadError struct {
	name string
	err  error
}

func newLoadError(name string, err error) *loadError {
	return &loadError{name: name, err: err}
}

func (le *loadError) Error() string {
	return fmt.Sprintf("load error in artifact '%s': %v", le.name, le.err)
}

func (le *loadError) Unwrap() error {
	return le.err
}
