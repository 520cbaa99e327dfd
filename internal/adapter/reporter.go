package adapter

import (
	"github.com/bgrins/speedometer-artifact-workloads/internal/protocol"
	"github.com/sirupsen/logrus"
)

// Poster delivers a report to the context that embeds the page. Delivery is
// best effort: nothing is acknowledged and nothing is retried.
type Poster interface {
	PostMessage(protocol.Report) error
}

// Reporter announces progress and completion to the parent context. A
// Reporter without a parent drops every report.
type Reporter struct {
	parent Poster
	log    *logrus.Logger
}

// NewReporter creates a reporter posting to parent, which may be nil when
// the page was opened standalone.
func NewReporter(parent Poster, log *logrus.Logger) *Reporter {
	return &Reporter{
		parent: parent,
		log:    log,
	}
}

func (r *Reporter) AnnounceTests(names []string) {
	if names == nil {
		names = []string{}
	}
	r.post(protocol.TestsReport{Names: names})
}

func (r *Reporter) AnnounceTest(name string) {
	r.post(protocol.TestReport{Name: name})
}

func (r *Reporter) AnnounceDone() {
	r.post(protocol.DoneReport{})
}

func (r *Reporter) post(report protocol.Report) {
	if r.parent == nil {
		r.log.Tracef("No parent context, dropping '%s' report", report.Type())
		return
	}

	if err := r.parent.PostMessage(report); err != nil {
		r.log.WithError(err).Debugf("Failed to post '%s' report", report.Type())
	}
}
