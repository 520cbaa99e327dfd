package wiki

import (
	"strings"
	"testing"

	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload"
	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/core"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loadContext struct {
	log *logrus.Logger
}

func (c *loadContext) Name() string { return "wiki-1" }

func (c *loadContext) Logger() *logrus.Logger { return c.log }

type registrar struct {
	tests []core.TestCase
}

func (r *registrar) RegisterTestCase(name string, action workload.TestAction) {
	r.tests = append(r.tests, core.TestCase{Name: name, Action: action})
}

func newArtifact(t *testing.T, refs, sections, paragraphs int) *Artifact {
	log, _ := test.NewNullLogger()
	a := &Artifact{}
	a.args.NumRefs = refs
	a.args.NumSections = sections
	a.args.NumParagraphs = paragraphs
	require.NoError(t, a.Load(&loadContext{log: log}))
	return a
}

func TestRegisteredTests(t *testing.T) {
	a := newArtifact(t, 50, 8, 4)
	r := &registrar{}
	require.NoError(t, a.RegisterTestCases(r))

	assert.Equal(t,
		[]string{"ExpandAllSections", "CollapseAllSections", "ToggleReferences", "SwitchLanguageAndTheme"},
		core.TestNames(r.tests))

	for _, tc := range r.tests {
		assert.NoError(t, tc.Action(), tc.Name)
	}
}

func TestGeneratedContent(t *testing.T) {
	a := newArtifact(t, 5, 3, 2)
	b := newArtifact(t, 5, 3, 2)
	assert.Equal(t, a.sections, b.sections)
	assert.Equal(t, a.references, b.references)

	assert.Equal(t, "section-2", a.sections[2].ID)
	for _, paragraph := range a.sections[0].Paragraphs {
		n := len(strings.Fields(paragraph))
		assert.GreaterOrEqual(t, n, 40)
		assert.Less(t, n, 100)
	}

	for _, ref := range a.references {
		assert.LessOrEqual(t, len(ref.Title), 50)
		assert.GreaterOrEqual(t, ref.Year, 1950)
		assert.Less(t, ref.Year, 2023)
		assert.True(t, strings.HasPrefix(ref.Journal, "Journal of "))
	}
}

func TestExpandCollapse(t *testing.T) {
	a := newArtifact(t, 1, 4, 2)
	assert.Zero(t, a.visibleWords)

	require.NoError(t, a.expandAllSections())
	assert.Len(t, a.expanded, 4)
	assert.Positive(t, a.visibleWords)

	require.NoError(t, a.collapseAllSections())
	assert.Empty(t, a.expanded)
	assert.Zero(t, a.visibleWords)
}

func TestToggles(t *testing.T) {
	a := newArtifact(t, 7, 1, 1)

	require.NoError(t, a.toggleReferences())
	assert.Equal(t, 7, a.visibleRefs)
	require.NoError(t, a.toggleReferences())
	assert.Zero(t, a.visibleRefs)

	require.NoError(t, a.switchLanguageAndTheme())
	assert.Equal(t, "es", a.language)
	assert.True(t, a.darkMode)

	require.NoError(t, a.switchLanguageAndTheme())
	assert.Equal(t, "en", a.language)
	assert.False(t, a.darkMode)
}
