package edu

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

func (c *loadContext) Name() string { return "edu-1" }

func (c *loadContext) Logger() *logrus.Logger { return c.log }

type registrar struct {
	tests []core.TestCase
}

func (r *registrar) RegisterTestCase(name string, action workload.TestAction) {
	r.tests = append(r.tests, core.TestCase{Name: name, Action: action})
}

func newArtifact(t *testing.T, courses, sections, lessons, perPage int) *Artifact {
	log, _ := test.NewNullLogger()
	a := &Artifact{}
	a.args.NumCourses = courses
	a.args.NumSections = sections
	a.args.NumLessons = lessons
	a.args.ItemsPerPage = perPage
	require.NoError(t, a.Load(&loadContext{log: log}))
	return a
}

func TestRegisteredTests(t *testing.T) {
	a := newArtifact(t, 50, 8, 6, 10)
	r := &registrar{}
	require.NoError(t, a.RegisterTestCases(r))

	assert.Equal(t,
		[]string{"ExpandAllCourses", "ExpandAllSections", "FilterAndSearch", "UpdateVisualization"},
		core.TestNames(r.tests))

	for _, tc := range r.tests {
		assert.NoError(t, tc.Action(), tc.Name)
	}
}

func TestGenerateCourses(t *testing.T) {
	a := newArtifact(t, 12, 3, 2, 5)
	b := newArtifact(t, 12, 3, 2, 5)
	assert.Equal(t, a.courses, b.courses)

	course := a.courses[4]
	assert.Equal(t, "course-4", course.ID)
	assert.Len(t, course.Sections, 3)
	assert.Len(t, course.Sections[2].Lessons, 2)
	assert.Equal(t, "lesson-4-2-1", course.Sections[2].Lessons[1].ID)
	assert.Contains(t, subjects, course.Subject)
	assert.Contains(t, levels, course.Level)
	assert.Equal(t, course.Subject+" "+course.Level+": ", course.Title[:len(course.Subject)+len(course.Level)+3])

	for _, section := range course.Sections {
		for _, lesson := range section.Lessons {
			assert.GreaterOrEqual(t, lesson.Duration, 10)
			assert.Less(t, lesson.Duration, 30)
		}
	}
}

func TestPagination(t *testing.T) {
	a := newArtifact(t, 23, 1, 1, 10)
	assert.Equal(t, 23, a.view.filtered)
	assert.Equal(t, 3, a.view.totalPages)
	assert.Len(t, a.view.page, 10)

	a.setPage(3)
	assert.Len(t, a.view.page, 3)
	assert.Equal(t, "course-20", a.view.page[0].ID)
}

func TestExpandAll(t *testing.T) {
	a := newArtifact(t, 15, 4, 3, 10)

	require.NoError(t, a.expandAllSections())
	assert.Zero(t, a.view.visibleLessons)

	require.NoError(t, a.expandAllCourses())
	assert.Equal(t, 10*4*3, a.view.visibleLessons)

	for _, course := range a.courses {
		assert.True(t, course.Expanded)
	}
}

func TestFilterAndSearch(t *testing.T) {
	a := newArtifact(t, 200, 1, 1, 10)
	require.NoError(t, a.filterAndSearch())

	assert.Equal(t, 1, a.currentPage)
	for _, course := range a.view.page {
		assert.Equal(t, "Math", course.Subject)
		assert.Equal(t, "Intermediate", course.Level)
		assert.True(t, strings.Contains(course.Title, "Algebra"))
	}
	assert.LessOrEqual(t, a.view.filtered, 200)
}

func TestUpdateVisualization(t *testing.T) {
	a := newArtifact(t, 1, 1, 1, 1)
	before := a.view.points
	renders := a.view.renders

	require.NoError(t, a.updateVisualization())
	assert.Equal(t, int64(6), a.visualizationSeed)
	assert.Equal(t, renders+5, a.view.renders)
	assert.NotEqual(t, before, a.view.points)
	assert.Len(t, a.view.points, visualizationLen)
}

func TestLoadRejectsBadArgs(t *testing.T) {
	log, _ := test.NewNullLogger()
	a := &Artifact{}
	a.args.NumCourses = 1
	a.args.NumSections = 1
	a.args.NumLessons = 1
	assert.Error(t, a.Load(&loadContext{log: log}))
}
