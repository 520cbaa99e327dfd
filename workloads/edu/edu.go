// Package edu is the edu-1 workload: a paginated course catalog with nested
// sections and lessons, a search box with subject and level filters, and a
// seeded math visualization.
package edu

import (
	"fmt"
	"strings"

	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload"
	"github.com/bgrins/speedometer-artifact-workloads/workloads/internal/random"
)

const (
	seed             = 123
	all              = "All"
	visualizationLen = 20
)

var (
	subjects = []string{"Math", "Science", "Computing", "Economics"}
	topics   = []string{"Algebra", "Biology", "Programming", "Finance", "Physics", "Statistics"}
	levels   = []string{"Beginner", "Intermediate", "Advanced"}
)

type Lesson struct {
	ID        string
	Title     string
	Duration  int
	Completed bool
}

type Section struct {
	ID       string
	Title    string
	Lessons  []Lesson
	Expanded bool
}

type Course struct {
	ID       string
	Title    string
	Subject  string
	Level    string
	Progress int
	Sections []Section
	Expanded bool
}

type Artifact struct {
	workload.BaseArtifact
	args struct {
		NumCourses   int `help:"Number of courses in the catalog" default:"50"`
		NumSections  int `help:"Number of sections per course" default:"8"`
		NumLessons   int `help:"Number of lessons per section" default:"6"`
		ItemsPerPage int `help:"Number of courses per page" default:"10"`
	}

	courses           []Course
	searchTerm        string
	currentPage       int
	selectedSubject   string
	selectedLevel     string
	visualizationSeed int64

	view view
}

// view is what the catalog page currently shows.
type view struct {
	filtered       int
	totalPages     int
	page           []*Course
	visibleLessons int
	points         []point
	curve          point
	renders        int
}

type point struct {
	X, Y float64
	Red  bool
}

func (a *Artifact) Name() string {
	return "edu-1"
}

func (a *Artifact) Description() string {
	return "Course catalog with nested sections, search and filters"
}

func (a *Artifact) Args() any {
	return &a.args
}

func (a *Artifact) Load(ctx workload.LoadContext) error {
	if a.args.NumCourses <= 0 || a.args.NumSections <= 0 || a.args.NumLessons <= 0 {
		return fmt.Errorf("courses, sections and lessons must be positive")
	}
	if a.args.ItemsPerPage <= 0 {
		return fmt.Errorf("items per page must be positive")
	}

	a.courses = generateCourses(a.args.NumCourses, a.args.NumSections, a.args.NumLessons)
	a.searchTerm = ""
	a.currentPage = 1
	a.selectedSubject = all
	a.selectedLevel = all
	a.visualizationSeed = 1
	a.view = view{}
	a.render()

	ctx.Logger().Debugf("Generated %d courses", len(a.courses))
	return nil
}

func (a *Artifact) RegisterTestCases(r workload.TestRegistrar) error {
	r.RegisterTestCase("ExpandAllCourses", a.expandAllCourses)
	r.RegisterTestCase("ExpandAllSections", a.expandAllSections)
	r.RegisterTestCase("FilterAndSearch", a.filterAndSearch)
	r.RegisterTestCase("UpdateVisualization", a.updateVisualization)
	return nil
}

func (a *Artifact) expandAllCourses() error {
	for i := range a.courses {
		if !a.courses[i].Expanded {
			a.toggleCourse(a.courses[i].ID)
		}
	}
	return nil
}

func (a *Artifact) expandAllSections() error {
	for i := range a.courses {
		course := &a.courses[i]
		for j := range course.Sections {
			if !course.Sections[j].Expanded {
				a.toggleSection(course.ID, course.Sections[j].ID)
			}
		}
	}
	return nil
}

func (a *Artifact) filterAndSearch() error {
	a.setSearchTerm("Algebra")
	a.setSubject("Math")
	a.setLevel("Intermediate")
	a.setPage(1)
	return nil
}

func (a *Artifact) updateVisualization() error {
	for i := 0; i < 5; i++ {
		a.visualizationSeed++
		a.render()
	}
	return nil
}

func (a *Artifact) toggleCourse(id string) {
	for i := range a.courses {
		if a.courses[i].ID == id {
			a.courses[i].Expanded = !a.courses[i].Expanded
		}
	}
	a.render()
}

func (a *Artifact) toggleSection(courseID, sectionID string) {
	for i := range a.courses {
		if a.courses[i].ID != courseID {
			continue
		}
		sections := a.courses[i].Sections
		for j := range sections {
			if sections[j].ID == sectionID {
				sections[j].Expanded = !sections[j].Expanded
			}
		}
	}
	a.render()
}

func (a *Artifact) setSearchTerm(term string) {
	a.searchTerm = term
	a.render()
}

func (a *Artifact) setSubject(subject string) {
	a.selectedSubject = subject
	a.render()
}

func (a *Artifact) setLevel(level string) {
	a.selectedLevel = level
	a.render()
}

func (a *Artifact) setPage(page int) {
	a.currentPage = page
	a.render()
}

func (a *Artifact) matches(course *Course) bool {
	if !strings.Contains(strings.ToLower(course.Title), strings.ToLower(a.searchTerm)) {
		return false
	}
	if a.selectedSubject != all && course.Subject != a.selectedSubject {
		return false
	}
	return a.selectedLevel == all || course.Level == a.selectedLevel
}

func (a *Artifact) render() {
	v := view{renders: a.view.renders + 1}

	var filtered []*Course
	for i := range a.courses {
		if a.matches(&a.courses[i]) {
			filtered = append(filtered, &a.courses[i])
		}
	}

	perPage := a.args.ItemsPerPage
	v.filtered = len(filtered)
	v.totalPages = (len(filtered) + perPage - 1) / perPage

	start := min((a.currentPage-1)*perPage, len(filtered))
	end := min(a.currentPage*perPage, len(filtered))
	v.page = filtered[start:end]

	for _, course := range v.page {
		if !course.Expanded {
			continue
		}
		for _, section := range course.Sections {
			if section.Expanded {
				v.visibleLessons += len(section.Lessons)
			}
		}
	}

	v.points, v.curve = visualize(a.visualizationSeed)
	a.view = v
}

// visualize lays out the scatter plot and the quadratic curve control point
// of the math visualization for seed.
func visualize(seed int64) ([]point, point) {
	r := random.New(seed)

	points := make([]point, visualizationLen)
	for i := range points {
		points[i].X = r.Next()*180 + 10
		points[i].Y = r.Next()*180 + 10
	}

	curve := point{X: 100 + r.Next()*50, Y: 150 + r.Next()*30}
	for i := range points {
		points[i].Red = r.Next() > 0.5
	}

	return points, curve
}

func generateCourses(numCourses, numSections, numLessons int) []Course {
	rand := random.New(seed)
	courses := make([]Course, 0, numCourses)

	for i := 0; i < numCourses; i++ {
		subject := random.Pick(rand, subjects)
		topic := random.Pick(rand, topics)
		level := random.Pick(rand, levels)

		sections := make([]Section, 0, numSections)
		for j := 0; j < numSections; j++ {
			lessons := make([]Lesson, 0, numLessons)
			for k := 0; k < numLessons; k++ {
				lessons = append(lessons, Lesson{
					ID:        fmt.Sprintf("lesson-%d-%d-%d", i, j, k),
					Title:     fmt.Sprintf("Lesson %d: %s Concepts %d", k+1, topic, k+1),
					Duration:  int(rand.Next()*20 + 10),
					Completed: rand.Next() > 0.7,
				})
			}

			sections = append(sections, Section{
				ID:      fmt.Sprintf("section-%d-%d", i, j),
				Title:   fmt.Sprintf("Section %d: %s Fundamentals %d", j+1, topic, j+1),
				Lessons: lessons,
			})
		}

		courses = append(courses, Course{
			ID:       fmt.Sprintf("course-%d", i),
			Title:    fmt.Sprintf("%s %s: %s", subject, level, topic),
			Subject:  subject,
			Level:    level,
			Progress: rand.Intn(100),
			Sections: sections,
		})
	}

	return courses
}
