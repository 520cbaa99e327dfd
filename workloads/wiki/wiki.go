// Package wiki is the wiki-1 workload: an encyclopedia article with
// collapsible sections, a reference list and language and theme switches.
package wiki

import (
	"fmt"
	"strings"

	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload"
	"github.com/bgrins/speedometer-artifact-workloads/workloads/internal/random"
)

const seed = 12345

var (
	words = []string{
		"the", "be", "to", "of", "and", "a", "in", "that", "have", "I",
		"it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
	}
	journals = []string{"Science", "Nature", "Research", "Studies"}
)

type Section struct {
	ID         string
	Title      string
	Paragraphs []string
}

type Reference struct {
	ID      int
	Authors string
	Title   string
	Year    int
	Journal string
}

type Artifact struct {
	workload.BaseArtifact
	args struct {
		NumRefs       int `help:"Number of references" default:"50"`
		NumSections   int `help:"Number of article sections" default:"8"`
		NumParagraphs int `help:"Number of paragraphs per section" default:"4"`
	}

	sections       []Section
	references     []Reference
	expanded       map[string]bool
	showReferences bool
	darkMode       bool
	language       string

	// Rendered view.
	visibleWords int
	visibleRefs  int
	renders      int
}

func (a *Artifact) Name() string {
	return "wiki-1"
}

func (a *Artifact) Description() string {
	return "Encyclopedia article with collapsible sections and references"
}

func (a *Artifact) Args() any {
	return &a.args
}

func (a *Artifact) Load(ctx workload.LoadContext) error {
	if a.args.NumSections <= 0 || a.args.NumParagraphs <= 0 {
		return fmt.Errorf("sections and paragraphs must be positive")
	}
	if a.args.NumRefs < 0 {
		return fmt.Errorf("references must not be negative")
	}

	rand := random.New(seed)
	a.sections = make([]Section, 0, a.args.NumSections)
	for i := 0; i < a.args.NumSections; i++ {
		a.sections = append(a.sections, generateSection(rand, i, a.args.NumParagraphs))
	}

	a.references = make([]Reference, 0, a.args.NumRefs)
	for i := 0; i < a.args.NumRefs; i++ {
		a.references = append(a.references, generateReference(rand, i))
	}

	a.expanded = make(map[string]bool)
	a.showReferences = false
	a.darkMode = false
	a.language = "en"
	a.renders = 0
	a.render()

	ctx.Logger().Debugf("Generated %d sections and %d references", len(a.sections), len(a.references))
	return nil
}

func (a *Artifact) RegisterTestCases(r workload.TestRegistrar) error {
	r.RegisterTestCase("ExpandAllSections", a.expandAllSections)
	r.RegisterTestCase("CollapseAllSections", a.collapseAllSections)
	r.RegisterTestCase("ToggleReferences", a.toggleReferences)
	r.RegisterTestCase("SwitchLanguageAndTheme", a.switchLanguageAndTheme)
	return nil
}

func (a *Artifact) expandAllSections() error {
	for _, section := range a.sections {
		if !a.expanded[section.ID] {
			a.toggleSection(section.ID)
		}
	}
	return nil
}

func (a *Artifact) collapseAllSections() error {
	for _, section := range a.sections {
		if a.expanded[section.ID] {
			a.toggleSection(section.ID)
		}
	}
	return nil
}

func (a *Artifact) toggleReferences() error {
	a.showReferences = !a.showReferences
	a.render()
	return nil
}

func (a *Artifact) switchLanguageAndTheme() error {
	if a.language == "en" {
		a.language = "es"
	} else {
		a.language = "en"
	}
	a.render()

	a.darkMode = !a.darkMode
	a.render()
	return nil
}

func (a *Artifact) toggleSection(id string) {
	if a.expanded[id] {
		delete(a.expanded, id)
	} else {
		a.expanded[id] = true
	}
	a.render()
}

func (a *Artifact) render() {
	a.renders++

	a.visibleWords = 0
	for _, section := range a.sections {
		if !a.expanded[section.ID] {
			continue
		}
		for _, paragraph := range section.Paragraphs {
			a.visibleWords += len(strings.Fields(paragraph))
		}
	}

	a.visibleRefs = 0
	if a.showReferences {
		a.visibleRefs = len(a.references)
	}
}

func generateParagraph(rand *random.Random) string {
	n := rand.Intn(60) + 40
	picked := make([]string, 0, n)
	for i := 0; i < n; i++ {
		picked = append(picked, random.Pick(rand, words))
	}
	return strings.Join(picked, " ")
}

func generateSection(rand *random.Random, index, paragraphs int) Section {
	section := Section{
		ID:    fmt.Sprintf("section-%d", index),
		Title: fmt.Sprintf("Section %d", index+1),
	}
	for i := 0; i < paragraphs; i++ {
		section.Paragraphs = append(section.Paragraphs, generateParagraph(rand))
	}
	return section
}

func generateReference(rand *random.Random, index int) Reference {
	title := generateParagraph(rand)
	if len(title) > 50 {
		title = title[:50]
	}

	return Reference{
		ID:      index,
		Authors: fmt.Sprintf("Author %d", index),
		Title:   title,
		Year:    1950 + rand.Intn(73),
		Journal: "Journal of " + random.Pick(rand, journals),
	}
}
