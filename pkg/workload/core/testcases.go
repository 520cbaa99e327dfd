package core

import (
	"errors"
	"fmt"
)

// TestAction is a zero-argument synchronous interaction. Returning an error
// or panicking both count as a failure of the test case.
type TestAction = func() error

// TestCase is one named entry of a page's test registry.
type TestCase struct {
	Name   string
	Action TestAction
}

type TestRegistrar interface {
	// Register a test case with the given name. The name is used to identify
	// the test case when reporting to the host and should be unique within
	// the page. Names MUST NOT be empty.
	RegisterTestCase(name string, action TestAction)
}

type TestRegistrant interface {
	Named
	RegisterTestCases(r TestRegistrar) error
}

var ErrEmptyName = errors.New("name must not be empty")

// ValidateEntityName checks that an entity name can be used as a reporting
// key.
func ValidateEntityName(name string, kind string) error {
	if name == "" {
		return fmt.Errorf("invalid %s name: %w", kind, ErrEmptyName)
	}

	return nil
}

// TestNames returns the names of the given test cases in order.
func TestNames(tests []TestCase) []string {
	names := make([]string, len(tests))
	for i, test := range tests {
		names[i] = test.Name
	}

	return names
}
