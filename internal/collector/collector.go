package collector

import (
	"fmt"

	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/core"
	"github.com/sirupsen/logrus"
)

// CollectTestCases runs the registrant's registration function and returns
// the test cases in registration order. Duplicate names are allowed but
// logged, since hosts key their reports by name.
func CollectTestCases(r core.TestRegistrant, log *logrus.Logger) ([]core.TestCase, error) {
	collector := testCaseCollector{
		testCases: make([]core.TestCase, 0),
	}

	// Run the registration function to collect the test cases.
	err := r.RegisterTestCases(&collector)
	if err != nil {
		return nil, fmt.Errorf("failed to register test cases: %w", err)
	}

	names := make(map[string]bool)
	for _, testCase := range collector.testCases {
		err := core.ValidateEntityName(testCase.Name, "test case")
		if err != nil {
			return nil, err
		}

		if names[testCase.Name] {
			log.Warnf("Test case name '%s' is registered more than once in '%s'", testCase.Name, r.Name())
		}

		names[testCase.Name] = true
	}

	return collector.testCases, nil
}

type testCaseCollector struct {
	testCases []core.TestCase
}

// RegisterTestCase implements core.TestRegistrar.
func (c *testCaseCollector) RegisterTestCase(name string, action core.TestAction) {
	c.testCases = append(c.testCases, core.TestCase{
		Name:   name,
		Action: action,
	})
}
