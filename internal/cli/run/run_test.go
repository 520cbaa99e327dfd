package run

import (
	"testing"

	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(names ...string) *core.Registry {
	registry := core.NewRegistry()
	tests := make([]core.TestCase, 0, len(names))
	for _, name := range names {
		tests = append(tests, core.TestCase{Name: name, Action: func() error { return nil }})
	}
	registry.Set(tests)
	return registry
}

func TestSelectTestsKeepsOrder(t *testing.T) {
	registry := newRegistry("a", "b", "c")

	require.NoError(t, selectTests(registry, []string{"c", "a"}))
	assert.Equal(t, []string{"a", "c"}, registry.Names())
}

func TestSelectTestsNoNames(t *testing.T) {
	registry := newRegistry("a", "b")

	require.NoError(t, selectTests(registry, nil))
	assert.Equal(t, []string{"a", "b"}, registry.Names())
}

func TestSelectTestsUnknown(t *testing.T) {
	registry := newRegistry("a", "b")

	err := selectTests(registry, []string{"z", "a", "y"})
	require.Error(t, err)
	assert.Equal(t, "unknown tests: [y z]", err.Error())
	assert.Equal(t, []string{"a", "b"}, registry.Names())
}
