package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metrodecomp/metrodecomp/internal/facade"
	"github.com/metrodecomp/metrodecomp/internal/graph"
)

func buildGraph(t *testing.T, source string) *graph.Graph {
	t.Helper()
	program, err := facade.Parse(source, "bundle.js")
	require.NoError(t, err)
	g, errs := graph.Build(&program)
	require.Empty(t, errs)
	return g
}

func factory(id int, deps string) string {
	return `__d(function(g, r, id, ia, module, exports, dependencyMap) {
		module.exports = 1;
	}, ` + itoa(id) + `, [` + deps + `]);`
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	if neg {
		return "-" + digits
	}
	return digits
}

func TestPropagateIgnoredSparesModuleWithLiveDependent(t *testing.T) {
	// 0 depends on 1; 1's only dependent is 0, which is not NPM and not
	// itself ignored, so 1 stays reachable and unignored here.
	source := factory(0, "1") + factory(1, "")
	g := buildGraph(t, source)
	PropagateIgnored(g)

	m1, _ := g.Get(1)
	assert.False(t, m1.Ignored, "module 1 still has a live, non-ignored dependent")
}

func TestPropagateIgnoredMarksModuleWhoseOnlyDependentIsIgnored(t *testing.T) {
	source := factory(0, "1") + factory(1, "")
	g := buildGraph(t, source)
	m0, _ := g.Get(0)
	m0.Ignore("manually ignored for the test")

	PropagateIgnored(g)

	m1, _ := g.Get(1)
	assert.True(t, m1.Ignored, "module 1's only dependent is ignored, so it should propagate")
}

func TestPropagateIgnoredSparesNpmModules(t *testing.T) {
	source := factory(0, "1") + factory(1, "")
	g := buildGraph(t, source)
	m0, _ := g.Get(0)
	m0.Ignore("manually ignored for the test")
	m1, _ := g.Get(1)
	m1.IsNpmModule = true

	PropagateIgnored(g)

	assert.False(t, m1.Ignored, "an NPM-tagged module is exempt from transitive propagation")
}

func TestPropagateIgnoredAllowsMutualDependencyCycleToPrune(t *testing.T) {
	// A and B depend on each other and have no other dependents: the
	// documented cycle case.
	source := factory(0, "1") + factory(1, "0")
	g := buildGraph(t, source)
	PropagateIgnored(g)

	m0, _ := g.Get(0)
	m1, _ := g.Get(1)
	assert.True(t, m0.Ignored)
	assert.True(t, m1.Ignored)
}

func TestPropagateIgnoredLeavesModulesWithNoDependentsAlone(t *testing.T) {
	source := factory(0, "")
	g := buildGraph(t, source)
	PropagateIgnored(g)

	m0, _ := g.Get(0)
	assert.False(t, m0.Ignored)
}

func TestRestrictToEntryClosureKeepsOnlyReachableModules(t *testing.T) {
	source := factory(0, "1") + factory(1, "") + factory(2, "")
	g := buildGraph(t, source)

	err := RestrictToEntryClosure(g, 0, false)
	require.NoError(t, err)

	assert.Equal(t, 2, g.Len())
	_, ok := g.Get(2)
	assert.False(t, ok, "module 2 is unreachable from entry 0 and should be removed")
}

func TestRestrictToEntryClosureFollowsTransitiveDependencies(t *testing.T) {
	source := factory(0, "1") + factory(1, "2") + factory(2, "")
	g := buildGraph(t, source)

	err := RestrictToEntryClosure(g, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())
}

func TestRestrictToEntryClosureReturnsMissingDependencyErrorByDefault(t *testing.T) {
	source := factory(0, "1") + factory(1, "")
	g := buildGraph(t, source)
	m1, _ := g.Get(1)
	m1.Dependencies = []int{99}

	err := RestrictToEntryClosure(g, 0, false)
	require.Error(t, err)
	var missing *MissingDependencyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, 99, missing.DependencyID)
}

func TestRestrictToEntryClosureAggressiveModeSkipsMissingDependency(t *testing.T) {
	source := factory(0, "1") + factory(1, "")
	g := buildGraph(t, source)
	m1, _ := g.Get(1)
	m1.Dependencies = []int{99}

	err := RestrictToEntryClosure(g, 0, true)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())
}

func TestRestrictToEntryClosureMissingEntryIsFatalOutsideAggressiveMode(t *testing.T) {
	source := factory(0, "")
	g := buildGraph(t, source)

	err := RestrictToEntryClosure(g, 42, false)
	require.Error(t, err)
}
