// Package ignore implements the transitive-ignore fixed-point and the
// entry-closure reachability trim.
package ignore

import (
	"fmt"

	"github.com/metrodecomp/metrodecomp/internal/graph"
)

// MissingDependencyError is fatal in non-aggressive entry mode when a
// reachable module's dependency isn't present in the graph.
type MissingDependencyError struct {
	ModuleID     int
	DependencyID int
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("module %d depends on missing module %d", e.ModuleID, e.DependencyID)
}

// PropagateIgnored runs the transitive-ignore fixed point: repeatedly
// marks as ignored every non-ignored, non-NPM module whose every reverse
// dependent is either already ignored or is also depended on by the
// module itself (the cycle case documented on isIgnorableCycle).
func PropagateIgnored(g *graph.Graph) {
	modules := g.All()

	reverseDeps := make(map[int][]int, len(modules))
	for _, m := range modules {
		for _, depID := range m.Dependencies {
			if depID < 0 {
				continue
			}
			reverseDeps[depID] = append(reverseDeps[depID], m.ID)
		}
	}

	for {
		changed := false
		for _, m := range modules {
			if m.Ignored || m.IsNpmModule {
				continue
			}
			dependents := reverseDeps[m.ID]
			if len(dependents) == 0 {
				continue
			}
			if isIgnorableCycle(g, m.ID, dependents) {
				m.Ignore("transitive: all reverse dependents ignored or self-dependent")
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// isIgnorableCycle reports whether every id in dependents is either an
// already-ignored module or one of moduleID's own dependencies.
//
// A module whose consumers are themselves the module's own dependencies
// is considered ignorable, which admits mutual-recursion pairs (A and B
// depend on each other and nothing else depends on either) being pruned
// together even though neither is NPM and neither was independently
// unreachable.
func isIgnorableCycle(g *graph.Graph, moduleID int, dependents []int) bool {
	self, ok := g.Get(moduleID)
	if !ok {
		return false
	}
	isOwnDependency := make(map[int]bool, len(self.Dependencies))
	for _, d := range self.Dependencies {
		isOwnDependency[d] = true
	}

	for _, depID := range dependents {
		dependent, ok := g.Get(depID)
		if !ok {
			continue
		}
		if dependent.Ignored {
			continue
		}
		if isOwnDependency[depID] {
			continue
		}
		return false
	}
	return true
}

// RestrictToEntryClosure computes the set of modules reachable from entry
// through Dependencies (transitive closure, worklist to fixed point) and
// removes everything else from the graph. In aggressive
// mode a missing dependency is silently skipped; otherwise it is a fatal
// *MissingDependencyError.
func RestrictToEntryClosure(g *graph.Graph, entry int, aggressive bool) error {
	reachable := map[int]bool{}
	worklist := []int{entry}

	for len(worklist) > 0 {
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if reachable[id] {
			continue
		}
		m, ok := g.Get(id)
		if !ok {
			if aggressive {
				continue
			}
			return &MissingDependencyError{ModuleID: id, DependencyID: id}
		}
		reachable[id] = true
		for _, depID := range m.Dependencies {
			if depID < 0 {
				continue
			}
			if _, ok := g.Get(depID); !ok {
				if aggressive {
					continue
				}
				return &MissingDependencyError{ModuleID: id, DependencyID: depID}
			}
			if !reachable[depID] {
				worklist = append(worklist, depID)
			}
		}
	}

	for _, m := range g.All() {
		if !reachable[m.ID] {
			g.Delete(m.ID)
		}
	}
	return nil
}
