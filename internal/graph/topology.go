package graph

import (
	"fmt"
)

// DetectCycles checks the derived dependency graph for cycles. A cycle means
// an orchestrator wired an artifact back into its own lineage; the graph
// must not be handed to the execution engine.
func (g *Graph) DetectCycles() error {
	dependents := make(map[string][]string)
	for _, e := range g.Edges() {
		dependents[e.From] = append(dependents[e.From], e.To)
	}

	// Classic depth-first search with permanent and temporary marks.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(name string) error
	visit = func(name string) error {
		if permanent[name] {
			return nil
		}
		if temporary[name] {
			return fmt.Errorf("cycle detected involving job %q", name)
		}
		temporary[name] = true
		for _, dep := range dependents[name] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		delete(temporary, name)
		permanent[name] = true
		return nil
	}

	for _, job := range g.ordered {
		if !permanent[job.Name()] {
			if err := visit(job.Name()); err != nil {
				return err
			}
		}
	}
	return nil
}

// TopoSort returns all job names ordered so that every producer precedes its
// consumers. Registration order breaks ties, so the result is deterministic.
func (g *Graph) TopoSort() ([]string, error) {
	indegree := make(map[string]int, len(g.ordered))
	dependents := make(map[string][]string)
	for _, job := range g.ordered {
		indegree[job.Name()] = 0
	}
	for _, e := range g.Edges() {
		indegree[e.To]++
		dependents[e.From] = append(dependents[e.From], e.To)
	}

	// Kahn's algorithm over a queue seeded in registration order.
	var queue []string
	for _, job := range g.ordered {
		if indegree[job.Name()] == 0 {
			queue = append(queue, job.Name())
		}
	}

	sorted := make([]string, 0, len(g.ordered))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		sorted = append(sorted, name)
		for _, dep := range dependents[name] {
			indegree[dep]--
			if indegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(sorted) != len(g.ordered) {
		return nil, fmt.Errorf("topological sort impossible: graph has a cycle")
	}
	return sorted, nil
}
