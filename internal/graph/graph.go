// Package graph implements the generic job-graph builder. Jobs register
// under unique names; there is no edge API. A dependency edge exists exactly
// where one job's declared input path equals another job's declared output
// path, so the artifact ledger and the graph topology speak the same
// vocabulary: a file path.
package graph

import (
	"fmt"
	"sort"

	"github.com/oncoseq/clinplan/internal/jobs"
)

// DuplicateJobNameError reports an attempt to register a second job under an
// existing name. Always a bug in orchestrator sequencing: a partially
// deduplicated graph is unsafe to hand to the execution engine.
type DuplicateJobNameError struct {
	JobName string
}

func (e *DuplicateJobNameError) Error() string {
	return fmt.Sprintf("job name %q is already registered in the graph", e.JobName)
}

// Graph is the finished artifact of pipeline construction: the ordered set
// of job nodes handed to the external execution engine.
type Graph struct {
	ordered []jobs.Job
	byName  map[string]jobs.Job
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{byName: make(map[string]jobs.Job)}
}

// Add registers a job node. It fails with *DuplicateJobNameError if the name
// is taken, leaving the graph exactly as it was.
func (g *Graph) Add(job jobs.Job) error {
	name := job.Name()
	if name == "" {
		return fmt.Errorf("job of type %T has an empty name", job)
	}
	if _, exists := g.byName[name]; exists {
		return &DuplicateJobNameError{JobName: name}
	}
	g.byName[name] = job
	g.ordered = append(g.ordered, job)
	return nil
}

// Jobs returns all registered jobs in registration order.
func (g *Graph) Jobs() []jobs.Job {
	return append([]jobs.Job{}, g.ordered...)
}

// Len returns the number of registered jobs.
func (g *Graph) Len() int {
	return len(g.ordered)
}

// Lookup returns the job registered under name, if any.
func (g *Graph) Lookup(name string) (jobs.Job, bool) {
	job, ok := g.byName[name]
	return job, ok
}

// Edge is one derived dependency: To consumes an artifact From produces.
type Edge struct {
	From string
	To   string
}

// producers maps every declared output path to the name of the job that
// produces it.
func (g *Graph) producers() map[string]string {
	producers := make(map[string]string)
	for _, job := range g.ordered {
		for _, out := range job.Outputs() {
			producers[out] = job.Name()
		}
	}
	return producers
}

// Edges derives the dependency edges from artifact-path equality. Multiple
// shared artifacts between the same pair of jobs collapse to one edge.
func (g *Graph) Edges() []Edge {
	producers := g.producers()

	var edges []Edge
	seen := make(map[Edge]bool)
	for _, job := range g.ordered {
		for _, in := range job.Inputs() {
			producer, ok := producers[in]
			if !ok || producer == job.Name() {
				continue
			}
			e := Edge{From: producer, To: job.Name()}
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}
	return edges
}

// ExternalInputs returns the input paths no registered job produces: the
// externally supplied data (fastqs, reference files) the graph depends on.
func (g *Graph) ExternalInputs() []string {
	producers := g.producers()

	seen := make(map[string]bool)
	var external []string
	for _, job := range g.ordered {
		for _, in := range job.Inputs() {
			if _, produced := producers[in]; produced || seen[in] {
				continue
			}
			seen[in] = true
			external = append(external, in)
		}
	}
	sort.Strings(external)
	return external
}
