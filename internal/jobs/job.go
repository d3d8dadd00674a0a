// Package jobs defines the declarative job records registered in the
// analysis graph. Each analysis kind is its own struct carrying only the
// fields that kind needs; all kinds satisfy the Job interface consumed by
// the graph builder and by the external execution engine.
//
// A job never executes here. Its declared outputs are artifact paths, and a
// dependency edge exists exactly where one job's input equals another job's
// declared output.
package jobs

// Job is the contract every analysis job kind satisfies.
type Job interface {
	// Name is the graph-wide unique job name.
	Name() string
	// Inputs are the artifact paths the job consumes: either externally
	// supplied data (fastqs, reference files) or another job's output.
	Inputs() []string
	// Outputs are the artifact paths the job declares it will produce.
	Outputs() []string
	// Intermediate hints the execution engine that the outputs may be
	// reclaimed once every downstream consumer has finished.
	Intermediate() bool
}

// paths collects the non-empty entries, preserving order. Optional artifact
// fields are spelled as empty strings on job structs.
func paths(entries ...string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}
