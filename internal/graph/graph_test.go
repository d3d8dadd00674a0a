package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncoseq/clinplan/internal/jobs"
)

// fakeJob is a minimal Job for exercising the builder.
type fakeJob struct {
	name    string
	inputs  []string
	outputs []string
}

func (j *fakeJob) Name() string       { return j.name }
func (j *fakeJob) Inputs() []string   { return j.inputs }
func (j *fakeJob) Outputs() []string  { return j.outputs }
func (j *fakeJob) Intermediate() bool { return false }

func TestAdd(t *testing.T) {
	t.Run("registers jobs in order", func(t *testing.T) {
		g := New()
		require.NoError(t, g.Add(&fakeJob{name: "a"}))
		require.NoError(t, g.Add(&fakeJob{name: "b"}))
		assert.Equal(t, 2, g.Len())

		all := g.Jobs()
		assert.Equal(t, "a", all[0].Name())
		assert.Equal(t, "b", all[1].Name())
	})

	t.Run("duplicate name rejected, graph unchanged", func(t *testing.T) {
		g := New()
		first := &fakeJob{name: "a", outputs: []string{"/out/a.txt"}}
		require.NoError(t, g.Add(first))

		err := g.Add(&fakeJob{name: "a", outputs: []string{"/out/other.txt"}})
		var dup *DuplicateJobNameError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "a", dup.JobName)

		assert.Equal(t, 1, g.Len())
		got, ok := g.Lookup("a")
		require.True(t, ok)
		assert.Same(t, jobs.Job(first), got)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		g := New()
		assert.Error(t, g.Add(&fakeJob{}))
	})
}

func TestEdges(t *testing.T) {
	g := New()
	require.NoError(t, g.Add(&fakeJob{name: "align", inputs: []string{"/fq/r1.fastq.gz"}, outputs: []string{"/out/a.bam"}}))
	require.NoError(t, g.Add(&fakeJob{name: "dedup", inputs: []string{"/out/a.bam"}, outputs: []string{"/out/a-nodups.bam", "/out/a-metrics.txt"}}))
	require.NoError(t, g.Add(&fakeJob{name: "call", inputs: []string{"/out/a-nodups.bam", "/ref/genome.fasta"}, outputs: []string{"/out/a.vcf.gz"}}))

	assert.Equal(t, []Edge{
		{From: "align", To: "dedup"},
		{From: "dedup", To: "call"},
	}, g.Edges())

	assert.Equal(t, []string{"/fq/r1.fastq.gz", "/ref/genome.fasta"}, g.ExternalInputs())
}

func TestTopoSort(t *testing.T) {
	t.Run("producers precede consumers", func(t *testing.T) {
		g := New()
		require.NoError(t, g.Add(&fakeJob{name: "late-consumer", inputs: []string{"/x/b"}}))
		require.NoError(t, g.Add(&fakeJob{name: "mid", inputs: []string{"/x/a"}, outputs: []string{"/x/b"}}))
		require.NoError(t, g.Add(&fakeJob{name: "first", outputs: []string{"/x/a"}}))

		order, err := g.TopoSort()
		require.NoError(t, err)

		pos := make(map[string]int)
		for i, name := range order {
			pos[name] = i
		}
		assert.Less(t, pos["first"], pos["mid"])
		assert.Less(t, pos["mid"], pos["late-consumer"])
	})

	t.Run("cycle reported", func(t *testing.T) {
		g := New()
		require.NoError(t, g.Add(&fakeJob{name: "a", inputs: []string{"/x/b"}, outputs: []string{"/x/a"}}))
		require.NoError(t, g.Add(&fakeJob{name: "b", inputs: []string{"/x/a"}, outputs: []string{"/x/b"}}))

		_, err := g.TopoSort()
		assert.Error(t, err)
		assert.Error(t, g.DetectCycles())
	})
}

func TestDetectCycles(t *testing.T) {
	g := New()
	require.NoError(t, g.Add(&fakeJob{name: "a", outputs: []string{"/x/a"}}))
	require.NoError(t, g.Add(&fakeJob{name: "b", inputs: []string{"/x/a"}, outputs: []string{"/x/b"}}))
	assert.NoError(t, g.DetectCycles())
}

func TestDOT(t *testing.T) {
	g := New()
	require.NoError(t, g.Add(&fakeJob{name: "a", outputs: []string{"/x/a"}}))
	require.NoError(t, g.Add(&fakeJob{name: "b", inputs: []string{"/x/a"}}))

	dot := g.DOT()
	assert.Contains(t, dot, `"a" [label="a"]`)
	assert.Contains(t, dot, `"b" [label="b"]`)
	assert.Contains(t, dot, `"a" -> "b";`)
}
