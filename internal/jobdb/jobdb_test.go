package jobdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncoseq/clinplan/internal/graph"
)

type fakeJob struct {
	name         string
	inputs       []string
	outputs      []string
	intermediate bool
}

func (j *fakeJob) Name() string       { return j.name }
func (j *fakeJob) Inputs() []string   { return j.inputs }
func (j *fakeJob) Outputs() []string  { return j.outputs }
func (j *fakeJob) Intermediate() bool { return j.intermediate }

func TestSaveGraph(t *testing.T) {
	ctx := context.Background()

	g := graph.New()
	// Registered out of dependency order on purpose; persistence is
	// topological.
	require.NoError(t, g.Add(&fakeJob{
		name:    "markdups",
		inputs:  []string{"/out/merged.bam"},
		outputs: []string{"/out/nodups.bam"},
	}))
	require.NoError(t, g.Add(&fakeJob{
		name:         "align",
		inputs:       []string{"/lib/reads_1.fastq.gz"},
		outputs:      []string{"/out/aligned.bam"},
		intermediate: true,
	}))
	require.NoError(t, g.Add(&fakeJob{
		name:         "merge",
		inputs:       []string{"/out/aligned.bam"},
		outputs:      []string{"/out/merged.bam"},
		intermediate: true,
	}))

	db, err := Open(ctx, filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.SaveGraph(ctx, "analysis-1", "P-TEST", g))

	records, err := db.Jobs(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"align", "merge", "markdups"},
		[]string{records[0].Name, records[1].Name, records[2].Name})
	for _, rec := range records {
		assert.Equal(t, StatusPending, rec.Status)
	}
	assert.True(t, records[0].Intermediate)
	assert.False(t, records[2].Intermediate)
	assert.Equal(t, []string{"/out/merged.bam"}, records[2].Inputs)
}

func TestSaveGraphReplacesPreviousContent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "jobs.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	g1 := graph.New()
	require.NoError(t, g1.Add(&fakeJob{name: "old", outputs: []string{"/out/a"}}))
	require.NoError(t, db.SaveGraph(ctx, "analysis-1", "P-TEST", g1))

	g2 := graph.New()
	require.NoError(t, g2.Add(&fakeJob{name: "new", outputs: []string{"/out/b"}}))
	require.NoError(t, db.SaveGraph(ctx, "analysis-2", "P-TEST", g2))

	records, err := db.Jobs(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "new", records[0].Name)
}
