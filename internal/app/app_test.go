package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncoseq/clinplan/internal/jobdb"
)

const (
	testNormalBarcode = "AL-P-NA12877-N-03098849-TD1-TT1"
	testTumorBarcode  = "AL-P-NA12877-T-03098850-TD1-TT1"
)

// writeFixtures lays out a full planning input set on disk: a sample
// description, a reference bundle, and library directories with fastq files
// the default finder discovers.
func writeFixtures(t *testing.T) (samplePath, refPath, libdir string) {
	t.Helper()
	dir := t.TempDir()

	samplePath = filepath.Join(dir, "sample.json")
	sampleJSON := fmt.Sprintf(`{
		"sdid": "P-NA12877",
		"panel": {"T": %q, "N": %q, "CFDNA": null},
		"wgs": {"T": null, "N": null, "CFDNA": null}
	}`, testTumorBarcode, testNormalBarcode)
	require.NoError(t, os.WriteFile(samplePath, []byte(sampleJSON), 0o644))

	refPath = filepath.Join(dir, "refdata.hcl")
	refHCL := `
reference_genome = "/ref/genome.fasta"
bwa_index        = "/ref/genome.fasta.bwt"
chrsizes         = "/ref/genome.chrsizes.txt"
swegene_common   = "/ref/swegene_common.vcf.gz"

targets = {
  "test-regions" = {
    "targets-bed-slopped20"           = "/ref/targets/test-regions.slopped20.bed"
    "targets-interval_list-slopped20" = "/ref/targets/test-regions.slopped20.interval_list"
    "msisites"                        = "/ref/targets/test-regions.msisites.tsv"
  }
}
`
	require.NoError(t, os.WriteFile(refPath, []byte(refHCL), 0o644))

	libdir = filepath.Join(dir, "libraries")
	for _, barcode := range []string{testNormalBarcode, testTumorBarcode} {
		bdir := filepath.Join(libdir, barcode)
		require.NoError(t, os.MkdirAll(bdir, 0o755))
		for _, read := range []string{"_1", "_2"} {
			fq := filepath.Join(bdir, barcode+read+".fastq.gz")
			require.NoError(t, os.WriteFile(fq, nil, 0o644))
		}
	}
	return samplePath, refPath, libdir
}

func TestRunPanel(t *testing.T) {
	samplePath, refPath, libdir := writeFixtures(t)
	outdir := t.TempDir()

	config := &Config{
		SamplePath:  samplePath,
		RefdataPath: refPath,
		Outdir:      filepath.Join(outdir, "analysis"),
		Libdir:      libdir,
		AnalysisID:  "analysis-1",
		JobDBPath:   filepath.Join(outdir, "jobs.db"),
		DOTPath:     filepath.Join(outdir, "graph.dot"),
		LogLevel:    "debug",
	}

	a, err := New(io.Discard, config)
	require.NoError(t, err)
	require.NoError(t, a.RunPanel(context.Background()))

	t.Run("DOT rendering written", func(t *testing.T) {
		dot, err := os.ReadFile(config.DOTPath)
		require.NoError(t, err)
		assert.Contains(t, string(dot), "bwa-mem-"+testNormalBarcode)
	})

	t.Run("job database persisted in topological order", func(t *testing.T) {
		db, err := jobdb.Open(context.Background(), config.JobDBPath)
		require.NoError(t, err)
		defer db.Close()

		records, err := db.Jobs(context.Background())
		require.NoError(t, err)
		require.NotEmpty(t, records)
		assert.Equal(t, jobdb.StatusPending, records[0].Status)

		position := make(map[string]int, len(records))
		for _, rec := range records {
			position[rec.Name] = rec.Position
		}
		assert.Less(t, position["bwa-mem-"+testNormalBarcode], position["picard-mergebams-N-03098849"])
	})
}

func TestRunAlascca(t *testing.T) {
	samplePath, refPath, libdir := writeFixtures(t)
	outdir := t.TempDir()

	config := &Config{
		SamplePath:     samplePath,
		RefdataPath:    refPath,
		Outdir:         filepath.Join(outdir, "analysis"),
		Libdir:         libdir,
		JobDBPath:      filepath.Join(outdir, "jobs.db"),
		ReferralDBConf: filepath.Join(outdir, "referral-db.json"),
		Addresses:      filepath.Join(outdir, "addresses.csv"),
		LogLevel:       "warn",
	}

	a, err := New(io.Discard, config)
	require.NoError(t, err)
	require.NoError(t, a.RunAlascca(context.Background()))

	db, err := jobdb.Open(context.Background(), config.JobDBPath)
	require.NoError(t, err)
	defer db.Close()

	records, err := db.Jobs(context.Background())
	require.NoError(t, err)

	position := make(map[string]int, len(records))
	for _, rec := range records {
		position[rec.Name] = rec.Position
	}
	require.Contains(t, position, "write-alascca-report/03098850-03098849")
	require.Contains(t, position, "multiqc-P-NA12877")
	assert.Less(t, position["compile-genomic/03098850-03098849"],
		position["write-alascca-report/03098850-03098849"])
}

func TestNewRejectsIncompleteConfig(t *testing.T) {
	_, err := New(io.Discard, &Config{})
	assert.Error(t, err)
}
