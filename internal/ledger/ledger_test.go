package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncoseq/clinplan/internal/capture"
)

var (
	normal = capture.Capture{SampleType: capture.Normal, SampleID: "001", LibraryKit: "TD", CaptureKit: "TT"}
	tumor  = capture.Capture{SampleType: capture.Tumor, SampleID: "002", LibraryKit: "TD", CaptureKit: "TT"}
)

func TestSingleAutoVivify(t *testing.T) {
	l := New()

	first := l.Single(normal)
	require.NotNil(t, first)
	assert.Empty(t, first.MergedBam)

	// Same key yields the same record.
	assert.Same(t, first, l.Single(normal))
	assert.Len(t, l.Captures(), 1)

	// Distinct key yields a distinct record.
	assert.NotSame(t, first, l.Single(tumor))
	assert.Len(t, l.Captures(), 2)
}

func TestPairResultsOrderedIdentity(t *testing.T) {
	l := New()

	nc := l.PairResults(Pair{Normal: normal, Cancer: tumor})
	cn := l.PairResults(Pair{Normal: tumor, Cancer: normal})

	// Pair identity is the ordered tuple; reversed pairs are distinct
	// entries. The orchestrators only ever construct (normal, cancer).
	assert.NotSame(t, nc, cn)
}

func TestSingleAssignment(t *testing.T) {
	t.Run("capture fields", func(t *testing.T) {
		l := New()
		require.NoError(t, l.SetMergedBam(normal, "/out/bams/panel/N-001-TD-TT-nodups.bam"))

		err := l.SetMergedBam(normal, "/out/bams/panel/other.bam")
		var dup *DuplicateAssignmentError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "merged bam", dup.Field)

		// First assignment survives.
		assert.Equal(t, "/out/bams/panel/N-001-TD-TT-nodups.bam", l.Single(normal).MergedBam)

		// Other fields are independent.
		require.NoError(t, l.SetCNR(normal, "/out/cnv/N-001-TD-TT.cnr"))
		require.NoError(t, l.SetCNS(normal, "/out/cnv/N-001-TD-TT.cns"))
		require.NoError(t, l.SetCovQCCall(normal, "/out/qc/N-001-TD-TT.coverage-qc-call.json"))
	})

	t.Run("pair fields", func(t *testing.T) {
		l := New()
		p := Pair{Normal: normal, Cancer: tumor}
		require.NoError(t, l.SetSomaticVCF(p, "/out/variants/somatic.vcf.gz"))

		err := l.SetSomaticVCF(p, "/out/variants/other.vcf.gz")
		var dup *DuplicateAssignmentError
		require.ErrorAs(t, err, &dup)

		require.NoError(t, l.SetMSIOutput(p, "/out/msi/msi.tsv"))
		require.NoError(t, l.SetHZConcordanceOutput(p, "/out/bams/hz.txt"))
		require.NoError(t, l.SetVcfAddSampleOutput(p, "/out/variants/addsample.vcf.gz"))
		require.NoError(t, l.SetNormalContestOutput(p, "/out/contamination/n.txt"))
		require.NoError(t, l.SetCancerContestOutput(p, "/out/contamination/c.txt"))
		require.NoError(t, l.SetCancerContamCall(p, "/out/qc/contam.json"))
	})
}

func TestGermlineVCF(t *testing.T) {
	l := New()
	assert.Empty(t, l.GermlineVCF(normal))

	require.NoError(t, l.SetGermlineVCF(normal, "/out/variants/001-TD-TT.freebayes-germline.vcf.gz"))
	assert.Equal(t, "/out/variants/001-TD-TT.freebayes-germline.vcf.gz", l.GermlineVCF(normal))

	err := l.SetGermlineVCF(normal, "/out/variants/another.vcf.gz")
	var dup *DuplicateAssignmentError
	require.ErrorAs(t, err, &dup)
}
