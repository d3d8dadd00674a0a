package sample

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("list and scalar slots", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sample.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"sdid": "P-001",
			"panel": {
				"T": "P-001-T-03098849-TD1-TT1",
				"N": ["P-001-N-03098121-TD1-TT1"],
				"CFDNA": null
			},
			"wgs": {"T": [], "N": [], "CFDNA": []}
		}`), 0o644))

		set, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "P-001", set.SDID)
		assert.Equal(t, Barcodes{"P-001-T-03098849-TD1-TT1"}, set.Panel.Tumor)
		assert.Equal(t, Barcodes{"P-001-N-03098121-TD1-TT1"}, set.Panel.Normal)
		assert.Empty(t, set.Panel.CFDNA)
	})

	t.Run("missing sdid rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sample.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"panel": {}}`), 0o644))
		_, err := Load(path)
		assert.ErrorContains(t, err, "sdid")
	})
}

func TestPanelBarcodes(t *testing.T) {
	set := &Set{
		Panel: Slots{
			Tumor:  Barcodes{"t1"},
			Normal: Barcodes{"n1"},
			CFDNA:  Barcodes{"c1", "c2"},
		},
	}
	assert.Equal(t, []string{"t1", "n1", "c1", "c2"}, set.PanelBarcodes())
}

// pairFinder reports read pairs for a fixed set of barcodes.
type pairFinder map[string]bool

func (f pairFinder) FindReadPairs(barcode, libdir string) ([]string, []string) {
	if f[barcode] {
		return []string{filepath.Join(libdir, barcode, barcode + "_1.fastq.gz")},
			[]string{filepath.Join(libdir, barcode, barcode + "_2.fastq.gz")}
	}
	return nil, nil
}

func TestFilter(t *testing.T) {
	libdir := t.TempDir()
	mkLib := func(barcode string) {
		require.NoError(t, os.MkdirAll(filepath.Join(libdir, barcode), 0o755))
	}

	t.Run("drops missing dir and missing fastqs, keeps the rest", func(t *testing.T) {
		mkLib("with-data-N-001-TD1-TT1")
		mkLib("empty-T-002-TD1-TT1")

		set := &Set{
			SDID: "P-001",
			Panel: Slots{
				Normal: Barcodes{"with-data-N-001-TD1-TT1"},
				Tumor:  Barcodes{"empty-T-002-TD1-TT1", "nodir-T-003-TD1-TT1"},
			},
		}
		finder := pairFinder{"with-data-N-001-TD1-TT1": true}

		set.Filter(context.Background(), libdir, finder)

		assert.Equal(t, Barcodes{"with-data-N-001-TD1-TT1"}, set.Panel.Normal)
		assert.Empty(t, set.Panel.Tumor)
	})

	t.Run("filtering is local to the dropped barcode", func(t *testing.T) {
		mkLib("keep-N-010-TD1-TT1")
		mkLib("keep-T-011-TD1-TT1")

		set := &Set{
			SDID: "P-002",
			Panel: Slots{
				Normal: Barcodes{"keep-N-010-TD1-TT1"},
				Tumor:  Barcodes{"keep-T-011-TD1-TT1", "gone-T-012-TD1-TT1"},
			},
		}
		finder := pairFinder{"keep-N-010-TD1-TT1": true, "keep-T-011-TD1-TT1": true}

		set.Filter(context.Background(), libdir, finder)

		assert.Equal(t, Barcodes{"keep-N-010-TD1-TT1"}, set.Panel.Normal)
		assert.Equal(t, Barcodes{"keep-T-011-TD1-TT1"}, set.Panel.Tumor)
	})
}

func TestDirFinder(t *testing.T) {
	libdir := t.TempDir()
	dir := filepath.Join(libdir, "lib-N-001-TD1-TT1")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, name := range []string{"lane1_1.fastq.gz", "lane1_2.fastq.gz", "lane2_R1_001.fastq.gz", "lane2_R2_001.fastq.gz"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	fq1, fq2 := DirFinder{}.FindReadPairs("lib-N-001-TD1-TT1", libdir)
	assert.Len(t, fq1, 2)
	assert.Len(t, fq2, 2)

	fq1, fq2 = DirFinder{}.FindReadPairs("absent-N-002-TD1-TT1", libdir)
	assert.Empty(t, fq1)
	assert.Empty(t, fq2)
}
