package sample

import (
	"context"
	"os"
	"path/filepath"

	"github.com/oncoseq/clinplan/internal/ctxlog"
)

// Filter drops every barcode whose library directory does not exist or
// yields no discoverable read pairs. Absent data is not an error: the slot
// simply shrinks, and downstream capture sets derive from what remains.
// Filter must run exactly once, before any job is configured.
func (s *Set) Filter(ctx context.Context, libdir string, finder FastqFinder) {
	logger := ctxlog.FromContext(ctx)

	filterSlots := func(datatype string, slots *Slots) {
		slots.Normal = keepWithData(ctx, slots.Normal, libdir, finder)
		slots.Tumor = keepWithData(ctx, slots.Tumor, libdir, finder)
		slots.CFDNA = keepWithData(ctx, slots.CFDNA, libdir, finder)
		logger.Debug("Sample data filtered.", "datatype", datatype,
			"normal", len(slots.Normal), "tumor", len(slots.Tumor), "cfdna", len(slots.CFDNA))
	}

	filterSlots("panel", &s.Panel)
	filterSlots("wgs", &s.WGS)
}

// keepWithData returns the barcodes that have a backing library directory
// and at least one read pair, logging each drop.
func keepWithData(ctx context.Context, barcodes Barcodes, libdir string, finder FastqFinder) Barcodes {
	logger := ctxlog.FromContext(ctx)

	var kept Barcodes
	for _, barcode := range barcodes {
		if barcode == "" {
			continue
		}
		dir := filepath.Join(libdir, barcode)
		if _, err := os.Stat(dir); err != nil {
			logger.Warn("Library directory does not exist, not using library.", "barcode", barcode, "dir", dir)
			continue
		}
		fq1, fq2 := finder.FindReadPairs(barcode, libdir)
		if len(fq1) == 0 && len(fq2) == 0 {
			logger.Warn("No fastq files found for library.", "barcode", barcode, "dir", dir)
			continue
		}
		logger.Debug("Library has data, using it.", "barcode", barcode)
		kept = append(kept, barcode)
	}
	return kept
}
