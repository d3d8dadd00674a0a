package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/oncoseq/clinplan/internal/capture"
	"github.com/oncoseq/clinplan/internal/jobs"
)

// configureAllPanelQCs configures the alignment-level QC battery for every
// unique capture.
func (p *Clinseq) configureAllPanelQCs(ctx context.Context) error {
	for _, c := range p.uniqueCaptures() {
		if err := p.configurePanelQC(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// configurePanelQC configures the six QC jobs for one capture's final
// alignment and records the coverage verdict in the ledger.
func (p *Clinseq) configurePanelQC(ctx context.Context, c capture.Capture) error {
	targets, err := p.targetsForCapture(c)
	if err != nil {
		return err
	}
	kitName, err := capture.CaptureKitName(c.CaptureKit)
	if err != nil {
		return err
	}
	captureStr := c.String()
	bam := p.results.Single(c).MergedBam

	isize := &jobs.CollectInsertSizeMetrics{
		JobName:       fmt.Sprintf("picard-isize-%s", captureStr),
		InputBam:      bam,
		OutputMetrics: fmt.Sprintf("%s/qc/picard/panel/%s.picard-insertsize.txt", p.opts.Outdir, captureStr),
	}
	if err := p.add(ctx, isize); err != nil {
		return err
	}

	oxog := &jobs.CollectOxoGMetrics{
		JobName:           fmt.Sprintf("picard-oxog-%s", captureStr),
		InputBam:          bam,
		ReferenceSequence: p.refdata.ReferenceGenome,
		OutputMetrics:     fmt.Sprintf("%s/qc/picard/panel/%s.picard-oxog.txt", p.opts.Outdir, captureStr),
	}
	if err := p.add(ctx, oxog); err != nil {
		return err
	}

	hsmetrics := &jobs.CollectHsMetrics{
		JobName:           fmt.Sprintf("picard-hsmetrics-%s", captureStr),
		InputBam:          bam,
		ReferenceSequence: p.refdata.ReferenceGenome,
		TargetRegions:     targets.TargetsIntervalList,
		BaitRegions:       targets.TargetsIntervalList,
		BaitName:          kitName,
		OutputMetrics:     fmt.Sprintf("%s/qc/picard/panel/%s.picard-hsmetrics.txt", p.opts.Outdir, captureStr),
	}
	if err := p.add(ctx, hsmetrics); err != nil {
		return err
	}

	depth := &jobs.SambambaDepth{
		JobName:    fmt.Sprintf("sambamba-depth-%s", captureStr),
		InputBam:   bam,
		TargetsBED: targets.TargetsBED,
		Output:     fmt.Sprintf("%s/qc/sambamba/%s.sambamba-depth-targets.txt", p.opts.Outdir, captureStr),
	}
	if err := p.add(ctx, depth); err != nil {
		return err
	}

	histogram := &jobs.CoverageHistogram{
		JobName:  fmt.Sprintf("alascca-coverage-hist/%s", captureStr),
		InputBam: bam,
		InputBED: targets.TargetsBED,
		Output:   fmt.Sprintf("%s/qc/%s.coverage-histogram.txt", p.opts.Outdir, captureStr),
	}
	if err := p.add(ctx, histogram); err != nil {
		return err
	}

	covCall := &jobs.CoverageCaveat{
		JobName:        fmt.Sprintf("coverage-qc-call/%s", captureStr),
		InputHistogram: histogram.Output,
		Output:         fmt.Sprintf("%s/qc/%s.coverage-qc-call.json", p.opts.Outdir, captureStr),
	}
	if err := p.add(ctx, covCall); err != nil {
		return err
	}
	if err := p.results.SetCovQCCall(c, covCall.Output); err != nil {
		return err
	}

	p.qcFiles = append(p.qcFiles,
		isize.OutputMetrics, oxog.OutputMetrics, hsmetrics.OutputMetrics,
		depth.Output, histogram.Output, covCall.Output)
	return nil
}

// configureFastqQCs configures FastQC for every read file backing the
// filtered panel barcodes.
func (p *Clinseq) configureFastqQCs(ctx context.Context) error {
	finder := p.opts.finder()
	outDir := fmt.Sprintf("%s/qc/fastqc", p.opts.Outdir)

	for _, barcode := range p.sampleData.PanelBarcodes() {
		fq1, fq2 := finder.FindReadPairs(barcode, p.opts.Libdir)
		for _, fq := range append(append([]string{}, fq1...), fq2...) {
			base := strings.TrimSuffix(filepath.Base(fq), ".fastq.gz")
			fastqc := &jobs.FastQC{
				JobName: fmt.Sprintf("fastqc-%s", base),
				Input:   fq,
				OutDir:  outDir,
				Output:  fmt.Sprintf("%s/%s_fastqc.zip", outDir, base),
			}
			if err := p.add(ctx, fastqc); err != nil {
				return err
			}
			p.qcFiles = append(p.qcFiles, fastqc.Output)
		}
	}
	return nil
}

// configureMultiQC configures the study-wide QC aggregation. It must run
// after every other QC job so that p.qcFiles is complete.
func (p *Clinseq) configureMultiQC(ctx context.Context) error {
	multiqc := &jobs.MultiQC{
		JobName:    fmt.Sprintf("multiqc-%s", p.sampleData.SDID),
		InputFiles: append([]string{}, p.qcFiles...),
		SearchDir:  p.opts.Outdir,
		Output:     fmt.Sprintf("%s/multiqc/%s-multiqc", p.opts.Outdir, p.sampleData.SDID),
	}
	return p.add(ctx, multiqc)
}
