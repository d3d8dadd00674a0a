// Package pipeline implements the orchestrators that expand a patient's
// sample description into the complete analysis job graph: generic panel
// analysis, per-capture QC, and the ALASCCA report specialization.
//
// Construction is one synchronous pass. Orchestrator methods run in a fixed
// order so that every ledger field is written before any later method reads
// it; no job is executed and no file is written here.
package pipeline

import (
	"context"
	"fmt"

	"github.com/oncoseq/clinplan/internal/capture"
	"github.com/oncoseq/clinplan/internal/ctxlog"
	"github.com/oncoseq/clinplan/internal/graph"
	"github.com/oncoseq/clinplan/internal/jobs"
	"github.com/oncoseq/clinplan/internal/ledger"
	"github.com/oncoseq/clinplan/internal/refdata"
	"github.com/oncoseq/clinplan/internal/sample"
)

// Options carries the per-analysis settings shared by all pipelines.
type Options struct {
	Outdir     string
	Libdir     string
	AnalysisID string
	MaxCores   int
	Scratch    string
	// Finder locates read pairs during sample validation and alignment
	// configuration. Defaults to sample.DirFinder.
	Finder sample.FastqFinder
}

// finder returns the configured FastqFinder or the default.
func (o Options) finder() sample.FastqFinder {
	if o.Finder != nil {
		return o.Finder
	}
	return sample.DirFinder{}
}

// Clinseq is the generic panel-analysis pipeline: alignment and merging per
// unique capture, copy-number calling per cancer capture, germline calling
// per normal capture, the (normal, cancer) pairing fan-out, and QC.
type Clinseq struct {
	sampleData *sample.Set
	refdata    *refdata.Bundle
	opts       Options

	graph   *graph.Graph
	results *ledger.Ledger
	qcFiles []string

	// captures holds the unique capture index in first-seen order;
	// captureBarcodes maps each capture to its backing barcodes.
	captures        []capture.Capture
	captureBarcodes map[capture.Capture][]string
}

// NewClinseq creates a generic panel pipeline. Nothing is configured until
// Build runs.
func NewClinseq(sampleData *sample.Set, bundle *refdata.Bundle, opts Options) *Clinseq {
	return &Clinseq{
		sampleData:      sampleData,
		refdata:         bundle,
		opts:            opts,
		graph:           graph.New(),
		results:         ledger.New(),
		captureBarcodes: make(map[capture.Capture][]string),
	}
}

// Graph returns the job graph built so far.
func (p *Clinseq) Graph() *graph.Graph {
	return p.graph
}

// Ledger returns the results ledger.
func (p *Clinseq) Ledger() *ledger.Ledger {
	return p.results
}

// Build runs the whole configuration pass for a generic panel analysis and
// returns the finished graph. Any error aborts the pass; a partially built
// graph must not be used.
func (p *Clinseq) Build(ctx context.Context) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)

	p.sampleData.Filter(ctx, p.opts.Libdir, p.opts.finder())

	if err := p.indexCaptures(ctx); err != nil {
		return nil, err
	}
	if err := p.verifyReferenceData(); err != nil {
		return nil, err
	}

	if err := p.configurePanelAnalyses(ctx); err != nil {
		return nil, err
	}
	if err := p.configureAllPanelQCs(ctx); err != nil {
		return nil, err
	}
	if err := p.configureFastqQCs(ctx); err != nil {
		return nil, err
	}
	if err := p.configureMultiQC(ctx); err != nil {
		return nil, err
	}

	if err := p.graph.DetectCycles(); err != nil {
		return nil, fmt.Errorf("validating job graph: %w", err)
	}
	logger.Info("Panel job graph built.", "sdid", p.sampleData.SDID, "jobs", p.graph.Len())
	return p.graph, nil
}

// indexCaptures groups the filtered panel barcodes by unique capture.
// Multiple barcodes (library preps) may collapse onto one capture; each
// distinct capture appears exactly once in the index.
func (p *Clinseq) indexCaptures(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for _, barcode := range p.sampleData.PanelBarcodes() {
		c, err := capture.Parse(barcode)
		if err != nil {
			return err
		}
		if _, seen := p.captureBarcodes[c]; !seen {
			p.captures = append(p.captures, c)
		}
		p.captureBarcodes[c] = append(p.captureBarcodes[c], barcode)
	}
	logger.Debug("Capture index built.", "unique_captures", len(p.captures))
	return nil
}

// uniqueCaptures returns all indexed captures in first-seen order.
func (p *Clinseq) uniqueCaptures() []capture.Capture {
	return p.captures
}

// normalCaptures returns the indexed normal captures.
func (p *Clinseq) normalCaptures() []capture.Capture {
	var normals []capture.Capture
	for _, c := range p.captures {
		if c.SampleType == capture.Normal {
			normals = append(normals, c)
		}
	}
	return normals
}

// cancerCaptures returns the indexed non-normal (tumor and cfDNA) captures.
func (p *Clinseq) cancerCaptures() []capture.Capture {
	var cancers []capture.Capture
	for _, c := range p.captures {
		if c.SampleType != capture.Normal {
			cancers = append(cancers, c)
		}
	}
	return cancers
}

// captureKitNames resolves the distinct capture kit names in use.
func (p *Clinseq) captureKitNames() ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, c := range p.captures {
		name, err := capture.CaptureKitName(c.CaptureKit)
		if err != nil {
			return nil, err
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names, nil
}

// targetsForCapture resolves a capture's reference target set.
func (p *Clinseq) targetsForCapture(c capture.Capture) (refdata.TargetSet, error) {
	kitName, err := capture.CaptureKitName(c.CaptureKit)
	if err != nil {
		return refdata.TargetSet{}, err
	}
	return p.refdata.ForKit(kitName)
}

// verifyReferenceData gates construction on the reference bundle: every
// capture kit in use must resolve its required keys before the first job is
// registered. The policy is whole-cohort abort; there is no per-kit partial
// graph.
func (p *Clinseq) verifyReferenceData() error {
	kits, err := p.captureKitNames()
	if err != nil {
		return err
	}
	paired := len(p.normalCaptures()) > 0 && len(p.cancerCaptures()) > 0
	return p.refdata.Verify(kits, refdata.VerifyOptions{NeedMSI: paired})
}

// add registers a job and logs it. Registration failures are orchestrator
// bugs and abort the pass.
func (p *Clinseq) add(ctx context.Context, job jobs.Job) error {
	if err := p.graph.Add(job); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Configured job.", "job", job.Name())
	return nil
}
