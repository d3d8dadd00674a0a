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

// InvalidCohortShapeError reports a sample cohort that the ALASCCA report
// cannot be generated for. The report chain requires exactly one blood
// (normal) capture and exactly one tumor capture, and nothing else.
type InvalidCohortShapeError struct {
	Normals int
	Tumors  int
	CFDNAs  int
}

func (e *InvalidCohortShapeError) Error() string {
	return fmt.Sprintf(
		"ALASCCA requires exactly one normal and one tumor capture, got %d normal, %d tumor, %d cfDNA",
		e.Normals, e.Tumors, e.CFDNAs)
}

// AlasccaOptions extends the shared pipeline options with the report-chain
// inputs that only the ALASCCA study uses.
type AlasccaOptions struct {
	Options
	// ReferralDBConf points at the referral database configuration consumed
	// by metadata compilation; Addresses at the clinic address table.
	ReferralDBConf string
	Addresses      string
}

// Alascca is the ALASCCA study specialization of the panel pipeline. On top
// of the generic panel analyses and QC it configures the clinical report
// chain for the study's fixed one-blood-one-tumor cohort.
type Alascca struct {
	*Clinseq
	alasccaOpts AlasccaOptions
}

// NewAlascca creates an ALASCCA pipeline. Nothing is configured until Build
// runs.
func NewAlascca(sampleData *sample.Set, bundle *refdata.Bundle, opts AlasccaOptions) *Alascca {
	return &Alascca{
		Clinseq:     NewClinseq(sampleData, bundle, opts.Options),
		alasccaOpts: opts,
	}
}

// Build runs the whole configuration pass for an ALASCCA analysis. The
// cohort shape is validated before any job is registered, and the QC battery
// is configured before the report chain so that the coverage and
// contamination verdicts it consumes are already on the ledger.
func (p *Alascca) Build(ctx context.Context) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)

	p.sampleData.Filter(ctx, p.opts.Libdir, p.opts.finder())

	if err := p.indexCaptures(ctx); err != nil {
		return nil, err
	}
	normal, tumor, err := p.cohortPair()
	if err != nil {
		return nil, err
	}
	if err := p.verifyAlasccaReferenceData(); err != nil {
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
	if err := p.configureAlasccaReport(ctx, normal, tumor); err != nil {
		return nil, err
	}
	if err := p.configureMultiQC(ctx); err != nil {
		return nil, err
	}

	if err := p.graph.DetectCycles(); err != nil {
		return nil, fmt.Errorf("validating job graph: %w", err)
	}
	logger.Info("ALASCCA job graph built.", "sdid", p.sampleData.SDID, "jobs", p.graph.Len())
	return p.graph, nil
}

// cohortPair validates the cohort shape and returns its single (normal,
// tumor) capture pair.
func (p *Alascca) cohortPair() (normal, tumor capture.Capture, err error) {
	var normals, tumors, cfdnas []capture.Capture
	for _, c := range p.uniqueCaptures() {
		switch c.SampleType {
		case capture.Normal:
			normals = append(normals, c)
		case capture.Tumor:
			tumors = append(tumors, c)
		case capture.CFDNA:
			cfdnas = append(cfdnas, c)
		}
	}
	if len(normals) != 1 || len(tumors) != 1 || len(cfdnas) != 0 {
		return capture.Capture{}, capture.Capture{}, &InvalidCohortShapeError{
			Normals: len(normals),
			Tumors:  len(tumors),
			CFDNAs:  len(cfdnas),
		}
	}
	return normals[0], tumors[0], nil
}

// verifyAlasccaReferenceData extends the generic gate with the keys only the
// report chain needs. The cohort is always paired here, so MSI sites are
// always required.
func (p *Alascca) verifyAlasccaReferenceData() error {
	kits, err := p.captureKitNames()
	if err != nil {
		return err
	}
	return p.refdata.Verify(kits, refdata.VerifyOptions{NeedMSI: true, NeedChrsizes: true})
}

// configureAlasccaReport configures the four-job report chain: copy-number
// and purity estimation, referral metadata compilation, genomic findings
// compilation, and the report PDF itself.
func (p *Alascca) configureAlasccaReport(ctx context.Context, normal, tumor capture.Capture) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Configuring ALASCCA report chain.", "normal", normal.String(), "tumor", tumor.String())

	pair := ledger.Pair{Normal: normal, Cancer: tumor}
	pairResults := p.results.PairResults(pair)
	tumorResults := p.results.Single(tumor)
	tumorStr := tumor.String()

	cnaPlot := &jobs.AlasccaCNAPlot{
		JobName:          fmt.Sprintf("alascca-cna/%s", tumorStr),
		InputSomaticVCF:  pairResults.SomaticVCF,
		InputGermlineVCF: pairResults.VcfAddSampleOutput,
		InputCNR:         tumorResults.CNR,
		InputCNS:         tumorResults.CNS,
		Chrsizes:         p.refdata.Chrsizes,
		OutputCNA:        fmt.Sprintf("%s/variants/%s-alascca-cna.json", p.opts.Outdir, tumorStr),
		OutputPurity:     fmt.Sprintf("%s/variants/%s-alascca-purity.json", p.opts.Outdir, tumorStr),
		OutputPNG:        fmt.Sprintf("%s/qc/%s-alascca-cna.png", p.opts.Outdir, tumorStr),
	}
	if err := p.add(ctx, cnaPlot); err != nil {
		return err
	}

	bloodID := normal.SampleID
	tumorID := tumor.SampleID

	metadata := &jobs.CompileMetadata{
		JobName:        fmt.Sprintf("compile-metadata/%s-%s", tumorID, bloodID),
		ReferralDBConf: p.alasccaOpts.ReferralDBConf,
		Addresses:      p.alasccaOpts.Addresses,
		BloodBarcode:   bloodID,
		TumorBarcode:   tumorID,
		OutputJSON:     fmt.Sprintf("%s/report/%s-%s.metadata.json", p.opts.Outdir, bloodID, tumorID),
	}
	if err := p.add(ctx, metadata); err != nil {
		return err
	}

	genomic := &jobs.CompileAlasccaGenomicJSON{
		JobName:          fmt.Sprintf("compile-genomic/%s-%s", tumorID, bloodID),
		InputSomaticVCF:  pairResults.SomaticVCF,
		InputCNCalls:     cnaPlot.OutputCNA,
		InputMSISensor:   pairResults.MSIOutput,
		InputPurityQC:    cnaPlot.OutputPurity,
		InputContamQC:    pairResults.CancerContamCall,
		InputTumorCovQC:  tumorResults.CovQCCall,
		InputNormalCovQC: p.results.Single(normal).CovQCCall,
		OutputJSON:       fmt.Sprintf("%s/report/%s-%s.genomic.json", p.opts.Outdir, bloodID, tumorID),
	}
	if err := p.add(ctx, genomic); err != nil {
		return err
	}

	report := &jobs.WriteAlasccaReport{
		JobName:           fmt.Sprintf("write-alascca-report/%s-%s", tumorID, bloodID),
		InputGenomicJSON:  genomic.OutputJSON,
		InputMetadataJSON: metadata.OutputJSON,
		OutputPDF:         fmt.Sprintf("%s/report/AlasccaReport-%s-%s.pdf", p.opts.Outdir, bloodID, tumorID),
	}
	return p.add(ctx, report)
}
