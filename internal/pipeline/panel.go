package pipeline

import (
	"context"
	"fmt"

	"github.com/oncoseq/clinplan/internal/capture"
	"github.com/oncoseq/clinplan/internal/ctxlog"
	"github.com/oncoseq/clinplan/internal/jobs"
	"github.com/oncoseq/clinplan/internal/ledger"
)

// germlineStr renders the capture string used in germline variant file
// names, which omits the sample type.
func germlineStr(c capture.Capture) string {
	return fmt.Sprintf("%s-%s-%s", c.SampleID, c.LibraryKit, c.CaptureKit)
}

// configurePanelAnalyses expands all panel data into analysis jobs:
// alignment and merging per unique capture, copy-number calling per cancer
// capture, then the per-normal analyses with their pairing fan-out.
func (p *Clinseq) configurePanelAnalyses(ctx context.Context) error {
	if err := p.configureAlignAndMerge(ctx); err != nil {
		return err
	}

	for _, cancer := range p.cancerCaptures() {
		if err := p.configureSingleCaptureAnalysis(ctx, cancer); err != nil {
			return err
		}
	}

	for _, normal := range p.normalCaptures() {
		if err := p.configurePanelAnalysisWithNormal(ctx, normal); err != nil {
			return err
		}
	}
	return nil
}

// configureAlignAndMerge aligns every backing barcode of every unique
// capture independently, then merges and duplicate-marks per capture. Every
// capture ends this step with exactly one alignment artifact in the ledger.
func (p *Clinseq) configureAlignAndMerge(ctx context.Context) error {
	finder := p.opts.finder()

	for _, c := range p.uniqueCaptures() {
		var inputBams []string
		for _, barcode := range p.captureBarcodes[c] {
			fq1, fq2 := finder.FindReadPairs(barcode, p.opts.Libdir)

			align := &jobs.BwaAlign{
				JobName:   fmt.Sprintf("bwa-mem-%s", barcode),
				FastQ1:    fq1,
				FastQ2:    fq2,
				BWAIndex:  p.refdata.BWAIndex,
				Library:   barcode,
				Threads:   p.opts.MaxCores,
				OutputBam: fmt.Sprintf("%s/bams/panel/%s.bam", p.opts.Outdir, barcode),
			}
			if err := p.add(ctx, align); err != nil {
				return err
			}
			inputBams = append(inputBams, align.OutputBam)
		}

		if err := p.mergeAndRmDup(ctx, c, inputBams); err != nil {
			return err
		}
	}
	return nil
}

// mergeAndRmDup configures merging and duplicate marking for one capture's
// per-barcode bams and registers the final bam in the ledger.
func (p *Clinseq) mergeAndRmDup(ctx context.Context, c capture.Capture, inputBams []string) error {
	sampleStr := fmt.Sprintf("%s-%s", c.SampleType, c.SampleID)
	captureStr := c.String()

	merge := &jobs.MergeBams{
		JobName:   fmt.Sprintf("picard-mergebams-%s", sampleStr),
		InputBams: inputBams,
		OutputBam: fmt.Sprintf("%s/bams/panel/%s.bam", p.opts.Outdir, captureStr),
	}
	if err := p.add(ctx, merge); err != nil {
		return err
	}

	markdups := &jobs.MarkDuplicates{
		JobName:       fmt.Sprintf("picard-markdups-%s", captureStr),
		InputBam:      merge.OutputBam,
		OutputBam:     fmt.Sprintf("%s/bams/panel/%s-nodups.bam", p.opts.Outdir, captureStr),
		OutputMetrics: fmt.Sprintf("%s/qc/picard/panel/%s-markdups-metrics.txt", p.opts.Outdir, captureStr),
	}
	if err := p.add(ctx, markdups); err != nil {
		return err
	}

	if err := p.results.SetMergedBam(c, markdups.OutputBam); err != nil {
		return err
	}
	p.qcFiles = append(p.qcFiles, markdups.OutputMetrics)
	return nil
}

// configureSingleCaptureAnalysis configures the analyses run on one cancer
// capture on its own: copy-number calling.
func (p *Clinseq) configureSingleCaptureAnalysis(ctx context.Context, c capture.Capture) error {
	targets, err := p.targetsForCapture(c)
	if err != nil {
		return err
	}
	captureStr := c.String()

	cnvkit := &jobs.CNVKit{
		JobName:   fmt.Sprintf("cnvkit/%s", captureStr),
		InputBam:  p.results.Single(c).MergedBam,
		OutputCNR: fmt.Sprintf("%s/cnv/%s.cnr", p.opts.Outdir, captureStr),
		OutputCNS: fmt.Sprintf("%s/cnv/%s.cns", p.opts.Outdir, captureStr),
	}
	// A prebuilt CNVkit reference wins over the raw targets BED.
	if targets.CNVKitRef != "" {
		cnvkit.Reference = targets.CNVKitRef
	} else {
		cnvkit.TargetsBED = targets.TargetsBED
	}

	if err := p.results.SetCNR(c, cnvkit.OutputCNR); err != nil {
		return err
	}
	if err := p.results.SetCNS(c, cnvkit.OutputCNS); err != nil {
		return err
	}
	return p.add(ctx, cnvkit)
}

// configurePanelAnalysisWithNormal configures the analyses centred on one
// normal capture: germline calling, then a paired analysis against every
// cancer capture in the sample.
func (p *Clinseq) configurePanelAnalysisWithNormal(ctx context.Context, normal capture.Capture) error {
	if normal.SampleType != capture.Normal {
		return fmt.Errorf("capture %s is not a normal capture", normal)
	}

	if err := p.callGermlineVariants(ctx, normal); err != nil {
		return err
	}

	for _, cancer := range p.cancerCaptures() {
		if err := p.configurePanelAnalysisCancerVsNormal(ctx, normal, cancer); err != nil {
			return err
		}
	}
	return nil
}

// callGermlineVariants configures germline calling on a normal capture's
// alignment, plus annotation when a VEP directory is configured. The
// annotated call set, when it exists, becomes "the" germline VCF for this
// normal; otherwise the raw calls do. This is the only place
// annotation-availability changes the shape of the graph.
func (p *Clinseq) callGermlineVariants(ctx context.Context, normal capture.Capture) error {
	targets, err := p.targetsForCapture(normal)
	if err != nil {
		return err
	}
	captureStr := germlineStr(normal)

	freebayes := &jobs.Freebayes{
		JobName:           fmt.Sprintf("freebayes-germline-%s", captureStr),
		InputBams:         []string{p.results.Single(normal).MergedBam},
		ReferenceSequence: p.refdata.ReferenceGenome,
		TargetBED:         targets.TargetsBED,
		OutputVCF:         fmt.Sprintf("%s/variants/%s.freebayes-germline.vcf.gz", p.opts.Outdir, captureStr),
	}
	if err := p.add(ctx, freebayes); err != nil {
		return err
	}

	if !p.refdata.HasVEP() {
		return p.results.SetGermlineVCF(normal, freebayes.OutputVCF)
	}

	vep := &jobs.VEP{
		JobName:           fmt.Sprintf("vep-freebayes-germline-%s", captureStr),
		InputVCF:          freebayes.OutputVCF,
		ReferenceSequence: p.refdata.ReferenceGenome,
		VEPDir:            p.refdata.VEPDir,
		OutputVCF:         fmt.Sprintf("%s/variants/%s.freebayes-germline.vep.vcf.gz", p.opts.Outdir, captureStr),
	}
	if err := p.add(ctx, vep); err != nil {
		return err
	}
	return p.results.SetGermlineVCF(normal, vep.OutputVCF)
}

// configurePanelAnalysisCancerVsNormal configures the standard paired
// analyses for one (normal, cancer) capture pair: somatic calling, germline
// VCF enrichment, MSI, heterozygote concordance, and the contamination
// estimate.
func (p *Clinseq) configurePanelAnalysisCancerVsNormal(ctx context.Context, normal, cancer capture.Capture) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Configuring paired analysis.", "normal", normal.String(), "cancer", cancer.String())

	if err := p.configureSomaticCalling(ctx, normal, cancer); err != nil {
		return err
	}
	if err := p.configureVcfAddSample(ctx, normal, cancer); err != nil {
		return err
	}
	if err := p.configureMSISensor(ctx, normal, cancer); err != nil {
		return err
	}
	if err := p.configureHZConcordance(ctx, normal, cancer); err != nil {
		return err
	}
	return p.configureContaminationEstimate(ctx, normal, cancer)
}

// configureSomaticCalling configures VarDict somatic calling for the pair,
// plus annotation when VEP is configured.
func (p *Clinseq) configureSomaticCalling(ctx context.Context, normal, cancer capture.Capture) error {
	targets, err := p.targetsForCapture(cancer)
	if err != nil {
		return err
	}
	normalStr := normal.String()
	cancerStr := cancer.String()

	vardict := &jobs.VarDict{
		JobName:           fmt.Sprintf("vardict-%s-%s", cancerStr, normalStr),
		InputTumorBam:     p.results.Single(cancer).MergedBam,
		InputNormalBam:    p.results.Single(normal).MergedBam,
		ReferenceSequence: p.refdata.ReferenceGenome,
		TargetBED:         targets.TargetsBED,
		TumorSampleName:   cancerStr,
		NormalSampleName:  normalStr,
		MinAltFrac:        0.02,
		Threads:           p.opts.MaxCores,
		OutputVCF:         fmt.Sprintf("%s/variants/%s-%s.vardict-somatic.vcf.gz", p.opts.Outdir, cancerStr, normalStr),
	}
	if err := p.add(ctx, vardict); err != nil {
		return err
	}

	somaticVCF := vardict.OutputVCF
	if p.refdata.HasVEP() {
		vep := &jobs.VEP{
			JobName:           fmt.Sprintf("vep-vardict-%s-%s", cancerStr, normalStr),
			InputVCF:          vardict.OutputVCF,
			ReferenceSequence: p.refdata.ReferenceGenome,
			VEPDir:            p.refdata.VEPDir,
			OutputVCF:         fmt.Sprintf("%s/variants/%s-%s.vardict-somatic.vep.vcf.gz", p.opts.Outdir, cancerStr, normalStr),
		}
		if err := p.add(ctx, vep); err != nil {
			return err
		}
		somaticVCF = vep.OutputVCF
	}

	return p.results.SetSomaticVCF(ledger.Pair{Normal: normal, Cancer: cancer}, somaticVCF)
}

// configureVcfAddSample enriches the normal's germline VCF with allele
// fractions from the cancer capture's alignment.
func (p *Clinseq) configureVcfAddSample(ctx context.Context, normal, cancer capture.Capture) error {
	normalStr := normal.String()
	cancerStr := cancer.String()

	vcfAddSample := &jobs.VcfAddSample{
		JobName:    fmt.Sprintf("vcf-add-sample-%s", cancerStr),
		InputVCF:   p.results.GermlineVCF(normal),
		InputBam:   p.results.Single(cancer).MergedBam,
		SampleName: cancerStr,
		FilterHom:  true,
		OutputVCF: fmt.Sprintf("%s/variants/%s-and-%s.germline-variants-with-somatic-afs.vcf.gz",
			p.opts.Outdir, normalStr, cancerStr),
	}
	if err := p.add(ctx, vcfAddSample); err != nil {
		return err
	}
	return p.results.SetVcfAddSampleOutput(ledger.Pair{Normal: normal, Cancer: cancer}, vcfAddSample.OutputVCF)
}

// configureMSISensor scores microsatellite instability for the pair.
func (p *Clinseq) configureMSISensor(ctx context.Context, normal, cancer capture.Capture) error {
	targets, err := p.targetsForCapture(cancer)
	if err != nil {
		return err
	}
	normalStr := normal.String()
	cancerStr := cancer.String()

	msiSensor := &jobs.MSISensor{
		JobName:        fmt.Sprintf("msisensor-%s-%s", normalStr, cancerStr),
		MSISites:       targets.MSISites,
		InputNormalBam: p.results.Single(normal).MergedBam,
		InputTumorBam:  p.results.Single(cancer).MergedBam,
		Output:         fmt.Sprintf("%s/msi/msisensor-%s-%s.tsv", p.opts.Outdir, normalStr, cancerStr),
	}
	if err := p.add(ctx, msiSensor); err != nil {
		return err
	}
	return p.results.SetMSIOutput(ledger.Pair{Normal: normal, Cancer: cancer}, msiSensor.Output)
}

// configureHZConcordance checks the cancer alignment against the normal's
// heterozygous germline calls. Output and name lead with the cancer capture.
func (p *Clinseq) configureHZConcordance(ctx context.Context, normal, cancer capture.Capture) error {
	targets, err := p.targetsForCapture(cancer)
	if err != nil {
		return err
	}
	normalStr := normal.String()
	cancerStr := cancer.String()

	hzConcordance := &jobs.HeterozygoteConcordance{
		JobName:           fmt.Sprintf("hzconcordance-%s", cancerStr),
		InputVCF:          p.results.GermlineVCF(normal),
		InputBam:          p.results.Single(cancer).MergedBam,
		ReferenceSequence: p.refdata.ReferenceGenome,
		TargetRegions:     targets.TargetsIntervalList,
		NormalID:          normalStr,
		Output:            fmt.Sprintf("%s/bams/%s-%s-hzconcordance.txt", p.opts.Outdir, cancerStr, normalStr),
	}
	if err := p.add(ctx, hzConcordance); err != nil {
		return err
	}
	return p.results.SetHZConcordanceOutput(ledger.Pair{Normal: normal, Cancer: cancer}, hzConcordance.Output)
}

// configureContaminationEstimate configures the population-VCF intersection,
// the two directional ContEst runs, and the cancer contamination QC verdict.
func (p *Clinseq) configureContaminationEstimate(ctx context.Context, normal, cancer capture.Capture) error {
	popVCF, err := p.configureContestVCFGeneration(ctx, normal, cancer)
	if err != nil {
		return err
	}

	// Contamination of the cancer sample, genotyped on the normal.
	cancerContest, err := p.configureContest(ctx, cancer, normal, popVCF)
	if err != nil {
		return err
	}
	// And the reverse direction.
	normalContest, err := p.configureContest(ctx, normal, cancer, popVCF)
	if err != nil {
		return err
	}

	contamCall, err := p.configureContamQCCall(ctx, cancer, cancerContest)
	if err != nil {
		return err
	}

	pair := ledger.Pair{Normal: normal, Cancer: cancer}
	if err := p.results.SetNormalContestOutput(pair, normalContest); err != nil {
		return err
	}
	if err := p.results.SetCancerContestOutput(pair, cancerContest); err != nil {
		return err
	}
	return p.results.SetCancerContamCall(pair, contamCall)
}

// configureContestVCFGeneration intersects the population allele-frequency
// VCF with the target regions of both captures in the pair.
func (p *Clinseq) configureContestVCFGeneration(ctx context.Context, normal, cancer capture.Capture) (string, error) {
	normalTargets, err := p.targetsForCapture(normal)
	if err != nil {
		return "", err
	}
	cancerTargets, err := p.targetsForCapture(cancer)
	if err != nil {
		return "", err
	}
	normalStr := normal.String()
	cancerStr := cancer.String()

	contestVCF := &jobs.CreateContestVCFs{
		JobName:            fmt.Sprintf("contest_pop_vcf_%s-%s", normalStr, cancerStr),
		InputPopulationVCF: p.refdata.SwegeneCommon,
		InputTargetBED1:    normalTargets.TargetsBED,
		InputTargetBED2:    cancerTargets.TargetsBED,
		Output:             fmt.Sprintf("%s/contamination/pop_vcf_%s-%s.vcf", p.opts.Outdir, normalStr, cancerStr),
	}
	if err := p.add(ctx, contestVCF); err != nil {
		return "", err
	}
	return contestVCF.Output, nil
}

// configureContest configures one directional ContEst run: contamination of
// the eval capture, genotyped on the genotype capture.
func (p *Clinseq) configureContest(ctx context.Context, eval, genotype capture.Capture, popVCF string) (string, error) {
	evalStr := eval.String()
	genotypeStr := genotype.String()

	contest := &jobs.ContEst{
		JobName:            fmt.Sprintf("contest/%s-vs-%s", evalStr, genotypeStr),
		ReferenceGenome:    p.refdata.ReferenceGenome,
		InputEvalBam:       p.results.Single(eval).MergedBam,
		InputGenotypeBam:   p.results.Single(genotype).MergedBam,
		InputPopulationVCF: popVCF,
		Output:             fmt.Sprintf("%s/contamination/%s-vs-%s.contest.txt", p.opts.Outdir, evalStr, genotypeStr),
	}
	if err := p.add(ctx, contest); err != nil {
		return "", err
	}
	return contest.Output, nil
}

// configureContamQCCall derives the cancer contamination QC verdict from the
// cancer-direction ContEst output.
func (p *Clinseq) configureContamQCCall(ctx context.Context, cancer capture.Capture, contestOutput string) (string, error) {
	cancerStr := cancer.String()

	contamCall := &jobs.ContEstToContamCaveat{
		JobName:             fmt.Sprintf("contam-qc-call/%s", cancerStr),
		InputContestResults: contestOutput,
		Output:              fmt.Sprintf("%s/qc/%s-contam-qc-call.json", p.opts.Outdir, cancerStr),
	}
	if err := p.add(ctx, contamCall); err != nil {
		return "", err
	}
	return contamCall.Output, nil
}
