// Package ledger implements the results ledger: the in-memory store of
// intermediate artifact references accumulated while the job graph is
// configured. An orchestrator writes an artifact path after configuring the
// job that produces it; a later orchestrator reads the path as a job input.
// That shared path is the dependency edge.
package ledger

import (
	"fmt"

	"github.com/oncoseq/clinplan/internal/capture"
)

// DuplicateAssignmentError reports a second assignment to a ledger field
// within one build pass. Two jobs declaring the same logical artifact is an
// orchestrator bug and always fatal.
type DuplicateAssignmentError struct {
	Key   string
	Field string
}

func (e *DuplicateAssignmentError) Error() string {
	return fmt.Sprintf("ledger field %s already assigned for %s", e.Field, e.Key)
}

// SinglePanelResults holds the artifact references produced by analyzing one
// unique library capture, irrespective of sample type. Each field is set at
// most once per build pass, by the orchestrator step that configures the
// producing job.
type SinglePanelResults struct {
	MergedBam string // merged and duplicate-marked alignment
	CNR       string // CNVkit copy-number ratios
	CNS       string // CNVkit copy-number segments
	CovQCCall string // coverage QC verdict
}

// CancerVsNormalPanelResults holds the artifacts of the paired analysis
// comparing a cancer capture against a normal capture.
type CancerVsNormalPanelResults struct {
	SomaticVCF          string
	MSIOutput           string
	HZConcordanceOutput string
	VcfAddSampleOutput  string // germline VCF enriched with tumor allele fractions
	NormalContestOutput string // contamination of the normal vs the cancer
	CancerContestOutput string // contamination of the cancer vs the normal
	CancerContamCall    string // cancer contamination QC verdict
}

// Pair keys the paired-analysis results. Ordering is significant and always
// (normal, cancer); the ledger never stores a reversed pair.
type Pair struct {
	Normal capture.Capture
	Cancer capture.Capture
}

// String renders the pair for error messages and logs.
func (p Pair) String() string {
	return fmt.Sprintf("(%s, %s)", p.Normal, p.Cancer)
}

// Ledger owns the three result mappings for one pipeline instance. It is
// exclusively owned by the construction pass and never accessed
// concurrently.
type Ledger struct {
	single      map[capture.Capture]*SinglePanelResults
	pairs       map[Pair]*CancerVsNormalPanelResults
	germlineVCF map[capture.Capture]string
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{
		single:      make(map[capture.Capture]*SinglePanelResults),
		pairs:       make(map[Pair]*CancerVsNormalPanelResults),
		germlineVCF: make(map[capture.Capture]string),
	}
}

// Single returns the per-capture record, creating an empty one on first
// lookup.
func (l *Ledger) Single(c capture.Capture) *SinglePanelResults {
	if _, ok := l.single[c]; !ok {
		l.single[c] = &SinglePanelResults{}
	}
	return l.single[c]
}

// PairResults returns the per-pair record, creating an empty one on first
// lookup.
func (l *Ledger) PairResults(p Pair) *CancerVsNormalPanelResults {
	if _, ok := l.pairs[p]; !ok {
		l.pairs[p] = &CancerVsNormalPanelResults{}
	}
	return l.pairs[p]
}

// SetGermlineVCF registers the chosen germline call set for a normal
// capture. Which call set is "the" germline VCF depends on whether variant
// annotation ran; either way it is chosen exactly once.
func (l *Ledger) SetGermlineVCF(normal capture.Capture, path string) error {
	if _, ok := l.germlineVCF[normal]; ok {
		return &DuplicateAssignmentError{Key: normal.String(), Field: "germline VCF"}
	}
	l.germlineVCF[normal] = path
	return nil
}

// GermlineVCF returns the germline VCF registered for a normal capture, or
// "" when none has been registered.
func (l *Ledger) GermlineVCF(normal capture.Capture) string {
	return l.germlineVCF[normal]
}

// assign enforces the single-assignment discipline for one field.
func assign(field *string, value, key, name string) error {
	if *field != "" {
		return &DuplicateAssignmentError{Key: key, Field: name}
	}
	*field = value
	return nil
}

// SetMergedBam records the capture's deduplicated alignment artifact.
func (l *Ledger) SetMergedBam(c capture.Capture, path string) error {
	return assign(&l.Single(c).MergedBam, path, c.String(), "merged bam")
}

// SetCNR records the capture's copy-number-ratio artifact.
func (l *Ledger) SetCNR(c capture.Capture, path string) error {
	return assign(&l.Single(c).CNR, path, c.String(), "cnr")
}

// SetCNS records the capture's copy-number-segment artifact.
func (l *Ledger) SetCNS(c capture.Capture, path string) error {
	return assign(&l.Single(c).CNS, path, c.String(), "cns")
}

// SetCovQCCall records the capture's coverage QC verdict.
func (l *Ledger) SetCovQCCall(c capture.Capture, path string) error {
	return assign(&l.Single(c).CovQCCall, path, c.String(), "coverage QC call")
}

// SetSomaticVCF records the pair's somatic variant call set.
func (l *Ledger) SetSomaticVCF(p Pair, path string) error {
	return assign(&l.PairResults(p).SomaticVCF, path, p.String(), "somatic VCF")
}

// SetMSIOutput records the pair's MSI sensor output.
func (l *Ledger) SetMSIOutput(p Pair, path string) error {
	return assign(&l.PairResults(p).MSIOutput, path, p.String(), "MSI output")
}

// SetHZConcordanceOutput records the pair's heterozygote concordance output.
func (l *Ledger) SetHZConcordanceOutput(p Pair, path string) error {
	return assign(&l.PairResults(p).HZConcordanceOutput, path, p.String(), "hz concordance output")
}

// SetVcfAddSampleOutput records the pair's AF-enriched germline VCF.
func (l *Ledger) SetVcfAddSampleOutput(p Pair, path string) error {
	return assign(&l.PairResults(p).VcfAddSampleOutput, path, p.String(), "vcf-add-sample output")
}

// SetNormalContestOutput records the normal-vs-cancer contamination output.
func (l *Ledger) SetNormalContestOutput(p Pair, path string) error {
	return assign(&l.PairResults(p).NormalContestOutput, path, p.String(), "normal contest output")
}

// SetCancerContestOutput records the cancer-vs-normal contamination output.
func (l *Ledger) SetCancerContestOutput(p Pair, path string) error {
	return assign(&l.PairResults(p).CancerContestOutput, path, p.String(), "cancer contest output")
}

// SetCancerContamCall records the cancer contamination QC verdict.
func (l *Ledger) SetCancerContamCall(p Pair, path string) error {
	return assign(&l.PairResults(p).CancerContamCall, path, p.String(), "cancer contamination call")
}

// Captures returns every capture with a per-capture record, in no
// particular order.
func (l *Ledger) Captures() []capture.Capture {
	captures := make([]capture.Capture, 0, len(l.single))
	for c := range l.single {
		captures = append(captures, c)
	}
	return captures
}
