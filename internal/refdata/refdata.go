// Package refdata models the reference-data bundle consumed by pipeline
// construction: genome paths, population VCFs, and the per-capture-kit
// target files. A bundle is loaded once and verified against the capture
// kits actually in use before any job is configured.
package refdata

import "fmt"

// Bundle top-level keys.
const (
	KeyReferenceGenome = "reference_genome"
	KeyBWAIndex        = "bwa_index"
	KeyChrsizes        = "chrsizes"
	KeyVEPDir          = "vep_dir"
	KeySwegeneCommon   = "swegene_common"
	KeyTargets         = "targets"
)

// Per-kit target keys.
const (
	KeyTargetsBED          = "targets-bed-slopped20"
	KeyTargetsIntervalList = "targets-interval_list-slopped20"
	KeyCNVKitRef           = "cnvkit-ref"
	KeyMSISites            = "msisites"
)

// TargetSet holds the reference files for one capture kit, keyed by the kit
// name in Bundle.Targets.
type TargetSet struct {
	TargetsBED          string // targets-bed-slopped20
	TargetsIntervalList string // targets-interval_list-slopped20
	CNVKitRef           string // cnvkit-ref, optional
	MSISites            string // msisites
}

// Bundle is the reference-data bundle for one genome build.
type Bundle struct {
	ReferenceGenome string
	BWAIndex        string
	Chrsizes        string
	VEPDir          string // optional; enables variant annotation when set
	SwegeneCommon   string
	Targets         map[string]TargetSet
}

// HasVEP reports whether a VEP annotation directory is configured. This is
// the one reference-data flag that changes graph shape.
func (b *Bundle) HasVEP() bool {
	return b.VEPDir != ""
}

// ForKit resolves the target set for a capture kit name.
func (b *Bundle) ForKit(kitName string) (TargetSet, error) {
	ts, ok := b.Targets[kitName]
	if !ok {
		return TargetSet{}, &MissingReferenceDataError{CaptureKit: kitName, Key: KeyTargets}
	}
	return ts, nil
}

// MissingReferenceDataError reports a required reference-data key that is
// absent for a capture kit in use (or globally, when CaptureKit is empty).
// Fatal: construction of the whole cohort aborts before any job is added.
type MissingReferenceDataError struct {
	CaptureKit string
	Key        string
}

func (e *MissingReferenceDataError) Error() string {
	if e.CaptureKit == "" {
		return fmt.Sprintf("reference data missing required key %q", e.Key)
	}
	return fmt.Sprintf("reference data missing key %q for capture kit %q", e.Key, e.CaptureKit)
}

// VerifyOptions selects the optional requirements for a Verify pass.
type VerifyOptions struct {
	// NeedMSI requires msisites for every kit (paired analyses configured).
	NeedMSI bool
	// NeedChrsizes requires the chromosome-sizes file (ALASCCA CNA plotting).
	NeedChrsizes bool
}

// Verify checks that the bundle can serve an analysis using the given
// capture kit names. It returns the first missing key as a
// *MissingReferenceDataError; the policy is whole-cohort abort, so callers
// must not register any job once Verify fails.
func (b *Bundle) Verify(kitNames []string, opts VerifyOptions) error {
	if b.ReferenceGenome == "" {
		return &MissingReferenceDataError{Key: KeyReferenceGenome}
	}
	if b.BWAIndex == "" {
		return &MissingReferenceDataError{Key: KeyBWAIndex}
	}
	if b.SwegeneCommon == "" {
		return &MissingReferenceDataError{Key: KeySwegeneCommon}
	}
	if opts.NeedChrsizes && b.Chrsizes == "" {
		return &MissingReferenceDataError{Key: KeyChrsizes}
	}

	for _, kit := range kitNames {
		ts, err := b.ForKit(kit)
		if err != nil {
			return err
		}
		if ts.TargetsBED == "" {
			return &MissingReferenceDataError{CaptureKit: kit, Key: KeyTargetsBED}
		}
		if ts.TargetsIntervalList == "" {
			return &MissingReferenceDataError{CaptureKit: kit, Key: KeyTargetsIntervalList}
		}
		if opts.NeedMSI && ts.MSISites == "" {
			return &MissingReferenceDataError{CaptureKit: kit, Key: KeyMSISites}
		}
	}
	return nil
}
