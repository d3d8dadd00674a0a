// Package capture defines the identity model for sample library captures: the
// four-field key that makes one physical library-prep + hybrid-capture
// combination unique within an analysis, and the barcode parsing that
// produces it.
package capture

import (
	"fmt"
	"strings"
)

// SampleType is the clinseq sample-type code carried in a barcode.
type SampleType string

const (
	// Normal is a normal (blood) sample.
	Normal SampleType = "N"
	// Tumor is a tumor tissue sample.
	Tumor SampleType = "T"
	// CFDNA is a cell-free DNA (plasma) sample.
	CFDNA SampleType = "CFDNA"
)

// valid reports whether the code is one of the known sample types.
func (s SampleType) valid() bool {
	switch s {
	case Normal, Tumor, CFDNA:
		return true
	}
	return false
}

// Capture identifies one unique sample library capture. It is an immutable
// value type with structural equality, suitable as a map key: two barcodes
// that agree on all four fields denote the same physical capture.
type Capture struct {
	SampleType SampleType
	SampleID   string
	LibraryKit string // two-letter library prep kit code
	CaptureKit string // two-letter capture kit code
}

// String renders the canonical capture string used verbatim in output file
// names and job names. Every component must use this rendering so that paths
// and names stay deterministic across the whole graph.
func (c Capture) String() string {
	return fmt.Sprintf("%s-%s-%s-%s", c.SampleType, c.SampleID, c.LibraryKit, c.CaptureKit)
}

// MalformedBarcodeError reports a barcode that cannot be parsed into a
// capture identity. Always fatal; barcodes are never silently coerced.
type MalformedBarcodeError struct {
	Barcode string
	Reason  string
}

func (e *MalformedBarcodeError) Error() string {
	return fmt.Sprintf("malformed clinseq barcode %q: %s", e.Barcode, e.Reason)
}

// identityFields is the number of trailing barcode tokens that carry the
// capture identity: sample type, sample id, library kit tag, capture kit tag.
const identityFields = 4

// Parse extracts the capture identity from a clinseq barcode of the form
// <prefix>-<sample_type>-<sample_id>-<libkit+tag>-<capkit+tag>. The prefix
// may itself contain dashes; the four identity fields are anchored at the
// end. Kit ids are the first two characters of their tags.
func Parse(barcode string) (Capture, error) {
	tokens := strings.Split(barcode, "-")
	if len(tokens) < identityFields+1 {
		return Capture{}, &MalformedBarcodeError{
			Barcode: barcode,
			Reason:  fmt.Sprintf("expected at least %d dash-separated tokens, got %d", identityFields+1, len(tokens)),
		}
	}

	id := tokens[len(tokens)-identityFields:]
	sampleType := SampleType(id[0])
	if !sampleType.valid() {
		return Capture{}, &MalformedBarcodeError{
			Barcode: barcode,
			Reason:  fmt.Sprintf("unknown sample type %q", id[0]),
		}
	}
	if id[1] == "" {
		return Capture{}, &MalformedBarcodeError{Barcode: barcode, Reason: "empty sample id"}
	}
	if len(id[2]) < 2 {
		return Capture{}, &MalformedBarcodeError{
			Barcode: barcode,
			Reason:  fmt.Sprintf("library kit tag %q shorter than two characters", id[2]),
		}
	}
	if len(id[3]) < 2 {
		return Capture{}, &MalformedBarcodeError{
			Barcode: barcode,
			Reason:  fmt.Sprintf("capture kit tag %q shorter than two characters", id[3]),
		}
	}

	return Capture{
		SampleType: sampleType,
		SampleID:   id[1],
		LibraryKit: id[2][:2],
		CaptureKit: id[3][:2],
	}, nil
}
