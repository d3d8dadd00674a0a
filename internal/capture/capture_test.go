package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("full clinseq barcode", func(t *testing.T) {
		c, err := Parse("NA12877-T-03098849-TD1-TT1")
		require.NoError(t, err)
		assert.Equal(t, Capture{
			SampleType: Tumor,
			SampleID:   "03098849",
			LibraryKit: "TD",
			CaptureKit: "TT",
		}, c)
	})

	t.Run("prefix may contain dashes", func(t *testing.T) {
		c, err := Parse("PROJ-X-NA12877-N-03098121-KH2-CS1")
		require.NoError(t, err)
		assert.Equal(t, Capture{
			SampleType: Normal,
			SampleID:   "03098121",
			LibraryKit: "KH",
			CaptureKit: "CS",
		}, c)
	})

	t.Run("cfdna sample type", func(t *testing.T) {
		c, err := Parse("AL-P-CFDNA-03098850-TP1-CZ1")
		require.NoError(t, err)
		assert.Equal(t, CFDNA, c.SampleType)
	})

	t.Run("kit ids are first two tag characters", func(t *testing.T) {
		c, err := Parse("X-T-001-TD12-TT34")
		require.NoError(t, err)
		assert.Equal(t, "TD", c.LibraryKit)
		assert.Equal(t, "TT", c.CaptureKit)
	})

	t.Run("too few tokens", func(t *testing.T) {
		_, err := Parse("X-N-001-TDTT")
		var malformed *MalformedBarcodeError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "X-N-001-TDTT", malformed.Barcode)
	})

	t.Run("unknown sample type", func(t *testing.T) {
		_, err := Parse("X-Q-001-TD1-TT1")
		var malformed *MalformedBarcodeError
		require.ErrorAs(t, err, &malformed)
		assert.Contains(t, malformed.Reason, "sample type")
	})

	t.Run("short kit tag", func(t *testing.T) {
		_, err := Parse("X-N-001-T-TT1")
		var malformed *MalformedBarcodeError
		require.ErrorAs(t, err, &malformed)
	})
}

func TestString(t *testing.T) {
	c := Capture{SampleType: Normal, SampleID: "03098121", LibraryKit: "TD", CaptureKit: "TT"}
	assert.Equal(t, "N-03098121-TD-TT", c.String())

	// Parsing then rendering must be stable: the string is used verbatim in
	// every output path and job name.
	parsed, err := Parse("NA12877-N-03098121-TD1-TT1")
	require.NoError(t, err)
	assert.Equal(t, "N-03098121-TD-TT", parsed.String())
}

func TestKitLookups(t *testing.T) {
	t.Run("prep kit", func(t *testing.T) {
		name, err := PrepKitName("TD")
		require.NoError(t, err)
		assert.Equal(t, "THRUPLEX_DNASEQ", name)
	})

	t.Run("capture kit", func(t *testing.T) {
		name, err := CaptureKitName("TT")
		require.NoError(t, err)
		assert.Equal(t, "test-regions", name)
	})

	t.Run("WG maps to lowpass wgs", func(t *testing.T) {
		name, err := CaptureKitName("WG")
		require.NoError(t, err)
		assert.Equal(t, "lowpass_wgs", name)
	})

	t.Run("unknown codes error", func(t *testing.T) {
		_, err := PrepKitName("ZZ")
		assert.Error(t, err)
		_, err = CaptureKitName("ZZ")
		assert.Error(t, err)
	})
}
