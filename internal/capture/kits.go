package capture

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed kits.yaml
var kitsYAML []byte

// kitTables holds the two-letter kit code lookup tables shipped with the
// binary. Kept in YAML rather than code so new kits land as a data change.
type kitTables struct {
	PrepKits    map[string]string `yaml:"prep_kits"`
	CaptureKits map[string]string `yaml:"capture_kits"`
}

var (
	kitsOnce sync.Once
	kits     kitTables
	kitsErr  error
)

func loadKits() (kitTables, error) {
	kitsOnce.Do(func() {
		kitsErr = yaml.Unmarshal(kitsYAML, &kits)
	})
	return kits, kitsErr
}

// PrepKitName resolves a two-letter library prep kit code to its kit name.
func PrepKitName(code string) (string, error) {
	tables, err := loadKits()
	if err != nil {
		return "", fmt.Errorf("load kit tables: %w", err)
	}
	name, ok := tables.PrepKits[code]
	if !ok {
		return "", fmt.Errorf("unknown library prep kit code %q", code)
	}
	return name, nil
}

// CaptureKitName resolves a two-letter capture kit code to its kit name. The
// WG code denotes low-pass whole-genome sequencing rather than a capture
// panel and maps to a fixed pseudo-kit name.
func CaptureKitName(code string) (string, error) {
	if code == "WG" {
		return "lowpass_wgs", nil
	}
	tables, err := loadKits()
	if err != nil {
		return "", fmt.Errorf("load kit tables: %w", err)
	}
	name, ok := tables.CaptureKits[code]
	if !ok {
		return "", fmt.Errorf("unknown capture kit code %q", code)
	}
	return name, nil
}
