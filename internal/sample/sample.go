// Package sample models the input sample description for one patient and
// implements the data validation pass that prunes declared captures with no
// backing sequence data.
package sample

import (
	"encoding/json"
	"fmt"
	"os"
)

// Barcodes is a list of clinseq barcodes for one sample-type slot. The JSON
// form accepts a single string, a list of strings, or null, since existing
// sample files use all three spellings.
type Barcodes []string

// UnmarshalJSON implements the lenient slot decoding.
func (b *Barcodes) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*b = nil
		} else {
			*b = Barcodes{single}
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("sample slot must be a barcode string or list of barcodes: %w", err)
	}
	*b = list
	return nil
}

// Slots holds the barcodes declared for each sample type within one data
// type (panel or wgs).
type Slots struct {
	Normal Barcodes `json:"N"`
	Tumor  Barcodes `json:"T"`
	CFDNA  Barcodes `json:"CFDNA"`
}

// All returns the slot contents in the canonical iteration order
// (tumor, normal, cfDNA).
func (s *Slots) All() []string {
	all := make([]string, 0, len(s.Tumor)+len(s.Normal)+len(s.CFDNA))
	all = append(all, s.Tumor...)
	all = append(all, s.Normal...)
	all = append(all, s.CFDNA...)
	return all
}

// Set is the sample description for one patient study.
type Set struct {
	SDID  string `json:"sdid"`
	Panel Slots  `json:"panel"`
	WGS   Slots  `json:"wgs"`
}

// Load reads a sample description from a JSON file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sample description: %w", err)
	}
	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse sample description %s: %w", path, err)
	}
	if set.SDID == "" {
		return nil, fmt.Errorf("sample description %s has no sdid", path)
	}
	return &set, nil
}

// PanelBarcodes returns all panel barcodes in the sample description, in the
// canonical order used by capture indexing.
func (s *Set) PanelBarcodes() []string {
	return s.Panel.All()
}
