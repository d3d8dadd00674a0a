package sample

import (
	"path/filepath"
	"sort"
)

// FastqFinder is the collaborator boundary to the filesystem discovery
// helper: it locates the paired fastq files backing one barcode's library
// directory. Both return slices are empty when no read pairs exist.
type FastqFinder interface {
	FindReadPairs(barcode, libdir string) (fq1, fq2 []string)
}

// DirFinder discovers read pairs under {libdir}/{barcode}/, matching the
// two fastq naming conventions in use ("_1/_2" and "_R1_/_R2_").
type DirFinder struct{}

var firstReadPatterns = []string{"*_1.fastq.gz", "*_R1_*.fastq.gz"}
var secondReadPatterns = []string{"*_2.fastq.gz", "*_R2_*.fastq.gz"}

// FindReadPairs implements FastqFinder.
func (DirFinder) FindReadPairs(barcode, libdir string) ([]string, []string) {
	dir := filepath.Join(libdir, barcode)
	return globAll(dir, firstReadPatterns), globAll(dir, secondReadPatterns)
}

func globAll(dir string, patterns []string) []string {
	var matches []string
	for _, pattern := range patterns {
		// Glob only errors on malformed patterns, and ours are fixed.
		found, _ := filepath.Glob(filepath.Join(dir, pattern))
		matches = append(matches, found...)
	}
	sort.Strings(matches)
	return matches
}
