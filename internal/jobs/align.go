package jobs

// BwaAlign aligns one library's read pairs against the reference with bwa
// mem, producing a coordinate-sorted bam.
type BwaAlign struct {
	JobName   string
	FastQ1    []string
	FastQ2    []string
	BWAIndex  string
	Library   string // read-group library, the clinseq barcode
	Threads   int
	OutputBam string
}

func (j *BwaAlign) Name() string { return j.JobName }

func (j *BwaAlign) Inputs() []string {
	in := append([]string{}, j.FastQ1...)
	in = append(in, j.FastQ2...)
	return append(in, j.BWAIndex)
}

func (j *BwaAlign) Outputs() []string { return []string{j.OutputBam} }

// Per-barcode bams only feed the capture-level merge.
func (j *BwaAlign) Intermediate() bool { return true }

// MergeBams merges the per-barcode alignments of one library capture into a
// single bam (Picard MergeSamFiles).
type MergeBams struct {
	JobName   string
	InputBams []string
	OutputBam string
}

func (j *MergeBams) Name() string       { return j.JobName }
func (j *MergeBams) Inputs() []string   { return append([]string{}, j.InputBams...) }
func (j *MergeBams) Outputs() []string  { return []string{j.OutputBam} }
func (j *MergeBams) Intermediate() bool { return true }

// MarkDuplicates marks PCR duplicates in a merged bam (Picard
// MarkDuplicates). Its output bam is the capture's final alignment artifact.
type MarkDuplicates struct {
	JobName       string
	InputBam      string
	OutputBam     string
	OutputMetrics string
}

func (j *MarkDuplicates) Name() string       { return j.JobName }
func (j *MarkDuplicates) Inputs() []string   { return []string{j.InputBam} }
func (j *MarkDuplicates) Outputs() []string  { return []string{j.OutputBam, j.OutputMetrics} }
func (j *MarkDuplicates) Intermediate() bool { return false }
