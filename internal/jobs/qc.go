package jobs

// CollectInsertSizeMetrics is Picard CollectInsertSizeMetrics over one
// capture's alignment.
type CollectInsertSizeMetrics struct {
	JobName       string
	InputBam      string
	OutputMetrics string
}

func (j *CollectInsertSizeMetrics) Name() string       { return j.JobName }
func (j *CollectInsertSizeMetrics) Inputs() []string   { return []string{j.InputBam} }
func (j *CollectInsertSizeMetrics) Outputs() []string  { return []string{j.OutputMetrics} }
func (j *CollectInsertSizeMetrics) Intermediate() bool { return false }

// CollectOxoGMetrics is Picard CollectOxoGMetrics (oxidative damage).
type CollectOxoGMetrics struct {
	JobName           string
	InputBam          string
	ReferenceSequence string
	OutputMetrics     string
}

func (j *CollectOxoGMetrics) Name() string       { return j.JobName }
func (j *CollectOxoGMetrics) Inputs() []string   { return []string{j.InputBam, j.ReferenceSequence} }
func (j *CollectOxoGMetrics) Outputs() []string  { return []string{j.OutputMetrics} }
func (j *CollectOxoGMetrics) Intermediate() bool { return false }

// CollectHsMetrics is Picard CollectHsMetrics (hybrid-selection metrics).
type CollectHsMetrics struct {
	JobName           string
	InputBam          string
	ReferenceSequence string
	TargetRegions     string
	BaitRegions       string
	BaitName          string
	OutputMetrics     string
}

func (j *CollectHsMetrics) Name() string { return j.JobName }

func (j *CollectHsMetrics) Inputs() []string {
	return []string{j.InputBam, j.ReferenceSequence, j.TargetRegions}
}

func (j *CollectHsMetrics) Outputs() []string  { return []string{j.OutputMetrics} }
func (j *CollectHsMetrics) Intermediate() bool { return false }

// SambambaDepth computes per-target depth of coverage.
type SambambaDepth struct {
	JobName    string
	InputBam   string
	TargetsBED string
	Output     string
}

func (j *SambambaDepth) Name() string       { return j.JobName }
func (j *SambambaDepth) Inputs() []string   { return []string{j.InputBam, j.TargetsBED} }
func (j *SambambaDepth) Outputs() []string  { return []string{j.Output} }
func (j *SambambaDepth) Intermediate() bool { return false }

// CoverageHistogram produces the coverage histogram over the target regions.
type CoverageHistogram struct {
	JobName  string
	InputBam string
	InputBED string
	Output   string
}

func (j *CoverageHistogram) Name() string       { return j.JobName }
func (j *CoverageHistogram) Inputs() []string   { return []string{j.InputBam, j.InputBED} }
func (j *CoverageHistogram) Outputs() []string  { return []string{j.Output} }
func (j *CoverageHistogram) Intermediate() bool { return false }

// CoverageCaveat derives the coverage QC verdict JSON from a coverage
// histogram.
type CoverageCaveat struct {
	JobName        string
	InputHistogram string
	Output         string
}

func (j *CoverageCaveat) Name() string       { return j.JobName }
func (j *CoverageCaveat) Inputs() []string   { return []string{j.InputHistogram} }
func (j *CoverageCaveat) Outputs() []string  { return []string{j.Output} }
func (j *CoverageCaveat) Intermediate() bool { return false }

// FastQC runs read-level QC on one fastq file.
type FastQC struct {
	JobName string
	Input   string
	OutDir  string
	Output  string
}

func (j *FastQC) Name() string       { return j.JobName }
func (j *FastQC) Inputs() []string   { return []string{j.Input} }
func (j *FastQC) Outputs() []string  { return []string{j.Output} }
func (j *FastQC) Intermediate() bool { return false }

// MultiQC aggregates every QC file produced for the study into one report.
// It must be the last QC job registered: its input list is only complete
// once all other QC jobs exist.
type MultiQC struct {
	JobName    string
	InputFiles []string
	SearchDir  string
	Output     string
}

func (j *MultiQC) Name() string       { return j.JobName }
func (j *MultiQC) Inputs() []string   { return append([]string{}, j.InputFiles...) }
func (j *MultiQC) Outputs() []string  { return []string{j.Output} }
func (j *MultiQC) Intermediate() bool { return false }
