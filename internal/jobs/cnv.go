package jobs

// CNVKit runs copy-number calling on one capture's alignment. Exactly one of
// Reference (a prebuilt CNVkit reference) or TargetsBED is set; which one
// depends on the reference-data bundle.
type CNVKit struct {
	JobName    string
	InputBam   string
	Reference  string
	TargetsBED string
	OutputCNR  string
	OutputCNS  string
}

func (j *CNVKit) Name() string { return j.JobName }

func (j *CNVKit) Inputs() []string {
	return paths(j.InputBam, j.Reference, j.TargetsBED)
}

func (j *CNVKit) Outputs() []string  { return []string{j.OutputCNR, j.OutputCNS} }
func (j *CNVKit) Intermediate() bool { return false }
