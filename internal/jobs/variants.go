package jobs

// Freebayes calls germline variants on a normal capture's alignment.
type Freebayes struct {
	JobName           string
	InputBams         []string
	ReferenceSequence string
	TargetBED         string
	SomaticOnly       bool
	OutputVCF         string
}

func (j *Freebayes) Name() string { return j.JobName }

func (j *Freebayes) Inputs() []string {
	in := append([]string{}, j.InputBams...)
	return append(in, j.ReferenceSequence, j.TargetBED)
}

func (j *Freebayes) Outputs() []string  { return []string{j.OutputVCF} }
func (j *Freebayes) Intermediate() bool { return false }

// VEP annotates a VCF with the Ensembl Variant Effect Predictor.
type VEP struct {
	JobName           string
	InputVCF          string
	ReferenceSequence string
	VEPDir            string
	OutputVCF         string
}

func (j *VEP) Name() string       { return j.JobName }
func (j *VEP) Inputs() []string   { return []string{j.InputVCF, j.ReferenceSequence} }
func (j *VEP) Outputs() []string  { return []string{j.OutputVCF} }
func (j *VEP) Intermediate() bool { return false }

// VarDict calls somatic variants for one (normal, cancer) capture pair.
type VarDict struct {
	JobName           string
	InputTumorBam     string
	InputNormalBam    string
	ReferenceSequence string
	TargetBED         string
	TumorSampleName   string
	NormalSampleName  string
	MinAltFrac        float64
	Threads           int
	OutputVCF         string
}

func (j *VarDict) Name() string { return j.JobName }

func (j *VarDict) Inputs() []string {
	return []string{j.InputTumorBam, j.InputNormalBam, j.ReferenceSequence, j.TargetBED}
}

func (j *VarDict) Outputs() []string  { return []string{j.OutputVCF} }
func (j *VarDict) Intermediate() bool { return false }

// VcfAddSample enriches a germline VCF with allele fractions observed in the
// cancer capture's alignment, adding the cancer sample to the call set.
type VcfAddSample struct {
	JobName    string
	InputVCF   string
	InputBam   string
	SampleName string
	FilterHom  bool
	OutputVCF  string
}

func (j *VcfAddSample) Name() string       { return j.JobName }
func (j *VcfAddSample) Inputs() []string   { return []string{j.InputVCF, j.InputBam} }
func (j *VcfAddSample) Outputs() []string  { return []string{j.OutputVCF} }
func (j *VcfAddSample) Intermediate() bool { return false }
