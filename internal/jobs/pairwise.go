package jobs

// MSISensor scores microsatellite instability for a capture pair.
type MSISensor struct {
	JobName        string
	MSISites       string
	InputNormalBam string
	InputTumorBam  string
	Output         string
}

func (j *MSISensor) Name() string { return j.JobName }

func (j *MSISensor) Inputs() []string {
	return []string{j.InputNormalBam, j.InputTumorBam, j.MSISites}
}

func (j *MSISensor) Outputs() []string  { return []string{j.Output} }
func (j *MSISensor) Intermediate() bool { return false }

// HeterozygoteConcordance checks that heterozygous germline calls from the
// normal capture are observed in the cancer capture's alignment, guarding
// against sample swaps.
type HeterozygoteConcordance struct {
	JobName           string
	InputVCF          string
	InputBam          string
	ReferenceSequence string
	TargetRegions     string
	NormalID          string
	Output            string
}

func (j *HeterozygoteConcordance) Name() string { return j.JobName }

func (j *HeterozygoteConcordance) Inputs() []string {
	return []string{j.InputVCF, j.InputBam, j.ReferenceSequence, j.TargetRegions}
}

func (j *HeterozygoteConcordance) Outputs() []string  { return []string{j.Output} }
func (j *HeterozygoteConcordance) Intermediate() bool { return false }

// CreateContestVCFs intersects the population allele-frequency VCF with the
// target regions of both captures in a pair, producing the ContEst input.
type CreateContestVCFs struct {
	JobName            string
	InputPopulationVCF string
	InputTargetBED1    string
	InputTargetBED2    string
	Output             string
}

func (j *CreateContestVCFs) Name() string { return j.JobName }

func (j *CreateContestVCFs) Inputs() []string {
	return []string{j.InputPopulationVCF, j.InputTargetBED1, j.InputTargetBED2}
}

func (j *CreateContestVCFs) Outputs() []string  { return []string{j.Output} }
func (j *CreateContestVCFs) Intermediate() bool { return false }

// ContEst estimates cross-sample contamination of the eval bam using the
// genotype bam, in one direction.
type ContEst struct {
	JobName            string
	ReferenceGenome    string
	InputEvalBam       string
	InputGenotypeBam   string
	InputPopulationVCF string
	Output             string
}

func (j *ContEst) Name() string { return j.JobName }

func (j *ContEst) Inputs() []string {
	return []string{j.InputEvalBam, j.InputGenotypeBam, j.InputPopulationVCF, j.ReferenceGenome}
}

func (j *ContEst) Outputs() []string  { return []string{j.Output} }
func (j *ContEst) Intermediate() bool { return false }

// ContEstToContamCaveat derives the contamination QC verdict JSON from a
// ContEst result.
type ContEstToContamCaveat struct {
	JobName             string
	InputContestResults string
	Output              string
}

func (j *ContEstToContamCaveat) Name() string       { return j.JobName }
func (j *ContEstToContamCaveat) Inputs() []string   { return []string{j.InputContestResults} }
func (j *ContEstToContamCaveat) Outputs() []string  { return []string{j.Output} }
func (j *ContEstToContamCaveat) Intermediate() bool { return false }
