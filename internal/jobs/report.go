package jobs

// AlasccaCNAPlot estimates copy number and tumor purity from the somatic
// calls, AF-enriched germline calls, and CNVkit outputs of the single
// (normal, tumor) pair.
type AlasccaCNAPlot struct {
	JobName          string
	InputSomaticVCF  string
	InputGermlineVCF string
	InputCNR         string
	InputCNS         string
	Chrsizes         string
	OutputCNA        string
	OutputPurity     string
	OutputPNG        string
}

func (j *AlasccaCNAPlot) Name() string { return j.JobName }

func (j *AlasccaCNAPlot) Inputs() []string {
	return []string{j.InputSomaticVCF, j.InputGermlineVCF, j.InputCNR, j.InputCNS, j.Chrsizes}
}

func (j *AlasccaCNAPlot) Outputs() []string {
	return []string{j.OutputCNA, j.OutputPurity, j.OutputPNG}
}

func (j *AlasccaCNAPlot) Intermediate() bool { return false }

// CompileMetadata assembles referral metadata for the report from the
// external referral database, keyed by the blood and tumor sample barcodes.
type CompileMetadata struct {
	JobName        string
	ReferralDBConf string
	Addresses      string
	BloodBarcode   string
	TumorBarcode   string
	OutputJSON     string
}

func (j *CompileMetadata) Name() string       { return j.JobName }
func (j *CompileMetadata) Inputs() []string   { return []string{j.ReferralDBConf, j.Addresses} }
func (j *CompileMetadata) Outputs() []string  { return []string{j.OutputJSON} }
func (j *CompileMetadata) Intermediate() bool { return false }

// CompileAlasccaGenomicJSON merges somatic calls, CNA/purity calls, MSI
// output, and the three QC verdicts into the structured genomic findings
// artifact.
type CompileAlasccaGenomicJSON struct {
	JobName          string
	InputSomaticVCF  string
	InputCNCalls     string
	InputMSISensor   string
	InputPurityQC    string
	InputContamQC    string
	InputTumorCovQC  string
	InputNormalCovQC string
	OutputJSON       string
}

func (j *CompileAlasccaGenomicJSON) Name() string { return j.JobName }

func (j *CompileAlasccaGenomicJSON) Inputs() []string {
	return []string{
		j.InputSomaticVCF, j.InputCNCalls, j.InputMSISensor,
		j.InputPurityQC, j.InputContamQC, j.InputTumorCovQC, j.InputNormalCovQC,
	}
}

func (j *CompileAlasccaGenomicJSON) Outputs() []string  { return []string{j.OutputJSON} }
func (j *CompileAlasccaGenomicJSON) Intermediate() bool { return false }

// WriteAlasccaReport renders the final report PDF from the metadata and
// genomic findings artifacts.
type WriteAlasccaReport struct {
	JobName           string
	InputGenomicJSON  string
	InputMetadataJSON string
	OutputPDF         string
}

func (j *WriteAlasccaReport) Name() string { return j.JobName }

func (j *WriteAlasccaReport) Inputs() []string {
	return []string{j.InputGenomicJSON, j.InputMetadataJSON}
}

func (j *WriteAlasccaReport) Outputs() []string  { return []string{j.OutputPDF} }
func (j *WriteAlasccaReport) Intermediate() bool { return false }
