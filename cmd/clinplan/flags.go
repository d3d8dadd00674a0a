package main

import (
	"github.com/spf13/cobra"

	"github.com/oncoseq/clinplan/internal/app"
)

// appFlags collects the planning flags shared by every pipeline subcommand.
type appFlags struct {
	samplePath  string
	refPath     string
	outdir      string
	libdir      string
	analysisID  string
	maxCores    int
	scratch     string
	jobdbPath   string
	dotPath     string
	logFormat   string
	logLevel    string
}

func (f *appFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.samplePath, "sample", "", "Sample description JSON file (required)")
	fs.StringVar(&f.refPath, "ref", "", "Reference-data bundle, HCL or JSON (required)")
	fs.StringVarP(&f.outdir, "outdir", "o", "", "Analysis output directory (required)")
	fs.StringVar(&f.libdir, "libdir", "", "Library directory holding per-barcode fastq directories (required)")
	fs.StringVar(&f.analysisID, "analysis-id", "", "Identifier recorded with the persisted job graph")
	fs.IntVar(&f.maxCores, "maxcores", 1, "Maximum cores any single job may request")
	fs.StringVar(&f.scratch, "scratch", "/tmp", "Scratch directory hint for jobs")
	fs.StringVar(&f.jobdbPath, "jobdb", "", "Persist the finished job graph to this SQLite database")
	fs.StringVar(&f.dotPath, "dot-file", "", "Write a Graphviz rendering of the job graph to this file")
	fs.StringVar(&f.logFormat, "log-format", "text", "Log format: text or json")
	fs.StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	_ = cmd.MarkFlagRequired("sample")
	_ = cmd.MarkFlagRequired("ref")
	_ = cmd.MarkFlagRequired("outdir")
	_ = cmd.MarkFlagRequired("libdir")
}

func (f *appFlags) config() *app.Config {
	return &app.Config{
		SamplePath:  f.samplePath,
		RefdataPath: f.refPath,
		Outdir:      f.outdir,
		Libdir:      f.libdir,
		AnalysisID:  f.analysisID,
		MaxCores:    f.maxCores,
		Scratch:     f.scratch,
		JobDBPath:   f.jobdbPath,
		DOTPath:     f.dotPath,
		LogFormat:   f.logFormat,
		LogLevel:    f.logLevel,
	}
}
