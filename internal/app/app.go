// Package app wires the planner together: it loads the sample description
// and reference-data bundle, builds the requested pipeline's job graph, and
// emits the configured artifacts (job database, DOT rendering, summary).
package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/oncoseq/clinplan/internal/refdata"
	"github.com/oncoseq/clinplan/internal/sample"
)

// Config holds everything an App instance needs to run one planning pass.
type Config struct {
	SamplePath  string // sample description JSON
	RefdataPath string // reference-data bundle, HCL or JSON

	Outdir     string
	Libdir     string
	AnalysisID string
	MaxCores   int
	Scratch    string

	JobDBPath string // when set, persist the finished graph here
	DOTPath   string // when set, write a DOT rendering here

	// ALASCCA report inputs; only consulted by the alascca pipeline.
	ReferralDBConf string
	Addresses      string

	LogFormat string
	LogLevel  string
}

// Validate checks the fields every pipeline requires.
func (c *Config) Validate() error {
	if c.SamplePath == "" {
		return fmt.Errorf("a sample description file is required")
	}
	if c.RefdataPath == "" {
		return fmt.Errorf("a reference-data bundle is required")
	}
	if c.Outdir == "" {
		return fmt.Errorf("an output directory is required")
	}
	if c.Libdir == "" {
		return fmt.Errorf("a library directory is required")
	}
	return nil
}

// App encapsulates the planner's dependencies and lifecycle. It owns an
// isolated logger writing to outW.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	sampleData *sample.Set
	bundle     *refdata.Bundle
}

// New constructs an App and loads its inputs. A failure to load either
// input file is a fatal startup error.
func New(outW io.Writer, config *Config) (*App, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	sampleData, err := sample.Load(config.SamplePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load sample description: %w", err)
	}
	logger.Debug("Sample description loaded.", "sdid", sampleData.SDID)

	bundle, err := refdata.Load(config.RefdataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference-data bundle: %w", err)
	}
	logger.Debug("Reference-data bundle loaded.", "path", config.RefdataPath)

	return &App{
		outW:       outW,
		logger:     logger,
		config:     config,
		sampleData: sampleData,
		bundle:     bundle,
	}, nil
}

// Logger returns the application's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
