package app

import (
	"context"
	"fmt"
	"os"

	"github.com/oncoseq/clinplan/internal/ctxlog"
	"github.com/oncoseq/clinplan/internal/graph"
	"github.com/oncoseq/clinplan/internal/jobdb"
	"github.com/oncoseq/clinplan/internal/pipeline"
)

// RunPanel builds the generic panel-analysis job graph and emits the
// configured artifacts.
func (a *App) RunPanel(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("Building panel job graph...")

	p := pipeline.NewClinseq(a.sampleData, a.bundle, a.pipelineOptions())
	g, err := p.Build(ctx)
	if err != nil {
		return fmt.Errorf("failed to build job graph: %w", err)
	}
	return a.emit(ctx, g)
}

// RunAlascca builds the ALASCCA study job graph and emits the configured
// artifacts.
func (a *App) RunAlascca(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("Building ALASCCA job graph...")

	p := pipeline.NewAlascca(a.sampleData, a.bundle, pipeline.AlasccaOptions{
		Options:        a.pipelineOptions(),
		ReferralDBConf: a.config.ReferralDBConf,
		Addresses:      a.config.Addresses,
	})
	g, err := p.Build(ctx)
	if err != nil {
		return fmt.Errorf("failed to build job graph: %w", err)
	}
	return a.emit(ctx, g)
}

func (a *App) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Outdir:     a.config.Outdir,
		Libdir:     a.config.Libdir,
		AnalysisID: a.config.AnalysisID,
		MaxCores:   a.config.MaxCores,
		Scratch:    a.config.Scratch,
	}
}

// emit writes the finished graph to every configured sink and logs the
// summary.
func (a *App) emit(ctx context.Context, g *graph.Graph) error {
	if a.config.DOTPath != "" {
		f, err := os.Create(a.config.DOTPath)
		if err != nil {
			return fmt.Errorf("failed to create DOT file: %w", err)
		}
		defer f.Close()
		if err := g.WriteDOT(f); err != nil {
			return fmt.Errorf("failed to write DOT file: %w", err)
		}
		a.logger.Info("Job graph rendered.", "path", a.config.DOTPath)
	}

	if a.config.JobDBPath != "" {
		db, err := jobdb.Open(ctx, a.config.JobDBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.SaveGraph(ctx, a.config.AnalysisID, a.sampleData.SDID, g); err != nil {
			return fmt.Errorf("failed to persist job graph: %w", err)
		}
		a.logger.Info("Job graph persisted.", "path", a.config.JobDBPath, "jobs", g.Len())
	}

	a.logger.Info("Planning finished.",
		"sdid", a.sampleData.SDID,
		"jobs", g.Len(),
		"edges", len(g.Edges()),
		"external_inputs", len(g.ExternalInputs()))
	return nil
}
