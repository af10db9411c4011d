package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gnomegl/contribtally/internal/config"
	"github.com/gnomegl/contribtally/internal/export"
	"github.com/gnomegl/contribtally/internal/github"
	"github.com/gnomegl/contribtally/internal/runlog"
)

type Orchestrator struct {
	cfg *config.AppConfig
	rec *runlog.Recorder
}

func NewOrchestrator(cfg *config.AppConfig, rec *runlog.Recorder) *Orchestrator {
	return &Orchestrator{cfg: cfg, rec: rec}
}

// Run executes the whole pipeline: load the repository list, fan out the
// commit walkers, write the report and print the summary. Per-repository
// failures are already degraded inside the pool; only input and output
// errors surface here.
func (o *Orchestrator) Run(ctx context.Context) error {
	repos, err := config.LoadRepoList(o.cfg.RepoFile)
	if err != nil {
		o.rec.Errorf("%v", err)
		return err
	}
	o.rec.WithField("count", len(repos)).Info("Processing repositories")

	var since *time.Time
	if o.cfg.Days > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -o.cfg.Days)
		since = &cutoff
		o.rec.WithField("since", cutoff.Format(time.RFC3339)).Info("Using cutoff date")
	}

	ghCfg := github.DefaultConfig()
	ghCfg.APIURL = o.cfg.APIURL
	if o.cfg.Concurrency > 0 {
		ghCfg.Workers = o.cfg.Concurrency
	}

	client := github.NewHTTPClient(o.cfg.Token, ghCfg.RequestTimeout)
	fetcher := github.NewFetcher(client, o.rec.Logger)

	agg := github.ProcessRepos(ctx, fetcher, ghCfg, repos, since, !o.cfg.Debug)

	o.rec.WithField("path", o.cfg.Output).Info("Writing report")
	if err := export.WriteReport(o.cfg.Output, agg.Rows); err != nil {
		o.rec.Errorf("%v", err)
		return err
	}

	color.Cyan("\nContributor Summary:")
	fmt.Println(export.RenderSummary(agg))
	fmt.Printf("\nDetailed data written to %s\n", o.cfg.Output)

	return nil
}
