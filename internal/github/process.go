package github

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gnomegl/contribtally/internal/models"
	"github.com/schollz/progressbar/v3"
)

// RepoResult is one repository job's output: either its deduplicated
// contributor list or the error that failed the job. Each job owns its own
// slice; nothing is shared between jobs until the collector merges them.
type RepoResult struct {
	Repo         string
	Contributors []models.Contributor
	Err          error
}

// ProcessRepos fans out one job per repository across a bounded worker pool
// and merges results as jobs complete. The merge runs on the calling
// goroutine, one result at a time, so the aggregate needs no lock. A failing
// job is logged, counted and excluded; it never aborts its siblings.
func ProcessRepos(ctx context.Context, f *Fetcher, cfg *Config, repos []string, since *time.Time, showProgress bool) *models.Aggregate {
	jobs := make(chan string)
	results := make(chan RepoResult)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for repo := range jobs {
				results <- processRepo(ctx, f, cfg, repo, since)
			}
		}()
	}

	go func() {
		for _, repo := range repos {
			jobs <- repo
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.NewOptions(len(repos),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("[cyan]Tallying repositories[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	agg := &models.Aggregate{}
	globalEmails := make(map[string]struct{})

	for res := range results {
		if res.Err != nil {
			f.log.WithField("repo", res.Repo).Errorf("Error processing repository: %v", res.Err)
			agg.Failed++
		} else {
			agg.RepoCounts = append(agg.RepoCounts, models.RepoCount{Repo: res.Repo, Unique: len(res.Contributors)})
			for _, c := range res.Contributors {
				agg.Rows = append(agg.Rows, models.ContributorRow{
					Repo:       res.Repo,
					Email:      c.Email,
					Name:       c.Name,
					LastCommit: c.LastCommit,
				})
				globalEmails[c.Email] = struct{}{}
			}
		}
		if bar != nil {
			bar.Add(1)
		}
	}

	if bar != nil {
		bar.Finish()
	}

	agg.TotalUnique = len(globalEmails)
	return agg
}

// processRepo runs the walker and extractor pipeline for a single job.
func processRepo(ctx context.Context, f *Fetcher, cfg *Config, repo string, since *time.Time) RepoResult {
	owner, name, ok := splitRepo(repo)
	if !ok {
		return RepoResult{Repo: repo, Err: fmt.Errorf("invalid repository %q, expected owner/name", repo)}
	}

	f.log.WithField("repo", repo).Info("Processing repository")
	commits := FetchRepoCommits(ctx, f, cfg, owner, name, since)
	contributors := ExtractContributors(commits, repo, f.log)

	return RepoResult{Repo: repo, Contributors: contributors}
}

func splitRepo(repo string) (owner, name string, ok bool) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
