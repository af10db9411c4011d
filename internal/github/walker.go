package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	gh "github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
)

// FetchRepoCommits walks every page of a repository's commit listing,
// following the "next" cursor until it is absent or the repository hits a
// terminal failure. It never returns an error: terminal failures and an
// exhausted timeout budget degrade to "fewer commits observed" and whatever
// was accumulated is returned.
//
// Two retry controls run independently: rate-limit waits happen inside the
// fetcher and are unbounded, while consecutive timeouts are retried here
// with 2^attempt seconds of backoff up to cfg.MaxRetries. A successful page
// resets the timeout counter.
func FetchRepoCommits(ctx context.Context, f *Fetcher, cfg *Config, owner, name string, since *time.Time) []*gh.RepositoryCommit {
	repo := owner + "/" + name
	pageURL := listCommitsURL(cfg, owner, name, since)

	var all []*gh.RepositoryCommit
	retries := 0

	for pageURL != "" {
		f.log.WithFields(logrus.Fields{"repo": repo, "url": pageURL}).Debug("Fetching commits page")

		page, err := f.FetchPage(ctx, pageURL)
		if err != nil {
			var fe *FetchError
			if !errors.As(err, &fe) {
				f.log.WithField("repo", repo).Warnf("Error fetching commits: %v", err)
				return all
			}

			switch fe.Kind {
			case KindTimeout:
				retries++
				if retries > cfg.MaxRetries {
					f.log.WithField("repo", repo).Warn("Max retries exceeded, skipping remaining pages")
					return all
				}
				backoff := time.Duration(1<<retries) * time.Second
				f.log.WithFields(logrus.Fields{"repo": repo, "attempt": retries}).
					Warnf("Request timed out, retrying in %s", backoff)
				f.sleep(backoff)
				continue

			case KindNotFound:
				f.log.WithField("repo", repo).Warn("Repository not found (404), skipping")
			case KindEmptyRepo:
				f.log.WithField("repo", repo).Info("Repository is empty or not accessible (409), skipping")
			default:
				f.log.WithField("repo", repo).Warnf("Error fetching commits: %v", fe)
			}
			return all
		}

		retries = 0
		all = append(all, page.Commits...)
		f.log.WithFields(logrus.Fields{
			"repo":  repo,
			"page":  len(page.Commits),
			"total": len(all),
		}).Debug("Fetched commits page")

		pageURL = page.Next
	}

	return all
}

func listCommitsURL(cfg *Config, owner, name string, since *time.Time) string {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(cfg.PerPage))
	if since != nil {
		q.Set("since", since.UTC().Format(time.RFC3339))
	}
	return fmt.Sprintf("%s/repos/%s/%s/commits?%s", cfg.APIURL, owner, name, q.Encode())
}
