package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gnomegl/contribtally/internal/models"
	"github.com/gnomegl/contribtally/internal/runlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessReposOneFailureDoesNotAbortSiblings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"sha":"s","commit":{"author":{"name":"Ada","email":"ada@example.com","date":"2025-06-01T10:00:00Z"}}}]`)
	}))
	defer server.Close()

	repos := make([]string, 0, 50)
	for i := 0; i < 49; i++ {
		repos = append(repos, fmt.Sprintf("owner/repo-%d", i))
	}
	repos = append(repos, "not-a-valid-repo-line")

	cfg := DefaultConfig()
	cfg.APIURL = server.URL
	cfg.Workers = 8

	rec := runlog.NewDiscard()
	f := NewFetcher(server.Client(), rec.Logger)
	f.sleep = func(time.Duration) {}

	agg := ProcessRepos(context.Background(), f, cfg, repos, nil, false)

	assert.Equal(t, 1, agg.Failed)
	assert.Len(t, agg.RepoCounts, 49, "the other 49 repositories all complete")
	assert.Len(t, agg.Rows, 49)
	assert.True(t, rec.HadProblems(), "the failing job is logged as an error")

	for _, rc := range agg.RepoCounts {
		assert.Equal(t, 1, rc.Unique)
	}
}

func TestProcessReposPerRepoDedupIsIndependent(t *testing.T) {
	// The same email contributes to both repositories.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"sha":"s","commit":{"author":{"name":"Ada","email":"ada@example.com","date":"2025-06-01T10:00:00Z"}}}]`)
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.APIURL = server.URL
	cfg.Workers = 2

	f := NewFetcher(server.Client(), discardLogger())

	agg := ProcessRepos(context.Background(), f, cfg, []string{"o/first", "o/second"}, nil, false)

	assert.Len(t, agg.Rows, 2, "one row per (repository, contributor) pair")
	require.Len(t, agg.RepoCounts, 2)
	assert.Equal(t, 1, agg.RepoCounts[0].Unique)
	assert.Equal(t, 1, agg.RepoCounts[1].Unique)
	assert.Equal(t, 1, agg.TotalUnique, "global count dedups across repositories")
}

func TestProcessReposEndToEnd(t *testing.T) {
	// Three pages, newest-first: two human authors with two commits each
	// under one email, plus one bot commit. Expect exactly two rows with
	// each author's most recent commit date, and no bot email anywhere.
	pages := map[string]string{
		"": `[
			{"sha":"1","commit":{"author":{"name":"Ada","email":"ada@example.com","date":"2025-06-10T09:00:00Z"}}},
			{"sha":"2","author":{"login":"dependabot[bot]","type":"Bot"},"commit":{"author":{"name":"dependabot[bot]","email":"49699333+dependabot[bot]@users.noreply.github.com","date":"2025-06-09T08:00:00Z"}}}
		]`,
		"2": `[
			{"sha":"3","commit":{"author":{"name":"Bob","email":"bob@example.com","date":"2025-06-08T07:00:00Z"}}},
			{"sha":"4","commit":{"author":{"name":"Ada","email":"ada@example.com","date":"2025-06-07T06:00:00Z"}}}
		]`,
		"3": `[
			{"sha":"5","commit":{"author":{"name":"Bob","email":"bob@example.com","date":"2025-06-06T05:00:00Z"}}}
		]`,
	}

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		switch page {
		case "":
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/o/r/commits?page=2>; rel="next"`, server.URL))
		case "2":
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/o/r/commits?page=3>; rel="next"`, server.URL))
		}
		fmt.Fprint(w, pages[page])
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.APIURL = server.URL

	f := NewFetcher(server.Client(), discardLogger())

	agg := ProcessRepos(context.Background(), f, cfg, []string{"o/r"}, nil, false)

	require.Len(t, agg.Rows, 2)
	require.Len(t, agg.RepoCounts, 1)
	assert.Equal(t, 2, agg.RepoCounts[0].Unique)
	assert.Equal(t, 2, agg.TotalUnique)

	byEmail := map[string]models.ContributorRow{}
	for _, row := range agg.Rows {
		byEmail[row.Email] = row
		assert.False(t, strings.Contains(row.Email, "[bot]"), "bot emails never appear in the output")
	}

	ada, ok := byEmail["ada@example.com"]
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), ada.LastCommit)

	bob, ok := byEmail["bob@example.com"]
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 8, 7, 0, 0, 0, time.UTC), bob.LastCommit)
}

func TestSplitRepo(t *testing.T) {
	cases := []struct {
		in    string
		owner string
		name  string
		ok    bool
	}{
		{"octocat/hello-world", "octocat", "hello-world", true},
		{"missing-slash", "", "", false},
		{"too/many/parts", "", "", false},
		{"/no-owner", "", "", false},
		{"no-name/", "", "", false},
	}

	for _, tc := range cases {
		owner, name, ok := splitRepo(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.owner, owner, tc.in)
		assert.Equal(t, tc.name, name, tc.in)
	}
}
