package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	gh "github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
)

// rateLimitMargin is added on top of the reset window so the retry lands
// after the server-side counter has actually rolled over.
const rateLimitMargin = 3 * time.Second

// Page is one page of the commit listing plus the cursor to the next one.
// Next is empty on the last page.
type Page struct {
	Commits []*gh.RepositoryCommit
	Next    string
}

// Fetcher issues single page requests against the commit-listing endpoint
// and interprets status codes. Rate-limit responses are waited out and
// retried in place, without bound; every other failure is returned to the
// caller as a FetchError for the walker to act on.
type Fetcher struct {
	client *http.Client
	log    *logrus.Logger

	// overridable in tests so rate-limit and backoff paths run instantly
	now   func() time.Time
	sleep func(time.Duration)
}

func NewFetcher(client *http.Client, log *logrus.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		log:    log,
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// FetchPage GETs one page URL. On 403 it reads the X-RateLimit-Reset header,
// sleeps until the reset plus a safety margin, and retries the same page;
// those waits do not count against any retry budget.
func (f *Fetcher) FetchPage(ctx context.Context, pageURL string) (*Page, error) {
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, &FetchError{Kind: KindTransport, URL: pageURL, Err: err}
		}
		req.Header.Set("Accept", "application/vnd.github+json")

		resp, err := f.client.Do(req)
		if err != nil {
			if isTimeout(err) {
				return nil, &FetchError{Kind: KindTimeout, URL: pageURL, Err: err}
			}
			return nil, &FetchError{Kind: KindTransport, URL: pageURL, Err: err}
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			resp.Body.Close()
			return nil, &FetchError{Kind: KindNotFound, StatusCode: resp.StatusCode, URL: pageURL}

		case resp.StatusCode == http.StatusConflict:
			resp.Body.Close()
			return nil, &FetchError{Kind: KindEmptyRepo, StatusCode: resp.StatusCode, URL: pageURL}

		case resp.StatusCode == http.StatusForbidden:
			wait := f.rateLimitWait(resp)
			resp.Body.Close()
			f.log.WithFields(logrus.Fields{
				"url":        pageURL,
				"wait":       formatWait(wait),
				"resumes_at": f.now().Add(wait).Format("15:04"),
			}).Warn("Rate limit exceeded, waiting for reset")
			f.sleep(wait)
			continue

		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			resp.Body.Close()
			return nil, &FetchError{Kind: KindTransport, StatusCode: resp.StatusCode, URL: pageURL}
		}

		page, err := f.decodePage(resp, pageURL)
		resp.Body.Close()
		return page, err
	}
}

func (f *Fetcher) decodePage(resp *http.Response, pageURL string) (*Page, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, &FetchError{Kind: KindTimeout, URL: pageURL, Err: err}
		}
		return nil, &FetchError{Kind: KindTransport, URL: pageURL, Err: err}
	}

	var commits []*gh.RepositoryCommit
	if err := json.Unmarshal(body, &commits); err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: pageURL, Err: err}
	}

	page := &Page{Commits: commits}
	if header := resp.Header.Get("Link"); header != "" {
		links, err := ParseLinkHeader(header)
		if err != nil {
			// Upstream contract violation; treat as the last page rather
			// than discarding what this page already returned.
			f.log.WithField("url", pageURL).Warnf("Unparseable Link header: %v", err)
			return page, nil
		}
		page.Next = links["next"]
	}

	return page, nil
}

// rateLimitWait computes how long to sleep before retrying a 403 response.
// A missing or unparseable reset header degrades to the bare safety margin.
func (f *Fetcher) rateLimitWait(resp *http.Response) time.Duration {
	wait := time.Duration(0)
	if raw := resp.Header.Get("X-RateLimit-Reset"); raw != "" {
		if reset, err := strconv.ParseInt(raw, 10, 64); err == nil {
			wait = time.Unix(reset, 0).Sub(f.now())
			if wait < 0 {
				wait = 0
			}
		}
	}
	return wait + rateLimitMargin
}

func formatWait(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%dm%02ds", secs/60, secs%60)
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
