package models

import "time"

// Contributor is one deduplicated human author within a single repository,
// keyed by lower-cased email. LastCommit is the author date of the first
// commit observed for that email; the API returns commits newest-first, so
// first seen means most recent.
type Contributor struct {
	Name       string
	Email      string
	LastCommit time.Time
}

// ContributorRow is one line of the final report: a (repository, contributor)
// pair. The same email contributing to two repositories yields two rows.
type ContributorRow struct {
	Repo       string
	Email      string
	Name       string
	LastCommit time.Time
}

// RepoCount pairs a repository with its unique contributor count.
type RepoCount struct {
	Repo   string
	Unique int
}

// Aggregate is the merged result of a run. Rows are in job completion order,
// then insertion order within a job. TotalUnique counts distinct emails
// across all rows, so a cross-repository contributor counts once.
type Aggregate struct {
	Rows        []ContributorRow
	RepoCounts  []RepoCount
	TotalUnique int
	Failed      int
}
