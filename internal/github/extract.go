package github

import (
	"strings"

	"github.com/gnomegl/contribtally/internal/models"
	gh "github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
)

// isBot reports whether a commit was authored by an automated account:
// the outer author's account type is "Bot", its login ends with "[bot]",
// or the commit author email ends with "[bot]" (all case-insensitive).
func isBot(commit *gh.RepositoryCommit) bool {
	if author := commit.GetAuthor(); author != nil {
		if author.GetType() == "Bot" {
			return true
		}
		if strings.HasSuffix(strings.ToLower(author.GetLogin()), "[bot]") {
			return true
		}
	}

	email := strings.ToLower(commit.GetCommit().GetAuthor().GetEmail())
	return strings.HasSuffix(email, "[bot]")
}

// ExtractContributors deduplicates the human authors of one repository's
// commit sequence by lower-cased email. The first occurrence of an email
// wins; commits arrive newest-first, so the recorded LastCommit is that
// email's most recent commit date. Emails classified as bots are excluded
// for the rest of the sequence, even if a later commit carries no bot
// markers. The repo argument is only used for logging.
func ExtractContributors(commits []*gh.RepositoryCommit, repo string, log *logrus.Logger) []models.Contributor {
	var contributors []models.Contributor
	seen := make(map[string]struct{})
	bots := make(map[string]struct{})

	for _, commit := range commits {
		author := commit.GetCommit().GetAuthor()
		if author == nil {
			log.WithFields(logrus.Fields{"repo": repo, "sha": commit.GetSHA()}).
				Info("Skipping commit with no author metadata")
			continue
		}

		email := strings.ToLower(author.GetEmail())
		if email == "" {
			email = "n/a"
		}
		name := author.GetName()
		if name == "" {
			name = "N/A"
		}

		if isBot(commit) {
			if _, known := bots[email]; !known {
				log.WithFields(logrus.Fields{"repo": repo, "email": email, "name": name}).
					Info("Contributor is a bot")
				bots[email] = struct{}{}
			}
			continue
		}
		if _, banned := bots[email]; banned {
			continue
		}

		if _, exists := seen[email]; exists {
			continue
		}
		seen[email] = struct{}{}

		log.WithFields(logrus.Fields{"repo": repo, "email": email, "name": name}).
			Info("Adding contributor")
		contributors = append(contributors, models.Contributor{
			Name:       name,
			Email:      email,
			LastCommit: author.GetDate().Time,
		})
	}

	return contributors
}
