package export

import (
	"strings"
	"testing"

	"github.com/gnomegl/contribtally/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSummary(t *testing.T) {
	agg := &models.Aggregate{
		RepoCounts: []models.RepoCount{
			{Repo: "octo/widgets", Unique: 2},
			{Repo: "octo/gadgets", Unique: 1},
		},
		TotalUnique: 2,
	}

	out := RenderSummary(agg)

	assert.Contains(t, out, "Repository")
	assert.Contains(t, out, "Unique Contributors")
	assert.Contains(t, out, "octo/widgets")
	assert.Contains(t, out, "octo/gadgets")
	assert.Contains(t, out, "Total")

	widgetsLine := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "octo/widgets") {
			widgetsLine = line
		}
	}
	require.NotEmpty(t, widgetsLine)
	assert.Contains(t, widgetsLine, "2")
}

func TestRenderSummaryRowOrderFollowsCompletion(t *testing.T) {
	agg := &models.Aggregate{
		RepoCounts: []models.RepoCount{
			{Repo: "second/done-first", Unique: 3},
			{Repo: "first/done-last", Unique: 1},
		},
		TotalUnique: 4,
	}

	out := RenderSummary(agg)
	assert.Less(t, strings.Index(out, "second/done-first"), strings.Index(out, "first/done-last"))
}
