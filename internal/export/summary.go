package export

import (
	"github.com/gnomegl/contribtally/internal/models"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Repository column bounds for the console summary. Long repository names
// widen the column up to the clamp; short ones keep a stable layout.
const (
	repoColumnMinWidth = 40
	repoColumnMaxWidth = 80
)

// RenderSummary renders the repository -> unique contributor table with a
// total row counting distinct emails across all repositories once.
func RenderSummary(agg *models.Aggregate) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Repository", WidthMin: repoColumnMinWidth, WidthMax: repoColumnMaxWidth},
	})

	t.AppendHeader(table.Row{"Repository", "Unique Contributors"})
	for _, rc := range agg.RepoCounts {
		t.AppendRow(table.Row{rc.Repo, rc.Unique})
	}
	t.AppendFooter(table.Row{"Total", agg.TotalUnique})

	return t.Render()
}
