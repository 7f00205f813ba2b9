package overlay

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Iron-Ham/gridwatch/internal/world"
)

// TeamSummary is one row of the team list.
type TeamSummary struct {
	Name string
	// Score is meaningful only when HasScore is true.
	Score    int64
	HasScore bool
	// ColorIndex is the team's position in sorted order and indexes the
	// team palette.
	ColorIndex int
}

// Label renders the row as "A: $40", or "A: $?" when the score is missing.
func (t TeamSummary) Label() string {
	if !t.HasScore {
		return t.Name + ": $?"
	}
	return fmt.Sprintf("%s: $%d", t.Name, t.Score)
}

// BuildTeams lists every team of the static world in ascending name order
// with its current score. A team without a score entry is kept with
// HasScore false.
func BuildTeams(teams map[string]world.Team, scores map[string]int64) []TeamSummary {
	names := slices.Sorted(maps.Keys(teams))
	out := make([]TeamSummary, 0, len(names))
	for i, name := range names {
		score, ok := scores[name]
		out = append(out, TeamSummary{
			Name:       name,
			Score:      score,
			HasScore:   ok,
			ColorIndex: i,
		})
	}
	return out
}
