package overlay

import (
	"fmt"
	"iter"
	"slices"

	"github.com/Iron-Ham/gridwatch/internal/world"
)

// FactKind classifies a cell fact.
type FactKind int

const (
	FactPosition FactKind = iota
	FactTerrain
	FactDispenser
	FactBlock
	FactAgent
)

// Fact is one line of the cell inspector.
type Fact struct {
	Kind FactKind
	Text string
}

// Inspect yields what occupies pos: the position, the terrain, then every
// dispenser, block and agent on the cell in the order of their collections.
// Nothing is yielded when the row or the cell at pos is absent from the grid.
// Unknown terrain codes produce no terrain fact.
func Inspect(dyn *world.DynamicWorld, pos world.Pos) iter.Seq[Fact] {
	return func(yield func(Fact) bool) {
		if dyn == nil {
			return
		}
		terrain, ok := dyn.Cells.At(pos.X, pos.Y)
		if !ok {
			return
		}

		if !yield(Fact{FactPosition, fmt.Sprintf("x = %d, y = %d", pos.X, pos.Y)}) {
			return
		}
		if name, known := terrain.Name(); known {
			if !yield(Fact{FactTerrain, "terrain: " + name}) {
				return
			}
		}
		for _, d := range dyn.Dispensers {
			if d.At(pos) && !yield(Fact{FactDispenser, "dispenser: type = " + d.Type}) {
				return
			}
		}
		for _, b := range dyn.Blocks {
			if b.At(pos) && !yield(Fact{FactBlock, "block: type = " + b.Type}) {
				return
			}
		}
		for _, e := range dyn.Entities {
			if e.At(pos) && !yield(Fact{FactAgent, fmt.Sprintf("agent: name = %s, team = %s", e.Name, e.Team)}) {
				return
			}
		}
	}
}

// InspectAll collects [Inspect] into a slice.
func InspectAll(dyn *world.DynamicWorld, pos world.Pos) []Fact {
	return slices.Collect(Inspect(dyn, pos))
}

// FactTexts returns the text of each fact.
func FactTexts(facts []Fact) []string {
	out := make([]string, len(facts))
	for i, f := range facts {
		out[i] = f.Text
	}
	return out
}
