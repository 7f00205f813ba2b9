package world

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Terrain is the classification code of a grid cell.
type Terrain int

// Known terrain codes. Other values may appear in a feed and are carried
// through unchanged.
const (
	TerrainEmpty    Terrain = 0
	TerrainGoal     Terrain = 1
	TerrainObstacle Terrain = 2
)

// Name returns the display name of a known terrain code and false for
// unknown codes.
func (t Terrain) Name() (string, bool) {
	switch t {
	case TerrainEmpty:
		return "empty", true
	case TerrainGoal:
		return "goal", true
	case TerrainObstacle:
		return "obstacle", true
	default:
		return "", false
	}
}

// cell is one grid entry; present is false for holes in a ragged row.
type cell struct {
	terrain Terrain
	present bool
}

// Grid is a ragged terrain grid indexed [y][x]. Whole rows and single cells
// may be missing; a missing row is nil.
type Grid struct {
	rows [][]cell
}

// NewGrid builds a grid in which every listed cell is present.
func NewGrid(rows [][]int) Grid {
	g := Grid{rows: make([][]cell, len(rows))}
	for y, row := range rows {
		if row == nil {
			continue
		}
		g.rows[y] = make([]cell, len(row))
		for x, code := range row {
			g.rows[y][x] = cell{terrain: Terrain(code), present: true}
		}
	}
	return g
}

// At returns the terrain at (x, y) and false if the row or cell is absent.
func (g Grid) At(x, y int) (Terrain, bool) {
	if y < 0 || y >= len(g.rows) || x < 0 {
		return 0, false
	}
	row := g.rows[y]
	if x >= len(row) {
		return 0, false
	}
	c := row[x]
	return c.terrain, c.present
}

// Rows returns the number of row slots, including absent rows.
func (g Grid) Rows() int {
	return len(g.rows)
}

// RowLen returns the number of cell slots in row y, 0 when the row is absent.
func (g Grid) RowLen(y int) int {
	if y < 0 || y >= len(g.rows) {
		return 0
	}
	return len(g.rows[y])
}

// UnmarshalJSON decodes a nested array where null marks an absent row or cell.
func (g *Grid) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		g.rows = nil
		return nil
	}
	var raw [][]*int
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding cells: %w", err)
	}
	rows := make([][]cell, len(raw))
	for y, row := range raw {
		if row == nil {
			continue
		}
		rows[y] = make([]cell, len(row))
		for x, code := range row {
			if code == nil {
				continue
			}
			rows[y][x] = cell{terrain: Terrain(*code), present: true}
		}
	}
	g.rows = rows
	return nil
}

// MarshalJSON encodes the grid with null for absent rows and cells.
func (g Grid) MarshalJSON() ([]byte, error) {
	raw := make([][]*int, len(g.rows))
	for y, row := range g.rows {
		if row == nil {
			continue
		}
		raw[y] = make([]*int, len(row))
		for x, c := range row {
			if !c.present {
				continue
			}
			code := int(c.terrain)
			raw[y][x] = &code
		}
	}
	return json.Marshal(raw)
}
