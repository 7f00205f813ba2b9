// Package testutil provides shared fixtures for gridwatch tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Iron-Ham/gridwatch/internal/world"
)

// SampleStatic returns a static world with three teams and 500 steps.
func SampleStatic() *world.StaticWorld {
	return &world.StaticWorld{
		SimID: "sim-test",
		Teams: map[string]world.Team{
			"C": {Name: "C"},
			"A": {Name: "A"},
			"B": {Name: "B"},
		},
		Steps:      500,
		Grid:       world.Size{Width: 4, Height: 3},
		BlockTypes: []string{"b0", "b1", "b2"},
	}
}

// SampleDynamic returns step 42 of a small world. Cell (0,1) holds a
// dispenser, a block and an agent; team C has no score entry.
func SampleDynamic() *world.DynamicWorld {
	return &world.DynamicWorld{
		Step:   42,
		Scores: map[string]int64{"A": 40, "B": 0},
		Tasks: []world.Task{
			{
				Name: "task2", Reward: 90, Deadline: 300,
				Requirements: []world.Block{{X: 0, Y: 1, Type: "b0"}, {X: 1, Y: 1, Type: "b1"}},
			},
			{
				Name: "task0", Reward: 40, Deadline: 120,
				Requirements: []world.Block{{X: 0, Y: 1, Type: "b2"}},
			},
		},
		Cells: world.NewGrid([][]int{
			{0, 1, 0, 2},
			{0, 0, 1},
			{2, 2, 2, 2},
		}),
		Dispensers: []world.Dispenser{{ID: 10, X: 0, Y: 1, Type: "b1"}},
		Blocks:     []world.Block{{X: 0, Y: 1, Type: "b0"}, {X: 3, Y: 0, Type: "b2"}},
		Entities: []world.Entity{
			{ID: 1, X: 0, Y: 1, Name: "agentA1", Team: "A"},
			{ID: 2, X: 2, Y: 1, Name: "agentB1", Team: "B"},
		},
	}
}

// WriteJSON marshals v into name under dir and returns the full path.
func WriteJSON(t *testing.T, dir, name string, v any) string {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
