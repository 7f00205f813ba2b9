package world

import (
	"encoding/json"
	"testing"
)

func TestGridAt(t *testing.T) {
	g := NewGrid([][]int{{0, 1}, {2}})

	tests := []struct {
		name        string
		x, y        int
		wantTerrain Terrain
		wantOK      bool
	}{
		{"first cell", 0, 0, TerrainEmpty, true},
		{"goal cell", 1, 0, TerrainGoal, true},
		{"obstacle on short row", 0, 1, TerrainObstacle, true},
		{"past end of short row", 1, 1, 0, false},
		{"row out of range", 0, 5, 0, false},
		{"negative x", -1, 0, 0, false},
		{"negative y", 0, -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.At(tt.x, tt.y)
			if ok != tt.wantOK {
				t.Fatalf("At(%d, %d) ok = %v, want %v", tt.x, tt.y, ok, tt.wantOK)
			}
			if ok && got != tt.wantTerrain {
				t.Errorf("At(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.wantTerrain)
			}
		})
	}
}

func TestGridUnmarshalJSON(t *testing.T) {
	var g Grid
	if err := json.Unmarshal([]byte(`[[0,null,2],null,[1]]`), &g); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if g.Rows() != 3 {
		t.Fatalf("Rows() = %d, want 3", g.Rows())
	}
	if _, ok := g.At(1, 0); ok {
		t.Error("null cell should be absent")
	}
	if _, ok := g.At(0, 1); ok {
		t.Error("null row should be absent")
	}
	if g.RowLen(1) != 0 {
		t.Errorf("RowLen(1) = %d, want 0", g.RowLen(1))
	}
	if got, ok := g.At(2, 0); !ok || got != TerrainObstacle {
		t.Errorf("At(2, 0) = %d, %v; want obstacle", got, ok)
	}
	if got, ok := g.At(0, 2); !ok || got != TerrainGoal {
		t.Errorf("At(0, 2) = %d, %v; want goal", got, ok)
	}
}

func TestGridMarshalKeepsHoles(t *testing.T) {
	var g Grid
	in := `[[0,null],null,[7]]`
	if err := json.Unmarshal([]byte(in), &g); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	out, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != in {
		t.Errorf("Marshal = %s, want %s", out, in)
	}
}

func TestTerrainName(t *testing.T) {
	tests := []struct {
		code   Terrain
		want   string
		wantOK bool
	}{
		{TerrainEmpty, "empty", true},
		{TerrainGoal, "goal", true},
		{TerrainObstacle, "obstacle", true},
		{Terrain(3), "", false},
		{Terrain(-1), "", false},
	}
	for _, tt := range tests {
		got, ok := tt.code.Name()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Terrain(%d).Name() = %q, %v; want %q, %v", tt.code, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDynamicWorldDecode(t *testing.T) {
	data := []byte(`{
		"step": 3,
		"scores": {"A": 40},
		"tasks": [{"name": "task1", "reward": 40, "deadline": 120,
			"requirements": [{"x": 0, "y": 1, "type": "b0"}]}],
		"cells": [[0, 1], [2]],
		"dispensers": [{"id": 7, "x": 0, "y": 1, "type": "b1"}],
		"blocks": [],
		"entities": [{"id": 1, "x": 1, "y": 0, "name": "agentA1", "team": "A"}]
	}`)

	var dyn DynamicWorld
	if err := json.Unmarshal(data, &dyn); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if dyn.Step != 3 {
		t.Errorf("Step = %d, want 3", dyn.Step)
	}
	if dyn.Scores["A"] != 40 {
		t.Errorf("Scores[A] = %d, want 40", dyn.Scores["A"])
	}
	if len(dyn.Tasks) != 1 || dyn.Tasks[0].Requirements[0].Type != "b0" {
		t.Errorf("Tasks = %+v", dyn.Tasks)
	}
	if got, ok := dyn.Cells.At(1, 0); !ok || got != TerrainGoal {
		t.Errorf("Cells.At(1, 0) = %d, %v", got, ok)
	}
	if !dyn.Dispensers[0].At(Pos{X: 0, Y: 1}) {
		t.Error("dispenser should be at (0,1)")
	}
	if !dyn.Entities[0].At(Pos{X: 1, Y: 0}) {
		t.Error("entity should be at (1,0)")
	}
}

func TestStaticWorldHelpers(t *testing.T) {
	st := &StaticWorld{Steps: 500, BlockTypes: []string{"b0", "b1"}}

	if st.LastStep() != 499 {
		t.Errorf("LastStep() = %d, want 499", st.LastStep())
	}
	if st.BlockTypeIndex("b1") != 1 {
		t.Errorf("BlockTypeIndex(b1) = %d, want 1", st.BlockTypeIndex("b1"))
	}
	if st.BlockTypeIndex("b9") != -1 {
		t.Errorf("BlockTypeIndex(b9) = %d, want -1", st.BlockTypeIndex("b9"))
	}

	var nilWorld *StaticWorld
	if nilWorld.BlockTypeIndex("b0") != -1 {
		t.Error("nil StaticWorld should report -1")
	}
}
