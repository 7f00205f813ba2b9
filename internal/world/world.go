// Package world defines the snapshot types received from the simulation feed.
//
// A [StaticWorld] is sent once per simulation and never changes. A
// [DynamicWorld] describes a single step and is replaced wholesale when the
// next step arrives. Consumers treat both as read-only values.
package world

// Team is the per-team metadata carried by the static snapshot.
type Team struct {
	Name string `json:"name,omitempty"`
}

// Size is the extent of the simulation grid.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// StaticWorld is the simulation metadata fixed for the lifetime of a session.
type StaticWorld struct {
	SimID      string          `json:"sim,omitempty"`
	Teams      map[string]Team `json:"teams"`
	Steps      int             `json:"steps"`
	Grid       Size            `json:"grid"`
	BlockTypes []string        `json:"blockTypes,omitempty"`
}

// LastStep returns the index of the final step, or -1 if Steps is unset.
func (s *StaticWorld) LastStep() int {
	return s.Steps - 1
}

// BlockTypeIndex returns the position of typ in BlockTypes, or -1.
func (s *StaticWorld) BlockTypeIndex(typ string) int {
	if s == nil {
		return -1
	}
	for i, t := range s.BlockTypes {
		if t == typ {
			return i
		}
	}
	return -1
}

// DynamicWorld is the snapshot of a single simulation step.
type DynamicWorld struct {
	Step       int              `json:"step"`
	Scores     map[string]int64 `json:"scores"`
	Tasks      []Task           `json:"tasks"`
	Cells      Grid             `json:"cells"`
	Dispensers []Dispenser      `json:"dispensers"`
	Blocks     []Block          `json:"blocks"`
	Entities   []Entity         `json:"entities"`
}

// Task is a reward-bearing goal that requires a block pattern to be assembled
// before the deadline step.
type Task struct {
	Name         string  `json:"name"`
	Reward       int     `json:"reward"`
	Deadline     int     `json:"deadline"`
	Requirements []Block `json:"requirements"`
}

// Block is a typed block. For task requirements X and Y are offsets from the
// agent performing the task; for world blocks they are absolute coordinates.
type Block struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Type string `json:"type"`
}

// Pos is an absolute grid coordinate.
type Pos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by dx, dy.
func (p Pos) Add(dx, dy int) Pos {
	return Pos{X: p.X + dx, Y: p.Y + dy}
}

// Dispenser is a fixed map feature producing blocks of one type.
type Dispenser struct {
	ID   int    `json:"id,omitempty"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Type string `json:"type"`
}

// Entity is an agent on the grid.
type Entity struct {
	ID   int    `json:"id,omitempty"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Name string `json:"name"`
	Team string `json:"team"`
}

// At reports whether the object sits on p.
func (d Dispenser) At(p Pos) bool { return d.X == p.X && d.Y == p.Y }

// At reports whether the block sits on p.
func (b Block) At(p Pos) bool { return b.X == p.X && b.Y == p.Y }

// At reports whether the agent sits on p.
func (e Entity) At(p Pos) bool { return e.X == p.X && e.Y == p.Y }
