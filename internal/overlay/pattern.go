package overlay

import (
	"image"

	"github.com/Iron-Ham/gridwatch/internal/world"
)

// Pattern surface defaults.
const (
	DefaultSurfaceWidth = 318
	DefaultMaxCellSize  = 50
)

// LayoutOptions bounds the raster surface a task pattern is drawn on.
type LayoutOptions struct {
	// SurfaceWidth is the fixed surface width in pixels.
	SurfaceWidth int
	// MaxCellSize caps the size of one grid cell in pixels.
	MaxCellSize int
	// ClampCellSize raises a cell size of 0 to 1 when the pattern is wider
	// than the surface. When false the surface collapses to zero height.
	ClampCellSize bool
}

// DefaultLayoutOptions returns a 318px surface with cells of at most 50px
// and cell size clamping enabled.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		SurfaceWidth:  DefaultSurfaceWidth,
		MaxCellSize:   DefaultMaxCellSize,
		ClampCellSize: true,
	}
}

// PatternLayout is the geometry of a task pattern on its surface.
type PatternLayout struct {
	// Width and Height are the pattern bounding box in cells. The box is
	// symmetric around the origin so both are odd.
	Width  int
	Height int
	// CellSize is the edge of one cell in pixels.
	CellSize      int
	SurfaceWidth  int
	SurfaceHeight int
	// Origin is the top-left pixel of the origin cell, centered on the surface.
	Origin image.Point
	// Marker is the pixel rectangle marking the agent that performs the task.
	Marker image.Rectangle
}

// LayoutPattern sizes the surface for a set of task requirements. An empty
// requirement list lays out the origin cell only.
func LayoutPattern(reqs []world.Block, opts LayoutOptions) PatternLayout {
	maxX, maxY := 0, 0
	for _, b := range reqs {
		maxX = max(maxX, abs(b.X))
		maxY = max(maxY, abs(b.Y))
	}

	l := PatternLayout{
		Width:        2*maxX + 1,
		Height:       2*maxY + 1,
		SurfaceWidth: opts.SurfaceWidth,
	}
	l.CellSize = min(opts.SurfaceWidth/l.Width, opts.MaxCellSize)
	if l.CellSize < 1 {
		l.CellSize = 0
		if opts.ClampCellSize {
			l.CellSize = 1
		}
	}
	l.SurfaceHeight = l.CellSize * l.Height
	l.Origin = image.Pt((l.SurfaceWidth-l.CellSize)/2, (l.SurfaceHeight-l.CellSize)/2)

	c := l.CellSize
	size := c / 5
	if size == 0 && c > 0 {
		size = 1
	}
	off := l.Origin.Add(image.Pt(c*2/5, c*2/5))
	l.Marker = image.Rectangle{Min: off, Max: off.Add(image.Pt(size, size))}
	return l
}

// CellRect returns the pixel rectangle of the cell at offset (dx, dy) from
// the origin.
func (l PatternLayout) CellRect(dx, dy int) image.Rectangle {
	topLeft := l.Origin.Add(image.Pt(dx*l.CellSize, dy*l.CellSize))
	return image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Pt(l.CellSize, l.CellSize))}
}

// Bounds returns the full surface rectangle.
func (l PatternLayout) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.SurfaceWidth, l.SurfaceHeight)
}

// Empty reports whether the surface has no area.
func (l PatternLayout) Empty() bool {
	return l.SurfaceWidth <= 0 || l.SurfaceHeight <= 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
