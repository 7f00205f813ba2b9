// Package raster draws task patterns onto an in-memory pixel surface and
// converts the result into terminal half-block art.
package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"

	"github.com/Iron-Ham/gridwatch/internal/overlay"
	"github.com/Iron-Ham/gridwatch/internal/world"
)

// MarkerColor fills the origin marker, the cell of the agent performing the task.
var MarkerColor color.Color = colornames.Red

// BlockDrawer paints requirement blocks onto a surface. Each block is drawn
// at layout.CellRect(b.X, b.Y).
type BlockDrawer interface {
	DrawBlocks(dst draw.Image, layout overlay.PatternLayout, static *world.StaticWorld, reqs []world.Block)
}

// Surface is the raster of one task detail panel. It is reused across
// redraws and is not safe for concurrent use.
type Surface struct {
	img *image.RGBA
}

// NewSurface returns an empty surface.
func NewSurface() *Surface {
	return &Surface{img: image.NewRGBA(image.Rectangle{})}
}

// Draw resets the surface to the layout's size, clears every pixel left over
// from the previous pattern, marks the origin cell and hands the
// requirements to drawer.
func (s *Surface) Draw(layout overlay.PatternLayout, static *world.StaticWorld, reqs []world.Block, drawer BlockDrawer) {
	if layout.Empty() {
		s.img = image.NewRGBA(image.Rectangle{})
		return
	}

	bounds := layout.Bounds()
	if s.img == nil || s.img.Bounds() != bounds {
		s.img = image.NewRGBA(bounds)
	} else {
		draw.Draw(s.img, bounds, image.Transparent, image.Point{}, draw.Src)
	}

	draw.Draw(s.img, layout.Marker, image.NewUniform(MarkerColor), image.Point{}, draw.Src)
	if drawer != nil {
		drawer.DrawBlocks(s.img, layout, static, reqs)
	}
}

// Image returns the current raster. The image is owned by the surface and is
// overwritten by the next Draw.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Empty reports whether the surface has no pixels.
func (s *Surface) Empty() bool {
	return s.img == nil || s.img.Bounds().Empty()
}
