package raster

import (
	"hash/fnv"
	"image"
	"image/color"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"

	"github.com/Iron-Ham/gridwatch/internal/overlay"
	"github.com/Iron-Ham/gridwatch/internal/world"
)

// BlockPalette colors block types by their index in StaticWorld.BlockTypes.
var BlockPalette = []color.RGBA{
	colornames.Deepskyblue,
	colornames.Gold,
	colornames.Limegreen,
	colornames.Orchid,
	colornames.Darkorange,
	colornames.Turquoise,
	colornames.Slateblue,
	colornames.Khaki,
}

// TypeBlockDrawer fills each requirement cell with its block type's color,
// leaving a one pixel gap between neighbouring cells when they are large
// enough.
type TypeBlockDrawer struct{}

// DrawBlocks implements BlockDrawer.
func (TypeBlockDrawer) DrawBlocks(dst draw.Image, layout overlay.PatternLayout, static *world.StaticWorld, reqs []world.Block) {
	for _, b := range reqs {
		r := layout.CellRect(b.X, b.Y)
		if layout.CellSize > 2 {
			r = r.Inset(1)
		}
		draw.Draw(dst, r, image.NewUniform(BlockColor(static, b.Type)), image.Point{}, draw.Over)
	}
}

// BlockColor returns the palette color for a block type. Types missing from
// the static world's list get a stable color derived from their name.
func BlockColor(static *world.StaticWorld, typ string) color.RGBA {
	idx := static.BlockTypeIndex(typ)
	if idx < 0 {
		h := fnv.New32a()
		_, _ = h.Write([]byte(typ))
		idx = int(h.Sum32() % uint32(len(BlockPalette)))
	}
	return BlockPalette[idx%len(BlockPalette)]
}
