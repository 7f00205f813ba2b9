package raster

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// Half-block glyphs: one terminal cell shows two vertically stacked pixels.
const (
	upperHalf = "▀"
	lowerHalf = "▄"
)

// Terminal renders the surface at most cols columns wide using half-block
// glyphs, preserving the aspect ratio. Transparent pixels become spaces.
// An empty surface renders as "".
func (s *Surface) Terminal(cols int) string {
	if s.Empty() || cols <= 0 {
		return ""
	}
	return renderHalfBlocks(downscale(s.img, cols))
}

// downscale shrinks src to at most cols pixels wide with nearest-neighbour
// sampling so block edges stay crisp. The height is rounded up to an even
// number of pixels.
func downscale(src *image.RGBA, cols int) *image.RGBA {
	b := src.Bounds()
	w := min(cols, b.Dx())
	h := max(b.Dy()*w/b.Dx(), 1)
	if h%2 == 1 {
		h++
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func renderHalfBlocks(img *image.RGBA) string {
	b := img.Bounds()
	lines := make([]string, 0, b.Dy()/2)
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var line strings.Builder
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bottom := img.RGBAAt(x, y+1)
			line.WriteString(halfBlock(top, bottom))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

func halfBlock(top, bottom color.RGBA) string {
	switch {
	case top.A == 0 && bottom.A == 0:
		return " "
	case bottom.A == 0:
		return lipgloss.NewStyle().Foreground(hex(top)).Render(upperHalf)
	case top.A == 0:
		return lipgloss.NewStyle().Foreground(hex(bottom)).Render(lowerHalf)
	default:
		return lipgloss.NewStyle().Foreground(hex(top)).Background(hex(bottom)).Render(upperHalf)
	}
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}
