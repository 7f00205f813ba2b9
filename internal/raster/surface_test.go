package raster

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"

	"github.com/Iron-Ham/gridwatch/internal/overlay"
	"github.com/Iron-Ham/gridwatch/internal/testutil"
	"github.com/Iron-Ham/gridwatch/internal/world"
)

// recordingDrawer records the blocks it was asked to draw.
type recordingDrawer struct {
	calls  int
	blocks []world.Block
	layout overlay.PatternLayout
}

func (r *recordingDrawer) DrawBlocks(dst draw.Image, layout overlay.PatternLayout, static *world.StaticWorld, reqs []world.Block) {
	r.calls++
	r.blocks = append([]world.Block(nil), reqs...)
	r.layout = layout
}

func centerOf(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

func TestSurfaceDrawMarksOrigin(t *testing.T) {
	reqs := []world.Block{{X: 1, Y: 0, Type: "b0"}}
	layout := overlay.LayoutPattern(reqs, overlay.DefaultLayoutOptions())

	s := NewSurface()
	rec := &recordingDrawer{}
	s.Draw(layout, testutil.SampleStatic(), reqs, rec)

	if got := s.Image().Bounds(); got != layout.Bounds() {
		t.Fatalf("Bounds() = %v, want %v", got, layout.Bounds())
	}
	p := centerOf(layout.Marker)
	if got := s.Image().RGBAAt(p.X, p.Y); got != colornames.Red {
		t.Errorf("marker pixel = %v, want red", got)
	}
	if rec.calls != 1 || len(rec.blocks) != 1 || rec.layout != layout {
		t.Errorf("drawer got calls=%d blocks=%v", rec.calls, rec.blocks)
	}
}

func TestSurfaceDrawClearsPreviousPattern(t *testing.T) {
	static := testutil.SampleStatic()
	opts := overlay.DefaultLayoutOptions()

	first := []world.Block{{X: 1, Y: 0, Type: "b0"}}
	second := []world.Block{{X: -1, Y: 0, Type: "b1"}}
	l1 := overlay.LayoutPattern(first, opts)
	l2 := overlay.LayoutPattern(second, opts)
	if l1.Bounds() != l2.Bounds() {
		t.Fatalf("test expects equal surfaces, got %v and %v", l1.Bounds(), l2.Bounds())
	}

	s := NewSurface()
	s.Draw(l1, static, first, TypeBlockDrawer{})
	stale := centerOf(l1.CellRect(1, 0))
	if got := s.Image().RGBAAt(stale.X, stale.Y); got.A == 0 {
		t.Fatal("first pattern was not drawn")
	}

	s.Draw(l2, static, second, TypeBlockDrawer{})
	if got := s.Image().RGBAAt(stale.X, stale.Y); got.A != 0 {
		t.Errorf("pixel from previous pattern survived: %v", got)
	}
	fresh := centerOf(l2.CellRect(-1, 0))
	if got := s.Image().RGBAAt(fresh.X, fresh.Y); got != BlockColor(static, "b1") {
		t.Errorf("new block pixel = %v, want %v", got, BlockColor(static, "b1"))
	}
}

func TestSurfaceDrawResizes(t *testing.T) {
	opts := overlay.DefaultLayoutOptions()
	s := NewSurface()

	small := overlay.LayoutPattern(nil, opts)
	s.Draw(small, nil, nil, nil)
	if s.Image().Bounds() != small.Bounds() {
		t.Errorf("Bounds() = %v, want %v", s.Image().Bounds(), small.Bounds())
	}

	tall := overlay.LayoutPattern([]world.Block{{X: 0, Y: 3}}, opts)
	s.Draw(tall, nil, nil, nil)
	if s.Image().Bounds() != tall.Bounds() {
		t.Errorf("Bounds() = %v, want %v", s.Image().Bounds(), tall.Bounds())
	}
}

func TestSurfaceDrawEmptyLayout(t *testing.T) {
	opts := overlay.DefaultLayoutOptions()
	opts.ClampCellSize = false
	layout := overlay.LayoutPattern([]world.Block{{X: 500}}, opts)

	s := NewSurface()
	rec := &recordingDrawer{}
	s.Draw(layout, nil, nil, rec)

	if !s.Empty() {
		t.Error("surface should be empty")
	}
	if rec.calls != 0 {
		t.Error("drawer should not be called for an empty surface")
	}
	if got := s.Terminal(40); got != "" {
		t.Errorf("Terminal() = %q, want empty", got)
	}
}

func TestBlockColor(t *testing.T) {
	static := testutil.SampleStatic()

	if got := BlockColor(static, "b1"); got != BlockPalette[1] {
		t.Errorf("BlockColor(b1) = %v, want %v", got, BlockPalette[1])
	}
	unknown := BlockColor(static, "mystery")
	if unknown != BlockColor(nil, "mystery") {
		t.Error("unknown block type color should not depend on the static world")
	}
	found := false
	for _, c := range BlockPalette {
		if c == unknown {
			found = true
		}
	}
	if !found {
		t.Errorf("BlockColor(mystery) = %v is not a palette color", unknown)
	}
}

func TestSurfaceTerminal(t *testing.T) {
	reqs := []world.Block{{X: 1, Y: 0, Type: "b0"}}
	layout := overlay.LayoutPattern(reqs, overlay.DefaultLayoutOptions())

	s := NewSurface()
	s.Draw(layout, testutil.SampleStatic(), reqs, TypeBlockDrawer{})

	out := s.Terminal(30)
	lines := strings.Split(out, "\n")
	// 318x50 scaled to 30 columns is 30x4 pixels, two terminal rows.
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out)
	}
	if !strings.ContainsAny(out, upperHalf+lowerHalf) {
		t.Errorf("Terminal() has no block glyphs:\n%s", out)
	}
	if s.Terminal(0) != "" {
		t.Error("Terminal(0) should be empty")
	}
}

func TestHalfBlock(t *testing.T) {
	none := color.RGBA{}
	solid := color.RGBA{R: 255, A: 255}

	if got := halfBlock(none, none); got != " " {
		t.Errorf("halfBlock(none, none) = %q, want space", got)
	}
	if got := halfBlock(solid, none); !strings.Contains(got, upperHalf) {
		t.Errorf("halfBlock(solid, none) = %q, want upper half", got)
	}
	if got := halfBlock(none, solid); !strings.Contains(got, lowerHalf) {
		t.Errorf("halfBlock(none, solid) = %q, want lower half", got)
	}
	if got := hex(solid); got != "#FF0000" {
		t.Errorf("hex() = %q, want #FF0000", got)
	}
}
