package sprites

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/1siamBot/rts-engine/engine/geom"
)

func TestAnimation_NonLoopFinishesAfterLength(t *testing.T) {
	a := NewAnimation(SeqAttack, 5, 10, false)
	for i := 0; i < 9; i++ {
		a.Advance()
		if a.Finished() {
			t.Fatalf("finished early after %d ticks", i+1)
		}
	}
	a.Advance()
	if !a.Finished() {
		t.Fatal("expected finished after 10 ticks")
	}
	if a.Index() != 4 {
		t.Fatalf("finished animation should rest on the last frame, got %d", a.Index())
	}
	a.Advance()
	if a.Tick() != 10 {
		t.Fatal("finished animation must not advance further")
	}
}

func TestAnimation_LoopWraps(t *testing.T) {
	a := NewAnimation(SeqWalk, 3, 6, true)
	var idx []int
	for i := 0; i < 7; i++ {
		idx = append(idx, a.Index())
		a.Advance()
	}
	want := []int{0, 0, 1, 1, 2, 2, 0}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("frame indices = %v, want %v", idx, want)
		}
	}
	if a.Finished() {
		t.Fatal("a looping animation never finishes")
	}
}

func TestCatalog_DefaultsToOneFrame(t *testing.T) {
	c := DefaultCatalog()
	if c.FrameCount("archer", SeqWalk) != 6 {
		t.Fatal("archer walk should have 6 frames")
	}
	if c.FrameCount("nobody", SeqWalk) != 1 {
		t.Fatal("unknown sheets fall back to one frame")
	}
}

func strip(colors ...color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8*len(colors), 8))
	for i, c := range colors {
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				img.SetRGBA(i*8+x, y, c)
			}
		}
	}
	return img
}

func TestAtlas_AddStripScalesFrames(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	a := NewAtlas(16)
	if err := a.AddStrip("mage", SeqWalk, geom.Down, strip(red, blue), 8); err != nil {
		t.Fatalf("AddStrip: %v", err)
	}
	if n := a.FrameCount("mage", SeqWalk); n != 2 {
		t.Fatalf("FrameCount = %d", n)
	}
	img, ok := a.Image(Frame{Sheet: "mage", Seq: SeqWalk, Dir: geom.Left, Index: 1})
	if !ok {
		t.Fatal("expected Down frames to be used for Left")
	}
	if img.Bounds().Dx() != 16 {
		t.Fatalf("frame not scaled to cell: %v", img.Bounds())
	}
	if got := color.RGBAModel.Convert(img.At(12, 12)).(color.RGBA); got != blue {
		t.Fatalf("frame 1 should be blue, got %v", got)
	}
}

func TestAtlas_AddStripRejectsBadWidth(t *testing.T) {
	if err := NewAtlas(8).AddStrip("x", SeqIdle, geom.Down, strip(color.RGBA{}), 5); err == nil {
		t.Fatal("expected error for a strip that does not divide into frames")
	}
}

func TestAtlas_LoadStrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idle.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, strip(color.RGBA{0, 255, 0, 255})); err != nil {
		t.Fatal(err)
	}
	f.Close()

	a := NewAtlas(8)
	if err := a.LoadStrip("cleric", SeqIdle, geom.Down, path, 8); err != nil {
		t.Fatalf("LoadStrip: %v", err)
	}
	if _, ok := a.Image(Frame{Sheet: "cleric", Seq: SeqIdle}); !ok {
		t.Fatal("loaded frame missing")
	}
	if err := a.LoadStrip("cleric", SeqIdle, geom.Down, path+".missing", 8); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPlaceholder(t *testing.T) {
	fill := color.RGBA{10, 200, 30, 255}
	img := Placeholder(fill, 6)
	if got := color.RGBAModel.Convert(img.At(3, 3)).(color.RGBA); got != fill {
		t.Fatalf("centre = %v", got)
	}
}
