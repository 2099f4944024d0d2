package sprites

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/1siamBot/rts-engine/engine/geom"
)

type atlasKey struct {
	sheet string
	seq   Sequence
	dir   geom.Direction
}

// Atlas resolves Frames to images. Every frame is scaled to a square cell so
// the renderer can draw without caring about source sizes.
type Atlas struct {
	cell   int
	frames map[atlasKey][]image.Image
}

// NewAtlas creates an empty atlas producing cellPixels x cellPixels frames
func NewAtlas(cellPixels int) *Atlas {
	return &Atlas{
		cell:   cellPixels,
		frames: make(map[atlasKey][]image.Image),
	}
}

// AddStrip slices a horizontal strip of frameW-wide frames
func (a *Atlas) AddStrip(sheet string, seq Sequence, dir geom.Direction, strip image.Image, frameW int) error {
	b := strip.Bounds()
	if frameW <= 0 || b.Dx() < frameW || b.Dx()%frameW != 0 {
		return fmt.Errorf("sprites: strip %s/%s is %dpx wide, not a multiple of %d", sheet, seq, b.Dx(), frameW)
	}
	n := b.Dx() / frameW
	out := make([]image.Image, n)
	for i := 0; i < n; i++ {
		src := image.Rect(b.Min.X+i*frameW, b.Min.Y, b.Min.X+(i+1)*frameW, b.Max.Y)
		dst := image.NewRGBA(image.Rect(0, 0, a.cell, a.cell))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), strip, src, draw.Over, nil)
		out[i] = dst
	}
	a.frames[atlasKey{sheet, seq, dir}] = out
	return nil
}

// LoadStrip decodes a PNG strip from disk and adds it
func (a *Atlas) LoadStrip(sheet string, seq Sequence, dir geom.Direction, path string, frameW int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("sprites: open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("sprites: decode %s: %w", path, err)
	}
	return a.AddStrip(sheet, seq, dir, img, frameW)
}

// Image returns the image for f. Sheets drawn facing one way only are
// registered under Down and used for every direction.
func (a *Atlas) Image(f Frame) (image.Image, bool) {
	imgs, ok := a.frames[atlasKey{f.Sheet, f.Seq, f.Dir}]
	if !ok {
		imgs, ok = a.frames[atlasKey{f.Sheet, f.Seq, geom.Down}]
	}
	if !ok || len(imgs) == 0 {
		return nil, false
	}
	i := f.Index
	if i < 0 || i >= len(imgs) {
		i = len(imgs) - 1
	}
	return imgs[i], true
}

// FrameCount lets an Atlas act as the animation Provider
func (a *Atlas) FrameCount(sheet string, seq Sequence) int {
	if imgs, ok := a.frames[atlasKey{sheet, seq, geom.Down}]; ok && len(imgs) > 0 {
		return len(imgs)
	}
	return 1
}

// Placeholder draws a bordered square, used when a sheet has no art
func Placeholder(fill color.Color, size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{20, 20, 20, 255}), image.Point{}, draw.Src)
	inner := image.Rect(1, 1, size-1, size-1)
	draw.Draw(img, inner, image.NewUniform(fill), image.Point{}, draw.Src)
	return img
}
