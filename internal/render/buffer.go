package render

import (
	"image"
	"image/color"
)

// Buffer is a dense row-major grid of RGB triples. It implements image.Image
// so encoders can consume it without a copy.
type Buffer struct {
	Width, Height int
	Pix           []uint8
}

func NewBuffer(w, h int) *Buffer {
	return &Buffer{Width: w, Height: h, Pix: make([]uint8, 3*w*h)}
}

// Set writes the pixel at (x, y). Each slot is owned by exactly one worker
// during a render.
func (b *Buffer) Set(x, y int, c color.RGBA) {
	i := 3 * (y*b.Width + x)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = c.R, c.G, c.B
}

// RGBAt returns the pixel at (x, y).
func (b *Buffer) RGBAt(x, y int) color.RGBA {
	i := 3 * (y*b.Width + x)
	return color.RGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: 0xff}
}

func (b *Buffer) ColorModel() color.Model { return color.RGBAModel }
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.Width, b.Height) }

func (b *Buffer) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(b.Bounds()) {
		return color.RGBA{}
	}
	return b.RGBAt(x, y)
}
