package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := range 3 {
		for x := range 4 {
			img.SetRGBA(x, y, color.RGBA{R: uint8(60 * x), G: uint8(80 * y), B: 7, A: 255})
		}
	}
	return img
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"out.png", PNG, false},
		{"OUT.PNG", PNG, false},
		{"a/b/c.bmp", BMP, false},
		{"x.tif", TIFF, false},
		{"x.tiff", TIFF, false},
		{"x.gif", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if tt.err {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("FormatOf(%q) err = %v", tt.path, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("FormatOf(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestEncodeDecodes(t *testing.T) {
	src := testImage()
	decoders := map[Format]func(*bytes.Reader) (image.Image, error){
		PNG:  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		BMP:  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
		TIFF: func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
	}

	for f, decode := range decoders {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, src, f); err != nil {
				t.Fatal(err)
			}
			img, err := decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatal(err)
			}
			r1, g1, b1, _ := src.At(3, 2).RGBA()
			r2, g2, b2, _ := img.At(3, 2).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 {
				t.Errorf("pixel (3,2) changed: %v -> %v", src.At(3, 2), img.At(3, 2))
			}
		})
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.png")
	if err := Save(path, testImage()); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Errorf("saved file: %v", err)
	}

	if err := Save(filepath.Join(t.TempDir(), "out.webp"), testImage()); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("webp: err = %v", err)
	}
}
