package pdf

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func newGrayPage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	gray := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, gray)
		}
	}
	return img
}

func TestStampPageNumberLabelGeometry(t *testing.T) {
	src := newGrayPage(800, 600)
	face := basicfont.Face7x13

	stamped := stampPageNumber(src, 12, face)

	if stamped.Bounds() != src.Bounds() {
		t.Fatalf("stamped bounds = %v, want %v", stamped.Bounds(), src.Bounds())
	}

	box, _ := labelRect(src.Bounds(), face, "Page 12")
	if !box.In(src.Bounds()) {
		t.Fatalf("label box %v escapes the canvas %v", box, src.Bounds())
	}
	if box.Empty() {
		t.Fatal("label box is empty")
	}

	// Box interior, inside the border, is white.
	inner := box.Inset(labelBorder + 1)
	r, g, b, _ := stamped.At(inner.Min.X, inner.Min.Y).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("box interior pixel = (%d,%d,%d), want white", r, g, b)
	}

	// Border edge is black.
	r, g, b, _ = stamped.At(box.Min.X, box.Min.Y).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("border pixel = (%d,%d,%d), want black", r, g, b)
	}

	// Page content outside the label is untouched.
	r, g, b, _ = stamped.At(10, src.Bounds().Max.Y-10).RGBA()
	wr, wg, wb, _ := src.At(10, src.Bounds().Max.Y-10).RGBA()
	if r != wr || g != wg || b != wb {
		t.Error("pixels outside the label were modified")
	}
}

func TestStampPageNumberDoesNotMutateSource(t *testing.T) {
	src := newGrayPage(400, 300)
	before := src.At(380, 20)

	stampPageNumber(src, 1, basicfont.Face7x13)

	if src.At(380, 20) != before {
		t.Error("source image was mutated")
	}
}

func TestLabelRectClampsOnNarrowPage(t *testing.T) {
	// A page narrower than the label text forces the clamp path.
	bounds := image.Rect(0, 0, 30, 200)

	box, _ := labelRect(bounds, basicfont.Face7x13, "Page 123")

	if !box.In(bounds) {
		t.Errorf("clamped label box %v escapes bounds %v", box, bounds)
	}
}

func TestLoadLabelFaceAlwaysReturnsAFace(t *testing.T) {
	if loadLabelFace() == nil {
		t.Fatal("loadLabelFace returned nil")
	}
}
