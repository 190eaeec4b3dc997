package pdf

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Label geometry. The page-number label is the only channel by which the
// downstream vision model recovers page identity from pixels, so it sits on
// an opaque box with a border for contrast against any page content.
const (
	labelMargin  = 20
	labelPadding = 10
	labelBorder  = 2
	labelFontPt  = 40
)

// fontPaths is the prioritized list of system fonts tried for the label.
// The built-in basicfont face is the terminal fallback.
var fontPaths = []string{
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	"C:\\Windows\\Fonts\\Arial.ttf",
}

// loadLabelFace returns the first loadable font face from fontPaths, or the
// built-in default.
func loadLabelFace() font.Face {
	for _, path := range fontPaths {
		face, err := loadFace(path)
		if err == nil {
			return face
		}
	}
	return basicfont.Face7x13
}

func loadFace(path string) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f *opentype.Font
	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, err
		}
		f, err = coll.Font(0)
		if err != nil {
			return nil, err
		}
	} else {
		var perr error
		f, perr = opentype.Parse(data)
		if perr != nil {
			return nil, perr
		}
	}

	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    labelFontPt,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// labelRect computes the opaque box and the text origin for a page-number
// label in the top-right corner of bounds. The box is inset by the margin and
// clamped so it never leaves the canvas.
func labelRect(bounds image.Rectangle, face font.Face, text string) (box image.Rectangle, dot fixed.Point26_6) {
	d := &font.Drawer{Face: face}
	textW := d.MeasureString(text).Ceil()
	metrics := face.Metrics()
	textH := (metrics.Ascent + metrics.Descent).Ceil()

	x := bounds.Max.X - textW - labelMargin - labelPadding
	y := bounds.Min.Y + labelMargin
	if min := bounds.Min.X + labelPadding; x < min {
		x = min
	}

	box = image.Rect(x-labelPadding, y-labelPadding, x+textW+labelPadding, y+textH+labelPadding)
	box = box.Intersect(bounds)
	dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + metrics.Ascent}
	return box, dot
}

// stampPageNumber returns a copy of src with a "Page N" label composited into
// the top-right corner.
func stampPageNumber(src image.Image, pageNumber int, face font.Face) *image.RGBA {
	bounds := src.Bounds()
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, src, bounds.Min, draw.Src)

	text := fmt.Sprintf("Page %d", pageNumber)
	box, dot := labelRect(bounds, face, text)

	draw.Draw(img, box, image.NewUniform(color.White), image.Point{}, draw.Src)
	drawBorder(img, box, color.Black, labelBorder)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  dot,
	}
	d.DrawString(text)

	return img
}

// drawBorder strokes the rectangle's inner edge with the given width.
func drawBorder(img draw.Image, r image.Rectangle, c color.Color, width int) {
	fill := image.NewUniform(c)
	top := image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width)
	bottom := image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y)
	left := image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y)
	right := image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y)
	for _, edge := range []image.Rectangle{top, bottom, left, right} {
		draw.Draw(img, edge, fill, image.Point{}, draw.Src)
	}
}
