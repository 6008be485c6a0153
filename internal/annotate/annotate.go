// Package annotate draws recognition results onto an image: a box around
// each face and a label strip with the matched name.
package annotate

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	"github.com/kozaktomas/face-attendance/internal/recognizer"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	matchedColor   = color.RGBA{R: 0, G: 180, B: 0, A: 255}
	unmatchedColor = color.RGBA{R: 200, G: 0, B: 0, A: 255}
	labelTextColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

const (
	boxThickness = 2
	labelHeight  = 14
)

// Render decodes the image, draws one box per recognition and re-encodes
// the result as JPEG.
func Render(imageData []byte, recognitions []recognizer.Recognition) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	canvas := image.NewRGBA(src.Bounds())
	draw.Draw(canvas, canvas.Bounds(), src, src.Bounds().Min, draw.Src)

	for _, rec := range recognitions {
		if len(rec.BBox) < 4 {
			continue
		}
		box := image.Rect(int(rec.BBox[0]), int(rec.BBox[1]), int(rec.BBox[2]), int(rec.BBox[3]))
		box = box.Intersect(canvas.Bounds())
		if box.Empty() {
			continue
		}

		c := unmatchedColor
		if rec.Matched {
			c = matchedColor
		}

		drawBox(canvas, box, c)
		drawLabel(canvas, box, rec.Name, c)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encoding annotated image: %w", err)
	}
	return buf.Bytes(), nil
}

// drawBox draws a rectangle outline of boxThickness pixels.
func drawBox(img *image.RGBA, box image.Rectangle, c color.Color) {
	for t := 0; t < boxThickness; t++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			setInBounds(img, x, box.Min.Y+t, c)
			setInBounds(img, x, box.Max.Y-1-t, c)
		}
		for y := box.Min.Y; y < box.Max.Y; y++ {
			setInBounds(img, box.Min.X+t, y, c)
			setInBounds(img, box.Max.X-1-t, y, c)
		}
	}
}

// drawLabel fills a strip below the box and writes the name into it. When
// the strip would fall outside the image it goes above the box instead.
func drawLabel(img *image.RGBA, box image.Rectangle, name string, c color.Color) {
	strip := image.Rect(box.Min.X, box.Max.Y, box.Max.X, box.Max.Y+labelHeight)
	if strip.Max.Y > img.Bounds().Max.Y {
		strip = image.Rect(box.Min.X, box.Min.Y-labelHeight, box.Max.X, box.Min.Y)
	}
	strip = strip.Intersect(img.Bounds())
	if strip.Empty() {
		return
	}

	draw.Draw(img, strip, &image.Uniform{C: c}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: labelTextColor},
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.I(strip.Min.X + 3),
			Y: fixed.I(strip.Max.Y - 3),
		},
	}
	d.DrawString(name)
}

func setInBounds(img *image.RGBA, x, y int, c color.Color) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.Set(x, y, c)
	}
}
