// Package imaging decodes and scales the raster images embedded in
// documents, e.g. the preview thumbnail.
package imaging

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"

	// decoders for the formats that embedded images come in
	_ "image/gif"
	_ "image/jpeg"
)

// Decode reads an image from raw (PNG, JPEG or GIF) bytes.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// EncodePNG writes the image to w in PNG format.
func EncodePNG(w io.Writer, i image.Image) error {
	return png.Encode(w, i)
}

// Resize creates a copy of the given image, scaled to the given width.
// The aspect ratio is kept. A width of zero or less returns the image as is.
func Resize(i image.Image, width int) image.Image {
	box := i.Bounds()
	if width <= 0 || box.Dx() <= 0 || box.Dy() <= 0 {
		return i
	}

	height := int(math.Round(float64(width) * float64(box.Dy()) / float64(box.Dx())))
	if height < 1 {
		height = 1
	}
	size := image.Rect(0, 0, width, height)

	dst := image.NewRGBA(size)
	// CatmullRom is slow but the previews are small
	s := draw.CatmullRom
	s.Scale(dst, size, i, box, draw.Over, nil)
	return dst
}
