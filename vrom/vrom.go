// Package vrom builds video ROM images for ECJR cartridges.
package vrom

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// WIDTH is the expected width of a video ROM image, in pixels.
const WIDTH = 256

// Image is a video ROM taken from the red channel of an image.
type Image struct {
	Format string // Decoded image format.
	Width  int
	Height int
	Data   []byte // Red channel, row-major.
}

// LoadImage decodes an image and extracts its red channel.
// Images of any width are accepted; see WIDTH.
func LoadImage(r io.Reader) (rom *Image, err error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return
	}

	bounds := img.Bounds()
	rom = &Image{
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Data:   make([]byte, 0, bounds.Dx()*bounds.Dy()),
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixel := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			rom.Data = append(rom.Data, pixel.R)
		}
	}

	return
}

// LoadRaw reads a video ROM verbatim.
func LoadRaw(r io.Reader) (data []byte, err error) {
	return io.ReadAll(r)
}
