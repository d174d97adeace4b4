// Package render draws world generations as text or PNG frames.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"cellrules/internal/core"
)

// Default colors for PNG frames.
var (
	On  = color.RGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}
	Off = color.RGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff}
)

// Text renders each row of g on its own line, '#' for live cells.
func Text(g *core.ByteGrid) string {
	var b strings.Builder
	b.Grow((g.W + 1) * g.H)
	for y := 0; y < g.H; y++ {
		b.WriteString(Row(g, y))
		b.WriteByte('\n')
	}
	return b.String()
}

// Row renders row y of g.
func Row(g *core.ByteGrid, y int) string {
	cells := g.Cells()[g.Index(0, y) : g.Index(0, y)+g.W]
	buf := make([]byte, len(cells))
	for i, c := range cells {
		buf[i] = '.'
		if c != 0 {
			buf[i] = '#'
		}
	}
	return string(buf)
}

// Image rasterizes rows of binary cells, each scale pixels square.
func Image(cells []uint8, w, h, scale int, on, off color.Color) (*image.RGBA, error) {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return nil, fmt.Errorf("frame %dx%d does not match %d cells", w, h, len(cells))
	}
	if scale < 1 {
		scale = 1
	}
	base := make([]byte, len(cells)*4)
	fillBinaryRGBA(base, cells, on, off)

	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	for y := 0; y < h*scale; y++ {
		for x := 0; x < w*scale; x++ {
			src := ((y/scale)*w + x/scale) * 4
			copy(img.Pix[img.PixOffset(x, y):], base[src:src+4])
		}
	}
	return img, nil
}

// WritePNG encodes rows of binary cells as a PNG.
func WritePNG(out io.Writer, cells []uint8, w, h, scale int) error {
	img, err := Image(cells, w, h, scale, On, Off)
	if err != nil {
		return err
	}
	return png.Encode(out, img)
}

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	var lut [2][4]byte
	for i, c := range []color.Color{off, on} {
		r, g, b, a := c.RGBA()
		lut[i] = [4]byte{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
	}
	for i, c := range cells {
		v := 0
		if c != 0 {
			v = 1
		}
		copy(buf[i*4:i*4+4], lut[v][:])
	}
}
