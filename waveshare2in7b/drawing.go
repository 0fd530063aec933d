// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in7b

import (
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// ColorModel returns a 1Bit color model.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the bounds for the configurated display.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.opts.Width, d.opts.Height)
}

// Draw composes the given image over the background color and sends the
// result to the display as a full frame update followed by a refresh.
func (d *Dev) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	next := image1bit.NewVerticalLSB(image.Rect(0, 0, (d.opts.Width+7)/8*8, d.opts.Height))

	draw.Src.Draw(next, next.Bounds(), &image.Uniform{bitOf(d.color)}, image.Point{})
	draw.Src.Draw(next, dstRect, src, srcPts)

	return d.UpdateAndDisplayFrame(packFrame(next, d.opts))
}

func bitOf(c Color) image1bit.Bit {
	if c == White {
		return image1bit.On
	}
	return image1bit.Off
}

// packFrame packs a 1-bit image into the layout the panel expects: row
// major, 8 pixels per byte, MSB first, set bit meaning white.
func packFrame(src *image1bit.VerticalLSB, opts *Opts) []byte {
	cols := (opts.Width + 7) / 8
	buf := make([]byte, cols*opts.Height)

	for y := 0; y < opts.Height; y++ {
		for x := 0; x < cols; x++ {
			var b byte
			for bit := 0; bit < 8; bit++ {
				if src.BitAt(x*8+bit, y) {
					b |= 0x80 >> bit
				}
			}
			buf[y*cols+x] = b
		}
	}

	return buf
}
