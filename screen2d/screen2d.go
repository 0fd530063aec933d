// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen2d implements a monochrome display.Drawer that outputs to
// terminal (stdout) using ANSI color codes.
//
// Useful to preview e-paper frames while you are waiting for your panel to
// come by mail, or on a machine without SPI. WriteFrame accepts the same
// packed buffer format the e-paper drivers stream to the hardware.
package screen2d

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	Width   int
	Height  int
	Palette *ansi256.Palette

	_ struct{}
}

// Dev is a monochrome panel emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	width   int
	height  int
	palette ansi256.Palette

	// pixels is packed 1 bit per pixel, row-major, MSB first; a set bit is
	// a white pixel.
	pixels []byte
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
//
// Permits to do local testing of frame rendering.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d := &Dev{
		w:       colorable.NewColorableStdout(),
		width:   opts.Width,
		height:  opts.Height,
		palette: *p,
		pixels:  make([]byte, (opts.Width+7)/8*opts.Height),
	}
	return d
}

func (d *Dev) String() string {
	return "Screen2D"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so it is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// WriteFrame accepts a packed 1 bit per pixel frame and writes it to the
// console.
func (d *Dev) WriteFrame(frame []byte) (int, error) {
	if len(frame) != len(d.pixels) {
		return 0, errors.New("invalid 1bpp frame length")
	}
	copy(d.pixels, frame)
	return d.refresh()
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.Bounds())
	cols := (d.width + 7) / 8

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			g := color.GrayModel.Convert(src.At(x-r.Min.X+sp.X, y-r.Min.Y+sp.Y)).(color.Gray)
			mask := byte(0x80) >> uint(x&7)
			if g.Y >= 0x80 {
				d.pixels[y*cols+x/8] |= mask
			} else {
				d.pixels[y*cols+x/8] &^= mask
			}
		}
	}

	_, err := d.refresh()
	return err
}

func (d *Dev) refresh() (int, error) {
	// This code is designed to minimize the amount of memory allocated per
	// call.
	d.buf.Reset()
	cols := (d.width + 7) / 8
	white := color.NRGBA{0xff, 0xff, 0xff, 0xff}
	black := color.NRGBA{0x00, 0x00, 0x00, 0xff}

	for y := 0; y < d.height; y++ {
		_, _ = d.buf.WriteString("\033[0m")
		for x := 0; x < d.width; x++ {
			c := black
			if d.pixels[y*cols+x/8]&(0x80>>uint(x&7)) != 0 {
				c = white
			}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}

	_, err := d.buf.WriteTo(d.w)
	return len(d.pixels), err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
