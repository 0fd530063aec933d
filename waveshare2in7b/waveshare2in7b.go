// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in7b

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/host/v3/rpi"
)

// Commands
const (
	panelSetting                  byte = 0x00
	powerSetting                  byte = 0x01
	powerOff                      byte = 0x02
	powerOffSequenceSetting       byte = 0x03
	powerOn                       byte = 0x04
	powerOnMeasure                byte = 0x05
	boosterSoftStart              byte = 0x06
	deepSleep                     byte = 0x07
	dataStartTransmission1        byte = 0x10
	dataStop                      byte = 0x11
	displayRefresh                byte = 0x12
	dataStartTransmission2        byte = 0x13
	partialDataStartTransmission1 byte = 0x14
	partialDataStartTransmission2 byte = 0x15
	partialDisplayRefresh         byte = 0x16
	lutForVcom                    byte = 0x20
	lutWhiteToWhite               byte = 0x21
	lutBlackToWhite               byte = 0x22
	lutWhiteToBlack               byte = 0x23
	lutBlackToBlack               byte = 0x24
	pllControl                    byte = 0x30
	temperatureSensorCommand      byte = 0x40
	temperatureSensorCalibration  byte = 0x41
	vcomAndDataIntervalSetting    byte = 0x50
	lowPowerDetection             byte = 0x51
	tconSetting                   byte = 0x60
	tconResolution                byte = 0x61
	sourceAndGateStartSetting     byte = 0x62
	getStatus                     byte = 0x71
	autoMeasureVcom               byte = 0x80
	vcomValue                     byte = 0x81
	vcmDCSetting                  byte = 0x82
	powerOptimization             byte = 0xF8
)

// Color is a 1 bit per pixel color of the panel. The constant is the byte
// value streamed to fill eight pixels of that color.
type Color byte

// Valid Color.
const (
	Black Color = 0x00
	White Color = 0xFF
)

// Errors surfaced by the driver in addition to bus transport failures.
var (
	// ErrInvalidBufferLength is returned when a frame buffer does not match
	// the size of the addressed area.
	ErrInvalidBufferLength = errors.New("invalid buffer length")

	// ErrBusyTimeout is returned when the panel does not report ready within
	// the configured busy timeout.
	ErrBusyTimeout = errors.New("panel did not become ready")
)

// Opts defines the display configuration.
type Opts struct {
	Width  int
	Height int

	// BusyTimeout bounds every wait on the busy line. A full refresh is
	// a vendor-documented multi-second operation; zero selects a 30s
	// default.
	BusyTimeout time.Duration
}

// EPD2in7b contains the display configuration for the Waveshare 2.7in (B).
var EPD2in7b = Opts{
	Width:  176,
	Height: 264,
}

// frameLen returns the size in bytes of one full transmission plane.
func frameLen(opts *Opts) int {
	return (opts.Width + 7) / 8 * opts.Height
}

func (o *Opts) busyTimeout() time.Duration {
	if o.BusyTimeout != 0 {
		return o.BusyTimeout
	}
	return 30 * time.Second
}

// Dev defines the handler which is used to access the display.
type Dev struct {
	c conn.Conn

	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIO

	color Color
	opts  *Opts
}

// New creates a new handler which is used to access the display. It performs
// a hardware reset and runs the full initialization sequence; on success the
// panel accepts frame data commands.
func New(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIO, opts *Opts) (*Dev, error) {
	c, err := p.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}

	d := &Dev{
		c:     c,
		dc:    dc,
		cs:    cs,
		rst:   rst,
		busy:  busy,
		color: White,
		opts:  opts,
	}

	if err := d.Init(); err != nil {
		return nil, err
	}

	return d, nil
}

// NewHat creates a new handler which is used to access the display. Default
// Waveshare Hat configuration is used.
func NewHat(p spi.Port, opts *Opts) (*Dev, error) {
	dc := rpi.P1_22
	cs := rpi.P1_24
	rst := rpi.P1_11
	busy := rpi.P1_18
	return New(p, dc, cs, rst, busy, opts)
}

// Init performs a hardware reset followed by the full power-up and LUT
// programming sequence. It is run by New and again by WakeUp.
func (d *Dev) Init() error {
	if err := d.reset(); err != nil {
		return err
	}

	eh := errorHandler{d: *d}
	initDisplay(&eh)

	return eh.err
}

// WakeUp brings the panel back from deep sleep by re-running the full
// initialization sequence.
func (d *Dev) WakeUp() error {
	return d.Init()
}

// Sleep puts the panel into deep sleep. RAM and register state are lost; the
// handle must not be used for data operations until WakeUp is called.
func (d *Dev) Sleep() error {
	eh := errorHandler{d: *d}
	sleepDisplay(&eh)
	return eh.err
}

// ClearFrame fills both transmission planes with the background color. It
// does not refresh the panel by itself.
func (d *Dev) ClearFrame() error {
	eh := errorHandler{d: *d}
	clearFrame(&eh, byte(d.color), d.opts)
	return eh.err
}

// UpdateFrame streams a full frame into the second transmission plane. The
// buffer is packed 1 bit per pixel, row-major, MSB first, and must hold
// exactly Width*Height/8 bytes.
func (d *Dev) UpdateFrame(buffer []byte) error {
	if len(buffer) != frameLen(d.opts) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidBufferLength, len(buffer), frameLen(d.opts))
	}

	eh := errorHandler{d: *d}
	updateFrame(&eh, buffer)
	return eh.err
}

// DisplayFrame triggers a refresh from the panel RAM and blocks until the
// panel reports ready again. This is the slow, physically visible step.
func (d *Dev) DisplayFrame() error {
	eh := errorHandler{d: *d}
	displayFrame(&eh)
	return eh.err
}

// UpdateAndDisplayFrame streams a full frame and refreshes the panel.
func (d *Dev) UpdateAndDisplayFrame(buffer []byte) error {
	if err := d.UpdateFrame(buffer); err != nil {
		return err
	}
	return d.DisplayFrame()
}

// UpdatePartialFrame streams a window-sized buffer into the partial
// transmission plane and refreshes the panel. x and width are clipped to
// 8 pixel boundaries by the panel; the buffer must hold (width/8)*height
// bytes after clipping.
func (d *Dev) UpdatePartialFrame(buffer []byte, x, y, width, height int) error {
	if want := (width &^ 0x07) / 8 * height; len(buffer) != want {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d window", ErrInvalidBufferLength, len(buffer), want, width, height)
	}

	eh := errorHandler{d: *d}
	updatePartialFrame(&eh, buffer, x, y, width, height)
	return eh.err
}

// DisplayPartialFrame re-flashes a previously written window without
// resending pixel data. It uses the dedicated partial refresh command, not
// the partial transmission plus full refresh pair used by
// UpdatePartialFrame.
func (d *Dev) DisplayPartialFrame(x, y, width, height int) error {
	eh := errorHandler{d: *d}
	displayPartialFrame(&eh, x, y, width, height)
	return eh.err
}

// SetBackgroundColor sets the color used by ClearFrame.
func (d *Dev) SetBackgroundColor(c Color) {
	d.color = c
}

// BackgroundColor returns the color used by ClearFrame.
func (d *Dev) BackgroundColor() Color {
	return d.color
}

// Width returns the fixed panel width in pixels.
func (d *Dev) Width() int {
	return d.opts.Width
}

// Height returns the fixed panel height in pixels.
func (d *Dev) Height() int {
	return d.opts.Height
}

// IsBusy reports whether the panel is performing an internal operation. The
// busy line is active low on this panel.
func (d *Dev) IsBusy() bool {
	return d.busy.Read() == gpio.Low
}

// Halt clears the display.
func (d *Dev) Halt() error {
	if err := d.ClearFrame(); err != nil {
		return err
	}
	return d.DisplayFrame()
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("epd.Dev{%s, %s, Width: %d, Height: %d}", d.c, d.dc, d.opts.Width, d.opts.Height)
}

// reset pulses the reset line low then high. The panel requires a minimum
// held-low pulse and a settling period before it accepts commands.
func (d *Dev) reset() error {
	eh := errorHandler{d: *d}

	eh.rstOut(gpio.Low)
	time.Sleep(2 * time.Millisecond)
	eh.rstOut(gpio.High)
	time.Sleep(2 * time.Millisecond)

	return eh.err
}

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
