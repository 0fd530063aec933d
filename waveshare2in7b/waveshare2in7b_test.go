// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in7b

import (
	"bytes"
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi/spitest"
)

// testDev builds a Dev over a recording SPI port with the busy line
// reporting ready.
func testDev(t *testing.T, opts *Opts) (*Dev, *spitest.Record) {
	t.Helper()

	port := &spitest.Record{}
	dev, err := New(port, &gpiotest.Pin{}, &gpiotest.Pin{}, &gpiotest.Pin{}, &gpiotest.Pin{L: gpio.High}, opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	return dev, port
}

// flatten concatenates all recorded SPI writes into one byte stream.
func flatten(ops []conntest.IO) []byte {
	var all []byte
	for _, op := range ops {
		all = append(all, op.W...)
	}
	return all
}

// initSequence is the full byte stream New must emit: reset happens on the
// reset line, then power programming, power on, status poll, panel
// configuration and the five waveform tables.
func initSequence() []byte {
	var seq []byte

	appendCmd := func(cmd byte, data ...byte) {
		seq = append(seq, cmd)
		seq = append(seq, data...)
	}

	appendCmd(powerSetting, 0x03, 0x00, 0x2b, 0x2b, 0x09)
	appendCmd(boosterSoftStart, 0x07, 0x07, 0x17)
	appendCmd(powerOptimization, 0x60, 0xa5)
	appendCmd(powerOptimization, 0x89, 0xa5)
	appendCmd(powerOptimization, 0x90, 0x00)
	appendCmd(powerOptimization, 0x93, 0x2a)
	appendCmd(powerOptimization, 0xa0, 0xa5)
	appendCmd(powerOptimization, 0xa1, 0x00)
	appendCmd(powerOptimization, 0x73, 0x41)
	appendCmd(partialDisplayRefresh, 0x00)
	appendCmd(powerOn)
	appendCmd(getStatus)
	appendCmd(panelSetting, 0xaf)
	appendCmd(pllControl, 0x3a)
	appendCmd(vcmDCSetting, 0x12)
	appendCmd(lutForVcom, lutVcomDC...)
	appendCmd(lutWhiteToWhite, lutWW...)
	appendCmd(lutBlackToWhite, lutBW...)
	appendCmd(lutWhiteToBlack, lutWB...)
	appendCmd(lutBlackToBlack, lutBB...)

	return seq
}

func TestNew(t *testing.T) {
	dev, port := testDev(t, &EPD2in7b)

	if got, want := dev.Width(), 176; got != want {
		t.Errorf("Width() = %d, want %d", got, want)
	}
	if got, want := dev.Height(), 264; got != want {
		t.Errorf("Height() = %d, want %d", got, want)
	}
	if diff := cmp.Diff(dev.Bounds(), image.Rect(0, 0, 176, 264)); diff != "" {
		t.Errorf("Bounds() difference (-got +want):\n%s", diff)
	}
	if got, want := dev.BackgroundColor(), White; got != want {
		t.Errorf("BackgroundColor() = %#02x, want %#02x", got, want)
	}
	if !strings.Contains(dev.String(), "Width: 176") {
		t.Errorf("String() = %q, want it to mention the width", dev.String())
	}

	if diff := cmp.Diff(flatten(port.Ops), initSequence()); diff != "" {
		t.Errorf("init byte stream difference (-got +want):\n%s", diff)
	}
}

// WakeUp must re-run the full initialization sequence every time; there is
// no skip-if-already-initialized shortcut.
func TestWakeUpTwice(t *testing.T) {
	dev, port := testDev(t, &EPD2in7b)

	port.Ops = nil
	if err := dev.WakeUp(); err != nil {
		t.Fatalf("WakeUp() failed: %v", err)
	}
	first := flatten(port.Ops)

	port.Ops = nil
	if err := dev.WakeUp(); err != nil {
		t.Fatalf("WakeUp() failed: %v", err)
	}
	second := flatten(port.Ops)

	if diff := cmp.Diff(first, initSequence()); diff != "" {
		t.Errorf("first WakeUp() byte stream difference (-got +want):\n%s", diff)
	}
	if !bytes.Equal(first, second) {
		t.Error("second WakeUp() emitted a different byte stream")
	}
}

func TestUpdateAndDisplayFrame(t *testing.T) {
	dev, port := testDev(t, &EPD2in7b)
	port.Ops = nil

	buf := make([]byte, 5808)
	if err := dev.UpdateAndDisplayFrame(buf); err != nil {
		t.Fatalf("UpdateAndDisplayFrame() failed: %v", err)
	}

	want := append([]byte{dataStartTransmission2}, buf...)
	want = append(want, displayRefresh, getStatus)

	if diff := cmp.Diff(flatten(port.Ops), want); diff != "" {
		t.Errorf("byte stream difference (-got +want):\n%s", diff)
	}
}

func TestClearFrameStream(t *testing.T) {
	dev, port := testDev(t, &EPD2in7b)

	for _, tc := range []struct {
		name  string
		color Color
	}{
		{name: "white", color: White},
		{name: "black", color: Black},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dev.SetBackgroundColor(tc.color)
			port.Ops = nil

			if err := dev.ClearFrame(); err != nil {
				t.Fatalf("ClearFrame() failed: %v", err)
			}

			got := flatten(port.Ops)
			want := append([]byte{dataStartTransmission1}, bytes.Repeat([]byte{byte(tc.color)}, 5808)...)
			want = append(want, dataStartTransmission2)
			want = append(want, bytes.Repeat([]byte{byte(tc.color)}, 5808)...)

			if diff := cmp.Diff(got, want); diff != "" {
				t.Errorf("byte stream difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestSleepStream(t *testing.T) {
	dev, port := testDev(t, &EPD2in7b)
	port.Ops = nil

	if err := dev.Sleep(); err != nil {
		t.Fatalf("Sleep() failed: %v", err)
	}

	want := []byte{
		getStatus,
		vcomAndDataIntervalSetting, 0xf7,
		powerOff,
		getStatus,
		deepSleep, 0xa5,
	}

	if diff := cmp.Diff(flatten(port.Ops), want); diff != "" {
		t.Errorf("byte stream difference (-got +want):\n%s", diff)
	}
}

func TestUpdateFrameLength(t *testing.T) {
	dev, _ := testDev(t, &EPD2in7b)

	for _, n := range []int{0, 5807, 5809, 2 * 5808} {
		if err := dev.UpdateFrame(make([]byte, n)); !errors.Is(err, ErrInvalidBufferLength) {
			t.Errorf("UpdateFrame() with %d bytes: got %v, want ErrInvalidBufferLength", n, err)
		}
	}

	if err := dev.UpdateFrame(make([]byte, 5808)); err != nil {
		t.Errorf("UpdateFrame() with 5808 bytes failed: %v", err)
	}
}

func TestUpdatePartialFrameLength(t *testing.T) {
	dev, _ := testDev(t, &EPD2in7b)

	// 64x32 window needs 256 bytes.
	if err := dev.UpdatePartialFrame(make([]byte, 256), 8, 8, 64, 32); err != nil {
		t.Errorf("UpdatePartialFrame() failed: %v", err)
	}
	if err := dev.UpdatePartialFrame(make([]byte, 255), 8, 8, 64, 32); !errors.Is(err, ErrInvalidBufferLength) {
		t.Error("UpdatePartialFrame() accepted a short buffer")
	}

	// Width is clipped to 64, so a buffer sized for 70 pixels must be
	// rejected instead of overrunning the window.
	if err := dev.UpdatePartialFrame(make([]byte, 70*32/8), 8, 8, 70, 32); !errors.Is(err, ErrInvalidBufferLength) {
		t.Error("UpdatePartialFrame() accepted a buffer sized for the unclipped width")
	}
	if err := dev.UpdatePartialFrame(make([]byte, 256), 8, 8, 70, 32); err != nil {
		t.Errorf("UpdatePartialFrame() with clipped-width buffer failed: %v", err)
	}
}

func TestBusyTimeout(t *testing.T) {
	port := &spitest.Record{}
	opts := EPD2in7b
	opts.BusyTimeout = 10 * time.Millisecond

	// Busy line stuck low: init gates on it after power on and must fail
	// instead of hanging.
	_, err := New(port, &gpiotest.Pin{}, &gpiotest.Pin{}, &gpiotest.Pin{}, &gpiotest.Pin{L: gpio.Low}, &opts)
	if !errors.Is(err, ErrBusyTimeout) {
		t.Errorf("New() with stuck busy line: got %v, want ErrBusyTimeout", err)
	}
}

func TestIsBusy(t *testing.T) {
	busy := &gpiotest.Pin{L: gpio.High}
	port := &spitest.Record{}

	dev, err := New(port, &gpiotest.Pin{}, &gpiotest.Pin{}, &gpiotest.Pin{}, busy, &EPD2in7b)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if dev.IsBusy() {
		t.Error("IsBusy() = true with ready line")
	}

	busy.L = gpio.Low
	if !dev.IsBusy() {
		t.Error("IsBusy() = false with busy line")
	}
}

func TestSetBackgroundColor(t *testing.T) {
	dev, _ := testDev(t, &EPD2in7b)

	if got := dev.BackgroundColor(); got != White {
		t.Errorf("default background = %#02x, want white", got)
	}

	dev.SetBackgroundColor(Black)
	if got := dev.BackgroundColor(); got != Black {
		t.Errorf("background after SetBackgroundColor(Black) = %#02x", got)
	}
}
