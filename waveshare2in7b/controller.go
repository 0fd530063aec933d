// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in7b

type controller interface {
	sendCommand(byte)
	sendData([]byte)
	sendDataRepeated(byte, int)
	waitUntilIdle()
}

// waitReady gates on panel-internal processing. The panel updates its busy
// line only after a status request.
func waitReady(ctrl controller) {
	ctrl.sendCommand(getStatus)
	ctrl.waitUntilIdle()
}

func initDisplay(ctrl controller) {
	ctrl.sendCommand(powerSetting)
	ctrl.sendData([]byte{0x03, 0x00, 0x2b, 0x2b, 0x09})

	ctrl.sendCommand(boosterSoftStart)
	ctrl.sendData([]byte{0x07, 0x07, 0x17})

	// Vendor-documented power optimization sub-steps.
	for _, p := range [][2]byte{
		{0x60, 0xa5},
		{0x89, 0xa5},
		{0x90, 0x00},
		{0x93, 0x2a},
		{0xa0, 0xa5},
		{0xa1, 0x00},
		{0x73, 0x41},
	} {
		ctrl.sendCommand(powerOptimization)
		ctrl.sendData(p[:])
	}

	ctrl.sendCommand(partialDisplayRefresh)
	ctrl.sendData([]byte{0x00})

	ctrl.sendCommand(powerOn)
	waitReady(ctrl)

	// 0xbf selects monochrome, 0xaf the multi-color mode.
	ctrl.sendCommand(panelSetting)
	ctrl.sendData([]byte{0xaf})

	ctrl.sendCommand(pllControl)
	ctrl.sendData([]byte{0x3a})

	ctrl.sendCommand(vcmDCSetting)
	ctrl.sendData([]byte{0x12})

	setLut(ctrl)
}

func sleepDisplay(ctrl controller) {
	waitReady(ctrl)

	ctrl.sendCommand(vcomAndDataIntervalSetting)
	ctrl.sendData([]byte{0xf7})

	ctrl.sendCommand(powerOff)
	waitReady(ctrl)

	ctrl.sendCommand(deepSleep)
	ctrl.sendData([]byte{0xa5})
}

// setLut programs the five waveform tables. The panel has a single built-in
// table set, installed on every initialization.
func setLut(ctrl controller) {
	ctrl.sendCommand(lutForVcom)
	ctrl.sendData(lutVcomDC)

	ctrl.sendCommand(lutWhiteToWhite)
	ctrl.sendData(lutWW)

	ctrl.sendCommand(lutBlackToWhite)
	ctrl.sendData(lutBW)

	ctrl.sendCommand(lutWhiteToBlack)
	ctrl.sendData(lutWB)

	ctrl.sendCommand(lutBlackToBlack)
	ctrl.sendData(lutBB)
}

func clearFrame(ctrl controller, color byte, opts *Opts) {
	n := frameLen(opts)

	ctrl.sendCommand(dataStartTransmission1)
	ctrl.sendDataRepeated(color, n)

	ctrl.sendCommand(dataStartTransmission2)
	ctrl.sendDataRepeated(color, n)
}

func updateFrame(ctrl controller, buffer []byte) {
	ctrl.sendCommand(dataStartTransmission2)
	ctrl.sendData(buffer)
}

func displayFrame(ctrl controller) {
	ctrl.sendCommand(displayRefresh)
	waitReady(ctrl)
}

// partialWindow encodes the geometry header shared by the partial
// operations. x and width are masked to 8 pixel boundaries; the panel
// ignores their low three bits.
func partialWindow(x, y, width, height int) []byte {
	return []byte{
		byte(x >> 8), byte(x & 0xf8),
		byte(y >> 8), byte(y & 0xff),
		byte(width >> 8), byte(width & 0xf8),
		byte(height >> 8), byte(height & 0xff),
	}
}

func updatePartialFrame(ctrl controller, buffer []byte, x, y, width, height int) {
	ctrl.sendCommand(partialDataStartTransmission1)
	ctrl.sendData(partialWindow(x, y, width, height))
	ctrl.sendData(buffer)

	ctrl.sendCommand(displayRefresh)
	waitReady(ctrl)
}

func displayPartialFrame(ctrl controller, x, y, width, height int) {
	ctrl.sendCommand(partialDisplayRefresh)
	ctrl.sendData(partialWindow(x, y, width, height))
	waitReady(ctrl)
}
