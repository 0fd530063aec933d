// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in7b

// Waveform lookup tables from the vendor reference code. Each table is named
// for the register it programs; note that the vendor sources label the 0x23
// and 0x24 payloads the other way around.

var lutVcomDC = []byte{
	0x00, 0x00,
	0x00, 0x1a, 0x1a, 0x00, 0x00, 0x01,
	0x00, 0x0a, 0x0a, 0x00, 0x00, 0x08,
	0x00, 0x0e, 0x01, 0x0e, 0x01, 0x10,
	0x00, 0x0a, 0x0a, 0x00, 0x00, 0x08,
	0x00, 0x04, 0x10, 0x00, 0x00, 0x05,
	0x00, 0x03, 0x0e, 0x00, 0x00, 0x0a,
	0x00, 0x23, 0x00, 0x00, 0x00, 0x01,
}

var lutWW = []byte{
	0x90, 0x1a, 0x1a, 0x00, 0x00, 0x01,
	0x40, 0x0a, 0x0a, 0x00, 0x00, 0x08,
	0x84, 0x0e, 0x01, 0x0e, 0x01, 0x10,
	0x80, 0x0a, 0x0a, 0x00, 0x00, 0x08,
	0x00, 0x04, 0x10, 0x00, 0x00, 0x05,
	0x00, 0x03, 0x0e, 0x00, 0x00, 0x0a,
	0x00, 0x23, 0x00, 0x00, 0x00, 0x01,
}

var lutBW = []byte{
	0xa0, 0x1a, 0x1a, 0x00, 0x00, 0x01,
	0x00, 0x0a, 0x0a, 0x00, 0x00, 0x08,
	0x84, 0x0e, 0x01, 0x0e, 0x01, 0x10,
	0x90, 0x0a, 0x0a, 0x00, 0x00, 0x08,
	0xb0, 0x04, 0x10, 0x00, 0x00, 0x05,
	0xb0, 0x03, 0x0e, 0x00, 0x00, 0x0a,
	0xc0, 0x23, 0x00, 0x00, 0x00, 0x01,
}

var lutWB = []byte{
	0x90, 0x1a, 0x1a, 0x00, 0x00, 0x01,
	0x40, 0x0a, 0x0a, 0x00, 0x00, 0x08,
	0x84, 0x0e, 0x01, 0x0e, 0x01, 0x10,
	0x80, 0x0a, 0x0a, 0x00, 0x00, 0x08,
	0x00, 0x04, 0x10, 0x00, 0x00, 0x05,
	0x00, 0x03, 0x0e, 0x00, 0x00, 0x0a,
	0x00, 0x23, 0x00, 0x00, 0x00, 0x01,
}

var lutBB = []byte{
	0x90, 0x1a, 0x1a, 0x00, 0x00, 0x01,
	0x20, 0x0a, 0x0a, 0x00, 0x00, 0x08,
	0x84, 0x0e, 0x01, 0x0e, 0x01, 0x10,
	0x10, 0x0a, 0x0a, 0x00, 0x00, 0x08,
	0x00, 0x04, 0x10, 0x00, 0x00, 0x05,
	0x00, 0x03, 0x0e, 0x00, 0x00, 0x0a,
	0x00, 0x23, 0x00, 0x00, 0x00, 0x01,
}
