// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in7b

import (
	"bytes"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// maxTxSize keeps single SPI transactions below the common spidev transfer
// limit.
const maxTxSize = 4096

// errorHandler is a wrapper for error management.
type errorHandler struct {
	d   Dev
	err error
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.rst.Out(l)
}

func (eh *errorHandler) cTx(w []byte, r []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.c.Tx(w, r)
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.dc.Out(l)
}

func (eh *errorHandler) csOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.cs.Out(l)
}

func (eh *errorHandler) sendCommand(cmd byte) {
	if eh.err != nil {
		return
	}

	eh.dcOut(gpio.Low)
	eh.csOut(gpio.Low)
	eh.cTx([]byte{cmd}, nil)
	eh.csOut(gpio.High)
}

func (eh *errorHandler) sendData(data []byte) {
	for len(data) > 0 && eh.err == nil {
		n := len(data)
		if n > maxTxSize {
			n = maxTxSize
		}

		eh.dcOut(gpio.High)
		eh.csOut(gpio.Low)
		eh.cTx(data[:n], nil)
		eh.csOut(gpio.High)

		data = data[n:]
	}
}

// sendDataRepeated fills an area with a flat color without allocating
// a full-size buffer.
func (eh *errorHandler) sendDataRepeated(b byte, count int) {
	if eh.err != nil {
		return
	}

	n := count
	if n > maxTxSize {
		n = maxTxSize
	}
	chunk := bytes.Repeat([]byte{b}, n)

	for count > 0 && eh.err == nil {
		if count < len(chunk) {
			chunk = chunk[:count]
		}
		eh.sendData(chunk)
		count -= len(chunk)
	}
}

// waitUntilIdle polls the busy line until the panel reports ready. The line
// is active low. The poll is bounded so a hardware fault surfaces as
// ErrBusyTimeout instead of a permanent hang.
func (eh *errorHandler) waitUntilIdle() {
	if eh.err != nil {
		return
	}

	deadline := time.Now().Add(eh.d.opts.busyTimeout())
	for eh.d.busy.Read() == gpio.Low {
		if time.Now().After(deadline) {
			eh.err = ErrBusyTimeout
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}
