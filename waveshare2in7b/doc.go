// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package waveshare2in7b controls Waveshare 2.7 inch (B) e-paper displays.
//
// The panel is driven over 4-wire SPI plus chip-select, data/command, reset
// and busy lines. Commands and their data payloads are sent as separate
// chip-select transactions; the panel tolerates the release of chip-select
// between the two phases.
//
// Datasheet
//
// https://www.waveshare.com/w/upload/b/ba/2.7inch-e-paper-b-specification.pdf
//
// Product page:
//
// https://www.waveshare.com/wiki/2.7inch_e-Paper_HAT_(B)
package waveshare2in7b
