// MIT License
//
// Copyright (c) 2024 Michal Dvorak
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
package main

import (
	"time"

	"github.com/bt51/ntpclient"
	log "github.com/sirupsen/logrus"
)

const timeServer = "0.pool.ntp.org"
const maxClockDrift = time.Minute

// validateLocalClock compares the local clock against network time. A solar
// schedule computed from a wrong clock targets the wrong part of the curve
// all day, so a large drift is worth a warning.
func validateLocalClock() {
	networkTime, err := ntpclient.GetNetworkTime(timeServer, 123)
	if err != nil {
		log.Debugf("⚙ Could not validate local clock: %v", err)
		return
	}

	drift := time.Until(*networkTime)
	if drift < 0 {
		drift = -drift
	}
	if drift > maxClockDrift {
		log.Warningf("⚙ Local clock is off by %v. Sun events will be wrong until it is corrected.", drift.Round(time.Second))
	} else {
		log.Debugf("⚙ Local clock validated (drift %v)", drift.Round(time.Millisecond))
	}
}
