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
	"testing"

	hue "github.com/stefanwichmann/go.hue"
)

func TestStatusFromAttributes(t *testing.T) {
	var attr hue.LightAttributes
	attr.State.On = true
	attr.State.Reachable = true
	attr.State.Ct = 287
	attr.State.Bri = 200

	status := statusFromAttributes(attr, nil)
	if !status.On || status.ColorTemperature != 287 || status.Brightness != 200 {
		t.Errorf("statusFromAttributes = %+v", status)
	}

	// unreachable lights count as off
	attr.State.Reachable = false
	if status := statusFromAttributes(attr, nil); status.On {
		t.Error("unreachable light reported as on")
	}
}

func TestStatusEchoesCommandedFraction(t *testing.T) {
	var attr hue.LightAttributes
	attr.State.On = true
	attr.State.Reachable = true
	attr.State.Ct = 287

	// the bridge quantizes 287.3 to 287; the reported value must come back
	// as the commanded fraction so it is not mistaken for a manual change
	command := &LightCommand{ColorTemperature: 287.3}
	status := statusFromAttributes(attr, command)
	if status.ColorTemperature != 287.3 {
		t.Errorf("reported color temperature %v; want echoed 287.3", status.ColorTemperature)
	}

	// a genuinely different value is passed through untouched
	attr.State.Ct = 300
	status = statusFromAttributes(attr, command)
	if status.ColorTemperature != 300 {
		t.Errorf("reported color temperature %v; want raw 300", status.ColorTemperature)
	}
}
