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

import "time"

// LightStatus is a snapshot of the remote state of a light as last reported
// by the device.
type LightStatus struct {
	On               bool    `json:"on"`
	ColorTemperature float64 `json:"colorTemperature"` // mireds
	Brightness       float64 `json:"brightness"`
}

// LightCommand describes a single state change request sent to a light.
// A zero Transition means the device default is used.
type LightCommand struct {
	ColorTemperature float64
	Brightness       float64
	Transition       time.Duration
}

// LightDevice abstracts a controllable light with color temperature support.
// Implementations deliver notifications from their own goroutines; callers
// are expected to serialize the callbacks themselves.
type LightDevice interface {
	// Status returns the last known remote state of the light.
	Status() LightStatus
	// ColorTemperatureRange returns the capability bounds in mireds.
	ColorTemperatureRange() (min float64, max float64)
	// Apply sends a state change request to the light.
	Apply(command LightCommand) error
	// SubscribeStateChanged registers a callback invoked whenever the
	// reported remote state of the light changes.
	SubscribeStateChanged(callback func(LightStatus))
	// SubscribeTargetReached registers a callback invoked once a previously
	// applied command has settled on the device.
	SubscribeTargetReached(callback func())
}
