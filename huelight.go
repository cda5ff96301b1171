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
	"math"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	hue "github.com/stefanwichmann/go.hue"
)

var lightsSupportingDimming = []string{"Dimmable light", "Color temperature light", "Color light", "Extended color light"}
var lightsSupportingColorTemperature = []string{"Color temperature light", "Extended color light"}

const lightPollInterval = 1 * time.Second

// targetSettleGrace is added on top of a commanded transition before the
// device state is compared against the command.
const targetSettleGrace = 500 * time.Millisecond

// HueLight adapts one physical hue light to the LightDevice interface.
// Remote state is polled cyclically and diffed into state change and target
// reached notifications.
type HueLight struct {
	hueLight hue.Light

	Name                     string
	Dimmable                 bool
	SupportsColorTemperature bool
	minMireds                float64
	maxMireds                float64

	mu          sync.Mutex
	current     LightStatus
	initialized bool
	lastCommand *LightCommand
	pending     bool
	settleAt    time.Time

	stateChanged  []func(LightStatus)
	targetReached []func()
}

func (light *HueLight) initialize(attr hue.LightAttributes) {
	light.Name = attr.Name
	light.Dimmable = containsString(lightsSupportingDimming, attr.Type)
	light.SupportsColorTemperature = containsString(lightsSupportingColorTemperature, attr.Type)

	// capability bounds depend on the light type
	if attr.Type == "Color temperature light" {
		light.minMireds = 153
		light.maxMireds = 454
	} else {
		light.minMireds = 153
		light.maxMireds = 500
	}

	log.Debugf("💡 Light %s - Identified as %s (ModelID: %s, Version: %s)", light.Name, attr.Type, attr.ModelId, attr.SoftwareVersion)
	light.current = statusFromAttributes(attr, nil)
	light.initialized = true
}

// Status returns the last polled remote state.
func (light *HueLight) Status() LightStatus {
	light.mu.Lock()
	defer light.mu.Unlock()
	return light.current
}

// ColorTemperatureRange returns the capability bounds in mireds.
func (light *HueLight) ColorTemperatureRange() (float64, float64) {
	return light.minMireds, light.maxMireds
}

// SubscribeStateChanged registers a callback for remote state changes.
// Must be called before the poll loop is started.
func (light *HueLight) SubscribeStateChanged(callback func(LightStatus)) {
	light.stateChanged = append(light.stateChanged, callback)
}

// SubscribeTargetReached registers a callback invoked once an applied
// command has settled. Must be called before the poll loop is started.
func (light *HueLight) SubscribeTargetReached(callback func()) {
	light.targetReached = append(light.targetReached, callback)
}

// Apply sends the command to the bridge and starts tracking its settlement.
func (light *HueLight) Apply(command LightCommand) error {
	var state hue.SetLightState
	state.Ct = strconv.Itoa(int(math.Round(command.ColorTemperature)))
	if light.Dimmable && command.Brightness > 0 {
		state.Bri = strconv.Itoa(int(math.Round(command.Brightness)))
	}
	if command.Transition > 0 {
		// hue transition time is in 100ms steps
		state.TransitionTime = strconv.Itoa(int(command.Transition / (100 * time.Millisecond)))
	}

	_, err := light.hueLight.SetState(state)
	if err != nil {
		return err
	}

	light.mu.Lock()
	defer light.mu.Unlock()
	light.lastCommand = &command
	light.pending = true
	light.settleAt = time.Now().Add(command.Transition + targetSettleGrace)
	return nil
}

// updateCyclic polls the remote light state until done is closed.
func (light *HueLight) updateCyclic(done <-chan struct{}) {
	ticker := time.NewTicker(lightPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := light.poll(); err != nil {
				log.Debugf("💡 Light %s - Poll failed: %v", light.Name, err)
			}
		}
	}
}

func (light *HueLight) poll() error {
	attr, err := light.hueLight.GetLightAttributes()
	if err != nil {
		return err
	}

	light.mu.Lock()
	status := statusFromAttributes(*attr, light.lastCommand)
	changed := !light.initialized || status != light.current
	light.initialized = true
	light.current = status

	reached := false
	if light.pending {
		if !status.On {
			// command got superseded by a turn-off
			light.pending = false
		} else if time.Now().After(light.settleAt) &&
			math.Abs(status.ColorTemperature-light.lastCommand.ColorTemperature) < 0.5 {
			light.pending = false
			reached = true
		}
	}
	stateChanged := light.stateChanged
	targetReached := light.targetReached
	light.mu.Unlock()

	if changed {
		log.Debugf("💡 Light %s - Remote state changed: %+v", light.Name, status)
		for _, callback := range stateChanged {
			callback(status)
		}
	}
	if reached {
		log.Debugf("💡 Light %s - Target state reached", light.Name)
		for _, callback := range targetReached {
			callback()
		}
	}
	return nil
}

// statusFromAttributes converts bridge attributes to a LightStatus. The
// bridge reports whole mireds only, so a value that quantizes to the last
// command is echoed back as the commanded fraction - otherwise the
// controller would read its own command as a manual change.
func statusFromAttributes(attr hue.LightAttributes, lastCommand *LightCommand) LightStatus {
	status := LightStatus{
		On:               attr.State.On && attr.State.Reachable,
		ColorTemperature: float64(attr.State.Ct),
		Brightness:       float64(attr.State.Bri),
	}
	if lastCommand != nil && math.Round(lastCommand.ColorTemperature) == float64(attr.State.Ct) {
		status.ColorTemperature = lastCommand.ColorTemperature
	}
	return status
}
