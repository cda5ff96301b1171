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
	"time"

	log "github.com/sirupsen/logrus"
)

// dedupThresholdMireds guards against feedback loops: a newly calculated
// target within this distance of the value we last requested ourselves is
// not sent again (re-sending would re-trigger the devices state change
// notification and cycle forever).
const dedupThresholdMireds = 0.1

// interferenceThresholdMireds detects manual overrides: a device reported
// color temperature further than this from the value we last requested is
// treated as an external change. Shares its value with dedupThresholdMireds
// but guards a different invariant.
const interferenceThresholdMireds = 0.1

// Controller continuously derives a color temperature target from the suns
// position and applies it to a light, unless the user took over.
//
// All state is owned by a single goroutine: device notifications, ticks and
// external requests are serialized through the dispatch channel by Run. The
// handle methods must only be called from that goroutine.
type Controller struct {
	light LightDevice
	sun   SolarEphemeris
	swtch *PersistentSwitch

	sunriseElevation float64
	sunsetElevation  float64
	minMireds        float64
	maxMireds        float64
	transition       time.Duration
	curveSpeed       float64

	enabled             bool
	lastRequestedMireds float64 // <= 0 means no command was issued yet
	previousLightOn     bool

	dispatch chan func()
}

// NewController wires a controller to its collaborators. Mired bounds left
// unconfigured (<= 0) default to the devices capability range. The switch
// restore policy decides the initial state.
func NewController(light LightDevice, sun SolarEphemeris, swtch *PersistentSwitch, configuration *Configuration) *Controller {
	controller := &Controller{
		light:            light,
		sun:              sun,
		swtch:            swtch,
		sunriseElevation: configuration.SunriseElevation,
		sunsetElevation:  configuration.SunsetElevation,
		minMireds:        configuration.MinMireds,
		maxMireds:        configuration.MaxMireds,
		transition:       time.Duration(configuration.TransitionLength) * time.Millisecond,
		curveSpeed:       configuration.CurveSpeed,
		dispatch:         make(chan func()),
	}

	deviceMin, deviceMax := light.ColorTemperatureRange()
	if controller.minMireds <= 0 {
		controller.minMireds = deviceMin
	}
	if controller.maxMireds <= 0 {
		controller.maxMireds = deviceMax
	}
	log.Debugf("☀ Color temperature range: %.3f - %.3f", controller.minMireds, controller.maxMireds)

	controller.enabled = swtch.Restore()

	light.SubscribeStateChanged(func(status LightStatus) {
		controller.Dispatch(func() { controller.handleLightStateChange(status) })
	})
	light.SubscribeTargetReached(func() {
		controller.Dispatch(func() { controller.handleTargetReached() })
	})

	return controller
}

// Run processes ticks, device notifications and external requests until done
// is closed. This is the only goroutine touching controller state.
func (c *Controller) Run(interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.update()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			c.update()
		case fn := <-c.dispatch:
			fn()
		}
	}
}

// Dispatch hands a closure to the controller goroutine.
func (c *Controller) Dispatch(fn func()) {
	c.dispatch <- fn
}

// Enable requests the controller to start adapting the light.
func (c *Controller) Enable() {
	c.Dispatch(func() { c.setEnabled(true) })
}

// Disable requests the controller to stop adapting the light.
func (c *Controller) Disable() {
	c.Dispatch(func() { c.setEnabled(false) })
}

// Snapshot builds a diagnostic report on the controller goroutine.
func (c *Controller) Snapshot() Report {
	result := make(chan Report, 1)
	c.Dispatch(func() { result <- c.buildReport() })
	return <-result
}

// setEnabled switches the controller on or off. A real transition forces the
// next evaluation to bypass the dedup guard, publishes the new switch state
// and evaluates once right away. The second bypass covers commands issued
// while the light is mid transition (e.g. a turn-on fade), so the color is
// corrected again once the fade completes.
func (c *Controller) setEnabled(enabled bool) {
	if c.enabled == enabled {
		return
	}
	if enabled {
		log.Printf("☀ Adaptive lighting enabled")
	} else {
		log.Printf("☀ Adaptive lighting disabled")
	}

	c.forceNextUpdate()
	c.enabled = enabled
	c.swtch.Publish(enabled)
	c.update()
	c.forceNextUpdate()
}

// forceNextUpdate clears the last requested value so the next evaluation
// sends a command even if the target did not move.
func (c *Controller) forceNextUpdate() {
	c.lastRequestedMireds = 0
}

// update runs one evaluation cycle. Every failed precondition is an expected
// idle condition and aborts the cycle silently.
func (c *Controller) update() {
	if c.light == nil || c.sun == nil {
		log.Warning("☀ Light or solar ephemeris not set!")
		return
	}

	if !c.enabled {
		log.Debug("☀ Update skipped - automatic updates disabled")
		return
	}

	status := c.light.Status()
	if !status.On {
		log.Debug("☀ Update skipped - light is off")
		return
	}

	now := c.sun.Now()
	// start of day, to get todays events instead of the next ones
	today := startOfDay(now)

	sunriseAt, ok := c.sun.Sunrise(today, c.sunriseElevation)
	if !ok {
		log.Warning("☀ Could not determine sunrise")
		return
	}
	sunsetAt, ok := c.sun.Sunset(today, c.sunsetElevation)
	if !ok {
		log.Warning("☀ Could not determine sunset")
		return
	}

	mireds := calculateColorTemperature(now, sunriseAt, sunsetAt, c.minMireds, c.maxMireds, c.curveSpeed)

	if math.Abs(mireds-c.lastRequestedMireds) < dedupThresholdMireds {
		log.Debug("☀ Skipping update, color temperature is the same as last requested")
		return
	}
	// committed before the command goes out, so a synchronous state change
	// notification finds it already in place
	c.lastRequestedMireds = mireds

	log.Debugf("☀ Setting color temperature %.3f", mireds)
	command := LightCommand{
		ColorTemperature: mireds,
		// set brightness as well, otherwise some devices do not recalculate
		// derived values properly
		Brightness: status.Brightness,
		Transition: c.transition,
	}
	if err := c.light.Apply(command); err != nil {
		log.Warningf("☀ Could not apply light command: %v", err)
	}
}

// handleLightStateChange runs the interference detection path on every
// reported remote state change.
func (c *Controller) handleLightStateChange(status LightStatus) {
	if status.On {
		if c.enabled && c.lastRequestedMireds > 0 &&
			math.Abs(status.ColorTemperature-c.lastRequestedMireds) > interferenceThresholdMireds {
			log.Infof("☀ Color temperature changed externally (current: %.3f, last requested: %.3f), disabling adaptive lighting",
				status.ColorTemperature, c.lastRequestedMireds)
			c.setEnabled(false)
		} else if !c.previousLightOn && !c.enabled && c.swtch.Mode == RestoreAlwaysOn {
			// light was just turned on
			c.setEnabled(true)
		}
	}

	c.previousLightOn = status.On
}

// handleTargetReached re-evaluates once a transition completes. It relies on
// previousLightOn being maintained by handleLightStateChange.
func (c *Controller) handleTargetReached() {
	if c.previousLightOn && c.enabled {
		c.update()
	}
}
