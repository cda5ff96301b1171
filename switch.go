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
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	log "github.com/sirupsen/logrus"
)

// RestoreMode decides the state of a persistent switch after a restart.
type RestoreMode string

const (
	// RestoreDefaultOff starts disabled, ignoring the persisted state.
	RestoreDefaultOff RestoreMode = "restore_default_off"
	// RestoreLastState starts with the state persisted before shutdown.
	RestoreLastState RestoreMode = "last_state"
	// RestoreAlwaysOn starts enabled and re-enables whenever the controlled
	// light turns on after being off.
	RestoreAlwaysOn RestoreMode = "always_on"
	// RestoreAlwaysOff starts disabled.
	RestoreAlwaysOff RestoreMode = "always_off"
)

// ParseRestoreMode maps a configuration value to a RestoreMode.
func ParseRestoreMode(value string) (RestoreMode, error) {
	switch RestoreMode(value) {
	case RestoreDefaultOff, RestoreLastState, RestoreAlwaysOn, RestoreAlwaysOff:
		return RestoreMode(value), nil
	case "":
		return RestoreDefaultOff, nil
	}
	return RestoreDefaultOff, fmt.Errorf("unknown switch restore mode %q", value)
}

type switchState struct {
	Enabled bool `json:"enabled"`
}

// PersistentSwitch is a boolean switch whose state survives restarts.
// Publish persists the new state and notifies all subscribers.
type PersistentSwitch struct {
	StateFile string
	Mode      RestoreMode

	state       bool
	subscribers []func(bool)
}

// Restore applies the restore policy and returns the resulting state.
func (s *PersistentSwitch) Restore() bool {
	switch s.Mode {
	case RestoreAlwaysOn:
		s.state = true
	case RestoreAlwaysOff, RestoreDefaultOff:
		s.state = false
	case RestoreLastState:
		s.state = s.readState()
	}
	log.Debugf("⚙ Switch restored to %v (mode %s)", s.state, s.Mode)
	return s.state
}

// Publish stores the new state and notifies subscribers. Subscribers are
// invoked on the callers goroutine.
func (s *PersistentSwitch) Publish(state bool) {
	s.state = state
	s.writeState(state)
	for _, subscriber := range s.subscribers {
		subscriber(state)
	}
}

// Subscribe registers a callback invoked on every Publish.
func (s *PersistentSwitch) Subscribe(callback func(bool)) {
	s.subscribers = append(s.subscribers, callback)
}

// State returns the current switch state.
func (s *PersistentSwitch) State() bool {
	return s.state
}

func (s *PersistentSwitch) readState() bool {
	if s.StateFile == "" {
		return false
	}
	raw, err := os.ReadFile(s.StateFile)
	if err != nil {
		// missing state file means the switch was never published
		return false
	}
	var persisted switchState
	if err := yaml.Unmarshal(raw, &persisted); err != nil {
		log.Warningf("⚙ Could not read switch state from %v: %v", s.StateFile, err)
		return false
	}
	return persisted.Enabled
}

func (s *PersistentSwitch) writeState(state bool) {
	if s.StateFile == "" {
		return
	}
	raw, err := yaml.Marshal(switchState{Enabled: state})
	if err != nil {
		log.Warningf("⚙ Could not marshal switch state: %v", err)
		return
	}
	if err := os.WriteFile(s.StateFile, raw, 0644); err != nil {
		log.Warningf("⚙ Could not persist switch state to %v: %v", s.StateFile, err)
	}
}
