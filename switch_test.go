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
	"path/filepath"
	"testing"
)

func TestRestoreModes(t *testing.T) {
	tests := map[string]struct {
		mode      RestoreMode
		persisted bool
		want      bool
	}{
		"always on":                  {mode: RestoreAlwaysOn, persisted: false, want: true},
		"always off":                 {mode: RestoreAlwaysOff, persisted: true, want: false},
		"default off":                {mode: RestoreDefaultOff, persisted: true, want: false},
		"last state enabled":         {mode: RestoreLastState, persisted: true, want: true},
		"last state never persisted": {mode: RestoreLastState, persisted: false, want: false},
	}
	for name, test := range tests {
		stateFile := filepath.Join(t.TempDir(), "switch_state.json")
		if test.persisted {
			previous := &PersistentSwitch{StateFile: stateFile, Mode: test.mode}
			previous.Publish(true)
		}

		s := &PersistentSwitch{StateFile: stateFile, Mode: test.mode}
		if got := s.Restore(); got != test.want {
			t.Errorf("%s: Restore() = %v; want %v", name, got, test.want)
		}
	}
}

func TestPublishPersistsAndNotifies(t *testing.T) {
	stateFile := filepath.Join(t.TempDir(), "switch_state.json")
	s := &PersistentSwitch{StateFile: stateFile, Mode: RestoreLastState}

	var notified []bool
	s.Subscribe(func(state bool) { notified = append(notified, state) })

	s.Publish(true)
	s.Publish(false)
	s.Publish(true)

	if len(notified) != 3 || !notified[0] || notified[1] || !notified[2] {
		t.Errorf("subscriber saw %v; want [true false true]", notified)
	}
	if !s.State() {
		t.Error("State() = false after Publish(true)")
	}

	restored := &PersistentSwitch{StateFile: stateFile, Mode: RestoreLastState}
	if !restored.Restore() {
		t.Error("persisted state was not restored")
	}
}

func TestParseRestoreMode(t *testing.T) {
	if mode, err := ParseRestoreMode("always_on"); err != nil || mode != RestoreAlwaysOn {
		t.Errorf("ParseRestoreMode(always_on) = %v, %v", mode, err)
	}
	if mode, err := ParseRestoreMode(""); err != nil || mode != RestoreDefaultOff {
		t.Errorf("ParseRestoreMode(\"\") = %v, %v; want default off", mode, err)
	}
	if _, err := ParseRestoreMode("sometimes"); err == nil {
		t.Error("ParseRestoreMode(sometimes) did not fail")
	}
}
