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

func TestReadError(t *testing.T) {
	wrongFiles := []string{
		"", // no file passed
		filepath.Join(t.TempDir(), "does-not-exist.json"),
		t.TempDir(), // not a regular file
	}
	for _, testFile := range wrongFiles {
		c := Configuration{ConfigurationFile: testFile}
		if err := c.Read(); err == nil {
			t.Errorf("reading [%v] should return an error", c.ConfigurationFile)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"config.json", "config.yaml"} {
		file := filepath.Join(t.TempDir(), name)
		var written Configuration
		written.initializeDefaults()
		written.ConfigurationFile = file
		written.Bridge = Bridge{IP: "192.168.1.2", Username: "testuser"}
		written.Location = Location{Latitude: 50.08, Longitude: 14.42}
		written.MinMireds = 153
		written.MaxMireds = 370

		if err := written.Write(); err != nil {
			t.Fatalf("could not write %v: %v", file, err)
		}

		read := Configuration{ConfigurationFile: file}
		if err := read.Read(); err != nil {
			t.Fatalf("could not read %v back: %v", file, err)
		}
		read.ConfigurationFile = written.ConfigurationFile
		if read != written {
			t.Errorf("%v round trip mismatch:\n got %+v\nwant %+v", name, read, written)
		}
	}
}

func TestInitializeWritesDefaults(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.json")
	configuration, err := InitializeConfiguration(file)
	if err != nil {
		t.Fatalf("InitializeConfiguration failed: %v", err)
	}
	if !configuration.Exists() {
		t.Error("default configuration was not written to disk")
	}
	if configuration.SunriseElevation != defaultSunElevation || configuration.CurveSpeed != 1.0 {
		t.Errorf("unexpected defaults: %+v", configuration)
	}
}

func TestValidate(t *testing.T) {
	invalid := map[string]func(*Configuration){
		"inverted mired range": func(c *Configuration) { c.MinMireds = 400; c.MaxMireds = 200 },
		"zero curve speed":     func(c *Configuration) { c.CurveSpeed = 0 },
		"zero update interval": func(c *Configuration) { c.UpdateInterval = 0 },
		"unknown restore mode": func(c *Configuration) { c.Switch.RestoreMode = "sometimes" },
	}
	for name, corrupt := range invalid {
		var c Configuration
		c.initializeDefaults()
		corrupt(&c)
		if err := c.validate(); err == nil {
			t.Errorf("%s: validate() did not fail", name)
		}
	}

	var c Configuration
	c.initializeDefaults()
	if err := c.validate(); err != nil {
		t.Errorf("default configuration does not validate: %v", err)
	}
}
