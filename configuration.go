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
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ghodss/yaml"
	log "github.com/sirupsen/logrus"
)

// Bridge holds the connection details of the hue bridge.
type Bridge struct {
	IP       string `json:"ip"`
	Username string `json:"username"`
}

// Location is a position on earth.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SwitchConfiguration controls persistence of the enable switch.
type SwitchConfiguration struct {
	StateFile   string `json:"stateFile"`
	RestoreMode string `json:"restoreMode"`
}

// WebInterface configures the diagnostic http endpoint.
type WebInterface struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

// MQTTConfiguration configures the optional MQTT surface.
type MQTTConfiguration struct {
	Enabled     bool   `json:"enabled"`
	Broker      string `json:"broker"`
	TopicPrefix string `json:"topicPrefix"`
}

// Configuration encapsulates all settings of the daemon. It is immutable
// after startup.
type Configuration struct {
	ConfigurationFile string              `json:"-"`
	Bridge            Bridge              `json:"bridge"`
	Location          Location            `json:"location"`
	LightID           int                 `json:"lightId"`
	SunriseElevation  float64             `json:"sunriseElevation"`
	SunsetElevation   float64             `json:"sunsetElevation"`
	MinMireds         float64             `json:"minMireds"`
	MaxMireds         float64             `json:"maxMireds"`
	TransitionLength  int                 `json:"transitionLength"` // milliseconds, 0 = device default
	CurveSpeed        float64             `json:"curveSpeed"`
	UpdateInterval    int                 `json:"updateInterval"` // seconds
	Switch            SwitchConfiguration `json:"switch"`
	WebInterface      WebInterface        `json:"webInterface"`
	MQTT              MQTTConfiguration   `json:"mqtt"`
}

// defaultSunElevation matches the geometric sunrise corrected for
// atmospheric refraction.
const defaultSunElevation = -0.833

func (configuration *Configuration) initializeDefaults() {
	configuration.ConfigurationFile = "config.json"
	configuration.LightID = 1
	configuration.SunriseElevation = defaultSunElevation
	configuration.SunsetElevation = defaultSunElevation
	configuration.MinMireds = 0 // use device bounds
	configuration.MaxMireds = 0
	configuration.TransitionLength = 0
	configuration.CurveSpeed = 1.0
	configuration.UpdateInterval = 60
	configuration.Switch = SwitchConfiguration{StateFile: "switch_state.json", RestoreMode: string(RestoreDefaultOff)}
	configuration.WebInterface = WebInterface{Enabled: true, Port: 8080}
	configuration.MQTT = MQTTConfiguration{Enabled: false, TopicPrefix: "adaptive_lighting"}
}

// InitializeConfiguration loads the configuration from the given file or
// writes a default one if it does not exist yet.
func InitializeConfiguration(configurationFile string) (Configuration, error) {
	var configuration Configuration
	configuration.initializeDefaults()
	if configurationFile != "" {
		configuration.ConfigurationFile = configurationFile
	}

	if configuration.Exists() {
		err := configuration.Read()
		if err != nil {
			return configuration, err
		}
		log.Printf("⚙ Configuration %v loaded", configuration.ConfigurationFile)
	} else {
		// write default config to disk
		err := configuration.Write()
		if err != nil {
			return configuration, err
		}
		log.Println("⚙ Default configuration generated")
	}

	err := configuration.validate()
	return configuration, err
}

func (configuration *Configuration) validate() error {
	if configuration.MinMireds > 0 && configuration.MaxMireds > 0 &&
		configuration.MinMireds > configuration.MaxMireds {
		return fmt.Errorf("invalid color temperature range: %v - %v", configuration.MinMireds, configuration.MaxMireds)
	}
	if configuration.CurveSpeed <= 0 {
		return fmt.Errorf("curve speed must be positive, got %v", configuration.CurveSpeed)
	}
	if configuration.UpdateInterval <= 0 {
		return fmt.Errorf("update interval must be positive, got %v", configuration.UpdateInterval)
	}
	if _, err := ParseRestoreMode(configuration.Switch.RestoreMode); err != nil {
		return err
	}
	return nil
}

// Write stores the configuration to disk, as json or yaml depending on the
// file extension.
func (configuration *Configuration) Write() error {
	if configuration.ConfigurationFile == "" {
		return errors.New("no configuration filename configured")
	}

	var raw []byte
	var err error
	if strings.HasSuffix(configuration.ConfigurationFile, "yaml") || strings.HasSuffix(configuration.ConfigurationFile, "yml") {
		raw, err = yaml.Marshal(configuration)
	} else {
		raw, err = json.MarshalIndent(configuration, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(configuration.ConfigurationFile, raw, 0644)
}

// Read loads the configuration from disk. Yaml is a superset of json, so a
// single unmarshal path covers both formats.
func (configuration *Configuration) Read() error {
	if configuration.ConfigurationFile == "" {
		return errors.New("no configuration filename configured")
	}

	raw, err := os.ReadFile(configuration.ConfigurationFile)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(raw, configuration)
}

// Exists reports whether the configuration file is present on disk.
func (configuration *Configuration) Exists() bool {
	if configuration.ConfigurationFile == "" {
		return false
	}

	if _, err := os.Stat(configuration.ConfigurationFile); os.IsNotExist(err) {
		return false
	}
	return true
}
