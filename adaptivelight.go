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
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

var applicationVersion = "development"

func main() {
	configurationFile := pflag.StringP("configuration", "c", "", "path to the configuration file")
	debug := pflag.Bool("debug", false, "enable debug logging")
	version := pflag.Bool("version", false, "print version and exit")
	pflag.Parse()

	if *version {
		fmt.Println(applicationVersion)
		return
	}
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	log.Printf("🚀 Adaptive lighting %v starting up...", applicationVersion)
	go CheckForUpdate(applicationVersion)
	go validateLocalClock()

	// load config or create a new one
	configuration, err := InitializeConfiguration(*configurationFile)
	if err != nil {
		log.Fatal(err)
	}

	// find bridge
	var bridge HueBridge
	err = bridge.InitializeBridge(&configuration)
	if err != nil {
		log.Fatal(err)
	}
	err = bridge.printDevices()
	if err != nil {
		log.Fatal(err)
	}

	// find location
	tracker, err := InitializeSolarTracker(configuration.Location.Latitude, configuration.Location.Longitude)
	if err != nil {
		log.Fatal(err)
	}
	configuration.Location.Latitude = tracker.Latitude
	configuration.Location.Longitude = tracker.Longitude

	// save discovered bridge credentials and location
	err = configuration.Write()
	if err != nil {
		log.Fatal(err)
	}

	// the light under control
	light, err := bridge.Light(configuration.LightID)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("💡 Controlling light %s", light.Name)

	restoreMode, err := ParseRestoreMode(configuration.Switch.RestoreMode)
	if err != nil {
		log.Fatal(err)
	}
	swtch := &PersistentSwitch{StateFile: configuration.Switch.StateFile, Mode: restoreMode}

	controller := NewController(light, tracker, swtch, &configuration)

	if configuration.MQTT.Enabled {
		err = startMQTT(configuration.MQTT, controller, swtch)
		if err != nil {
			log.Warningf("MQTT disabled: %v", err)
		}
	}
	if configuration.WebInterface.Enabled {
		go startWebInterface(configuration.WebInterface, controller)
	}

	// announce the restored switch state to all subscribers
	swtch.Publish(swtch.State())

	done := make(chan struct{})
	go light.updateCyclic(done)

	// diagnostic dump before entering the control loop
	controller.buildReport().Log()

	controller.Run(time.Duration(configuration.UpdateInterval)*time.Second, done)
}
