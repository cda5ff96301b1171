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
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	hue "github.com/stefanwichmann/go.hue"
)

// HueBridge represents the hue bridge all commands are routed through.
type HueBridge struct {
	bridge   hue.Bridge
	BridgeIP string
	Username string
}

const hueBridgeAppName = "adaptive-lighting"

// InitializeBridge discovers, registers at and connects to the bridge.
// A valid configuration is used as is; otherwise a local discovery is
// started, followed by a user registration on the bridge.
func (bridge *HueBridge) InitializeBridge(configuration *Configuration) error {
	err := bridge.discover(configuration.Bridge.IP)
	if err != nil {
		return err
	}
	configuration.Bridge.IP = bridge.BridgeIP

	if configuration.Bridge.Username != "" {
		log.Debugf("⌘ Found bridge username in configuration: %s", configuration.Bridge.Username)
		bridge.Username = configuration.Bridge.Username
	} else {
		log.Debugf("⌘ No username found in bridge configuration. Starting registration...")
		err := bridge.register()
		if err != nil {
			return err
		}
		log.Debugf("⌘ Saving new username in bridge configuration: %s", bridge.Username)
		configuration.Bridge.Username = bridge.Username
	}

	log.Debugf("⌘ Connecting to bridge %s with username %s", bridge.BridgeIP, bridge.Username)
	err = bridge.connect()
	if err != nil {
		return err
	}
	log.Println("⌘ Connection to bridge established")
	return nil
}

// Light returns the light with the given id on the bridge.
func (bridge *HueBridge) Light(id int) (*HueLight, error) {
	hueLights, err := bridge.bridge.GetAllLights()
	if err != nil {
		return nil, err
	}

	for _, hueLight := range hueLights {
		lightID, err := strconv.Atoi(hueLight.Id)
		if err != nil {
			continue
		}
		if lightID != id {
			continue
		}

		var light HueLight
		light.hueLight = *hueLight
		attr, err := hueLight.GetLightAttributes()
		if err != nil {
			return nil, err
		}
		light.initialize(*attr)

		if !light.SupportsColorTemperature {
			return nil, fmt.Errorf("light %d (%s) does not support color temperature", id, light.Name)
		}
		return &light, nil
	}

	return nil, fmt.Errorf("no light with id %d found on bridge", id)
}

// printDevices logs all devices known to the bridge.
func (bridge *HueBridge) printDevices() error {
	hueLights, err := bridge.bridge.GetAllLights()
	if err != nil {
		return err
	}

	log.Printf("⌘ Devices found on current bridge:")
	log.Printf("⌘ | ID | Name                      | Type            |")
	for _, hueLight := range hueLights {
		attr, err := hueLight.GetLightAttributes()
		if err != nil {
			return err
		}
		log.Printf("⌘ | %2s | %-25s | %-15s |", hueLight.Id, attr.Name, attr.Type)
	}
	return nil
}

func (bridge *HueBridge) discover(ip string) error {
	if ip != "" {
		// we have a known IP address, validate it points to a reachable bridge
		bridge.BridgeIP = ip
		err := bridge.validateBridge()
		if err == nil {
			return nil
		}
	}
	log.Debugf("⌘ Starting bridge discovery")
	bridges, err := hue.DiscoverBridges(false)
	if err != nil {
		bridge.BridgeIP = ""
		return err
	}
	for _, candidate := range bridges {
		bridge.BridgeIP = candidate.IpAddr
		err := bridge.validateBridge()
		if err == nil {
			log.Printf("⌘ Found bridge at %s", bridge.BridgeIP)
			return nil
		}
	}
	bridge.BridgeIP = ""
	return errors.New("bridge discovery failed, please configure the bridge IP manually")
}

func (bridge *HueBridge) register() error {
	if bridge.BridgeIP == "" {
		return errors.New("registration not possible because no bridge IP is configured")
	}

	bridge.bridge = *hue.NewBridge(bridge.BridgeIP, "")
	log.Printf("⌘ Starting user registration.")
	log.Warningf("⌘ PLEASE PUSH THE BLUE BUTTON ON YOUR HUE BRIDGE")
	for {
		time.Sleep(5 * time.Second)

		// user creation fails until the button is pressed
		err := bridge.bridge.CreateUser(hueBridgeAppName)
		if err != nil {
			return err
		}

		if bridge.bridge.Username != "" {
			bridge.Username = bridge.bridge.Username
			log.Printf("⌘ User registration successful.")
			return nil
		}
	}
}

func (bridge *HueBridge) connect() error {
	if bridge.BridgeIP == "" {
		return errors.New("no bridge IP configured")
	}
	if bridge.Username == "" {
		return errors.New("no username on bridge configured")
	}
	bridge.bridge = *hue.NewBridge(bridge.BridgeIP, bridge.Username)

	// test the connection
	bridgeConfiguration, err := bridge.bridge.Configuration()
	if err != nil {
		return err
	}

	// enable HTTPS on bridges known to support it
	swversion, err := strconv.Atoi(bridgeConfiguration.SoftwareVersion)
	if err != nil {
		return err
	}
	if bridgeConfiguration.ModelId == "BSB002" && swversion >= 1802201122 {
		bridge.bridge.EnableHTTPS(true)
	}

	return nil
}

func (bridge *HueBridge) validateBridge() error {
	if bridge.BridgeIP == "" {
		return errors.New("no bridge configured, could not validate")
	}
	resp, err := http.Get("http://" + bridge.BridgeIP + "/description.xml")
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("could not read bridge description: %v", err)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read bridge description: %v", err)
	}
	if !strings.Contains(string(data), "Philips hue bridge") {
		return errors.New("bridge validation failed")
	}
	return nil
}
