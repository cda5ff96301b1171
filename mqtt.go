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

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

// startMQTT connects the enable switch to an MQTT broker: the switch state
// is published retained, and enable/disable commands are accepted on the
// command topic. This is the surface home automation hosts integrate with.
func startMQTT(configuration MQTTConfiguration, controller *Controller, swtch *PersistentSwitch) error {
	stateTopic := configuration.TopicPrefix + "/switch/state"
	commandTopic := configuration.TopicPrefix + "/switch/command"

	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(configuration.Broker)
	opts.SetClientID(fmt.Sprintf("adaptive-lighting-%d", time.Now().Unix()))
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)

	opts.OnConnectionLost = func(c pahomqtt.Client, err error) {
		log.Warningf("MQTT connection lost: %v", err)
	}
	opts.OnConnect = func(c pahomqtt.Client) {
		log.Printf("Connected to MQTT broker %s", configuration.Broker)
		c.Subscribe(commandTopic, 0, func(_ pahomqtt.Client, message pahomqtt.Message) {
			payload := string(message.Payload())
			log.Debugf("MQTT command received: %s", payload)
			switch payload {
			case "ON":
				controller.Enable()
			case "OFF":
				controller.Disable()
			default:
				log.Warningf("Ignoring unknown MQTT command: %s", payload)
			}
		})
		c.Publish(stateTopic, 0, true, switchPayload(swtch.State()))
	}

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if token.WaitTimeout(10*time.Second) && token.Error() != nil {
		return fmt.Errorf("could not connect to MQTT broker: %w", token.Error())
	}

	// republish on every switch transition
	swtch.Subscribe(func(state bool) {
		client.Publish(stateTopic, 0, true, switchPayload(state))
	})
	return nil
}

func switchPayload(state bool) string {
	if state {
		return "ON"
	}
	return "OFF"
}
