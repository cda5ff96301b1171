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
	"time"

	log "github.com/sirupsen/logrus"
)

// ReportSample is one predicted color temperature value.
type ReportSample struct {
	Time   time.Time `json:"time"`
	Mireds float64   `json:"mireds"`
}

// Report is a diagnostic snapshot of the controller. It is fully derived
// from controller and ephemeris state and served by the web interface.
type Report struct {
	Enabled             bool           `json:"enabled"`
	SunriseElevation    float64        `json:"sunriseElevation"`
	SunsetElevation     float64        `json:"sunsetElevation"`
	MinMireds           float64        `json:"minMireds"`
	MaxMireds           float64        `json:"maxMireds"`
	TransitionLength    time.Duration  `json:"transitionLengthMs"`
	CurveSpeed          float64        `json:"curveSpeed"`
	Today               time.Time      `json:"today"`
	Sunrise             *time.Time     `json:"sunrise,omitempty"`
	Sunset              *time.Time     `json:"sunset,omitempty"`
	SunElevation        float64        `json:"sunElevation"`
	HourlyForecast      []ReportSample `json:"hourlyForecast,omitempty"`
	LastRequestedMireds float64        `json:"lastRequestedMireds"`
	LightOn             bool           `json:"lightOn"`
	PreviousLightOn     bool           `json:"previousLightOn"`
}

// buildReport must run on the controller goroutine.
func (c *Controller) buildReport() Report {
	report := Report{
		Enabled:             c.enabled,
		SunriseElevation:    c.sunriseElevation,
		SunsetElevation:     c.sunsetElevation,
		MinMireds:           c.minMireds,
		MaxMireds:           c.maxMireds,
		TransitionLength:    c.transition / time.Millisecond,
		CurveSpeed:          c.curveSpeed,
		LastRequestedMireds: c.lastRequestedMireds,
		PreviousLightOn:     c.previousLightOn,
	}

	if c.light != nil {
		report.LightOn = c.light.Status().On
	}
	if c.sun == nil {
		return report
	}

	now := c.sun.Now()
	report.Today = startOfDay(now)
	report.SunElevation = c.sun.Elevation()

	sunriseAt, sunriseOk := c.sun.Sunrise(report.Today, c.sunriseElevation)
	sunsetAt, sunsetOk := c.sun.Sunset(report.Today, c.sunsetElevation)
	if sunriseOk {
		report.Sunrise = &sunriseAt
	}
	if sunsetOk {
		report.Sunset = &sunsetAt
	}
	if !sunriseOk || !sunsetOk {
		return report
	}

	report.HourlyForecast = make([]ReportSample, 0, 24)
	for hour := 0; hour < 24; hour++ {
		sampleTime := report.Today.Add(time.Duration(hour) * time.Hour)
		report.HourlyForecast = append(report.HourlyForecast, ReportSample{
			Time:   sampleTime,
			Mireds: calculateColorTemperature(sampleTime, sunriseAt, sunsetAt, c.minMireds, c.maxMireds, c.curveSpeed),
		})
	}
	return report
}

// Log writes the report in a human readable form, one value per line.
func (report Report) Log() {
	log.Infof("☀ Today: %v", report.Today.Format("2006-01-02"))
	if report.Sunrise == nil || report.Sunset == nil {
		log.Info("☀ No sunrise or sunset for today")
	} else {
		log.Infof("☀ Sunrise: %v", report.Sunrise.Format(time.RFC3339))
		log.Infof("☀ Sunset: %v", report.Sunset.Format(time.RFC3339))
	}
	log.Infof("☀ Sun elevation: %.3f", report.SunElevation)
	log.Infof("☀ Sunrise elevation: %.3f, sunset elevation: %.3f", report.SunriseElevation, report.SunsetElevation)
	log.Infof("☀ Color temperature range: %.3f - %.3f", report.MinMireds, report.MaxMireds)
	log.Infof("☀ Transition length: %v ms", int64(report.TransitionLength))
	for _, sample := range report.HourlyForecast {
		log.Infof("☀ Time: %v, color temperature: %.3f", sample.Time.Format("15:04"), sample.Mireds)
	}
	log.Infof("☀ Last requested color temperature: %.3f", report.LastRequestedMireds)
	log.Infof("☀ State: %v", enabledString(report.Enabled))
	log.Infof("☀ Previous light state: %v", onOffString(report.PreviousLightOn))
	log.Infof("☀ Current light state: %v", onOffString(report.LightOn))
}

func enabledString(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func onOffString(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
