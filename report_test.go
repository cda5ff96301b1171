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
	"testing"
	"time"
)

func TestBuildReport(t *testing.T) {
	light := &fakeLight{status: LightStatus{On: true, Brightness: 100}, minMireds: 153, maxMireds: 500}
	sun := daylightSun(testSunrise.Add(6 * time.Hour))
	sun.elevation = 42.5
	controller, _ := newTestController(t, light, sun, RestoreDefaultOff)
	controller.enabled = true
	controller.previousLightOn = true
	controller.lastRequestedMireds = 153

	report := controller.buildReport()

	if !report.Enabled || !report.LightOn || !report.PreviousLightOn {
		t.Errorf("report state flags %+v; want all set", report)
	}
	if report.SunElevation != 42.5 {
		t.Errorf("report sun elevation %v; want 42.5", report.SunElevation)
	}
	if report.Sunrise == nil || !report.Sunrise.Equal(testSunrise) {
		t.Errorf("report sunrise %v; want %v", report.Sunrise, testSunrise)
	}
	if report.Sunset == nil || !report.Sunset.Equal(testSunset) {
		t.Errorf("report sunset %v; want %v", report.Sunset, testSunset)
	}
	if report.LastRequestedMireds != 153 {
		t.Errorf("report last requested %v; want 153", report.LastRequestedMireds)
	}

	if len(report.HourlyForecast) != 24 {
		t.Fatalf("forecast has %d samples; want 24", len(report.HourlyForecast))
	}
	for _, sample := range report.HourlyForecast {
		if sample.Mireds < report.MinMireds || sample.Mireds > report.MaxMireds {
			t.Errorf("forecast sample %v at %v outside range [%v, %v]",
				sample.Mireds, sample.Time, report.MinMireds, report.MaxMireds)
		}
	}
	// night samples sit at the warm bound
	if first := report.HourlyForecast[0]; first.Mireds != report.MaxMireds {
		t.Errorf("midnight sample %v; want max %v", first.Mireds, report.MaxMireds)
	}
}

func TestBuildReportWithoutSunEvents(t *testing.T) {
	light := &fakeLight{status: LightStatus{On: true}, minMireds: 153, maxMireds: 500}
	sun := &fakeSun{now: testSunrise}
	controller, _ := newTestController(t, light, sun, RestoreDefaultOff)

	report := controller.buildReport()

	if report.Sunrise != nil || report.Sunset != nil {
		t.Errorf("polar day/night report carries sun events: %+v", report)
	}
	if len(report.HourlyForecast) != 0 {
		t.Errorf("polar day/night report carries %d forecast samples; want none", len(report.HourlyForecast))
	}
}
