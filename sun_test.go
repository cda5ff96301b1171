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

func TestSunEventsMidLatitude(t *testing.T) {
	// Berlin, summer solstice
	tracker := &SolarTracker{Latitude: 52.52, Longitude: 13.405}
	day := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)

	sunriseAt, ok := tracker.Sunrise(day, defaultSunElevation)
	if !ok {
		t.Fatal("no sunrise found for Berlin in June")
	}
	sunsetAt, ok := tracker.Sunset(day, defaultSunElevation)
	if !ok {
		t.Fatal("no sunset found for Berlin in June")
	}
	if !sunriseAt.Before(sunsetAt) {
		t.Errorf("sunrise %v is not before sunset %v", sunriseAt, sunsetAt)
	}
}

func TestSunEventsPolarNight(t *testing.T) {
	// Longyearbyen in January, the sun stays below the horizon all day
	tracker := &SolarTracker{Latitude: 78.22, Longitude: 15.64}
	day := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)

	if _, ok := tracker.Sunrise(day, defaultSunElevation); ok {
		t.Error("found a sunrise during polar night")
	}
	if _, ok := tracker.Sunset(day, defaultSunElevation); ok {
		t.Error("found a sunset during polar night")
	}
}

func TestElevationThresholdShiftsEvents(t *testing.T) {
	// a higher threshold means a later "sunrise" and an earlier "sunset"
	tracker := &SolarTracker{Latitude: 52.52, Longitude: 13.405}
	day := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)

	low, _ := tracker.Sunrise(day, -0.833)
	high, ok := tracker.Sunrise(day, 6.0)
	if !ok {
		t.Fatal("no sunrise found at 6 degrees elevation")
	}
	if !low.Before(high) {
		t.Errorf("sunrise at -0.833 (%v) should come before sunrise at 6.0 (%v)", low, high)
	}
}

func TestStartOfDay(t *testing.T) {
	now := time.Date(2024, time.June, 21, 13, 37, 42, 12345, time.UTC)
	day := startOfDay(now)

	if day.Hour() != 0 || day.Minute() != 0 || day.Second() != 0 || day.Nanosecond() != 0 {
		t.Errorf("startOfDay(%v) = %v; not truncated to midnight", now, day)
	}
	if day.Year() != 2024 || day.Month() != time.June || day.Day() != 21 {
		t.Errorf("startOfDay(%v) = %v; wrong day", now, day)
	}
}
