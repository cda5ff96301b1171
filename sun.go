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
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/nathan-osman/go-sunrise"
)

// SolarEphemeris provides the suns schedule for a position on earth.
// Sunrise and Sunset report ok=false when the sun never crosses the requested
// elevation on the given day (polar day or night). That is a valid outcome,
// not an error.
type SolarEphemeris interface {
	Now() time.Time
	Sunrise(day time.Time, elevation float64) (time.Time, bool)
	Sunset(day time.Time, elevation float64) (time.Time, bool)
	Elevation() float64
}

// SolarTracker calculates sun events for a fixed geolocation.
// If no location is configured a geo IP lookup is attempted.
type SolarTracker struct {
	Latitude  float64
	Longitude float64
}

const geolocationURL = "https://freegeoip.app/json/"

// geolocation is the geo IP lookup response.
type geolocation struct {
	IP          string  `json:"ip"`
	CountryName string  `json:"country_name"`
	City        string  `json:"city"`
	TimeZone    string  `json:"time_zone"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// InitializeSolarTracker creates a tracker for the given coordinates,
// falling back to IP based geolocation when they are unset.
func InitializeSolarTracker(latitude float64, longitude float64) (*SolarTracker, error) {
	if latitude == 0 && longitude == 0 {
		log.Println("🌍 Location not configured. Detecting by IP")
		location, err := locationByIP()
		if err != nil {
			return nil, err
		}
		return &SolarTracker{Latitude: location.Latitude, Longitude: location.Longitude}, nil
	}
	log.Printf("🌍 Working with location %v, %v from configuration", latitude, longitude)
	return &SolarTracker{Latitude: latitude, Longitude: longitude}, nil
}

func locationByIP() (geolocation, error) {
	var data geolocation
	resp, err := http.Get(geolocationURL)
	if err != nil {
		return data, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return data, err
	}

	err = json.Unmarshal(body, &data)
	if err != nil {
		return data, err
	}

	log.Printf("🌍 Detected location: %s, %s (%v, %v)", data.City, data.CountryName, data.Latitude, data.Longitude)
	return data, nil
}

// Now returns the current time in UTC.
func (tracker *SolarTracker) Now() time.Time {
	return time.Now().UTC()
}

// Sunrise returns the moment the sun rises above the given elevation on the
// given day.
func (tracker *SolarTracker) Sunrise(day time.Time, elevation float64) (time.Time, bool) {
	rising, _ := sunrise.TimeOfElevation(tracker.Latitude, tracker.Longitude, elevation, day.Year(), day.Month(), day.Day())
	if rising.IsZero() {
		return time.Time{}, false
	}
	return rising, true
}

// Sunset returns the moment the sun sets below the given elevation on the
// given day.
func (tracker *SolarTracker) Sunset(day time.Time, elevation float64) (time.Time, bool) {
	_, setting := sunrise.TimeOfElevation(tracker.Latitude, tracker.Longitude, elevation, day.Year(), day.Month(), day.Day())
	if setting.IsZero() {
		return time.Time{}, false
	}
	return setting, true
}

// Elevation returns the current elevation of the sun in degrees above the
// horizon.
func (tracker *SolarTracker) Elevation() float64 {
	return sunrise.Elevation(tracker.Latitude, tracker.Longitude, time.Now())
}

// startOfDay truncates a timestamp to midnight UTC so sun events are
// calculated for the current day instead of the next ones.
func startOfDay(timestamp time.Time) time.Time {
	yr, mth, day := timestamp.UTC().Date()
	return time.Date(yr, mth, day, 0, 0, 0, 0, time.UTC)
}
