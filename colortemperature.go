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
	"math"
	"time"
)

// Calibration points of the easing sigmoid. The curve is fixed so that at
// solar noon the output fraction is sigmoidNoonFraction (saturating at the
// cool bound) and at sunrise/sunset it is sigmoidEdgeFraction (saturating at
// the warm bound). Steepness follows from these two points alone, independent
// of the configured curve speed.
const sigmoidNoonFraction = 0.00001
const sigmoidEdgeFraction = 0.999

var sigmoidGain = math.Atanh(2*sigmoidEdgeFraction-1) - math.Atanh(2*sigmoidNoonFraction-1)
var sigmoidShift = -math.Atanh(2*sigmoidNoonFraction-1) / sigmoidGain

// calculateColorTemperature maps a point in time between todays sunrise and
// sunset to a color temperature in mireds. Outside of daylight it returns
// maxMireds (the warm night value). The curve is symmetric around solar noon,
// where it reaches minMireds. Speed controls how sharply the curve flattens
// near noon compared to the edges.
//
// The result is rounded to a tenth of a mired so repeated evaluations with
// nearly identical inputs produce identical values.
func calculateColorTemperature(now time.Time, sunrise time.Time, sunset time.Time, minMireds float64, maxMireds float64, speed float64) float64 {
	if now.Before(sunrise) || now.After(sunset) {
		return maxMireds
	}

	position := now.Sub(sunrise).Seconds() / sunset.Sub(sunrise).Seconds()
	// re-expand distance from solar noon to [0, 1]
	distance := math.Pow(math.Abs(1-2*position), speed)
	mireds := minMireds + (maxMireds-minMireds)*0.5*(math.Tanh(sigmoidGain*(distance-sigmoidShift))+1)

	return math.Round(mireds*10) / 10
}
