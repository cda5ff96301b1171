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
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver"
	log "github.com/sirupsen/logrus"
)

const releaseURL = "https://api.github.com/repos/mdvorak/adaptive-lighting/releases/latest"
const updateCheckInterval = 12 * time.Hour

// CheckForUpdate periodically compares the running version against the
// latest published release and logs when a newer one is available. The
// binary is never replaced; the daemon is expected to run under a
// supervisor that handles upgrades.
func CheckForUpdate(currentVersion string) {
	// development builds carry no comparable version
	version, err := semver.NewVersion(currentVersion)
	if err != nil {
		return
	}

	for {
		log.Debugf("Looking for updates...")
		latest, err := latestReleaseVersion(releaseURL)
		if err != nil {
			log.Debugf("Error looking for update: %v", err)
		} else if latest.GreaterThan(version) {
			log.Printf("Version %s is available (running %s)", latest, version)
		}
		time.Sleep(updateCheckInterval)
	}
}

func latestReleaseVersion(url string) (*semver.Version, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var release struct {
		TagName string `json:"tag_name"`
		Name    string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, err
	}

	name := release.TagName
	if name == "" {
		name = release.Name
	}
	return semver.NewVersion(strings.TrimPrefix(name, "v"))
}
