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
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// startWebInterface serves the diagnostic report and the enable switch over
// http. Requests are routed through the controllers event loop, so the
// single writer model holds.
func startWebInterface(configuration WebInterface, controller *Controller) {
	r := mux.NewRouter()
	r.HandleFunc("/status", statusHandler(controller)).Methods("GET")
	r.HandleFunc("/enable", enableHandler(controller, true)).Methods("PUT", "POST")
	r.HandleFunc("/disable", enableHandler(controller, false)).Methods("PUT", "POST")

	http.Handle("/", handlers.CompressHandler(r))
	log.Printf("Webinterface started on port %d", configuration.Port)
	log.Warning(http.ListenAndServe(fmt.Sprintf(":%d", configuration.Port), nil))
}

func statusHandler(controller *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("Serving status to %s", r.RemoteAddr)
		report := controller.Snapshot()

		data, err := json.Marshal(report)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}
}

func enableHandler(controller *Controller, enable bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("Switch request (%v) by %s", enable, r.RemoteAddr)
		if enable {
			controller.Enable()
		} else {
			controller.Disable()
		}
		w.Write([]byte("success"))
	}
}
