// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-zk-vault/internal/app"
	"github.com/MKhiriev/go-zk-vault/internal/utils"
)

// CheckHTTPMethod returns the router's MethodNotAllowed handler. A known path
// requested with an unsupported method answers 404 rather than chi's default
// 405, so probing with methods reveals nothing about which routes exist.
// The Allow header chi prepares is removed for the same reason.
//
//	router.MethodNotAllowed(CheckHTTPMethod())
func CheckHTTPMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Del("Allow")
		utils.WriteError(w, app.MsgNotFound, http.StatusNotFound)
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, app.MsgNotFound, http.StatusNotFound)
}
