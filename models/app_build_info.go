// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// AppBuildInfo carries immutable build-time metadata embedded into binaries
// through linker flags. The server exposes it on /api/version and the client
// shows it in the welcome screen overlay.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo] from the provided build metadata.
// Empty values are reported as "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNA(buildVersion),
		buildDate:    orNA(buildDate),
		buildCommit:  orNA(buildCommit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return a.buildVersion }

func (a AppBuildInfo) BuildDate() string { return a.buildDate }

func (a AppBuildInfo) BuildCommit() string { return a.buildCommit }

// MarshalJSON renders the build info as a flat JSON object.
func (a AppBuildInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Version string `json:"version"`
		Date    string `json:"date"`
		Commit  string `json:"commit"`
	}{a.buildVersion, a.buildDate, a.buildCommit})
}

// UnmarshalJSON reads the flat object written by MarshalJSON.
func (a *AppBuildInfo) UnmarshalJSON(data []byte) error {
	var raw struct {
		Version string `json:"version"`
		Date    string `json:"date"`
		Commit  string `json:"commit"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = NewAppBuildInfo(raw.Version, raw.Date, raw.Commit)
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
