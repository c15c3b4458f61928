// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-zk-vault/models"
)

func renderBuildInfoWindow(client, server models.AppBuildInfo, serverErr string) string {
	var b strings.Builder

	b.WriteString("Application: go-zk-vault\n\n")
	b.WriteString("Client\n")
	writeBuildInfo(&b, client)

	b.WriteString("\nServer\n")
	if serverErr != "" {
		b.WriteString("  ")
		b.WriteString(serverErr)
	} else {
		writeBuildInfo(&b, server)
	}

	return renderPage("ABOUT", strings.TrimRight(b.String(), "\n"), "esc: back")
}

func writeBuildInfo(b *strings.Builder, info models.AppBuildInfo) {
	b.WriteString("  Version: ")
	b.WriteString(valueOrNA(info.BuildVersion()))
	b.WriteString("\n  Date:    ")
	b.WriteString(valueOrNA(info.BuildDate()))
	b.WriteString("\n  Commit:  ")
	b.WriteString(valueOrNA(info.BuildCommit()))
	b.WriteString("\n")
}

func valueOrNA(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "N/A"
	}
	return v
}
