package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/a3tai/horizon-topics/internal/config"
)

func TestPrintVersion(t *testing.T) {
	oldVersion, oldBuildTime, oldGitCommit := version, buildTime, gitCommit
	t.Cleanup(func() {
		version, buildTime, gitCommit = oldVersion, oldBuildTime, oldGitCommit
	})

	version = "1.2.3"
	buildTime = "2024-03-12_10:30:00"
	gitCommit = "abc123"

	var buf bytes.Buffer
	printVersion(&buf)

	output := buf.String()
	for _, expected := range []string{
		"Horizon Topics MCP Server",
		"Version: 1.2.3",
		"Build Time: 2024-03-12_10:30:00",
		"Git Commit: abc123",
		"Built with: go",
	} {
		assert.Contains(t, output, expected)
	}
}

func TestSetupLogging(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
	})

	tests := []struct {
		name       string
		mode       string
		level      string
		wantOutput io.Writer
		wantFlags  int
	}{
		{name: "stdio discards by default", mode: config.ModeStdio, level: "info", wantOutput: io.Discard, wantFlags: log.LstdFlags},
		{name: "stdio debug logs to stderr", mode: config.ModeStdio, level: "debug", wantOutput: os.Stderr, wantFlags: log.LstdFlags},
		{name: "server mode adds file info", mode: config.ModeServer, level: "info", wantOutput: os.Stderr, wantFlags: log.LstdFlags | log.Lshortfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log.SetFlags(log.LstdFlags)
			setupLogging(&config.Config{Mode: tt.mode, LogLevel: tt.level})
			assert.Equal(t, tt.wantOutput, log.Writer())
			assert.Equal(t, tt.wantFlags, log.Flags())
		})
	}
}
