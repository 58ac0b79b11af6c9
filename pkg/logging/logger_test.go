package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelInfo {
		t.Errorf("Expected default level to be Info, got %s", cfg.Level)
	}

	if cfg.Pretty != false {
		t.Error("Expected default pretty to be false")
	}
}

func TestSetup(t *testing.T) {
	tests := []struct {
		name  string
		level LogLevel
		log   func(zerolog.Logger, string)
	}{
		{"info_level", LevelInfo, func(l zerolog.Logger, m string) { l.Info().Msg(m) }},
		{"debug_level", LevelDebug, func(l zerolog.Logger, m string) { l.Debug().Msg(m) }},
		{"warn_level", LevelWarn, func(l zerolog.Logger, m string) { l.Warn().Msg(m) }},
		{"error_level", LevelError, func(l zerolog.Logger, m string) { l.Error().Msg(m) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := Setup(Config{Level: tt.level, Output: buf})

			tt.log(logger, "test "+tt.name)

			if !strings.Contains(buf.String(), "test "+tt.name) {
				t.Errorf("Expected output to contain %q, got %q", "test "+tt.name, buf.String())
			}
		})
	}
}

func TestSetup_RunID(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelInfo, Output: buf, RunID: "run-123"})

	logger := NewLogger("paginator")
	logger.Info().Msg("page exported")

	output := buf.String()
	if !strings.Contains(output, `"run_id":"run-123"`) {
		t.Errorf("Expected run_id in output, got %q", output)
	}
	if !strings.Contains(output, `"component":"paginator"`) {
		t.Errorf("Expected component in output, got %q", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    LogLevel
		expected zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelInfo, zerolog.InfoLevel},
		{LevelWarn, zerolog.WarnLevel},
		{"WARNING", zerolog.WarnLevel},
		{LevelError, zerolog.ErrorLevel},
		{"invalid", zerolog.InfoLevel}, // Should default to Info
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLogLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{
		Level:  LevelWarn,
		Output: buf,
	})

	logger := NewLogger("test")

	logger.Debug().Msg("debug message")
	logger.Info().Msg("info message")
	logger.Warn().Msg("warn message")

	output := buf.String()

	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Error("Messages below Warn should be filtered out")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("Warn message should be included at Warn level")
	}
}

func TestConsoleNotifier(t *testing.T) {
	color.NoColor = true
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		color.NoColor = false
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})

	out := &bytes.Buffer{}
	logBuf := &bytes.Buffer{}
	logger := zerolog.New(logBuf).Level(zerolog.DebugLevel)

	n := NewConsoleNotifier(out, logger)
	n.Notify("Fetching page 0 of 35")
	n.Notify("Sleeping for 1 second to avoid overloading the API")
	n.Notify("Projects written to projects.csv")
	n.Notify("something else")

	want := "Fetching page 0 of 35\n" +
		"Sleeping for 1 second to avoid overloading the API\n" +
		"Projects written to projects.csv\n" +
		"something else\n"
	if out.String() != want {
		t.Errorf("console output =\n%q\nwant\n%q", out.String(), want)
	}

	if !strings.Contains(logBuf.String(), "Fetching page 0 of 35") {
		t.Errorf("progress not mirrored to log: %q", logBuf.String())
	}
}
