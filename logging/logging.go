/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package logging

import (
	stdlog "log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Log source tags used in structured logger contexts.
const (
	SourceApp        = "app"
	SourceWeb        = "web"
	SourceWebRequest = "web_request"
	SourceWizard     = "wizard"
)

// Environment variables read once by Init.
const (
	LevelEnvVar  = "LABWISE_LOG_LEVEL"
	FormatEnvVar = "LABWISE_LOG_FORMAT"
)

var (
	initOnce   sync.Once
	baseLogger *log.Logger
)

// Init configures the base logger and routes stdlib log output through it.
// Loggers obtained before Init still work; they call it themselves.
func Init() {
	initOnce.Do(func() {
		baseLogger = log.NewWithOptions(os.Stdout, options(os.Getenv(LevelEnvVar), os.Getenv(FormatEnvVar)))

		std := baseLogger.With("source", SourceApp).StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})

		stdlog.SetFlags(0)
		stdlog.SetOutput(std.Writer())
	})
}

func options(level, format string) log.Options {
	return log.Options{
		TimeFunction:    log.NowUTC,
		TimeFormat:      time.RFC3339Nano,
		Level:           levelFromEnv(level),
		ReportTimestamp: true,
		Formatter:       formatterFromEnv(format),
	}
}

func levelFromEnv(value string) log.Level {
	if value == "" {
		return log.DebugLevel
	}

	parsed, err := log.ParseLevel(value)
	if err != nil {
		return log.DebugLevel
	}

	return parsed
}

// formatterFromEnv defaults to logfmt so lines stay grep-friendly.
func formatterFromEnv(value string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "json":
		return log.JSONFormatter
	case "text":
		return log.TextFormatter
	default:
		return log.LogfmtFormatter
	}
}

// Logger returns a logger tagged with the provided source.
func Logger(source string) *log.Logger {
	Init()
	return baseLogger.With("source", source)
}

// StdLogger returns a stdlib logger for APIs such as http.Server.ErrorLog.
func StdLogger(source string) *stdlog.Logger {
	return Logger(source).StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})
}

// ForWizard tags l with a wizard ID.
func ForWizard(l *log.Logger, id string) *log.Logger {
	return l.With("wizard_id", id)
}
