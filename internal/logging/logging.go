// Package logging sets up the console logger shared by the commands.
package logging

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// New returns a text console logger with the given level ("debug", "info", "warn", "error").
func New(level string) arbor.ILogger {
	if level == "" {
		level = DefaultLevel
	}

	return arbor.NewLogger().WithConsoleWriter(models.WriterConfiguration{
		Type:             models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		OutputType:       models.OutputFormatLogfmt,
		DisableTimestamp: false,
	}).WithLevelFromString(level)
}
