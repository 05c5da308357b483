// Package logger строит *slog.Logger для клиента и сервера.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

// ParseLevel разбирает уровень логирования (debug, info, warn, error)
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// NewCLI создает логгер CLI поверх charmbracelet/log.
// format: text, logfmt или json.
func NewCLI(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var formatter log.Formatter
	switch strings.ToLower(format) {
	case "", "text":
		formatter = log.TextFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	case "json":
		formatter = log.JSONFormatter
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           log.Level(lvl),
		Formatter:       formatter,
		ReportTimestamp: lvl <= slog.LevelDebug,
		Prefix:          "portal",
	})
	return slog.New(handler), nil
}

// NewServer создает JSON (или text) логгер сервера
func NewServer(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
