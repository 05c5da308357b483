package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/iudanet/portalsync/internal/client/sync"
)

// Exit codes of the portal CLI
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // операция не выполнена
	ExitCommandError = 2 // неверные аргументы или конфигурация
	ExitAuthRequired = 3 // нужен повторный вход
)

// Notices shown next to results that did not reach the server
const (
	NoticeDraftSaved   = "draft saved locally"
	NoticeSignIn       = "sign in to sync"
	NoticeOffline      = "offline, showing local copy"
	NoticeStudiosLocal = "studio listings unavailable on server, using local copy"
)

// ExitError carries the exit code of a failed command.
// Printed is set once the error has been written through the formatter.
type ExitError struct {
	Err     error
	Code    int
	Printed bool
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// GetExitCode extracts the exit code from an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// draftKeptError сервер не принял правку, но она осталась в черновике
type draftKeptError struct {
	err error
}

func (e *draftKeptError) Error() string {
	return NoticeDraftSaved + ", sync failed: " + e.err.Error()
}

func (e *draftKeptError) Unwrap() error {
	return e.err
}

// describe переводит ошибку в сообщение для пользователя
func describe(err error) string {
	if errors.Is(err, sync.ErrAuthRequired) {
		var kept *draftKeptError
		if errors.As(err, &kept) {
			return NoticeSignIn + " (" + NoticeDraftSaved + ")"
		}
		return NoticeSignIn
	}
	return err.Error()
}

func exitCode(err error) int {
	if errors.Is(err, sync.ErrAuthRequired) {
		return ExitAuthRequired
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Writer    io.Writer
	ErrWriter io.Writer // diagnostics, keeps JSON on Writer clean
	Format    string
}

// CLIResponse is the JSON envelope of every command result.
type CLIResponse struct {
	Status  string    `json:"status"`
	Data    any       `json:"data,omitempty"`
	Notices []string  `json:"notices,omitempty"`
	Error   *CLIError `json:"error,omitempty"`
}

// CLIError is the error part of the JSON envelope.
type CLIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Success prints data. text renders the human readable form.
func (f *OutputFormatter) Success(data any, notices []string, text func(w io.Writer)) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: data, Notices: notices})
	}

	if text != nil {
		text(f.Writer)
	}
	for _, n := range notices {
		fmt.Fprintf(f.Writer, "note: %s\n", n)
	}
	return nil
}

// Error prints a failed command result
func (f *OutputFormatter) Error(code int, message string) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "error", Error: &CLIError{Code: code, Message: message}})
	}

	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	_, err := fmt.Fprintf(w, "Error: %s\n", message)
	return err
}

// Event prints one line of a streaming command without the envelope
func (f *OutputFormatter) Event(v any, text string) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(f.Writer, text)
	return err
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetEscapeHTML(false)
	return enc.Encode(resp)
}
