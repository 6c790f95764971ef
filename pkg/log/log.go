// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/restage/pkg/status"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 45 // Base width for the file path
	outcomeWidth = 10 // Width for outcome text
)

// 🎯 Entry is one file line of a run
type Entry struct {
	Path    string         // Original or source path
	Outcome status.Outcome // What happened to it
}

// 📦 Run describes the operation whose entries are being printed
type Run struct {
	Operation string // Operation name
	Target    string // Directory the run works on
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	current *Run
	entries []Entry
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatEntry formats a file entry for display
func (l *Logger) formatEntry(e Entry) string {
	var symbol rune
	var symbolColor color.Attribute
	switch e.Outcome {
	case status.OutcomeStaged, status.OutcomeRestored, status.OutcomeMoved:
		symbol = '✓'
		symbolColor = color.FgGreen
	case status.OutcomeExists:
		symbol = '•'
		symbolColor = color.FgCyan
	case status.OutcomePending:
		symbol = '-'
		symbolColor = color.FgYellow
	case status.OutcomeRemoved:
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '?'
		symbolColor = color.Faint
	}

	return fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, e.Path),
		fmt.Sprintf("%-*s", outcomeWidth, strings.ToUpper(e.Outcome.String())))
}

// 📝 LogEntry prints one file line
func (l *Logger) LogEntry(ctx context.Context, e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, e)

	fmt.Fprintln(l.console, l.formatEntry(e))

	l.zlog.Debug().
		Str("file", e.Path).
		Str("outcome", e.Outcome.String()).
		Msg("file processed")
}

// Report prints every progress event as a file line.
func (l *Logger) Report(ctx context.Context, p status.Progress) {
	l.LogEntry(ctx, Entry{Path: p.Path, Outcome: p.Outcome})
}

// 📝 StartRun starts printing a new run
func (l *Logger) StartRun(ctx context.Context, run Run) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = &run
	l.entries = nil

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(run.Operation),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgCyan).Sprint(run.Target))

	l.zlog.Info().
		Str("operation", run.Operation).
		Str("target", run.Target).
		Msg("starting run")
}

// 📝 EndRun prints a per outcome summary of the current run
func (l *Logger) EndRun(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return
	}

	counts := map[status.Outcome]int{}
	var order []status.Outcome
	for _, e := range l.entries {
		if counts[e.Outcome] == 0 {
			order = append(order, e.Outcome)
		}
		counts[e.Outcome]++
	}

	parts := make([]string, 0, len(order))
	for _, o := range order {
		parts = append(parts, fmt.Sprintf("%s %d", o, counts[o]))
	}
	if len(parts) > 0 {
		fmt.Fprintf(l.console, "%s\n", color.New(color.Faint).Sprint(strings.Join(parts, " • ")))
	}

	l.zlog.Info().
		Str("operation", l.current.Operation).
		Int("files", len(l.entries)).
		Msg("run complete")

	l.current = nil
	l.entries = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("restage")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
