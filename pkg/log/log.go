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
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	ruleIndent  = 4  // spaces to indent rule entries
	indexWidth  = 5  // width for the rule index
	needleWidth = 40 // width for the quoted needle
	statusWidth = 15 // width for status text
)

// 🎯 RuleOperation is the outcome of one replacement rule
type RuleOperation struct {
	Index   int    // Position in the rule sequence
	Needle  string // Literal text searched for
	Count   int    // Occurrences replaced
	Skipped bool   // Rule did not apply to this path
}

// 📦 PatchOperation describes the patch being applied
type PatchOperation struct {
	Name  string // Definition name
	Path  string // Target file
	Rules int    // Number of rules in the definition
}

// 🎯 Logger writes human output to the console and mirrors it to zerolog
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *PatchOperation
	rules     []RuleOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
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

// quoteNeedle renders a needle on one line, cut to width
func quoteNeedle(needle string, width int) string {
	q := strconv.Quote(needle)
	r := []rune(q)
	if len(r) <= width {
		return q
	}
	return string(r[:width-1]) + "…"
}

// 📝 formatRuleOperation formats a rule outcome for display
func (l *Logger) formatRuleOperation(op RuleOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	var status string
	switch {
	case op.Skipped:
		symbol = '•'
		symbolColor = color.FgCyan
		status = "skipped"
	case op.Count > 0:
		symbol = '✓'
		symbolColor = color.FgGreen
		status = fmt.Sprintf("%d replaced", op.Count)
	default:
		symbol = '-'
		symbolColor = color.FgYellow
		status = "no match"
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", ruleIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", indexWidth, fmt.Sprintf("#%d", op.Index)),
		fmt.Sprintf("%-*s", needleWidth, quoteNeedle(op.Needle, needleWidth)),
		color.New(symbolColor).Sprint(fmt.Sprintf("%-*s", statusWidth, status)))
}

// 📝 LogRuleOperation logs the outcome of a single rule
func (l *Logger) LogRuleOperation(ctx context.Context, op RuleOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rules = append(l.rules, op)

	fmt.Fprintln(l.console, l.formatRuleOperation(op))

	l.zlog.Info().
		Int("rule", op.Index).
		Str("needle", op.Needle).
		Int("count", op.Count).
		Bool("skipped", op.Skipped).
		Msg("rule operation")
}

// 📝 StartPatchOperation starts a new patch operation
func (l *Logger) StartPatchOperation(ctx context.Context, op PatchOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.rules = nil

	fmt.Fprintf(l.console, "[patching %s]\n",
		color.New(color.FgCyan).Sprint(op.Path))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Name),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d rules", op.Rules))

	l.zlog.Info().
		Str("name", op.Name).
		Str("path", op.Path).
		Int("rules", op.Rules).
		Msg("starting patch operation")
}

// 📝 EndPatchOperation ends the current patch operation
func (l *Logger) EndPatchOperation(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	total := 0
	for _, r := range l.rules {
		total += r.Count
	}

	l.zlog.Info().
		Str("path", l.currentOp.Path).
		Int("rules", len(l.rules)).
		Int("replacements", total).
		Msg("patch operation complete")

	l.currentOp = nil
	l.rules = nil
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("patchrc")
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

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
