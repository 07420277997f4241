/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package logger is the process-wide logging sink shared by every component
// of the library. It wraps logrus with the Level tiers controlled by the
// LOG_LEVEL environment variable.
package logger

import "github.com/sirupsen/logrus"

// Logger is the minimal structured-logging surface used across the module.
// Fields attach request ids, peer identifiers and byte counts to entries
// without forcing every call site to format strings by hand.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a child Logger that always carries the given fields.
	With(fields ...Field) Logger

	// SetLevel changes the minimal level this logger will emit.
	SetLevel(lvl Level)
}

// Field is one piece of structured context attached to a log entry.
type Field struct {
	Key string
	Val any
}

// F builds a Field inline at the call site: logger.F("req_id", id).
func F(key string, val any) Field {
	return Field{Key: key, Val: val}
}

// New returns a Logger writing to stderr at the level named by LOG_LEVEL.
func New() Logger {
	l := logrus.New()
	l.SetLevel(LevelFromEnv().logrus())
	return &entry{l: l, base: logrus.Fields{}}
}

// Discard returns a Logger that drops every entry; used by components
// constructed without an explicit logger (tests, minimal examples).
func Discard() Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return &entry{l: l, base: logrus.Fields{}}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
