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

package logger

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Level mirrors the four verbosity tiers exposed by LOG_LEVEL.
type Level uint8

const (
	// ErrorLevel logs only conditions the caller cannot continue past.
	ErrorLevel Level = iota + 1
	// WarnLevel additionally logs conditions the caller can route around.
	WarnLevel
	// InfoLevel additionally logs lifecycle and state-transition events.
	InfoLevel
	// DebugLevel additionally logs per-datagram tracing.
	DebugLevel
)

func (l Level) logrus() logrus.Level {
	switch l {
	case ErrorLevel:
		return logrus.ErrorLevel
	case WarnLevel:
		return logrus.WarnLevel
	case DebugLevel:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// LevelFromEnv reads LOG_LEVEL (values "1".."4") and returns the matching
// Level, defaulting to InfoLevel when unset or out of range.
func LevelFromEnv() Level {
	v, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		return InfoLevel
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < int(ErrorLevel) || n > int(DebugLevel) {
		return InfoLevel
	}

	return Level(n)
}
