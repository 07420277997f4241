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

import "github.com/sirupsen/logrus"

type entry struct {
	l    *logrus.Logger
	base logrus.Fields
}

func (e *entry) fields(extra []Field) logrus.Fields {
	if len(extra) == 0 {
		return e.base
	}

	f := make(logrus.Fields, len(e.base)+len(extra))
	for k, v := range e.base {
		f[k] = v
	}
	for _, fl := range extra {
		f[fl.Key] = fl.Val
	}
	return f
}

func (e *entry) Debug(msg string, fields ...Field) {
	e.l.WithFields(e.fields(fields)).Debug(msg)
}

func (e *entry) Info(msg string, fields ...Field) {
	e.l.WithFields(e.fields(fields)).Info(msg)
}

func (e *entry) Warn(msg string, fields ...Field) {
	e.l.WithFields(e.fields(fields)).Warn(msg)
}

func (e *entry) Error(msg string, fields ...Field) {
	e.l.WithFields(e.fields(fields)).Error(msg)
}

func (e *entry) With(fields ...Field) Logger {
	return &entry{l: e.l, base: e.fields(fields)}
}

func (e *entry) SetLevel(lvl Level) {
	e.l.SetLevel(lvl.logrus())
}
