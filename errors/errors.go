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

package errors

import "fmt"

// codedError pairs a Code with the detail that produced it.
type codedError struct {
	code   Code
	detail string
}

// New builds an error carrying code, formatting detail the same way fmt.Errorf does.
func New(code Code, format string, args ...any) error {
	return &codedError{code: code, detail: fmt.Sprintf(format, args...)}
}

func (e *codedError) Error() string {
	if e.detail == "" {
		return e.code.String()
	}
	return e.code.String() + ": " + e.detail
}

// Is reports whether err (or one it wraps) carries code.
func Is(err error, code Code) bool {
	var c *codedError
	for err != nil {
		if v, ok := err.(*codedError); ok {
			c = v
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return c != nil && c.code == code
}
