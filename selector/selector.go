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

// Package selector implements the message/sender match predicate (§4.5):
// a received message matches a consumer's request if its request id is in
// the signal selector set (empty set = wildcard) AND its sender equals the
// consumer's expected sender, if any (absent expected sender = wildcard).
package selector

import "github.com/sabouaram/linxipc/identifier"

// Set is a signal selector: a set of request ids a consumer will accept.
// A nil or empty Set matches any request id.
type Set []uint32

// Matches reports whether reqID satisfies s.
func (s Set) Matches(reqID uint32) bool {
	if len(s) == 0 {
		return true
	}
	for _, id := range s {
		if id == reqID {
			return true
		}
	}
	return false
}

// Match implements the full predicate: sel is empty or reqID is in sel,
// AND exp is nil or from equals *exp.
func Match(reqID uint32, from identifier.Identifier, sel Set, exp *identifier.Identifier) bool {
	if !sel.Matches(reqID) {
		return false
	}
	return exp == nil || from.Equal(*exp)
}
