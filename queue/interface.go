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

// Package queue implements a bounded FIFO of received-message envelopes
// that consumers can wait on, matching against a signal selector and an
// optional expected sender. Readiness is additionally exposed through a
// pollable event descriptor kept in lockstep with the queue's contents.
package queue

import (
	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/selector"
)

// Queue is a bounded FIFO of Envelopes.
type Queue interface {
	// Add appends env if the queue has spare capacity. Returns 0 on
	// success, -1 if full or stopped.
	Add(env Envelope) int

	// Get waits for the oldest envelope matching (sel, from).
	//
	// timeoutMs == 0 is an immediate, non-blocking scan.
	// timeoutMs == -1 waits indefinitely until a match arrives or Stop
	// is called.
	// timeoutMs > 0 waits up to that many milliseconds.
	//
	// Returns the envelope and true on match; zero value and false on
	// timeout or stop.
	Get(timeoutMs int, sel selector.Set, from *identifier.Identifier) (Envelope, bool)

	// Clear empties the queue and drains its event descriptor, without
	// affecting whether the queue accepts further Adds.
	Clear()

	// Stop marks the queue terminal: it empties immediately, drains its
	// event descriptor, and wakes every blocked Get. Idempotent.
	Stop()

	// Size returns the current envelope count.
	Size() int

	// FD returns the descriptor that becomes readable, once per queued
	// envelope, as envelopes are added.
	FD() int

	// Close releases the queue's event descriptor. Not safe to call
	// concurrently with Add/Get.
	Close() error
}
