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

// Package dispatcher is a thin callback layer over a server: register one
// handler per request id, then pump one envelope at a time through
// whichever handler matches.
package dispatcher

import (
	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/message"
	"github.com/sabouaram/linxipc/queue"
	"github.com/sabouaram/linxipc/selector"
)

// Callback handles one delivered envelope. userData is whatever was
// passed to Register for this request id, returned verbatim so a single
// function can serve several ids.
type Callback func(env queue.Envelope, userData any) int

// Dispatcher wraps a server.Server, registering request-id handlers and
// pumping one envelope per HandleMessage call.
type Dispatcher interface {
	// Register binds cb to reqID, overwriting any prior binding. Returns
	// the Dispatcher itself for chaining.
	Register(reqID uint32, cb Callback, userData any) Dispatcher

	// HandleMessage pulls one envelope (any request id, any sender) and
	// dispatches it to its registered callback. Returns the callback's
	// result, 0 if no callback is registered for that request id (after
	// logging), or -1 if no envelope arrived within timeoutMs.
	HandleMessage(timeoutMs int) int

	Start() bool
	Stop()
	GetPollFD() int
	Send(m message.Message, to identifier.Identifier) int
	Receive(timeoutMs int, sel selector.Set, from *identifier.Identifier) (queue.Envelope, bool)
}
