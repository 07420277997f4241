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

package queue

import (
	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/message"
)

// Responder is the non-owning back-reference an Envelope holds to the
// server it was received on. It is implemented by the server package;
// defined here to avoid a dependency cycle. A server that has been torn
// down must make Respond fail rather than act on stale state.
type Responder interface {
	Respond(to identifier.Identifier, m message.Message) int
}

// Envelope is a received message paired with its sender and an optional
// responder that lets a handler reply in place. Envelopes exclusively own
// their Message and From; the Responder reference is non-owning.
type Envelope struct {
	Message   message.Message
	From      identifier.Identifier
	responder Responder
}

// NewEnvelope builds an Envelope. responder may be nil for direct-mode
// receives that have no server to reply through.
func NewEnvelope(m message.Message, from identifier.Identifier, responder Responder) Envelope {
	return Envelope{Message: m, From: from, responder: responder}
}

// SendResponse dispatches response to the envelope's sender via its
// server. Returns -1 if the envelope carries no responder, or if the
// responder reports the server is gone.
func (e Envelope) SendResponse(response message.Message) int {
	if e.responder == nil {
		return -1
	}
	return e.responder.Respond(e.From, response)
}
