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

package server

import (
	"fmt"

	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/message"
	"github.com/sabouaram/linxipc/selector"
)

// Respond implements queue.Responder: it is the non-owning back-reference
// every Envelope this server hands out carries. Once the server is gone
// it must fail rather than reach into a closed socket.
func (s *server) Respond(to identifier.Identifier, m message.Message) int {
	if s.IsGone() {
		return -1
	}
	return s.Send(m, to)
}

// errReceive turns a transport.Socket.Receive negative return code into
// an error for the error callback.
func errReceive(rc int) error {
	return fmt.Errorf("server: receive failed with code %d", rc)
}

// serverBackend implements client.Backend by routing through an existing
// server's Send and Receive rather than opening a private socket, so a
// client created by CreateClient shares the server's own send path. It
// is grounded directly on the source system's server-side createClient,
// which hands the new client a reference to the server instead of
// opening a fresh socket.
type serverBackend struct {
	srv  *server
	peer identifier.Identifier
}

func (b *serverBackend) Send(m message.Message) int {
	return b.srv.Send(m, b.peer)
}

func (b *serverBackend) Receive(timeoutMs int, sel selector.Set) (message.Message, bool) {
	env, ok := b.srv.Receive(timeoutMs, sel, &b.peer)
	if !ok {
		return message.Message{}, false
	}
	return env.Message, true
}
