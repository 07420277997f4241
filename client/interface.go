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

// Package client implements a stateless handle to a single peer: send,
// matched receive, the combined send-then-receive call, and the hunt
// handshake used to detect that a peer is listening.
package client

import (
	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/message"
	"github.com/sabouaram/linxipc/selector"
)

// Backend is the minimal send/receive surface a Client drives. One
// implementation owns a private socket; another (constructed by the
// server package) delegates to an existing server's send/receive so
// responses travel back through the server's own socket.
type Backend interface {
	Send(m message.Message) int
	Receive(timeoutMs int, sel selector.Set) (message.Message, bool)
}

// Client addresses one fixed peer.
type Client interface {
	// Send transmits m to the peer.
	Send(m message.Message) int

	// Receive waits up to timeoutMs for a message from the peer whose
	// request id is in sel (empty sel matches any request id).
	Receive(timeoutMs int, sel selector.Set) (message.Message, bool)

	// SendReceive sends m, then waits for a matching reply. Does not
	// attempt to receive if the send failed.
	SendReceive(m message.Message, timeoutMs int, sel selector.Set) (message.Message, bool)

	// Connect runs the hunt handshake: repeatedly pings the peer until
	// a PING_RSP arrives or timeoutMs elapses. timeoutMs == 0 makes a
	// single attempt; timeoutMs == -1 retries forever.
	Connect(timeoutMs int) bool

	// Name returns the peer's display identifier.
	Name() string

	// Equal reports whether other addresses the same peer with the
	// same identifier variant.
	Equal(other Client) bool
}
