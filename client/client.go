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

package client

import (
	"time"

	"github.com/hashicorp/go-uuid"

	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/logger"
	"github.com/sabouaram/linxipc/message"
	"github.com/sabouaram/linxipc/selector"
	"github.com/sabouaram/linxipc/transport"
)

// genericClient is stateless with respect to its peer: no handshake
// record is kept between calls, so Connect is purely a liveness probe.
type genericClient struct {
	backend    Backend
	peer       identifier.Identifier
	instanceID string
	log        logger.Logger
}

// New builds a Client that owns its own socket and addresses peer
// directly. log may be nil.
func New(sock transport.Socket, peer identifier.Identifier, log logger.Logger) Client {
	if log == nil {
		log = logger.Discard()
	}
	return newGeneric(&socketBackend{sock: sock, peer: peer, log: log}, peer, log)
}

// NewWithBackend builds a Client over an arbitrary Backend, used by the
// server package to hand out clients whose sends and receives route
// through an existing server rather than a fresh socket.
func NewWithBackend(backend Backend, peer identifier.Identifier, log logger.Logger) Client {
	if log == nil {
		log = logger.Discard()
	}
	return newGeneric(backend, peer, log)
}

func newGeneric(backend Backend, peer identifier.Identifier, log logger.Logger) *genericClient {
	id, err := uuid.GenerateUUID()
	if err != nil {
		id = peer.String()
	}
	return &genericClient{backend: backend, peer: peer, instanceID: id, log: log}
}

func (c *genericClient) Send(m message.Message) int {
	rc := c.backend.Send(m)
	if rc != 0 {
		c.log.Error("send failed", logger.F("instance_id", c.instanceID), logger.F("peer", c.peer.String()), logger.F("rc", rc))
	}
	return rc
}

func (c *genericClient) Receive(timeoutMs int, sel selector.Set) (message.Message, bool) {
	return c.backend.Receive(timeoutMs, sel)
}

func (c *genericClient) SendReceive(m message.Message, timeoutMs int, sel selector.Set) (message.Message, bool) {
	if rc := c.Send(m); rc != 0 {
		return message.Message{}, false
	}
	return c.Receive(timeoutMs, sel)
}

// Connect runs the hunt handshake with a 100ms per-attempt ping timeout.
func (c *genericClient) Connect(timeoutMs int) bool {
	pingSel := selector.Set{message.PingRsp}

	attempt := func() bool {
		if c.backend.Send(message.New(message.PingReq, nil)) != 0 {
			return false
		}
		_, ok := c.backend.Receive(100, pingSel)
		return ok
	}

	if timeoutMs == 0 {
		return attempt()
	}

	var deadline time.Time
	hasDeadline := timeoutMs > 0
	if hasDeadline {
		deadline = time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
	}

	for {
		if attempt() {
			return true
		}
		if hasDeadline && !time.Now().Before(deadline) {
			return false
		}
	}
}

func (c *genericClient) Name() string {
	return c.peer.String()
}

func (c *genericClient) Equal(other Client) bool {
	o, ok := other.(*genericClient)
	if !ok {
		return false
	}
	return c.peer.Equal(o.peer)
}
