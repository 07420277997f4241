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

	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/logger"
	"github.com/sabouaram/linxipc/message"
	"github.com/sabouaram/linxipc/selector"
	"github.com/sabouaram/linxipc/transport"
)

// socketBackend drives a private transport.Socket directly, implementing
// the manual deadline loop: poll the socket for whatever remains of the
// timeout, discard anything that doesn't match the peer and selector, stop
// on the first match, timeout, or error.
type socketBackend struct {
	sock transport.Socket
	peer identifier.Identifier
	log  logger.Logger
}

func (b *socketBackend) Send(m message.Message) int {
	return b.sock.Send(m, b.peer)
}

func (b *socketBackend) Receive(timeoutMs int, sel selector.Set) (message.Message, bool) {
	if timeoutMs == 0 {
		m, ok, _ := b.pollOnce(0, sel)
		return m, ok
	}

	var deadline time.Time
	hasDeadline := timeoutMs > 0
	if hasDeadline {
		deadline = time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
	}

	remaining := timeoutMs
	for {
		m, ok, n := b.pollOnce(remaining, sel)
		if ok {
			return m, true
		}
		if n <= 0 {
			return message.Message{}, false
		}
		if !hasDeadline {
			continue
		}
		remaining = int(time.Until(deadline) / time.Millisecond)
		if remaining <= 0 {
			return message.Message{}, false
		}
	}
}

// pollOnce issues a single socket receive and checks the result against
// the peer and selector, without looping. n is the socket's own return
// code: 0 on timeout or shutdown, negative on error.
func (b *socketBackend) pollOnce(timeoutMs int, sel selector.Set) (message.Message, bool, int) {
	m, from, n := b.sock.Receive(timeoutMs)
	if n <= 0 {
		return message.Message{}, false, n
	}
	if !selector.Match(m.ReqID, from, sel, &b.peer) {
		b.log.Debug("discarding non-matching datagram", logger.F("req_id", m.ReqID), logger.F("from", from.String()))
		return message.Message{}, false, n
	}
	return m, true, n
}
