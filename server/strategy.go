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
	"time"

	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/logger"
	"github.com/sabouaram/linxipc/message"
	"github.com/sabouaram/linxipc/queue"
	"github.com/sabouaram/linxipc/selector"
	"github.com/sabouaram/linxipc/transport"
)

// ingressPollTimeoutMs bounds how long the ingress worker blocks in a
// single socket receive, so it can notice Stop within one period.
const ingressPollTimeoutMs = 100

// receiveDirect services Receive for a server with no queue: it polls the
// socket itself, answering pings inline and discarding anything that
// doesn't match sel/from, until a match arrives or the deadline passes.
func (s *server) receiveDirect(timeoutMs int, sel selector.Set, from *identifier.Identifier) (queue.Envelope, bool) {
	s.mu.Lock()
	sock := s.sock
	s.mu.Unlock()
	if sock == nil {
		return queue.Envelope{}, false
	}

	if timeoutMs == 0 {
		env, ok, rc := s.pollDirect(sock, 0, sel, from)
		if rc < 0 && rc != transport.ErrClosed {
			s.notifyErrors(errReceive(rc))
		}
		return env, ok
	}

	var deadline time.Time
	hasDeadline := timeoutMs > 0
	if hasDeadline {
		deadline = time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
	}

	remaining := timeoutMs
	for {
		env, ok, rc := s.pollDirect(sock, remaining, sel, from)
		if ok {
			return env, true
		}
		if rc < 0 {
			if rc != transport.ErrClosed {
				s.notifyErrors(errReceive(rc))
			}
			return queue.Envelope{}, false
		}
		if !s.IsRunning() {
			return queue.Envelope{}, false
		}
		if !hasDeadline {
			continue
		}
		remaining = int(time.Until(deadline) / time.Millisecond)
		if remaining <= 0 {
			return queue.Envelope{}, false
		}
	}
}

// pollDirect issues a single bounded Receive. rc mirrors
// transport.Socket.Receive's own convention (0 timeout, negative error,
// positive success) so the caller can tell a genuine transport failure
// from a timeout or a received-but-discarded message (ping, non-matching
// selector) — both of the latter report ok=false, rc==0 and should be
// retried, while rc < 0 must be returned immediately.
func (s *server) pollDirect(sock transport.Socket, timeoutMs int, sel selector.Set, from *identifier.Identifier) (_ queue.Envelope, ok bool, rc int) {
	m, sender, n := sock.Receive(timeoutMs)
	if n <= 0 {
		return queue.Envelope{}, false, n
	}
	if s.answerIfPing(sock, m, sender) {
		return queue.Envelope{}, false, 0
	}
	if !selector.Match(m.ReqID, sender, sel, from) {
		return queue.Envelope{}, false, 0
	}
	return queue.NewEnvelope(m, sender, s), true, 0
}

// answerIfPing replies to a PING_REQ inline and reports true, so callers
// never enqueue or deliver the ping itself.
func (s *server) answerIfPing(sock transport.Socket, m message.Message, sender identifier.Identifier) bool {
	if m.ReqID != message.PingReq {
		return false
	}
	s.metrics.pingsHandled.Inc()
	if rc := sock.Send(message.New(message.PingRsp, nil), sender); rc != 0 {
		s.log.Warn("ping response failed", logger.F("to", sender.String()), logger.F("rc", rc))
	}
	return true
}

// ingressLoop is the queued-mode worker: it owns the only reader of the
// socket, answers pings inline, and hands everything else to the queue,
// dropping and logging when the queue is full. It exits within one
// ingressPollTimeoutMs period of Stop being called.
func (s *server) ingressLoop() {
	defer s.wg.Done()

	s.mu.Lock()
	sock := s.sock
	s.mu.Unlock()

	for s.IsRunning() {
		m, sender, n := sock.Receive(ingressPollTimeoutMs)
		if n == 0 {
			continue
		}
		if n < 0 {
			if n == transport.ErrClosed {
				return
			}
			s.notifyErrors(errReceive(n))
			continue
		}
		if s.answerIfPing(sock, m, sender) {
			continue
		}

		env := queue.NewEnvelope(m, sender, s)
		if rc := s.q.Add(env); rc != 0 {
			s.metrics.messagesDropped.Inc()
			s.notify("receive queue full, dropping message", StateStarted)
			continue
		}
		s.metrics.messagesDelivered.Inc()
	}
}
