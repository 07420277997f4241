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

package dispatcher

import (
	"sync"

	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/logger"
	"github.com/sabouaram/linxipc/message"
	"github.com/sabouaram/linxipc/queue"
	"github.com/sabouaram/linxipc/selector"
	"github.com/sabouaram/linxipc/server"
)

type binding struct {
	cb       Callback
	userData any
}

type dispatcher struct {
	srv server.Server
	log logger.Logger

	mu       sync.RWMutex
	bindings map[uint32]binding
}

// New wraps srv in a callback dispatcher. log may be nil.
func New(srv server.Server, log logger.Logger) Dispatcher {
	if log == nil {
		log = logger.Discard()
	}
	return &dispatcher{srv: srv, log: log, bindings: make(map[uint32]binding)}
}

func (d *dispatcher) Register(reqID uint32, cb Callback, userData any) Dispatcher {
	d.mu.Lock()
	d.bindings[reqID] = binding{cb: cb, userData: userData}
	d.mu.Unlock()
	return d
}

func (d *dispatcher) HandleMessage(timeoutMs int) int {
	env, ok := d.srv.Receive(timeoutMs, nil, nil)
	if !ok {
		return -1
	}

	d.mu.RLock()
	b, found := d.bindings[env.Message.ReqID]
	d.mu.RUnlock()

	if !found {
		d.log.Info("no handler registered for request", logger.F("req_id", env.Message.ReqID), logger.F("from", env.From.String()))
		return 0
	}

	return b.cb(env, b.userData)
}

func (d *dispatcher) Start() bool { return d.srv.Start() }
func (d *dispatcher) Stop()       { d.srv.Stop() }
func (d *dispatcher) GetPollFD() int {
	return d.srv.PollFD()
}

func (d *dispatcher) Send(m message.Message, to identifier.Identifier) int {
	return d.srv.Send(m, to)
}

func (d *dispatcher) Receive(timeoutMs int, sel selector.Set, from *identifier.Identifier) (queue.Envelope, bool) {
	return d.srv.Receive(timeoutMs, sel, from)
}
