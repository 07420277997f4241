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
	"sync"
	"time"

	"github.com/sabouaram/linxipc/event"
	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/logger"
	"github.com/sabouaram/linxipc/selector"
)

// queue is the default Queue: a slice-backed FIFO guarded by a mutex and
// condition variable, with an event.Signal kept at exactly the queue's
// length outside of locked sections.
type queue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	items    []Envelope
	capacity int
	sig      event.Signal
	stopped  bool
	log      logger.Logger
}

// New builds an empty Queue with the given capacity. log may be
// logger.Discard() if the caller does not want queue diagnostics.
func New(capacity int, log logger.Logger) (Queue, error) {
	sig, err := event.New()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}
	q := &queue{capacity: capacity, sig: sig, log: log}
	q.cond = sync.NewCond(&q.mu)
	return q, nil
}

func (q *queue) Add(env Envelope) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.stopped {
		return -1
	}
	if len(q.items) >= q.capacity {
		q.log.Warn("queue full", logger.F("capacity", q.capacity))
		return -1
	}

	q.items = append(q.items, env)
	_ = q.sig.Write()
	q.cond.Broadcast()
	return 0
}

// scanLocked returns the index of the oldest envelope matching (sel,
// from), or -1. Must be called with mu held.
func (q *queue) scanLocked(sel selector.Set, from *identifier.Identifier) int {
	for i, env := range q.items {
		if selector.Match(env.Message.ReqID, env.From, sel, from) {
			return i
		}
	}
	return -1
}

// removeLocked removes the envelope at i and consumes one event unit.
// Must be called with mu held.
func (q *queue) removeLocked(i int) Envelope {
	env := q.items[i]
	q.items = append(q.items[:i], q.items[i+1:]...)
	_ = q.sig.Read()
	return env
}

func (q *queue) Get(timeoutMs int, sel selector.Set, from *identifier.Identifier) (Envelope, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if i := q.scanLocked(sel, from); i >= 0 {
		return q.removeLocked(i), true
	}
	if timeoutMs == 0 {
		return Envelope{}, false
	}
	if q.stopped {
		return Envelope{}, false
	}

	var deadline time.Time
	hasDeadline := timeoutMs > 0
	if hasDeadline {
		deadline = time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
		timer := time.AfterFunc(time.Duration(timeoutMs)*time.Millisecond, func() {
			q.mu.Lock()
			q.cond.Broadcast()
			q.mu.Unlock()
		})
		defer timer.Stop()
	}

	for {
		q.cond.Wait()

		if i := q.scanLocked(sel, from); i >= 0 {
			return q.removeLocked(i), true
		}
		if q.stopped {
			return Envelope{}, false
		}
		if hasDeadline && !time.Now().Before(deadline) {
			return Envelope{}, false
		}
	}
}

func (q *queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
	_ = q.sig.Clear()
}

func (q *queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.stopped = true
	q.items = nil
	_ = q.sig.Clear()
	q.cond.Broadcast()
}

func (q *queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *queue) FD() int {
	return q.sig.FD()
}

func (q *queue) Close() error {
	return q.sig.Close()
}
