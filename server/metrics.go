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
	"github.com/prometheus/client_golang/prometheus"
)

// serverMetrics counts the events an operator would want a dashboard on:
// pings answered, envelopes delivered to a queue, and envelopes dropped
// for a full queue. Registered against the default registerer, tolerant
// of a second server sharing the same name.
type serverMetrics struct {
	pingsHandled      prometheus.Counter
	messagesDelivered prometheus.Counter
	messagesDropped   prometheus.Counter
}

func newServerMetrics(name string) *serverMetrics {
	labels := prometheus.Labels{"server": name}

	return &serverMetrics{
		pingsHandled: registerCounter(prometheus.CounterOpts{
			Name:        "linxipc_server_pings_handled_total",
			Help:        "Number of PING_REQ frames answered inline by the server.",
			ConstLabels: labels,
		}),
		messagesDelivered: registerCounter(prometheus.CounterOpts{
			Name:        "linxipc_server_messages_delivered_total",
			Help:        "Number of envelopes successfully queued for delivery.",
			ConstLabels: labels,
		}),
		messagesDropped: registerCounter(prometheus.CounterOpts{
			Name:        "linxipc_server_messages_dropped_total",
			Help:        "Number of envelopes discarded because the receive queue was full.",
			ConstLabels: labels,
		}),
	}
}

// registerCounter registers a fresh counter, falling back to whichever
// collector is already registered under the same name and labels (two
// servers with the same name share one set of series).
func registerCounter(opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
	}
	return c
}
