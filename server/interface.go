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

// Package server implements the endpoint that owns a transport socket,
// an optional receive queue, and an optional ingress worker. It answers
// the ping handshake inline and hands delivered traffic to either a
// direct-mode caller or a queued one, depending on how it was built.
package server

import (
	"github.com/sabouaram/linxipc/client"
	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/message"
	"github.com/sabouaram/linxipc/queue"
	"github.com/sabouaram/linxipc/selector"
)

// ConnState enumerates the lifecycle transitions a server reports
// through its info callback.
type ConnState uint8

const (
	// StateStarted is reported once Start has opened the socket (and,
	// in queued mode, launched the ingress worker).
	StateStarted ConnState = iota
	// StateStopped is reported once Stop has completed.
	StateStopped
)

func (s ConnState) String() string {
	switch s {
	case StateStarted:
		return "started"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// InfoFunc receives lifecycle and diagnostic notices; it never carries
// an error.
type InfoFunc func(msg string, state ConnState)

// ErrorFunc receives socket receive failures seen by the ingress worker
// or by a direct-mode Receive. Queue-full drops are not reported here;
// they go to the InfoFunc.
type ErrorFunc func(errs ...error)

// Server is a datagram endpoint: socket plus optional queue plus
// optional ingress worker.
type Server interface {
	// Start opens the socket if needed and, in queued mode, launches
	// the ingress worker. Returns false only if the socket could not be
	// opened (e.g. address already in use). Idempotent.
	Start() bool

	// Stop marks the server non-running, joins the ingress worker if
	// any, and stops the queue. Idempotent.
	Stop()

	// IsRunning reports whether Start has succeeded and Stop has not
	// since been called.
	IsRunning() bool

	// IsGone reports whether the server has been torn down and can no
	// longer accept sends (used by Envelope.SendResponse's weak
	// reference check).
	IsGone() bool

	// Send delegates to the socket. Returns -1 without a system call if
	// to's identifier variant does not match the socket's address
	// family.
	Send(m message.Message, to identifier.Identifier) int

	// Receive delegates to the server's configured strategy (direct or
	// queued).
	Receive(timeoutMs int, sel selector.Set, from *identifier.Identifier) (queue.Envelope, bool)

	// PollFD returns the descriptor a caller should multiplex: the
	// queue's event descriptor in queued mode, the socket's descriptor
	// in direct mode.
	PollFD() int

	// Name returns the name or address the server was created with.
	Name() string

	// CreateClient returns a Client bound to this server's send path,
	// addressing peer.
	CreateClient(peer identifier.Identifier) client.Client

	// RegisterFuncError installs a callback invoked with ingress-worker
	// errors.
	RegisterFuncError(fn ErrorFunc)

	// RegisterFuncInfo installs a callback invoked on lifecycle
	// transitions and notable diagnostics (e.g. a full queue).
	RegisterFuncInfo(fn InfoFunc)
}
