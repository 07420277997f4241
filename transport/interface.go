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

// Package transport implements the two datagram socket variants: Unix
// abstract-namespace sockets and UDP (including multicast and broadcast).
// Both expose the same Socket contract; callers above this package never
// branch on which variant they hold.
package transport

import (
	"net/netip"

	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/message"
)

// Negative return codes shared by Send and Receive. Positive Receive
// results are the number of bytes read, the 4-byte header included; 0
// means timeout or an already-shut-down socket; never an error in that
// case.
const (
	// ErrClosed is returned by Send/Receive when the socket has not
	// been opened or was already closed.
	ErrClosed = -1

	// ErrSerialize is returned by Send when the message does not fit
	// the frame buffer it was given.
	ErrSerialize = -2

	// ErrInvalidAddress is returned by Send when the destination
	// identifier cannot be resolved to a transport address.
	ErrInvalidAddress = -3

	// ErrSystem is returned when the underlying syscall fails for a
	// reason other than a closed descriptor.
	ErrSystem = -4

	// ErrShortWrite is returned by Send when sendto wrote fewer bytes
	// than the serialized frame.
	ErrShortWrite = -5

	// ErrShortRead is returned by Receive when the datagram read is
	// shorter than the byte count reported pending by FIONREAD.
	ErrShortRead = -5

	// ErrDeserialize is returned by Receive when the datagram read
	// does not deserialize into a well-formed frame.
	ErrDeserialize = -6
)

// Socket is a connectionless datagram endpoint: bound, capable of sending
// to and receiving from arbitrary peers identified by identifier.Identifier.
type Socket interface {
	// FD returns the underlying descriptor, usable with poll/select.
	FD() int

	// Send serializes m and sends it to the peer named by to. Returns 0
	// on success, one of the Err* constants otherwise.
	Send(m message.Message, to identifier.Identifier) int

	// Receive waits up to timeoutMs milliseconds for a datagram. The Unix
	// variant sizes its read to the pending datagram's exact length
	// (FIONREAD); the UDP variant reads into a buffer of the maximum UDP
	// datagram size instead. Returns the message, the sender identifier,
	// and the byte count read (0 on timeout or shutdown, negative on
	// error).
	Receive(timeoutMs int) (message.Message, identifier.Identifier, int)

	// Flush discards one pending datagram without delivering it,
	// returning the number of bytes discarded.
	Flush() int

	// Close shuts the socket down for reads and writes, then releases
	// the descriptor. Idempotent.
	Close() error
}

// MulticastSocket is a Socket with the UDP-specific controls for joining
// multicast groups and sending broadcast/multicast traffic. NewUDP returns
// this wider interface so callers that need group membership don't have
// to type-assert.
type MulticastSocket interface {
	Socket

	// LocalPort returns the port the socket is bound to, resolving an
	// ephemeral port (bound with 0) to its assigned value.
	LocalPort() uint16

	// JoinMulticastGroup joins addr on the first interface that accepts
	// the membership; later interfaces are not joined.
	JoinMulticastGroup(addr netip.Addr) error

	// SetMulticastTTL sets the outgoing multicast TTL and enables loopback.
	SetMulticastTTL(ttl int) error

	// SetBroadcast enables or disables SO_BROADCAST.
	SetBroadcast(enable bool) error
}
