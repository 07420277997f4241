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
	"net/netip"

	"github.com/sabouaram/linxipc/logger"
)

// Network selects which transport.Socket variant a server opens.
type Network uint8

const (
	// NetworkUnix binds an abstract-namespace Unix datagram socket.
	NetworkUnix Network = iota
	// NetworkUDP binds a UDP socket for unicast and broadcast traffic.
	NetworkUDP
	// NetworkUDPMulticast binds a UDP socket and joins a multicast group.
	NetworkUDPMulticast
)

// DefaultQueueCapacity is used by create-server when the caller does not
// specify one.
const DefaultQueueCapacity = 100

// Config describes how to open a server's socket and whether it should
// run in queued mode (QueueCapacity > 0) or direct mode (0).
type Config struct {
	Network Network

	// Name is the abstract Unix socket name; only used for NetworkUnix.
	Name string

	// Port is the UDP port to bind; only used for NetworkUDP and
	// NetworkUDPMulticast. 0 picks an ephemeral port.
	Port uint16

	// MulticastGroup is the group to join; only used for
	// NetworkUDPMulticast.
	MulticastGroup netip.Addr

	// Broadcast enables SO_BROADCAST on a UDP socket.
	Broadcast bool

	// QueueCapacity, if > 0, runs the server in queued mode with an
	// ingress worker backed by a bounded queue of this capacity. 0 runs
	// the server in direct mode: Receive polls the socket itself, with
	// no background goroutine.
	QueueCapacity int

	// Logger is used throughout the server and its socket. Defaults to
	// a discarding logger if nil.
	Logger logger.Logger
}

// NewServer opens an abstract Unix-domain server named name, queued with
// DefaultQueueCapacity.
func NewServer(name string) (Server, error) {
	return New(Config{Network: NetworkUnix, Name: name, QueueCapacity: DefaultQueueCapacity})
}

// NewQueuedServer opens an abstract Unix-domain server named name with an
// explicit queue capacity.
func NewQueuedServer(name string, queueCapacity int) (Server, error) {
	return New(Config{Network: NetworkUnix, Name: name, QueueCapacity: queueCapacity})
}

// NewSimpleServer opens an abstract Unix-domain server in direct mode: no
// queue, no ingress worker, Receive polls the socket inline.
func NewSimpleServer(name string) (Server, error) {
	return New(Config{Network: NetworkUnix, Name: name})
}

// NewUDPServer opens a UDP server bound to port, queued with the given
// capacity (0 for direct mode).
func NewUDPServer(port uint16, queueCapacity int) (Server, error) {
	return New(Config{Network: NetworkUDP, Port: port, QueueCapacity: queueCapacity})
}

// NewUDPMulticastServer opens a UDP server bound to port and joined to
// group, queued with the given capacity (0 for direct mode).
func NewUDPMulticastServer(group netip.Addr, port uint16, queueCapacity int) (Server, error) {
	return New(Config{
		Network:        NetworkUDPMulticast,
		Port:           port,
		MulticastGroup: group,
		QueueCapacity:  queueCapacity,
	})
}
