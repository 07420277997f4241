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

package transport

import (
	"errors"
	"net"
	"net/netip"
	"sync"
	"time"

	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"

	liberr "github.com/sabouaram/linxipc/errors"
	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/logger"
	"github.com/sabouaram/linxipc/message"
)

const maxDatagram = 65507

// udpSocket is an IPv4 UDP datagram socket, optionally joined to a
// multicast group or enabled for broadcast.
type udpSocket struct {
	mu   sync.Mutex
	conn *net.UDPConn
	pc   *ipv4.PacketConn
	fd   int
	log  logger.Logger
}

// NewUDP opens a UDP socket bound to port on all interfaces. port == 0
// binds an ephemeral port, resolved afterward via LocalPort.
func NewUDP(port uint16, log logger.Logger) (MulticastSocket, error) {
	if log == nil {
		log = logger.Discard()
	}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: int(port)})
	if err != nil {
		return nil, liberr.New(liberr.CodeTransportSetup, "udp listen on port %d: %s", port, err)
	}

	fd := -1
	raw, err := conn.SyscallConn()
	if err == nil {
		_ = raw.Control(func(f uintptr) { fd = int(f) })
	}

	return &udpSocket{conn: conn, pc: ipv4.NewPacketConn(conn), fd: fd, log: log}, nil
}

// JoinMulticastGroup tries the interfaces in order and joins addr on the
// first one that accepts the membership, returning the last join error if
// none does. It sets no loopback option; SetMulticastTTL does that.
func (s *udpSocket) JoinMulticastGroup(addr netip.Addr) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ifaces, err := net.Interfaces()
	if err != nil {
		return err
	}

	group := &net.UDPAddr{IP: addr.AsSlice()}
	var joinErr error
	for i := range ifaces {
		if err := s.pc.JoinGroup(&ifaces[i], group); err != nil {
			joinErr = err
			continue
		}
		joinErr = nil
		break
	}
	return joinErr
}

// SetMulticastTTL sets the outgoing multicast TTL and enables multicast
// loopback.
func (s *udpSocket) SetMulticastTTL(ttl int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.pc.SetMulticastTTL(ttl); err != nil {
		return err
	}
	return s.pc.SetMulticastLoopback(true)
}

// SetBroadcast enables or disables SO_BROADCAST, required to send to the
// limited broadcast address.
func (s *udpSocket) SetBroadcast(enable bool) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		return net.ErrClosed
	}

	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}

	val := 0
	if enable {
		val = 1
	}

	var sockErr error
	if err := raw.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, val)
	}); err != nil {
		return err
	}
	return sockErr
}

func (s *udpSocket) FD() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fd
}

// LocalPort returns the bound port, resolving an ephemeral bind (port 0)
// to the kernel-assigned value.
func (s *udpSocket) LocalPort() uint16 {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		return 0
	}
	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return 0
	}
	return uint16(addr.Port)
}

func (s *udpSocket) Send(m message.Message, to identifier.Identifier) int {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		s.log.Error("send on closed udp socket")
		return ErrClosed
	}
	if !to.Addr().Is4() {
		s.log.Error("send invalid address", logger.F("to", to.String()))
		return ErrInvalidAddress
	}

	buf := make([]byte, m.Size())
	if n := m.Serialize(buf); n == 0 {
		s.log.Error("send serialize failed", logger.F("size", m.Size()))
		return ErrSerialize
	}

	addr := &net.UDPAddr{IP: to.Addr().AsSlice(), Port: int(to.PortNum())}
	n, err := conn.WriteToUDP(buf, addr)
	if err != nil {
		s.log.Error("sendto failed", logger.F("to", to.String()), logger.F("err", err))
		return ErrSystem
	}
	if n != len(buf) {
		s.log.Error("sendto short write", logger.F("got", n), logger.F("want", len(buf)))
		return ErrShortWrite
	}
	return 0
}

func (s *udpSocket) Receive(timeoutMs int) (message.Message, identifier.Identifier, int) {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		return message.Message{}, identifier.Identifier{}, ErrClosed
	}

	switch {
	case timeoutMs < 0:
		_ = conn.SetReadDeadline(time.Time{})
	case timeoutMs == 0:
		_ = conn.SetReadDeadline(time.Now())
	default:
		_ = conn.SetReadDeadline(time.Now().Add(time.Duration(timeoutMs) * time.Millisecond))
	}

	buf := make([]byte, maxDatagram)
	n, from, err := conn.ReadFromUDP(buf)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return message.Message{}, identifier.Identifier{}, 0
		}
		if errors.Is(err, net.ErrClosed) {
			return message.Message{}, identifier.Identifier{}, 0
		}
		s.log.Error("recvfrom failed", logger.F("err", err))
		return message.Message{}, identifier.Identifier{}, ErrSystem
	}

	m, ok := message.Deserialize(buf[:n])
	if !ok {
		s.log.Error("deserialize failed")
		return message.Message{}, identifier.Identifier{}, ErrDeserialize
	}

	addr, ok := netip.AddrFromSlice(from.IP.To4())
	if !ok {
		addr = netip.IPv4Unspecified()
	}
	return m, identifier.Port(addr, uint16(from.Port)), n
}

// Flush discards one pending datagram without delivering it.
func (s *udpSocket) Flush() int {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		return ErrClosed
	}

	_ = conn.SetReadDeadline(time.Now())
	buf := make([]byte, maxDatagram)
	n, _, err := conn.ReadFromUDP(buf)
	if err != nil {
		return 0
	}
	return n
}

func (s *udpSocket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
