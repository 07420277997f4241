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
	"strings"
	"sync"

	"golang.org/x/sys/unix"

	liberr "github.com/sabouaram/linxipc/errors"
	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/logger"
	"github.com/sabouaram/linxipc/message"
)

// unixSocket is a Unix-domain datagram socket bound to an abstract-
// namespace name (a leading NUL byte in sun_path, conventionally written
// "@name"). Peers are addressed by name alone.
type unixSocket struct {
	mu   sync.Mutex
	fd   int
	name string
	log  logger.Logger
}

// NewUnix opens and binds a SOCK_DGRAM Unix-domain socket in the abstract
// namespace under name.
func NewUnix(name string, log logger.Logger) (Socket, error) {
	if log == nil {
		log = logger.Discard()
	}

	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_DGRAM, 0)
	if err != nil {
		return nil, liberr.New(liberr.CodeTransportSetup, "unix socket: %s", err)
	}

	sa := &unix.SockaddrUnix{Name: "@" + name}
	if err := unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return nil, liberr.New(liberr.CodeTransportSetup, "unix bind %q: %s", name, err)
	}

	return &unixSocket{fd: fd, name: name, log: log}, nil
}

func (s *unixSocket) FD() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fd
}

func (s *unixSocket) Send(m message.Message, to identifier.Identifier) int {
	s.mu.Lock()
	fd := s.fd
	s.mu.Unlock()

	if fd < 0 {
		s.log.Error("send on closed unix socket")
		return ErrClosed
	}

	buf := make([]byte, m.Size())
	if n := m.Serialize(buf); n == 0 {
		s.log.Error("send serialize failed", logger.F("size", m.Size()))
		return ErrSerialize
	}

	sa := &unix.SockaddrUnix{Name: "@" + to.Name()}
	if err := unix.Sendto(fd, buf, 0, sa); err != nil {
		s.log.Error("sendto failed", logger.F("to", to.String()), logger.F("err", err))
		return ErrSystem
	}
	return 0
}

func (s *unixSocket) Receive(timeoutMs int) (message.Message, identifier.Identifier, int) {
	s.mu.Lock()
	fd := s.fd
	s.mu.Unlock()

	if fd < 0 {
		return message.Message{}, identifier.Identifier{}, ErrClosed
	}

	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	pollrc, err := unix.Poll(fds, timeoutMs)
	if err != nil {
		if err == unix.EBADF {
			return message.Message{}, identifier.Identifier{}, 0
		}
		s.log.Error("poll failed", logger.F("err", err))
		return message.Message{}, identifier.Identifier{}, ErrSystem
	}
	if pollrc == 0 {
		return message.Message{}, identifier.Identifier{}, 0
	}

	pending, err := unix.IoctlGetInt(fd, unix.FIONREAD)
	if err != nil {
		s.log.Error("FIONREAD failed", logger.F("err", err))
		return message.Message{}, identifier.Identifier{}, ErrSystem
	}

	buf := make([]byte, pending)
	read, from, err := unix.Recvfrom(fd, buf, 0)
	if err != nil {
		if err == unix.EBADF {
			return message.Message{}, identifier.Identifier{}, 0
		}
		s.log.Error("recvfrom failed", logger.F("err", err))
		return message.Message{}, identifier.Identifier{}, ErrSystem
	}
	if read != pending {
		s.log.Error("recvfrom short read", logger.F("got", read), logger.F("want", pending))
		return message.Message{}, identifier.Identifier{}, ErrShortRead
	}

	m, ok := message.Deserialize(buf[:read])
	if !ok {
		s.log.Error("deserialize failed")
		return message.Message{}, identifier.Identifier{}, ErrDeserialize
	}

	sender := senderIdentifier(from)
	return m, sender, read
}

func senderIdentifier(from unix.Sockaddr) identifier.Identifier {
	sa, ok := from.(*unix.SockaddrUnix)
	if !ok {
		return identifier.Path("")
	}
	return identifier.Path(strings.TrimPrefix(sa.Name, "@"))
}

func (s *unixSocket) Flush() int {
	s.mu.Lock()
	fd := s.fd
	s.mu.Unlock()

	if fd < 0 {
		return ErrClosed
	}

	pending, err := unix.IoctlGetInt(fd, unix.FIONREAD)
	if err != nil || pending <= 0 {
		return 0
	}

	buf := make([]byte, pending)
	_, _, _ = unix.Recvfrom(fd, buf, 0)
	return pending
}

func (s *unixSocket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fd < 0 {
		return nil
	}
	_ = unix.Shutdown(s.fd, unix.SHUT_RDWR)
	err := unix.Close(s.fd)
	s.fd = -1
	return err
}
