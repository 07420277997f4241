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
	"fmt"
	"sync"

	atm "github.com/sabouaram/linxipc/atomic"
	"github.com/sabouaram/linxipc/client"
	liberr "github.com/sabouaram/linxipc/errors"
	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/logger"
	"github.com/sabouaram/linxipc/message"
	"github.com/sabouaram/linxipc/queue"
	"github.com/sabouaram/linxipc/selector"
	"github.com/sabouaram/linxipc/transport"
)

// server is a datagram endpoint. The socket is opened lazily by Start,
// not by New, so a bind failure (address in use) surfaces from Start as
// the interface promises rather than from the constructor.
type server struct {
	cfg Config
	log logger.Logger

	open func() (transport.Socket, error)

	mu      sync.Mutex
	sock    transport.Socket
	q       queue.Queue
	running atm.Value[bool]
	gone    atm.Value[bool]
	wg      sync.WaitGroup

	metrics *serverMetrics

	errFn  ErrorFunc
	infoFn InfoFunc
}

// New validates cfg and prepares a server without opening its socket.
// Start performs the actual bind.
func New(cfg Config) (Server, error) {
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}

	opener, name, err := buildOpener(cfg, log)
	if err != nil {
		return nil, err
	}

	s := &server{
		cfg:     cfg,
		log:     log,
		open:    opener,
		metrics: newServerMetrics(name),
		running: atm.NewValueDefault[bool](false, false),
		gone:    atm.NewValueDefault[bool](false, false),
	}

	if cfg.QueueCapacity > 0 {
		q, qErr := queue.New(cfg.QueueCapacity, log)
		if qErr != nil {
			return nil, qErr
		}
		s.q = q
	}

	return s, nil
}

func buildOpener(cfg Config, log logger.Logger) (opener func() (transport.Socket, error), name string, err error) {
	switch cfg.Network {
	case NetworkUnix:
		if cfg.Name == "" {
			return nil, "", liberr.New(liberr.CodeInvalidConfig, "server: NetworkUnix requires a non-empty Name")
		}
		return func() (transport.Socket, error) {
			return transport.NewUnix(cfg.Name, log)
		}, cfg.Name, nil

	case NetworkUDP:
		name = fmt.Sprintf("udp:%d", cfg.Port)
		return func() (transport.Socket, error) {
			sock, uErr := transport.NewUDP(cfg.Port, log)
			if uErr != nil {
				return nil, uErr
			}
			if cfg.Broadcast {
				if bErr := sock.SetBroadcast(true); bErr != nil {
					_ = sock.Close()
					return nil, bErr
				}
			}
			return sock, nil
		}, name, nil

	case NetworkUDPMulticast:
		if !cfg.MulticastGroup.IsValid() {
			return nil, "", liberr.New(liberr.CodeInvalidConfig, "server: NetworkUDPMulticast requires a valid MulticastGroup")
		}
		name = fmt.Sprintf("udp-multicast:%s:%d", cfg.MulticastGroup, cfg.Port)
		return func() (transport.Socket, error) {
			sock, uErr := transport.NewUDP(cfg.Port, log)
			if uErr != nil {
				return nil, uErr
			}
			if jErr := sock.JoinMulticastGroup(cfg.MulticastGroup); jErr != nil {
				_ = sock.Close()
				return nil, jErr
			}
			return sock, nil
		}, name, nil

	default:
		return nil, "", liberr.New(liberr.CodeInvalidConfig, "server: unknown network %d", cfg.Network)
	}
}

func (s *server) Start() bool {
	s.mu.Lock()
	if s.running.Load() {
		s.mu.Unlock()
		return true
	}
	if s.sock == nil {
		sock, err := s.open()
		if err != nil {
			s.mu.Unlock()
			s.log.Error("server start failed", logger.F("error", err.Error()))
			return false
		}
		s.sock = sock
	}
	s.running.Store(true)
	s.mu.Unlock()

	if s.q != nil {
		s.wg.Add(1)
		go s.ingressLoop()
	}

	s.notify("server started", StateStarted)
	return true
}

func (s *server) Stop() {
	s.mu.Lock()
	if !s.running.Load() {
		s.mu.Unlock()
		return
	}
	s.running.Store(false)
	sock := s.sock
	s.sock = nil
	s.mu.Unlock()

	if s.q != nil {
		s.q.Stop()
		s.wg.Wait()
	}
	if sock != nil {
		_ = sock.Close()
	}

	s.gone.Store(true)
	s.notify("server stopped", StateStopped)
}

func (s *server) IsRunning() bool {
	return s.running.Load()
}

func (s *server) IsGone() bool {
	return s.gone.Load()
}

func (s *server) Send(m message.Message, to identifier.Identifier) int {
	want := identifier.KindPort
	if s.cfg.Network == NetworkUnix {
		want = identifier.KindPath
	}
	if to.Kind() != want {
		return -1
	}

	s.mu.Lock()
	sock := s.sock
	s.mu.Unlock()
	if sock == nil {
		return transport.ErrClosed
	}
	return sock.Send(m, to)
}

func (s *server) Receive(timeoutMs int, sel selector.Set, from *identifier.Identifier) (queue.Envelope, bool) {
	if s.q != nil {
		return s.q.Get(timeoutMs, sel, from)
	}
	return s.receiveDirect(timeoutMs, sel, from)
}

func (s *server) PollFD() int {
	if s.q != nil {
		return s.q.FD()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sock == nil {
		return -1
	}
	return s.sock.FD()
}

func (s *server) Name() string {
	switch s.cfg.Network {
	case NetworkUnix:
		return s.cfg.Name
	case NetworkUDPMulticast:
		s.mu.Lock()
		defer s.mu.Unlock()
		port := s.cfg.Port
		if mc, ok := s.sock.(transport.MulticastSocket); ok {
			port = mc.LocalPort()
		}
		return fmt.Sprintf("%s:%d", s.cfg.MulticastGroup, port)
	default:
		return fmt.Sprintf("udp:%d", s.cfg.Port)
	}
}

func (s *server) CreateClient(peer identifier.Identifier) client.Client {
	return client.NewWithBackend(&serverBackend{srv: s, peer: peer}, peer, s.log)
}

func (s *server) RegisterFuncError(fn ErrorFunc) {
	s.mu.Lock()
	s.errFn = fn
	s.mu.Unlock()
}

func (s *server) RegisterFuncInfo(fn InfoFunc) {
	s.mu.Lock()
	s.infoFn = fn
	s.mu.Unlock()
}

func (s *server) notify(msg string, state ConnState) {
	s.mu.Lock()
	fn := s.infoFn
	s.mu.Unlock()
	if fn != nil {
		fn(msg, state)
	}
}

func (s *server) notifyErrors(errs ...error) {
	s.mu.Lock()
	fn := s.errFn
	s.mu.Unlock()
	if fn != nil {
		fn(errs...)
	}
}
