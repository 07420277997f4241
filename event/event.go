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

package event

import (
	"encoding/binary"
	"errors"
	"sync"

	"golang.org/x/sys/unix"
)

// ErrWouldBlock is returned by Read when the counter is already zero.
var ErrWouldBlock = errors.New("event: counter is zero")

// eventfdSignal backs Signal with a Linux eventfd opened in semaphore mode:
// each Read consumes exactly one unit and fails rather than blocking when
// the counter is at zero, matching a counting semaphore's non-blocking
// contract.
type eventfdSignal struct {
	mu     sync.Mutex
	fd     int
	closed bool
}

// New creates a Signal backed by an eventfd with an initial counter of 0.
func New() (Signal, error) {
	fd, err := unix.Eventfd(0, unix.EFD_SEMAPHORE|unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &eventfdSignal{fd: fd}, nil
}

func (e *eventfdSignal) Write() error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return unix.EBADF
	}
	_, err := unix.Write(e.fd, buf[:])
	return err
}

func (e *eventfdSignal) Read() error {
	var buf [8]byte

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return unix.EBADF
	}
	_, err := unix.Read(e.fd, buf[:])
	if errors.Is(err, unix.EAGAIN) {
		return ErrWouldBlock
	}
	return err
}

// Clear drains the counter to zero by reading until the semaphore would
// block.
func (e *eventfdSignal) Clear() error {
	var buf [8]byte

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return unix.EBADF
	}
	for {
		_, err := unix.Read(e.fd, buf[:])
		if errors.Is(err, unix.EAGAIN) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (e *eventfdSignal) FD() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fd
}

func (e *eventfdSignal) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	return unix.Close(e.fd)
}
