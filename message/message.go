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

// Package message implements the one-datagram wire frame: a big-endian
// 32-bit request id followed by an opaque payload. There is no length
// field; the datagram boundary is the frame boundary.
package message

import "encoding/binary"

// HeaderSize is the number of bytes the req_id occupies on the wire.
const HeaderSize = 4

// Message is a framed request id plus an opaque payload.
type Message struct {
	ReqID   uint32
	Payload []byte
}

// New builds a Message from a request id and raw bytes.
func New(reqID uint32, payload []byte) Message {
	return Message{ReqID: reqID, Payload: payload}
}

// FromValue copies v's in-memory bytes verbatim into the payload. Byte
// order of v's fields is the caller's problem; only the header is
// endian-normalized.
func FromValue[T any](reqID uint32, v T) Message {
	n := sizeOf(v)
	buf := make([]byte, n)
	copyBytes(buf, &v)
	return Message{ReqID: reqID, Payload: buf}
}

// Size returns the total wire size of m.
func (m Message) Size() int {
	return HeaderSize + len(m.Payload)
}

// Serialize writes m into buf as req_id_be || payload. It returns the
// number of bytes written, or 0 if buf is too small to hold m.
func (m Message) Serialize(buf []byte) int {
	n := m.Size()
	if len(buf) < n {
		return 0
	}

	binary.BigEndian.PutUint32(buf, m.ReqID)
	copy(buf[HeaderSize:n], m.Payload)
	return n
}

// Deserialize reads a Message out of b. It requires at least HeaderSize
// bytes; the remainder becomes the payload without copying. ok is false
// for truncated frames.
func Deserialize(b []byte) (m Message, ok bool) {
	if len(b) < HeaderSize {
		return Message{}, false
	}

	return Message{
		ReqID:   binary.BigEndian.Uint32(b),
		Payload: b[HeaderSize:],
	}, true
}
