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

// Package errors gives the setup/validation boundary (factories, config)
// a small numeric-coded error, without threading an error object through
// the hot path: send/receive/queue operations keep returning plain ints
// or nothing-results.
package errors

// Code classifies a setup-time failure. Values are stable and may be
// tested on an error with this package's Is function.
type Code uint16

const (
	// CodeUnknown is the zero value, used only as a fallback.
	CodeUnknown Code = iota
	// CodeInvalidConfig flags a malformed or incomplete server.Config.
	CodeInvalidConfig
	// CodeTransportSetup flags an open/bind/join failure on a transport socket.
	CodeTransportSetup
	// CodeBufferTooSmall flags a serialize() call given too small a buffer.
	CodeBufferTooSmall
	// CodeInvalidAddress flags a send to an identifier the socket cannot address.
	CodeInvalidAddress
	// CodeShortWrite flags a sendto that wrote fewer bytes than requested.
	CodeShortWrite
	// CodeSystem flags an underlying syscall failure.
	CodeSystem
	// CodeServerGone flags a response attempted against a destroyed server.
	CodeServerGone
)

func (c Code) String() string {
	switch c {
	case CodeInvalidConfig:
		return "invalid config"
	case CodeTransportSetup:
		return "transport setup failure"
	case CodeBufferTooSmall:
		return "buffer too small"
	case CodeInvalidAddress:
		return "invalid address"
	case CodeShortWrite:
		return "short write"
	case CodeSystem:
		return "system error"
	case CodeServerGone:
		return "server gone"
	default:
		return "unknown error"
	}
}
