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

package main

import (
	"encoding/binary"
	"errors"
	"net/netip"

	"github.com/sabouaram/linxipc/message"
)

// Request ids for the service-discovery protocol, defined as offsets from
// message.SigBase like the ping ids; unlike those, they sit above it, in
// the application range.
const (
	discoveryReq  uint32 = message.SigBase + 0x01
	discoveryRsp  uint32 = message.SigBase + 0x02
	registerReq   uint32 = message.SigBase + 0x03
	registerRsp   uint32 = message.SigBase + 0x04
	unregisterReq uint32 = message.SigBase + 0x05
	unregisterRsp uint32 = message.SigBase + 0x06
)

var errTruncatedPayload = errors.New("ipcdiscover: truncated payload")

// encodeString writes a length-prefixed (1 byte) name, capped at 255
// bytes, which is plenty for a service name.
func encodeString(buf []byte, s string) []byte {
	if len(s) > 255 {
		s = s[:255]
	}
	buf = append(buf, byte(len(s)))
	return append(buf, s...)
}

func decodeString(b []byte) (s string, rest []byte, err error) {
	if len(b) < 1 {
		return "", nil, errTruncatedPayload
	}
	n := int(b[0])
	if len(b) < 1+n {
		return "", nil, errTruncatedPayload
	}
	return string(b[1 : 1+n]), b[1+n:], nil
}

func encodeDiscoveryRequest(serviceName string) message.Message {
	return message.New(discoveryReq, encodeString(nil, serviceName))
}

func decodeDiscoveryRequest(m message.Message) (serviceName string, err error) {
	serviceName, _, err = decodeString(m.Payload)
	return serviceName, err
}

// encodeDiscoveryResponse packs addr and port. The not-found reply is
// built from the zero netip.Addr and port 0; decodeDiscoveryResponse
// reports not found for an empty ip string or a zero port.
func encodeDiscoveryResponse(addr netip.Addr, port uint16) message.Message {
	buf := make([]byte, 0, 7)
	buf = encodeString(buf, addr.String())
	buf = binary.BigEndian.AppendUint16(buf, port)
	return message.New(discoveryRsp, buf)
}

func decodeDiscoveryResponse(m message.Message) (addr netip.Addr, port uint16, found bool, err error) {
	ipStr, rest, err := decodeString(m.Payload)
	if err != nil {
		return netip.Addr{}, 0, false, err
	}
	if len(rest) < 2 {
		return netip.Addr{}, 0, false, errTruncatedPayload
	}
	port = binary.BigEndian.Uint16(rest)
	if ipStr == "" || port == 0 {
		return netip.Addr{}, 0, false, nil
	}
	addr, err = netip.ParseAddr(ipStr)
	if err != nil {
		return netip.Addr{}, 0, false, err
	}
	return addr, port, true, nil
}

func encodeRegisterRequest(serviceName string, port uint16) message.Message {
	buf := encodeString(nil, serviceName)
	buf = binary.BigEndian.AppendUint16(buf, port)
	return message.New(registerReq, buf)
}

func decodeRegisterRequest(m message.Message) (serviceName string, port uint16, err error) {
	serviceName, rest, err := decodeString(m.Payload)
	if err != nil {
		return "", 0, err
	}
	if len(rest) < 2 {
		return "", 0, errTruncatedPayload
	}
	return serviceName, binary.BigEndian.Uint16(rest), nil
}

func encodeUnregisterRequest(serviceName string) message.Message {
	return message.New(unregisterReq, encodeString(nil, serviceName))
}

func decodeUnregisterRequest(m message.Message) (serviceName string, err error) {
	serviceName, _, err = decodeString(m.Payload)
	return serviceName, err
}

func encodeSuccessResponse(reqID uint32, success bool) message.Message {
	v := byte(0)
	if success {
		v = 1
	}
	return message.New(reqID, []byte{v})
}

func decodeSuccessResponse(m message.Message) bool {
	return len(m.Payload) > 0 && m.Payload[0] == 1
}
