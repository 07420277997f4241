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

// Package identifier models the sender/peer address carried end to end in
// received-message envelopes: either a Unix abstract-namespace path name,
// or an IPv4 ip:port pair. Equality is total and closed over the two
// variants (§3, §4.9 of the design).
package identifier

import (
	"fmt"
	"net/netip"
)

// Kind distinguishes the two Identifier variants.
type Kind uint8

const (
	// KindPath is an abstract Unix-domain socket name.
	KindPath Kind = iota
	// KindPort is an ip:port pair, possibly restricted (broadcast/multicast).
	KindPort
)

// Identifier is a tagged sum of a path name and an ip:port pair.
// Different variants never compare equal.
type Identifier struct {
	kind       Kind
	path       string
	addr       netip.Addr
	port       uint16
	restricted bool
}

// Path builds a path Identifier for an abstract Unix socket name.
func Path(name string) Identifier {
	return Identifier{kind: KindPath, path: name}
}

// Port builds a port Identifier for an IPv4 address and port. restricted
// is computed from the address: true if it is multicast (224.0.0.0/4) or
// the limited broadcast address 255.255.255.255.
func Port(addr netip.Addr, port uint16) Identifier {
	return Identifier{
		kind:       KindPort,
		addr:       addr,
		port:       port,
		restricted: IsMulticast(addr) || IsBroadcast(addr),
	}
}

// IsMulticast reports whether addr falls in 224.0.0.0/4.
func IsMulticast(addr netip.Addr) bool {
	return addr.Is4() && addr.AsSlice()[0]&0xF0 == 0xE0
}

// IsBroadcast reports whether addr is the limited broadcast address.
func IsBroadcast(addr netip.Addr) bool {
	return addr == netip.MustParseAddr("255.255.255.255")
}

// Kind returns which variant id represents.
func (id Identifier) Kind() Kind { return id.kind }

// Name returns the path name; only meaningful when Kind() == KindPath.
func (id Identifier) Name() string { return id.path }

// Addr returns the IPv4 address; only meaningful when Kind() == KindPort.
func (id Identifier) Addr() netip.Addr { return id.addr }

// PortNum returns the port number; only meaningful when Kind() == KindPort.
func (id Identifier) PortNum() uint16 { return id.port }

// Restricted reports whether this port identifier addresses a
// broadcast/multicast group.
func (id Identifier) Restricted() bool { return id.restricted }

// Equal implements the polymorphic equality of §3: identifiers of
// different variants are never equal; two port identifiers compare by
// port alone if either side is restricted, else by ip and port; two
// path identifiers compare by name.
func (id Identifier) Equal(other Identifier) bool {
	if id.kind != other.kind {
		return false
	}

	switch id.kind {
	case KindPath:
		return id.path == other.path
	case KindPort:
		if id.restricted || other.restricted {
			return id.port == other.port
		}
		return id.addr == other.addr && id.port == other.port
	default:
		return false
	}
}

// String renders a human-readable form, useful for log fields.
func (id Identifier) String() string {
	switch id.kind {
	case KindPath:
		return id.path
	case KindPort:
		return fmt.Sprintf("%s:%d", id.addr, id.port)
	default:
		return "<invalid identifier>"
	}
}
