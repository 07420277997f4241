package identifier_test

import (
	"net/netip"
	"testing"

	"github.com/sabouaram/linxipc/identifier"
)

func TestPathEquality(t *testing.T) {
	a := identifier.Path("svc")
	b := identifier.Path("svc")
	c := identifier.Path("other")

	if !a.Equal(b) {
		t.Error("equal path identifiers compared unequal")
	}
	if a.Equal(c) {
		t.Error("different path identifiers compared equal")
	}
}

func TestPathAndPortNeverEqual(t *testing.T) {
	p := identifier.Path("svc")
	port := identifier.Port(netip.MustParseAddr("10.0.0.1"), 9000)

	if p.Equal(port) || port.Equal(p) {
		t.Error("identifiers of different variants compared equal")
	}
}

func TestPortEqualityUnrestricted(t *testing.T) {
	a := identifier.Port(netip.MustParseAddr("10.0.0.1"), 9000)
	b := identifier.Port(netip.MustParseAddr("10.0.0.1"), 9000)
	c := identifier.Port(netip.MustParseAddr("10.0.0.2"), 9000)

	if !a.Equal(b) {
		t.Error("identical unrestricted ip:port compared unequal")
	}
	if a.Equal(c) {
		t.Error("different ip, same port, compared equal for unrestricted identifiers")
	}
}

func TestPortEqualityRestricted(t *testing.T) {
	// For any port p and any ips a1, a2: {multicast, p} == {a1, p}.
	multi := identifier.Port(netip.MustParseAddr("239.0.0.1"), 9000)
	other := identifier.Port(netip.MustParseAddr("10.0.0.5"), 9000)
	diffPort := identifier.Port(netip.MustParseAddr("10.0.0.5"), 9001)

	if !multi.Equal(other) {
		t.Error("restricted identifier did not compare equal by port alone")
	}
	if multi.Equal(diffPort) {
		t.Error("restricted identifiers with different ports compared equal")
	}
}

func TestIsMulticast(t *testing.T) {
	tests := []struct {
		ip  string
		exp bool
	}{
		{"224.0.0.1", true},
		{"239.255.255.250", true},
		{"239.0.0.1", true},
		{"240.0.0.1", false},
		{"10.0.0.1", false},
		{"255.255.255.255", false},
	}

	for _, tc := range tests {
		addr := netip.MustParseAddr(tc.ip)
		if got := identifier.IsMulticast(addr); got != tc.exp {
			t.Errorf("IsMulticast(%s) = %v, want %v", tc.ip, got, tc.exp)
		}
	}
}

func TestIsBroadcast(t *testing.T) {
	if !identifier.IsBroadcast(netip.MustParseAddr("255.255.255.255")) {
		t.Error("255.255.255.255 not recognized as broadcast")
	}
	if identifier.IsBroadcast(netip.MustParseAddr("255.255.255.254")) {
		t.Error("non-broadcast address recognized as broadcast")
	}
}

func TestRestrictedFlagSetAtConstruction(t *testing.T) {
	m := identifier.Port(netip.MustParseAddr("224.0.0.5"), 1234)
	if !m.Restricted() {
		t.Error("multicast identifier not flagged restricted")
	}

	u := identifier.Port(netip.MustParseAddr("10.0.0.5"), 1234)
	if u.Restricted() {
		t.Error("unicast identifier incorrectly flagged restricted")
	}
}
