package selector_test

import (
	"net/netip"
	"testing"

	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/selector"
)

func TestSetMatchesWildcardOnEmpty(t *testing.T) {
	var s selector.Set
	if !s.Matches(1) || !s.Matches(0xFFFFFFFF) {
		t.Error("empty selector did not match arbitrary request id")
	}
}

func TestSetMatchesMembership(t *testing.T) {
	s := selector.Set{1, 2, 3}
	if !s.Matches(2) {
		t.Error("selector did not match member request id")
	}
	if s.Matches(4) {
		t.Error("selector matched non-member request id")
	}
}

func TestMatchPredicate(t *testing.T) {
	alice := identifier.Path("alice")
	bob := identifier.Path("bob")

	tests := []struct {
		nam   string
		reqID uint32
		from  identifier.Identifier
		sel   selector.Set
		exp   *identifier.Identifier
		want  bool
	}{
		{"empty selector, no expected sender", 9, alice, nil, nil, true},
		{"selector matches, no expected sender", 1, alice, selector.Set{1, 2}, nil, true},
		{"selector rejects", 5, alice, selector.Set{1, 2}, nil, false},
		{"expected sender matches", 1, alice, nil, &alice, true},
		{"expected sender mismatches", 1, bob, nil, &alice, false},
		{"both constraints satisfied", 1, alice, selector.Set{1}, &alice, true},
		{"selector ok but sender mismatches", 1, bob, selector.Set{1}, &alice, false},
	}

	for _, tc := range tests {
		t.Run(tc.nam, func(t *testing.T) {
			got := selector.Match(tc.reqID, tc.from, tc.sel, tc.exp)
			if got != tc.want {
				t.Errorf("Match() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatchRestrictedSenderEquality(t *testing.T) {
	multi := identifier.Port(netip.MustParseAddr("239.0.0.1"), 7000)
	unicast := identifier.Port(netip.MustParseAddr("10.0.0.9"), 7000)

	if !selector.Match(1, unicast, nil, &multi) {
		t.Error("restricted expected sender should match any origin on the same port")
	}
}
