package iptable

import (
	"net/netip"
	"testing"

	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/henderiw/intervalset/pkg/intervalset"
	"github.com/tj/assert"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
)

func TestClaim(t *testing.T) {
	cases := map[string]struct {
		ipRange           string
		newSuccessEntries map[string]table.Route
		newFailedEntries  map[string]table.Route
		expectedEntries   int
		expectedFree      string
		expectedFreeSet   []string
	}{
		"Normal": {
			ipRange: "10.0.0.10-10.0.0.20",
			newSuccessEntries: map[string]table.Route{
				"10.0.0.10": {},
				"10.0.0.11": {},
			},
			newFailedEntries: map[string]table.Route{
				"10.0.0.21": {},
				"10.0.0.9":  {},
				"2001::1":   {},
				"invalid":   {},
			},
			expectedEntries: 2,
			expectedFree:    "10.0.0.12",
			expectedFreeSet: []string{"10.0.0.12-10.0.0.20"},
		},
		"Gap": {
			ipRange: "10.0.0.254-10.0.1.3",
			newSuccessEntries: map[string]table.Route{
				"10.0.0.255": {},
				"10.0.1.1":   {},
			},
			expectedEntries: 2,
			expectedFree:    "10.0.0.254",
			expectedFreeSet: []string{"10.0.0.254-10.0.0.254", "10.0.1.0-10.0.1.0", "10.0.1.2-10.0.1.3"},
		},
		"IPv6": {
			ipRange: "2001:db8::fffe-2001:db8::1:1",
			newSuccessEntries: map[string]table.Route{
				"2001:db8::fffe": {},
			},
			newFailedEntries: map[string]table.Route{
				"10.0.0.1": {},
			},
			expectedEntries: 1,
			expectedFree:    "2001:db8::ffff",
			expectedFreeSet: []string{"2001:db8::ffff-2001:db8::1:1"},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ipRange, err := netipx.ParseIPRange(tc.ipRange)
			assert.NoError(t, err)

			r, err := New(ipRange.From(), ipRange.To())
			assert.NoError(t, err)

			for addr, d := range tc.newSuccessEntries {
				assert.NoError(t, r.Claim(addr, d))
			}
			for addr, d := range tc.newFailedEntries {
				assert.Error(t, r.Claim(addr, d))
			}
			for addr := range tc.newSuccessEntries {
				if !r.Has(addr) {
					t.Errorf("%s expecting success claim entry: %s\n", name, addr)
				}
				assert.Error(t, r.Claim(addr, table.Route{}))
			}
			for addr := range tc.newFailedEntries {
				if r.Has(addr) {
					t.Errorf("%s no expecting failed claim entry: %s\n", name, addr)
				}
			}
			assert.Equal(t, tc.expectedEntries, r.Count())
			assert.Len(t, r.GetAll(), tc.expectedEntries)
			assert.Len(t, r.GetByLabel(labels.Everything()), tc.expectedEntries)

			a, err := r.FindFree()
			assert.NoError(t, err)
			assert.Equal(t, tc.expectedFree, a.String())

			free, err := r.FreeIPSet()
			assert.NoError(t, err)
			got := []string{}
			for _, rng := range free.Ranges() {
				got = append(got, rng.String())
			}
			assert.Equal(t, tc.expectedFreeSet, got)
		})
	}
}

func TestClaimDynamic(t *testing.T) {
	r, err := New(netip.MustParseAddr("192.168.0.1"), netip.MustParseAddr("192.168.0.3"))
	assert.NoError(t, err)

	for _, want := range []string{"192.168.0.1", "192.168.0.2", "192.168.0.3"} {
		addr, err := r.ClaimDynamic(table.Route{})
		assert.NoError(t, err)
		assert.Equal(t, want, addr.String())
	}
	_, err = r.ClaimDynamic(table.Route{})
	assert.Error(t, err)
	_, err = r.FindFree()
	assert.Error(t, err)

	assert.NoError(t, r.Update("192.168.0.2", table.Route{}))
	assert.NoError(t, r.Release("192.168.0.2"))
	assert.True(t, r.IsFree("192.168.0.2"))
	assert.False(t, r.IsFree("192.168.0.9"))
	assert.Error(t, r.Update("192.168.0.2", table.Route{}))
	_, err = r.Get("192.168.0.2")
	assert.Error(t, err)
	_, err = r.Get("192.168.0.1")
	assert.NoError(t, err)

	_, err = New(netip.MustParseAddr("10.0.0.2"), netip.MustParseAddr("10.0.0.1"))
	assert.Error(t, err)
	_, err = New(netip.MustParseAddr("::"), netip.MustParseAddr("ffff::"))
	assert.Error(t, err)
}

func TestIPSetConversion(t *testing.T) {
	var b netipx.IPSetBuilder
	b.AddPrefix(netip.MustParsePrefix("10.0.0.0/24"))
	b.AddRange(netipx.MustParseIPRange("10.0.1.0-10.0.1.9"))
	b.Add(netip.MustParseAddr("192.168.1.1"))
	ipset, err := b.IPSet()
	assert.NoError(t, err)

	s, err := FromIPSet(ipset)
	assert.NoError(t, err)
	assert.Equal(t, [][2]uint32{{0x0a000000, 0x0a000109}, {0xc0a80101, 0xc0a80101}}, s.Pairs())
	assert.Equal(t, uint64(256+10+1), s.Size())

	back, err := ToIPSet(s)
	assert.NoError(t, err)
	assert.True(t, ipset.Equal(back))

	// set algebra on addresses
	other, err := FromIPSet(mustIPSet(t, "10.0.0.128/25"))
	assert.NoError(t, err)
	diff, err := ToIPSet(s.Difference(other))
	assert.NoError(t, err)
	assert.True(t, diff.Contains(netip.MustParseAddr("10.0.0.127")))
	assert.False(t, diff.Contains(netip.MustParseAddr("10.0.0.128")))
	assert.True(t, diff.Contains(netip.MustParseAddr("10.0.1.0")))

	empty, err := ToIPSet(intervalset.Empty[uint32]())
	assert.NoError(t, err)
	assert.Empty(t, empty.Ranges())

	_, err = FromIPSet(mustIPSet(t, "2001:db8::/64"))
	assert.Error(t, err)
	_, err = FromIPSet(mustIPSet(t, "255.255.255.0/24"))
	assert.Error(t, err)
}

func mustIPSet(t *testing.T, prefix string) *netipx.IPSet {
	t.Helper()
	var b netipx.IPSetBuilder
	b.AddPrefix(netip.MustParsePrefix(prefix))
	ipset, err := b.IPSet()
	assert.NoError(t, err)
	return ipset
}
