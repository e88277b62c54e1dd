package iptable

import (
	"fmt"
	"math/big"
	"net/netip"

	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/henderiw/intervalset/pkg/idxtable"
	"github.com/henderiw/intervalset/pkg/interval"
	"github.com/henderiw/intervalset/pkg/intervalset"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
)

type IPTable interface {
	Get(addr string) (table.Route, error)
	Claim(addr string, d table.Route) error
	ClaimDynamic(d table.Route) (netip.Addr, error)
	Release(addr string) error
	Update(addr string, d table.Route) error

	Count() int
	Has(addr string) bool

	IsFree(addr string) bool
	FindFree() (netip.Addr, error)

	GetAll() table.Routes
	GetByLabel(selector labels.Selector) table.Routes
	FreeIPSet() (*netipx.IPSet, error)
}

// New returns a table of the addresses from..to, both included.
func New(from, to netip.Addr) (IPTable, error) {
	ipRange := netipx.IPRangeFrom(from, to)
	if !ipRange.IsValid() {
		return nil, fmt.Errorf("invalid ip range from %s to %s", from, to)
	}
	n := numIPs(from, to)
	if !n.IsInt64() {
		return nil, fmt.Errorf("ip range from %s to %s holds too many addresses", from, to)
	}
	t, err := idxtable.NewTable[table.Route](n.Int64(), nil, nil)
	if err != nil {
		return nil, err
	}
	return &ipTable{
		table:   t,
		ipRange: ipRange,
	}, nil
}

type ipTable struct {
	table   idxtable.Table[table.Route]
	ipRange netipx.IPRange
}

func (r *ipTable) Get(addr string) (table.Route, error) {
	id, err := r.index(addr)
	if err != nil {
		return table.Route{}, err
	}
	return r.table.Get(id)
}

func (r *ipTable) Claim(addr string, d table.Route) error {
	id, err := r.index(addr)
	if err != nil {
		return err
	}
	if !r.table.IsFree(id) {
		return fmt.Errorf("claim failed ip %s already claimed", addr)
	}
	return r.table.Claim(id, d)
}

func (r *ipTable) ClaimDynamic(d table.Route) (netip.Addr, error) {
	id, err := r.table.ClaimDynamic(d)
	if err != nil {
		return netip.Addr{}, err
	}
	return calculateIPFromIndex(r.ipRange.From(), id), nil
}

func (r *ipTable) Release(addr string) error {
	id, err := r.index(addr)
	if err != nil {
		return err
	}
	return r.table.Release(id)
}

func (r *ipTable) Update(addr string, d table.Route) error {
	id, err := r.index(addr)
	if err != nil {
		return err
	}
	if r.table.IsFree(id) {
		return fmt.Errorf("update failed ip %s not claimed", addr)
	}
	return r.table.Update(id, d)
}

func (r *ipTable) Count() int {
	return r.table.Count()
}

func (r *ipTable) Has(addr string) bool {
	id, err := r.index(addr)
	if err != nil {
		return false
	}
	return r.table.Has(id)
}

func (r *ipTable) IsFree(addr string) bool {
	id, err := r.index(addr)
	if err != nil {
		return false
	}
	return r.table.IsFree(id)
}

func (r *ipTable) FindFree() (netip.Addr, error) {
	id, err := r.table.FindFree()
	if err != nil {
		return netip.Addr{}, err
	}
	return calculateIPFromIndex(r.ipRange.From(), id), nil
}

// GetAll returns the claimed routes in ascending address order.
func (r *ipTable) GetAll() table.Routes {
	var routes table.Routes
	iter := r.table.Iterate()
	for iter.Next() {
		routes = append(routes, iter.Value())
	}
	return routes
}

func (r *ipTable) GetByLabel(selector labels.Selector) table.Routes {
	var routes table.Routes

	iter := r.table.Iterate()
	for iter.Next() {
		route := iter.Value()
		if selector.Matches(route.Labels()) {
			routes = append(routes, route)
		}
	}
	return routes
}

// FreeIPSet returns the addresses of the range that are not claimed.
func (r *ipTable) FreeIPSet() (*netipx.IPSet, error) {
	var b netipx.IPSetBuilder
	for i := range r.table.FreeSet().All() {
		b.AddRange(netipx.IPRangeFrom(
			calculateIPFromIndex(r.ipRange.From(), i.Lower()),
			calculateIPFromIndex(r.ipRange.From(), i.Upper()),
		))
	}
	return b.IPSet()
}

// index validates addr and returns its offset in the range.
func (r *ipTable) index(addr string) (int64, error) {
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return 0, fmt.Errorf("ip address %s is invalid", addr)
	}
	if !r.ipRange.Contains(ip) {
		return 0, fmt.Errorf("ip address %s, does not fit in the range from %s to %s", addr, r.ipRange.From().String(), r.ipRange.To().String())
	}
	return new(big.Int).Sub(ipToInt(ip), ipToInt(r.ipRange.From())).Int64(), nil
}

func numIPs(startIP, endIP netip.Addr) *big.Int {
	diff := new(big.Int).Sub(ipToInt(endIP), ipToInt(startIP))
	return diff.Add(diff, big.NewInt(1))
}

func ipToInt(ip netip.Addr) *big.Int {
	bytes := ip.As16()
	return new(big.Int).SetBytes(bytes[:])
}

func calculateIPFromIndex(startIP netip.Addr, id int64) netip.Addr {
	ipInt := new(big.Int).Add(ipToInt(startIP), big.NewInt(id))
	var ip16 [16]byte
	ipInt.FillBytes(ip16[:])

	addr := netip.AddrFrom16(ip16)
	if startIP.Is4() {
		return addr.Unmap()
	}
	return addr
}

// FromIPSet returns the IPv4 addresses of ipset as an interval set.
// 255.255.255.255 is the upper sentinel of a uint32 set and cannot be
// represented.
func FromIPSet(ipset *netipx.IPSet) (intervalset.IntervalSet[uint32], error) {
	var s intervalset.IntervalSet[uint32]
	var pairs [][2]uint32
	for _, rng := range ipset.Ranges() {
		if !rng.From().Is4() {
			return s, fmt.Errorf("ip range %s is not an IPv4 range", rng)
		}
		lb, ub := addrToUint32(rng.From()), addrToUint32(rng.To())
		if ub > interval.MaxValue[uint32]() {
			return s, fmt.Errorf("ip range %s exceeds the representable addresses", rng)
		}
		pairs = append(pairs, [2]uint32{lb, ub})
	}
	return intervalset.FromPairs(pairs), nil
}

// ToIPSet returns the IPv4 addresses of s.
func ToIPSet(s intervalset.IntervalSet[uint32]) (*netipx.IPSet, error) {
	var b netipx.IPSetBuilder
	for i := range s.All() {
		b.AddRange(netipx.IPRangeFrom(uint32ToAddr(i.Lower()), uint32ToAddr(i.Upper())))
	}
	return b.IPSet()
}

func addrToUint32(ip netip.Addr) uint32 {
	b := ip.As4()
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func uint32ToAddr(v uint32) netip.Addr {
	return netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}
