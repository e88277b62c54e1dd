package vlantable

import (
	"fmt"

	"github.com/henderiw/intervalset/pkg/idxtable"
	"github.com/henderiw/intervalset/pkg/intervalset"
	"k8s.io/apimachinery/pkg/labels"
)

type VLANTable interface {
	Get(id int64) (labels.Set, error)
	Claim(id int64, d labels.Set) error
	ClaimDynamic(d labels.Set) (int64, error)
	ClaimRange(start, size int64, d labels.Set) error
	ClaimSize(size int64, d labels.Set) ([]int64, error)
	Release(id int64) error
	Update(id int64, d labels.Set) error

	Count() int
	Has(id int64) bool

	IsFree(id int64) bool
	FindFree() (int64, error)

	GetAll() map[int64]labels.Set
	GetByLabel(selector labels.Selector) map[int64]labels.Set
	FreeSet() intervalset.IntervalSet[int64]
}

const (
	untaggedVLAN = 0
	defaultVLAN  = 1
	maxVLAN      = 4095
)

// Reserved holds the VLANs that can never be claimed.
var Reserved = intervalset.FromPairs([][2]int64{
	{untaggedVLAN, defaultVLAN},
	{maxVLAN, maxVLAN},
})

var initEntries = map[int64]labels.Set{
	untaggedVLAN: map[string]string{"type": "untagged", "status": "reserved"},
	defaultVLAN:  map[string]string{"type": "untagged", "status": "reserved"},
	maxVLAN:      map[string]string{"type": "untagged", "status": "reserved"},
}

func New() (VLANTable, error) {
	t, err := idxtable.NewTable[labels.Set](
		maxVLAN+1,
		initEntries,
		func(id int64) error {
			if !Reserved.Contains(id) {
				return nil
			}
			switch id {
			case untaggedVLAN:
				return fmt.Errorf("VLAN %d is the untagged VLAN, cannot be added to the database", id)
			case defaultVLAN:
				return fmt.Errorf("VLAN %d is the default VLAN, cannot be added to the database", id)
			}
			return fmt.Errorf("VLAN %d is reserved, cannot be added to the database", id)
		},
	)
	if err != nil {
		return nil, err
	}
	return &vlanTable{
		table: t,
	}, nil
}

type vlanTable struct {
	table idxtable.Table[labels.Set]
}

func (r *vlanTable) Get(id int64) (labels.Set, error) {
	return r.table.Get(id)
}

func (r *vlanTable) Claim(id int64, d labels.Set) error {
	if !r.table.IsFree(id) {
		return fmt.Errorf("id %d is already claimed", id)
	}
	return r.table.Claim(id, d)
}

func (r *vlanTable) ClaimDynamic(d labels.Set) (int64, error) {
	return r.table.ClaimDynamic(d)
}

func (r *vlanTable) ClaimRange(start, size int64, d labels.Set) error {
	return r.table.ClaimRange(start, size, d)
}

func (r *vlanTable) ClaimSize(size int64, d labels.Set) ([]int64, error) {
	return r.table.ClaimSize(size, d)
}

func (r *vlanTable) Release(id int64) error {
	return r.table.Release(id)
}

func (r *vlanTable) Update(id int64, d labels.Set) error {
	if r.table.IsFree(id) {
		return fmt.Errorf("id %d is not claimed", id)
	}
	return r.table.Update(id, d)
}

func (r *vlanTable) Count() int {
	return r.table.Count()
}

func (r *vlanTable) Has(id int64) bool {
	return r.table.Has(id)
}

func (r *vlanTable) IsFree(id int64) bool {
	return r.table.IsFree(id)
}

func (r *vlanTable) FindFree() (int64, error) {
	return r.table.FindFree()
}

func (r *vlanTable) GetAll() map[int64]labels.Set {
	return r.table.GetAll()
}

func (r *vlanTable) GetByLabel(selector labels.Selector) map[int64]labels.Set {
	entries := map[int64]labels.Set{}

	iter := r.table.Iterate()
	for iter.Next() {
		if selector.Matches(iter.Value()) {
			entries[iter.ID()] = iter.Value()
		}
	}
	return entries
}

// FreeSet returns the VLANs that can still be claimed.
func (r *vlanTable) FreeSet() intervalset.IntervalSet[int64] {
	return r.table.FreeSet()
}
