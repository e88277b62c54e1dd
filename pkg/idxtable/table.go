package idxtable

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/henderiw/intervalset/pkg/interval"
	"github.com/henderiw/intervalset/pkg/intervalset"
)

type Table[T any] interface {
	Get(id int64) (T, error)
	Claim(id int64, d T) error
	ClaimDynamic(d T) (int64, error)
	ClaimRange(start, size int64, d T) error
	ClaimSize(size int64, d T) ([]int64, error)
	Release(id int64) error
	ReleaseRange(start, size int64) error
	Update(id int64, d T) error

	Iterate() *Iterator[T]
	IterateFree() *Iterator[T]

	Count() int
	Has(id int64) bool

	IsFree(id int64) bool
	FindFree() (int64, error)
	FindFreeRange(start, size int64) (map[int64]T, error)
	FindFreeSize(size int64) (map[int64]T, error)

	GetAll() map[int64]T
	ClaimedSet() intervalset.IntervalSet[int64]
	FreeSet() intervalset.IntervalSet[int64]
}

type ValidationFn func(id int64) error

// NewTable returns a table of the ids [0, s). The init entries bypass the
// validation function; all their errors are returned together.
func NewTable[T any](s int64, initEntries map[int64]T, v ValidationFn) (Table[T], error) {
	if s <= 0 {
		return nil, fmt.Errorf("table size must be positive, got: %d", s)
	}
	r := &table[T]{
		m:          new(sync.RWMutex),
		table:      map[int64]T{},
		space:      intervalset.New[int64](0, s-1),
		size:       s,
		validateFn: v,
	}

	var errm error
	for id, d := range initEntries {
		if err := r.add(id, d, true); err != nil {
			errm = errors.Join(errm, err)
		}
	}

	return r, errm
}

type table[T any] struct {
	m     *sync.RWMutex
	table map[int64]T
	// claimed holds the ids of table; space is [0, size).
	claimed    intervalset.IntervalSet[int64]
	space      intervalset.IntervalSet[int64]
	size       int64
	validateFn ValidationFn
}

func (r *table[T]) validate(id int64, init bool) error {
	if !r.space.Contains(id) {
		return fmt.Errorf("id %d is outside of the allowed entries: %s", id, r.space)
	}
	if r.validateFn != nil && !init {
		if err := r.validateFn(id); err != nil {
			return err
		}
	}
	return nil
}

func (r *table[T]) Get(id int64) (T, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	var d T

	if err := r.validate(id, false); err != nil {
		return d, err
	}

	d, ok := r.table[id]
	if !ok {
		return d, fmt.Errorf("no match found for: %v", id)
	}
	return d, nil
}

func (r *table[T]) Claim(id int64, d T) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(id, d, false)
}

func (r *table[T]) ClaimDynamic(d T) (int64, error) {
	r.m.Lock()
	defer r.m.Unlock()

	for i := range r.free().All() {
		for id := i.Lower(); id <= i.Upper(); id++ {
			// the validation function can still reject a free id
			if err := r.add(id, d, false); err == nil {
				return id, nil
			}
		}
	}
	return 0, fmt.Errorf("no free entry found")
}

func (r *table[T]) ClaimRange(start, size int64, d T) error {
	r.m.Lock()
	defer r.m.Unlock()

	want, err := r.findFreeRange(start, size)
	if err != nil {
		return err
	}
	return r.addSet(want, d)
}

// ClaimSize claims the first size free ids, which need not be consecutive,
// and returns them in ascending order.
func (r *table[T]) ClaimSize(size int64, d T) ([]int64, error) {
	r.m.Lock()
	defer r.m.Unlock()

	want, err := r.findFreeSize(size)
	if err != nil {
		return nil, err
	}
	if err := r.addSet(want, d); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, size)
	it := newIterator(want, r.table)
	for it.Next() {
		ids = append(ids, it.ID())
	}
	return ids, nil
}

func (r *table[T]) Release(id int64) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.delete(id)
}

func (r *table[T]) ReleaseRange(start, size int64) error {
	r.m.Lock()
	defer r.m.Unlock()

	want, err := r.rangeSet(start, size)
	if err != nil {
		return err
	}
	it := newIterator(r.claimed.Intersection(want), r.table)
	for it.Next() {
		delete(r.table, it.ID())
	}
	r.claimed = r.claimed.Difference(want)
	return nil
}

func (r *table[T]) Update(id int64, d T) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.update(id, d)
}

// Iterate returns an iterator over a snapshot of the claimed entries in
// ascending id order.
func (r *table[T]) Iterate() *Iterator[T] {
	r.m.RLock()
	defer r.m.RUnlock()

	return newIterator(r.claimed, maps.Clone(r.table))
}

// IterateFree returns an iterator over the free ids in ascending order.
func (r *table[T]) IterateFree() *Iterator[T] {
	r.m.RLock()
	defer r.m.RUnlock()

	return newIterator[T](r.free(), nil)
}

func (r *table[T]) free() intervalset.IntervalSet[int64] {
	return r.space.Difference(r.claimed)
}

func (r *table[T]) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.table)
}

func (r *table[T]) Has(id int64) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.claimed.Contains(id)
}

func (r *table[T]) IsFree(id int64) bool {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.isFree(id)
}

func (r *table[T]) isFree(id int64) bool {
	return !r.claimed.Contains(id)
}

func (r *table[T]) FindFree() (int64, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	free := r.free()
	if free.IsEmpty() {
		return 0, fmt.Errorf("no free entry found")
	}
	return free.Lower(), nil
}

func (r *table[T]) FindFreeRange(start, size int64) (map[int64]T, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	want, err := r.findFreeRange(start, size)
	if err != nil {
		return nil, err
	}
	return zeroEntries[T](want), nil
}

func (r *table[T]) rangeSet(start, size int64) (intervalset.IntervalSet[int64], error) {
	if size <= 0 {
		return intervalset.Empty[int64](), fmt.Errorf("size must be positive, got: %d", size)
	}
	want := intervalset.New(start, start+size-1)
	if !want.IsSubset(r.space) {
		return intervalset.Empty[int64](), fmt.Errorf("range %s does not fit in the allowed entries: %s", want, r.space)
	}
	return want, nil
}

func (r *table[T]) findFreeRange(start, size int64) (intervalset.IntervalSet[int64], error) {
	want, err := r.rangeSet(start, size)
	if err != nil {
		return want, err
	}
	if used := r.claimed.Intersection(want); !used.IsEmpty() {
		return intervalset.Empty[int64](), fmt.Errorf("entry %d in use in range: start: %d, end %d", used.Lower(), start, want.Upper())
	}
	return want, nil
}

func (r *table[T]) FindFreeSize(size int64) (map[int64]T, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	want, err := r.findFreeSize(size)
	if err != nil {
		return nil, err
	}
	return zeroEntries[T](want), nil
}

func (r *table[T]) findFreeSize(size int64) (intervalset.IntervalSet[int64], error) {
	if size <= 0 || size > r.size {
		return intervalset.Empty[int64](), fmt.Errorf("size %d must be within 1 and the max allowed entries: %d", size, r.size)
	}
	free := r.free()
	if free.Size() < uint64(size) {
		return intervalset.Empty[int64](), fmt.Errorf("could not find free entries that fit in size %d", size)
	}
	var want intervalset.IntervalSet[int64]
	remaining := size
	for i := range free.All() {
		n := min(int64(i.Size()), remaining)
		want.Extend(interval.New(i.Lower(), i.Lower()+n-1))
		if remaining -= n; remaining == 0 {
			break
		}
	}
	return want, nil
}

func (r *table[T]) add(id int64, d T, init bool) error {
	if err := r.validate(id, init); err != nil {
		return err
	}
	if !r.isFree(id) {
		return fmt.Errorf("entry %d already exists", id)
	}
	r.table[id] = d
	r.claimed = r.claimed.UnionValue(id)
	return nil
}

// addSet claims every id of want, which must be free. The validation
// function is checked for all ids before anything is claimed.
func (r *table[T]) addSet(want intervalset.IntervalSet[int64], d T) error {
	it := newIterator[T](want, nil)
	for it.Next() {
		if err := r.validate(it.ID(), false); err != nil {
			return err
		}
	}
	it = newIterator[T](want, nil)
	for it.Next() {
		r.table[it.ID()] = d
	}
	r.claimed = r.claimed.Union(want)
	return nil
}

func (r *table[T]) update(id int64, d T) error {
	if err := r.validate(id, false); err != nil {
		return err
	}
	if r.isFree(id) {
		return fmt.Errorf("entry %d not found", id)
	}
	r.table[id] = d
	return nil
}

func (r *table[T]) delete(id int64) error {
	if err := r.validate(id, false); err != nil {
		return err
	}
	delete(r.table, id)
	r.claimed = r.claimed.DifferenceValue(id)
	return nil
}

func (r *table[T]) GetAll() map[int64]T {
	r.m.RLock()
	defer r.m.RUnlock()

	return maps.Clone(r.table)
}

func (r *table[T]) ClaimedSet() intervalset.IntervalSet[int64] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.claimed.Clone()
}

func (r *table[T]) FreeSet() intervalset.IntervalSet[int64] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.free()
}

func zeroEntries[T any](ids intervalset.IntervalSet[int64]) map[int64]T {
	entries := make(map[int64]T, ids.Size())
	var d T
	it := newIterator[T](ids, nil)
	for it.Next() {
		entries[it.ID()] = d
	}
	return entries
}
