// Package antichain implements the antichain of minimal (a, B-set) pairs
// used by both inclusion engines for termination and membership pruning.
package antichain

import "github.com/limigo/limigo/value"

// entry is one (B-set, dirty) pair kept for a given A-state.
type entry[B value.Value[B]] struct {
	set   *value.Set[B]
	dirty bool
}

// bucket is the list of entries for a single A-state, plus the state
// itself (kept so Size/CleanDirty can iterate without needing A to be a
// usable Go map key on its own).
type bucket[A value.Value[A], B value.Value[B]] struct {
	state   A
	entries []entry[B]
}

// Antichain maps an A-state to a sequence of minimal B-sets. The invariant
// maintained by Add: for any two entries (a,b1) and (a,b2) of the same a,
// neither b1 ⊆ b2 nor b2 ⊆ b1.
type Antichain[A value.Value[A], B value.Value[B]] struct {
	buckets map[uint64][]*bucket[A, B]
}

// New creates an empty antichain.
func New[A value.Value[A], B value.Value[B]]() *Antichain[A, B] {
	return &Antichain[A, B]{buckets: make(map[uint64][]*bucket[A, B])}
}

func (ac *Antichain[A, B]) bucketFor(a A, create bool) *bucket[A, B] {
	h := a.Hash()
	for _, b := range ac.buckets[h] {
		if b.state.Equal(a) {
			return b
		}
	}
	if !create {
		return nil
	}
	b := &bucket[A, B]{state: a}
	ac.buckets[h] = append(ac.buckets[h], b)
	return b
}

// AddUnchecked appends (b, dirty) to a's bucket without enforcing the
// minimality invariant. Used only for initial seeding.
func (ac *Antichain[A, B]) AddUnchecked(a A, b *value.Set[B], dirty bool) {
	bucket := ac.bucketFor(a, true)
	bucket.entries = append(bucket.entries, entry[B]{set: b, dirty: dirty})
}

// Add inserts (a, b) preserving the antichain invariant: if an existing
// entry b' for a satisfies b' ⊆ b, nothing changes (the smaller B-set
// already present is the stronger obligation). Otherwise every existing
// entry that is a strict superset of b is removed, then (b, dirty) is
// appended.
func (ac *Antichain[A, B]) Add(a A, b *value.Set[B], dirty bool) {
	bucket := ac.bucketFor(a, true)
	for _, e := range bucket.entries {
		if e.set.SubsetOf(b) {
			// An existing entry already subsumes b: leave the bucket
			// untouched.
			return
		}
	}
	kept := bucket.entries[:0]
	for _, e := range bucket.entries {
		if !b.SubsetOf(e.set) {
			kept = append(kept, e)
		}
		// else: e.set is a strict (or equal) superset of b, drop it.
	}
	bucket.entries = append(kept, entry[B]{set: b, dirty: dirty})
}

// Contains reports whether some existing entry (a, b') for a satisfies
// b' ⊆ b.
func (ac *Antichain[A, B]) Contains(a A, b *value.Set[B]) bool {
	bucket := ac.bucketFor(a, false)
	if bucket == nil {
		return false
	}
	for _, e := range bucket.entries {
		if e.set.SubsetOf(b) {
			return true
		}
	}
	return false
}

// CleanDirty removes every entry marked dirty, across all A-states.
func (ac *Antichain[A, B]) CleanDirty() {
	for _, bs := range ac.buckets {
		for _, bucket := range bs {
			kept := bucket.entries[:0]
			for _, e := range bucket.entries {
				if !e.dirty {
					kept = append(kept, e)
				}
			}
			bucket.entries = kept
		}
	}
}

// Size returns the number of distinct A-states tracked.
func (ac *Antichain[A, B]) Size() int {
	n := 0
	for _, bs := range ac.buckets {
		n += len(bs)
	}
	return n
}
