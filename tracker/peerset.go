// Copyright (c) 2025-2026 The Quornet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tracker

import (
	"sort"

	"github.com/quornet/peernet/ident"
)

// peerSets tracks a bounded sliding window of authorized peer sets keyed by
// a monotonically-intended epoch index, such as a blockchain height.  The
// sequence stored for an index is always sorted by identity and free of
// duplicates so that every node derives the same bit positions for gossip.
//
// This is plain data owned by the tracker's request handler goroutine and
// requires no locking of its own.
type peerSets struct {
	maxSets int
	indices []uint64 // ascending
	sets    map[uint64][]ident.Identity
}

// newPeerSets returns an empty authorized peer set window that retains up to
// maxSets registered indices.
func newPeerSets(maxSets int) *peerSets {
	return &peerSets{
		maxSets: maxSets,
		sets:    make(map[uint64][]ident.Identity),
	}
}

// register stores the provided identities as the authorized peer set at the
// given index, replacing any set previously registered at that index.  The
// input does not need to be sorted and may contain duplicates.  Once the
// retention bound is exceeded, the lowest retained indices are evicted and
// returned.
func (ps *peerSets) register(index uint64, peers []ident.Identity) []uint64 {
	sorted := make([]ident.Identity, len(peers))
	copy(sorted, peers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Less(sorted[j])
	})
	dedup := sorted[:0]
	for i, id := range sorted {
		if i > 0 && id == sorted[i-1] {
			continue
		}
		dedup = append(dedup, id)
	}

	if _, exists := ps.sets[index]; !exists {
		pos := sort.Search(len(ps.indices), func(i int) bool {
			return ps.indices[i] >= index
		})
		ps.indices = append(ps.indices, 0)
		copy(ps.indices[pos+1:], ps.indices[pos:])
		ps.indices[pos] = index
	}
	ps.sets[index] = dedup

	var evicted []uint64
	for len(ps.indices) > ps.maxSets {
		oldest := ps.indices[0]
		ps.indices = ps.indices[1:]
		delete(ps.sets, oldest)
		evicted = append(evicted, oldest)
	}
	return evicted
}

// sorted returns the sorted authorized peer set registered at the given
// index along with whether the index is currently retained.
func (ps *peerSets) sorted(index uint64) ([]ident.Identity, bool) {
	set, ok := ps.sets[index]
	return set, ok
}

// latest returns the highest retained index and its sorted authorized peer
// set.  The second return is false when no sets have been registered.
func (ps *peerSets) latest() (uint64, []ident.Identity, bool) {
	if len(ps.indices) == 0 {
		return 0, nil, false
	}
	index := ps.indices[len(ps.indices)-1]
	return index, ps.sets[index], true
}

// position returns the bit position of the identity within the sorted
// authorized peer set at the given index.
func (ps *peerSets) position(index uint64, id ident.Identity) (int, bool) {
	set, ok := ps.sets[index]
	if !ok {
		return 0, false
	}
	pos := sort.Search(len(set), func(i int) bool {
		return !set[i].Less(id)
	})
	if pos == len(set) || set[pos] != id {
		return 0, false
	}
	return pos, true
}

// isAuthorized returns whether the identity is present in any retained
// authorized peer set.
func (ps *peerSets) isAuthorized(id ident.Identity) bool {
	for _, index := range ps.indices {
		if _, ok := ps.position(index, id); ok {
			return true
		}
	}
	return false
}
