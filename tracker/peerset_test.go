// Copyright (c) 2025-2026 The Quornet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tracker

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/quornet/peernet/ident"
)

// testIdentity returns a deterministic valid identity derived from the given
// seed byte.
func testIdentity(seed byte) ident.Identity {
	priv := secp256k1.PrivKeyFromBytes([]byte{seed})
	return ident.NewSignerFromPrivateKey(priv).Identity()
}

// sortedTestIdentities returns n deterministic identities in their canonical
// sort order.
func sortedTestIdentities(n int) []ident.Identity {
	ids := make([]ident.Identity, 0, n)
	for seed := byte(1); len(ids) < n; seed++ {
		ids = append(ids, testIdentity(seed))
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j].Less(ids[j-1]); j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	return ids
}

// TestPeerSetsRegisterSortsAndDedupes ensures registered peer sets are
// stored sorted by identity with duplicates removed regardless of the input
// order.
func TestPeerSetsRegisterSortsAndDedupes(t *testing.T) {
	ids := sortedTestIdentities(3)
	a, b, c := ids[0], ids[1], ids[2]

	ps := newPeerSets(3)
	ps.register(1, []ident.Identity{c, a, b, a})

	got, ok := ps.sorted(1)
	if !ok {
		t.Fatal("registered index not retained")
	}
	want := []ident.Identity{a, b, c}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("stored set mismatch -- got %s, want %s", spew.Sdump(got),
			spew.Sdump(want))
	}
}

// TestPeerSetsRetention ensures the lowest indices are evicted once the
// retention bound is exceeded and that re-registering a retained index
// replaces the set without consuming a retention slot.
func TestPeerSetsRetention(t *testing.T) {
	ids := sortedTestIdentities(4)

	ps := newPeerSets(2)
	if evicted := ps.register(1, ids[:1]); evicted != nil {
		t.Fatalf("unexpected eviction: %v", evicted)
	}
	if evicted := ps.register(2, ids[1:2]); evicted != nil {
		t.Fatalf("unexpected eviction: %v", evicted)
	}

	// Replacing index 2 must not evict anything.
	if evicted := ps.register(2, ids[1:3]); evicted != nil {
		t.Fatalf("unexpected eviction on replace: %v", evicted)
	}
	if set, _ := ps.sorted(2); len(set) != 2 {
		t.Fatalf("replaced set has %d peers, want 2", len(set))
	}

	// A third index evicts the lowest.
	evicted := ps.register(3, ids[3:4])
	if len(evicted) != 1 || evicted[0] != 1 {
		t.Fatalf("got evicted indices %v, want [1]", evicted)
	}
	if _, ok := ps.sorted(1); ok {
		t.Fatal("evicted index still retained")
	}
	if ps.isAuthorized(ids[0]) {
		t.Fatal("identity from evicted set still authorized")
	}
}

// TestPeerSetsOutOfOrderRegister ensures out-of-order registration is
// accepted and that eviction still removes the numerically lowest index.
func TestPeerSetsOutOfOrderRegister(t *testing.T) {
	ids := sortedTestIdentities(3)

	ps := newPeerSets(2)
	ps.register(5, ids[:1])
	ps.register(3, ids[1:2])

	evicted := ps.register(7, ids[2:3])
	if len(evicted) != 1 || evicted[0] != 3 {
		t.Fatalf("got evicted indices %v, want [3]", evicted)
	}
	if index, _, ok := ps.latest(); !ok || index != 7 {
		t.Fatalf("latest index is %d, want 7", index)
	}
}

// TestPeerSetsPosition ensures bit positions are resolved against the sorted
// set and that missing identities and untracked indices are reported.
func TestPeerSetsPosition(t *testing.T) {
	ids := sortedTestIdentities(4)

	ps := newPeerSets(3)
	ps.register(1, []ident.Identity{ids[2], ids[0], ids[1]})

	for want, id := range ids[:3] {
		got, ok := ps.position(1, id)
		if !ok || got != want {
			t.Errorf("position of identity %d: got %d ok %v, want %d",
				want, got, ok, want)
		}
	}
	if _, ok := ps.position(1, ids[3]); ok {
		t.Fatal("position found for identity not in set")
	}
	if _, ok := ps.position(9, ids[0]); ok {
		t.Fatal("position found for untracked index")
	}
}

// TestPeerSetsMembership ensures authorization spans every retained set.
func TestPeerSetsMembership(t *testing.T) {
	ids := sortedTestIdentities(3)

	ps := newPeerSets(2)
	ps.register(1, ids[:1])
	ps.register(2, ids[1:2])

	if !ps.isAuthorized(ids[0]) || !ps.isAuthorized(ids[1]) {
		t.Fatal("identity in a retained set not authorized")
	}
	if ps.isAuthorized(ids[2]) {
		t.Fatal("never-registered identity authorized")
	}
}
