// Copyright (c) 2025-2026 The Quornet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tracker

import (
	"testing"
	"time"
)

// TestReservationReleaseOnce ensures a reservation enqueues exactly one
// release request no matter how many times Release is called.
func TestReservationReleaseOnce(t *testing.T) {
	requests := make(chan interface{}, 8)
	mailbox := Mailbox{requests: requests, quit: make(chan struct{})}
	id := testIdentity(1)

	res := newReservation(id, mailbox)
	if res.Identity() != id {
		t.Fatal("reservation identity mismatch")
	}

	res.Release()
	res.Release()
	res.Release()

	if len(requests) != 1 {
		t.Fatalf("%d release requests enqueued, want 1", len(requests))
	}
	raw := <-requests
	req, ok := raw.(releasePeer)
	if !ok {
		t.Fatalf("unexpected request type %T", raw)
	}
	if req.id != id {
		t.Fatal("release request identity mismatch")
	}
}

// TestReservationReleaseAfterShutdown ensures releasing after the tracker
// has been shut down is a silent no-op rather than a blocked send.
func TestReservationReleaseAfterShutdown(t *testing.T) {
	quit := make(chan struct{})
	close(quit)
	mailbox := Mailbox{requests: make(chan interface{}), quit: quit}

	res := newReservation(testIdentity(1), mailbox)
	done := make(chan struct{})
	go func() {
		res.Release()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("release blocked after shutdown")
	}
}
