// Copyright (c) 2025-2026 The Quornet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tracker

import (
	"sync"

	"github.com/quornet/peernet/ident"
)

// Reservation represents exclusive permission to attempt or hold a single
// connection to one peer.  While a reservation for an identity is live, the
// tracker will not grant a second one for the same identity, which is the
// mechanism that prevents simultaneous inbound and outbound connections to
// the same peer.
//
// Reservations are created only by the tracker, either through
// Mailbox.Reserve or as part of a Mailbox.Dialable result.  The holder must
// call Release when the connection attempt fails or the connection ends,
// typically by deferring it at acquisition so every exit path releases.
// Ownership may be transferred to another goroutine but a reservation must
// never be shared.
type Reservation struct {
	id      ident.Identity
	mailbox Mailbox
	once    sync.Once
}

// newReservation returns a reservation for the identity whose release is
// delivered through the provided mailbox.
func newReservation(id ident.Identity, mailbox Mailbox) *Reservation {
	return &Reservation{id: id, mailbox: mailbox}
}

// Identity returns the identity the reservation is held for.
func (r *Reservation) Identity() ident.Identity {
	return r.id
}

// Release returns the reservation to the tracker, making the identity
// eligible for a future grant.  The release is enqueued exactly once no
// matter how many times Release is called, and it is fire-and-forget: the
// call does not wait for the tracker to process it.
func (r *Reservation) Release() {
	r.once.Do(func() {
		r.mailbox.Release(r.id)
	})
}
