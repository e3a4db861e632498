// Copyright (c) 2025-2026 The Quornet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package tracker implements the peer-tracking and connection-admission core
of the peernet networking layer.

# Tracker Overview

Participation on the network is restricted to cryptographically identified
peers that an external authority explicitly authorizes, generation by
generation.  The authority registers the authorized identities for each
epoch index through the Oracle handle, and the tracker retains a bounded
window of recent sets.  Everything else interacts with the tracker through
the Mailbox handle: per-peer connection handlers report constructed
connections and received gossip, the dialer asks for dial targets, and the
listener asks for admission of inbound connections.

The central guarantee is that at most one connection attempt or established
connection is in flight per peer at any time.  It is provided by
reservations: the tracker grants a Reservation for an identity exactly when
no other reservation for it is live, both for outbound targets returned by
Dialable and for inbound admissions through Reserve.  Releasing is
asynchronous and idempotent, so a release racing a new request resolves in
whatever order the requests arrive at the tracker.

Internally the tracker is a single goroutine that owns all state and
processes one request at a time from a bounded queue.  There are no locks;
total ordering of requests at the queue is the only synchronization
mechanism, and it is what makes the admission decisions race-free.

Gossip state is tracked as dialability bit vectors whose positions are
defined by the canonical sorted order of an authorized peer set, so all
nodes must register identical sets at identical indices for the exchanged
bits to be meaningful.
*/
package tracker
