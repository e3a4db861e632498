// Copyright (c) 2025-2026 The Quornet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tracker

import (
	"github.com/quornet/peernet/ident"
	"github.com/quornet/peernet/wire"
)

// GossipSink is the push side of a connected peer.  The tracker uses it to
// deliver discovery messages to the goroutine that writes to that peer's
// connection.  Implementations must not block for long periods since pushes
// are performed from the tracker's request handler.
type GossipSink interface {
	// PushBitVec delivers a dialability bit vector to the peer.
	PushBitVec(*wire.MsgBitVec)

	// PushPeers delivers a set of peer address announcements to the peer.
	PushPeers(*wire.MsgPeers)
}

// DialablePeer describes a single authorized peer with a known address that
// the local node is not connected to, along with the reservation that was
// granted for it.  The caller owns the reservation and must release it when
// the dial attempt fails or the resulting connection ends.
type DialablePeer struct {
	Identity    ident.Identity
	Addr        wire.PeerAddress
	Reservation *Reservation
}

// Mailbox is the operational client handle to a tracker.  It is used by
// per-peer connection handlers, the dialer, and the listener.  A Mailbox is
// a lightweight value that may be copied and shared across goroutines with
// no additional synchronization.
//
// Fire-and-forget sends block while the tracker's request queue is
// saturated, which is the intended backpressure mechanism, and are silently
// dropped once the tracker has been shut down.  Request/response calls
// return ErrTrackerStopped in that case instead.
type Mailbox struct {
	requests chan<- interface{}
	quit     <-chan struct{}
}

// Construct reports that a live connection now represents the identity and
// binds the sink future discovery messages for that peer are pushed to.
// Construction is ignored for identities that are not authorized by any
// retained peer set.
func (m Mailbox) Construct(id ident.Identity, sink GossipSink) {
	select {
	case m.requests <- constructPeer{id: id, sink: sink}:
	case <-m.quit:
	}
}

// BitVec reports a dialability bit vector received from the identified
// peer.  The tracker merges it into that peer's gossip record and may push
// its own knowledge back through the sink.
func (m Mailbox) BitVec(id ident.Identity, msg *wire.MsgBitVec, sink GossipSink) {
	select {
	case m.requests <- handleBitVec{id: id, msg: msg, sink: sink}:
	case <-m.quit:
	}
}

// Peers reports peer address announcements received from the network.
// Addresses for unauthorized identities are discarded.
func (m Mailbox) Peers(msg *wire.MsgPeers) {
	select {
	case m.requests <- handlePeers{msg: msg}:
	case <-m.quit:
	}
}

// Dialable returns every authorized, address-known peer that is neither
// connected nor reserved, granting a fresh reservation for each as part of
// producing the list.  This is the dialer's sole source of dial targets.
func (m Mailbox) Dialable() ([]DialablePeer, error) {
	resp := make(chan []DialablePeer, 1)
	select {
	case m.requests <- dialablePeers{resp: resp}:
	case <-m.quit:
		return nil, ErrTrackerStopped
	}

	select {
	case peers := <-resp:
		return peers, nil
	case <-m.quit:
		return nil, ErrTrackerStopped
	}
}

// Reserve attempts to reserve the identity on behalf of an inbound
// connection.  A nil reservation with a nil error means the identity is not
// authorized or is already reserved; callers should treat that as "try
// another peer" rather than a failure.
func (m Mailbox) Reserve(id ident.Identity) (*Reservation, error) {
	resp := make(chan *Reservation, 1)
	select {
	case m.requests <- reservePeer{id: id, resp: resp}:
	case <-m.quit:
		return nil, ErrTrackerStopped
	}

	select {
	case res := <-resp:
		return res, nil
	case <-m.quit:
		return nil, ErrTrackerStopped
	}
}

// Release clears any reservation held for the identity.  Releasing an
// identity with no active reservation is a no-op since release delivery is
// asynchronous and can race with state the tracker already processed.
func (m Mailbox) Release(id ident.Identity) {
	select {
	case m.requests <- releasePeer{id: id}:
	case <-m.quit:
	}
}

// Oracle is the privileged client handle to a tracker.  It exposes only
// peer set registration, keeping the trusted control plane separated from
// the operational surface by type rather than by convention.  Like Mailbox,
// an Oracle is a lightweight value that may be freely copied.
type Oracle struct {
	requests chan<- interface{}
	quit     <-chan struct{}
}

// Register stores the set of identities authorized to participate at the
// given index.  The input does not need to be sorted.  Indices are expected
// to increase monotonically across registrations, like a blockchain height,
// though out-of-order registration is accepted.  Registration is best
// effort and is dropped once the tracker has been shut down.
func (o Oracle) Register(index uint64, peers []ident.Identity) {
	select {
	case o.requests <- registerSets{index: index, peers: peers}:
	case <-o.quit:
	}
}
