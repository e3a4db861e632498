// Copyright (c) 2025-2026 The Quornet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/decred/dcrd/container/lru"
	"github.com/decred/dcrd/crypto/rand"
	"github.com/jrick/bitset"
	"github.com/quornet/peernet/ident"
	"github.com/quornet/peernet/wire"
)

const (
	// defaultMaxTrackedSets is the default number of authorized peer sets
	// that are retained before the oldest is evicted.
	defaultMaxTrackedSets = 3

	// defaultQueueLength is the default capacity of the tracker's request
	// queue.  Senders block once the queue is full, which provides
	// backpressure between the rest of the system and the tracker.
	defaultQueueLength = 64

	// defaultGossipQuietPeriod is the default minimum interval between
	// knowledge pushes to any single peer in response to its bit vectors.
	defaultGossipQuietPeriod = 30 * time.Second

	// gossipLimiterSize is the maximum number of peers tracked by the
	// gossip rate limiter.
	gossipLimiterSize = 4096
)

// Config holds the configuration options related to the tracker.
type Config struct {
	// Self is the identity of the local node.  It is never returned as a
	// dial target and never granted a reservation, and its bit is always
	// set in generated bit vectors since a node can reach itself.
	Self ident.Identity

	// MaxTrackedSets is the number of registered authorized peer sets to
	// retain.  Defaults to 3.
	MaxTrackedSets int

	// QueueLength is the capacity of the tracker's request queue.
	// Defaults to 64.
	QueueLength int

	// GossipQuietPeriod is the minimum interval between gossip pushes to a
	// single peer in response to its bit vectors.  Defaults to 30s.
	GossipQuietPeriod time.Duration
}

// registerSets is used to store an authorized peer set at an index.
type registerSets struct {
	index uint64
	peers []ident.Identity
}

// constructPeer is used to bind a live connection to an identity.
type constructPeer struct {
	id   ident.Identity
	sink GossipSink
}

// handleBitVec is used to merge a dialability bit vector reported by a
// connected peer.
type handleBitVec struct {
	id   ident.Identity
	msg  *wire.MsgBitVec
	sink GossipSink
}

// handlePeers is used to merge announced peer addresses.
type handlePeers struct {
	msg *wire.MsgPeers
}

// dialablePeers is used to request the current dial targets.
type dialablePeers struct {
	resp chan<- []DialablePeer
}

// reservePeer is used to request a reservation for an inbound connection.
type reservePeer struct {
	id   ident.Identity
	resp chan<- *Reservation
}

// releasePeer is used to return a reservation.
type releasePeer struct {
	id ident.Identity
}

// peerInfo is the tracker's record for a single known peer.
type peerInfo struct {
	// addr is the last-known network address for the peer.  It is nil for
	// authorized peers whose address has not been learned yet.
	addr *wire.PeerAddress

	// reserved indicates a connection attempt or connection for the peer
	// is in flight.
	reserved bool

	// connected indicates a constructed connection currently represents
	// the peer.  sink is the push handle for that connection and is nil
	// otherwise.
	connected bool
	sink      GossipSink

	// index and knowledge hold the peer's most recently reported
	// dialability bit vector and the peer set index it refers to.
	index     uint64
	knowledge bitset.Bytes
}

// Tracker decides which peers are authorized to participate, which are
// dialable, and enforces that at most one connection attempt or connection
// is in flight per peer at any time.
//
// All state is owned by a single request handler goroutine which processes
// requests strictly in arrival order, so no locking is involved anywhere.
// Interaction happens exclusively through the Mailbox and Oracle handles.
type Tracker struct {
	// The following fields are used for lifecycle management of the
	// tracker.
	wg   sync.WaitGroup
	quit chan struct{}

	// cfg specifies the configuration of the tracker and is set at
	// creation time and treated as immutable after that.
	cfg Config

	// requests is used internally to interact with the request handler
	// goroutine.
	requests chan interface{}

	// The following fields are owned by the request handler goroutine and
	// must not be accessed outside of it.
	//
	// sets is the retained window of authorized peer sets.
	//
	// peers holds the record for every known peer.
	//
	// recentPush rate limits gossip pushback per peer.
	sets       *peerSets
	peers      map[ident.Identity]*peerInfo
	recentPush *lru.Map[ident.Identity, struct{}]
}

// Mailbox returns an operational handle to the tracker for use by peer
// connection handlers, the dialer, and the listener.
func (t *Tracker) Mailbox() Mailbox {
	return Mailbox{requests: t.requests, quit: t.quit}
}

// Oracle returns the privileged registration handle to the tracker.  It
// should only be provided to the component that determines the authorized
// peer set, such as a chain height tracker.
func (t *Tracker) Oracle() Oracle {
	return Oracle{requests: t.requests, quit: t.quit}
}

// peerRecord returns the record for the identity, creating it when one does
// not exist yet.  Callers must have already confirmed the identity is
// authorized.
func (t *Tracker) peerRecord(id ident.Identity) *peerInfo {
	info, ok := t.peers[id]
	if !ok {
		info = &peerInfo{}
		t.peers[id] = info
	}
	return info
}

// sweepPeers removes records for peers that are no longer authorized by any
// retained peer set.  Records with a live reservation or connection survive
// the sweep so that a second reservation cannot be granted while one is
// still outstanding.
func (t *Tracker) sweepPeers() {
	for id, info := range t.peers {
		if info.reserved || info.connected {
			continue
		}
		if t.sets.isAuthorized(id) {
			continue
		}
		delete(t.peers, id)
	}
}

// ownBitVec returns a bit vector expressing which identities in the latest
// authorized peer set the local node believes are dialable, or nil when no
// sets have been registered.
func (t *Tracker) ownBitVec() *wire.MsgBitVec {
	index, set, ok := t.sets.latest()
	if !ok {
		return nil
	}
	msg := wire.NewMsgBitVec(index, len(set))
	for i, id := range set {
		if id == t.cfg.Self {
			msg.Bits.Set(i)
			continue
		}
		if info, ok := t.peers[id]; ok && info.addr != nil {
			msg.Bits.Set(i)
		}
	}
	return msg
}

// handleRegister stores the authorized peer set and prunes state that
// depended on evicted indices.
func (t *Tracker) handleRegister(msg registerSets) {
	evicted := t.sets.register(msg.index, msg.peers)
	for _, index := range evicted {
		log.Debugf("Evicted authorized peer set at index %d", index)
	}
	if len(evicted) > 0 {
		t.sweepPeers()
	}

	set, _ := t.sets.sorted(msg.index)
	log.Debugf("Registered %d authorized peers at index %d", len(set),
		msg.index)
}

// handleConstruct binds a live connection to an authorized identity and
// bootstraps gossip by pushing the local dialability knowledge to it.
func (t *Tracker) handleConstruct(msg constructPeer) {
	if !t.sets.isAuthorized(msg.id) {
		log.Debugf("Ignoring connection for unauthorized peer %s", msg.id)
		return
	}

	info := t.peerRecord(msg.id)
	info.connected = true
	info.sink = msg.sink
	log.Debugf("Tracking connected peer %s", msg.id)

	if bv := t.ownBitVec(); bv != nil {
		msg.sink.PushBitVec(bv)
	}
}

// handleBitVec merges a dialability bit vector reported by a connected peer
// into that peer's gossip record and pushes back any knowledge the reporter
// is missing.  Bit vectors for untracked indices and bit vectors whose
// length does not match the referenced peer set are dropped without any
// state change.
func (t *Tracker) handleBitVec(msg handleBitVec) {
	if !t.sets.isAuthorized(msg.id) {
		log.Debugf("Ignoring bit vector from unauthorized peer %s", msg.id)
		return
	}
	set, ok := t.sets.sorted(msg.msg.Index)
	if !ok {
		log.Debugf("Ignoring bit vector from peer %s for untracked "+
			"index %d", msg.id, msg.msg.Index)
		return
	}
	if len(msg.msg.Bits) != len(bitset.NewBytes(len(set))) {
		log.Debugf("Ignoring malformed bit vector from peer %s: %d bytes "+
			"for a set of %d peers", msg.id, len(msg.msg.Bits), len(set))
		return
	}

	info := t.peerRecord(msg.id)
	info.index = msg.msg.Index
	info.knowledge = msg.msg.Bits

	if t.recentPush.Exists(msg.id) {
		return
	}

	// Push back addresses the reporter does not believe are dialable but
	// the local node has an address for.
	push := wire.NewMsgPeers()
	for i, id := range set {
		if msg.msg.Bits.Get(i) || id == msg.id || id == t.cfg.Self {
			continue
		}
		other, ok := t.peers[id]
		if !ok || other.addr == nil {
			continue
		}
		if err := push.AddAddress(*other.addr); err != nil {
			break
		}
	}

	pushed := false
	if len(push.Addrs) > 0 {
		msg.sink.PushPeers(push)
		pushed = true
	}

	// Nudge peers gossiping against a stale index toward the latest one.
	if latest, _, ok := t.sets.latest(); ok && msg.msg.Index < latest {
		if bv := t.ownBitVec(); bv != nil {
			msg.sink.PushBitVec(bv)
			pushed = true
		}
	}

	if pushed {
		t.recentPush.Put(msg.id, struct{}{})
	}
}

// handlePeers merges announced addresses into the corresponding peer
// records.  Addresses for unauthorized identities and addresses that are
// not newer than what is already held are discarded.
func (t *Tracker) handlePeers(msg handlePeers) {
	for i := range msg.msg.Addrs {
		addr := &msg.msg.Addrs[i]
		if addr.Identity == t.cfg.Self {
			continue
		}
		if !t.sets.isAuthorized(addr.Identity) {
			log.Debugf("Discarding address for unauthorized peer %s",
				addr.Identity)
			continue
		}

		info := t.peerRecord(addr.Identity)
		if info.addr != nil && !addr.Timestamp.After(info.addr.Timestamp) {
			continue
		}
		addrCopy := *addr
		info.addr = &addrCopy
		log.Debugf("Learned address %s for peer %s", addr, addr.Identity)
	}
}

// handleDialable reserves and returns every authorized, address-known peer
// that is neither connected nor already reserved.  Reservations are granted
// as part of building the list so the caller and the tracker agree on the
// reserved state the instant the list is handed out.
func (t *Tracker) handleDialable(msg dialablePeers) {
	var dialable []DialablePeer
	for id, info := range t.peers {
		if info.reserved || info.connected || info.addr == nil {
			continue
		}
		if !t.sets.isAuthorized(id) {
			continue
		}
		info.reserved = true
		dialable = append(dialable, DialablePeer{
			Identity:    id,
			Addr:        *info.addr,
			Reservation: newReservation(id, t.Mailbox()),
		})
	}

	// Shuffle so that map iteration order does not impose an implicit dial
	// priority between peers.
	rand.Shuffle(len(dialable), func(i, j int) {
		dialable[i], dialable[j] = dialable[j], dialable[i]
	})

	log.Tracef("Returning %d dialable peers", len(dialable))
	msg.resp <- dialable
}

// handleReserve grants a reservation for the identity unless it is
// unauthorized or a reservation for it is already live.
func (t *Tracker) handleReserve(msg reservePeer) {
	if msg.id == t.cfg.Self || !t.sets.isAuthorized(msg.id) {
		msg.resp <- nil
		return
	}
	info := t.peerRecord(msg.id)
	if info.reserved {
		log.Debugf("Rejecting reservation for already reserved peer %s",
			msg.id)
		msg.resp <- nil
		return
	}
	info.reserved = true
	msg.resp <- newReservation(msg.id, t.Mailbox())
}

// handleRelease clears the reservation for the identity along with any
// connection state bound to it.  Releases for identities with no active
// reservation are a no-op since release delivery can race with state that
// was already processed.
func (t *Tracker) handleRelease(msg releasePeer) {
	info, ok := t.peers[msg.id]
	if !ok || !info.reserved {
		return
	}
	info.reserved = false
	info.connected = false
	info.sink = nil
	log.Debugf("Released peer %s", msg.id)

	// Drop the record entirely when eviction was deferred by the
	// reservation.
	if !t.sets.isAuthorized(msg.id) {
		delete(t.peers, msg.id)
	}
}

// requestHandler processes all tracker requests.  It must be run as a
// goroutine.
//
// Since the handler is the only goroutine that ever touches the
// authorization, peer, and reservation state, and requests are processed
// one at a time in arrival order, every request observes the complete
// effects of all requests that arrived before it.
func (t *Tracker) requestHandler(ctx context.Context) {
out:
	for {
		select {
		case req := <-t.requests:
			switch msg := req.(type) {
			case registerSets:
				t.handleRegister(msg)

			case constructPeer:
				t.handleConstruct(msg)

			case handleBitVec:
				t.handleBitVec(msg)

			case handlePeers:
				t.handlePeers(msg)

			case dialablePeers:
				t.handleDialable(msg)

			case reservePeer:
				t.handleReserve(msg)

			case releasePeer:
				t.handleRelease(msg)
			}

		case <-ctx.Done():
			break out
		}
	}

	t.wg.Done()
	log.Trace("Tracker request handler done")
}

// Run starts the tracker and blocks until the provided context is
// cancelled.  The tracker must outlive every Mailbox and Oracle handle that
// is in active use; request/response calls made after cancellation fail
// with ErrTrackerStopped.
func (t *Tracker) Run(ctx context.Context) {
	log.Trace("Starting tracker")

	t.wg.Add(1)
	go t.requestHandler(ctx)

	// Release blocked handle sends when the context is canceled.
	t.wg.Add(1)
	go func() {
		<-ctx.Done()
		close(t.quit)
		t.wg.Done()
	}()

	t.wg.Wait()
	log.Trace("Tracker stopped")
}

// New returns a new tracker with the provided configuration.
//
// Use Run to start processing requests.
func New(cfg *Config) (*Tracker, error) {
	if cfg.Self.IsZero() {
		return nil, ErrSelfRequired
	}

	// Default to sane values.
	maxSets := cfg.MaxTrackedSets
	if maxSets <= 0 {
		maxSets = defaultMaxTrackedSets
	}
	queueLen := cfg.QueueLength
	if queueLen <= 0 {
		queueLen = defaultQueueLength
	}
	quiet := cfg.GossipQuietPeriod
	if quiet <= 0 {
		quiet = defaultGossipQuietPeriod
	}

	t := Tracker{
		cfg:        *cfg, // Copy so caller can't mutate
		quit:       make(chan struct{}),
		requests:   make(chan interface{}, queueLen),
		sets:       newPeerSets(maxSets),
		peers:      make(map[ident.Identity]*peerInfo),
		recentPush: lru.NewMapWithDefaultTTL[ident.Identity, struct{}](gossipLimiterSize, quiet),
	}
	t.cfg.MaxTrackedSets = maxSets
	t.cfg.QueueLength = queueLen
	t.cfg.GossipQuietPeriod = quiet
	return &t, nil
}
