// Copyright (c) 2025-2026 The Quornet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package wire implements the peernet gossip wire protocol.

The discovery gossip exchanged between authorized peers consists of two
messages.  A bitvec message (MsgBitVec) positionally encodes which members
of an authorized peer set the sender believes are dialable, relative to the
canonical sorted order of the set registered at a particular index.  A peers
message (MsgPeers) announces last-known network addresses for identities so
that other nodes can fill the gaps in their own dialability knowledge.

Messages are framed with a one-byte command identifier and a little-endian
payload length, and are read and written with ReadMessage and WriteMessage.
All lengths are bounded and violations are reported through MessageError
with an ErrorKind that supports errors.Is.
*/
package wire
