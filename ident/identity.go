// Copyright (c) 2025-2026 The Quornet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ident

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// IdentityLen is the length in bytes of a serialized identity.
const IdentityLen = 33

// Identity is the public identity of a peer on the network.  It is the
// compressed serialization of a secp256k1 public key.
//
// Identities are totally ordered by their serialized bytes.  Every node on
// the network must use the same ordering since the positions in gossiped
// dialability bit vectors are defined relative to the sorted authorized peer
// set.
type Identity [IdentityLen]byte

// ParseIdentity interprets the provided bytes as a serialized identity.  An
// error is returned when the bytes are not a valid compressed secp256k1
// public key.
func ParseIdentity(b []byte) (Identity, error) {
	var id Identity
	if len(b) != IdentityLen {
		return id, fmt.Errorf("malformed identity: %d bytes, expected %d",
			len(b), IdentityLen)
	}
	if _, err := secp256k1.ParsePubKey(b); err != nil {
		return id, fmt.Errorf("malformed identity: %w", err)
	}
	copy(id[:], b)
	return id, nil
}

// Compare returns -1, 0, or 1 depending on whether the identity sorts
// before, equal to, or after the other identity.
func (id Identity) Compare(other Identity) int {
	return bytes.Compare(id[:], other[:])
}

// Less returns whether the identity sorts before the other identity.
func (id Identity) Less(other Identity) bool {
	return bytes.Compare(id[:], other[:]) < 0
}

// IsZero returns whether the identity is the zero value, which is not a
// valid public key.
func (id Identity) IsZero() bool {
	return id == Identity{}
}

// Bytes returns the serialized identity as a new byte slice.
func (id Identity) Bytes() []byte {
	b := make([]byte, IdentityLen)
	copy(b, id[:])
	return b
}

// PubKey returns the parsed public key the identity represents.
func (id Identity) PubKey() (*secp256k1.PublicKey, error) {
	return secp256k1.ParsePubKey(id[:])
}

// String returns the identity as a human-readable hex string.
func (id Identity) String() string {
	return hex.EncodeToString(id[:])
}
