// Copyright (c) 2025-2026 The Quornet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ident

import (
	"github.com/decred/dcrd/crypto/blake256"
	"github.com/decred/dcrd/crypto/rand"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
)

// SignatureLen is the length in bytes of a serialized schnorr signature.
const SignatureLen = 64

// sigTag domain separates signature hashes from any other use of the hash
// function over the same bytes.
const sigTag = "peernet/identity/v1"

// signatureHash returns the tagged blake256 hash that is signed and
// verified for the given message.
func signatureHash(msg []byte) []byte {
	h := blake256.New()
	h.Write([]byte(sigTag))
	h.Write(msg)
	return h.Sum(nil)
}

// Signer holds the private key backing a local identity and produces
// signatures that are verifiable against that identity.
type Signer struct {
	priv *secp256k1.PrivateKey
	id   Identity
}

// NewSigner generates a fresh private key from the CSPRNG and returns a
// signer for it.
func NewSigner() (*Signer, error) {
	priv, err := secp256k1.GeneratePrivateKeyFromRand(rand.Reader())
	if err != nil {
		return nil, err
	}
	return NewSignerFromPrivateKey(priv), nil
}

// NewSignerFromPrivateKey returns a signer for an existing private key.
func NewSignerFromPrivateKey(priv *secp256k1.PrivateKey) *Signer {
	var id Identity
	copy(id[:], priv.PubKey().SerializeCompressed())
	return &Signer{priv: priv, id: id}
}

// Identity returns the public identity the signer produces signatures for.
func (s *Signer) Identity() Identity {
	return s.id
}

// Sign produces a serialized schnorr signature over the tagged hash of the
// message.
func (s *Signer) Sign(msg []byte) ([]byte, error) {
	sig, err := schnorr.Sign(s.priv, signatureHash(msg))
	if err != nil {
		return nil, err
	}
	return sig.Serialize(), nil
}

// Verify returns whether the signature is a valid signature over the message
// by the private key backing the given identity.
func Verify(id Identity, msg, sig []byte) bool {
	pub, err := secp256k1.ParsePubKey(id[:])
	if err != nil {
		return false
	}
	parsedSig, err := schnorr.ParseSignature(sig)
	if err != nil {
		return false
	}
	return parsedSig.Verify(signatureHash(msg), pub)
}
