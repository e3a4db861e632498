// Copyright (c) 2025-2026 The Quornet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ident

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// TestSignVerify ensures signatures produced by a signer verify against the
// signer's identity and fail to verify for tampered messages, foreign
// identities, and corrupted signatures.
func TestSignVerify(t *testing.T) {
	signer := NewSignerFromPrivateKey(secp256k1.PrivKeyFromBytes([]byte{7}))
	other := NewSignerFromPrivateKey(secp256k1.PrivKeyFromBytes([]byte{8}))

	msg := []byte("some gossip payload")
	sig, err := signer.Sign(msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(sig) != SignatureLen {
		t.Fatalf("Sign: %d byte signature, want %d", len(sig), SignatureLen)
	}

	if !Verify(signer.Identity(), msg, sig) {
		t.Fatal("valid signature did not verify")
	}
	if Verify(signer.Identity(), []byte("some other payload"), sig) {
		t.Fatal("signature verified for a different message")
	}
	if Verify(other.Identity(), msg, sig) {
		t.Fatal("signature verified for a different identity")
	}

	corrupt := append([]byte{}, sig...)
	corrupt[0] ^= 0x01
	if Verify(signer.Identity(), msg, corrupt) {
		t.Fatal("corrupted signature verified")
	}
	if Verify(signer.Identity(), msg, sig[:SignatureLen-1]) {
		t.Fatal("truncated signature verified")
	}
}

// TestNewSigner ensures generated signers produce distinct, parseable
// identities.
func TestNewSigner(t *testing.T) {
	s1, err := NewSigner()
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	s2, err := NewSigner()
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	if s1.Identity() == s2.Identity() {
		t.Fatal("generated signers share an identity")
	}
	if _, err := ParseIdentity(s1.Identity().Bytes()); err != nil {
		t.Fatalf("generated identity does not parse: %v", err)
	}
}
