// Copyright (c) 2025-2026 The Quornet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"errors"
	"io"
	"net"
	"reflect"
	"testing"
	"time"

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

// TestMessageRoundTrip ensures both gossip messages survive a write/read
// cycle through the framed message functions unchanged.
func TestMessageRoundTrip(t *testing.T) {
	bv := NewMsgBitVec(42, 10)
	bv.Bits.Set(0)
	bv.Bits.Set(7)
	bv.Bits.Set(9)

	peers := NewMsgPeers()
	err := peers.AddAddress(PeerAddress{
		Identity:  testIdentity(1),
		IP:        net.ParseIP("10.1.2.3").To4(),
		Port:      9180,
		Timestamp: time.Unix(1756600000, 0),
	})
	if err != nil {
		t.Fatalf("AddAddress: %v", err)
	}
	err = peers.AddAddress(PeerAddress{
		Identity:  testIdentity(2),
		IP:        net.ParseIP("2001:db8::68"),
		Port:      9181,
		Timestamp: time.Unix(1756600001, 0),
	})
	if err != nil {
		t.Fatalf("AddAddress: %v", err)
	}

	tests := []Message{bv, peers}
	for _, msg := range tests {
		var buf bytes.Buffer
		if err := WriteMessage(&buf, msg); err != nil {
			t.Fatalf("WriteMessage (%s): %v", msg.Command(), err)
		}

		decoded, err := ReadMessage(&buf)
		if err != nil {
			t.Fatalf("ReadMessage (%s): %v", msg.Command(), err)
		}
		if !reflect.DeepEqual(msg, decoded) {
			t.Errorf("round trip mismatch (%s) -- got %s, want %s",
				msg.Command(), spew.Sdump(decoded), spew.Sdump(msg))
		}
	}
}

// TestReadMessageErrors ensures malformed framed messages are rejected with
// the expected error kinds.
func TestReadMessageErrors(t *testing.T) {
	// Frame claiming an unknown command identifier.
	unknownCmd := []byte{0xff, 0x00, 0x00, 0x00, 0x00}

	// bitvec frame whose payload length exceeds the maximum for the type.
	oversized := []byte{cmdIDBitVec, 0xff, 0xff, 0xff, 0x7f}

	// peers frame whose payload announces more addresses than allowed.
	var tooManyAddrs bytes.Buffer
	tooManyAddrs.WriteByte(cmdIDPeers)
	writeUint32LE(&tooManyAddrs, 4)
	writeUint32LE(&tooManyAddrs, MaxPeerAddrs+1)

	// peers frame with an address that has an invalid IP length.
	var badIP bytes.Buffer
	id := testIdentity(3)
	badIP.Write(id[:])
	badIP.WriteByte(7) // neither 4 nor 16
	var badIPFrame bytes.Buffer
	badIPFrame.WriteByte(cmdIDPeers)
	writeUint32LE(&badIPFrame, uint32(4+badIP.Len()))
	writeUint32LE(&badIPFrame, 1)
	badIPFrame.Write(badIP.Bytes())

	tests := []struct {
		name string
		data []byte
		err  error
	}{{
		name: "unknown command",
		data: unknownCmd,
		err:  ErrUnknownCmd,
	}, {
		name: "oversized payload",
		data: oversized,
		err:  ErrPayloadTooLarge,
	}, {
		name: "too many addresses",
		data: tooManyAddrs.Bytes(),
		err:  ErrTooManyAddrs,
	}, {
		name: "invalid ip length",
		data: badIPFrame.Bytes(),
		err:  ErrMalformedAddr,
	}, {
		name: "truncated frame",
		data: []byte{cmdIDBitVec, 0x10},
		err:  io.ErrUnexpectedEOF,
	}}

	for _, test := range tests {
		_, err := ReadMessage(bytes.NewReader(test.data))
		if !errors.Is(err, test.err) {
			t.Errorf("%s: got error %v, want %v", test.name, err, test.err)
		}
	}
}

// TestBitVecEncodeTooLarge ensures encoding rejects bit vectors over the
// maximum size.
func TestBitVecEncodeTooLarge(t *testing.T) {
	msg := &MsgBitVec{Index: 1, Bits: make([]byte, MaxBitVecBytes+1)}
	var buf bytes.Buffer
	err := msg.Encode(&buf)
	if !errors.Is(err, ErrBitVecTooLarge) {
		t.Fatalf("got error %v, want %v", err, ErrBitVecTooLarge)
	}
}

// TestPeersAddAddressLimit ensures AddAddress rejects an address once the
// message is full.
func TestPeersAddAddressLimit(t *testing.T) {
	msg := NewMsgPeers()
	msg.Addrs = make([]PeerAddress, MaxPeerAddrs)
	err := msg.AddAddress(PeerAddress{Identity: testIdentity(4)})
	if !errors.Is(err, ErrTooManyAddrs) {
		t.Fatalf("got error %v, want %v", err, ErrTooManyAddrs)
	}
}
