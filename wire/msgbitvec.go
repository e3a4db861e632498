// Copyright (c) 2025-2026 The Quornet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"

	"github.com/jrick/bitset"
)

// MaxBitVecBytes is the maximum number of bytes a dialability bit vector can
// occupy.  This supports authorized peer sets of up to 65536 identities.
const MaxBitVecBytes = 8192

// MsgBitVec implements the Message interface and represents a bitvec gossip
// message.  It carries a peer's belief about the dialability of every
// identity in the authorized peer set registered at Index.  Bit positions
// are defined by the canonical sort order of that set, so the bit vector is
// only meaningful to nodes that have the same set registered at the same
// index.
type MsgBitVec struct {
	Index uint64
	Bits  bitset.Bytes
}

// Decode decodes r into the receiver.  This is part of the Message interface
// implementation.
func (msg *MsgBitVec) Decode(r io.Reader) error {
	const op = "MsgBitVec.Decode"

	if err := readUint64LE(r, &msg.Index); err != nil {
		return err
	}
	var numBytes uint32
	if err := readUint32LE(r, &numBytes); err != nil {
		return err
	}
	if numBytes > MaxBitVecBytes {
		str := fmt.Sprintf("bit vector is %d bytes, but may only be %d "+
			"bytes", numBytes, MaxBitVecBytes)
		return messageError(op, ErrBitVecTooLarge, str)
	}
	bits := make([]byte, numBytes)
	if _, err := io.ReadFull(r, bits); err != nil {
		return err
	}
	msg.Bits = bitset.Bytes(bits)
	return nil
}

// Encode encodes the receiver to w.  This is part of the Message interface
// implementation.
func (msg *MsgBitVec) Encode(w io.Writer) error {
	const op = "MsgBitVec.Encode"

	if len(msg.Bits) > MaxBitVecBytes {
		str := fmt.Sprintf("bit vector is %d bytes, but may only be %d "+
			"bytes", len(msg.Bits), MaxBitVecBytes)
		return messageError(op, ErrBitVecTooLarge, str)
	}
	if err := writeUint64LE(w, msg.Index); err != nil {
		return err
	}
	if err := writeUint32LE(w, uint32(len(msg.Bits))); err != nil {
		return err
	}
	_, err := w.Write(msg.Bits)
	return err
}

// Command returns the protocol command string for the message.  This is part
// of the Message interface implementation.
func (msg *MsgBitVec) Command() string {
	return CmdBitVec
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgBitVec) MaxPayloadLength() uint32 {
	// Index 8 bytes + length 4 bytes + bit vector bytes.
	return 8 + 4 + MaxBitVecBytes
}

// NewMsgBitVec returns a new bitvec message for the authorized peer set at
// the given index with all bits clear.  The bit vector is sized to hold one
// bit per identity in the set.
func NewMsgBitVec(index uint64, numPeers int) *MsgBitVec {
	return &MsgBitVec{
		Index: index,
		Bits:  bitset.NewBytes(numPeers),
	}
}
