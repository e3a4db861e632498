// Copyright (c) 2025-2026 The Quornet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"
)

// readUint8 reads a single byte from the provided reader.
func readUint8(r io.Reader, value *uint8) error {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	*value = buf[0]
	return nil
}

// readUint16LE reads a little-endian uint16 from the provided reader.
func readUint16LE(r io.Reader, value *uint16) error {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	*value = binary.LittleEndian.Uint16(buf[:])
	return nil
}

// readUint32LE reads a little-endian uint32 from the provided reader.
func readUint32LE(r io.Reader, value *uint32) error {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	*value = binary.LittleEndian.Uint32(buf[:])
	return nil
}

// readUint64LE reads a little-endian uint64 from the provided reader.
func readUint64LE(r io.Reader, value *uint64) error {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	*value = binary.LittleEndian.Uint64(buf[:])
	return nil
}

// writeUint8 writes a single byte to the provided writer.
func writeUint8(w io.Writer, value uint8) error {
	buf := [1]byte{value}
	_, err := w.Write(buf[:])
	return err
}

// writeUint16LE writes a little-endian uint16 to the provided writer.
func writeUint16LE(w io.Writer, value uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], value)
	_, err := w.Write(buf[:])
	return err
}

// writeUint32LE writes a little-endian uint32 to the provided writer.
func writeUint32LE(w io.Writer, value uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	_, err := w.Write(buf[:])
	return err
}

// writeUint64LE writes a little-endian uint64 to the provided writer.
func writeUint64LE(w io.Writer, value uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], value)
	_, err := w.Write(buf[:])
	return err
}
