// Copyright (c) 2025-2026 The Quornet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"
)

// MaxMessagePayload is the maximum bytes a message payload can be regardless
// of the message type.
const MaxMessagePayload = 1024 * 128

// Commands used in gossip messages which describe the type of message.
const (
	CmdBitVec = "bitvec"
	CmdPeers  = "peers"
)

// Command identifiers used on the wire for each message type.
const (
	cmdIDBitVec uint8 = 1
	cmdIDPeers  uint8 = 2
)

// Message is an interface that describes a gossip message.  A type that
// implements Message has complete control over the representation of its
// payload and may therefore gain or lose support for protocol features.
type Message interface {
	Decode(io.Reader) error
	Encode(io.Writer) error
	Command() string
	MaxPayloadLength() uint32
}

// makeEmptyMessage creates a message of the appropriate concrete type based
// on the wire command identifier.
func makeEmptyMessage(cmdID uint8) (Message, error) {
	switch cmdID {
	case cmdIDBitVec:
		return &MsgBitVec{}, nil
	case cmdIDPeers:
		return &MsgPeers{}, nil
	}

	str := fmt.Sprintf("unhandled command id %d", cmdID)
	return nil, messageError("makeEmptyMessage", ErrUnknownCmd, str)
}

// cmdID returns the wire command identifier for the provided message.
func cmdID(msg Message) (uint8, error) {
	switch msg.Command() {
	case CmdBitVec:
		return cmdIDBitVec, nil
	case CmdPeers:
		return cmdIDPeers, nil
	}

	str := fmt.Sprintf("unhandled command %q", msg.Command())
	return 0, messageError("cmdID", ErrUnknownCmd, str)
}

// WriteMessage writes a gossip message to w with framing consisting of a
// one-byte command identifier followed by the payload length and payload
// bytes.
func WriteMessage(w io.Writer, msg Message) error {
	const op = "WriteMessage"

	id, err := cmdID(msg)
	if err != nil {
		return err
	}

	var payload bytes.Buffer
	if err := msg.Encode(&payload); err != nil {
		return err
	}
	lenp := payload.Len()
	if uint32(lenp) > msg.MaxPayloadLength() {
		str := fmt.Sprintf("message payload is %d bytes, but %s messages "+
			"may only be %d bytes", lenp, msg.Command(),
			msg.MaxPayloadLength())
		return messageError(op, ErrPayloadTooLarge, str)
	}

	if err := writeUint8(w, id); err != nil {
		return err
	}
	if err := writeUint32LE(w, uint32(lenp)); err != nil {
		return err
	}
	_, err = w.Write(payload.Bytes())
	return err
}

// ReadMessage reads, validates, and parses the next gossip message from r.
func ReadMessage(r io.Reader) (Message, error) {
	const op = "ReadMessage"

	var id uint8
	if err := readUint8(r, &id); err != nil {
		return nil, err
	}
	msg, err := makeEmptyMessage(id)
	if err != nil {
		return nil, err
	}

	var lenp uint32
	if err := readUint32LE(r, &lenp); err != nil {
		return nil, err
	}
	if lenp > msg.MaxPayloadLength() {
		str := fmt.Sprintf("message payload is %d bytes, but %s messages "+
			"may only be %d bytes", lenp, msg.Command(),
			msg.MaxPayloadLength())
		return nil, messageError(op, ErrPayloadTooLarge, str)
	}

	payload := make([]byte, lenp)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	if err := msg.Decode(bytes.NewReader(payload)); err != nil {
		return nil, err
	}
	return msg, nil
}
