// Copyright (c) 2025-2026 The Quornet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
	"net"
	"time"

	"github.com/quornet/peernet/ident"
)

// MaxPeerAddrs is the maximum number of addresses that can be in a single
// peers message.
const MaxPeerAddrs = 1000

// maxPeerAddressSize is the maximum serialized size of a single peer
// address: identity, IP length byte, 16-byte IP, port, and timestamp.
const maxPeerAddressSize = ident.IdentityLen + 1 + 16 + 2 + 8

// PeerAddress defines the last-known network address for an identity along
// with the time the address was last known to be valid.  Addresses with
// newer timestamps supersede older ones during gossip.
type PeerAddress struct {
	Identity  ident.Identity
	IP        net.IP
	Port      uint16
	Timestamp time.Time
}

// String returns a human-readable host:port string for the address.
func (pa *PeerAddress) String() string {
	return net.JoinHostPort(pa.IP.String(), fmt.Sprintf("%d", pa.Port))
}

// readPeerAddress reads a serialized peer address from r.
func readPeerAddress(r io.Reader, pa *PeerAddress) error {
	const op = "readPeerAddress"

	var idBytes [ident.IdentityLen]byte
	if _, err := io.ReadFull(r, idBytes[:]); err != nil {
		return err
	}
	id, err := ident.ParseIdentity(idBytes[:])
	if err != nil {
		return messageError(op, ErrMalformedAddr, err.Error())
	}
	pa.Identity = id

	var ipLen uint8
	if err := readUint8(r, &ipLen); err != nil {
		return err
	}
	if ipLen != net.IPv4len && ipLen != net.IPv6len {
		str := fmt.Sprintf("IP is %d bytes, but must be %d or %d bytes",
			ipLen, net.IPv4len, net.IPv6len)
		return messageError(op, ErrMalformedAddr, str)
	}
	ip := make([]byte, ipLen)
	if _, err := io.ReadFull(r, ip); err != nil {
		return err
	}
	pa.IP = net.IP(ip)

	if err := readUint16LE(r, &pa.Port); err != nil {
		return err
	}
	var unix uint64
	if err := readUint64LE(r, &unix); err != nil {
		return err
	}
	pa.Timestamp = time.Unix(int64(unix), 0)
	return nil
}

// writePeerAddress writes a serialized peer address to w.
func writePeerAddress(w io.Writer, pa *PeerAddress) error {
	const op = "writePeerAddress"

	ip := pa.IP
	if v4 := ip.To4(); v4 != nil {
		ip = v4
	}
	if len(ip) != net.IPv4len && len(ip) != net.IPv6len {
		str := fmt.Sprintf("IP is %d bytes, but must be %d or %d bytes",
			len(ip), net.IPv4len, net.IPv6len)
		return messageError(op, ErrMalformedAddr, str)
	}

	if _, err := w.Write(pa.Identity[:]); err != nil {
		return err
	}
	if err := writeUint8(w, uint8(len(ip))); err != nil {
		return err
	}
	if _, err := w.Write(ip); err != nil {
		return err
	}
	if err := writeUint16LE(w, pa.Port); err != nil {
		return err
	}
	return writeUint64LE(w, uint64(pa.Timestamp.Unix()))
}

// MsgPeers implements the Message interface and represents a peers gossip
// message.  It is used to announce last-known network addresses for
// identities on the network.
type MsgPeers struct {
	Addrs []PeerAddress
}

// AddAddress adds a peer address to the message.  An error is returned when
// the message already holds the maximum number of addresses.
func (msg *MsgPeers) AddAddress(pa PeerAddress) error {
	const op = "MsgPeers.AddAddress"

	if len(msg.Addrs)+1 > MaxPeerAddrs {
		str := fmt.Sprintf("too many addresses in message [max %d]",
			MaxPeerAddrs)
		return messageError(op, ErrTooManyAddrs, str)
	}
	msg.Addrs = append(msg.Addrs, pa)
	return nil
}

// Decode decodes r into the receiver.  This is part of the Message interface
// implementation.
func (msg *MsgPeers) Decode(r io.Reader) error {
	const op = "MsgPeers.Decode"

	var count uint32
	if err := readUint32LE(r, &count); err != nil {
		return err
	}
	if count > MaxPeerAddrs {
		str := fmt.Sprintf("too many addresses for message [count %d, "+
			"max %d]", count, MaxPeerAddrs)
		return messageError(op, ErrTooManyAddrs, str)
	}

	addrs := make([]PeerAddress, count)
	for i := range addrs {
		if err := readPeerAddress(r, &addrs[i]); err != nil {
			return err
		}
	}
	msg.Addrs = addrs
	return nil
}

// Encode encodes the receiver to w.  This is part of the Message interface
// implementation.
func (msg *MsgPeers) Encode(w io.Writer) error {
	const op = "MsgPeers.Encode"

	if len(msg.Addrs) > MaxPeerAddrs {
		str := fmt.Sprintf("too many addresses for message [count %d, "+
			"max %d]", len(msg.Addrs), MaxPeerAddrs)
		return messageError(op, ErrTooManyAddrs, str)
	}

	if err := writeUint32LE(w, uint32(len(msg.Addrs))); err != nil {
		return err
	}
	for i := range msg.Addrs {
		if err := writePeerAddress(w, &msg.Addrs[i]); err != nil {
			return err
		}
	}
	return nil
}

// Command returns the protocol command string for the message.  This is part
// of the Message interface implementation.
func (msg *MsgPeers) Command() string {
	return CmdPeers
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgPeers) MaxPayloadLength() uint32 {
	// Address count 4 bytes + max addresses at the max per-address size.
	return 4 + MaxPeerAddrs*maxPeerAddressSize
}

// NewMsgPeers returns a new peers message that is ready to have addresses
// added to it via AddAddress.
func NewMsgPeers() *MsgPeers {
	return &MsgPeers{
		Addrs: make([]PeerAddress, 0, 16),
	}
}
