package net_structures

import (
	"errors"
	"io"
)

// ErrVarIntTooBig is returned when a varint continues past its maximum width.
var ErrVarIntTooBig = errors.New("net_structures: varint is too big")

// ErrVarLongTooBig is returned when a varlong continues past its maximum width.
var ErrVarLongTooBig = errors.New("net_structures: varlong is too big")

// VarInt is the protocol's variable-length signed 32-bit integer: 7 payload
// bits per byte, continuation bit in bit 7, little-endian byte order,
// 1 to 5 bytes wide.
type VarInt int32

// Encode writes v to w using the minimum number of bytes.
func (v VarInt) Encode(w io.Writer) error {
	var buf [5]byte
	n := 0
	value := uint32(v)
	for {
		if value&^uint32(0x7F) == 0 {
			buf[n] = byte(value)
			n++
			break
		}
		buf[n] = byte(value&0x7F) | 0x80
		n++
		value >>= 7
	}
	_, err := w.Write(buf[:n])
	return err
}

// ToBytes returns the encoded form of v.
func (v VarInt) ToBytes() []byte {
	var buf [5]byte
	n := 0
	value := uint32(v)
	for {
		if value&^uint32(0x7F) == 0 {
			buf[n] = byte(value)
			n++
			break
		}
		buf[n] = byte(value&0x7F) | 0x80
		n++
		value >>= 7
	}
	out := make([]byte, n)
	copy(out, buf[:n])
	return out
}

// Len reports the number of bytes Encode would write for v.
func (v VarInt) Len() int {
	value := uint32(v)
	switch {
	case value < 1<<7:
		return 1
	case value < 1<<14:
		return 2
	case value < 1<<21:
		return 3
	case value < 1<<28:
		return 4
	default:
		return 5
	}
}

// EncodedLength reports the number of bytes needed to encode n (0 <= n).
// The framer does not call it: FrameBytes encodes the outer length prefix
// after the body is built and copies the body behind it.
func EncodedLength(n int) int {
	return VarInt(n).Len()
}

// DecodeVarInt reads a VarInt from r, failing with ErrVarIntTooBig past the
// fifth continuation byte.
func DecodeVarInt(r io.Reader) (VarInt, error) {
	var value int32
	var position uint
	var b [1]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		value |= int32(b[0]&0x7F) << position
		if b[0]&0x80 == 0 {
			break
		}
		position += 7
		if position >= 35 {
			return 0, ErrVarIntTooBig
		}
	}
	return VarInt(value), nil
}

// VarLong is the 64-bit counterpart of VarInt, up to 10 bytes wide.
type VarLong int64

// Encode writes v to w using the minimum number of bytes.
func (v VarLong) Encode(w io.Writer) error {
	var buf [10]byte
	n := 0
	value := uint64(v)
	for {
		if value&^uint64(0x7F) == 0 {
			buf[n] = byte(value)
			n++
			break
		}
		buf[n] = byte(value&0x7F) | 0x80
		n++
		value >>= 7
	}
	_, err := w.Write(buf[:n])
	return err
}

// Len reports the number of bytes Encode would write for v.
func (v VarLong) Len() int {
	value := uint64(v)
	n := 1
	for value >= 0x80 {
		value >>= 7
		n++
	}
	return n
}

// DecodeVarLong reads a VarLong from r, failing with ErrVarLongTooBig past
// the tenth continuation byte.
func DecodeVarLong(r io.Reader) (VarLong, error) {
	var value int64
	var position uint
	var b [1]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		value |= int64(b[0]&0x7F) << position
		if b[0]&0x80 == 0 {
			break
		}
		position += 7
		if position >= 70 {
			return 0, ErrVarLongTooBig
		}
	}
	return VarLong(value), nil
}
