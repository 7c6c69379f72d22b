package net_structures

import (
	"bytes"
	"fmt"
	"io"
)

// PacketBuffer is a typed reader/writer over a packet body. It wraps an
// io.Reader in read mode or an io.Writer (backed by a bytes.Buffer, so the
// written bytes can be retrieved) in write mode.
type PacketBuffer struct {
	reader io.Reader
	writer io.Writer
	buf    *bytes.Buffer
}

// NewReader creates a PacketBuffer reading from an in-memory byte slice.
func NewReader(data []byte) *PacketBuffer {
	return &PacketBuffer{reader: bytes.NewReader(data)}
}

// NewReaderFrom creates a PacketBuffer reading from an arbitrary io.Reader.
func NewReaderFrom(r io.Reader) *PacketBuffer {
	return &PacketBuffer{reader: r}
}

// NewWriter creates a PacketBuffer that accumulates written bytes in memory.
func NewWriter() *PacketBuffer {
	buf := &bytes.Buffer{}
	return &PacketBuffer{writer: buf, buf: buf}
}

// Bytes returns the bytes written so far. Only valid for buffers from NewWriter.
func (pb *PacketBuffer) Bytes() []byte {
	if pb.buf != nil {
		return pb.buf.Bytes()
	}
	return nil
}

func (pb *PacketBuffer) Read(p []byte) (int, error) {
	if pb.reader == nil {
		return 0, fmt.Errorf("net_structures: buffer not in read mode")
	}
	return io.ReadFull(pb.reader, p)
}

func (pb *PacketBuffer) Write(p []byte) (int, error) {
	if pb.writer == nil {
		return 0, fmt.Errorf("net_structures: buffer not in write mode")
	}
	return pb.writer.Write(p)
}

func (pb *PacketBuffer) Reader() io.Reader { return pb.reader }
func (pb *PacketBuffer) Writer() io.Writer { return pb.writer }

// --- VarInt / VarLong ---

func (pb *PacketBuffer) ReadVarInt() (VarInt, error)   { return DecodeVarInt(pb.reader) }
func (pb *PacketBuffer) WriteVarInt(v VarInt) error    { return v.Encode(pb.writer) }
func (pb *PacketBuffer) ReadVarLong() (VarLong, error) { return DecodeVarLong(pb.reader) }
func (pb *PacketBuffer) WriteVarLong(v VarLong) error  { return v.Encode(pb.writer) }

// --- Fixed-width scalars ---

func (pb *PacketBuffer) ReadBool() (Boolean, error) { return DecodeBoolean(pb.reader) }
func (pb *PacketBuffer) WriteBool(v Boolean) error  { return v.Encode(pb.writer) }

func (pb *PacketBuffer) ReadInt8() (Int8, error) { return DecodeInt8(pb.reader) }
func (pb *PacketBuffer) WriteInt8(v Int8) error  { return v.Encode(pb.writer) }

func (pb *PacketBuffer) ReadUint8() (Uint8, error) { return DecodeUint8(pb.reader) }
func (pb *PacketBuffer) WriteUint8(v Uint8) error  { return v.Encode(pb.writer) }

func (pb *PacketBuffer) ReadInt16() (Int16, error) { return DecodeInt16(pb.reader) }
func (pb *PacketBuffer) WriteInt16(v Int16) error  { return v.Encode(pb.writer) }

func (pb *PacketBuffer) ReadUint16() (Uint16, error) { return DecodeUint16(pb.reader) }
func (pb *PacketBuffer) WriteUint16(v Uint16) error  { return v.Encode(pb.writer) }

func (pb *PacketBuffer) ReadInt32() (Int32, error) { return DecodeInt32(pb.reader) }
func (pb *PacketBuffer) WriteInt32(v Int32) error  { return v.Encode(pb.writer) }

func (pb *PacketBuffer) ReadInt64() (Int64, error) { return DecodeInt64(pb.reader) }
func (pb *PacketBuffer) WriteInt64(v Int64) error  { return v.Encode(pb.writer) }

func (pb *PacketBuffer) ReadFloat32() (Float32, error) { return DecodeFloat32(pb.reader) }
func (pb *PacketBuffer) WriteFloat32(v Float32) error  { return v.Encode(pb.writer) }

func (pb *PacketBuffer) ReadFloat64() (Float64, error) { return DecodeFloat64(pb.reader) }
func (pb *PacketBuffer) WriteFloat64(v Float64) error  { return v.Encode(pb.writer) }

// --- String / Identifier / Component ---

func (pb *PacketBuffer) ReadString(maxLen int) (String, error) { return DecodeString(pb.reader, maxLen) }
func (pb *PacketBuffer) WriteString(v String) error             { return v.Encode(pb.writer) }

func (pb *PacketBuffer) ReadIdentifier() (Identifier, error) { return DecodeIdentifier(pb.reader) }
func (pb *PacketBuffer) WriteIdentifier(v Identifier) error  { return v.Encode(pb.writer) }

func (pb *PacketBuffer) ReadComponent(maxLen int) (Component, error) {
	return DecodeComponent(pb.reader, maxLen)
}
func (pb *PacketBuffer) WriteComponent(v Component) error { return v.Encode(pb.writer) }

// --- Byte arrays ---

func (pb *PacketBuffer) ReadByteArray(maxLen int) (ByteArray, error) {
	length, err := pb.ReadVarInt()
	if err != nil {
		return nil, fmt.Errorf("read byte array length: %w", err)
	}
	if length < 0 {
		return nil, fmt.Errorf("negative byte array length: %d", length)
	}
	if maxLen > 0 && int(length) > maxLen {
		return nil, fmt.Errorf("byte array length %d exceeds maximum %d", length, maxLen)
	}
	data := make([]byte, length)
	if _, err := pb.Read(data); err != nil {
		return nil, fmt.Errorf("read byte array data: %w", err)
	}
	return data, nil
}

func (pb *PacketBuffer) WriteByteArray(v ByteArray) error {
	if err := pb.WriteVarInt(VarInt(len(v))); err != nil {
		return fmt.Errorf("write byte array length: %w", err)
	}
	if _, err := pb.Write(v); err != nil {
		return fmt.Errorf("write byte array data: %w", err)
	}
	return nil
}

func (pb *PacketBuffer) ReadFixedByteArray(n int) (ByteArray, error) {
	data := make([]byte, n)
	if _, err := pb.Read(data); err != nil {
		return nil, err
	}
	return data, nil
}

func (pb *PacketBuffer) WriteFixedByteArray(v ByteArray) error {
	_, err := pb.Write(v)
	return err
}

// ReadRemaining drains the reader to the end, for opaque trailing payloads
// (e.g. a LoginPluginRequest's data span).
func (pb *PacketBuffer) ReadRemaining() (ByteArray, error) {
	return io.ReadAll(pb.reader)
}

// --- Position / UUID ---

func (pb *PacketBuffer) ReadPosition() (Position, error) { return DecodePosition(pb.reader) }
func (pb *PacketBuffer) WritePosition(v Position) error  { return v.Encode(pb.writer) }

func (pb *PacketBuffer) ReadUUID() (UUID, error) { return DecodeUUID(pb.reader) }
func (pb *PacketBuffer) WriteUUID(v UUID) error  { return v.Encode(pb.writer) }
