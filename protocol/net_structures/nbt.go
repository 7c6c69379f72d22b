package net_structures

import (
	"fmt"
	"io"

	"github.com/Tnze/go-mc/nbt"
)

// NBTBlob carries an opaque network-format NBT compound, read and written
// without being fully modeled — only JoinGame's registry codec field needs
// this, and nothing inspects its contents.
type NBTBlob struct {
	Data any
}

func (n NBTBlob) Encode(w io.Writer) error {
	if n.Data == nil {
		_, err := w.Write([]byte{0x00})
		return err
	}
	enc := nbt.NewEncoder(w)
	enc.NetworkFormat(true)
	if err := enc.Encode(n.Data, ""); err != nil {
		return fmt.Errorf("encode nbt: %w", err)
	}
	return nil
}

// DecodeNBTBlob reads one network-format NBT compound from r.
func DecodeNBTBlob(r io.Reader) (NBTBlob, error) {
	dec := nbt.NewDecoder(r)
	dec.NetworkFormat(true)
	var data any
	if _, err := dec.Decode(&data); err != nil {
		return NBTBlob{}, fmt.Errorf("decode nbt: %w", err)
	}
	return NBTBlob{Data: data}, nil
}

func (pb *PacketBuffer) ReadNBTBlob() (NBTBlob, error) { return DecodeNBTBlob(pb.reader) }
func (pb *PacketBuffer) WriteNBTBlob(v NBTBlob) error  { return v.Encode(pb.writer) }
