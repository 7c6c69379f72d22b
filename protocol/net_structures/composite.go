package net_structures

import "fmt"

// ElementEncoder encodes one array/optional element to buf.
type ElementEncoder[T any] func(buf *PacketBuffer, v T) error

// ElementDecoder decodes one array/optional element from buf.
type ElementDecoder[T any] func(buf *PacketBuffer) (T, error)

// PrefixedArray is a VarInt length-prefixed array of elements.
type PrefixedArray[T any] []T

func (a *PrefixedArray[T]) DecodeWith(buf *PacketBuffer, decode ElementDecoder[T]) error {
	length, err := buf.ReadVarInt()
	if err != nil {
		return fmt.Errorf("read array length: %w", err)
	}
	if length < 0 {
		return fmt.Errorf("negative array length: %d", length)
	}
	*a = make([]T, length)
	for i := range *a {
		if (*a)[i], err = decode(buf); err != nil {
			return fmt.Errorf("read array element %d: %w", i, err)
		}
	}
	return nil
}

func (a PrefixedArray[T]) EncodeWith(buf *PacketBuffer, encode ElementEncoder[T]) error {
	if err := buf.WriteVarInt(VarInt(len(a))); err != nil {
		return fmt.Errorf("write array length: %w", err)
	}
	for i, v := range a {
		if err := encode(buf, v); err != nil {
			return fmt.Errorf("write array element %d: %w", i, err)
		}
	}
	return nil
}

// PrefixedOptional is a Boolean-prefixed optional value.
type PrefixedOptional[T any] struct {
	Present bool
	Value   T
}

func Some[T any](value T) PrefixedOptional[T] {
	return PrefixedOptional[T]{Present: true, Value: value}
}

func NoneOf[T any]() PrefixedOptional[T] {
	return PrefixedOptional[T]{}
}

func (o *PrefixedOptional[T]) DecodeWith(buf *PacketBuffer, decode ElementDecoder[T]) error {
	present, err := buf.ReadBool()
	if err != nil {
		return fmt.Errorf("read optional presence: %w", err)
	}
	o.Present = bool(present)
	if o.Present {
		if o.Value, err = decode(buf); err != nil {
			return fmt.Errorf("read optional value: %w", err)
		}
	}
	return nil
}

func (o PrefixedOptional[T]) EncodeWith(buf *PacketBuffer, encode ElementEncoder[T]) error {
	if err := buf.WriteBool(Boolean(o.Present)); err != nil {
		return fmt.Errorf("write optional presence: %w", err)
	}
	if o.Present {
		if err := encode(buf, o.Value); err != nil {
			return fmt.Errorf("write optional value: %w", err)
		}
	}
	return nil
}

func (o PrefixedOptional[T]) Get() (T, bool) {
	return o.Value, o.Present
}
