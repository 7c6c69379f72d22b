package net_structures_test

import (
	"bytes"
	"testing"

	ns "github.com/mcproxy/mcproxy/protocol/net_structures"
)

// Test vectors from the public protocol documentation's varint examples.
var varIntVectors = []struct {
	value   int32
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{2, []byte{0x02}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{255, []byte{0xff, 0x01}},
	{25565, []byte{0xdd, 0xc7, 0x01}},
	{2097151, []byte{0xff, 0xff, 0x7f}},
	{2147483647, []byte{0xff, 0xff, 0xff, 0xff, 0x07}},
	{-1, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	{-2147483648, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
}

func TestVarIntEncode(t *testing.T) {
	for _, v := range varIntVectors {
		var buf bytes.Buffer
		if err := ns.VarInt(v.value).Encode(&buf); err != nil {
			t.Fatalf("encode %d: %v", v.value, err)
		}
		if !bytes.Equal(buf.Bytes(), v.encoded) {
			t.Errorf("encode %d = % x; want % x", v.value, buf.Bytes(), v.encoded)
		}
	}
}

func TestVarIntDecode(t *testing.T) {
	for _, v := range varIntVectors {
		got, err := ns.DecodeVarInt(bytes.NewReader(v.encoded))
		if err != nil {
			t.Fatalf("decode % x: %v", v.encoded, err)
		}
		if int32(got) != v.value {
			t.Errorf("decode % x = %d; want %d", v.encoded, got, v.value)
		}
	}
}

func TestVarIntRoundTripArbitrary(t *testing.T) {
	values := []int32{0, 1, -1, 42, -42, 1 << 20, -(1 << 20), 2147483647, -2147483648}
	for _, val := range values {
		var buf bytes.Buffer
		if err := ns.VarInt(val).Encode(&buf); err != nil {
			t.Fatalf("encode %d: %v", val, err)
		}
		got, err := ns.DecodeVarInt(&buf)
		if err != nil {
			t.Fatalf("decode round trip of %d: %v", val, err)
		}
		if int32(got) != val {
			t.Errorf("round trip %d = %d", val, got)
		}
	}
}

func TestVarIntTooBig(t *testing.T) {
	// Six continuation bytes before the terminator: must fail at the fifth.
	malformed := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00}
	_, err := ns.DecodeVarInt(bytes.NewReader(malformed))
	if err == nil {
		t.Fatal("expected an error decoding an overlong varint")
	}
}

func TestVarLongRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 25565, 1 << 40, -(1 << 40), 9223372036854775807, -9223372036854775808}
	for _, val := range values {
		var buf bytes.Buffer
		if err := ns.VarLong(val).Encode(&buf); err != nil {
			t.Fatalf("encode %d: %v", val, err)
		}
		got, err := ns.DecodeVarLong(&buf)
		if err != nil {
			t.Fatalf("decode round trip of %d: %v", val, err)
		}
		if int64(got) != val {
			t.Errorf("round trip %d = %d", val, got)
		}
	}
}

func TestVarLongTooBig(t *testing.T) {
	malformed := make([]byte, 11)
	for i := range malformed {
		malformed[i] = 0x80
	}
	_, err := ns.DecodeVarLong(bytes.NewReader(malformed))
	if err == nil {
		t.Fatal("expected an error decoding an overlong varlong")
	}
}
