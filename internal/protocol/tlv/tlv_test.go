package tlv

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeDecodeFieldsRoundTripPreservesUnknown(t *testing.T) {
	in := []Field{
		U32(2, 0x00020a01),
		{ID: 9999, Type: TypeBytes, Value: []byte{0xAA, 0xBB}}, // unknown field id
	}
	b := EncodeFields(in)
	out, err := DecodeFields(b)
	if err != nil {
		t.Fatalf("decode fields: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(out))
	}
	if out[1].ID != 9999 || out[1].Type != TypeBytes || !bytes.Equal(out[1].Value, []byte{0xAA, 0xBB}) {
		t.Fatalf("unknown field not preserved: %+v", out[1])
	}
	v, err := U32FromBytes(out[0].Value)
	if err != nil || v != 0x00020a01 {
		t.Fatalf("u32 mismatch: %#x %v", v, err)
	}
}

func TestFixedWidthHelpers(t *testing.T) {
	if v, err := U8FromBytes(U8(1, 0x81).Value); err != nil || v != 0x81 {
		t.Fatalf("u8 round trip: %#x %v", v, err)
	}
	if v, err := U16FromBytes(U16(1, 65535).Value); err != nil || v != 65535 {
		t.Fatalf("u16 round trip: %d %v", v, err)
	}
	if _, err := U16FromBytes([]byte{1}); err == nil {
		t.Fatalf("expected short u16 error")
	}
	if err := MustType(String(5, "x"), TypeU8); err == nil {
		t.Fatalf("expected type mismatch")
	}
}

func TestDecodeFieldsMalformedHeaderIsDeterministic(t *testing.T) {
	_, err := DecodeFields([]byte{1, 2, 3})
	if !errors.Is(err, ErrShortFieldHeader) {
		t.Fatalf("expected ErrShortFieldHeader, got %v", err)
	}
}

func TestDecodeFieldsMalformedLengthIsDeterministic(t *testing.T) {
	// id=1, type=string, len=5, value only 2 bytes
	payload := []byte{0, 1, TypeString, 0, 0, 0, 5, 'a', 'b'}
	_, err := DecodeFields(payload)
	if !errors.Is(err, ErrShortFieldValue) {
		t.Fatalf("expected ErrShortFieldValue, got %v", err)
	}
}
