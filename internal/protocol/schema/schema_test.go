package schema

import (
	"testing"

	"github.com/danmuck/rtcctl/internal/protocol/tlv"
	"github.com/danmuck/rtcctl/internal/testutil/testlog"
)

func taskFields() []tlv.Field {
	return []tlv.Field{
		tlv.String(FieldRequestID, "req-1"),
		tlv.U32(FieldPackedTask, 0x00020001),
		tlv.U8(FieldCommand, 1),
		tlv.U8(FieldScope, 0),
		tlv.U16(FieldData, 2),
	}
}

func TestValidateTaskRequiredFields(t *testing.T) {
	testlog.Start(t)
	if err := Validate(MsgTask, taskFields()); err != nil {
		t.Fatalf("validate task: %v", err)
	}
}

func TestValidateUnknownFieldsIgnored(t *testing.T) {
	testlog.Start(t)
	fields := append(taskFields(), tlv.Field{ID: 9999, Type: tlv.TypeBytes, Value: []byte{0x01}})
	if err := Validate(MsgTask, fields); err != nil {
		t.Fatalf("validate with unknown field: %v", err)
	}
}

func TestValidateMissingRequiredDeterministic(t *testing.T) {
	testlog.Start(t)
	fields := []tlv.Field{tlv.String(FieldRequestID, "req-1")}
	err := Validate(MsgTask, fields)
	if err == nil {
		t.Fatalf("expected error")
	}
	ve, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if ve.FieldID != FieldPackedTask || ve.Reason != "missing required field" {
		t.Fatalf("unexpected validation error: %+v", ve)
	}
}

func TestValidateTypeMismatchDeterministic(t *testing.T) {
	testlog.Start(t)
	fields := taskFields()
	fields[4] = tlv.U32(FieldData, 2)
	err := Validate(MsgTask, fields)
	ve, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if ve.FieldID != FieldData || ve.Reason != "type mismatch" {
		t.Fatalf("unexpected validation error: %+v", ve)
	}
}

func TestValidateUnknownMessageType(t *testing.T) {
	testlog.Start(t)
	err := Validate(77, taskFields())
	ve, ok := err.(ValidationError)
	if !ok || ve.Reason != "unknown message_type" {
		t.Fatalf("unexpected error: %v", err)
	}
}
