// Package envelope frames a packed runtime-control task for whatever transport
// carries it to the daemon.
package envelope

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/danmuck/rtcctl/internal/protocol/frame"
	"github.com/danmuck/rtcctl/internal/protocol/schema"
	"github.com/danmuck/rtcctl/internal/protocol/tlv"
	"github.com/danmuck/rtcctl/internal/rtc"
	"github.com/google/uuid"
)

var (
	ErrInvalidEnvelope = errors.New("envelope: invalid task envelope")
	ErrTaskMismatch    = errors.New("envelope: task fields disagree with packed task")
	ErrMessageType     = errors.New("envelope: unexpected message type")
)

// Task is one packed task plus the request id that correlates it.
type Task struct {
	RequestID string
	Packed    uint32
	Task      rtc.Task
}

// NewTask packs task under layout and assigns a fresh request id.
func NewTask(task rtc.Task, layout rtc.Layout) (Task, error) {
	packed, err := layout.Encode(task)
	if err != nil {
		return Task{}, err
	}
	return Task{RequestID: uuid.NewString(), Packed: packed, Task: task}, nil
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.RequestID) == "" {
		return fmt.Errorf("%w: missing request_id", ErrInvalidEnvelope)
	}
	return nil
}

// EncodeTaskFrame writes the envelope as one framed TLV message. The unpacked
// command, scope byte and data ride alongside the packed value so a reader
// can cross-check them.
func EncodeTaskFrame(messageID uint64, t Task) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	cmd, scope, data := rtc.Unpack(t.Packed)
	fields := []tlv.Field{
		tlv.String(schema.FieldRequestID, t.RequestID),
		tlv.U32(schema.FieldPackedTask, t.Packed),
		tlv.U8(schema.FieldCommand, uint8(cmd)),
		tlv.U8(schema.FieldScope, scope),
		tlv.U16(schema.FieldData, data),
	}
	if err := schema.Validate(schema.MsgTask, fields); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err := frame.WriteFrame(&buf, frame.Frame{
		Header: frame.Header{
			MessageID:   messageID,
			MessageType: schema.MsgTask,
		},
		Payload: tlv.EncodeFields(fields),
	}, frame.DefaultLimits())
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeTaskFrame validates one task frame and unpacks it under layout.
func DecodeTaskFrame(f frame.Frame, layout rtc.Layout) (Task, error) {
	if f.Header.MessageType != schema.MsgTask {
		return Task{}, fmt.Errorf("%w: %d", ErrMessageType, f.Header.MessageType)
	}
	fields, err := tlv.DecodeFields(f.Payload)
	if err != nil {
		return Task{}, err
	}
	if err := schema.Validate(schema.MsgTask, fields); err != nil {
		return Task{}, err
	}

	requestField, _ := tlv.GetField(fields, schema.FieldRequestID)
	out := Task{RequestID: string(requestField.Value)}
	if err := out.Validate(); err != nil {
		return Task{}, err
	}
	if out.Packed, err = u32Field(fields, schema.FieldPackedTask); err != nil {
		return Task{}, err
	}
	cmd, err := u8Field(fields, schema.FieldCommand)
	if err != nil {
		return Task{}, err
	}
	scope, err := u8Field(fields, schema.FieldScope)
	if err != nil {
		return Task{}, err
	}
	data, err := u16Field(fields, schema.FieldData)
	if err != nil {
		return Task{}, err
	}

	wantCmd, wantScope, wantData := rtc.Unpack(out.Packed)
	if rtc.Command(cmd) != wantCmd || scope != wantScope || data != wantData {
		return Task{}, fmt.Errorf(
			"%w: packed=%#08x command=%d scope=%#02x data=%d",
			ErrTaskMismatch, out.Packed, cmd, scope, data,
		)
	}
	if out.Task, err = layout.Decode(out.Packed); err != nil {
		return Task{}, err
	}
	return out, nil
}

func u8Field(fields []tlv.Field, id uint16) (uint8, error) {
	f, _ := tlv.GetField(fields, id)
	return tlv.U8FromBytes(f.Value)
}

func u16Field(fields []tlv.Field, id uint16) (uint16, error) {
	f, _ := tlv.GetField(fields, id)
	return tlv.U16FromBytes(f.Value)
}

func u32Field(fields []tlv.Field, id uint16) (uint32, error) {
	f, _ := tlv.GetField(fields, id)
	return tlv.U32FromBytes(f.Value)
}
