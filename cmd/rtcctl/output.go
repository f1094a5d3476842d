package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/danmuck/rtcctl/internal/config"
	"github.com/danmuck/rtcctl/internal/proctype"
	"github.com/danmuck/rtcctl/internal/protocol/envelope"
	"github.com/danmuck/rtcctl/internal/rtc"
)

// taskView is the text/json rendering of one task.
type taskView struct {
	RequestID       string `json:"request_id,omitempty"`
	Command         string `json:"command"`
	CommandCode     uint8  `json:"command_code"`
	Scope           string `json:"scope"`
	ProcessType     string `json:"process_type,omitempty"`
	ProcessTypeCode *uint8 `json:"process_type_code,omitempty"`
	Data            uint16 `json:"data"`
	Task            uint32 `json:"task"`
	TaskHex         string `json:"task_hex"`
}

func newTaskView(env envelope.Task, registry *proctype.Registry) taskView {
	v := taskView{
		RequestID:   env.RequestID,
		Command:     env.Task.Command.String(),
		CommandCode: uint8(env.Task.Command),
		Scope:       env.Task.Scope.Kind.String(),
		Data:        env.Task.Data,
		Task:        env.Packed,
		TaskHex:     hexTask(env.Packed),
	}
	if env.Task.Scope.Kind == rtc.ScopeProcessType {
		code := env.Task.Scope.ProcessType
		v.ProcessTypeCode = &code
		if name, ok := registry.Name(code); ok {
			v.ProcessType = name
		}
	}
	return v
}

func (v taskView) scopeLabel() string {
	if v.ProcessTypeCode == nil {
		return v.Scope
	}
	if v.ProcessType == "" {
		return fmt.Sprintf("%s(%d)", v.Scope, *v.ProcessTypeCode)
	}
	return fmt.Sprintf("%s(%s)", v.Scope, v.ProcessType)
}

func writeTask(w io.Writer, format string, env envelope.Task, registry *proctype.Registry, messageID uint64) error {
	switch format {
	case config.FormatHex:
		_, err := fmt.Fprintln(w, hexTask(env.Packed))
		return err
	case config.FormatJSON:
		return json.NewEncoder(w).Encode(newTaskView(env, registry))
	case config.FormatFrame:
		payload, err := envelope.EncodeTaskFrame(messageID, env)
		if err != nil {
			return err
		}
		_, err = w.Write(payload)
		return err
	default:
		v := newTaskView(env, registry)
		_, err := fmt.Fprintf(w, "task=%s command=%s scope=%s data=%d\n", v.TaskHex, v.Command, v.scopeLabel(), v.Data)
		return err
	}
}

func hexTask(packed uint32) string {
	return fmt.Sprintf("0x%08x", packed)
}
