package rtc

import (
	"fmt"
	"strings"
)

// Packed task layout shared with the receiving daemon.
//
//	bits  0-7   command
//	bits  8-15  scope byte
//	bits 16-31  data
const (
	commandShift = 0
	scopeShift   = 8
	dataShift    = 16

	commandMask uint32 = 0x000000ff
	scopeMask   uint32 = 0x0000ff00
	dataMask    uint32 = 0xffff0000
)

// Scope byte values. Without ScopeFlag the low seven bits are a process type code.
const (
	ScopeFlag      uint8 = 0x80
	ScopeFlagPID   uint8 = ScopeFlag | 0x01
	ScopeFlagAll   uint8 = ScopeFlag | 0x02
	MaxProcessType uint8 = 0x7f
)

// ScopeMapping decides how broadcast and pid scopes share the scope byte.
type ScopeMapping uint8

const (
	// MappingPIDRefinesBroadcast encodes broadcast as pid scope with pid 0,
	// which is how the daemon reads it. The zero value.
	MappingPIDRefinesBroadcast ScopeMapping = iota
	// MappingDistinct gives broadcast its own scope byte so pid 0 stays a pid.
	MappingDistinct
)

func (m ScopeMapping) String() string {
	switch m {
	case MappingPIDRefinesBroadcast:
		return "pid-refines-broadcast"
	case MappingDistinct:
		return "distinct"
	default:
		return fmt.Sprintf("mapping(%d)", uint8(m))
	}
}

// ParseScopeMapping accepts "pid-refines-broadcast" (or "refine") and "distinct".
// An empty string selects the default mapping.
func ParseScopeMapping(raw string) (ScopeMapping, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "pid-refines-broadcast", "refine":
		return MappingPIDRefinesBroadcast, nil
	case "distinct":
		return MappingDistinct, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidScopeMapping, raw)
	}
}

// Layout packs and unpacks tasks under one scope mapping.
type Layout struct {
	Mapping ScopeMapping
}

// Encode packs t. It is the only place task bits are assembled.
func (l Layout) Encode(t Task) (uint32, error) {
	scope, err := l.scopeByte(t)
	if err != nil {
		return 0, err
	}
	return Pack(t.Command, scope, t.Data), nil
}

// Decode unpacks a task. Under MappingPIDRefinesBroadcast a pid scope with
// pid 0 decodes as Broadcast.
func (l Layout) Decode(packed uint32) (Task, error) {
	cmd, scope, data := Unpack(packed)
	t := Task{Command: cmd, Data: data}
	switch {
	case scope&ScopeFlag == 0:
		t.Scope = ByProcessType(scope)
	case scope == ScopeFlagPID:
		if l.Mapping == MappingPIDRefinesBroadcast && data == 0 {
			t.Scope = Broadcast()
		} else {
			t.Scope = ByProcessID()
		}
	case scope == ScopeFlagAll && l.Mapping == MappingDistinct:
		if data != 0 {
			return Task{}, fmt.Errorf("%w: data=%d", ErrBroadcastData, data)
		}
		t.Scope = Broadcast()
	default:
		return Task{}, fmt.Errorf("%w: scope byte 0x%02x under %s", ErrInvalidScope, scope, l.Mapping)
	}
	return t, nil
}

func (l Layout) scopeByte(t Task) (uint8, error) {
	switch t.Scope.Kind {
	case ScopeBroadcast:
		if t.Data != 0 {
			return 0, fmt.Errorf("%w: data=%d", ErrBroadcastData, t.Data)
		}
		if l.Mapping == MappingDistinct {
			return ScopeFlagAll, nil
		}
		return ScopeFlagPID, nil
	case ScopeProcessID:
		return ScopeFlagPID, nil
	case ScopeProcessType:
		if t.Scope.ProcessType > MaxProcessType {
			return 0, fmt.Errorf("%w: %d", ErrProcessTypeOutOfRange, t.Scope.ProcessType)
		}
		return t.Scope.ProcessType, nil
	default:
		return 0, fmt.Errorf("%w: kind=%d", ErrInvalidScope, uint8(t.Scope.Kind))
	}
}

// Pack assembles raw task fields without any scope validation.
func Pack(cmd Command, scope uint8, data uint16) uint32 {
	return uint32(cmd)<<commandShift | uint32(scope)<<scopeShift | uint32(data)<<dataShift
}

// Unpack splits a packed task into its raw fields.
func Unpack(packed uint32) (Command, uint8, uint16) {
	return Command((packed & commandMask) >> commandShift),
		uint8((packed & scopeMask) >> scopeShift),
		uint16((packed & dataMask) >> dataShift)
}
