package rtc

import "fmt"

// ScopeKind selects which managed processes a task addresses.
type ScopeKind uint8

const (
	ScopeBroadcast ScopeKind = iota + 1
	ScopeProcessID
	ScopeProcessType
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeBroadcast:
		return "broadcast"
	case ScopeProcessID:
		return "pid"
	case ScopeProcessType:
		return "process_type"
	default:
		return fmt.Sprintf("scope(%d)", uint8(k))
	}
}

// Scope is the addressing mode of a task. ProcessType is meaningful only for
// ScopeProcessType.
type Scope struct {
	Kind        ScopeKind
	ProcessType uint8
}

func Broadcast() Scope {
	return Scope{Kind: ScopeBroadcast}
}

func ByProcessID() Scope {
	return Scope{Kind: ScopeProcessID}
}

func ByProcessType(code uint8) Scope {
	return Scope{Kind: ScopeProcessType, ProcessType: code}
}

func (s Scope) String() string {
	if s.Kind == ScopeProcessType {
		return fmt.Sprintf("process_type:%d", s.ProcessType)
	}
	return s.Kind.String()
}
