// Package proctype maps daemon process-type names to the numeric codes carried
// in process-type scoped tasks.
package proctype

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// MaxCode is the largest code that fits the scope byte next to the scope flag.
const MaxCode uint8 = 0x7f

var (
	ErrInvalidType   = errors.New("proctype: invalid process type")
	ErrDuplicateName = errors.New("proctype: duplicate process type name")
	ErrDuplicateCode = errors.New("proctype: duplicate process type code")
)

// Type is one named process type.
type Type struct {
	Code uint8  `json:"code"`
	Name string `json:"name"`
}

// Registry is immutable once built and safe for concurrent reads.
type Registry struct {
	byName map[string]uint8
	byCode map[uint8]string
}

// New validates types and builds a registry from them.
func New(types []Type) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]uint8, len(types)),
		byCode: make(map[uint8]string, len(types)),
	}
	for i, t := range types {
		name := strings.TrimSpace(t.Name)
		if name == "" || name != t.Name {
			return nil, fmt.Errorf("%w: types[%d] name %q", ErrInvalidType, i, t.Name)
		}
		if t.Code > MaxCode {
			return nil, fmt.Errorf("%w: %q code %d exceeds %d", ErrInvalidType, name, t.Code, MaxCode)
		}
		if _, ok := r.byName[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		if prev, ok := r.byCode[t.Code]; ok {
			return nil, fmt.Errorf("%w: %d used by %q and %q", ErrDuplicateCode, t.Code, prev, name)
		}
		r.byName[name] = t.Code
		r.byCode[t.Code] = name
	}
	return r, nil
}

// Resolve returns the code for an exact, case-sensitive name.
func (r *Registry) Resolve(name string) (uint8, bool) {
	code, ok := r.byName[name]
	return code, ok
}

func (r *Registry) Name(code uint8) (string, bool) {
	name, ok := r.byCode[code]
	return name, ok
}

// Types lists the registry ordered by code.
func (r *Registry) Types() []Type {
	out := make([]Type, 0, len(r.byCode))
	for code, name := range r.byCode {
		out = append(out, Type{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// WithOverrides returns a new registry where each override either renumbers an
// existing name or adds a new one. The receiver is left untouched.
func (r *Registry) WithOverrides(overrides map[string]uint8) (*Registry, error) {
	if len(overrides) == 0 {
		return r, nil
	}
	merged := make(map[string]uint8, len(r.byName)+len(overrides))
	for name, code := range r.byName {
		merged[name] = code
	}
	for name, code := range overrides {
		merged[name] = code
	}
	types := make([]Type, 0, len(merged))
	for name, code := range merged {
		types = append(types, Type{Code: code, Name: name})
	}
	sort.Slice(types, func(i, j int) bool {
		if types[i].Code != types[j].Code {
			return types[i].Code < types[j].Code
		}
		return types[i].Name < types[j].Name
	})
	return New(types)
}
