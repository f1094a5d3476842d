package rtc

import (
	"fmt"
	"strconv"
	"strings"
)

// Task is the logical runtime-control message before packing.
type Task struct {
	Command Command
	Scope   Scope
	Data    uint16
}

func (t Task) String() string {
	return fmt.Sprintf("command=%s scope=%s data=%d", t.Command, t.Scope, t.Data)
}

// Resolver maps a process-type name to its numeric code.
type Resolver interface {
	Resolve(name string) (uint8, bool)
}

// ResolverFunc adapts a plain function to Resolver.
type ResolverFunc func(name string) (uint8, bool)

func (f ResolverFunc) Resolve(name string) (uint8, bool) {
	return f(name)
}

// Reporter receives one diagnostic per rejected option.
type Reporter interface {
	Report(err error)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(err error)

func (f ReporterFunc) Report(err error) {
	f(err)
}

// NopReporter discards diagnostics.
type NopReporter struct{}

func (NopReporter) Report(error) {}

// Parser turns control option text into tasks. It holds no mutable state and
// is safe for concurrent use when its Resolver is.
type Parser struct {
	Resolver Resolver
	Reporter Reporter
}

func NewParser(resolver Resolver, reporter Reporter) *Parser {
	return &Parser{Resolver: resolver, Reporter: reporter}
}

// ParseTarget parses the scope suffix of a log level option ("", "=<pid>" or
// "=<type>[,<num>]") and binds it to command. The command code is not
// validated.
func (p *Parser) ParseTarget(option string, command Command) (Task, error) {
	task, err := parseTarget(option, command, p.Resolver)
	if err != nil {
		p.report(err)
		return Task{}, err
	}
	return task, nil
}

// ParseTarget is the one-shot form of Parser.ParseTarget.
func ParseTarget(option string, command Command, resolver Resolver, reporter Reporter) (Task, error) {
	return NewParser(resolver, reporter).ParseTarget(option, command)
}

func (p *Parser) report(err error) {
	if p.Reporter != nil {
		p.Reporter.Report(err)
	}
}

func parseTarget(option string, command Command, resolver Resolver) (Task, error) {
	if option == "" {
		return Task{Command: command, Scope: Broadcast()}, nil
	}

	rest, ok := strings.CutPrefix(option, "=")
	if !ok {
		return Task{}, optionError(ErrUnknownOption, option)
	}

	if rest != "" && isDigit(rest[0]) {
		pid, ok := parseUshort(rest)
		if !ok {
			return Task{}, optionError(ErrInvalidIdentifier, option)
		}
		return Task{Command: command, Scope: ByProcessID(), Data: pid}, nil
	}

	// ordinal is checked before the name lookup
	name, ordinalText, hasOrdinal := strings.Cut(rest, ",")
	var ordinal uint16
	if hasOrdinal {
		n, ok := parseUshort(ordinalText)
		if !ok {
			return Task{}, optionError(ErrInvalidOrdinal, option)
		}
		if n == 0 {
			return Task{}, optionError(ErrZeroOrdinal, option)
		}
		ordinal = n
	}

	if resolver == nil {
		return Task{}, optionError(ErrUnknownProcessType, option)
	}
	code, ok := resolver.Resolve(name)
	if !ok {
		return Task{}, optionError(ErrUnknownProcessType, option)
	}
	return Task{Command: command, Scope: ByProcessType(code), Data: ordinal}, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// parseUshort accepts plain decimal digits in [0, 65535].
func parseUshort(s string) (uint16, bool) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(n), true
}
