package rtc

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownOption        = errors.New("rtc: unknown option")
	ErrInvalidIdentifier    = errors.New("rtc: invalid process identifier")
	ErrInvalidOrdinal       = errors.New("rtc: invalid process number")
	ErrZeroOrdinal          = errors.New("rtc: zero process number")
	ErrUnknownProcessType   = errors.New("rtc: unknown process type")
	ErrInvalidRuntimeOption = errors.New("rtc: invalid runtime control option")

	ErrInvalidScope          = errors.New("rtc: invalid scope")
	ErrBroadcastData         = errors.New("rtc: broadcast task carries data")
	ErrProcessTypeOutOfRange = errors.New("rtc: process type code out of range")
	ErrInvalidScopeMapping   = errors.New("rtc: invalid scope mapping")
)

// OptionError is a rejected control option. Kind is one of the option sentinels
// above and is what errors.Is matches against.
type OptionError struct {
	Kind   error
	Option string
}

func (e *OptionError) Error() string {
	switch e.Kind {
	case ErrUnknownOption:
		return fmt.Sprintf("unknown log level control option: %s", e.Option)
	case ErrInvalidIdentifier:
		return "invalid log level control option: process identifier must be unsigned short value"
	case ErrInvalidOrdinal:
		return "invalid log level control option: process number must be unsigned short value"
	case ErrZeroOrdinal:
		return "invalid log level control option: process number cannot be zero"
	case ErrUnknownProcessType:
		return fmt.Sprintf("invalid log level control option: unknown process type in %q", e.Option)
	case ErrInvalidRuntimeOption:
		return fmt.Sprintf("invalid runtime control option: %s", e.Option)
	default:
		return fmt.Sprintf("invalid control option %q: %v", e.Option, e.Kind)
	}
}

func (e *OptionError) Unwrap() error {
	return e.Kind
}

// ErrorCode returns a stable short label for an option failure, suitable for
// metrics. Errors that are not option failures map to "internal".
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnknownOption):
		return "unknown_option"
	case errors.Is(err, ErrInvalidIdentifier):
		return "invalid_identifier"
	case errors.Is(err, ErrInvalidOrdinal):
		return "invalid_ordinal"
	case errors.Is(err, ErrZeroOrdinal):
		return "zero_ordinal"
	case errors.Is(err, ErrUnknownProcessType):
		return "unknown_process_type"
	case errors.Is(err, ErrInvalidRuntimeOption):
		return "invalid_runtime_option"
	default:
		return "internal"
	}
}

func optionError(kind error, option string) error {
	return &OptionError{Kind: kind, Option: option}
}
