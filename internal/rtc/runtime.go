package rtc

import "strings"

// ParseRuntimeControl parses a full runtime-control argument such as
// "log_level_increase=poller,2" or "config_cache_reload".
//
// Targeted commands match by prefix and hand the remainder to ParseTarget, so
// "log_level_increasex" is rejected as an unknown log level option. Untargeted
// commands must match exactly and always address every process.
func (p *Parser) ParseRuntimeControl(arg string) (Task, error) {
	for _, cmd := range []Command{LogLevelIncrease, LogLevelDecrease} {
		if target, ok := strings.CutPrefix(arg, cmd.String()); ok {
			return p.ParseTarget(target, cmd)
		}
	}

	if cmd, ok := CommandByName(arg); ok && !cmd.Targeted() {
		return Task{Command: cmd, Scope: Broadcast()}, nil
	}

	err := optionError(ErrInvalidRuntimeOption, arg)
	p.report(err)
	return Task{}, err
}
