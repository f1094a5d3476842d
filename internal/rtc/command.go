package rtc

import "fmt"

// Command is the control action code carried in the low byte of a task.
type Command uint8

// Command codes understood by the receiving daemon.
const (
	LogLevelIncrease   Command = 1
	LogLevelDecrease   Command = 2
	ConfigCacheReload  Command = 8
	HousekeeperExecute Command = 9
)

var commandNames = map[Command]string{
	LogLevelIncrease:   "log_level_increase",
	LogLevelDecrease:   "log_level_decrease",
	ConfigCacheReload:  "config_cache_reload",
	HousekeeperExecute: "housekeeper_execute",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", uint8(c))
}

// Targeted reports whether the command accepts a scope suffix on the command line.
func (c Command) Targeted() bool {
	return c == LogLevelIncrease || c == LogLevelDecrease
}

// CommandByName returns the command registered under its runtime-control option name.
func CommandByName(name string) (Command, bool) {
	for cmd, n := range commandNames {
		if n == name {
			return cmd, true
		}
	}
	return 0, false
}
