package config

import (
	"fmt"
	"os"
)

func Template() string {
	return rtcctlTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(rtcctlTemplate), 0o600)
}

const rtcctlTemplate = `# scope_mapping: "pid-refines-broadcast" (daemon default) or "distinct"
scope_mapping = "pid-refines-broadcast"

# format: text | json | hex | frame
format = "text"

# metrics_textfile = "/var/lib/node_exporter/textfile/rtcctl.prom"

# Extra or renumbered process types, name = code (code < 128).
[process_types]
# "report writer" = 23
`
