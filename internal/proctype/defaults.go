package proctype

// Process types of the controlled daemon, in code order.
var defaultTypes = []Type{
	{0, "poller"},
	{1, "unreachable poller"},
	{2, "ipmi poller"},
	{3, "pinger"},
	{4, "java poller"},
	{5, "http poller"},
	{6, "trapper"},
	{7, "snmp trapper"},
	{8, "proxy poller"},
	{9, "escalator"},
	{10, "history syncer"},
	{11, "discoverer"},
	{12, "alerter"},
	{13, "timer"},
	{14, "housekeeper"},
	{15, "data sender"},
	{16, "configuration syncer"},
	{17, "heartbeat sender"},
	{18, "self-monitoring"},
	{19, "vmware collector"},
	{20, "collector"},
	{21, "listener"},
	{22, "active checks"},
}

// Default returns the built-in registry.
func Default() *Registry {
	r, err := New(defaultTypes)
	if err != nil {
		panic(err)
	}
	return r
}
