package catalog

import (
	"sort"

	"github.com/cfnlite/cfnlite"
)

// Preset is a named network-protocol shorthand: the port it listens on and
// the transport-layer protocol CloudFormation rules actually want.
type Preset struct {
	Name      string
	Port      int
	Transport string
}

// Application-layer presets all ride on TCP; ICMP is not an application
// protocol and is special-cased by the builders.
var presets = map[string]Preset{
	"http":      {Name: "http", Port: 80, Transport: "tcp"},
	"https":     {Name: "https", Port: 443, Transport: "tcp"},
	"icmp":      {Name: "icmp", Port: 0, Transport: "icmp"},
	"memcached": {Name: "memcached", Port: 11211, Transport: "tcp"},
	"mongo":     {Name: "mongo", Port: 27017, Transport: "tcp"},
	"mysql":     {Name: "mysql", Port: 3306, Transport: "tcp"},
	"ntp":       {Name: "ntp", Port: 123, Transport: "tcp"},
	"psql":      {Name: "psql", Port: 5432, Transport: "tcp"},
	"redis":     {Name: "redis", Port: 6379, Transport: "tcp"},
	"smtp":      {Name: "smtp", Port: 25, Transport: "tcp"},
	"ssh":       {Name: "ssh", Port: 22, Transport: "tcp"},
}

// Protocol looks up a preset by name (case insensitive at the caller).
func Protocol(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, &cfnlite.UnknownProtocolPresetError{Name: name}
	}
	return p, nil
}

// FallbackPreset is the documented behavior for preset names the catalog does
// not know: a plain TCP rule on port 80 carrying the user's name, so the rule
// is generated and the user edits the port afterwards.
func FallbackPreset(name string) Preset {
	return Preset{Name: name, Port: 80, Transport: "tcp"}
}

// PresetNames returns the known preset names, for explain output.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
