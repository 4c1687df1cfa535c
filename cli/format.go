package cli

import (
	"github.com/nojimay/jack/lang"
)

// outputFormat selects the serialization format the CLI renders a
// deep-forced result in. JSON is the language's primary output surface per
// spec.md §6; YAML is the teacher's secondary format, wired through
// lang.MarshalYAML the same way cli/log.go's logFormat wires its own enum
// flag.
type outputFormat string

const (
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

// marshal renders j in the selected format, indenting JSON output for
// readability. YAML output from goccy/go-yaml is already indented.
func marshal(f outputFormat, j *lang.JSON) ([]byte, error) {
	if f == formatYAML {
		return lang.MarshalYAML(j)
	}

	return lang.MarshalJSON(j, "  ")
}
