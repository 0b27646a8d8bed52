// Package listvalue parses list values stored in INI files, such as the
// channel lists of the config file and the node lists of a key file.
package listvalue

import "strings"

// Parse splits a multi-line list value, dropping blank lines and lines
// starting with '#' or ';'. Items on one line may be separated by commas,
// spaces or tabs.
func Parse(value string) []string {
	var out []string
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		out = append(out, strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})...)
	}
	return out
}
