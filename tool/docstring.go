package tool

import (
	"regexp"
	"strings"

	ai "github.com/spetersoncode/conform"
)

// DocComment is the structured form of a tool's documentation text: a
// top-level description and the documented parameters in written order.
type DocComment struct {
	Description string
	Params      []ParamDoc
}

// ParamDoc documents a single parameter.
type ParamDoc struct {
	Name        string
	Description string
}

// Names returns the documented parameter names in written order.
func (d DocComment) Names() []string {
	names := make([]string, len(d.Params))
	for i, p := range d.Params {
		names[i] = p.Name
	}
	return names
}

var paramLine = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*:\s*(.+)$`)

// ParseDoc parses a tool's documentation text. The first line is the tool
// description. Each following line of the form "name: text" documents one
// parameter; other lines continue whatever came before them, so both the
// description and parameter descriptions may span multiple lines.
func ParseDoc(subject, doc string) (DocComment, error) {
	var out DocComment

	lines := strings.Split(doc, "\n")
	seen := make(map[string]bool)

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if i > 0 {
			if m := paramLine.FindStringSubmatch(line); m != nil {
				if seen[m[1]] {
					return DocComment{}, &ai.DefinitionError{
						Subject: subject,
						Reason:  "parameter documented twice",
						Params:  []string{m[1]},
					}
				}
				seen[m[1]] = true
				out.Params = append(out.Params, ParamDoc{Name: m[1], Description: m[2]})
				continue
			}
		}

		// Continuation of the most recent description.
		if n := len(out.Params); n > 0 {
			out.Params[n-1].Description += " " + line
		} else if out.Description != "" {
			out.Description += " " + line
		} else {
			out.Description = line
		}
	}

	return out, nil
}
