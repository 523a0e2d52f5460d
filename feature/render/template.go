package render

import (
	"regexp"
	"strings"
)

// placeholder matches $$, $name and ${name}. Names follow identifier rules.
var placeholder = regexp.MustCompile(`\$(?:(\$)|([_A-Za-z][_A-Za-z0-9]*)|\{([_A-Za-z][_A-Za-z0-9]*)\})`)

// Vars maps placeholder names to their values for one substitution.
type Vars map[string]string

// Substitute replaces $name and ${name} placeholders with values from vars and
// $$ with a literal $. Unknown names and malformed placeholders stay verbatim.
func Substitute(tmpl string, vars Vars) string {
	if !strings.Contains(tmpl, "$") {
		return tmpl
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		sub := placeholder.FindStringSubmatch(m)
		switch {
		case sub[1] != "":
			return "$"
		case sub[2] != "":
			if v, ok := vars[sub[2]]; ok {
				return v
			}
		case sub[3] != "":
			if v, ok := vars[sub[3]]; ok {
				return v
			}
		}
		return m
	})
}
