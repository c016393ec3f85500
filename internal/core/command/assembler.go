// Package command rebuilds the flat shell command line from parsed values.
package command

import (
	"strings"

	"go-cmdgui/internal/core/parser"
	"go-cmdgui/internal/core/schema"
)

// Tokens returns the command line as a list of words: the base command words
// followed by every argument in schema order. Empty values and false booleans
// contribute nothing.
func Tokens(s *schema.Schema, values parser.Values) []string {
	tokens := strings.Fields(s.Program.Command)

	for _, spec := range s.Args {
		if !values.Has(spec.Name) {
			continue
		}

		if spec.Type == schema.TypeBoolean {
			if values.Bool(spec.Name) {
				tokens = append(tokens, spec.Flag)
			}
			continue
		}

		var items []string
		if spec.Multiple {
			items = values.Strings(spec.Name)
		} else if v := values.String(spec.Name); v != "" {
			items = []string{v}
		}
		if len(items) == 0 {
			continue
		}

		if !spec.IsPositional() {
			tokens = append(tokens, spec.Flag)
		}
		tokens = append(tokens, items...)
	}

	return tokens
}

// Assemble joins Tokens with single spaces. Values are not quoted.
func Assemble(s *schema.Schema, values parser.Values) string {
	return strings.Join(Tokens(s, values), " ")
}
