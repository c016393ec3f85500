package parser

import (
	"fmt"
	"strings"

	"go-cmdgui/internal/core/schema"
	"go-cmdgui/internal/core/utils"
)

// Argv turns raw form state into an argument vector this parser accepts.
// form maps argument names to bool, string, int or []string. active maps a
// mutex group id to the member the user picked; members of a group that are
// not active are left out.
//
// A flag outside any group is emitted only when it differs from its default,
// so untouched fields fall back to the schema defaults during Parse. The
// active member of a group is always emitted when it holds a value.
//
// Positionals are emitted in order. Argv fails when a positional is filled in
// while an earlier one is empty and has no default.
func (p *Parser) Argv(form Values, active map[string]string) ([]string, error) {
	var argv []string

	for _, b := range p.bindings {
		spec := b.spec
		value, ok := form[spec.Name]
		if !ok {
			continue
		}

		if spec.Group != "" {
			if active[spec.Group] != spec.Name || !isSet(value) {
				continue
			}
		} else if sameAsDefault(spec, value) {
			continue
		}

		name := "--" + b.long
		switch {
		case spec.Type == schema.TypeInteger && strings.TrimSpace(Stringify(value)) == "":
			continue
		case spec.Type == schema.TypeBoolean:
			argv = append(argv, name+"="+Stringify(toBool(value)))
		case spec.Multiple:
			items := form.Strings(spec.Name)
			if len(items) == 0 {
				// an explicitly emptied list still has to override the default
				argv = append(argv, name+"=")
			}
			for _, item := range items {
				argv = append(argv, name+"="+item)
			}
		default:
			argv = append(argv, name+"="+Stringify(value))
		}
	}

	var positionals []string
	var missing string
	for _, spec := range p.schema.Positionals() {
		var values []string
		if spec.Multiple {
			values = form.Strings(spec.Name)
		} else {
			v := strings.TrimSpace(form.String(spec.Name))
			if v == "" {
				v = spec.Default
			}
			if v != "" {
				values = []string{v}
			}
		}

		if len(values) == 0 {
			if missing == "" && !spec.Multiple {
				missing = spec.Name
			}
			continue
		}
		if missing != "" {
			return nil, utils.NewValidationError(fmt.Sprintf("%s must be set when %s is given", missing, spec.Name), nil)
		}
		positionals = append(positionals, values...)
	}
	if len(positionals) > 0 {
		argv = append(argv, "--")
		argv = append(argv, positionals...)
	}

	return argv, nil
}

func sameAsDefault(spec *schema.ArgSpec, value interface{}) bool {
	switch spec.Type {
	case schema.TypeBoolean:
		def, _ := schema.ParseBool(spec.Default)
		return toBool(value) == def
	default:
		if spec.Multiple {
			return strings.Join(Values{"v": value}.Strings("v"), ",") == strings.Join(splitList(spec.Default), ",")
		}
		return Stringify(value) == spec.Default
	}
}

func toBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		b, _ := schema.ParseBool(v)
		return b
	}
	return false
}
