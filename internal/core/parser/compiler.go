// Package parser compiles a schema into a typed argument parser and turns
// parsed command lines into resolved argument values.
package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go-cmdgui/internal/core/schema"
	"go-cmdgui/internal/core/utils"
)

type binding struct {
	spec  *schema.ArgSpec
	long  string
	short string
}

// Parser is the compiled form of a schema. It is safe for concurrent use:
// every parse builds a fresh command so no flag state is shared.
type Parser struct {
	schema   *schema.Schema
	bindings []binding
	byName   map[string]binding
}

// Compile translates the schema into flag bindings. Declared long flags keep
// their own name. Shorthands, and a declared --help, get an internal long name
// derived from the argument name that no other binding uses. Compile fails
// when two declared long flags end up with the same parser name.
func Compile(s *schema.Schema) (*Parser, error) {
	p := &Parser{
		schema: s,
		byName: make(map[string]binding),
	}

	flagSpecs := s.Flags()
	bindings := make([]binding, len(flagSpecs))
	longs := map[string]string{helpFlag: ""}
	shorts := make(map[string]string)

	for i, spec := range flagSpecs {
		b := binding{spec: spec}
		b.long, b.short = flagNames(spec)
		bindings[i] = b
		if b.short != "" || b.long == helpFlag {
			continue
		}
		if other, ok := longs[b.long]; ok {
			return nil, utils.NewSchemaError(fmt.Sprintf("%s: parser flag --%s clashes with %s", spec.Name, b.long, other), nil)
		}
		longs[b.long] = spec.Name
	}

	for i := range bindings {
		b := &bindings[i]
		if b.short == "" && b.long != helpFlag {
			continue
		}
		b.long = uniqueLong(longs, b.spec.Name)
		longs[b.long] = b.spec.Name

		if b.short != "" {
			if other, ok := shorts[b.short]; ok {
				return nil, utils.NewSchemaError(fmt.Sprintf("%s: parser shorthand -%s clashes with %s", b.spec.Name, b.short, other), nil)
			}
			shorts[b.short] = b.spec.Name
		}
	}

	for _, b := range bindings {
		p.bindings = append(p.bindings, b)
		p.byName[b.spec.Name] = b
	}
	return p, nil
}

// helpFlag is reserved for the parser's own help request.
const helpFlag = "help"

// flagNames maps a declared flag onto pflag naming: "--name" becomes the long
// name, "-x" becomes a shorthand under the argument name, and a single-dash
// word such as "-name" becomes the long name "name".
func flagNames(spec *schema.ArgSpec) (long, short string) {
	trimmed := strings.TrimLeft(spec.Flag, "-")
	if !strings.HasPrefix(spec.Flag, "--") && len(trimmed) == 1 {
		return spec.Name, trimmed
	}
	return trimmed, ""
}

// uniqueLong returns name, or name suffixed with "-flag" and then a counter,
// whichever is not taken yet.
func uniqueLong(taken map[string]string, name string) string {
	candidate := name
	for i := 1; ; i++ {
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
		candidate = name + "-flag"
		if i > 1 {
			candidate += strconv.Itoa(i)
		}
	}
}

func (p *Parser) Schema() *schema.Schema {
	return p.schema
}

// FlagName returns the long parser flag name for the argument, or "" for positionals.
func (p *Parser) FlagName(name string) string {
	return p.byName[name].long
}

// Command builds a cobra command for the wrapped program. run receives the
// resolved values after a successful parse.
func (p *Parser) Command(run func(Values) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:           p.use(),
		Short:         p.schema.DisplayName(),
		Long:          p.schema.Program.Description,
		Args:          p.positionalArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := p.collect(cmd.Flags(), args)
			if err != nil {
				return err
			}
			if run == nil {
				return nil
			}
			return run(values)
		},
	}

	flags := cmd.Flags()
	for _, b := range p.bindings {
		spec := b.spec
		switch {
		case spec.Type == schema.TypeBoolean:
			def, _ := schema.ParseBool(spec.Default)
			flags.BoolP(b.long, b.short, def, spec.Help)
		case spec.Type == schema.TypeInteger:
			def, _ := strconv.Atoi(spec.Default)
			flags.IntP(b.long, b.short, def, spec.Help)
		case spec.Multiple:
			flags.StringArrayP(b.long, b.short, splitList(spec.Default), spec.Help)
		default:
			flags.StringP(b.long, b.short, spec.Default, spec.Help)
		}
	}

	for _, group := range p.schema.Groups() {
		if len(group.Members) < 2 {
			continue
		}
		names := make([]string, 0, len(group.Members))
		for _, member := range group.Members {
			names = append(names, p.byName[member.Name].long)
		}
		cmd.MarkFlagsMutuallyExclusive(names...)
	}

	// registered here so cobra does not add its own -h over a declared shorthand
	helpShort := "h"
	if flags.ShorthandLookup(helpShort) != nil {
		helpShort = ""
	}
	flags.BoolP(helpFlag, helpShort, false, "help for "+cmd.Name())

	return cmd
}

// Parse runs argv through a freshly built command and returns the resolved values.
func (p *Parser) Parse(argv []string) (Values, error) {
	var out Values
	cmd := p.Command(func(v Values) error {
		out = v
		return nil
	})
	cmd.SetArgs(append([]string{}, argv...))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	if err := cmd.Execute(); err != nil {
		var cerr *utils.CmdGUIError
		if errors.As(err, &cerr) {
			return nil, err
		}
		return nil, utils.NewParseError("invalid arguments", err)
	}
	if out == nil {
		return nil, utils.NewParseError("help requested", pflag.ErrHelp)
	}
	return out, nil
}

// Usage renders the help text of the compiled command.
func (p *Parser) Usage() string {
	var sb strings.Builder
	cmd := p.Command(nil)
	cmd.SetOut(&sb)
	_ = cmd.Help()
	return sb.String()
}

func (p *Parser) use() string {
	fields := strings.Fields(p.schema.Program.Command)
	name := "command"
	if len(fields) > 0 {
		name = filepath.Base(fields[0])
	}

	parts := []string{name}
	for _, pos := range p.schema.Positionals() {
		token := strings.ToUpper(pos.Name)
		if pos.Multiple {
			token += "..."
		}
		if !pos.Required {
			token = "[" + token + "]"
		}
		parts = append(parts, token)
	}
	return strings.Join(parts, " ")
}

func (p *Parser) positionalArgs(cmd *cobra.Command, args []string) error {
	positionals := p.schema.Positionals()
	if n := len(positionals); n > 0 && positionals[n-1].Multiple {
		return nil
	}
	return cobra.MaximumNArgs(len(positionals))(cmd, args)
}

func (p *Parser) collect(flags *pflag.FlagSet, args []string) (Values, error) {
	values := make(Values)
	changed := make(map[string]bool)

	for _, b := range p.bindings {
		spec := b.spec
		f := flags.Lookup(b.long)
		changed[spec.Name] = f.Changed

		if !f.Changed && spec.Default == "" && spec.Type != schema.TypeBoolean {
			continue
		}

		switch {
		case spec.Type == schema.TypeBoolean:
			v, _ := flags.GetBool(b.long)
			values[spec.Name] = v
		case spec.Type == schema.TypeInteger:
			v, _ := flags.GetInt(b.long)
			values[spec.Name] = v
		case spec.Multiple:
			v, _ := flags.GetStringArray(b.long)
			values[spec.Name] = nonEmpty(v)
		default:
			v, _ := flags.GetString(b.long)
			values[spec.Name] = v
		}
	}

	rest := args
	for _, spec := range p.schema.Positionals() {
		switch {
		case spec.Multiple && len(rest) > 0:
			values[spec.Name] = append([]string{}, rest...)
			rest = nil
		case spec.Multiple && spec.Default != "":
			values[spec.Name] = splitList(spec.Default)
		case len(rest) > 0:
			values[spec.Name] = rest[0]
			rest = rest[1:]
		case spec.Default != "":
			values[spec.Name] = spec.Default
		}
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("unexpected argument %q", rest[0])
	}

	p.resolveGroups(values, changed)

	if err := p.check(values); err != nil {
		return nil, err
	}
	return values, nil
}

// resolveGroups keeps at most one member of every mutex group: the member
// given on the command line, or else the first member that has a default.
func (p *Parser) resolveGroups(values Values, changed map[string]bool) {
	for _, group := range p.schema.Groups() {
		keep := ""
		for _, member := range group.Members {
			if changed[member.Name] {
				keep = member.Name
				break
			}
		}
		if keep == "" {
			for _, member := range group.Members {
				if isSet(values[member.Name]) {
					keep = member.Name
					break
				}
			}
		}
		for _, member := range group.Members {
			if member.Name != keep {
				delete(values, member.Name)
			}
		}
	}
}

// check performs the basic type coercion checks pflag cannot express.
func (p *Parser) check(values Values) error {
	for _, spec := range p.schema.Args {
		value, ok := values[spec.Name]

		if spec.Required && (!ok || !isSet(value)) {
			return utils.NewValidationError(fmt.Sprintf("%s is required", spec.Name), nil).
				WithContext("argument", spec.Name)
		}
		if !ok {
			continue
		}

		if spec.Type == schema.TypeChoice {
			s := Stringify(value)
			if s != "" && !containsString(spec.Choices, s) {
				return utils.NewValidationError(
					fmt.Sprintf("%s must be one of %s, got %q", spec.Name, strings.Join(spec.Choices, ", "), s), nil).
					WithContext("argument", spec.Name)
			}
		}
		if spec.Type == schema.TypeInteger {
			if s, isString := value.(string); isString && s != "" {
				n, err := strconv.Atoi(s)
				if err != nil {
					return utils.NewValidationError(fmt.Sprintf("%s must be an integer, got %q", spec.Name, s), err).
						WithContext("argument", spec.Name)
				}
				values[spec.Name] = n
			}
		}
	}
	return nil
}

func isSet(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case []string:
		return len(v) > 0
	case []interface{}:
		return len(v) > 0
	default:
		return true
	}
}

func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func containsString(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
