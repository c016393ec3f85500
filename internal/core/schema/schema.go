// Package schema loads the declarative argument schema that describes the
// wrapped program: its base command and the flags and positionals the
// generated form exposes.
package schema

import (
	"strconv"
	"strings"
)

// ArgType is the declared type of an argument. It drives both the parser flag
// type and the form widget used to edit the value.
type ArgType string

const (
	TypeBoolean ArgType = "boolean"
	TypeString  ArgType = "string"
	TypeInteger ArgType = "integer"
	TypeFile    ArgType = "file"
	TypeDir     ArgType = "dir"
	TypeSave    ArgType = "save"
	TypeChoice  ArgType = "choice"
)

var knownTypes = map[ArgType]bool{
	TypeBoolean: true,
	TypeString:  true,
	TypeInteger: true,
	TypeFile:    true,
	TypeDir:     true,
	TypeSave:    true,
	TypeChoice:  true,
}

// IsPath reports whether values of this type are filesystem paths.
func (t ArgType) IsPath() bool {
	return t == TypeFile || t == TypeDir || t == TypeSave
}

// ProgramSection is the reserved section holding the base command.
const ProgramSection = "program"

type Program struct {
	Name        string
	Description string
	Command     string
}

// ArgSpec is one declared argument. Specs are read-only once the schema is loaded.
type ArgSpec struct {
	Name     string
	Flag     string
	Type     ArgType
	Help     string
	Default  string
	Choices  []string
	Group    string
	Multiple bool
	Required bool
}

func (a *ArgSpec) IsPositional() bool {
	return a.Flag == ""
}

// Label is the human readable name shown next to the form widget.
func (a *ArgSpec) Label() string {
	label := strings.NewReplacer("_", " ", "-", " ").Replace(a.Name)
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

// MutexGroup is a set of arguments of which at most one may be given.
type MutexGroup struct {
	ID      string
	Members []*ArgSpec
}

func (g *MutexGroup) Names() []string {
	names := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		names = append(names, m.Name)
	}
	return names
}

type Schema struct {
	Program Program
	Args    []*ArgSpec

	byName  map[string]*ArgSpec
	groups  []*MutexGroup
	byGroup map[string]*MutexGroup
}

func newSchema(program Program, args []*ArgSpec) *Schema {
	s := &Schema{
		Program: program,
		Args:    args,
		byName:  make(map[string]*ArgSpec, len(args)),
		byGroup: make(map[string]*MutexGroup),
	}
	for _, arg := range args {
		s.byName[arg.Name] = arg
		if arg.Group == "" {
			continue
		}
		group, ok := s.byGroup[arg.Group]
		if !ok {
			group = &MutexGroup{ID: arg.Group}
			s.byGroup[arg.Group] = group
			s.groups = append(s.groups, group)
		}
		group.Members = append(group.Members, arg)
	}
	return s
}

// Arg returns the argument with the given name or nil.
func (s *Schema) Arg(name string) *ArgSpec {
	return s.byName[name]
}

// Group returns the mutex group with the given id or nil.
func (s *Schema) Group(id string) *MutexGroup {
	return s.byGroup[id]
}

// Groups returns mutex groups in order of first appearance.
func (s *Schema) Groups() []*MutexGroup {
	return s.groups
}

func (s *Schema) Positionals() []*ArgSpec {
	var out []*ArgSpec
	for _, arg := range s.Args {
		if arg.IsPositional() {
			out = append(out, arg)
		}
	}
	return out
}

func (s *Schema) Flags() []*ArgSpec {
	var out []*ArgSpec
	for _, arg := range s.Args {
		if !arg.IsPositional() {
			out = append(out, arg)
		}
	}
	return out
}

// DisplayName falls back to the base command when the schema has no name.
func (s *Schema) DisplayName() string {
	if s.Program.Name != "" {
		return s.Program.Name
	}
	fields := strings.Fields(s.Program.Command)
	if len(fields) == 0 {
		return "cmdgui"
	}
	return fields[0]
}

// ParseBool accepts the usual INI spellings on top of strconv.ParseBool.
func ParseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(v))
}
