package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/ini.v1"

	"go-cmdgui/internal/core/utils"
)

var argKeys = map[string]bool{
	"flag":     true,
	"type":     true,
	"help":     true,
	"default":  true,
	"choices":  true,
	"group":    true,
	"multiple": true,
	"required": true,
}

var programKeys = map[string]bool{
	"name":        true,
	"description": true,
	"command":     true,
}

// OpenFS returns an OS filesystem rooted at the directory of path together
// with the file name relative to that root.
func OpenFS(path string) (billy.Filesystem, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", utils.NewFileSystemError("failed to resolve schema path", err)
	}
	return osfs.New(filepath.Dir(abs)), filepath.Base(abs), nil
}

// Load reads and parses the schema at path.
func Load(fs billy.Filesystem, path string) (*Schema, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, utils.NewFileSystemError(fmt.Sprintf("failed to read schema %s", path), err)
	}
	return Parse(data)
}

// LoadOrCreate loads the schema at path, writing the default schema first
// when the file does not exist. created reports whether that happened.
func LoadOrCreate(fs billy.Filesystem, path string) (s *Schema, created bool, err error) {
	if _, err := fs.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, false, utils.NewFileSystemError(fmt.Sprintf("failed to stat schema %s", path), err)
		}
		if err := WriteDefault(fs, path); err != nil {
			return nil, false, err
		}
		created = true
	}

	s, err = Load(fs, path)
	return s, created, err
}

// WriteDefault writes the bundled example schema to path, replacing any existing file.
func WriteDefault(fs billy.Filesystem, path string) error {
	if err := util.WriteFile(fs, path, []byte(DefaultSchema), 0o644); err != nil {
		return utils.NewFileSystemError(fmt.Sprintf("failed to write default schema %s", path), err)
	}
	return nil
}

// Parse builds a schema from INI text. Sections keep their file order; that
// order is the order arguments appear in the form and in the command line.
func Parse(data []byte) (*Schema, error) {
	file, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return nil, utils.NewSchemaError("failed to parse schema", err)
	}

	var (
		program    Program
		hasProgram bool
		args       []*ArgSpec
	)

	for _, sec := range file.Sections() {
		name := sec.Name()
		if name == ini.DefaultSection {
			if len(sec.Keys()) > 0 {
				return nil, utils.NewSchemaError("keys outside of a section are not allowed", nil)
			}
			continue
		}

		if name == ProgramSection {
			program, err = parseProgram(sec)
			if err != nil {
				return nil, err
			}
			hasProgram = true
			continue
		}

		arg, err := parseArg(sec)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	if !hasProgram {
		return nil, utils.NewSchemaError(fmt.Sprintf("missing [%s] section", ProgramSection), nil)
	}

	s := newSchema(program, args)
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

func parseProgram(sec *ini.Section) (Program, error) {
	for _, key := range sec.Keys() {
		if !programKeys[key.Name()] {
			return Program{}, unknownKey(sec.Name(), key.Name())
		}
	}

	program := Program{
		Name:        strings.TrimSpace(sec.Key("name").String()),
		Description: strings.TrimSpace(sec.Key("description").String()),
		Command:     strings.TrimSpace(sec.Key("command").String()),
	}
	if program.Command == "" {
		return Program{}, utils.NewSchemaError("program.command is required", nil)
	}
	return program, nil
}

func parseArg(sec *ini.Section) (*ArgSpec, error) {
	for _, key := range sec.Keys() {
		if !argKeys[key.Name()] {
			return nil, unknownKey(sec.Name(), key.Name())
		}
	}

	arg := &ArgSpec{
		Name:    sec.Name(),
		Flag:    strings.TrimSpace(sec.Key("flag").String()),
		Type:    TypeString,
		Help:    strings.TrimSpace(sec.Key("help").String()),
		Default: strings.TrimSpace(sec.Key("default").String()),
		Group:   strings.TrimSpace(sec.Key("group").String()),
	}

	if sec.HasKey("type") {
		arg.Type = ArgType(strings.ToLower(strings.TrimSpace(sec.Key("type").String())))
	}
	if sec.HasKey("choices") {
		for _, choice := range sec.Key("choices").Strings(",") {
			if choice != "" {
				arg.Choices = append(arg.Choices, choice)
			}
		}
	}

	var err error
	if arg.Multiple, err = boolKey(sec, "multiple"); err != nil {
		return nil, err
	}
	if arg.Required, err = boolKey(sec, "required"); err != nil {
		return nil, err
	}

	return arg, nil
}

func boolKey(sec *ini.Section, name string) (bool, error) {
	if !sec.HasKey(name) {
		return false, nil
	}
	v, err := sec.Key(name).Bool()
	if err != nil {
		return false, utils.NewSchemaError(fmt.Sprintf("%s.%s must be a boolean", sec.Name(), name), err).
			WithContext("section", sec.Name())
	}
	return v, nil
}

func unknownKey(section, key string) error {
	return utils.NewSchemaError(fmt.Sprintf("%s: unknown key %q", section, key), nil).
		WithContext("section", section)
}
