package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"go-cmdgui/internal/core/utils"
)

const (
	MaxNameLength    = 64
	MaxFlagLength    = 64
	MaxHelpLength    = 2000
	MaxDefaultLength = 4096
)

var (
	namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
	flagPattern = regexp.MustCompile(`^--?[A-Za-z0-9][A-Za-z0-9_.:-]*$`)
)

// Validate checks the structural rules the parser compiler relies on.
func Validate(s *Schema) error {
	if err := checkText("program.command", s.Program.Command, MaxDefaultLength); err != nil {
		return err
	}

	seenFlags := make(map[string]string)
	var multiPositional *ArgSpec

	for _, arg := range s.Args {
		if err := validateArg(arg); err != nil {
			return err
		}

		if !arg.IsPositional() {
			if other, ok := seenFlags[arg.Flag]; ok {
				return argError(arg, fmt.Sprintf("flag %s already used by %s", arg.Flag, other))
			}
			seenFlags[arg.Flag] = arg.Name
			continue
		}

		if multiPositional != nil {
			return argError(multiPositional, "a positional accepting multiple values must be the last positional")
		}
		if arg.Multiple {
			multiPositional = arg
		}
	}

	return nil
}

func validateArg(arg *ArgSpec) error {
	if len(arg.Name) > MaxNameLength || !namePattern.MatchString(arg.Name) {
		return argError(arg, "name must start with a letter or digit and contain only letters, digits, '_', '-' or '.'")
	}
	if err := checkText(arg.Name+".help", arg.Help, MaxHelpLength); err != nil {
		return err
	}
	if err := checkText(arg.Name+".default", arg.Default, MaxDefaultLength); err != nil {
		return err
	}

	if !knownTypes[arg.Type] {
		return argError(arg, fmt.Sprintf("unknown type %q", arg.Type))
	}

	if !arg.IsPositional() {
		if len(arg.Flag) > MaxFlagLength || !flagPattern.MatchString(arg.Flag) {
			return argError(arg, fmt.Sprintf("malformed flag %q", arg.Flag))
		}
	}

	switch arg.Type {
	case TypeBoolean:
		if arg.IsPositional() {
			return argError(arg, "boolean arguments need a flag")
		}
		if arg.Default != "" {
			if _, err := ParseBool(arg.Default); err != nil {
				return argError(arg, fmt.Sprintf("default %q is not a boolean", arg.Default))
			}
		}
	case TypeInteger:
		if arg.Default != "" {
			if _, err := strconv.Atoi(arg.Default); err != nil {
				return argError(arg, fmt.Sprintf("default %q is not an integer", arg.Default))
			}
		}
	case TypeChoice:
		if len(arg.Choices) == 0 {
			return argError(arg, "choice arguments need a choices list")
		}
		if arg.Default != "" && !contains(arg.Choices, arg.Default) {
			return argError(arg, fmt.Sprintf("default %q is not one of %s", arg.Default, strings.Join(arg.Choices, ", ")))
		}
	}

	if len(arg.Choices) > 0 && arg.Type != TypeChoice {
		return argError(arg, "choices are only allowed on choice arguments")
	}
	if arg.Multiple && arg.Type != TypeFile {
		return argError(arg, "multiple is only allowed on file arguments")
	}
	if arg.Group != "" {
		if arg.IsPositional() {
			return argError(arg, "positional arguments cannot belong to a mutex group")
		}
		if !namePattern.MatchString(arg.Group) {
			return argError(arg, fmt.Sprintf("malformed group id %q", arg.Group))
		}
		if arg.Required {
			return argError(arg, "members of a mutex group cannot be required")
		}
	}

	return nil
}

func checkText(field, value string, maxLength int) error {
	if len(value) > maxLength {
		return utils.NewSchemaError(fmt.Sprintf("%s exceeds maximum length of %d", field, maxLength), nil)
	}
	if !utf8.ValidString(value) {
		return utils.NewSchemaError(fmt.Sprintf("%s is not valid UTF-8", field), nil)
	}
	for _, r := range value {
		if unicode.IsControl(r) && r != '\t' {
			return utils.NewSchemaError(fmt.Sprintf("%s contains control characters", field), nil)
		}
	}
	return nil
}

func argError(arg *ArgSpec, message string) error {
	return utils.NewSchemaError(fmt.Sprintf("%s: %s", arg.Name, message), nil).
		WithContext("section", arg.Name)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
