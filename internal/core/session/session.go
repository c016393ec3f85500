// Package session ties a loaded schema to its compiled parser and a runner.
// Every front-end (native GUI, web GUI, terminal UI, CLI) drives the wrapped
// program through a Session.
package session

import (
	"context"
	"strings"
	"sync"

	"go-cmdgui/internal/core/command"
	"go-cmdgui/internal/core/parser"
	"go-cmdgui/internal/core/runner"
	"go-cmdgui/internal/core/schema"
	"go-cmdgui/internal/core/utils"
)

type Session struct {
	schema *schema.Schema
	parser *parser.Parser
	runner *runner.Runner
	logger *utils.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

func New(s *schema.Schema, r *runner.Runner, logger *utils.Logger) (*Session, error) {
	p, err := parser.Compile(s)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = utils.NopLogger()
	}
	if r == nil {
		r = runner.New(runner.Options{}, logger)
	}
	return &Session{
		schema: s,
		parser: p,
		runner: r,
		logger: logger,
	}, nil
}

func (s *Session) Schema() *schema.Schema {
	return s.schema
}

func (s *Session) Parser() *parser.Parser {
	return s.parser
}

// Build parses argv and returns the resolved values and the command line.
func (s *Session) Build(argv []string) (parser.Values, string, error) {
	values, err := s.parser.Parse(argv)
	if err != nil {
		return nil, "", err
	}
	return values, command.Assemble(s.schema, values), nil
}

// Preview returns the command line argv would produce without running it.
func (s *Session) Preview(argv []string) (string, error) {
	_, line, err := s.Build(argv)
	return line, err
}

// PreviewForm is Preview for raw form state.
func (s *Session) PreviewForm(form parser.Values, active map[string]string) (string, error) {
	argv, err := s.parser.Argv(form, active)
	if err != nil {
		return "", err
	}
	return s.Preview(argv)
}

// Run parses argv, assembles the command line and executes it. Only one run
// is active per session; Stop cancels it.
func (s *Session) Run(ctx context.Context, argv []string, onLine func(runner.Line)) (*runner.Result, error) {
	values, line, err := s.Build(argv)
	if err != nil {
		s.logger.WithOperation("parse").WithError(err).Warn("Rejected arguments", "argv", strings.Join(argv, " "))
		return nil, err
	}
	for _, spec := range s.schema.Args {
		if values.Has(spec.Name) {
			s.logger.WithArgument(spec.Name).Debug("Resolved argument", "value", values[spec.Name])
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		cancel()
		return nil, utils.NewProcessError("a command is already running", nil)
	}
	s.cancel = cancel
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.cancel = nil
		s.mu.Unlock()
		cancel()
	}()

	s.logger.WithCommand(line).Info("Running command")
	return s.runner.Run(ctx, line, onLine)
}

// RunForm is Run for raw form state.
func (s *Session) RunForm(ctx context.Context, form parser.Values, active map[string]string, onLine func(runner.Line)) (*runner.Result, error) {
	argv, err := s.parser.Argv(form, active)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, argv, onLine)
}

// Stop cancels the running command, if any, and reports whether one was running.
func (s *Session) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return false
	}
	s.cancel()
	return true
}

func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Defaults returns the initial form state: each argument's default value in
// the type its widget edits (bool for booleans, []string for multi-file,
// string otherwise).
func (s *Session) Defaults() parser.Values {
	out := make(parser.Values, len(s.schema.Args))
	for _, spec := range s.schema.Args {
		switch {
		case spec.Type == schema.TypeBoolean:
			b, _ := schema.ParseBool(spec.Default)
			out[spec.Name] = b
		case spec.Multiple:
			var items []string
			for _, part := range strings.Split(spec.Default, ",") {
				if part = strings.TrimSpace(part); part != "" {
					items = append(items, part)
				}
			}
			out[spec.Name] = items
		default:
			out[spec.Name] = spec.Default
		}
	}
	return out
}

// DefaultActive picks the initially active member of every mutex group: the
// first member with a default, or else the first member.
func (s *Session) DefaultActive() map[string]string {
	defaults := s.Defaults()
	active := make(map[string]string)
	for _, group := range s.schema.Groups() {
		active[group.ID] = group.Members[0].Name
		for _, member := range group.Members {
			if filled(defaults[member.Name]) {
				active[group.ID] = member.Name
				break
			}
		}
	}
	return active
}

func filled(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case []string:
		return len(t) > 0
	default:
		return parser.Stringify(v) != ""
	}
}
