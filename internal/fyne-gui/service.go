package fynegui

import (
	"bufio"
	"context"
	"io"

	"go-cmdgui/internal/core/parser"
	"go-cmdgui/internal/core/runner"
	"go-cmdgui/internal/core/schema"
	"go-cmdgui/internal/core/session"
	"go-cmdgui/internal/core/utils"
)

// Service is the window's view of the session. Callbacks given to Start run
// on a background goroutine; the window moves them onto the fyne goroutine.
type Service struct {
	session *session.Session
	logger  *utils.Logger
}

func NewService(sess *session.Session, logger *utils.Logger) *Service {
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &Service{
		session: sess,
		logger:  logger,
	}
}

func (s *Service) Schema() *schema.Schema {
	return s.session.Schema()
}

func (s *Service) Defaults() parser.Values {
	return s.session.Defaults()
}

func (s *Service) DefaultActive() map[string]string {
	return s.session.DefaultActive()
}

func (s *Service) Preview(form parser.Values, active map[string]string) (string, error) {
	return s.session.PreviewForm(form, active)
}

// Start validates the form and runs the command in the background. It returns
// the previewed command line, or an error when the form is rejected or a
// command is already running.
func (s *Service) Start(form parser.Values, active map[string]string, onLine func(runner.Line), onDone func(*runner.Result, error)) (string, error) {
	argv, err := s.session.Parser().Argv(form, active)
	if err != nil {
		return "", err
	}
	line, err := s.session.Preview(argv)
	if err != nil {
		return "", err
	}
	if s.session.Running() {
		return "", utils.NewProcessError("a command is already running", nil)
	}

	go func() {
		result, err := s.session.Run(context.Background(), argv, onLine)
		if err != nil {
			s.logger.WithError(err).Warn("Command failed to run")
		}
		if onDone != nil {
			onDone(result, err)
		}
	}()
	return line, nil
}

func (s *Service) Stop() bool {
	return s.session.Stop()
}

func (s *Service) Running() bool {
	return s.session.Running()
}

// WriteOutput writes captured output lines to w, one per line.
func WriteOutput(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return utils.NewFileSystemError("failed to write output", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return utils.NewFileSystemError("failed to write output", err)
	}
	return nil
}
