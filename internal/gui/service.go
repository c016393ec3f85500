package gui

import (
	"context"
	"sync"
	"time"

	"go-cmdgui/internal/core/parser"
	"go-cmdgui/internal/core/runner"
	"go-cmdgui/internal/core/session"
	"go-cmdgui/internal/core/utils"
)

const (
	EventOutput   = "output"
	EventFinished = "finished"
)

// Emitter publishes an event to the frontend.
type Emitter func(event string, data ...interface{})

type Service struct {
	session *session.Session
	logger  *utils.Logger

	mu   sync.Mutex
	emit Emitter
}

type SchemaData struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Command     string                 `json:"command"`
	Args        []ArgData              `json:"args"`
	Groups      []GroupData            `json:"groups"`
	Defaults    map[string]interface{} `json:"defaults"`
	Active      map[string]string      `json:"active"`
}

type ArgData struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Flag     string   `json:"flag"`
	Type     string   `json:"type"`
	Help     string   `json:"help"`
	Default  string   `json:"default"`
	Choices  []string `json:"choices,omitempty"`
	Group    string   `json:"group,omitempty"`
	Multiple bool     `json:"multiple"`
	Required bool     `json:"required"`
}

type GroupData struct {
	ID      string   `json:"id"`
	Members []string `json:"members"`
}

// FormData is the form state posted by the frontend. Values arrive JSON
// decoded: bool, string, number or a list of strings.
type FormData struct {
	Values map[string]interface{} `json:"values"`
	Active map[string]string      `json:"active"`
}

type OutputEvent struct {
	Stream string `json:"stream"`
	Text   string `json:"text"`
}

type FinishedEvent struct {
	Command    string `json:"command"`
	ExitCode   int    `json:"exit_code"`
	DurationMs int64  `json:"duration_ms"`
	Cancelled  bool   `json:"cancelled"`
	Error      string `json:"error,omitempty"`
}

func NewService(sess *session.Session, logger *utils.Logger) *Service {
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &Service{
		session: sess,
		logger:  logger,
		emit:    func(string, ...interface{}) {},
	}
}

func (s *Service) SetEmitter(emit Emitter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if emit == nil {
		emit = func(string, ...interface{}) {}
	}
	s.emit = emit
}

func (s *Service) publish(event string, data interface{}) {
	s.mu.Lock()
	emit := s.emit
	s.mu.Unlock()
	emit(event, data)
}

func (s *Service) GetSchema() SchemaData {
	sch := s.session.Schema()

	data := SchemaData{
		Name:        sch.DisplayName(),
		Description: sch.Program.Description,
		Command:     sch.Program.Command,
		Defaults:    s.session.Defaults(),
		Active:      s.session.DefaultActive(),
	}
	for _, spec := range sch.Args {
		data.Args = append(data.Args, ArgData{
			Name:     spec.Name,
			Label:    spec.Label(),
			Flag:     spec.Flag,
			Type:     string(spec.Type),
			Help:     spec.Help,
			Default:  spec.Default,
			Choices:  spec.Choices,
			Group:    spec.Group,
			Multiple: spec.Multiple,
			Required: spec.Required,
		})
	}
	for _, group := range sch.Groups() {
		data.Groups = append(data.Groups, GroupData{ID: group.ID, Members: group.Names()})
	}
	return data
}

func (s *Service) Preview(form FormData) (string, error) {
	return s.session.PreviewForm(parser.Values(form.Values), form.Active)
}

// Run validates the form and starts the command in the background. Output is
// published as EventOutput and completion as EventFinished.
func (s *Service) Run(form FormData) error {
	argv, err := s.session.Parser().Argv(parser.Values(form.Values), form.Active)
	if err != nil {
		return err
	}
	if _, err := s.session.Preview(argv); err != nil {
		return err
	}
	if s.session.Running() {
		return utils.NewProcessError("a command is already running", nil)
	}

	go func() {
		result, err := s.session.Run(context.Background(), argv, func(line runner.Line) {
			s.publish(EventOutput, OutputEvent{Stream: line.Stream.String(), Text: line.Text})
		})
		s.publish(EventFinished, finishedEvent(result, err))
	}()
	return nil
}

func (s *Service) Stop() bool {
	stopped := s.session.Stop()
	if stopped {
		s.logger.Info("Stop requested from web GUI")
	}
	return stopped
}

func (s *Service) Running() bool {
	return s.session.Running()
}

func finishedEvent(result *runner.Result, err error) FinishedEvent {
	if err != nil {
		return FinishedEvent{ExitCode: -1, Error: err.Error()}
	}
	return FinishedEvent{
		Command:    result.Command,
		ExitCode:   result.ExitCode,
		DurationMs: result.Duration.Round(time.Millisecond).Milliseconds(),
		Cancelled:  result.Cancelled,
	}
}
