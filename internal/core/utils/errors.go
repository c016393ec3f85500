package utils

import "fmt"

type ErrorType int

const (
	ErrorTypeSchema ErrorType = iota
	ErrorTypeParse
	ErrorTypeFileSystem
	ErrorTypeValidation
	ErrorTypeProcess
	ErrorTypeConfig
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeSchema:
		return "schema"
	case ErrorTypeParse:
		return "parse"
	case ErrorTypeFileSystem:
		return "filesystem"
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeProcess:
		return "process"
	case ErrorTypeConfig:
		return "config"
	default:
		return "unknown"
	}
}

type CmdGUIError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *CmdGUIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CmdGUIError) Unwrap() error {
	return e.Cause
}

func newError(t ErrorType, message string, cause error) *CmdGUIError {
	return &CmdGUIError{
		Type:    t,
		Message: message,
		Cause:   cause,
	}
}

func NewSchemaError(message string, cause error) *CmdGUIError {
	return newError(ErrorTypeSchema, message, cause)
}

func NewParseError(message string, cause error) *CmdGUIError {
	return newError(ErrorTypeParse, message, cause)
}

func NewFileSystemError(message string, cause error) *CmdGUIError {
	return newError(ErrorTypeFileSystem, message, cause)
}

func NewValidationError(message string, cause error) *CmdGUIError {
	return newError(ErrorTypeValidation, message, cause)
}

func NewProcessError(message string, cause error) *CmdGUIError {
	return newError(ErrorTypeProcess, message, cause)
}

func NewConfigError(message string, cause error) *CmdGUIError {
	return newError(ErrorTypeConfig, message, cause)
}

func (e *CmdGUIError) WithContext(key string, value interface{}) *CmdGUIError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func isType(err error, t ErrorType) bool {
	if ce, ok := err.(*CmdGUIError); ok {
		return ce.Type == t
	}
	return false
}

func IsSchemaError(err error) bool {
	return isType(err, ErrorTypeSchema)
}

func IsParseError(err error) bool {
	return isType(err, ErrorTypeParse)
}

func IsProcessError(err error) bool {
	return isType(err, ErrorTypeProcess)
}

func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

func IsConfigError(err error) bool {
	return isType(err, ErrorTypeConfig)
}
