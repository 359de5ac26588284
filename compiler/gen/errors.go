package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates a schema definition error.
	ErrInvalidSchema = errors.New("prefroom: invalid schema")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("prefroom: missing configuration")
	// ErrContractViolation indicates a component contract declaring an
	// operation with a result.
	ErrContractViolation = errors.New("prefroom: contract violation")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("prefroom: code generation failed")
)

// SchemaError represents a schema definition error.
type SchemaError struct {
	Type    string // Entity or component name
	Field   string // Field key or referenced entity (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("prefroom: schema error")
	if e.Type != "" {
		b.WriteString(" on ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(typeName, fieldName, message string, cause error) *SchemaError {
	return &SchemaError{
		Type:    typeName,
		Field:   fieldName,
		Message: message,
		Cause:   cause,
	}
}

// ContractError reports a contract operation that declares a result.
// Contract operations act on the aggregated entities and return nothing.
type ContractError struct {
	Component string
	Operation string
	Return    string // The illegal result type(s)
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	return fmt.Sprintf("prefroom: contract violation on component %s: operation %s returns %q, only operations without results are allowed",
		e.Component, e.Operation, e.Return)
}

// Is reports whether the target matches the sentinel error for ContractError.
func (e *ContractError) Is(target error) bool {
	return target == ErrContractViolation
}

// NewContractError creates a new ContractError.
func NewContractError(component, operation, ret string) *ContractError {
	return &ContractError{
		Component: component,
		Operation: operation,
		Return:    ret,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("prefroom: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("prefroom: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a failure to produce one artifact or file.
type GenerationError struct {
	Phase    string // "entity", "component", "render", "write"
	Artifact string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("prefroom: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.Artifact != "" {
		b.WriteString(" (artifact: ")
		b.WriteString(e.Artifact)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, artifact, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:    phase,
		Artifact: artifact,
		Message:  message,
		Cause:    cause,
	}
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsContractError reports whether the error is a ContractError.
func IsContractError(err error) bool {
	var contractErr *ContractError
	return errors.As(err, &contractErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
