package cli

import "fmt"

// ConfigError reports an unusable configuration value. Field names the config
// path or flag the value came from; it is empty when the whole file failed to
// load.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "invalid configuration: " + e.Message
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// NewConfigError creates a ConfigError for the given field.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// CommandError wraps a failure from one of the fed_server subcommands so the
// top level reports which command failed.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError wraps err with the failing command's name.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}
