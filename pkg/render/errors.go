package render

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingModelName marks a field descriptor without a model name.
	ErrMissingModelName = errors.New("form field does not have the 'modelName' property")
	// ErrNoMatchingComponent marks a model name no field renderer is
	// registered for.
	ErrNoMatchingComponent = errors.New("no component matching the form field model name")
)

// ConfigError reports a schema/registry mismatch found while rendering. It is
// an authoring error: renderers return it as is and never render around it.
type ConfigError struct {
	Index     int
	ModelName string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.ModelName == "" {
		return fmt.Sprintf("render: field %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("render: field %d: %v: %s", e.Index, e.Err, e.ModelName)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsConfigError reports whether err carries a ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
