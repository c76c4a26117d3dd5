package schema

import (
	"encoding/json"

	ai "github.com/spetersoncode/conform"
	"github.com/spetersoncode/conform/shape"
)

// Decode validates raw (already unwrapped) JSON against the target and
// unmarshals it into T. Validation runs first so a structurally wrong
// payload is reported as a schema violation rather than a decode failure.
func Decode[T any](t *Target, data []byte) (T, error) {
	var out T
	if err := t.Validate(data); err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, &ai.CompletionError{
			Kind:   ai.CompletionSchemaViolation,
			Detail: "validated payload did not decode into target type",
			Err:    err,
		}
	}
	return out, nil
}

// For derives a target directly from a Go type using its reflected shape.
// It is the common entry point for typed completions.
func For[T any]() (*Target, error) {
	d, err := shape.For[T]()
	if err != nil {
		return nil, err
	}
	return Derive(d)
}

// MustFor is For but panics on failure. Intended for package-level
// variables over hand-authored types.
func MustFor[T any]() *Target {
	t, err := For[T]()
	if err != nil {
		panic(err)
	}
	return t
}
