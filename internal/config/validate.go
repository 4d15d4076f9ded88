package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/taskline/internal/utils"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "taskline.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "invalid config: " + e.Message
	}
	return fmt.Sprintf("invalid config: %s: %s", e.Path, e.Message)
}

// Schema returns the JSON schema the effective configuration must satisfy.
func Schema() string {
	return schemaJSON
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// Validate checks cfg against the embedded schema. The returned error is a
// *ValidationError naming the first offending field.
func Validate(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{Message: "config is nil"}
	}

	schema, err := loadSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return &ValidationError{Message: err.Error()}
		}
		if first := firstLeafError(ve); first != nil {
			return first
		}
		return &ValidationError{Message: ve.Message}
	}
	return nil
}

// firstLeafError walks the cause tree and returns the first leaf.
func firstLeafError(err *jsonschema.ValidationError) *ValidationError {
	if err == nil {
		return nil
	}
	if len(err.Causes) == 0 {
		return &ValidationError{
			Path:    utils.JSONPointerToPath(err.InstanceLocation),
			Message: err.Message,
		}
	}
	for _, cause := range err.Causes {
		if found := firstLeafError(cause); found != nil {
			return found
		}
	}
	return nil
}
