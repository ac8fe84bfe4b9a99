package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/countyhub/go-minisite/sections"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/sections.json
var schemaFS embed.FS

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// PayloadValidationError surfaces validation issues with schema-aware context.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

var (
	sectionsOnce   sync.Once
	sectionsSchema *jsonschema.Schema
	sectionsErr    error
)

// SectionsSchema returns the raw JSON schema used for page sections.
func SectionsSchema() ([]byte, error) {
	return schemaFS.ReadFile("schemas/sections.json")
}

// ValidateSections checks a section list against the embedded schema.
// Section types the renderer does not know are accepted as long as the
// envelope is well formed.
func ValidateSections(list []sections.Section) error {
	compiled, err := compiledSections()
	if err != nil {
		return err
	}
	if list == nil {
		list = []sections.Section{}
	}
	encoded, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	var document any
	if err := json.Unmarshal(encoded, &document); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if err := compiled.Validate(document); err != nil {
		return &PayloadValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

func compiledSections() (*jsonschema.Schema, error) {
	sectionsOnce.Do(func() {
		raw, err := SectionsSchema()
		if err != nil {
			sectionsErr = fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
			return
		}
		sectionsSchema, err = compileSchema(raw)
		if err != nil {
			sectionsErr = fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
		}
	})
	return sectionsSchema, sectionsErr
}

func compileSchema(encoded []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("sections.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("sections.json")
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
