package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/package.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one field of package.json that breaks the schema.
type ValidationIssue struct {
	Path    string // JSON pointer, e.g. "/scripts/build"; empty for the whole file
	Field   string // e.g. `script "build"`
	Message string
	Keyword string
}

func (i ValidationIssue) String() string {
	return i.Field + ": " + i.Message
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("package.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("package.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate checks raw package.json bytes against the embedded schema.
// Malformed JSON and schema compilation failures are returned as errors;
// schema violations are reported in the ValidationResult.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	if !json.Valid(data) {
		var probe any
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		return nil, fmt.Errorf("parsing JSON: invalid document")
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{
		Valid:  false,
		Issues: manifestIssues(validationErr),
	}, nil
}

// manifestIssues flattens the error tree into one issue per failing field,
// named the way package.json authors refer to it.
func manifestIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	seen := make(map[string]bool)

	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		for _, cause := range e.Causes {
			walk(cause)
		}
		if len(e.Causes) > 0 || e.ErrorKind == nil {
			return
		}

		kwPath := e.ErrorKind.KeywordPath()
		if len(kwPath) == 0 {
			return
		}
		issue := ValidationIssue{
			Path:    instancePath(e.InstanceLocation),
			Field:   fieldName(e.InstanceLocation),
			Message: e.ErrorKind.LocalizedString(printer),
			Keyword: kwPath[len(kwPath)-1],
		}
		if key := issue.Path + "|" + issue.Message; !seen[key] {
			seen[key] = true
			issues = append(issues, issue)
		}
	}
	walk(ve)

	if len(issues) == 0 {
		return []ValidationIssue{{Field: FileName, Message: ve.Error()}}
	}
	return issues
}

func instancePath(loc []string) string {
	if len(loc) == 0 {
		return ""
	}
	return "/" + strings.Join(loc, "/")
}

// fieldName renders an instance location as "package.json", "scripts" or
// `script "build"`.
func fieldName(loc []string) string {
	switch {
	case len(loc) == 0:
		return FileName
	case len(loc) == 2 && loc[0] == "scripts":
		return fmt.Sprintf("script %q", loc[1])
	default:
		return strings.Join(loc, ".")
	}
}
