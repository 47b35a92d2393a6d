package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/encorekit/encore-init/internal/fsutil"
	"github.com/encorekit/encore-init/internal/prompt"
	"github.com/spf13/afero"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

type noPrompt struct{}

func (noPrompt) Select(context.Context, string, []prompt.Option) (string, error) {
	panic("unexpected Select")
}

func (noPrompt) Confirm(context.Context, string, bool) (bool, error) {
	panic("unexpected Confirm")
}

// setupManifest copies a testdata fixture into an in-memory filesystem as
// package.json and returns a writer over it.
func setupManifest(t *testing.T, fixture string) (*fsutil.Writer, afero.Fs) {
	t.Helper()
	data, err := os.ReadFile(testPath(fixture))
	if err != nil {
		t.Fatalf("reading fixture %s: %v", fixture, err)
	}
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, FileName, data, 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return fsutil.NewWriter(fsys, noPrompt{}, nil), fsys
}

func TestValidate_ValidManifests(t *testing.T) {
	for _, file := range []string{"valid-package.json", "no-scripts.json"} {
		t.Run(file, func(t *testing.T) {
			data, err := os.ReadFile(testPath(file))
			if err != nil {
				t.Fatal(err)
			}
			result, err := Validate(data)
			if err != nil {
				t.Fatalf("Validate(%s) error: %v", file, err)
			}
			if !result.Valid {
				t.Errorf("expected valid, got issues: %v", result.Issues)
			}
		})
	}
}

func TestValidate_SchemaViolations(t *testing.T) {
	tests := []struct {
		file string
		path string
	}{
		{"invalid-scripts-type.json", "/scripts"},
		{"invalid-top-level-array.json", ""},
		{"invalid-script-value.json", "/scripts/build"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			data, err := os.ReadFile(testPath(tt.file))
			if err != nil {
				t.Fatal(err)
			}
			result, err := Validate(data)
			if err != nil {
				t.Fatalf("Validate(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Fatalf("expected %s to be invalid", tt.file)
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Path == tt.path {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an issue at %q, got %v", tt.path, result.Issues)
			}
		})
	}
}

func TestValidate_MalformedJSON(t *testing.T) {
	data, err := os.ReadFile(testPath("invalid-syntax.json"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Validate(data); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if _, err := Validate([]byte(`{"a":1} trailing`)); err == nil {
		t.Fatal("expected error for trailing data")
	}
}

func TestParse_KeepsKeyOrder(t *testing.T) {
	data, _ := os.ReadFile(testPath("valid-package.json"))
	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := []string{"name", "version", "private", "scripts", "dependencies", "devDependencies", "browserslist", "engines", "workspaces", "config"}
	if got := doc.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	deps := doc.Dependencies()
	if deps["lodash"] != "^4.17.21" || deps["eslint"] != "^8.50.0" {
		t.Errorf("Dependencies() = %v", deps)
	}
}

func TestParse_InvalidIsErrInvalid(t *testing.T) {
	for _, file := range []string{"invalid-syntax.json", "invalid-scripts-type.json", "invalid-top-level-array.json"} {
		t.Run(file, func(t *testing.T) {
			data, _ := os.ReadFile(testPath(file))
			_, err := Parse(data)
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestUpdateScripts_AddsScriptsObject(t *testing.T) {
	w, fsys := setupManifest(t, "no-scripts.json")

	if _, err := UpdateScripts(w, FileName); err != nil {
		t.Fatalf("UpdateScripts() error: %v", err)
	}

	got, _ := afero.ReadFile(fsys, FileName)
	want := `{
  "name": "blog",
  "version": "0.1.0",
  "scripts": {
    "encore:dev": "encore dev",
    "encore:watch": "encore dev --watch",
    "encore:production": "encore production --progress"
  }
}
`
	if string(got) != want {
		t.Errorf("package.json mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestUpdateScripts_PreservesOtherContent(t *testing.T) {
	w, fsys := setupManifest(t, "valid-package.json")
	original, _ := os.ReadFile(testPath("valid-package.json"))

	if _, err := UpdateScripts(w, FileName); err != nil {
		t.Fatalf("UpdateScripts() error: %v", err)
	}
	updated, _ := afero.ReadFile(fsys, FileName)

	var before, after map[string]any
	if err := json.Unmarshal(original, &before); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(updated, &after); err != nil {
		t.Fatalf("updated package.json is not valid JSON: %v\n%s", err, updated)
	}

	for key, val := range before {
		if key == "scripts" {
			continue
		}
		if !reflect.DeepEqual(after[key], val) {
			t.Errorf("key %q changed: %v -> %v", key, val, after[key])
		}
	}

	scripts := after["scripts"].(map[string]any)
	if scripts["lint"] != "eslint assets/" {
		t.Errorf("unrelated script lost: %v", scripts)
	}
	for _, s := range EncoreScripts {
		if scripts[s.Name] != s.Command {
			t.Errorf("scripts[%q] = %v, want %q", s.Name, scripts[s.Name], s.Command)
		}
	}

	text := string(updated)
	if !strings.Contains(text, `"html": "<b>&amp;</b>"`) {
		t.Errorf("string values must not be HTML-escaped:\n%s", text)
	}
	if strings.Index(text, `"lint"`) > strings.Index(text, `"encore:dev"`) {
		t.Errorf("existing script order changed:\n%s", text)
	}
	if strings.Index(text, `"encore:dev"`) > strings.Index(text, `"encore:watch"`) {
		t.Errorf("replaced entry should keep its position:\n%s", text)
	}
}

func TestUpdateScripts_Idempotent(t *testing.T) {
	w, fsys := setupManifest(t, "valid-package.json")

	if _, err := UpdateScripts(w, FileName); err != nil {
		t.Fatalf("first UpdateScripts() error: %v", err)
	}
	first, _ := afero.ReadFile(fsys, FileName)

	if _, err := UpdateScripts(w, FileName); err != nil {
		t.Fatalf("second UpdateScripts() error: %v", err)
	}
	second, _ := afero.ReadFile(fsys, FileName)

	if string(first) != string(second) {
		t.Errorf("second run changed the file\nfirst:\n%s\nsecond:\n%s", first, second)
	}

	doc, err := Parse(second)
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, s := range doc.Scripts() {
		if strings.HasPrefix(s[0], "encore:") {
			count++
		}
	}
	if count != len(EncoreScripts) {
		t.Errorf("expected %d encore scripts, got %d", len(EncoreScripts), count)
	}
}

func TestUpdateScripts_MissingFile(t *testing.T) {
	w := fsutil.NewWriter(afero.NewMemMapFs(), noPrompt{}, nil)

	_, err := UpdateScripts(w, FileName)
	if err == nil {
		t.Fatal("expected error for missing package.json")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestUpdateScripts_InvalidLeavesFileUntouched(t *testing.T) {
	w, fsys := setupManifest(t, "invalid-syntax.json")
	original, _ := afero.ReadFile(fsys, FileName)

	_, err := UpdateScripts(w, FileName)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	after, _ := afero.ReadFile(fsys, FileName)
	if string(after) != string(original) {
		t.Error("invalid manifest must not be rewritten")
	}
}

func TestDocument_SetScriptOverwrites(t *testing.T) {
	doc, err := Parse([]byte(`{"scripts":{"encore:dev":"old"}}`))
	if err != nil {
		t.Fatal(err)
	}
	doc.SetScript("encore:dev", "encore dev")

	if got, _ := doc.Script("encore:dev"); got != "encore dev" {
		t.Errorf("Script() = %q", got)
	}
	if n := len(doc.Scripts()); n != 1 {
		t.Errorf("expected 1 script, got %d", n)
	}
}

func TestParse_JSONOnlyEscapes(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"escaped slash", `{"name":"x","scripts":{"dev":"node .\/bin\/dev"}}`},
		{"surrogate pair", `{"name":"x","description":"\ud83d\ude00"}`},
		{"escaped quote and backslash", `{"name":"say \"hi\" \\ bye"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err != nil {
				t.Fatalf("Parse(%s) error: %v", tt.data, err)
			}
		})
	}

	doc, err := Parse([]byte(`{"scripts":{"dev":"node .\/bin\/dev"},"description":"\ud83d\ude00"}`))
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := doc.Script("dev"); got != "node ./bin/dev" {
		t.Errorf("Script(dev) = %q, want unescaped slashes", got)
	}
}

func TestUpdateScripts_EscapedStrings(t *testing.T) {
	w, fsys := setupManifest(t, "escaped-strings.json")

	if _, err := UpdateScripts(w, FileName); err != nil {
		t.Fatalf("UpdateScripts() error: %v", err)
	}
	updated, _ := afero.ReadFile(fsys, FileName)

	var after map[string]any
	if err := json.Unmarshal(updated, &after); err != nil {
		t.Fatalf("updated package.json is not valid JSON: %v\n%s", err, updated)
	}
	if after["description"] != "launch \U0001F680 with \"quotes\" and \\backslash" {
		t.Errorf("description = %q", after["description"])
	}
	if after["homepage"] != "https://example.com/docs" {
		t.Errorf("homepage = %q", after["homepage"])
	}
	scripts := after["scripts"].(map[string]any)
	if scripts["dev"] != "node ./bin/dev" || scripts["encore:dev"] != "encore dev" {
		t.Errorf("scripts = %v", scripts)
	}
}

func TestUpdateScripts_LooseFieldTypes(t *testing.T) {
	w, fsys := setupManifest(t, "loose-fields.json")

	if _, err := UpdateScripts(w, FileName); err != nil {
		t.Fatalf("UpdateScripts() error: %v", err)
	}
	updated, _ := afero.ReadFile(fsys, FileName)
	text := string(updated)
	for _, want := range []string{`"name": 42`, `"version": 1`, `"private": "yes"`, `"path": "../lib"`} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %s to survive the update:\n%s", want, text)
		}
	}

	doc, err := Parse(updated)
	if err != nil {
		t.Fatal(err)
	}
	deps := doc.Dependencies()
	if deps["lodash"] != "^4.17.21" {
		t.Errorf("Dependencies() = %v", deps)
	}
	if _, ok := deps["local-lib"]; ok {
		t.Errorf("non-string dependency entries should be ignored: %v", deps)
	}
}

func TestValidationIssue_Wording(t *testing.T) {
	tests := []struct {
		data  string
		field string
	}{
		{`{"scripts":{"build":3}}`, `script "build"`},
		{`{"scripts":[]}`, "scripts"},
		{`[]`, FileName},
	}
	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			result, err := Validate([]byte(tt.data))
			if err != nil {
				t.Fatal(err)
			}
			if result.Valid || len(result.Issues) == 0 {
				t.Fatalf("expected issues for %s", tt.data)
			}
			issue := result.Issues[0]
			if issue.Field != tt.field {
				t.Errorf("Field = %q, want %q", issue.Field, tt.field)
			}
			if !strings.HasPrefix(issue.String(), tt.field+": ") {
				t.Errorf("String() = %q", issue.String())
			}
		})
	}
}
