// Package config loads the user-facing configuration file. The file is
// JSON, validated against an embedded schema before unmarshalling so a
// typo surfaces as a named issue instead of a silently ignored field.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// configSchema describes the accepted configuration document. Unknown
// top-level keys are rejected so misspelled options fail loudly.
const configSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "vim": {"type": "boolean"},
    "startInNormal": {"type": "boolean"},
    "historySize": {"type": "integer", "minimum": 1},
    "undoDepth": {"type": "integer", "minimum": 1},
    "killRingCapacity": {"type": "integer", "minimum": 1},
    "theme": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "user": {"type": "string"},
        "assistant": {"type": "string"},
        "accent": {"type": "string"},
        "border": {"type": "string"}
      }
    }
  }
}`

var (
	schemaLoader     gojsonschema.JSONLoader
	schemaLoaderOnce sync.Once
)

// Theme holds the display colors, as termenv-compatible color strings.
type Theme struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
	Accent    string `json:"accent"`
	Border    string `json:"border"`
}

// Config is the resolved application configuration.
type Config struct {
	Vim              bool  `json:"vim"`
	StartInNormal    bool  `json:"startInNormal"`
	HistorySize      int   `json:"historySize"`
	UndoDepth        int   `json:"undoDepth"`
	KillRingCapacity int   `json:"killRingCapacity"`
	Theme            Theme `json:"theme"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		HistorySize:      100,
		UndoDepth:        100,
		KillRingCapacity: 60,
		Theme: Theme{
			User:      "6",
			Assistant: "2",
			Accent:    "5",
			Border:    "8",
		},
	}
}

// SchemaValidationError lists the schema issues found in a config file.
type SchemaValidationError struct {
	issues []string
}

func (e SchemaValidationError) Error() string {
	if len(e.issues) == 0 {
		return "config failed schema validation"
	}
	return strings.Join(e.issues, "; ")
}

// Issues returns the individual validation messages.
func (e SchemaValidationError) Issues() []string {
	return e.issues
}

// Load reads and validates the configuration at path. A missing file is
// not an error; defaults apply. File fields override defaults
// individually, so a partial config is fine.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := validate(string(raw)); err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func validate(raw string) error {
	schemaLoaderOnce.Do(func() {
		schemaLoader = gojsonschema.NewStringLoader(configSchema)
	})

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return fmt.Errorf("config: schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return SchemaValidationError{issues: issues}
}
