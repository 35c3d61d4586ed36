package engineconfig

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// schemaDoc is the bundled JSON Schema the pipeline configuration is
// validated against before field-level Validate runs. It catches shape
// errors (wrong types, missing required keys) with richer, path-qualified
// messages than hand-written checks alone.
const schemaDoc = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["stages"],
  "properties": {
    "default-e2e": {"enum": ["auto", "always", "off", ""]},
    "default-report": {"enum": ["summary", "json", "junit", ""]},
    "stages": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name", "checks"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "parallel": {"type": "boolean"},
          "fail-on-warn": {"type": "boolean"},
          "checks": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["use"],
              "properties": {
                "use": {"type": "string", "minLength": 1},
                "options": {"type": "object"}
              }
            }
          }
        }
      }
    }
  }
}`

var compiledSchema *jsonschema.Schema

func compileSchema() (*jsonschema.Schema, error) {
	if compiledSchema != nil {
		return compiledSchema, nil
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(schemaDoc)))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("hex-validate-config.json", doc); err != nil {
		return nil, err
	}
	schema, err := c.Compile("hex-validate-config.json")
	if err != nil {
		return nil, err
	}
	compiledSchema = schema
	return schema, nil
}

// ValidateSchema converts raw YAML config bytes to JSON and validates the
// result against the bundled schema, returning a descriptive error on the
// first shape violation. Called ahead of Validate so configuration authors
// see schema-shaped errors before the narrower field checks run.
func ValidateSchema(yamlData []byte) error {
	var generic any
	if err := yaml.Unmarshal(yamlData, &generic); err != nil {
		return fmt.Errorf("parsing config for schema validation: %w", err)
	}
	normalized := normalizeForJSON(generic)

	jsonBytes, err := json.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("converting config to JSON for schema validation: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compiling config schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonBytes))
	if err != nil {
		return fmt.Errorf("parsing config JSON for schema validation: %w", err)
	}

	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("config: schema validation failed: %w", err)
	}
	return nil
}

// normalizeForJSON converts yaml.v3's map[string]interface{} decoding
// (which, for nested structures under `map[any]any` in older behavior, can
// produce non-string-keyed maps) into the map[string]any shape
// encoding/json requires. gopkg.in/yaml.v3 already decodes mappings as
// map[string]interface{} by default, but nested `any` values are walked
// recursively here for defense against a hand-authored config using
// unusual key types.
func normalizeForJSON(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, vv := range val {
			out[k] = normalizeForJSON(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, vv := range val {
			out[fmt.Sprintf("%v", k)] = normalizeForJSON(vv)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, vv := range val {
			out[i] = normalizeForJSON(vv)
		}
		return out
	default:
		return val
	}
}
