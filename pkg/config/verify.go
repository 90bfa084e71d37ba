package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema map[string]interface{}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]interface{}
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validateKnownSections(schema, configMap); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// validateKnownSections checks every top-level config section is declared in the schema
func validateKnownSections(schema, configMap map[string]interface{}) error {
	defs, ok := schema["$defs"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("schema has no $defs")
	}
	root, ok := defs["Config"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("schema has no Config definition")
	}
	props, ok := root["properties"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("schema Config has no properties")
	}

	keys := make([]string, 0, len(configMap))
	for k := range configMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, found := props[k]; !found {
			return fmt.Errorf("section %q is not in schema", k)
		}
	}
	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Fetch.UserAgent == "" {
		return fmt.Errorf("fetch.user_agent is required")
	}
	if cfg.Fetch.Timeout == 0 {
		return fmt.Errorf("fetch.timeout is required")
	}

	// check paper sources if enabled
	if len(cfg.Categories) > 0 {
		if !cfg.Papers.PubMed.Disabled && cfg.Papers.PubMed.BaseURL == "" {
			return fmt.Errorf("papers.pubmed.base_url is required when pubmed is enabled")
		}
		if !cfg.Papers.BioRxiv.Disabled {
			if cfg.Papers.BioRxiv.BaseURL == "" {
				return fmt.Errorf("papers.biorxiv.base_url is required when biorxiv is enabled")
			}
			if len(cfg.Papers.BioRxiv.Collections) == 0 {
				return fmt.Errorf("papers.biorxiv.collections is required when biorxiv is enabled")
			}
		}
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
