// Package apidoc embeds the OpenAPI description of the HTTP API.
package apidoc

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var source []byte

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*openapi3.T, error) {
	return parse(ctx, source)
}

func parse(ctx context.Context, content []byte) (*openapi3.T, error) {
	var yamlData any
	if err := yaml.Unmarshal(content, &yamlData); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI yaml: %w", err)
	}
	jsonContent, err := json.Marshal(yamlData)
	if err != nil {
		return nil, fmt.Errorf("failed to convert OpenAPI yaml to json: %w", err)
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false

	doc, err := loader.LoadFromData(jsonContent)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return doc, nil
}

// JSON renders the embedded document as JSON.
func JSON(ctx context.Context) ([]byte, error) {
	doc, err := Load(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
