package apidocs

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var specYAML []byte

// Load 解析并校验内嵌的 OpenAPI 文档
func Load() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	spec, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi spec: %w", err)
	}

	if err = spec.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi spec: %w", err)
	}

	return spec, nil
}

// JSON 返回内嵌文档的 JSON 形式，供 Doc 使用
func JSON() ([]byte, error) {
	spec, err := Load()
	if err != nil {
		return nil, err
	}

	specJSON, err := spec.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}

	return specJSON, nil
}
