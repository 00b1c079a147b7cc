package generator

import (
	"github.com/micmurawski/osdu-client-sub000/pkg/openapi"
	"github.com/micmurawski/osdu-client-sub000/pkg/registry"
)

// GenerateClient is a convenience function for generating a single service
// client without a config file
func GenerateClient(opts FallbackOptions) error {
	return NewService().Generate(GenerateOptions{Fallback: opts})
}

// GenerateFromConfig is a convenience function for generating from a config file
func GenerateFromConfig(configPath string, onlyService ...string) error {
	only := ""
	if len(onlyService) > 0 {
		only = onlyService[0]
	}
	return NewService().Generate(GenerateOptions{ConfigPath: configPath, OnlyService: only})
}

// ValidateSpec validates an OpenAPI or Swagger document
func ValidateSpec(specPath string) error {
	return openapi.ValidateDocument(specPath)
}

// ReadNames returns the name registry stored at path
func ReadNames(path string) (*registry.Store, error) {
	return registry.Open(path)
}
