// Package osduclient generates Python clients for OSDU platform services
// from their OpenAPI 3 or Swagger 2 documents.
//
// Method names are derived once, from the operation summary or from its
// verb and path, and recorded in a per-service name registry so that later
// runs keep every published name stable.
//
// Quick Start:
//
//	err := osduclient.GenerateFromConfig("./osdu-gen.yaml")
//
// For more control, see the generator package.
package osduclient

import (
	"github.com/micmurawski/osdu-client-sub000/pkg/generator"
)

// GenerateClient generates the client of a single service without a config
// file.
//
// Example:
//
//	err := osduclient.GenerateClient(osduclient.ClientOptions{
//		Spec:    "./search.yaml",
//		Name:    "search",
//		Version: "v2",
//		OutDir:  "./osdu_client",
//	})
func GenerateClient(opts ClientOptions) error {
	return generator.GenerateClient(generator.FallbackOptions{
		Spec:        opts.Spec,
		Name:        opts.Name,
		Version:     opts.Version,
		OutDir:      opts.OutDir,
		Package:     opts.Package,
		BasePath:    opts.BasePath,
		Validate:    opts.Validate,
		IncludeTags: opts.IncludeTags,
		ExcludeTags: opts.ExcludeTags,
	})
}

// GenerateFromConfig generates clients from a YAML configuration file.
// Optionally, you can name a single service to generate only that service.
func GenerateFromConfig(configPath string, onlyService ...string) error {
	return generator.GenerateFromConfig(configPath, onlyService...)
}

// ValidateSpec validates an OpenAPI or Swagger document.
func ValidateSpec(specPath string) error {
	return generator.ValidateSpec(specPath)
}

// ClientOptions describe one service client
type ClientOptions struct {
	Spec     string // OpenAPI or Swagger document, file or URL
	Name     string // Service name, used as the python sub-package
	Version  string // Optional API version sub-package
	OutDir   string // Root of the generated python package
	Package  string // Python package name, osdu_client by default
	BasePath string // Path prefix of every operation, servers[0] by default
	// Validate makes generated methods check request bodies with jsonschema
	Validate    bool
	IncludeTags []string // Regex patterns for tags to include
	ExcludeTags []string // Regex patterns for tags to exclude
}
