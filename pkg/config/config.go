package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config represents the complete configuration for client generation
type Config struct {
	// Package is the python package name of the generated library
	Package string `yaml:"package"`
	// OutDir is the root directory of the generated package
	OutDir string `yaml:"outDir"`
	// RegistryDir holds the method name registries. Defaults to each service directory.
	RegistryDir string `yaml:"registryDir"`
	// PostCommand is an optional command to run after generation completes.
	// Uses Docker Compose array format: ["black", "."]
	// The command will be executed in the output directory.
	PostCommand []string `yaml:"postCommand"`
	// ExcludeFiles is a list of file paths (relative to OutDir) that should not be generated
	// Example: ["base.py", "search/client.py"]
	ExcludeFiles []string  `yaml:"exclude"`
	Services     []Service `yaml:"services"`
}

// Service represents the configuration of one generated service client
type Service struct {
	Name string `yaml:"name"`
	// Spec is a path or HTTP(S) URL of the OpenAPI or Swagger document
	Spec string `yaml:"spec"`
	// Version places the client in a versioned sub-package
	Version string `yaml:"version"`
	// BasePath overrides the path taken from the document servers
	BasePath string `yaml:"basePath"`
	// Validate emits jsonschema validation of request bodies
	Validate    bool     `yaml:"validate"`
	IncludeTags []string `yaml:"includeTags"`
	ExcludeTags []string `yaml:"excludeTags"`
}

// GetPostCommand returns the post-generation command to execute.
func (c *Config) GetPostCommand() []string {
	return c.PostCommand
}

// ShouldExcludeFile checks if a file path should be excluded based on the ExcludeFiles list.
// targetPath should be an absolute path, and the comparison is done relative to OutDir.
func (c *Config) ShouldExcludeFile(targetPath string) bool {
	if len(c.ExcludeFiles) == 0 {
		return false
	}

	relPath, err := filepath.Rel(c.OutDir, targetPath)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	if relPath == "." {
		relPath = ""
	}

	for _, excludePattern := range c.ExcludeFiles {
		normalizedExclude := strings.TrimSuffix(filepath.ToSlash(excludePattern), "/")
		if relPath == normalizedExclude {
			return true
		}
		// "search/" excludes everything below search
		if normalizedExclude != "" && strings.HasPrefix(relPath, normalizedExclude+"/") {
			return true
		}
	}

	return false
}

// ServiceDir returns the directory the service package is written to.
func (c *Config) ServiceDir(s Service) string {
	dir := filepath.Join(c.OutDir, s.Name)
	if s.Version != "" {
		dir = filepath.Join(dir, s.Version)
	}
	return dir
}

// RegistryPath returns the method name registry file of a service.
func (c *Config) RegistryPath(s Service, fileName string) string {
	if c.RegistryDir != "" {
		return filepath.Join(c.RegistryDir, s.Name, fileName)
	}
	return filepath.Join(c.OutDir, s.Name, fileName)
}

// Find returns the services matching name, or all of them when name is empty.
func (c *Config) Find(name string) []Service {
	if name == "" {
		return c.Services
	}
	var out []Service
	for _, s := range c.Services {
		if s.Name == name {
			out = append(out, s)
		}
	}
	return out
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Normalize(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize applies defaults, validates required fields and makes relative
// paths absolute against baseDir.
func (c *Config) Normalize(baseDir string) error {
	if c.Package == "" {
		c.Package = "osdu_client"
	}
	if !identifier.MatchString(c.Package) {
		return fmt.Errorf("config.package %q is not a valid python package name", c.Package)
	}
	if c.OutDir == "" {
		return errors.New("config.outDir is required")
	}
	c.OutDir = absPath(baseDir, c.OutDir)
	if c.RegistryDir != "" {
		c.RegistryDir = absPath(baseDir, c.RegistryDir)
	}
	if len(c.Services) == 0 {
		return errors.New("config.services must list at least one service")
	}

	seen := map[string]bool{}
	// versioned records, per service name, whether its entries carry a version
	versioned := map[string]bool{}
	for i := range c.Services {
		s := &c.Services[i]
		if s.Name == "" || s.Spec == "" {
			return fmt.Errorf("services[%d] missing required fields (name, spec)", i)
		}
		if !identifier.MatchString(s.Name) {
			return fmt.Errorf("services[%d].name %q is not a valid python module name", i, s.Name)
		}
		if s.Version != "" && !identifier.MatchString(s.Version) {
			return fmt.Errorf("services[%d].version %q is not a valid python module name", i, s.Version)
		}
		key := s.Name + "/" + s.Version
		if seen[key] {
			return fmt.Errorf("services[%d]: %s %s is configured twice", i, s.Name, s.Version)
		}
		seen[key] = true
		// A versioned entry turns <service>/ into a namespace package, so it
		// cannot share the directory with an unversioned client.
		if v, ok := versioned[s.Name]; ok && v != (s.Version != "") {
			return fmt.Errorf("services[%d]: %s mixes versioned and unversioned entries", i, s.Name)
		}
		versioned[s.Name] = s.Version != ""
		// Do not absolutize when spec is an HTTP(S) URL
		if u, err := url.Parse(s.Spec); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
			continue
		}
		s.Spec = absPath(baseDir, s.Spec)
	}
	return nil
}

func absPath(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	abs, _ := filepath.Abs(filepath.Join(baseDir, p))
	return abs
}
