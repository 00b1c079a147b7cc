package generator

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/apex/log"

	"github.com/micmurawski/osdu-client-sub000/pkg/config"
	"github.com/micmurawski/osdu-client-sub000/pkg/generator/python"
	"github.com/micmurawski/osdu-client-sub000/pkg/openapi"
	"github.com/micmurawski/osdu-client-sub000/pkg/registry"
)

// GenerateOptions contains options for client generation
type GenerateOptions struct {
	ConfigPath string
	// OnlyService generates only the services with this name
	OnlyService string
	Fallback    FallbackOptions
}

// FallbackOptions describe a single service when no config file is provided
type FallbackOptions struct {
	Spec        string
	Name        string
	Version     string
	OutDir      string
	Package     string
	BasePath    string
	Validate    bool
	IncludeTags []string
	ExcludeTags []string
}

// Service provides high-level client generation functionality
type Service struct {
	// LoadDocument fetches and parses a service document
	LoadDocument func(input string) (*openapi.Document, error)
}

// NewService creates a new generator service
func NewService() *Service {
	return &Service{LoadDocument: openapi.LoadDocument}
}

// Generate generates clients based on the provided options
func (s *Service) Generate(opts GenerateOptions) error {
	var cfg *config.Config
	var err error

	if opts.ConfigPath == "" {
		// Use fallback options to create a config
		fb := opts.Fallback
		if fb.Spec == "" || fb.Name == "" || fb.OutDir == "" {
			return fmt.Errorf("either config path or spec, name and output directory must be provided")
		}
		cfg = &config.Config{
			Package: fb.Package,
			OutDir:  fb.OutDir,
			Services: []config.Service{
				{
					Name:        fb.Name,
					Spec:        fb.Spec,
					Version:     fb.Version,
					BasePath:    fb.BasePath,
					Validate:    fb.Validate,
					IncludeTags: fb.IncludeTags,
					ExcludeTags: fb.ExcludeTags,
				},
			},
		}
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		if err := cfg.Normalize(wd); err != nil {
			return err
		}
	} else {
		cfg, err = config.Load(opts.ConfigPath)
		if err != nil {
			return err
		}
	}

	return s.GenerateFromConfig(cfg, opts.OnlyService)
}

// GenerateFromConfig generates the package and every service of cfg, or
// only the services named onlyService when it is set.
func (s *Service) GenerateFromConfig(cfg *config.Config, onlyService string) error {
	services := cfg.Find(onlyService)
	if len(services) == 0 {
		return fmt.Errorf("no service named %q in config", onlyService)
	}

	gen, err := python.NewPythonGenerator(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := gen.GeneratePackage(); err != nil {
		return err
	}

	for _, svc := range services {
		if err := s.generateService(gen, cfg, svc); err != nil {
			return err
		}
	}

	// Execute post-generation command if specified
	if command := cfg.GetPostCommand(); len(command) > 0 {
		if err := s.executeCommand(command, cfg.OutDir, "post-command"); err != nil {
			return fmt.Errorf("post-generation command failed: %w", err)
		}
	}
	return nil
}

// generateService writes one service and saves its name registry. The
// registry is only written once every method of the service was emitted.
func (s *Service) generateService(gen *python.PythonGenerator, cfg *config.Config, svc config.Service) error {
	ctx := log.WithFields(log.Fields{"service": svc.Name, "version": svc.Version})
	ctx.WithField("spec", svc.Spec).Info("loading document")

	doc, err := s.LoadDocument(svc.Spec)
	if err != nil {
		return fmt.Errorf("service %s: %w", svc.Name, err)
	}
	service, err := buildIR(doc, svc)
	if err != nil {
		return fmt.Errorf("service %s: %w", svc.Name, err)
	}

	reg, err := registry.Open(cfg.RegistryPath(svc, registry.FileName(svc.Version)))
	if err != nil {
		return err
	}
	known := reg.Len()

	if err := gen.GenerateService(svc, service, doc, reg); err != nil {
		return err
	}
	if err := reg.Save(); err != nil {
		return err
	}
	ctx.WithFields(log.Fields{
		"registry": reg.Path(),
		"new":      reg.Len() - known,
	}).Debug("saved name registry")
	return nil
}

// executeCommand executes a single command in Docker Compose array format
func (s *Service) executeCommand(command []string, workDir, commandLabel string) error {
	if len(command) == 0 {
		return nil
	}

	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = workDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmdDescription := strings.Join(command, " ")
	log.WithField("command", cmdDescription).Info("running " + commandLabel)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s (%s) failed: %w", commandLabel, cmdDescription, err)
	}
	return nil
}
