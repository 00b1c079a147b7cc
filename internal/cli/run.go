package cli

import (
	"errors"
	"io"

	"github.com/apex/log"

	"github.com/micmurawski/osdu-client-sub000/pkg/generator"
)

type FallbackParams struct {
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

type RunGenerateParams struct {
	ConfigPath  string
	OnlyService string
	Fallback    FallbackParams
}

func RunValidate(input string) error {
	if err := generator.ValidateSpec(input); err != nil {
		return err
	}
	log.WithField("spec", input).Info("document is valid")
	return nil
}

func RunGenerate(p RunGenerateParams) error {
	if p.ConfigPath == "" && (p.Fallback.Spec == "" || p.Fallback.Name == "" || p.Fallback.OutDir == "") {
		return errors.New("either --config or all of --input, --name, --out must be provided")
	}
	return generator.NewService().Generate(generator.GenerateOptions{
		ConfigPath:  p.ConfigPath,
		OnlyService: p.OnlyService,
		Fallback: generator.FallbackOptions{
			Spec:        p.Fallback.Spec,
			Name:        p.Fallback.Name,
			Version:     p.Fallback.Version,
			OutDir:      absPath(p.Fallback.OutDir),
			Package:     p.Fallback.Package,
			BasePath:    p.Fallback.BasePath,
			Validate:    p.Fallback.Validate,
			IncludeTags: p.Fallback.IncludeTags,
			ExcludeTags: p.Fallback.ExcludeTags,
		},
	})
}

// RunNames prints the name registry at path, one operation per line.
func RunNames(w io.Writer, path string) error {
	reg, err := generator.ReadNames(path)
	if err != nil {
		return err
	}
	return printNames(w, reg)
}
