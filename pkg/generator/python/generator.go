package python

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/apex/log"

	"github.com/micmurawski/osdu-client-sub000/pkg/config"
	"github.com/micmurawski/osdu-client-sub000/pkg/ir"
	"github.com/micmurawski/osdu-client-sub000/pkg/naming"
	"github.com/micmurawski/osdu-client-sub000/pkg/openapi"
	"github.com/micmurawski/osdu-client-sub000/pkg/utils"
)

//go:embed templates/*
var templatesFS embed.FS

// verbs with a dedicated function in the requests library
var requestsVerbs = map[string]bool{
	"get": true, "post": true, "put": true, "patch": true,
	"delete": true, "head": true, "options": true,
}

// PythonGenerator writes the python client package described by a config
type PythonGenerator struct {
	cfg  *config.Config
	tmpl *template.Template
}

// NewPythonGenerator creates a new Python generator
func NewPythonGenerator(cfg *config.Config) (*PythonGenerator, error) {
	funcMap := sprig.TxtFuncMap()
	funcMap["pyString"] = pyString
	funcMap["pyLiteral"] = pyLiteral
	funcMap["docstring"] = docstring
	funcMap["requestCall"] = requestCall

	tmpl, err := template.New("osdu-gen").Funcs(funcMap).ParseFS(templatesFS, "templates/*.gotmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &PythonGenerator{cfg: cfg, tmpl: tmpl}, nil
}

// clientFile is the data behind client.py and the service __init__.py
type clientFile struct {
	Package     string
	ServiceName string
	Version     string
	Title       string
	ClientClass string
	ErrorClass  string
	Methods     []Method
	Validates   bool
	Deprecated  bool
}

// GeneratePackage writes the runtime support files shared by all services.
func (g *PythonGenerator) GeneratePackage() error {
	data := map[string]any{"Package": g.cfg.Package}
	for _, name := range []string{"__init__.py", "base.py", "exceptions.py"} {
		target := filepath.Join(g.cfg.OutDir, name)
		if err := g.renderFile("package_"+name+".gotmpl", target, data); err != nil {
			return err
		}
	}
	return nil
}

// GenerateService names and emits every operation of in, then writes the
// service package. New names are assigned in reg; saving it is up to the caller.
func (g *PythonGenerator) GenerateService(svc config.Service, in ir.IRService, doc *openapi.Document, reg naming.Registry) error {
	base := ClassBase(svc.Name, svc.Version)
	file := clientFile{
		Package:     g.cfg.Package,
		ServiceName: svc.Name,
		Version:     svc.Version,
		Title:       in.Title,
		ClientClass: base + "Client",
		ErrorClass:  base + "APIError",
	}

	emitter := NewEmitter(openapi.NewResolver(doc.Raw), in, file.ErrorClass, svc.Validate)
	for _, op := range in.Operations {
		name, err := naming.Derive(reg, op.Method, op.Path, op.Summary, op.Description)
		if err != nil {
			return fmt.Errorf("service %s: %w", svc.Name, err)
		}
		m, err := emitter.Emit(name, op)
		if err != nil {
			return fmt.Errorf("service %s: %w", svc.Name, err)
		}
		file.Methods = append(file.Methods, m)
		file.Validates = file.Validates || m.Validation != ""
		file.Deprecated = file.Deprecated || m.Deprecated
	}

	dir := g.cfg.ServiceDir(svc)
	if err := g.renderFile("client.py.gotmpl", filepath.Join(dir, "client.py"), file); err != nil {
		return err
	}
	if err := g.renderFile("models.py.gotmpl", filepath.Join(dir, "models.py"), map[string]any{"Document": schemaSections(doc.Raw)}); err != nil {
		return err
	}
	if err := g.renderFile("service_init.py.gotmpl", filepath.Join(dir, "__init__.py"), file); err != nil {
		return err
	}
	if svc.Version != "" {
		parent := filepath.Join(filepath.Dir(dir), "__init__.py")
		if err := g.renderFile("namespace_init.py.gotmpl", parent, file); err != nil {
			return err
		}
	}

	log.WithFields(log.Fields{
		"service": svc.Name,
		"version": svc.Version,
		"methods": len(file.Methods),
		"dir":     dir,
	}).Info("generated client")
	return nil
}

// RenderMethod returns the python source of a single method.
func (g *PythonGenerator) RenderMethod(m Method) (string, error) {
	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, "method", m); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderFile renders a template to the target path unless the path is excluded
func (g *PythonGenerator) renderFile(templateName, targetPath string, data any) error {
	if g.cfg.ShouldExcludeFile(targetPath) {
		log.WithField("file", targetPath).Debug("skipping excluded file")
		return nil
	}

	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, templateName, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", targetPath, err)
	}
	if err := os.WriteFile(targetPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", targetPath, err)
	}
	log.WithField("file", targetPath).Debug("wrote file")
	return nil
}

// ClassBase returns the PascalCase prefix of the generated class names.
func ClassBase(service, version string) string {
	return utils.ToPascalCase(strings.TrimSpace(service + " " + version))
}

// requestCall returns the opening of the requests call for an HTTP verb.
func requestCall(method string) string {
	method = strings.ToLower(method)
	if requestsVerbs[method] {
		return "requests." + method + "("
	}
	return "requests.request(" + pyString(strings.ToUpper(method)) + ","
}

// schemaSections keeps the parts of the document request bodies can refer to.
func schemaSections(raw map[string]any) map[string]any {
	out := map[string]any{}
	components, _ := raw["components"].(map[string]any)
	if schemas, ok := components["schemas"]; ok {
		out["components"] = map[string]any{"schemas": schemas}
	}
	return out
}
