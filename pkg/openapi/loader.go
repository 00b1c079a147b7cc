package openapi

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/oasdiff/yaml"
)

// Document is a loaded API description. Swagger 2 input is converted to
// OpenAPI 3 so that both the typed model and the raw view share the same
// reference layout.
type Document struct {
	// Source is the path or URL the document was read from
	Source string
	// Swagger2 reports whether the input was a Swagger 2.0 document
	Swagger2 bool
	// T is the typed document with references resolved
	T *openapi3.T
	// Raw is the JSON view of T used to walk $ref pointers
	Raw map[string]any
}

// LoadDocument loads an OpenAPI 3 or Swagger 2 document from a local file
// path or an HTTP(S) URL.
func LoadDocument(input string) (*Document, error) {
	loader := &openapi3.Loader{IsExternalRefsAllowed: true}
	return LoadDocumentWithLoader(loader, input)
}

// LoadDocumentWithLoader loads a document using a custom loader
func LoadDocumentWithLoader(loader *openapi3.Loader, input string) (*Document, error) {
	location, err := sourceURL(input)
	if err != nil {
		return nil, err
	}
	data, err := openapi3.DefaultReadFromURI(loader, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", input, err)
	}
	return LoadDocumentFromData(loader, data, location)
}

// LoadDocumentFromData parses an already fetched document. location is used
// to resolve relative external references and may be nil.
func LoadDocumentFromData(loader *openapi3.Loader, data []byte, location *url.URL) (*Document, error) {
	var header struct {
		Swagger string `json:"swagger"`
		OpenAPI string `json:"openapi"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	doc := &Document{}
	if location != nil {
		doc.Source = location.String()
	}

	switch {
	case header.Swagger != "":
		var v2 openapi2.T
		if err := yaml.Unmarshal(data, &v2); err != nil {
			return nil, fmt.Errorf("failed to parse swagger document: %w", err)
		}
		v3, err := openapi2conv.ToV3(&v2)
		if err != nil {
			return nil, fmt.Errorf("failed to convert swagger document: %w", err)
		}
		// ToV3 only derives servers from host, so keep a bare basePath.
		if len(v3.Servers) == 0 && v2.BasePath != "" {
			v3.Servers = openapi3.Servers{{URL: v2.BasePath}}
		}
		if err := loader.ResolveRefsIn(v3, location); err != nil {
			return nil, fmt.Errorf("failed to resolve references: %w", err)
		}
		doc.T = v3
		doc.Swagger2 = true
	case header.OpenAPI != "":
		var (
			t   *openapi3.T
			err error
		)
		if location != nil {
			t, err = loader.LoadFromDataWithPath(data, location)
		} else {
			t, err = loader.LoadFromData(data)
		}
		if err != nil {
			return nil, err
		}
		doc.T = t
	default:
		return nil, fmt.Errorf("document declares neither an openapi nor a swagger version")
	}

	raw, err := rawView(doc.T)
	if err != nil {
		return nil, err
	}
	doc.Raw = raw
	return doc, nil
}

// ValidateDocument validates an OpenAPI document
func ValidateDocument(input string) error {
	loader := &openapi3.Loader{IsExternalRefsAllowed: true}
	doc, err := LoadDocumentWithLoader(loader, input)
	if err != nil {
		return err
	}
	return doc.T.Validate(loader.Context)
}

// rawView marshals the typed document back to JSON. References that the
// loader resolved are emitted as {"$ref": ...}, so the raw view keeps every
// indirection the resolver has to follow.
func rawView(t *openapi3.T) (map[string]any, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return raw, nil
}

func sourceURL(input string) (*url.URL, error) {
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return u, nil
	}
	abs, err := filepath.Abs(input)
	if err != nil {
		return nil, err
	}
	return &url.URL{Path: filepath.ToSlash(abs)}, nil
}
