package python

import (
	"fmt"
	"sort"
	"strings"

	"github.com/micmurawski/osdu-client-sub000/pkg/ir"
	"github.com/micmurawski/osdu-client-sub000/pkg/naming"
	"github.com/micmurawski/osdu-client-sub000/pkg/openapi"
	"github.com/micmurawski/osdu-client-sub000/pkg/utils"
)

// Header parameters the base client already sets for every request.
var injectedHeaders = map[string]bool{
	"data-partition-id": true,
	"tenant":            true,
	"authorization":     true,
}

// Names used by the method body or the cross-cutting parameters.
var reservedArgs = map[string]bool{
	"self":              true,
	"data_partition_id": true,
	"tenant":            true,
	"headers":           true,
	"params":            true,
	"request_data":      true,
	"response":          true,
	"requests":          true,
	"validate":          true,
	"warnings":          true,
	"schema_for":        true,
}

// Arg is one parameter of a generated method.
type Arg struct {
	Name        string
	Type        string
	Required    bool
	Description string
}

// Assignment copies a method argument into a request mapping.
type Assignment struct {
	Key      string
	Var      string
	Required bool
}

// Body describes how the request body is assembled.
type Body struct {
	// Fields is set when the body is built from one argument per property
	Fields []Assignment
	// Var is the name of the variable holding the body
	Var string
	// Keyword is the requests keyword carrying the body: json, data or files
	Keyword string
}

// Method is the emitted form of one operation. Its blocks are rendered in
// order: headers, params, body, validation, request.
type Method struct {
	Name       string
	HTTPMethod string
	Path       string
	Summary    string
	Doc        string
	Deprecated bool
	Args       []Arg
	Headers    []Assignment
	Query      []Assignment
	Body       *Body
	// Validation is the schema reference the body is validated against
	Validation string
	URL        string
	ErrorClass string
	ReturnType string
	// HasContent is false when the operation declares no response body
	HasContent bool
}

// Emitter turns IR operations of one service into methods.
type Emitter struct {
	resolver   *openapi.Resolver
	basePath   string
	errorClass string
	validate   bool
}

// NewEmitter creates an emitter for the operations of svc.
func NewEmitter(resolver *openapi.Resolver, svc ir.IRService, errorClass string, validate bool) *Emitter {
	return &Emitter{
		resolver:   resolver,
		basePath:   strings.TrimSuffix(svc.BasePath, "/"),
		errorClass: errorClass,
		validate:   validate,
	}
}

// Emit builds the method named name for op.
func (e *Emitter) Emit(name string, op ir.IROperation) (Method, error) {
	m := Method{
		Name:       name,
		HTTPMethod: strings.ToLower(op.Method),
		Path:       op.Path,
		Summary:    op.Summary,
		Doc:        op.Description,
		Deprecated: op.Deprecated,
		ErrorClass: e.errorClass,
		HasContent: op.Response.HasContent,
		ReturnType: "None",
	}
	if m.HasContent {
		m.ReturnType = returnType(e.resolver, op.Response.Schema)
	}

	names := newArgNames()
	var required, optional []Arg

	// Path parameters come first, in the order they appear in the path.
	pathVars := map[string]string{}
	for _, p := range orderPathParams(op) {
		arg, err := e.paramArg(names, p)
		if err != nil {
			return Method{}, fmt.Errorf("%s %s: path parameter %s: %w", op.Method, op.Path, p.Name, err)
		}
		arg.Required = true
		pathVars[p.Name] = arg.Name
		required = append(required, arg)
	}

	for _, loc := range []ir.IRParamLocation{ir.IRParamInQuery, ir.IRParamInHeader} {
		for _, p := range op.ParamsIn(loc) {
			if loc == ir.IRParamInHeader && injectedHeaders[strings.ToLower(p.Name)] {
				continue
			}
			arg, err := e.paramArg(names, p)
			if err != nil {
				return Method{}, fmt.Errorf("%s %s: %s parameter %s: %w", op.Method, op.Path, loc, p.Name, err)
			}
			a := Assignment{Key: p.Name, Var: arg.Name, Required: arg.Required}
			if loc == ir.IRParamInQuery {
				m.Query = append(m.Query, a)
			} else {
				m.Headers = append(m.Headers, a)
			}
			if arg.Required {
				required = append(required, arg)
			} else {
				optional = append(optional, arg)
			}
		}
	}

	if op.RequestBody != nil {
		body, args, err := e.body(names, op.RequestBody)
		if err != nil {
			return Method{}, fmt.Errorf("%s %s: %w", op.Method, op.Path, err)
		}
		m.Body = body
		for _, arg := range args {
			if arg.Required {
				required = append(required, arg)
			} else {
				optional = append(optional, arg)
			}
		}
		if e.validate {
			m.Validation = openapi.RefOf(op.RequestBody.Schema)
		}
	}

	for i := range optional {
		if !strings.HasPrefix(optional[i].Type, "Optional[") {
			optional[i].Type = "Optional[" + optional[i].Type + "]"
		}
	}
	m.Args = append(required, optional...)
	m.URL = "{self.base_url}" + fstringText(e.basePath) + pathTemplate(op.Path, pathVars)
	return m, nil
}

func (e *Emitter) paramArg(names *argNames, p ir.IRParam) (Arg, error) {
	typ, err := TypeForParam(e.resolver, p.Schema)
	if err != nil {
		return Arg{}, err
	}
	return Arg{
		Name:        names.claim(p.Name, string(p.In)),
		Type:        typ,
		Required:    p.Required,
		Description: p.Description,
	}, nil
}

// body splits a JSON object body into one argument per property; any other
// body is passed through as a single argument.
func (e *Emitter) body(names *argNames, rb *ir.IRRequestBody) (*Body, []Arg, error) {
	body := &Body{Keyword: bodyKeyword(rb.ContentType)}

	node, err := e.resolver.Resolve(rb.Schema)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	props, _ := node["properties"].(map[string]any)
	splittable := body.Keyword != "data" || rb.ContentType == "application/x-www-form-urlencoded"
	if len(props) > 0 && splittable {
		required := map[string]bool{}
		if list, ok := node["required"].([]any); ok {
			for _, v := range list {
				if s, ok := v.(string); ok {
					required[s] = true
				}
			}
		}
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var args []Arg
		for _, k := range keys {
			prop, ok := props[k].(map[string]any)
			if !ok {
				return nil, nil, fmt.Errorf("%w: property %s is not a schema", ErrMalformedBody, k)
			}
			typ, err := TypeForParam(e.resolver, prop)
			if err != nil {
				return nil, nil, fmt.Errorf("body property %s: %w", k, err)
			}
			desc, _ := prop["description"].(string)
			arg := Arg{Name: names.claim(k, "body"), Type: typ, Required: required[k], Description: desc}
			args = append(args, arg)
			body.Fields = append(body.Fields, Assignment{Key: k, Var: arg.Name, Required: arg.Required})
		}
		body.Var = "request_data"
		return body, args, nil
	}

	typ, err := TypeForParam(e.resolver, rb.Schema)
	if err != nil {
		return nil, nil, fmt.Errorf("request body: %w", err)
	}
	body.Var = names.claim("body", "body")
	return body, []Arg{{Name: body.Var, Type: typ, Required: rb.Required}}, nil
}

func bodyKeyword(contentType string) string {
	switch {
	case contentType == "application/json" || strings.HasSuffix(contentType, "+json"):
		return "json"
	case contentType == "multipart/form-data":
		return "files"
	default:
		return "data"
	}
}

// argNames hands out unique python identifiers for parameters.
type argNames struct {
	used map[string]bool
}

func newArgNames() *argNames {
	return &argNames{used: map[string]bool{}}
}

func (n *argNames) claim(raw, location string) string {
	name := utils.ToSnakeCase(raw)
	if name == "" {
		name = "param"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	if naming.PythonKeywords[name] {
		name += "_"
	}
	if n.used[name] || reservedArgs[name] {
		name = name + "_" + location
	}
	base := name
	for i := 2; n.used[name]; i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	n.used[name] = true
	return name
}
