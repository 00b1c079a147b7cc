package generator

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/micmurawski/osdu-client-sub000/pkg/config"
	"github.com/micmurawski/osdu-client-sub000/pkg/ir"
	"github.com/micmurawski/osdu-client-sub000/pkg/openapi"
)

// Operations of a path item are visited in this order.
var methodOrder = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD", "TRACE"}

// buildIR collects the operations of doc that pass the tag filters of svc,
// sorted by path and then by verb.
func buildIR(doc *openapi.Document, svc config.Service) (ir.IRService, error) {
	include, exclude, err := compileTagFilters(svc.IncludeTags, svc.ExcludeTags)
	if err != nil {
		return ir.IRService{}, err
	}

	out := ir.IRService{
		Name:     svc.Name,
		Version:  svc.Version,
		BasePath: svc.BasePath,
	}
	if doc.T.Info != nil {
		out.Title = doc.T.Info.Title
	}
	if out.BasePath == "" {
		out.BasePath = serverPath(doc.T)
	}
	if doc.T.Paths == nil {
		return out, nil
	}

	paths := doc.T.Paths.InMatchingOrder()
	sort.Strings(paths)
	for _, path := range paths {
		item := doc.T.Paths.Value(path)
		if item == nil {
			continue
		}
		for _, method := range methodOrder {
			op := item.GetOperation(method)
			if op == nil {
				continue
			}
			// Copy original tags, defaulting to ["misc"] if no tags
			originalTags := make([]string, len(op.Tags))
			copy(originalTags, op.Tags)
			if len(originalTags) == 0 {
				originalTags = []string{"misc"}
			}
			if !shouldIncludeOperation(originalTags, include, exclude) {
				continue
			}

			irOp, err := buildOperation(item, op, method, path)
			if err != nil {
				return ir.IRService{}, fmt.Errorf("%s %s: %w", method, path, err)
			}
			irOp.OriginalTags = originalTags
			out.Operations = append(out.Operations, irOp)
		}
	}
	return out, nil
}

func buildOperation(item *openapi3.PathItem, op *openapi3.Operation, method, path string) (ir.IROperation, error) {
	out := ir.IROperation{
		OperationID: op.OperationID,
		Method:      method,
		Path:        path,
		Summary:     op.Summary,
		Description: op.Description,
		Deprecated:  op.Deprecated,
	}

	params, err := collectParams(item, op)
	if err != nil {
		return ir.IROperation{}, err
	}
	out.Params = params

	if out.RequestBody, err = extractRequestBody(op); err != nil {
		return ir.IROperation{}, err
	}
	if out.Response, err = extractResponse(op); err != nil {
		return ir.IROperation{}, err
	}
	return out, nil
}

// collectParams merges path item and operation parameters. Operation
// parameters override path item ones with the same name and location.
func collectParams(item *openapi3.PathItem, op *openapi3.Operation) ([]ir.IRParam, error) {
	var out []ir.IRParam
	index := map[string]int{}

	add := func(refs openapi3.Parameters) error {
		for _, pr := range refs {
			if pr == nil || pr.Value == nil {
				continue
			}
			p := pr.Value
			var in ir.IRParamLocation
			switch p.In {
			case openapi3.ParameterInPath:
				in = ir.IRParamInPath
			case openapi3.ParameterInQuery:
				in = ir.IRParamInQuery
			case openapi3.ParameterInHeader:
				in = ir.IRParamInHeader
			default:
				continue
			}
			schema, err := rawSchema(p.Schema)
			if err != nil {
				return fmt.Errorf("parameter %s: %w", p.Name, err)
			}
			param := ir.IRParam{
				Name:        p.Name,
				In:          in,
				Required:    p.Required || in == ir.IRParamInPath,
				Description: p.Description,
				Schema:      schema,
			}
			key := string(in) + ":" + p.Name
			if i, ok := index[key]; ok {
				out[i] = param
				continue
			}
			index[key] = len(out)
			out = append(out, param)
		}
		return nil
	}

	if err := add(item.Parameters); err != nil {
		return nil, err
	}
	if err := add(op.Parameters); err != nil {
		return nil, err
	}
	return out, nil
}

// extractRequestBody picks the body media type: JSON first, then form
// encodings, then the first remaining type in lexical order.
func extractRequestBody(op *openapi3.Operation) (*ir.IRRequestBody, error) {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, nil
	}
	rb := op.RequestBody.Value
	ct := preferredMediaType(rb.Content)
	if ct == "" {
		return nil, nil
	}
	schema, err := rawSchema(rb.Content[ct].Schema)
	if err != nil {
		return nil, fmt.Errorf("request body: %w", err)
	}
	return &ir.IRRequestBody{
		ContentType: ct,
		Required:    rb.Required,
		Schema:      schema,
	}, nil
}

// extractResponse chooses 200, 201, or the lowest other 2xx response.
func extractResponse(op *openapi3.Operation) (ir.IRResponse, error) {
	if op.Responses == nil {
		return ir.IRResponse{}, nil
	}
	m := op.Responses.Map()
	codes := []string{"200", "201"}
	var rest []string
	for code := range m {
		if len(code) == 3 && code[0] == '2' && code != "200" && code != "201" {
			rest = append(rest, code)
		}
	}
	sort.Strings(rest)
	codes = append(codes, rest...)

	for _, code := range codes {
		rr, ok := m[code]
		if !ok || rr == nil || rr.Value == nil {
			continue
		}
		ct := preferredMediaType(rr.Value.Content)
		if ct == "" {
			return ir.IRResponse{}, nil
		}
		schema, err := rawSchema(rr.Value.Content[ct].Schema)
		if err != nil {
			return ir.IRResponse{}, fmt.Errorf("response %s: %w", code, err)
		}
		return ir.IRResponse{HasContent: true, Schema: schema}, nil
	}
	return ir.IRResponse{}, nil
}

func preferredMediaType(content openapi3.Content) string {
	if len(content) == 0 {
		return ""
	}
	types := make([]string, 0, len(content))
	for ct := range content {
		types = append(types, ct)
	}
	sort.Strings(types)

	if _, ok := content["application/json"]; ok {
		return "application/json"
	}
	for _, ct := range types {
		if strings.HasSuffix(ct, "+json") {
			return ct
		}
	}
	for _, ct := range []string{"application/x-www-form-urlencoded", "multipart/form-data"} {
		if _, ok := content[ct]; ok {
			return ct
		}
	}
	return types[0]
}

// rawSchema returns the JSON form of a schema reference. A reference is
// kept as {"$ref": ...} so that it can be resolved against the raw document.
func rawSchema(ref *openapi3.SchemaRef) (ir.IRSchema, error) {
	if ref == nil {
		return ir.IRSchema{}, nil
	}
	data, err := json.Marshal(ref)
	if err != nil {
		return nil, err
	}
	var out ir.IRSchema
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = ir.IRSchema{}
	}
	return out, nil
}

// serverPath returns the path of the first server URL, or "" when the
// document declares none.
func serverPath(doc *openapi3.T) string {
	if len(doc.Servers) == 0 || doc.Servers[0] == nil {
		return ""
	}
	u, err := url.Parse(doc.Servers[0].URL)
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(u.Path, "/")
}

// compileTagFilters compiles regex patterns for tag filtering
func compileTagFilters(include, exclude []string) ([]*regexp.Regexp, []*regexp.Regexp, error) {
	inc := make([]*regexp.Regexp, 0, len(include))
	for _, p := range include {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid includeTags pattern %q: %w", p, err)
		}
		inc = append(inc, r)
	}
	exc := make([]*regexp.Regexp, 0, len(exclude))
	for _, p := range exclude {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid excludeTags pattern %q: %w", p, err)
		}
		exc = append(exc, r)
	}
	return inc, exc, nil
}

// shouldIncludeOperation determines if an operation should be included based on its original tags
func shouldIncludeOperation(originalTags []string, include, exclude []*regexp.Regexp) bool {
	// If no include patterns, assume all tags are initially included
	included := len(include) == 0

	// operation is included if ANY of its tags match ANY include pattern
	for _, tag := range originalTags {
		for _, r := range include {
			if r.MatchString(tag) {
				included = true
				break
			}
		}
		if included {
			break
		}
	}
	if !included {
		return false
	}

	for _, tag := range originalTags {
		for _, r := range exclude {
			if r.MatchString(tag) {
				return false
			}
		}
	}
	return true
}
