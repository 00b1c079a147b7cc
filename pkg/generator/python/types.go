package python

import (
	"errors"
	"fmt"

	"github.com/micmurawski/osdu-client-sub000/pkg/openapi"
)

var (
	// ErrUnmappedType is returned for a (type, item type) pair missing from paramTypes
	ErrUnmappedType = errors.New("unmapped schema type")
	// ErrMalformedBody is returned when a request body schema cannot be resolved
	ErrMalformedBody = errors.New("malformed request body")
)

type typeKey struct {
	Type  string
	Items string
}

// paramTypes is the closed mapping from resolved schema types to python
// annotations. Arrays are mapped one level deep only.
var paramTypes = map[typeKey]string{
	{"string", ""}:       "str",
	{"integer", ""}:      "int",
	{"number", ""}:       "float",
	{"boolean", ""}:      "bool",
	{"object", ""}:       "dict",
	{"", ""}:             "Any",
	{"array", "string"}:  "list[str]",
	{"array", "integer"}: "list[int]",
	{"array", "number"}:  "list[float]",
	{"array", "boolean"}: "list[bool]",
	{"array", "object"}:  "list[dict]",
	{"array", ""}:        "list",
}

// TypeForParam resolves schema and returns its python annotation.
func TypeForParam(r *openapi.Resolver, schema openapi.Schema) (string, error) {
	typ, items, err := r.TypeOf(schema)
	if err != nil {
		return "", err
	}
	return typeFor(typ, items)
}

func typeFor(typ, items string) (string, error) {
	t, ok := paramTypes[typeKey{typ, items}]
	if !ok {
		if typ == "array" {
			return "", fmt.Errorf("%w: array of %q", ErrUnmappedType, items)
		}
		return "", fmt.Errorf("%w: %q", ErrUnmappedType, typ)
	}
	return t, nil
}

// returnType maps a response schema to the annotation of the decoded body.
// Unlike parameters, response shapes never abort generation.
func returnType(r *openapi.Resolver, schema openapi.Schema) string {
	typ, _, err := r.TypeOf(schema)
	if err != nil {
		return "Any"
	}
	if typ == "array" {
		return "list"
	}
	t, err := typeFor(typ, "")
	if err != nil {
		return "Any"
	}
	return t
}
