package openapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-openapi/jsonpointer"
)

// maxRefHops bounds the number of indirections Resolve follows.
const maxRefHops = 32

var (
	ErrExternalRef   = errors.New("external reference")
	ErrUnresolvedRef = errors.New("unresolved reference")
	ErrRefCycle      = errors.New("reference cycle")
)

// Schema is a raw JSON schema node.
type Schema = map[string]any

// Resolver walks $ref pointers inside the raw view of a document.
type Resolver struct {
	doc map[string]any
}

// NewResolver returns a resolver over a raw document.
func NewResolver(doc map[string]any) *Resolver {
	return &Resolver{doc: doc}
}

// Lookup returns the schema object a local reference such as
// "#/components/schemas/Record" points to.
func (r *Resolver) Lookup(ref string) (Schema, error) {
	if !strings.HasPrefix(ref, "#") {
		return nil, fmt.Errorf("%w: %s", ErrExternalRef, ref)
	}
	ptr, err := jsonpointer.New(strings.TrimPrefix(ref, "#"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnresolvedRef, ref, err)
	}
	v, _, err := ptr.Get(r.doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnresolvedRef, ref, err)
	}
	node, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not point to an object", ErrUnresolvedRef, ref)
	}
	return node, nil
}

// Resolve follows $ref and allOf[0] indirections starting at s until it
// reaches a node that carries a type. A node with properties but no type is
// returned as is, as is a node with nothing left to follow.
func (r *Resolver) Resolve(s Schema) (Schema, error) {
	node := s
	for hop := 0; hop <= maxRefHops; hop++ {
		if node == nil {
			return nil, nil
		}
		if _, ok := node["type"]; ok {
			return node, nil
		}
		if ref, ok := node["$ref"].(string); ok {
			next, err := r.Lookup(ref)
			if err != nil {
				return nil, err
			}
			node = next
			continue
		}
		if first, ok := firstAllOf(node); ok {
			node = first
			continue
		}
		return node, nil
	}
	return nil, fmt.Errorf("%w: more than %d indirections", ErrRefCycle, maxRefHops)
}

// TypeOf resolves s and returns its type and, for arrays, the resolved type
// of its items. Untyped nodes with properties report "object".
func (r *Resolver) TypeOf(s Schema) (typ, itemType string, err error) {
	node, err := r.Resolve(s)
	if err != nil {
		return "", "", err
	}
	typ = typeName(node)
	if typ != "array" {
		return typ, "", nil
	}
	items, _ := node["items"].(map[string]any)
	if items == nil {
		return typ, "", nil
	}
	itemNode, err := r.Resolve(items)
	if err != nil {
		return "", "", fmt.Errorf("array items: %w", err)
	}
	return typ, typeName(itemNode), nil
}

// RefOf returns the top-level $ref of s, looking through allOf[0].
func RefOf(s Schema) string {
	if ref, ok := s["$ref"].(string); ok {
		return ref
	}
	if first, ok := firstAllOf(s); ok {
		if ref, ok := first["$ref"].(string); ok {
			return ref
		}
	}
	return ""
}

func firstAllOf(node Schema) (Schema, bool) {
	all, ok := node["allOf"].([]any)
	if !ok || len(all) == 0 {
		return nil, false
	}
	first, ok := all[0].(map[string]any)
	return first, ok
}

func typeName(node Schema) string {
	if node == nil {
		return ""
	}
	switch t := node["type"].(type) {
	case string:
		return t
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && s != "null" {
				return s
			}
		}
		return ""
	}
	if _, ok := node["properties"]; ok {
		return "object"
	}
	return ""
}
