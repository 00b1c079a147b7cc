package python

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/micmurawski/osdu-client-sub000/pkg/ir"
)

func TestPathParamNames(t *testing.T) {
	assert.Equal(t, []string{"kind", "id"}, pathParamNames("/schemas/{kind}/records/{id}"))
	assert.Empty(t, pathParamNames("/info"))
	assert.Equal(t, []string{"a"}, pathParamNames("/x/{a}/{broken"))
}

func TestOrderPathParams(t *testing.T) {
	op := ir.IROperation{
		Path: "/schemas/{kind}/records/{id}",
		Params: []ir.IRParam{
			{Name: "id", In: ir.IRParamInPath, Required: true},
			{Name: "q", In: ir.IRParamInQuery},
			{Name: "kind", In: ir.IRParamInPath, Required: true},
		},
	}
	ordered := orderPathParams(op)
	assert.Len(t, ordered, 2)
	assert.Equal(t, "kind", ordered[0].Name)
	assert.Equal(t, "id", ordered[1].Name)
}

func TestPathTemplate(t *testing.T) {
	tests := []struct {
		path     string
		vars     map[string]string
		expected string
	}{
		{"/records/{record-id}", map[string]string{"record-id": "record_id"}, "/records/{record_id}"},
		{"/info", nil, "/info"},
		{`/odd/"quoted"`, nil, `/odd/\"quoted\"`},
		{"/broken/{", nil, "/broken/{{"},
		{"/closing}", nil, "/closing}}"},
	}
	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			assert.Equal(t, test.expected, pathTemplate(test.path, test.vars))
		})
	}
}

func TestFstringText(t *testing.T) {
	assert.Equal(t, "/api/storage/v2", fstringText("/api/storage/v2"))
	assert.Equal(t, `/a/{{x}}/\"q\"/\\`, fstringText(`/a/{x}/"q"/\`))
}

func TestDocstring(t *testing.T) {
	m := Method{
		HTTPMethod: "get",
		Path:       "/widgets/{id}",
		Summary:    "Get widget",
		Doc:        `Returns the widget. Quotes """ are escaped.`,
		Args:       []Arg{{Name: "id", Type: "str", Description: "Widget\n id"}},
	}
	expected := "Get widget\n\n" +
		`Returns the widget. Quotes \"\"\" are escaped.` + "\n\n" +
		"Args:\n    id (str): Widget id\n\n" +
		"GET /widgets/{id}"
	assert.Equal(t, expected, docstring(m))

	// a description repeating the summary is not duplicated
	assert.Equal(t, "Ping\n\nGET /ping", docstring(Method{HTTPMethod: "get", Path: "/ping", Summary: "Ping", Doc: "Ping"}))
}

func TestPyLiteral(t *testing.T) {
	v := map[string]any{
		"b": []any{1.0, true, 2.5},
		"a": nil,
		"c": map[string]any{},
		"d": "it's \"x\"",
	}
	expected := "{\n" +
		"    \"a\": None,\n" +
		"    \"b\": [\n" +
		"        1,\n" +
		"        True,\n" +
		"        2.5,\n" +
		"    ],\n" +
		"    \"c\": {},\n" +
		"    \"d\": \"it's \\\"x\\\"\",\n" +
		"}"
	assert.Equal(t, expected, pyLiteral(v, "    "))
}

func TestRequestCall(t *testing.T) {
	assert.Equal(t, "requests.get(", requestCall("GET"))
	assert.Equal(t, "requests.patch(", requestCall("patch"))
	assert.Equal(t, `requests.request("TRACE",`, requestCall("trace"))
}

func TestClassBase(t *testing.T) {
	assert.Equal(t, "Search", ClassBase("search", ""))
	assert.Equal(t, "SearchV2", ClassBase("search", "v2"))
	assert.Equal(t, "FileDms", ClassBase("file_dms", ""))
}
