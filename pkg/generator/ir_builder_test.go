package generator

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micmurawski/osdu-client-sub000/pkg/config"
	"github.com/micmurawski/osdu-client-sub000/pkg/ir"
	"github.com/micmurawski/osdu-client-sub000/pkg/openapi"
)

const storageDoc = `openapi: 3.0.1
info:
  title: Storage service
  version: "2.0"
servers:
  - url: https://osdu.example.com/api/storage/v2/
paths:
  /records/{id}:
    parameters:
      - name: id
        in: path
        required: true
        schema:
          type: string
    get:
      tags: [records]
      summary: Get the latest record version
      parameters:
        - name: attribute
          in: query
          schema:
            type: array
            items:
              type: string
        - name: session
          in: cookie
          schema:
            type: string
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Record'
    delete:
      tags: [records, internal]
      summary: Purge a record
      responses:
        "204":
          description: purged
  /records:
    put:
      tags: [records]
      summary: Create or update records
      parameters:
        - name: frame-of-reference
          in: header
          schema:
            type: string
      requestBody:
        required: true
        content:
          text/plain:
            schema:
              type: string
          application/json:
            schema:
              $ref: '#/components/schemas/Record'
      responses:
        "201":
          description: created
          content:
            application/json:
              schema:
                type: object
  /query/kinds:
    get:
      summary: Get all kinds
      responses:
        "202":
          description: accepted
          content:
            application/vnd.osdu+json:
              schema:
                type: array
                items:
                  type: string
  /admin:
    post:
      tags: [internal]
      summary: Administrative task
      responses:
        default:
          description: any
components:
  schemas:
    Record:
      type: object
      properties:
        kind:
          type: string
`

func loadStorageDoc(t *testing.T) *openapi.Document {
	t.Helper()
	doc, err := openapi.LoadDocumentFromData(&openapi3.Loader{}, []byte(storageDoc), nil)
	require.NoError(t, err)
	return doc
}

func operationKeys(svc ir.IRService) []string {
	keys := []string{}
	for _, op := range svc.Operations {
		keys = append(keys, op.Method+" "+op.Path)
	}
	return keys
}

func TestBuildIROrderAndFilters(t *testing.T) {
	doc := loadStorageDoc(t)

	all, err := buildIR(doc, config.Service{Name: "storage"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"POST /admin",
		"GET /query/kinds",
		"PUT /records",
		"GET /records/{id}",
		"DELETE /records/{id}",
	}, operationKeys(all))
	assert.Equal(t, "Storage service", all.Title)
	assert.Equal(t, "/api/storage/v2", all.BasePath)

	filtered, err := buildIR(doc, config.Service{Name: "storage", ExcludeTags: []string{"^internal$"}, BasePath: "/custom"})
	require.NoError(t, err)
	assert.Equal(t, []string{"GET /query/kinds", "PUT /records", "GET /records/{id}"}, operationKeys(filtered))
	assert.Equal(t, "/custom", filtered.BasePath)
	assert.Equal(t, []string{"misc"}, filtered.Operations[0].OriginalTags)

	_, err = buildIR(doc, config.Service{Name: "storage", IncludeTags: []string{"("}})
	assert.Error(t, err)
}

func TestBuildIROperationDetails(t *testing.T) {
	doc := loadStorageDoc(t)
	svc, err := buildIR(doc, config.Service{Name: "storage"})
	require.NoError(t, err)
	require.Len(t, svc.Operations, 5)
	r := openapi.NewResolver(doc.Raw)

	kinds := svc.Operations[1]
	assert.True(t, kinds.Response.HasContent)
	typ, items, err := r.TypeOf(kinds.Response.Schema)
	require.NoError(t, err)
	assert.Equal(t, "array", typ)
	assert.Equal(t, "string", items)

	put := svc.Operations[2]
	require.NotNil(t, put.RequestBody)
	assert.Equal(t, "application/json", put.RequestBody.ContentType)
	assert.True(t, put.RequestBody.Required)
	assert.Equal(t, "#/components/schemas/Record", put.RequestBody.Schema["$ref"])
	require.Len(t, put.Params, 1)
	assert.Equal(t, ir.IRParamInHeader, put.Params[0].In)
	assert.True(t, put.Response.HasContent)

	get := svc.Operations[3]
	require.Len(t, get.Params, 2, "cookie parameters are dropped")
	assert.Equal(t, "id", get.Params[0].Name)
	assert.Equal(t, ir.IRParamInPath, get.Params[0].In)
	assert.True(t, get.Params[0].Required)
	assert.Equal(t, "attribute", get.Params[1].Name)
	typ, items, err = r.TypeOf(get.Params[1].Schema)
	require.NoError(t, err)
	assert.Equal(t, "array", typ)
	assert.Equal(t, "string", items)
	assert.Equal(t, "#/components/schemas/Record", get.Response.Schema["$ref"])

	del := svc.Operations[4]
	assert.False(t, del.Response.HasContent)
	assert.Nil(t, del.RequestBody)

	admin := svc.Operations[0]
	assert.False(t, admin.Response.HasContent)
}

func TestPreferredMediaType(t *testing.T) {
	tests := []struct {
		name     string
		types    []string
		expected string
	}{
		{"empty", nil, ""},
		{"json first", []string{"text/plain", "application/json", "application/x-www-form-urlencoded"}, "application/json"},
		{"json suffix", []string{"text/plain", "application/merge-patch+json"}, "application/merge-patch+json"},
		{"form", []string{"text/plain", "multipart/form-data", "application/x-www-form-urlencoded"}, "application/x-www-form-urlencoded"},
		{"lexical fallback", []string{"text/plain", "application/octet-stream"}, "application/octet-stream"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			content := openapi3.Content{}
			for _, ct := range test.types {
				content[ct] = openapi3.NewMediaType()
			}
			assert.Equal(t, test.expected, preferredMediaType(content))
		})
	}
}

func TestServerPath(t *testing.T) {
	doc := &openapi3.T{}
	assert.Equal(t, "", serverPath(doc))

	doc.Servers = openapi3.Servers{{URL: "/api/search/v2"}}
	assert.Equal(t, "/api/search/v2", serverPath(doc))

	doc.Servers = openapi3.Servers{{URL: "https://host.example.com"}}
	assert.Equal(t, "", serverPath(doc))
}

func TestBuildIRSwaggerBasePathWithoutHost(t *testing.T) {
	data := `{
  "swagger": "2.0",
  "info": {"title": "Legal", "version": "1.0"},
  "basePath": "/api/legal/v1",
  "paths": {
    "/legaltags": {
      "get": {"summary": "Lists legal tags", "responses": {"200": {"description": "ok"}}}
    }
  }
}`
	doc, err := openapi.LoadDocumentFromData(&openapi3.Loader{}, []byte(data), nil)
	require.NoError(t, err)

	svc, err := buildIR(doc, config.Service{Name: "legal"})
	require.NoError(t, err)
	assert.Equal(t, "/api/legal/v1", svc.BasePath)
	assert.Equal(t, []string{"GET /legaltags"}, operationKeys(svc))
}
