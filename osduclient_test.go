package osduclient

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateSpecMissingFile(t *testing.T) {
	if _, err := os.Stat("/no/such/file.yaml"); err == nil {
		t.Fatal("expected no file")
	}
	if err := ValidateSpec("/no/such/file.yaml"); err == nil {
		t.Fatal("expected error")
	}
}

func TestGenerateClientSwagger(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "legal.json")
	doc := `{
  "swagger": "2.0",
  "info": {"title": "Legal", "version": "1.0"},
  "basePath": "/api/legal/v1",
  "paths": {
    "/legaltags/{name}": {
      "get": {
        "summary": "Gets a LegalTag",
        "parameters": [{"name": "name", "in": "path", "required": true, "type": "string"}],
        "responses": {"200": {"description": "ok", "schema": {"type": "object"}}}
      }
    }
  }
}`
	if err := os.WriteFile(spec, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "osdu_client")
	if err := GenerateClient(ClientOptions{Spec: spec, Name: "legal", OutDir: out}); err != nil {
		t.Fatalf("GenerateClient: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "legal", "client.py"))
	if err != nil {
		t.Fatal(err)
	}
	client := string(data)
	for _, want := range []string{
		"class LegalClient(BaseOSDUAPIClient):",
		"def get_legaltag(",
		`url=f"{self.base_url}/api/legal/v1/legaltags/{name}",`,
	} {
		if !strings.Contains(client, want) {
			t.Errorf("client.py missing %q", want)
		}
	}
}
