package utils

import (
	"testing"
)

func TestRemoveAccents(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"hello", "hello"},
		{"café", "cafe"},
		{"São Paulo", "Sao Paulo"},
		{"résumé", "resume"},
		{"naïve", "naive"},
		{"Bohrlöcher", "Bohrlocher"},
	}

	for _, test := range tests {
		result := RemoveAccents(test.input)
		if result != test.expected {
			t.Errorf("RemoveAccents(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"search", "Search"},
		{"file-dms", "FileDms"},
		{"legal_tags", "LegalTags"},
		{"schema service", "SchemaService"},
		{"entitlementsV2", "EntitlementsV2"},
		{"HELLO_WORLD", "HelloWorld"},
	}

	for _, test := range tests {
		result := ToPascalCase(test.input)
		if result != test.expected {
			t.Errorf("ToPascalCase(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"id", "id"},
		{"recordId", "record_id"},
		{"record-id", "record_id"},
		{"data-partition-id", "data_partition_id"},
		{"LegalTags", "legal_tags"},
		{"query_with_cursor", "query_with_cursor"},
		{"kind:version", "kind_version"},
	}

	for _, test := range tests {
		result := ToSnakeCase(test.input)
		if result != test.expected {
			t.Errorf("ToSnakeCase(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestUnderscore(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"Get widget", "get_widget"},
		{"  Query  records\tby kind ", "query_records_by_kind"},
		{"Create or update (upsert)", "create_or_update_(upsert)"},
	}

	for _, test := range tests {
		result := Underscore(test.input)
		if result != test.expected {
			t.Errorf("Underscore(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestCollapseUnderscores(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"___", ""},
		{"_get__record_", "get_record"},
		{"list_kinds", "list_kinds"},
	}

	for _, test := range tests {
		result := CollapseUnderscores(test.input)
		if result != test.expected {
			t.Errorf("CollapseUnderscores(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}
