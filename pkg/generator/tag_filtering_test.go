package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIncludeOperation(t *testing.T) {
	tests := []struct {
		name         string
		originalTags []string
		includeTags  []string
		excludeTags  []string
		expected     bool
	}{
		{"no filters include all", []string{"records", "internal"}, nil, nil, true},
		{"include matches first tag", []string{"records", "internal"}, []string{"records"}, nil, true},
		{"include matches second tag", []string{"internal", "records"}, []string{"records"}, nil, true},
		{"include matches none", []string{"internal", "admin"}, []string{"records"}, nil, false},
		{"exclude matches first tag", []string{"internal", "records"}, nil, []string{"internal"}, false},
		{"exclude matches second tag", []string{"records", "internal"}, nil, []string{"internal"}, false},
		{"exclude wins over include", []string{"records", "internal"}, []string{"records"}, []string{"internal"}, false},
		{"include matches exclude does not", []string{"records", "public"}, []string{"records"}, []string{"internal"}, true},
		{"regex exclude", []string{"records_v2", "health_api"}, []string{"^records_.*"}, []string{".*_api$"}, false},
		{"regex include", []string{"records_v2", "public"}, []string{"^records_.*"}, nil, true},
		{"untagged operations are misc", []string{"misc"}, []string{"^misc$"}, nil, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			include, exclude, err := compileTagFilters(test.includeTags, test.excludeTags)
			require.NoError(t, err)
			assert.Equal(t, test.expected, shouldIncludeOperation(test.originalTags, include, exclude))
		})
	}
}

func TestCompileTagFiltersInvalid(t *testing.T) {
	_, _, err := compileTagFilters([]string{"["}, nil)
	assert.ErrorContains(t, err, "includeTags")

	_, _, err = compileTagFilters(nil, []string{"("})
	assert.ErrorContains(t, err, "excludeTags")
}
