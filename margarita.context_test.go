package margarita

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext_Get(t *testing.T) {
	ctx := NewContext(map[string]any{
		"name": "Ada",
		"user": map[string]any{
			"profile": map[string]any{"email": "ada@example.com"},
			"roles":   []string{"admin", "editor"},
		},
		"items": []any{"first", map[string]any{"id": 7}},
		"labels": map[string]string{
			"env": "prod",
		},
		"odd.key": nil,
	})

	tests := []struct {
		name     string
		path     string
		expected any
		found    bool
	}{
		{name: "top-level key", path: "name", expected: "Ada", found: true},
		{name: "dotted path", path: "user.profile.email", expected: "ada@example.com", found: true},
		{name: "list index", path: "items[0]", expected: "first", found: true},
		{name: "index then key", path: "items[1].id", expected: 7, found: true},
		{name: "string slice index", path: "user.roles[1]", expected: "editor", found: true},
		{name: "quoted bracket key", path: `labels["env"]`, expected: "prod", found: true},
		{name: "single-quoted bracket key", path: "labels['env']", expected: "prod", found: true},
		{name: "missing key", path: "nope", found: false},
		{name: "missing nested key", path: "user.nope", found: false},
		{name: "index out of range", path: "items[9]", found: false},
		{name: "negative index", path: "items[-1]", found: false},
		{name: "index into scalar", path: "name[0]", found: false},
		{name: "empty path", path: "", found: false},
		{name: "unterminated bracket", path: "items[0", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, ok := ctx.Get(tt.path)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, val)
			}
		})
	}
}

func TestContext_Accessors(t *testing.T) {
	ctx := NewContext(map[string]any{
		"n":    42,
		"name": "Ada",
	})

	assert.Equal(t, "Ada", ctx.GetString("name"))
	assert.Equal(t, "42", ctx.GetString("n"))
	assert.Equal(t, "", ctx.GetString("missing"))

	assert.Equal(t, "fallback", ctx.GetDefault("missing", "fallback"))
	assert.Equal(t, 42, ctx.GetDefault("n", 0))

	assert.True(t, ctx.Has("name"))
	assert.False(t, ctx.Has("missing"))

	assert.ElementsMatch(t, []string{"n", "name"}, ctx.Keys())
}

func TestContext_NilData(t *testing.T) {
	ctx := NewContext(nil)
	assert.False(t, ctx.Has("anything"))
	assert.Empty(t, ctx.Keys())
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{name: "nil", value: nil, expected: false},
		{name: "true", value: true, expected: true},
		{name: "false", value: false, expected: false},
		{name: "empty string", value: "", expected: false},
		{name: "non-empty string", value: "x", expected: true},
		{name: "zero int", value: 0, expected: false},
		{name: "negative int", value: -1, expected: true},
		{name: "zero float", value: 0.0, expected: false},
		{name: "empty slice", value: []any{}, expected: false},
		{name: "non-empty slice", value: []any{1}, expected: true},
		{name: "empty map", value: map[string]any{}, expected: false},
		{name: "non-empty map", value: map[string]any{"k": 1}, expected: true},
		{name: "struct value", value: struct{}{}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truthy(tt.value))
		})
	}
}
