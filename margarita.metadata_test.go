package margarita

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetadata(t *testing.T) {
	t.Run("key order follows the document", func(t *testing.T) {
		meta, err := parseMetadata("zeta: 1\nalpha: 2\nmid: 3\n")
		require.NoError(t, err)
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, meta.Keys())
		assert.Equal(t, 3, meta.Len())
	})

	t.Run("scalar and list values", func(t *testing.T) {
		meta, err := parseMetadata("title: greeting\ntags: [a, b, c]\ncount: 7\n")
		require.NoError(t, err)

		assert.Equal(t, "greeting", meta.GetString("title"))
		assert.Equal(t, []string{"a", "b", "c"}, meta.GetList("tags"))
		assert.Equal(t, "7", meta.GetString("count"))

		// Scalars promote to one-element lists on demand.
		assert.Equal(t, []string{"greeting"}, meta.GetList("title"))
	})

	t.Run("block-style list", func(t *testing.T) {
		meta, err := parseMetadata("tags:\n  - a\n  - b\n")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, meta.GetList("tags"))
	})

	t.Run("empty body", func(t *testing.T) {
		meta, err := parseMetadata("")
		require.NoError(t, err)
		assert.Equal(t, 0, meta.Len())
	})

	t.Run("whitespace-only body", func(t *testing.T) {
		meta, err := parseMetadata("  \n\n")
		require.NoError(t, err)
		assert.Equal(t, 0, meta.Len())
	})

	t.Run("nested mapping value rejected", func(t *testing.T) {
		_, err := parseMetadata("outer:\n  inner: x\n")
		require.Error(t, err)
		assert.True(t, IsMetadataError(err))
	})

	t.Run("nested list value rejected", func(t *testing.T) {
		_, err := parseMetadata("tags:\n  - [a, b]\n")
		require.Error(t, err)
		assert.True(t, IsMetadataError(err))
	})

	t.Run("non-mapping body rejected", func(t *testing.T) {
		_, err := parseMetadata("- a\n- b\n")
		require.Error(t, err)
		assert.True(t, IsMetadataError(err))
	})

	t.Run("malformed yaml rejected", func(t *testing.T) {
		_, err := parseMetadata("key: [unclosed\n")
		require.Error(t, err)
		assert.True(t, IsMetadataError(err))
	})

	t.Run("absent key accessors", func(t *testing.T) {
		meta, err := parseMetadata("a: 1\n")
		require.NoError(t, err)

		_, ok := meta.Get("missing")
		assert.False(t, ok)
		assert.Equal(t, "", meta.GetString("missing"))
		assert.Nil(t, meta.GetList("missing"))
		assert.False(t, meta.Has("missing"))
	})
}
