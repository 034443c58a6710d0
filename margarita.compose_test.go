package margarita

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryEngine(t *testing.T, snippets map[string]string) (*Engine, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	for path, source := range snippets {
		store.Put(path, source)
	}
	engine := MustNew(WithStore(store))
	return engine, store
}

func TestComposer_Compose(t *testing.T) {
	engine, _ := newMemoryEngine(t, map[string]string{
		"persona.marg": "You are ${persona}.",
		"task.marg":    "Task: ${task}",
		"footer.marg":  "Be concise.",
	})
	composer := NewComposer(engine)

	out, err := composer.Compose(context.Background(),
		[]string{"persona.marg", "task.marg", "footer.marg"},
		map[string]any{"persona": "a helper", "task": "summarize"})
	require.NoError(t, err)
	assert.Equal(t, "You are a helper.\n\nTask: summarize\n\nBe concise.", out)
}

func TestComposer_SingleSnippet(t *testing.T) {
	engine, _ := newMemoryEngine(t, map[string]string{"one.marg": "solo"})
	composer := NewComposer(engine)

	out, err := composer.Compose(context.Background(), []string{"one.marg"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "solo", out)
}

func TestComposer_EmptySnippetList(t *testing.T) {
	engine, _ := newMemoryEngine(t, nil)
	composer := NewComposer(engine)

	out, err := composer.Compose(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestComposer_AllOrNothing(t *testing.T) {
	engine, _ := newMemoryEngine(t, map[string]string{
		"good.marg": "ok",
		"bad.marg":  "${missing}",
	})
	composer := NewComposer(engine)

	_, err := composer.Compose(context.Background(),
		[]string{"good.marg", "bad.marg"}, nil)
	require.Error(t, err)
	assert.True(t, IsContextError(err))
}

func TestComposer_MissingSnippet(t *testing.T) {
	engine, _ := newMemoryEngine(t, nil)
	composer := NewComposer(engine)

	_, err := composer.Compose(context.Background(), []string{"nope.marg"}, nil)
	require.Error(t, err)
	assert.True(t, IsIncludeNotFoundError(err))
}

func TestComposer_ParseCache(t *testing.T) {
	engine, store := newMemoryEngine(t, map[string]string{"s.marg": "v1"})
	composer := NewComposer(engine)
	ctx := context.Background()

	out, err := composer.Compose(ctx, []string{"s.marg"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "v1", out)

	// The cached parse survives a store update until the cache is cleared.
	store.Put("s.marg", "v2")
	out, err = composer.Compose(ctx, []string{"s.marg"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "v1", out)

	composer.ClearCache()
	out, err = composer.Compose(ctx, []string{"s.marg"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "v2", out)
}

func TestComposer_SnippetsShareOneContext(t *testing.T) {
	engine, _ := newMemoryEngine(t, map[string]string{
		"a.marg": "A:${v}",
		"b.marg": "B:${v}",
	})
	composer := NewComposer(engine)

	out, err := composer.Compose(context.Background(),
		[]string{"a.marg", "b.marg"}, map[string]any{"v": "x"})
	require.NoError(t, err)
	assert.Equal(t, "A:x\n\nB:x", out)
}

func TestComposer_IncludesAcrossSnippets(t *testing.T) {
	engine, _ := newMemoryEngine(t, map[string]string{
		"main.marg":   "top\n[[ shared.marg ]]\n",
		"shared.marg": "shared bit\n",
	})
	composer := NewComposer(engine)

	out, err := composer.Compose(context.Background(), []string{"main.marg"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "top\nshared bit\n", out)
}
