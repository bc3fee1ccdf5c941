package diffengine_test

import (
	"testing"

	"github.com/agentflare-ai/go-jsoncons/internal/diffengine"
	"github.com/agentflare-ai/go-jsoncons/internal/patchengine"
	"github.com/agentflare-ai/go-jsoncons/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustVal(t *testing.T, v any) value.Value {
	t.Helper()
	out, err := value.FromAny(v)
	require.NoError(t, err)
	return out
}

func applyAndGet(t *testing.T, source any, patch patchengine.Patch) any {
	t.Helper()
	v := mustVal(t, source)
	b := value.NewBuilderFromValue(v)
	err := patchengine.Apply(b, patch)
	require.NoError(t, err)
	doc, err := b.ToDocument()
	require.NoError(t, err)
	return doc
}

func TestDiffNoOpWhenEqual(t *testing.T) {
	a := mustVal(t, map[string]any{"x": 1.0})
	p, err := diffengine.Diff(a, a)
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestDiffObjectAddRemoveReplace(t *testing.T) {
	source := map[string]any{"a": 1.0, "b": 2.0}
	target := map[string]any{"a": 3.0, "c": 4.0}
	p, err := diffengine.Diff(mustVal(t, source), mustVal(t, target))
	require.NoError(t, err)

	got := applyAndGet(t, source, p)
	assert.Equal(t, target, got)
}

func TestDiffArrayPrefixStrategy(t *testing.T) {
	source := map[string]any{"arr": []any{"a", "b", "c"}}
	target := map[string]any{"arr": []any{"a", "x", "y"}}
	p, err := diffengine.Diff(mustVal(t, source), mustVal(t, target))
	require.NoError(t, err)
	got := applyAndGet(t, source, p)
	assert.Equal(t, target, got)
}

func TestDiffArrayCompactStrategy(t *testing.T) {
	source := map[string]any{"arr": []any{"a", "b", "c", "d"}}
	target := map[string]any{"arr": []any{"b", "c", "d", "e"}}
	p, err := diffengine.DiffWithOptions(mustVal(t, source), mustVal(t, target), diffengine.Options{Compact: true})
	require.NoError(t, err)
	got := applyAndGet(t, source, p)
	assert.Equal(t, target, got)
}

func TestDiffRootTypeChangeIsReplace(t *testing.T) {
	source := map[string]any{"a": 1.0}
	target := []any{1.0, 2.0}
	p, err := diffengine.Diff(mustVal(t, source), mustVal(t, target))
	require.NoError(t, err)
	require.Len(t, p, 1)
	assert.Equal(t, patchengine.Replace, p[0].Op)
	assert.Equal(t, "", p[0].Path)
}

func TestDiffNestedObjectRecursion(t *testing.T) {
	source := map[string]any{"a": map[string]any{"x": 1.0, "y": 2.0}}
	target := map[string]any{"a": map[string]any{"x": 1.0, "y": 3.0, "z": 4.0}}
	p, err := diffengine.Diff(mustVal(t, source), mustVal(t, target))
	require.NoError(t, err)
	got := applyAndGet(t, source, p)
	assert.Equal(t, target, got)
}

func TestDiffCompactStrategyProducesShorterPatchOnRotation(t *testing.T) {
	n := 20
	src := make([]any, n)
	tgt := make([]any, n)
	for i := 0; i < n; i++ {
		src[i] = float64(i)
		tgt[i] = float64((i + 1) % n)
	}
	prefixPatch, err := diffengine.Diff(mustVal(t, map[string]any{"arr": src}), mustVal(t, map[string]any{"arr": tgt}))
	require.NoError(t, err)
	compactPatch, err := diffengine.DiffWithOptions(mustVal(t, map[string]any{"arr": src}), mustVal(t, map[string]any{"arr": tgt}), diffengine.Options{Compact: true})
	require.NoError(t, err)

	assert.Less(t, len(compactPatch), len(prefixPatch))

	got := applyAndGet(t, map[string]any{"arr": src}, compactPatch)
	assert.Equal(t, map[string]any{"arr": tgt}, got)
}
