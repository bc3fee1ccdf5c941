package jsonpath_test

import (
	"testing"

	"github.com/agentflare-ai/go-jsoncons/internal/jsonpath"
	"github.com/agentflare-ai/go-jsoncons/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRoot(t *testing.T, v any) value.Value {
	t.Helper()
	out, err := value.FromAny(v)
	require.NoError(t, err)
	return out
}

func selectStrings(t *testing.T, expr string, root value.Value, opts jsonpath.Options) []string {
	t.Helper()
	chain, err := jsonpath.Parse(expr)
	require.NoError(t, err)
	vals, err := jsonpath.Select(chain, root, opts)
	require.NoError(t, err)
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.AsString()
	}
	return out
}

var bookstore = map[string]any{
	"store": map[string]any{
		"book": []any{
			map[string]any{"category": "fiction", "title": "Moby Dick", "price": 8.99},
			map[string]any{"category": "fiction", "title": "The Hobbit", "price": 22.99},
			map[string]any{"category": "reference", "title": "Grammar", "price": 5.0},
		},
		"bicycle": map[string]any{"color": "red", "price": 19.95},
	},
}

func TestSelectDotName(t *testing.T) {
	root := mustRoot(t, bookstore)
	chain, err := jsonpath.Parse("$.store.bicycle.color")
	require.NoError(t, err)
	vals, err := jsonpath.Select(chain, root, 0)
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Equal(t, "red", vals[0].AsString())
}

func TestSelectWildcardOverArray(t *testing.T) {
	root := mustRoot(t, bookstore)
	titles := selectStrings(t, "$.store.book[*].title", root, 0)
	assert.Equal(t, []string{"Moby Dick", "The Hobbit", "Grammar"}, titles)
}

func TestSelectIndex(t *testing.T) {
	root := mustRoot(t, bookstore)
	titles := selectStrings(t, "$.store.book[1].title", root, 0)
	assert.Equal(t, []string{"The Hobbit"}, titles)
}

func TestSelectNegativeIndex(t *testing.T) {
	root := mustRoot(t, bookstore)
	titles := selectStrings(t, "$.store.book[-1].title", root, 0)
	assert.Equal(t, []string{"Grammar"}, titles)
}

func TestSelectUnion(t *testing.T) {
	root := mustRoot(t, bookstore)
	titles := selectStrings(t, "$.store.book[0,2].title", root, 0)
	assert.Equal(t, []string{"Moby Dick", "Grammar"}, titles)
}

func TestSelectSlice(t *testing.T) {
	root := mustRoot(t, bookstore)
	titles := selectStrings(t, "$.store.book[0:2].title", root, 0)
	assert.Equal(t, []string{"Moby Dick", "The Hobbit"}, titles)
}

func TestSelectSliceNegativeStep(t *testing.T) {
	root := mustRoot(t, bookstore)
	titles := selectStrings(t, "$.store.book[::-1].title", root, 0)
	assert.Equal(t, []string{"Grammar", "The Hobbit", "Moby Dick"}, titles)
}

func TestSelectRecursiveDescent(t *testing.T) {
	root := mustRoot(t, bookstore)
	titles := selectStrings(t, "$..title", root, 0)
	assert.ElementsMatch(t, []string{"Moby Dick", "The Hobbit", "Grammar"}, titles)
}

func TestSelectRecursiveDescentIncludesSelf(t *testing.T) {
	root := mustRoot(t, map[string]any{"a": map[string]any{"a": 1.0}})
	chain, err := jsonpath.Parse("$..a")
	require.NoError(t, err)
	vals, err := jsonpath.Select(chain, root, 0)
	require.NoError(t, err)
	assert.Len(t, vals, 2)
}

func TestSelectPathsNormalizedForm(t *testing.T) {
	root := mustRoot(t, bookstore)
	chain, err := jsonpath.Parse("$.store.book[0].title")
	require.NoError(t, err)
	paths, err := jsonpath.SelectPaths(chain, root, 0)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, `$['store']['book'][0]['title']`, paths[0].String())
}

func TestTrySelectSingleWalksNormalizedPath(t *testing.T) {
	root := mustRoot(t, bookstore)
	chain, err := jsonpath.Parse("$.store.bicycle.color")
	require.NoError(t, err)
	paths, err := jsonpath.SelectPaths(chain, root, 0)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	v, ok := jsonpath.TrySelectSingle(root, paths[0])
	require.True(t, ok)
	assert.Equal(t, "red", v.AsString())
}

func TestTrySelectSingleFailsOnMissingName(t *testing.T) {
	root := mustRoot(t, bookstore)
	path := jsonpath.NormalizedPath{
		{Kind: jsonpath.NameComponent, Name: "store"},
		{Kind: jsonpath.NameComponent, Name: "missing"},
	}
	_, ok := jsonpath.TrySelectSingle(root, path)
	assert.False(t, ok)
}

func TestTrySelectSingleFailsOnWrongKind(t *testing.T) {
	root := mustRoot(t, bookstore)
	// "store" is an object, not an array: an IndexComponent step must fail.
	path := jsonpath.NormalizedPath{
		{Kind: jsonpath.NameComponent, Name: "store"},
		{Kind: jsonpath.IndexComponent, Index: 0},
	}
	_, ok := jsonpath.TrySelectSingle(root, path)
	assert.False(t, ok)
}

func TestTrySelectSingleFailsOnOutOfRangeIndex(t *testing.T) {
	root := mustRoot(t, bookstore)
	path := jsonpath.NormalizedPath{
		{Kind: jsonpath.NameComponent, Name: "store"},
		{Kind: jsonpath.NameComponent, Name: "book"},
		{Kind: jsonpath.IndexComponent, Index: 99},
	}
	_, ok := jsonpath.TrySelectSingle(root, path)
	assert.False(t, ok)
}

func TestTrySelectSingleEmptyPathReturnsRoot(t *testing.T) {
	root := mustRoot(t, bookstore)
	v, ok := jsonpath.TrySelectSingle(root, nil)
	require.True(t, ok)
	assert.Equal(t, value.Object, v.Kind())
}

func TestSelectUnionRemovesDupsWithOptNoDups(t *testing.T) {
	root := mustRoot(t, map[string]any{"arr": []any{"a", "b", "c"}})
	chain, err := jsonpath.Parse("$.arr[0,0,1]")
	require.NoError(t, err)

	withoutDedup, err := jsonpath.Select(chain, root, 0)
	require.NoError(t, err)
	assert.Len(t, withoutDedup, 3)

	deduped, err := jsonpath.Select(chain, root, jsonpath.OptNoDups)
	require.NoError(t, err)
	assert.Len(t, deduped, 2)
}

func TestSelectOptSortOrdersByNormalizedPath(t *testing.T) {
	root := mustRoot(t, map[string]any{"arr": []any{"a", "b", "c"}})
	chain, err := jsonpath.Parse("$.arr[2,0,1]")
	require.NoError(t, err)

	nodes, err := jsonpath.SelectNodes(chain, root, jsonpath.OptSort)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, "a", nodes[0].Value.AsString())
	assert.Equal(t, "b", nodes[1].Value.AsString())
	assert.Equal(t, "c", nodes[2].Value.AsString())
}

func TestSelectNonExistentPathReturnsEmpty(t *testing.T) {
	root := mustRoot(t, bookstore)
	chain, err := jsonpath.Parse("$.store.missing.nested")
	require.NoError(t, err)
	vals, err := jsonpath.Select(chain, root, 0)
	require.NoError(t, err)
	assert.Empty(t, vals)
}

func TestSelectIdentifierOnNonObjectIsSkipped(t *testing.T) {
	root := mustRoot(t, map[string]any{"arr": []any{1.0, 2.0}})
	chain, err := jsonpath.Parse("$.arr.name")
	require.NoError(t, err)
	vals, err := jsonpath.Select(chain, root, 0)
	require.NoError(t, err)
	assert.Empty(t, vals)
}
