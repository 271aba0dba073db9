package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsonbench/internal/document"
)

func countNested(t *testing.T, v any) int {
	t.Helper()
	obj, ok := v.(*document.Object)
	require.True(t, ok)

	if _, leaf := obj.Get("value"); leaf {
		assert.Equal(t, 1, obj.Len())
		return 1
	}

	n := 1
	settings, _ := obj.Get("settings")
	child, _ := settings.(*document.Object).Get("nested")
	n += countNested(t, child)

	items, _ := obj.Get("items")
	for _, item := range items.([]any) {
		n += countNested(t, item)
	}
	return n
}

func TestNestedConfigThreshold(t *testing.T) {
	src := NewSource(1)

	leaf := NestedConfig(src, 0).(*document.Object)
	assert.Equal(t, []string{"value"}, leaf.Keys())

	negative := NestedConfig(src, -3).(*document.Object)
	assert.Equal(t, []string{"value"}, negative.Keys())

	for depth := 1; depth <= 2; depth++ {
		node := NestedConfig(src, depth).(*document.Object)
		items, _ := node.Get("items")
		assert.Empty(t, items, "depth %d has no items", depth)
	}

	node := NestedConfig(src, 3).(*document.Object)
	items, _ := node.Get("items")
	assert.Len(t, items, 2)
}

func TestNestedConfigNodeCount(t *testing.T) {
	src := NewSource(7)
	for depth := 0; depth <= 12; depth++ {
		doc := NestedConfig(src, depth)
		assert.Equal(t, NestedNodes(depth), countNested(t, doc), "depth %d", depth)
	}
	assert.Equal(t, 1, NestedNodes(0))
	assert.Equal(t, 2, NestedNodes(1))
	assert.Equal(t, 3, NestedNodes(2))
	assert.Equal(t, 1+3+2*2, NestedNodes(3))
}

func TestSameSeedSameDocuments(t *testing.T) {
	gen := func(seed int64) []byte {
		src := NewSource(seed)
		doc := []any{
			Envelope(src, 5),
			NumberSeries(src, 3),
			StringHeavy(src, 2),
			NestedConfig(src, 4),
			Feed(src, 2),
			UnicodeHeavy(src, 3, 10),
		}
		b, err := document.Marshal(doc)
		require.NoError(t, err)
		return b
	}

	assert.Equal(t, gen(42), gen(42))
	assert.NotEqual(t, gen(42), gen(43))
}

func TestFlatRecordShape(t *testing.T) {
	rec := FlatRecord(NewSource(3)).(*document.Object)
	assert.Equal(t,
		[]string{"id", "name", "email", "active", "score", "tags", "metadata"},
		rec.Keys())

	tags, _ := rec.Get("tags")
	assert.Len(t, tags, 3)

	id, _ := rec.Get("id")
	assert.GreaterOrEqual(t, id.(int64), int64(1))
	assert.LessOrEqual(t, id.(int64), int64(1_000_000))

	name, _ := rec.Get("name")
	assert.Len(t, name, 20)
}

func TestEnvelopeShape(t *testing.T) {
	env := Envelope(NewSource(3), 4).(*document.Object)
	data, ok := env.Get("data")
	require.True(t, ok)
	assert.Len(t, data, 4)

	meta, _ := env.Get("meta")
	reqID, _ := meta.(*document.Object).Get("request_id")
	assert.Len(t, reqID, 36)
}

func TestNumberPointTimestamps(t *testing.T) {
	series := NumberSeries(NewSource(9), 3)
	for i, p := range series {
		ts, _ := p.(*document.Object).Get("timestamp")
		assert.Equal(t, int64(seriesEpoch+i), ts)
		values, _ := p.(*document.Object).Get("values")
		assert.Len(t, values, 5)
	}
}

func TestEdgeShapes(t *testing.T) {
	b, err := document.Marshal(DeepArrays(2))
	require.NoError(t, err)
	assert.Equal(t, `[[[[[[[1,2,3]]]]]],[[[[[[1,2,3]]]]]]]`, string(b))

	keys := ManyKeys(1000).(*document.Object)
	assert.Equal(t, 1000, keys.Len())
	assert.Equal(t, "key_999", keys.Keys()[999])

	assert.Len(t, EscapeHeavy(100), 300)

	big := LargeIntegers(2)
	b, err = document.Marshal(big)
	require.NoError(t, err)
	assert.Equal(t, `[{"big":9007199254740992,"small":0},{"big":9007199254740993,"small":1}]`, string(b))
}

func TestRandomUnicodeString(t *testing.T) {
	s := NewSource(5).RandomUnicodeString(100)
	assert.Len(t, []rune(s), 100)
}
