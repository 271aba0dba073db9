package templates

import (
	"jsonbench/internal/document"
)

// NestedConfig builds a configuration-style tree of the given depth.
//
// Every level holds one child at depth-1 under settings.nested. Only while
// depth > 2 does it also hold two children at depth-2 under items; at depth
// 1 and 2 items is an empty list. Keep that threshold: it is what bounds the
// size of the deepest corpus files.
func NestedConfig(src *Source, depth int) any {
	if depth <= 0 {
		return document.NewObject().Set("value", src.RandomInt(1, 100))
	}

	node := document.NewObject().
		Set("name", src.RandomString(10)).
		Set("enabled", src.RandomBool())

	settings := document.NewObject().
		Set("option1", src.RandomInt(1, 100)).
		Set("option2", src.RandomString(15)).
		Set("nested", NestedConfig(src, depth-1))
	node.Set("settings", settings)

	items := []any{}
	if depth > 2 {
		items = append(items, NestedConfig(src, depth-2), NestedConfig(src, depth-2))
	}
	node.Set("items", items)
	return node
}

// NestedNodes returns how many NestedConfig nodes (leaves included) a tree
// of the given depth contains, without generating it.
func NestedNodes(depth int) int {
	if depth <= 0 {
		return 1
	}
	n := 1 + NestedNodes(depth-1)
	if depth > 2 {
		n += 2 * NestedNodes(depth-2)
	}
	return n
}
