// Package document holds the ordered JSON value tree used by the corpus
// generator, plus a deterministic encoder and an order-preserving decoder.
//
// A document is an `any` holding one of:
//
//	nil, bool, int, int64, float64, json.Number, string, []any, *Object
//
// Objects keep their keys in insertion order so that generated corpora
// serialize byte-identically for the same seed.
package document

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object with unique keys kept in insertion order.
type Object struct {
	members []Member
	index   map[string]int
}

func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Set stores value under key. An existing key keeps its position.
func (o *Object) Set(key string, value any) *Object {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = value
		return o
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: value})
	return o
}

func (o *Object) Get(key string) (any, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

func (o *Object) Len() int {
	return len(o.members)
}

func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}
