package query

import (
	"slices"
	"strings"
)

// Tree is the mapping variant of [Value] and the root of every parameter
// tree. Keys are unique and keep insertion order, so serialization is stable.
//
// All keyed operations accept dot-notation paths: "a.b.c" walks nested trees.
// Write-class operations ([Tree.Set], [Tree.Add]) install fresh subtrees over
// missing or non-tree intermediate segments; read-class operations
// ([Tree.Get], [Tree.Has], [Tree.Remove]) never create nodes.
type Tree struct {
	keys []string
	m    map[string]Value
}

func (*Tree) value() {}

// NewTree returns an empty parameter tree.
func NewTree() *Tree {
	return &Tree{m: make(map[string]Value)}
}

// Len returns the number of direct keys in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns the direct keys of the tree in insertion order.
func (t *Tree) Keys() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.keys)
}

func (t *Tree) get(key string) (Value, bool) {
	v, ok := t.m[key]
	return v, ok
}

func (t *Tree) put(key string, v Value) {
	if t.m == nil {
		t.m = make(map[string]Value)
	}
	if _, ok := t.m[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.m[key] = v
}

func (t *Tree) del(key string) {
	if _, ok := t.m[key]; !ok {
		return
	}
	delete(t.m, key)
	t.keys = slices.DeleteFunc(t.keys, func(k string) bool { return k == key })
}

// navigate walks all but the last dot-separated segment of key and returns
// the tree that should contain the final segment. In write mode missing or
// non-tree intermediates are overwritten with fresh empty trees; in read
// mode such a segment fails the navigation.
func (t *Tree) navigate(key string, write bool) (*Tree, string, bool) {
	if t == nil {
		return nil, "", false
	}
	cur := t
	for {
		seg, rest, found := strings.Cut(key, ".")
		if !found {
			return cur, seg, true
		}
		sub, ok := cur.m[seg].(*Tree)
		if !ok {
			if !write {
				return nil, "", false
			}
			sub = NewTree()
			cur.put(seg, sub)
		}
		cur = sub
		key = rest
	}
}

// Get returns the value stored at the dot-notation key.
func (t *Tree) Get(key string) (Value, bool) {
	leaf, name, ok := t.navigate(key, false)
	if !ok {
		return nil, false
	}
	return leaf.get(name)
}

// GetDefault returns the value stored at the dot-notation key,
// or def when the key is absent.
func (t *Tree) GetDefault(key string, def Value) Value {
	if v, ok := t.Get(key); ok {
		return v
	}
	return def
}

// Has reports whether the dot-notation key exists.
func (t *Tree) Has(key string) bool {
	leaf, name, ok := t.navigate(key, false)
	if !ok {
		return false
	}
	_, ok = leaf.get(name)
	return ok
}

// Set stores v at the dot-notation key, overwriting any existing value.
func (t *Tree) Set(key string, v Value) *Tree {
	leaf, name, ok := t.navigate(key, true)
	if !ok {
		return t
	}
	leaf.put(name, v)
	return t
}

// Add stores v at the dot-notation key without discarding an existing value:
// an absent key is set to v, a list is appended, any other value is replaced
// with a two-element list of the old and the new value.
func (t *Tree) Add(key string, v Value) *Tree {
	leaf, name, ok := t.navigate(key, true)
	if !ok {
		return t
	}
	switch old := leaf.m[name].(type) {
	case nil:
		leaf.put(name, v)
	case List:
		leaf.put(name, append(old, v))
	default:
		leaf.put(name, List{old, v})
	}
	return t
}

// Remove deletes the value at the dot-notation key. Missing intermediate
// segments make it a no-op, removal never creates nodes.
func (t *Tree) Remove(key string) *Tree {
	leaf, name, ok := t.navigate(key, false)
	if !ok {
		return t
	}
	leaf.del(name)
	return t
}

// RemoveFunc deletes every leaf whose flattened dot-notation key and value
// match the predicate.
func (t *Tree) RemoveFunc(fn func(key string, v Value) bool) *Tree {
	if t == nil {
		return t
	}
	for _, p := range t.Flatten() {
		if fn(p.Key, p.Value) {
			t.Remove(p.Key)
		}
	}
	return t
}

// Pair is a flattened leaf: the full dot-notation key and its value.
type Pair struct {
	Key   string
	Value Value
}

// Flatten returns the leaves of the tree in insertion order. Non-empty
// subtrees are descended into with a "key." prefix; an empty subtree is
// itself emitted as a leaf.
func (t *Tree) Flatten() []Pair {
	if t == nil {
		return nil
	}
	return t.flatten(nil, "")
}

func (t *Tree) flatten(out []Pair, prefix string) []Pair {
	for _, k := range t.keys {
		if sub, ok := t.m[k].(*Tree); ok && sub.Len() > 0 {
			out = sub.flatten(out, prefix+k+".")
			continue
		}
		out = append(out, Pair{Key: prefix + k, Value: t.m[k]})
	}
	return out
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() Value {
	if t == nil {
		return (*Tree)(nil)
	}
	t2 := &Tree{
		keys: slices.Clone(t.keys),
		m:    make(map[string]Value, len(t.m)),
	}
	for k, v := range t.m {
		t2.m[k] = v.Clone()
	}
	return t2
}

// CloneTree returns a deep copy of the tree as a *Tree.
func (t *Tree) CloneTree() *Tree {
	t2, _ := t.Clone().(*Tree)
	return t2
}

// Equal compares this tree with another for structural equality.
// Key insertion order does not participate, it is a serialization detail.
func (t *Tree) Equal(val any) bool {
	var other *Tree
	switch v := val.(type) {
	case Tree:
		other = &v
	case *Tree:
		other = v
	default:
		return false
	}

	if t == other {
		return true
	} else if t == nil || other == nil {
		return t.Len() == other.Len()
	}

	if len(t.m) != len(other.m) {
		return false
	}
	for k, v := range t.m {
		ov, ok := other.m[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// String renders the tree as a query string with the default codec options.
func (t *Tree) String() string {
	return NewCodec(Options{}).Encode(t)
}
