// Package trie stores values under paths of comparable keys, one level per key.
package trie

// Key is one path element. It must be comparable.
type Key = any

type node[V any] struct {
	children map[Key]*node[V]
	value    V
	set      bool
}

func newNode[V any]() *node[V] {
	return &node[V]{children: make(map[Key]*node[V])}
}

// Trie is not safe for concurrent use.
//
// A bounded trie keeps two generations. Stores go to the head generation; once it
// holds maxSize entries the older generation is dropped and becomes the new head.
type Trie[V any] struct {
	gens    [2]*node[V]
	sizes   [2]int
	headIdx int
	maxSize int
}

// New returns a trie. A maxSize of zero means unbounded.
func New[V any](maxSize int) *Trie[V] {
	if maxSize < 0 {
		panic("maxSize should not be negative")
	}
	return &Trie[V]{
		gens:    [2]*node[V]{newNode[V](), newNode[V]()},
		maxSize: maxSize,
	}
}

// Load returns the value stored under keys, looking at the head generation first.
func (t *Trie[V]) Load(keys []Key) (V, bool) {
	for _, idx := range [2]int{t.headIdx, 1 - t.headIdx} {
		if n := t.find(t.gens[idx], keys); n != nil && n.set {
			return n.value, true
		}
	}
	var zero V
	return zero, false
}

// Has reports whether a value is stored under keys.
func (t *Trie[V]) Has(keys []Key) bool {
	_, ok := t.Load(keys)
	return ok
}

// Store puts value under keys, replacing any previous value.
func (t *Trie[V]) Store(keys []Key, value V) {
	if n := t.find(t.gens[t.headIdx], keys); n != nil && n.set {
		n.value = value
		return
	}
	if t.maxSize > 0 && t.sizes[t.headIdx] >= t.maxSize {
		t.headIdx = 1 - t.headIdx
		t.gens[t.headIdx] = newNode[V]()
		t.sizes[t.headIdx] = 0
	}
	old := 1 - t.headIdx
	if n := t.find(t.gens[old], keys); n != nil && n.set {
		var zero V
		n.value, n.set = zero, false
		t.sizes[old]--
	}

	n := t.gens[t.headIdx]
	for _, k := range keys {
		child, ok := n.children[k]
		if !ok {
			child = newNode[V]()
			n.children[k] = child
		}
		n = child
	}
	n.value, n.set = value, true
	t.sizes[t.headIdx]++
}

// Clear drops every stored value.
func (t *Trie[V]) Clear() {
	t.gens = [2]*node[V]{newNode[V](), newNode[V]()}
	t.sizes = [2]int{}
	t.headIdx = 0
}

// Len returns the number of stored values.
func (t *Trie[V]) Len() int {
	return t.sizes[0] + t.sizes[1]
}

func (t *Trie[V]) find(n *node[V], keys []Key) *node[V] {
	for _, k := range keys {
		child, ok := n.children[k]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}
