package cache

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"reflect"

	"github.com/cespare/xxhash/v2"

	"github.com/on-the-ground/decorate_ive_go/internal/trie"
)

// ErrUnhashable is returned when a positional argument cannot be used as a cache key.
var ErrUnhashable = errors.New("unhashable argument")

// stringerKey stands in for a non-comparable argument that has a String method.
type stringerKey struct {
	typ reflect.Type
	s   string
}

// tupleKey turns positional arguments into a trie path, one key per argument.
func tupleKey(args []any) ([]trie.Key, error) {
	keys := make([]trie.Key, len(args))
	for i, a := range args {
		k, err := argKey(a)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d of type %T", err, i, a)
		}
		keys[i] = k
	}
	return keys, nil
}

func argKey(a any) (trie.Key, error) {
	if a == nil {
		return a, nil
	}
	if rv := reflect.ValueOf(a); rv.Comparable() {
		// NaN never equals itself, so it would miss on every call and grow the trie.
		if hasNaN(rv) {
			return nil, ErrUnhashable
		}
		return a, nil
	}
	if s, ok := a.(fmt.Stringer); ok {
		return stringerKey{typ: reflect.TypeOf(a), s: s.String()}, nil
	}
	return nil, ErrUnhashable
}

func hasNaN(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(rv.Float())
	case reflect.Complex64, reflect.Complex128:
		return cmplx.IsNaN(rv.Complex())
	case reflect.Array:
		for i := range rv.Len() {
			if hasNaN(rv.Index(i)) {
				return true
			}
		}
	case reflect.Struct:
		for i := range rv.NumField() {
			if hasNaN(rv.Field(i)) {
				return true
			}
		}
	case reflect.Interface:
		return !rv.IsNil() && hasNaN(rv.Elem())
	}
	return false
}

// fingerprint is a short digest of a key path for logs.
func fingerprint(keys []trie.Key) string {
	d := xxhash.New()
	for _, k := range keys {
		fmt.Fprintf(d, "%T:%v;", k, k)
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// isFalsy reports whether v counts as absent under the legacy truthiness check.
func isFalsy(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex() == 0
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
