package decorators

import (
	"fmt"
	"sort"
	"strings"
)

// FormatArgs renders positional arguments as a tuple: (), (1,), (1, "a").
func FormatArgs(args []any) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(FormatValue(a))
	}
	if len(args) == 1 {
		b.WriteByte(',')
	}
	b.WriteByte(')')
	return b.String()
}

// FormatKwargs renders keyword arguments as a map literal with sorted keys.
func FormatKwargs(kwargs map[string]any) string {
	keys := make([]string, 0, len(kwargs))
	for k := range kwargs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: %s", k, FormatValue(kwargs[k]))
	}
	b.WriteByte('}')
	return b.String()
}

// FormatValue renders a single value. Strings are quoted, everything else uses %v,
// which also survives a String method panicking on a nil receiver.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
