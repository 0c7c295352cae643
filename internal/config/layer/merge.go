package layer

import (
	"reflect"
	"sort"
	"strings"
)

// DeepMerge merges src into dst and returns dst.
// Nested maps merge key by key; any other src value replaces dst's.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = cloneValue(srcVal)
	}
	return dst
}

// GetByPath reads a dotted path ("editor.tabSize") from a nested map.
func GetByPath(data map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	current := data
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		if current, ok = val.(map[string]any); !ok {
			return nil, false
		}
	}
	return nil, false
}

// SetByPath writes a dotted path into a nested map, creating or replacing
// intermediate maps as needed.
func SetByPath(data map[string]any, path string, value any) {
	if data == nil {
		return
	}
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// Flatten returns the leaves of a nested map keyed by dotted path.
func Flatten(data map[string]any) map[string]any {
	out := make(map[string]any)
	var walk func(m map[string]any, prefix string)
	walk = func(m map[string]any, prefix string) {
		for key, val := range m {
			if prefix != "" {
				key = prefix + "." + key
			}
			if nested, ok := val.(map[string]any); ok {
				walk(nested, key)
				continue
			}
			out[key] = val
		}
	}
	walk(data, "")
	return out
}

// Changed returns the sorted dotted paths whose leaf values differ between
// old and new, including paths present in only one of them.
func Changed(old, new map[string]any) []string {
	a, b := Flatten(old), Flatten(new)
	var paths []string
	for path, nv := range b {
		if ov, ok := a[path]; !ok || !reflect.DeepEqual(ov, nv) {
			paths = append(paths, path)
		}
	}
	for path := range a {
		if _, ok := b[path]; !ok {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}
