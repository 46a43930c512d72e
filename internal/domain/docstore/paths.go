package docstore

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Lookup resolves a dot path inside data.
func Lookup(data map[string]any, path string) (any, bool) {
	current := any(data)
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// SetPath writes value at a dot path, creating intermediate maps.
func SetPath(data map[string]any, path string, value any) {
	keys := strings.Split(path, ".")
	current := data
	for _, key := range keys[:len(keys)-1] {
		next, ok := current[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[key] = next
		}
		current = next
	}
	current[keys[len(keys)-1]] = value
}

// Merge copies src into dst, merging nested maps instead of replacing them.
func Merge(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			Merge(dstMap, srcMap)
			continue
		}
		dst[k] = v
	}
}

// Clone deep copies document data.
func Clone(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Clone(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// Matches reports whether data satisfies every filter. Like Firestore, a
// missing field never matches, not even an inequality.
func Matches(data map[string]any, filters []Filter) (bool, error) {
	for _, f := range filters {
		value, present := Lookup(data, f.Field)
		switch f.Op {
		case OpEqual:
			if !present || !equalValues(value, f.Value) {
				return false, nil
			}
		case OpNotEqual:
			if !present || equalValues(value, f.Value) {
				return false, nil
			}
		case OpIn:
			if !present {
				return false, nil
			}
			candidates := reflect.ValueOf(f.Value)
			if candidates.Kind() != reflect.Slice {
				return false, fmt.Errorf("filter %q: in operator needs a slice", f.Field)
			}
			found := false
			for i := 0; i < candidates.Len(); i++ {
				if equalValues(value, candidates.Index(i).Interface()) {
					found = true
					break
				}
			}
			if !found {
				return false, nil
			}
		default:
			return false, fmt.Errorf("filter %q: unsupported operator %q", f.Field, f.Op)
		}
	}
	return true, nil
}

// Apply filters, orders and limits documents in memory.
func Apply(docs []Document, q Query) ([]Document, error) {
	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		ok, err := Matches(doc.Data, q.Filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, doc)
		}
	}

	if q.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			a, _ := Lookup(out[i].Data, q.OrderBy)
			b, _ := Lookup(out[j].Data, q.OrderBy)
			if q.Desc {
				return compareValues(b, a) < 0
			}
			return compareValues(a, b) < 0
		})
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func equalValues(a, b any) bool {
	na, err := Normalize(a)
	if err != nil {
		return false
	}
	nb, err := Normalize(b)
	if err != nil {
		return false
	}
	return reflect.DeepEqual(na, nb)
}

// compareValues orders missing values first, then numbers, timestamps and strings.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}

	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	if ta, err := time.Parse(time.RFC3339Nano, sa); err == nil {
		if tb, err := time.Parse(time.RFC3339Nano, sb); err == nil {
			return ta.Compare(tb)
		}
	}
	return strings.Compare(sa, sb)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}
