package store

import (
	"encoding/json"
	"strings"
)

// lookup resolves a dotted path inside fields.
func lookup(fields map[string]any, path string) (any, bool) {
	var cur any = fields
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// matches compares a stored value with a query value. Numbers compare by
// value regardless of their Go type since JSON and BSON decoding widen them.
func matches(fields map[string]any, path string, want any) bool {
	got, ok := lookup(fields, path)
	if !ok {
		return want == nil
	}
	if gf, ok := number(got); ok {
		wf, ok := number(want)
		return ok && gf == wf
	}
	switch g := got.(type) {
	case string, bool, nil:
		return g == want
	}
	return false
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// cloneValue deep-copies the JSON-shaped values stores keep.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneFields(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	}
	return v
}

func cloneFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = cloneValue(v)
	}
	return out
}

// setPath writes value at a dotted path, creating intermediate maps.
func setPath(fields map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	cur := fields
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}
