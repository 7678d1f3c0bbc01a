package table

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Placeholder is shown for null or missing values.
const Placeholder = "-"

// Lookup resolves a dotted path of JSON field names ("group.name") against
// v. The second result is false when any segment is missing or null.
func Lookup(v any, path string) (any, bool) {
	tree, err := toTree(v)
	if err != nil {
		return nil, false
	}
	return walk(tree, path)
}

// Display formats the value at path for a table cell.
func Display(v any, path string) string {
	val, ok := Lookup(v, path)
	if !ok {
		return Placeholder
	}
	return format(val)
}

func toTree(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func walk(tree any, path string) (any, bool) {
	cur := tree
	if path == "" {
		return cur, cur != nil
	}
	for _, seg := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[seg]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

func format(v any) string {
	switch val := v.(type) {
	case nil:
		return Placeholder
	case string:
		if val == "" {
			return Placeholder
		}
		return val
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case map[string]any:
		if name, ok := val["name"].(string); ok && name != "" {
			return name
		}
		b, _ := json.Marshal(val)
		return string(b)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, format(item))
		}
		if len(parts) == 0 {
			return Placeholder
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}

// compareValues orders JSON-decoded values: numbers numerically, strings
// case-insensitively, missing values last.
func compareValues(a, b any, okA, okB bool) int {
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	if fa, ok := a.(float64); ok {
		if fb, ok := b.(float64); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}
	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ba == bb:
				return 0
			case !ba:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(strings.ToLower(format(a)), strings.ToLower(format(b)))
}
