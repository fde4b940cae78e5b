package libopts

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Decode walks the resolved proc-namespace subtree rooted at basePath
// (e.g. "proc") and decodes it into target, a non-nil struct pointer. It
// is the typed-access convenience spec.md §9 calls out of scope for the
// core (no type coercion in C1-C4): everything in the tree is a plain
// string, and the coercion into target's field types happens entirely
// here, outside the resolver proper.
func Decode(config Tree, basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("libopts: decode target must be a non-nil pointer, got %T", target)
	}

	prefix := basePath + "/"
	nested := map[string]any{}
	for _, path := range config.Keys() {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		rel := path[len(prefix):]
		if rel == "" {
			continue
		}
		if _, hasElements := config.Lookup(path + "/#0"); hasElements {
			// path is an array key's own last-index label, stored at the
			// #-stripped path; its elements below carry the actual data.
			continue
		}
		key, ok := config.Lookup(path)
		if !ok {
			continue
		}
		setNestedValue(nested, strings.Split(rel, "/"), key.Value)
	}

	normalized := normalizeArrays(nested)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("libopts: decoder creation failed: %w", err)
	}
	if err := decoder.Decode(normalized); err != nil {
		return fmt.Errorf("libopts: decode failed for path %q: %w", basePath, err)
	}
	return nil
}

func setNestedValue(m map[string]any, segments []string, value string) {
	cur := m
	for i, seg := range segments {
		if i == len(segments)-1 {
			cur[seg] = value
			return
		}
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}
}

var arrayElementKey = regexp.MustCompile(`^#(\d+)$`)

// normalizeArrays rewrites every map whose keys are entirely "#0", "#1",
// ... (the array-element convention, stripped of their parent path) into
// an ordered slice, recursively, so the result decodes cleanly into a Go
// slice field.
func normalizeArrays(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	for k, sub := range m {
		m[k] = normalizeArrays(sub)
	}
	if indices, isArray := arrayIndices(m); isArray {
		out := make([]any, len(indices))
		for i, idx := range indices {
			out[i] = m["#"+strconv.Itoa(idx)]
		}
		return out
	}
	return m
}

func arrayIndices(m map[string]any) ([]int, bool) {
	if len(m) == 0 {
		return nil, false
	}
	indices := make([]int, 0, len(m))
	for k := range m {
		match := arrayElementKey.FindStringSubmatch(k)
		if match == nil {
			return nil, false
		}
		n, _ := strconv.Atoi(match[1])
		indices = append(indices, n)
	}
	sort.Ints(indices)
	return indices, true
}
