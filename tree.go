package libopts

import (
	"strconv"
	"strings"
)

// Key is one node of a configuration tree: an absolute path, a string
// value, and a set of string-valued metadata.
//
// Paths use "/" as a separator. The first path segment is the namespace:
// "spec" for declarations, "proc" for resolved process-scope values. A
// path with no namespace segment (e.g. "verbose") is cascading, i.e.
// root-less. A key whose final path segment is "#" is an array key; its
// elements occupy sibling paths ending in "#0", "#1", ... and the array's
// parent key (the path with the "#" segment removed, e.g. "proc/tags" for
// "proc/tags/#") holds the last-index label (e.g. "#4").
type Key struct {
	Path  string
	Value string
	Meta  map[string]string
}

// Tree is the configuration-tree collaborator the resolver core requires
// from its host, restricted to the operations spec.md §6 enumerates:
// stable-order iteration, read/write of a key's value and metadata by
// absolute path, and lookup by path. Namespace substitution and the
// array-key convention are implemented as free functions over paths
// (below), not as Tree methods, since they need no tree state of their
// own beyond what Lookup/SetValue/SetMeta already provide.
//
// A real host (an Elektra-style KeySet, or any other hierarchical,
// metadata-bearing KV store) supplies its own implementation; MemTree
// below is a minimal one used by this module's own tests and examples.
type Tree interface {
	// Keys returns every key's absolute path, in a stable order.
	Keys() []string

	// Lookup returns the key at path, if one exists.
	Lookup(path string) (Key, bool)

	// SetValue sets (creating if necessary) the value of the key at path.
	SetValue(path, value string)

	// SetMeta sets (creating if necessary) a metadata value on the key at
	// path.
	SetMeta(path, name, value string)

	// Meta reads a single metadata value off the key at path. Per the
	// spec's key model, an empty string is treated the same as "absent".
	Meta(path, name string) (string, bool)
}

// MemTree is a minimal in-memory Tree, a flat path-keyed map of nodes.
// It is the Tree implementation used throughout this module's own tests,
// examples and the specfile/ loader.
type MemTree struct {
	order []string
	nodes map[string]*Key
}

// NewMemTree creates an empty tree.
func NewMemTree() *MemTree {
	return &MemTree{nodes: map[string]*Key{}}
}

func (t *MemTree) ensure(path string) *Key {
	if k, ok := t.nodes[path]; ok {
		return k
	}
	k := &Key{Path: path, Meta: map[string]string{}}
	t.nodes[path] = k
	t.order = append(t.order, path)
	return k
}

func (t *MemTree) Keys() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

func (t *MemTree) Lookup(path string) (Key, bool) {
	k, ok := t.nodes[path]
	if !ok {
		return Key{}, false
	}
	cp := *k
	cp.Meta = make(map[string]string, len(k.Meta))
	for n, v := range k.Meta {
		cp.Meta[n] = v
	}
	return cp, true
}

func (t *MemTree) SetValue(path, value string) {
	t.ensure(path).Value = value
}

func (t *MemTree) SetMeta(path, name, value string) {
	t.ensure(path).Meta[name] = value
}

func (t *MemTree) Meta(path, name string) (string, bool) {
	k, ok := t.nodes[path]
	if !ok {
		return "", false
	}
	v, ok := k.Meta[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// metaOr reads a metadata value off a Tree, falling back to a default when
// absent or empty.
func metaOr(t Tree, path, name, fallback string) string {
	if v, ok := t.Meta(path, name); ok {
		return v
	}
	return fallback
}

// metaFlag reports whether a boolean-style metadata value is set to "1".
func metaFlag(t Tree, path, name string) bool {
	v, _ := t.Meta(path, name)
	return v == "1"
}

const arrayMarker = "#"

// isArrayPath reports whether path's final segment is the array marker.
func isArrayPath(path string) bool {
	return lastSegment(path) == arrayMarker
}

func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// procPath derives the proc-namespace sibling of a spec-namespace path by
// substituting the leading "spec/" for "proc/", per spec.md §6's "derive a
// sibling path by substituting the namespace prefix" operation.
func procPath(specPath string) string {
	const prefix = "spec/"
	if strings.HasPrefix(specPath, prefix) {
		return "proc/" + specPath[len(prefix):]
	}
	return specPath
}

// arrayParentPath strips a trailing "#" segment, returning the path prefix
// used to build the array's element paths ("proc/tags/#" -> "proc/tags/").
func arrayParentPath(path string) string {
	return strings.TrimSuffix(path, arrayMarker)
}

// arrayKeyPath strips the trailing "/#" marker entirely, returning the path
// an array key's own value (its last-index label) is stored and looked up
// at. This matches original_source/opts.c's addProcKey, which calls
// keySetBaseName(procKey, NULL) to remove the "#" segment "for lookup"
// before writing the array key's label: "proc/tags/#" -> "proc/tags". It is
// a no-op on a path with no such suffix, so callers may apply it
// unconditionally to both array and scalar destinations.
func arrayKeyPath(path string) string {
	return strings.TrimSuffix(path, "/"+arrayMarker)
}

// arrayElementPath returns the sibling path for array element n (0-based)
// of the array whose marker path is parentPath (ending in "#").
func arrayElementPath(parentPath string, n int) string {
	return arrayParentPath(parentPath) + "#" + strconv.Itoa(n)
}

// arrayIndexLabel formats the last-index label an array parent key's value
// holds, e.g. arrayIndexLabel(4) == "#4".
func arrayIndexLabel(n int) string {
	return "#" + strconv.Itoa(n)
}

// writeArrayElements writes vals as the elements of the array at
// arrayPath (a spec.md-style "#"-suffixed key path, already translated to
// the proc namespace by the caller), preserving order, and sets the array
// key's own value to the final index label at arrayKeyPath(arrayPath) (the
// "#"-stripped path, e.g. "proc/tags" rather than "proc/tags/#"). This
// implements spec.md §6's "increment an array path's current index"
// operation: callers never need to track per-call state themselves.
func writeArrayElements(t Tree, arrayPath string, vals []string) {
	for i, v := range vals {
		t.SetValue(arrayElementPath(arrayPath, i), v)
	}
	if len(vals) > 0 {
		t.SetValue(arrayKeyPath(arrayPath), arrayIndexLabel(len(vals)-1))
	}
}
