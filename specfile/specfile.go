// Package specfile loads a spec-namespace configuration tree from a TOML
// file, for hosts that want to describe their options declaratively
// instead of building a Tree by hand. It is a supplement outside the
// resolver core (spec.md §9): nothing in libopts itself depends on it.
package specfile

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"libopts"
)

// MaxSpecFileSize bounds how much of a spec file is read, mirroring the
// size guard the example configuration loaders apply to their own input
// files.
const MaxSpecFileSize = 1 << 20 // 1 MiB

// document is the on-disk shape: a flat list of keys, each with its
// value and metadata, rather than a nested table tree. Nesting the
// array-element convention ("#", "#0", "#1", ...) as literal TOML table
// keys would require quoting every segment; a flat list keeps the file
// readable and maps directly onto Tree.Keys()'s own flat iteration.
type document struct {
	Keys []documentKey `toml:"keys"`
}

type documentKey struct {
	Path  string            `toml:"path"`
	Value string            `toml:"value"`
	Meta  map[string]string `toml:"meta"`
}

// Load reads the TOML spec file at path and returns it as a *libopts.MemTree
// ready to pass to libopts.Compile or libopts.Resolve.
func Load(path string) (*libopts.MemTree, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("specfile: stat %q: %w", path, err)
	}
	if info.Size() > MaxSpecFileSize {
		return nil, fmt.Errorf("specfile: %q exceeds maximum size of %d bytes", path, MaxSpecFileSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("specfile: open %q: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxSpecFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("specfile: read %q: %w", path, err)
	}

	return Decode(data)
}

// Decode parses raw TOML bytes in the document shape Load expects, useful
// for embedded specs or tests that don't want to touch the filesystem.
func Decode(data []byte) (*libopts.MemTree, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("specfile: parse TOML: %w", err)
	}

	tree := libopts.NewMemTree()
	for _, k := range doc.Keys {
		if k.Path == "" {
			return nil, fmt.Errorf("specfile: key with empty path")
		}
		tree.SetValue(k.Path, k.Value)
		for name, value := range k.Meta {
			tree.SetMeta(k.Path, name, value)
		}
	}
	return tree, nil
}
