package libopts

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Environment is a NAME -> VALUE lookup, the interface the value writer
// (C4) consults for env-bound plan entries. Adapted from the teacher's
// Env/OSEnv/MapEnv interface hierarchy, repurposed from "default value
// source for a struct field" to "table consulted by the resolver's writer
// step".
type Environment interface {
	Lookup(name string) (value string, ok bool)
}

// EnvTable is an Environment backed by a plain map, the result of parsing
// an envp vector with ParseEnviron.
type EnvTable map[string]string

func (t EnvTable) Lookup(name string) (string, bool) {
	v, ok := t[name]
	return v, ok
}

// ParseEnviron implements the Environment Reader (C2): it splits a
// null-terminated (in Go, simply a slice) list of "NAME=VALUE" strings into
// a lookup table. The first "=" delimits; any subsequent "=" are part of
// the value. If the same name appears twice, the last occurrence wins, per
// spec.md §4.2.
func ParseEnviron(envp []string) EnvTable {
	table := make(EnvTable, len(envp))
	for _, entry := range envp {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			table[entry] = ""
			continue
		}
		table[name] = value
	}
	return table
}

// MapEnvironment adapts a plain map to Environment, useful in tests and
// hosts that already have their own key-value env source.
type MapEnvironment map[string]string

func (m MapEnvironment) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// EnvFile is an Environment backed by a "KEY=VALUE" per line file, adapted
// from the teacher's EnvFile/ParseEnvFile (itself a variant of MapEnv). A
// host can layer this ahead of or behind the process environment to supply
// defaults from e.g. a ".env" file without having to export every variable.
type EnvFile struct {
	data map[string]string
}

func (ef *EnvFile) Lookup(name string) (string, bool) {
	v, ok := ef.data[name]
	return v, ok
}

// ParseEnvFile reads path and parses it into an EnvFile. Blank lines and
// lines beginning with "#" or "//" are skipped; every other line must be of
// the form KEY=VALUE, the first "=" delimiting as in ParseEnviron.
func ParseEnvFile(path string) (*EnvFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data := map[string]string{}
	scanner := bufio.NewScanner(file)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("libopts: %s:%d: not of form KEY=VALUE", path, lineNo)
		}
		data[name] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &EnvFile{data: data}, nil
}
