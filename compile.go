package libopts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/huandu/xstrings"
)

// ArgMode is how an option consumes its argument, per spec.md §3's `opt/arg`
// annotation.
type ArgMode string

const (
	ArgNone     ArgMode = "none"
	ArgOptional ArgMode = "optional"
	ArgRequired ArgMode = "required"
)

// Cardinality is whether a compiled option or plan entry is bound to a
// scalar or array spec key.
type Cardinality string

const (
	KindSingle Cardinality = "single"
	KindArray  Cardinality = "array"
)

// OptionKeyKind distinguishes a short-character option slot from a
// long-name one in the compiled option table.
type OptionKeyKind int

const (
	ShortOption OptionKeyKind = iota
	LongOption
)

// OptionKey is the synthetic handle spec.md §3 calls "/short/<c>" or
// "/long/<name>", represented here (per spec.md §9's Design Notes) as a
// tagged Go value rather than a string path, so the option table is a
// plain map instead of more tree keys.
type OptionKey struct {
	Kind  OptionKeyKind
	Short byte
	Long  string
}

func shortKey(c byte) OptionKey     { return OptionKey{Kind: ShortOption, Short: c} }
func longKey(name string) OptionKey { return OptionKey{Kind: LongOption, Long: name} }

func (k OptionKey) String() string {
	if k.Kind == ShortOption {
		return fmt.Sprintf("-%c", k.Short)
	}
	return "--" + k.Long
}

// IsHelp reports whether k is one of the two preregistered help slots.
func (k OptionKey) IsHelp() bool {
	return (k.Kind == ShortOption && k.Short == 'h') || (k.Kind == LongOption && k.Long == "help")
}

// OptionEntry is a compiled option-table entry: spec.md §3's "Compiled
// option entry".
type OptionEntry struct {
	SpecKey   string // owning spec key's path; "" for the preregistered help slots
	HasArg    ArgMode
	Kind      Cardinality
	FlagValue string
}

// PlanEntry is spec.md §3's "Resolution plan entry": the per-spec-key
// resolution descriptor the value writer (C4) consumes.
type PlanEntry struct {
	SpecKey       string
	Options       []OptionKey // in discovery order; may mix short and long refs
	EnvNames      []string
	ArgsRemaining bool
	HelpLine      string // "" if this entry contributes nothing to the options block
}

// shortOptions and longOptions partition p.Options by kind, preserving
// relative order, for the precedence logic in write.go.
func (p *PlanEntry) shortOptions() []OptionKey {
	var out []OptionKey
	for _, k := range p.Options {
		if k.Kind == ShortOption {
			out = append(out, k)
		}
	}
	return out
}

func (p *PlanEntry) longOptions() []OptionKey {
	var out []OptionKey
	for _, k := range p.Options {
		if k.Kind == LongOption {
			out = append(out, k)
		}
	}
	return out
}

// CompiledSpec is the output of the Specification Compiler (C1): the
// option table plus the plan list, plus the two booleans the help
// renderer (C5) needs. It is immutable once built and may be reused to
// Resolve against many different argv/envp/target-tree triples.
type CompiledSpec struct {
	Options map[OptionKey]*OptionEntry
	Plan    []*PlanEntry
	HasOpts bool
	HasArgs bool
}

func preregisteredOptions() map[OptionKey]*OptionEntry {
	help := &OptionEntry{HasArg: ArgNone, Kind: KindSingle, FlagValue: "1"}
	return map[OptionKey]*OptionEntry{
		shortKey('h'):    help,
		longKey("help"): help,
	}
}

// Compile walks the spec namespace of spec, validates every annotation
// spec.md §3 recognizes, and builds the option table and plan list
// (spec.md §4.1). It returns an error wrapping ErrIllegalSpec on any
// validation failure.
func Compile(spec Tree) (*CompiledSpec, error) {
	cs := &CompiledSpec{Options: preregisteredOptions()}

	usedEnv := map[string]string{} // env name -> owning spec key

	planIndex := map[string]*PlanEntry{}

	for _, path := range spec.Keys() {
		if !strings.HasPrefix(path, "spec/") && path != "spec" {
			continue
		}

		entry := func() *PlanEntry {
			if pe, ok := planIndex[path]; ok {
				return pe
			}
			pe := &PlanEntry{SpecKey: path}
			planIndex[path] = pe
			cs.Plan = append(cs.Plan, pe)
			return pe
		}

		touched := false

		if err := compileOptions(cs, spec, path, entry, &touched); err != nil {
			return nil, err
		}
		if err := compileEnv(spec, path, entry, usedEnv, &touched); err != nil {
			return nil, err
		}
		if err := compileArgs(cs, spec, path, entry, &touched); err != nil {
			return nil, err
		}

		if !touched {
			// Nothing bound on this key: drop the (empty) plan entry we
			// may have lazily created, so the invariant "a key without
			// any binding contributes no plan entry" holds exactly.
			if pe, ok := planIndex[path]; ok && len(pe.Options) == 0 && len(pe.EnvNames) == 0 && !pe.ArgsRemaining {
				delete(planIndex, path)
				cs.Plan = cs.Plan[:len(cs.Plan)-1]
			}
		}
	}

	return cs, nil
}

// MustCompile is like Compile but panics on error, matching the teacher's
// New-panics/Build-returns-error split.
func MustCompile(spec Tree) *CompiledSpec {
	cs, err := Compile(spec)
	if err != nil {
		panic(fmt.Sprintf("libopts: %s", err))
	}
	return cs
}

// optSlotPrefix returns the metadata-name prefix for option slot i: "opt"
// for the scalar (non-array) case, or "opt/#<i>" for the array case.
func optSlotPrefix(i int, isArray bool) string {
	if !isArray {
		return "opt"
	}
	return fmt.Sprintf("opt/#%d", i)
}

func compileOptions(cs *CompiledSpec, spec Tree, path string, entry func() *PlanEntry, touched *bool) error {
	rawOpt, optPresent := spec.Meta(path, "opt")
	isArrayOpt := optPresent && rawOpt == "#"

	var slotCount int
	if isArrayOpt {
		for i := 0; ; i++ {
			prefix := optSlotPrefix(i, true)
			_, hasShort := spec.Meta(path, prefix)
			_, hasLong := spec.Meta(path, prefix+"/long")
			if !hasShort && !hasLong {
				break
			}
			slotCount++
		}
	} else if optPresent || hasMeta(spec, path, "opt/long") {
		slotCount = 1
	}

	kind := KindSingle
	if isArrayPath(path) {
		kind = KindArray
	}

	var shortLine, longLine strings.Builder
	anyVisible := false

	for i := 0; i < slotCount; i++ {
		prefix := optSlotPrefix(i, isArrayOpt)

		var shortVal string
		var shortPresent bool
		if !isArrayOpt {
			shortVal, shortPresent = rawOpt, optPresent
		} else {
			shortVal, shortPresent = spec.Meta(path, prefix)
		}
		longVal, longPresent := spec.Meta(path, prefix+"/long")

		if !shortPresent && !longPresent {
			continue
		}

		argMode := ArgMode(metaOr(spec, path, prefix+"/arg", string(ArgRequired)))
		argHelp := metaOr(spec, path, prefix+"/arg/help", "ARG")
		flagValueRaw, flagValueExplicit := spec.Meta(path, prefix+"/flagvalue")
		flagValue := "1"
		if flagValueExplicit {
			flagValue = flagValueRaw
		}
		nohelp := metaFlag(spec, path, prefix+"/nohelp")

		if flagValueExplicit && argMode == ArgRequired {
			return illegalSpecf("%s: opt/flagvalue is only valid when opt/arg is not 'required'", path)
		}

		var shortChar byte
		if shortPresent {
			if len(shortVal) == 0 {
				return illegalSpecf("%s: opt short character must not be empty", path)
			}
			shortChar = shortVal[0]
			if shortChar == '-' || shortChar == 'h' {
				return illegalSpecf("%s: opt short character %q is reserved", path, shortChar)
			}
		}
		if longPresent && longVal == "help" {
			return illegalSpecf("%s: opt/long 'help' is reserved", path)
		}

		pe := entry()
		*touched = true

		if shortPresent {
			shortArg := argMode
			if shortArg == ArgOptional {
				// "optional" is only legal on long options; a short
				// counterpart behaves as "none" (spec.md §3).
				shortArg = ArgNone
			}
			k := shortKey(shortChar)
			if _, dup := cs.Options[k]; dup {
				return illegalSpecf("%s: short option -%c is already bound", path, shortChar)
			}
			cs.Options[k] = &OptionEntry{SpecKey: path, HasArg: shortArg, Kind: kind, FlagValue: flagValue}
			pe.Options = append(pe.Options, k)
			if !nohelp {
				anyVisible = true
				if shortLine.Len() > 0 {
					shortLine.WriteString(", ")
				}
				fmt.Fprintf(&shortLine, "-%c", shortChar)
			}
		}
		if longPresent {
			k := longKey(longVal)
			if _, dup := cs.Options[k]; dup {
				return illegalSpecf("%s: long option --%s is already bound", path, longVal)
			}
			cs.Options[k] = &OptionEntry{SpecKey: path, HasArg: argMode, Kind: kind, FlagValue: flagValue}
			pe.Options = append(pe.Options, k)
			if !nohelp {
				anyVisible = true
				if longLine.Len() > 0 {
					longLine.WriteString(", ")
				}
				fmt.Fprintf(&longLine, "--%s%s", longVal, argSuffix(argMode, argHelp))
			}
		}
	}

	if anyVisible {
		cs.HasOpts = true
		pe := entry()
		helpText := metaOr(spec, path, "opt/help", metaOr(spec, path, "description", ""))
		pe.HelpLine = formatHelpLine(joinOptForms(shortLine.String(), longLine.String()), helpText)
	}

	return nil
}

func argSuffix(mode ArgMode, placeholder string) string {
	switch mode {
	case ArgRequired:
		return "=" + placeholder
	case ArgOptional:
		return "=[" + placeholder + "]"
	default:
		return ""
	}
}

func joinOptForms(shortLine, longLine string) string {
	switch {
	case shortLine != "" && longLine != "":
		return shortLine + ", " + longLine
	case shortLine != "":
		return shortLine
	default:
		return longLine
	}
}

// formatHelpLine pads an option prefix to column 30 and wraps onto an
// indented continuation line when the prefix exceeds 28 rune-columns, per
// spec.md §4.1. Width is measured with xstrings.Len rather than len() so
// multi-byte help text still lines up visually.
func formatHelpLine(prefix, help string) string {
	const col = 30
	const wrapAt = 28
	indent := strings.Repeat(" ", col)
	if help == "" {
		return "  " + prefix
	}
	width := xstrings.Len(prefix)
	if width > wrapAt {
		return "  " + prefix + "\n" + indent + help
	}
	pad := strings.Repeat(" ", col-2-width)
	return "  " + prefix + pad + help
}

func hasMeta(spec Tree, path, name string) bool {
	_, ok := spec.Meta(path, name)
	return ok
}

func compileEnv(spec Tree, path string, entry func() *PlanEntry, usedEnv map[string]string, touched *bool) error {
	rawEnv, envPresent := spec.Meta(path, "env")
	var names []string
	if envPresent && rawEnv == "#" {
		for i := 0; ; i++ {
			name, ok := spec.Meta(path, fmt.Sprintf("env/#%d", i))
			if !ok {
				break
			}
			names = append(names, name)
		}
	} else if envPresent {
		names = append(names, rawEnv)
	}

	for _, name := range names {
		if owner, dup := usedEnv[name]; dup && owner != path {
			return illegalSpecf("%s: environment variable %s is already bound to %s", path, name, owner)
		}
		usedEnv[name] = path
		pe := entry()
		*touched = true
		pe.EnvNames = append(pe.EnvNames, name)
	}

	return nil
}

func compileArgs(cs *CompiledSpec, spec Tree, path string, entry func() *PlanEntry, touched *bool) error {
	mode, ok := spec.Meta(path, "args")
	if !ok {
		return nil
	}
	if mode != "remaining" {
		return nil
	}
	if !isArrayPath(path) {
		return illegalSpecf("%s: args=remaining is only valid on an array key", path)
	}
	pe := entry()
	*touched = true
	pe.ArgsRemaining = true
	cs.HasArgs = true
	return nil
}

// sortedOptionKeys returns the keys of cs.Options sorted by their String
// form, for deterministic iteration over cs.Options.
func sortedOptionKeys(cs *CompiledSpec) []OptionKey {
	keys := make([]OptionKey, 0, len(cs.Options))
	for k := range cs.Options {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}
