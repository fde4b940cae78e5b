package libopts

import "strings"

// RenderUsage builds the usage line described by spec.md §4.5:
//
//	Usage: <progname>[ [OPTION]...][ [ARG]...]
//
// progname is derived from argv[0] with everything up to and including the
// last "/" stripped, matching the teacher's own basename handling.
func RenderUsage(spec *CompiledSpec, argv0 string) string {
	progname := basename(argv0)
	var sb strings.Builder
	sb.WriteString("Usage: ")
	sb.WriteString(progname)
	if spec.HasOpts {
		sb.WriteString(" [OPTION]...")
	}
	if spec.HasArgs {
		sb.WriteString(" [ARG]...")
	}
	sb.WriteByte('\n')
	return sb.String()
}

// RenderOptions builds the options block described by spec.md §4.5: the
// literal line "OPTIONS" followed by each plan entry's precomputed help
// line, in plan order, or the empty string if no plan entry has one.
func RenderOptions(spec *CompiledSpec) string {
	var lines []string
	for _, pe := range spec.Plan {
		if pe.HelpLine != "" {
			lines = append(lines, pe.HelpLine)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("OPTIONS\n")
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderHelp concatenates the usage line, a caller-supplied prefix, and the
// options block into the final help text, per spec.md §4.5's "separate
// helper" for this.
func RenderHelp(spec *CompiledSpec, argv0, prefix string) string {
	var sb strings.Builder
	sb.WriteString(RenderUsage(spec, argv0))
	if prefix != "" {
		sb.WriteByte('\n')
		sb.WriteString(prefix)
		sb.WriteByte('\n')
	}
	if opts := RenderOptions(spec); opts != "" {
		sb.WriteByte('\n')
		sb.WriteString(opts)
	}
	return sb.String()
}

// UsageOverride implements the `help/usage` error-key metadata supplement
// from SPEC_FULL.md: if errorKey carries a non-empty `help/usage` value,
// that string is used verbatim in place of the computed usage line.
func UsageOverride(errorKey Tree, errorKeyPath, computed string) string {
	if v, ok := errorKey.Meta(errorKeyPath, "help/usage"); ok {
		return v
	}
	return computed
}

func basename(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
