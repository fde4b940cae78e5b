package libopts

// Status is the resolver's tri-state outcome, per spec.md §6's conceptual
// signature "resolve(...) -> {0 success, 1 help, -1 error}".
type Status int

const (
	StatusSuccess Status = 0
	StatusHelp    Status = 1
	StatusError   Status = -1
)

// Resolve is the primary entry point (C1-C4, plus the help short-circuit
// described in §4.5): it compiles config's spec namespace, parses argv
// against it, and either reports help, reports an error, or writes the
// resolved values into config's proc namespace.
//
// argv follows C convention: argv[0] is the program name, argv[1:] are the
// arguments to parse. envp is a NAME=VALUE vector, as read from the host's
// environment. errorKeyPath is the path of the key that carries the
// `posixly`, `help/usage` and `help/prefix` input metadata, and receives
// the `internal/libopts/help/usage` / `internal/libopts/help/options`
// output metadata together with a textual error payload on failure.
//
// Per spec.md §5, Resolve is reentrant on disjoint inputs but must not be
// called concurrently against the same config tree or error key.
func Resolve(config Tree, errorKeyPath string, argv []string, envp []string) (Status, error) {
	cs, err := Compile(config)
	if err != nil {
		setError(config, errorKeyPath, err)
		return StatusError, err
	}

	var progname string
	var args []string
	if len(argv) > 0 {
		progname, args = argv[0], argv[1:]
	}

	posixly := metaFlag(config, errorKeyPath, "posixly")

	occ, positionals, err := ParseArgs(cs, args, posixly)
	if err != nil {
		setError(config, errorKeyPath, err)
		return StatusError, err
	}

	if helpRequested(occ) {
		config.SetMeta(errorKeyPath, "internal/libopts/help/usage", RenderUsage(cs, progname))
		config.SetMeta(errorKeyPath, "internal/libopts/help/options", RenderOptions(cs))
		return StatusHelp, nil
	}

	env := ParseEnviron(envp)

	if err := WriteValues(cs.Plan, occ, env, positionals, config); err != nil {
		setError(config, errorKeyPath, err)
		return StatusError, err
	}

	return StatusSuccess, nil
}

// HelpText is the "separate helper" (the "help concatenation helper")
// spec.md §4.5 describes: it reads the error key's `help/prefix` metadata,
// applies any `help/usage` override over the computed usage line Resolve
// already wrote there, and concatenates the result with the options
// string, for a host that wants the final text in one call rather than
// assembling it itself.
func HelpText(config Tree, errorKeyPath string) string {
	computedUsage, _ := config.Meta(errorKeyPath, "internal/libopts/help/usage")
	usage := UsageOverride(config, errorKeyPath, computedUsage)
	options, _ := config.Meta(errorKeyPath, "internal/libopts/help/options")
	prefix := metaOr(config, errorKeyPath, "help/prefix", "")

	var out string
	out = usage
	if prefix != "" {
		out += "\n" + prefix + "\n"
	}
	if options != "" {
		out += "\n" + options
	}
	return out
}

func helpRequested(occ *Occurrences) bool {
	if _, ok := occ.Get(shortKey('h')); ok {
		return true
	}
	_, ok := occ.Get(longKey("help"))
	return ok
}

func setError(config Tree, errorKeyPath string, err error) {
	config.SetMeta(errorKeyPath, "error/reason", err.Error())
}
