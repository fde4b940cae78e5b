package libopts

import "strings"

// WriteValues implements the Value Writer (C4): for each plan entry, in
// plan order, it resolves a single source by precedence (short option >
// long option > env var > remaining positionals) and writes the chosen
// value(s) into target's proc namespace, per spec.md §4.4.
func WriteValues(plan []*PlanEntry, occ *Occurrences, env Environment, positionals []string, target Tree) error {
	for _, pe := range plan {
		if err := writePlanEntry(pe, occ, env, positionals, target); err != nil {
			return err
		}
	}
	return nil
}

func writePlanEntry(pe *PlanEntry, occ *Occurrences, env Environment, positionals []string, target Tree) error {
	dest := procPath(pe.SpecKey)
	isArray := isArrayPath(pe.SpecKey)

	// 1 & 2: short options beat long options; within a tier, more than one
	// present occurrence is a conflict (spec.md §4.4, §7 "two bindings
	// resolving to the same spec key").
	scalar, values, found, err := chooseOptionSource(pe, occ)
	if err != nil {
		return err
	}
	if found {
		return writeResolved(target, dest, isArray, scalar, values)
	}

	// 3: environment variable.
	scalar, values, found, err = chooseEnvSource(pe, env, isArray)
	if err != nil {
		return err
	}
	if found {
		return writeResolved(target, dest, isArray, scalar, values)
	}

	// 4: remaining positionals.
	if pe.ArgsRemaining {
		return writeResolved(target, dest, true, "", positionals)
	}

	// 5: nothing to write.
	return nil
}

// chooseOptionSource resolves the option-derived source for a plan entry:
// short wins over long (shadowing a long occurrence silently, per spec.md
// §4.3/§4.4); two occurrences within the same tier (two shorts, or two
// longs, bound to the same key) are a conflict.
func chooseOptionSource(pe *PlanEntry, occ *Occurrences) (scalar string, values []string, found bool, err error) {
	if scalar, values, found, err = chooseTier(pe, pe.shortOptions(), occ); found || err != nil {
		return
	}
	return chooseTier(pe, pe.longOptions(), occ)
}

func chooseTier(pe *PlanEntry, refs []OptionKey, occ *Occurrences) (string, []string, bool, error) {
	var chosen *Occurrence
	for _, ref := range refs {
		o, ok := occ.Get(ref)
		if !ok {
			continue
		}
		if chosen != nil {
			return "", nil, false, illegalUsef(
				"the option %s cannot be used, because another option has already been used for %s",
				ref, pe.SpecKey)
		}
		chosen = o
	}
	if chosen == nil {
		return "", nil, false, nil
	}
	if chosen.Values != nil {
		return "", chosen.Values, true, nil
	}
	return chosen.Value, nil, true, nil
}

func chooseEnvSource(pe *PlanEntry, env Environment, isArray bool) (scalar string, values []string, found bool, err error) {
	var chosenName string
	var chosenRaw string
	for _, name := range pe.EnvNames {
		raw, ok := env.Lookup(name)
		if !ok {
			continue
		}
		if found {
			return "", nil, false, illegalUsef(
				"the environment variable %s cannot be used, because %s has already been used for %s",
				name, chosenName, pe.SpecKey)
		}
		found = true
		chosenName = name
		chosenRaw = raw
	}
	if !found {
		return "", nil, false, nil
	}
	if !isArray {
		return chosenRaw, nil, true, nil
	}
	return "", splitEnvValue(chosenRaw), true, nil
}

// splitEnvValue splits a PATH-style env value at envSeparator, per
// spec.md §4.4. A value with no separator still produces a one-element
// list (matching original_source/opts.c's splitEnvValue, which treats an
// empty or unsplit value as a single segment rather than zero segments).
func splitEnvValue(raw string) []string {
	return strings.Split(raw, string(envSeparator))
}

func writeResolved(target Tree, dest string, isArray bool, scalar string, values []string) error {
	// For an array destination, the "already used" check and the label
	// live at the "#"-stripped path, not at dest itself (a no-op for a
	// scalar destination, which has no such suffix to strip).
	if existing, ok := target.Lookup(arrayKeyPath(dest)); ok && existing.Value != "" {
		return illegalUsef("another option has already been used for %s", dest)
	}
	if !isArray {
		target.SetValue(dest, scalar)
		return nil
	}
	writeArrayElements(target, dest, values)
	return nil
}
