package libopts

import "github.com/pkg/errors"

// The two error kinds spec.md §7 distinguishes. Hosts can branch on them
// with errors.Is.
var (
	// ErrIllegalSpec wraps errors detected by the specification compiler
	// (C1): duplicate bindings, reserved characters/names, and other
	// malformed-specification conditions.
	ErrIllegalSpec = errors.New("illegal specification")

	// ErrIllegalUse wraps errors detected while parsing argv or applying
	// the resolution plan (C3/C4): unknown options, missing arguments,
	// disallowed repetition, and conflicting bindings.
	ErrIllegalUse = errors.New("illegal use")
)

func illegalSpecf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrIllegalSpec, format, args...)
}

func illegalUsef(format string, args ...interface{}) error {
	return errors.Wrapf(ErrIllegalUse, format, args...)
}
