//go:build windows

package libopts

// envSeparator is the PATH-style separator used to split an array-kind env
// var's value, fixed at compile time per spec.md §6.
const envSeparator = ';'
