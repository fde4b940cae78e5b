package libopts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteValuesShortOptionTakesPrecedenceOverEnv(t *testing.T) {
	tr := NewMemTree()
	tr.SetMeta("spec/name", "opt", "n")
	tr.SetMeta("spec/name", "opt/long", "name")
	tr.SetMeta("spec/name", "env", "NAME")
	cs, err := Compile(tr)
	require.NoError(t, err)

	occ, positionals, err := ParseArgs(cs, []string{"-n", "shortval"}, false)
	require.NoError(t, err)

	target := NewMemTree()
	require.NoError(t, WriteValues(cs.Plan, occ, MapEnvironment{"NAME": "envval"}, positionals, target))

	k, ok := target.Lookup("proc/name")
	require.True(t, ok)
	assert.Equal(t, "shortval", k.Value)
}

func TestWriteValuesFallsBackToEnv(t *testing.T) {
	tr := NewMemTree()
	tr.SetMeta("spec/greeting", "opt/long", "greeting")
	tr.SetMeta("spec/greeting", "env", "GREETING")
	cs, err := Compile(tr)
	require.NoError(t, err)

	occ, positionals, err := ParseArgs(cs, []string{}, false)
	require.NoError(t, err)

	target := NewMemTree()
	require.NoError(t, WriteValues(cs.Plan, occ, MapEnvironment{"GREETING": "Hello"}, positionals, target))

	k, ok := target.Lookup("proc/greeting")
	require.True(t, ok)
	assert.Equal(t, "Hello", k.Value)
}

func TestWriteValuesArrayEnvSplitting(t *testing.T) {
	tr := NewMemTree()
	tr.SetMeta("spec/paths/#", "env", "MY_PATH")
	cs, err := Compile(tr)
	require.NoError(t, err)

	occ, positionals, err := ParseArgs(cs, []string{}, false)
	require.NoError(t, err)

	target := NewMemTree()
	require.NoError(t, WriteValues(cs.Plan, occ, MapEnvironment{"MY_PATH": "/a:/b:/c"}, positionals, target))

	e0, _ := target.Lookup("proc/paths/#0")
	e1, _ := target.Lookup("proc/paths/#1")
	e2, _ := target.Lookup("proc/paths/#2")
	assert.Equal(t, "/a", e0.Value)
	assert.Equal(t, "/b", e1.Value)
	assert.Equal(t, "/c", e2.Value)
}

func TestWriteValuesEnvEmptyValueYieldsOneSegment(t *testing.T) {
	tr := NewMemTree()
	tr.SetMeta("spec/paths/#", "env", "MY_PATH")
	cs, err := Compile(tr)
	require.NoError(t, err)

	occ, positionals, err := ParseArgs(cs, []string{}, false)
	require.NoError(t, err)

	target := NewMemTree()
	require.NoError(t, WriteValues(cs.Plan, occ, MapEnvironment{"MY_PATH": ""}, positionals, target))

	e0, ok := target.Lookup("proc/paths/#0")
	require.True(t, ok)
	assert.Equal(t, "", e0.Value)

	label, ok := target.Lookup("proc/paths")
	require.True(t, ok)
	assert.Equal(t, "#0", label.Value)
}

func TestWriteValuesArgsRemaining(t *testing.T) {
	tr := NewMemTree()
	tr.SetMeta("spec/files/#", "args", "remaining")
	cs, err := Compile(tr)
	require.NoError(t, err)

	occ, positionals, err := ParseArgs(cs, []string{"a.txt", "b.txt"}, false)
	require.NoError(t, err)

	target := NewMemTree()
	require.NoError(t, WriteValues(cs.Plan, occ, MapEnvironment{}, positionals, target))

	e0, _ := target.Lookup("proc/files/#0")
	e1, _ := target.Lookup("proc/files/#1")
	assert.Equal(t, "a.txt", e0.Value)
	assert.Equal(t, "b.txt", e1.Value)
}

func TestWriteValuesConflictingTierIsIllegalUse(t *testing.T) {
	tr := NewMemTree()
	tr.SetMeta("spec/tags/#", "opt", "#")
	tr.SetMeta("spec/tags/#", "opt/#0", "a")
	tr.SetMeta("spec/tags/#", "opt/#0/long", "alpha")
	tr.SetMeta("spec/tags/#", "opt/#1", "b")
	tr.SetMeta("spec/tags/#", "opt/#1/long", "beta")
	cs, err := Compile(tr)
	require.NoError(t, err)

	occ, positionals, err := ParseArgs(cs, []string{"-a", "x", "-b", "y"}, false)
	require.NoError(t, err)

	target := NewMemTree()
	err = WriteValues(cs.Plan, occ, MapEnvironment{}, positionals, target)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIllegalUse)
}

func TestWriteValuesAnotherOptionAlreadyUsedForKey(t *testing.T) {
	target := NewMemTree()
	target.SetValue("proc/name", "preexisting")

	err := writeResolved(target, "proc/name", false, "new", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIllegalUse)
}
