package libopts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilePreregistersHelp(t *testing.T) {
	cs, err := Compile(NewMemTree())
	require.NoError(t, err)

	h, ok := cs.Options[shortKey('h')]
	require.True(t, ok)
	assert.Equal(t, ArgNone, h.HasArg)

	hl, ok := cs.Options[longKey("help")]
	require.True(t, ok)
	assert.Same(t, h, hl)
}

func TestCompileSimpleShortAndLong(t *testing.T) {
	tr := NewMemTree()
	tr.SetMeta("spec/name", "opt", "n")
	tr.SetMeta("spec/name", "opt/long", "name")
	tr.SetMeta("spec/name", "opt/help", "your name")

	cs, err := Compile(tr)
	require.NoError(t, err)

	short, ok := cs.Options[shortKey('n')]
	require.True(t, ok)
	assert.Equal(t, "spec/name", short.SpecKey)
	assert.Equal(t, ArgRequired, short.HasArg)

	long, ok := cs.Options[longKey("name")]
	require.True(t, ok)
	assert.Equal(t, "spec/name", long.SpecKey)

	require.Len(t, cs.Plan, 1)
	assert.Equal(t, "spec/name", cs.Plan[0].SpecKey)
	assert.Contains(t, cs.Plan[0].HelpLine, "your name")
	assert.True(t, cs.HasOpts)
}

func TestCompileLongOnlyOption(t *testing.T) {
	tr := NewMemTree()
	tr.SetMeta("spec/greeting", "opt/long", "greeting")

	cs, err := Compile(tr)
	require.NoError(t, err)

	_, hasLong := cs.Options[longKey("greeting")]
	assert.True(t, hasLong)

	for k := range cs.Options {
		if k.Kind == ShortOption {
			assert.NotEqual(t, "spec/greeting", cs.Options[k].SpecKey)
		}
	}
}

func TestCompileArrayOptionSlots(t *testing.T) {
	tr := NewMemTree()
	tr.SetMeta("spec/tags/#", "opt", "#")
	tr.SetMeta("spec/tags/#", "opt/#0", "t")
	tr.SetMeta("spec/tags/#", "opt/#0/long", "tag")
	tr.SetMeta("spec/tags/#", "opt/#1/long", "label")

	cs, err := Compile(tr)
	require.NoError(t, err)

	short, ok := cs.Options[shortKey('t')]
	require.True(t, ok)
	assert.Equal(t, KindArray, short.Kind)

	_, ok = cs.Options[longKey("tag")]
	assert.True(t, ok)
	_, ok = cs.Options[longKey("label")]
	assert.True(t, ok)
}

func TestCompileEnvArray(t *testing.T) {
	tr := NewMemTree()
	tr.SetMeta("spec/path/#", "env", "#")
	tr.SetMeta("spec/path/#", "env/#0", "MY_PATH")
	tr.SetMeta("spec/path/#", "env/#1", "OTHER_PATH")

	cs, err := Compile(tr)
	require.NoError(t, err)

	require.Len(t, cs.Plan, 1)
	assert.Equal(t, []string{"MY_PATH", "OTHER_PATH"}, cs.Plan[0].EnvNames)
}

func TestCompileArgsRemaining(t *testing.T) {
	tr := NewMemTree()
	tr.SetMeta("spec/files/#", "args", "remaining")

	cs, err := Compile(tr)
	require.NoError(t, err)
	require.Len(t, cs.Plan, 1)
	assert.True(t, cs.Plan[0].ArgsRemaining)
	assert.True(t, cs.HasArgs)
}

func TestCompileArgsRemainingOnScalarIsIllegalSpec(t *testing.T) {
	tr := NewMemTree()
	tr.SetMeta("spec/file", "args", "remaining")

	_, err := Compile(tr)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIllegalSpec)
}

func TestCompileUntouchedKeyProducesNoPlanEntry(t *testing.T) {
	tr := NewMemTree()
	tr.SetValue("spec/unused", "")

	cs, err := Compile(tr)
	require.NoError(t, err)
	assert.Empty(t, cs.Plan)
}

func TestCompileFlagValueOnRequiredIsIllegalSpec(t *testing.T) {
	tr := NewMemTree()
	tr.SetMeta("spec/x", "opt/long", "x")
	tr.SetMeta("spec/x", "opt/flagvalue", "yes")

	_, err := Compile(tr)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIllegalSpec)
}

func TestCompileReservedShortCharIsIllegalSpec(t *testing.T) {
	tr := NewMemTree()
	tr.SetMeta("spec/x", "opt", "h")

	_, err := Compile(tr)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIllegalSpec)
}

func TestCompileDuplicateShortIsIllegalSpec(t *testing.T) {
	tr := NewMemTree()
	tr.SetMeta("spec/a", "opt", "x")
	tr.SetMeta("spec/b", "opt", "x")

	_, err := Compile(tr)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIllegalSpec)
}

func TestCompileReservedLongNameHelpIsIllegalSpec(t *testing.T) {
	tr := NewMemTree()
	tr.SetMeta("spec/x", "opt/long", "help")

	_, err := Compile(tr)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIllegalSpec)
}

func TestCompileNohelpOptionOmittedFromHelpLine(t *testing.T) {
	tr := NewMemTree()
	tr.SetMeta("spec/secret", "opt/long", "secret")
	tr.SetMeta("spec/secret", "opt/nohelp", "1")

	cs, err := Compile(tr)
	require.NoError(t, err)
	require.Len(t, cs.Plan, 1)
	assert.Equal(t, "", cs.Plan[0].HelpLine)
	assert.False(t, cs.HasOpts)
}
