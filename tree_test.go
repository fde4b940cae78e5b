package libopts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemTreeSetAndLookup(t *testing.T) {
	tr := NewMemTree()
	tr.SetValue("spec/name", "")
	tr.SetMeta("spec/name", "opt", "n")
	tr.SetMeta("spec/name", "opt/long", "name")

	k, ok := tr.Lookup("spec/name")
	require.True(t, ok)
	assert.Equal(t, "spec/name", k.Path)
	assert.Equal(t, "n", k.Meta["opt"])
	assert.Equal(t, "name", k.Meta["opt/long"])

	_, ok = tr.Lookup("spec/missing")
	assert.False(t, ok)
}

func TestMemTreeKeysStableOrder(t *testing.T) {
	tr := NewMemTree()
	tr.SetValue("spec/c", "")
	tr.SetValue("spec/a", "")
	tr.SetValue("spec/b", "")

	assert.Equal(t, []string{"spec/c", "spec/a", "spec/b"}, tr.Keys())
}

func TestMemTreeMetaEmptyTreatedAsAbsent(t *testing.T) {
	tr := NewMemTree()
	tr.SetMeta("spec/x", "opt/nohelp", "")

	_, ok := tr.Meta("spec/x", "opt/nohelp")
	assert.False(t, ok)
}

func TestProcPath(t *testing.T) {
	assert.Equal(t, "proc/name", procPath("spec/name"))
	assert.Equal(t, "proc/tags/#", procPath("spec/tags/#"))
	assert.Equal(t, "cascading", procPath("cascading"))
}

func TestArrayKeyPath(t *testing.T) {
	assert.Equal(t, "proc/tags", arrayKeyPath(procPath("spec/tags/#")))
	assert.Equal(t, "proc/name", arrayKeyPath("proc/name"))
}

func TestIsArrayPath(t *testing.T) {
	assert.True(t, isArrayPath("spec/tags/#"))
	assert.False(t, isArrayPath("spec/name"))
}

func TestArrayElementPathAndLabel(t *testing.T) {
	assert.Equal(t, "proc/tags/#0", arrayElementPath("proc/tags/#", 0))
	assert.Equal(t, "proc/tags/#4", arrayElementPath("proc/tags/#", 4))
	assert.Equal(t, "#4", arrayIndexLabel(4))
}

func TestWriteArrayElements(t *testing.T) {
	tr := NewMemTree()
	writeArrayElements(tr, "proc/tags/#", []string{"a", "b", "c"})

	e0, _ := tr.Lookup("proc/tags/#0")
	e1, _ := tr.Lookup("proc/tags/#1")
	e2, _ := tr.Lookup("proc/tags/#2")
	assert.Equal(t, "a", e0.Value)
	assert.Equal(t, "b", e1.Value)
	assert.Equal(t, "c", e2.Value)

	label, ok := tr.Lookup("proc/tags")
	require.True(t, ok)
	assert.Equal(t, "#2", label.Value)
}

func TestWriteArrayElementsEmpty(t *testing.T) {
	tr := NewMemTree()
	writeArrayElements(tr, "proc/tags/#", nil)
	_, ok := tr.Lookup("proc/tags")
	assert.False(t, ok)
}
