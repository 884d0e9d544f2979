package align_test

import (
	"testing"

	"github.com/katalvlaran/edist/align"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReplacement_Apply verifies out-of-place replacement.
func TestReplacement_Apply(t *testing.T) {
	edit := align.Replacement[string]{Index: 1, Label: "a"}
	lst := []string{"b", "b"}
	assert.Equal(t, []string{"b", "a"}, edit.Apply(lst))
	assert.Equal(t, []string{"b", "b"}, lst, "input must not be mutated")
}

// TestDeletion_Apply verifies out-of-place deletion.
func TestDeletion_Apply(t *testing.T) {
	edit := align.Deletion[string]{Index: 1}
	lst := []string{"a", "b", "c"}
	assert.Equal(t, []string{"a", "c"}, edit.Apply(lst))
	assert.Equal(t, []string{"a", "b", "c"}, lst, "input must not be mutated")
}

// TestInsertion_Apply verifies out-of-place insertion.
func TestInsertion_Apply(t *testing.T) {
	edit := align.Insertion[string]{Index: 1, Label: "b"}
	lst := []string{"a", "c"}
	assert.Equal(t, []string{"a", "b", "c"}, edit.Apply(lst))
	assert.Equal(t, []string{"a", "c"}, lst, "input must not be mutated")
}

// TestScript_Apply verifies that edits run front to back on a working copy.
func TestScript_Apply(t *testing.T) {
	script := align.Script[string]{
		align.Insertion[string]{Index: 1, Label: "b"},
		align.Deletion[string]{Index: 0},
		align.Replacement[string]{Index: 0, Label: "c"},
	}
	lst := []string{"a", "b"}
	assert.Equal(t, []string{"c", "b"}, script.Apply(lst))
	assert.Equal(t, []string{"a", "b"}, lst, "input must not be mutated")
}

// TestToScript verifies the deletions-first-then-insertions conversion and
// the round-trip property script.Apply(x) == y.
func TestToScript(t *testing.T) {
	x := []string{"a", "b", "c"}
	y := []string{"b", "e", "f", "c"}

	var ali align.Alignment
	ali.Append(0, align.Gap) // delete a
	ali.Append(1, 0)         // keep b
	ali.Append(align.Gap, 1) // insert e
	ali.Append(align.Gap, 2) // insert f
	ali.Append(2, 3)         // keep c

	script, err := align.ToScript(ali, x, y)
	require.NoError(t, err)
	expected := align.Script[string]{
		align.Deletion[string]{Index: 0},
		align.Insertion[string]{Index: 1, Label: "e"},
		align.Insertion[string]{Index: 2, Label: "f"},
	}
	assert.Equal(t, expected, script)
	assert.Equal(t, y, script.Apply(x), "script must turn x into y")

	// The inverse alignment emits deletions in decreasing index.
	var inv align.Alignment
	inv.Append(align.Gap, 0) // insert a
	inv.Append(0, 1)         // keep b
	inv.Append(1, align.Gap) // delete e
	inv.Append(2, align.Gap) // delete f
	inv.Append(3, 2)         // keep c

	script, err = align.ToScript(inv, y, x)
	require.NoError(t, err)
	expected = align.Script[string]{
		align.Deletion[string]{Index: 2},
		align.Deletion[string]{Index: 1},
		align.Insertion[string]{Index: 0, Label: "a"},
	}
	assert.Equal(t, expected, script)
	assert.Equal(t, x, script.Apply(y), "inverse script must turn y into x")
}

// TestToScript_Replacements verifies that replacements are emitted only
// where labels differ and are applied before the gap groups.
func TestToScript_Replacements(t *testing.T) {
	x := []string{"a", "b"}
	y := []string{"c", "b"}

	var ali align.Alignment
	ali.Append(0, 0)
	ali.Append(1, 1)

	script, err := align.ToScript(ali, x, y)
	require.NoError(t, err)
	assert.Equal(t, align.Script[string]{align.Replacement[string]{Index: 0, Label: "c"}}, script)
	assert.Equal(t, y, script.Apply(x))
}

// TestToScript_Invalid verifies that malformed alignments are rejected.
func TestToScript_Invalid(t *testing.T) {
	var ali align.Alignment
	ali.Append(3, 0)
	_, err := align.ToScript(ali, []string{"a"}, []string{"b"})
	assert.ErrorIs(t, err, align.ErrOutOfRange)
}
