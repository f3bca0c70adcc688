package fstree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func childNames(tr *Tree, id NodeID) []string {
	var names []string
	for _, c := range tr.At(id).Children {
		names = append(names, tr.At(c).Name)
	}
	return names
}

func childByName(t *testing.T, tr *Tree, parent NodeID, name string) NodeID {
	t.Helper()
	for _, c := range tr.At(parent).Children {
		if tr.At(c).Name == name {
			return c
		}
	}
	t.Fatalf("no child named %q", name)
	return None
}

func TestExpandFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.mp3"))
	writeFile(t, filepath.Join(dir, "A.flac"))
	writeFile(t, filepath.Join(dir, "song.WAV"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "zeta"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Alpha"), 0755))

	tr := New()
	root := tr.AddRoot(dir)
	tr.Expand(root)

	// directories before files, then case-insensitive by name; notes.txt
	// filtered out entirely
	assert.Equal(t, []string{"Alpha", "zeta", "A.flac", "b.mp3", "song.WAV"}, childNames(tr, root))

	assert.Equal(t, KindDir, tr.At(childByName(t, tr, root, "Alpha")).Kind)
	assert.Equal(t, KindFile, tr.At(childByName(t, tr, root, "b.mp3")).Kind)
	assert.False(t, tr.At(childByName(t, tr, root, "zeta")).Loaded, "folders stay unloaded until expanded")
}

func TestExpandMissingDirTreatedAsEmpty(t *testing.T) {
	tr := New()
	root := tr.AddRoot(filepath.Join(t.TempDir(), "gone"))
	tr.Expand(root)

	n := tr.At(root)
	assert.True(t, n.Loaded)
	assert.True(t, n.Expanded)
	assert.Empty(t, n.Children)
}

func TestExpandPropagatesCheckToNewChildren(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.mp3"))
	writeFile(t, filepath.Join(dir, "b.mp3"))

	tr := New()
	root := tr.AddRoot(dir)
	tr.SetCheck(root, Checked)
	tr.Expand(root)

	for _, c := range tr.At(root).Children {
		assert.Equal(t, Checked, tr.At(c).Check)
	}
}

func TestSetCheckPropagatesToDescendants(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sub", "x.mp3"))
	writeFile(t, filepath.Join(dir, "y.mp3"))

	tr := New()
	root := tr.AddRoot(dir)
	tr.Expand(root)
	sub := childByName(t, tr, root, "sub")
	tr.Expand(sub)

	tr.SetCheck(root, Checked)
	assert.Equal(t, Checked, tr.At(sub).Check)
	assert.Equal(t, Checked, tr.At(childByName(t, tr, sub, "x.mp3")).Check)
	assert.Equal(t, Checked, tr.At(childByName(t, tr, root, "y.mp3")).Check)

	tr.SetCheck(root, Unchecked)
	assert.Equal(t, Unchecked, tr.At(sub).Check)
	assert.Equal(t, Unchecked, tr.At(childByName(t, tr, sub, "x.mp3")).Check)
}

func TestSetCheckRecomputesAncestors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.mp3"))
	writeFile(t, filepath.Join(dir, "b.mp3"))

	tr := New()
	root := tr.AddRoot(dir)
	tr.Expand(root)
	a := childByName(t, tr, root, "a.mp3")
	b := childByName(t, tr, root, "b.mp3")

	tr.SetCheck(a, Checked)
	assert.Equal(t, Partial, tr.At(root).Check)

	tr.SetCheck(b, Checked)
	assert.Equal(t, Checked, tr.At(root).Check)

	tr.SetCheck(a, Unchecked)
	tr.SetCheck(b, Unchecked)
	assert.Equal(t, Unchecked, tr.At(root).Check)
}

func TestFindByPath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "sub", "x.mp3")
	writeFile(t, target)

	tr := New()
	root := tr.AddRoot(dir)
	tr.Expand(root)
	tr.Expand(childByName(t, tr, root, "sub"))

	id := tr.FindByPath(target)
	require.NotEqual(t, None, id)
	assert.Equal(t, "x.mp3", tr.At(id).Name)

	assert.Equal(t, None, tr.FindByPath(filepath.Join(dir, "nope.mp3")))
}

func TestRefreshPicksUpDiskChanges(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.mp3"))

	tr := New()
	root := tr.AddRoot(dir)
	tr.Expand(root)
	require.Equal(t, []string{"a.mp3"}, childNames(tr, root))

	writeFile(t, filepath.Join(dir, "b.mp3"))
	tr.SetCheck(root, Checked)
	tr.Refresh(root)

	assert.Equal(t, []string{"a.mp3", "b.mp3"}, childNames(tr, root))
	assert.Equal(t, Checked, tr.At(root).Check, "folder keeps its state across refresh")
	for _, c := range tr.At(root).Children {
		assert.Equal(t, Checked, tr.At(c).Check)
	}
}

func TestSetNodePath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.mp3"))

	tr := New()
	root := tr.AddRoot(dir)
	tr.Expand(root)
	a := childByName(t, tr, root, "a.mp3")

	newPath := filepath.Join(dir, "Sunrise.mp3")
	tr.SetNodePath(a, newPath)
	assert.Equal(t, "Sunrise.mp3", tr.At(a).Name)
	assert.Equal(t, newPath, tr.At(a).Path)
	assert.Equal(t, a, tr.FindByPath(newPath))
}

func TestSupportedExt(t *testing.T) {
	assert.True(t, SupportedExt("a.mp3"))
	assert.True(t, SupportedExt("a.FLAC"))
	assert.True(t, SupportedExt("a.Wav"))
	assert.False(t, SupportedExt("a.txt"))
	assert.False(t, SupportedExt("mp3"))
}
