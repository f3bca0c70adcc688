package fstree

import (
	"io/fs"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Entry pairs an audio file path with its tree node, if one exists. Files
// found only through the disk walk of a checked folder carry None.
type Entry struct {
	Node NodeID
	Path string
}

// Collect gathers every audio file the user selected. Unchecked branches
// are pruned outright. A checked file is taken as-is. A checked folder is
// walked on disk, so files below lazily unloaded folders, and files added
// after the tree was read, are included too. Partially checked folders are
// descended in search of checked nodes.
func (t *Tree) Collect() []Entry {
	var out []Entry
	stack := make([]NodeID, 0, len(t.roots))
	for i := len(t.roots) - 1; i >= 0; i-- {
		stack = append(stack, t.roots[i])
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[id]

		switch n.Check {
		case Unchecked:
			// pruned
		case Checked:
			if n.Kind == KindFile {
				out = append(out, Entry{Node: id, Path: n.Path})
				continue
			}
			out = append(out, t.walkDisk(n.Path)...)
		case Partial:
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, n.Children[i])
			}
		}
	}
	return out
}

// walkDisk recursively enumerates every supported audio file under root,
// independent of what the tree has materialized.
func (t *Tree) walkDisk(root string) []Entry {
	var out []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logrus.Warnf("walk %s: %v", path, err)
			return nil
		}
		if d.IsDir() || !SupportedExt(d.Name()) {
			return nil
		}
		out = append(out, Entry{Node: t.FindByPath(path), Path: path})
		return nil
	})
	if err != nil {
		logrus.Warnf("walk %s: %v", root, err)
	}
	return out
}
