// Package fstree holds the checkable filesystem tree the browser operates
// on. Nodes live in a flat arena and are referenced by NodeID, so refreshing
// a folder (destroy children, re-read from disk) never leaves dangling
// pointers behind. Directory contents are loaded lazily on first expansion.
package fstree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// NodeID is an index into the tree's node arena.
type NodeID int

// None marks the absence of a node, e.g. a file found on disk that was
// never materialized in the tree.
const None NodeID = -1

type Kind uint8

const (
	KindDir Kind = iota
	KindFile
)

// CheckState is the tri-state checkbox value of a node.
type CheckState uint8

const (
	Unchecked CheckState = iota
	Checked
	Partial
)

// Node is a single row of the tree. Loaded doubles as the lazy-load
// sentinel: an unloaded directory has not had its children read yet.
type Node struct {
	Name     string
	Path     string
	Kind     Kind
	Check    CheckState
	Expanded bool
	Loaded   bool
	Parent   NodeID
	Children []NodeID

	dead bool
}

var supportedExts = map[string]bool{
	".mp3":  true,
	".flac": true,
	".wav":  true,
}

// SupportedExt reports whether name has one of the audio extensions the
// renamer handles (case-insensitive).
func SupportedExt(name string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(name))]
}

type Tree struct {
	nodes []Node
	free  []NodeID
	roots []NodeID
}

func New() *Tree {
	return &Tree{}
}

// AddRoot inserts a top-level directory node. Roots are created unloaded,
// like any other folder.
func (t *Tree) AddRoot(path string) NodeID {
	id := t.alloc(Node{
		Name:   path,
		Path:   path,
		Kind:   KindDir,
		Parent: None,
	})
	t.roots = append(t.roots, id)
	return id
}

func (t *Tree) Roots() []NodeID {
	return t.roots
}

// At returns a copy of the node. The arena backing slice may move on
// insertion, so callers read through copies rather than holding pointers.
func (t *Tree) At(id NodeID) Node {
	return t.nodes[id]
}

func (t *Tree) alloc(n Node) NodeID {
	if len(t.free) > 0 {
		id := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.nodes[id] = n
		return id
	}
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

// release returns a node's whole subtree to the free list.
func (t *Tree) release(id NodeID) {
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, t.nodes[cur].Children...)
		t.nodes[cur] = Node{dead: true, Parent: None}
		t.free = append(t.free, cur)
	}
}

// Expand marks a directory open and populates its children on first use.
// Newly created children inherit the parent's checked or partial state.
func (t *Tree) Expand(id NodeID) {
	if t.nodes[id].Kind != KindDir {
		return
	}
	t.nodes[id].Expanded = true
	if t.nodes[id].Loaded {
		return
	}
	t.populate(id)
}

// Collapse hides a directory's children without discarding them.
func (t *Tree) Collapse(id NodeID) {
	if t.nodes[id].Kind == KindDir {
		t.nodes[id].Expanded = false
	}
}

// populate reads the directory at id's path and creates one child per
// entry that is itself a directory or a supported audio file, sorted
// directories-first then case-insensitively by name. A read failure is
// logged and leaves the folder empty.
func (t *Tree) populate(id NodeID) {
	t.nodes[id].Loaded = true
	path := t.nodes[id].Path

	entries, err := os.ReadDir(path)
	if err != nil {
		logrus.Warnf("scan %s: %v", path, err)
		return
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	var children []NodeID
	for _, e := range entries {
		if !e.IsDir() && !SupportedExt(e.Name()) {
			continue
		}
		kind := KindFile
		loaded := true
		if e.IsDir() {
			kind = KindDir
			loaded = false
		}
		children = append(children, t.alloc(Node{
			Name:   e.Name(),
			Path:   filepath.Join(path, e.Name()),
			Kind:   kind,
			Loaded: loaded,
			Parent: id,
		}))
	}
	t.nodes[id].Children = children

	if state := t.nodes[id].Check; state == Checked || state == Partial {
		for _, c := range children {
			t.nodes[c].Check = state
		}
	}
}

// SetCheck sets the state on the node and every materialized descendant,
// then recomputes ancestor states so partially selected folders display
// as such.
func (t *Tree) SetCheck(id NodeID, state CheckState) {
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		t.nodes[cur].Check = state
		stack = append(stack, t.nodes[cur].Children...)
	}
	t.recomputeAncestors(t.nodes[id].Parent)
}

// recomputeAncestors walks upward from id refreshing each folder's state
// from its children: all checked, all unchecked, or partial.
func (t *Tree) recomputeAncestors(id NodeID) {
	for id != None {
		allChecked, allUnchecked := true, true
		for _, c := range t.nodes[id].Children {
			if t.nodes[c].Check != Checked {
				allChecked = false
			}
			if t.nodes[c].Check != Unchecked {
				allUnchecked = false
			}
		}
		switch {
		case allChecked:
			t.nodes[id].Check = Checked
		case allUnchecked:
			t.nodes[id].Check = Unchecked
		default:
			t.nodes[id].Check = Partial
		}
		id = t.nodes[id].Parent
	}
}

// FindByPath locates the node whose stored path equals path, or None.
func (t *Tree) FindByPath(path string) NodeID {
	stack := make([]NodeID, len(t.roots))
	copy(stack, t.roots)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.nodes[cur].dead {
			continue
		}
		if t.nodes[cur].Path == path {
			return cur
		}
		stack = append(stack, t.nodes[cur].Children...)
	}
	return None
}

// Refresh discards a folder's subtree and re-populates it from disk. The
// folder keeps its own check state, which populate propagates onto the
// fresh children.
func (t *Tree) Refresh(id NodeID) {
	if t.nodes[id].Kind != KindDir {
		return
	}
	for _, c := range t.nodes[id].Children {
		t.release(c)
	}
	t.nodes[id].Children = nil
	t.nodes[id].Loaded = false
	t.populate(id)
}

// SetNodePath updates a file node's stored path and display name in place
// after the underlying file was renamed.
func (t *Tree) SetNodePath(id NodeID, path string) {
	t.nodes[id].Path = path
	t.nodes[id].Name = filepath.Base(path)
}
