// Package rename applies title-tag metadata to filenames. It consumes the
// selection entries gathered from the tree and renames each file to its
// title, skipping anything it cannot read or that would collide with an
// existing file.
package rename

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"tunetree/fstree"
)

// TitleReader resolves the desired title for an audio file.
type TitleReader interface {
	Title(path string) (string, error)
}

// Result summarizes one rename pass.
type Result struct {
	// Renamed counts files actually renamed; same-name no-ops and skips
	// are excluded.
	Renamed int
	// RefreshDirs lists each directory that had a successful rename, in
	// first-hit order, so the caller can reload those tree folders.
	RefreshDirs []string
}

// Run renames every entry whose title differs from its current filename.
// Failures never abort the pass: unreadable metadata, an existing target,
// or a failed rename all skip to the next entry. Tree nodes of renamed
// files are updated in place.
func Run(t *fstree.Tree, entries []fstree.Entry, reader TitleReader) Result {
	var res Result
	seen := make(map[string]bool)

	for _, e := range entries {
		if !fstree.SupportedExt(e.Path) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Path))

		title, err := reader.Title(e.Path)
		if err != nil {
			logrus.Warnf("skip %s: %v", e.Path, err)
			continue
		}

		dir := filepath.Dir(e.Path)
		newPath := filepath.Join(dir, title+ext)
		if newPath == e.Path {
			// already named after its title
			continue
		}
		if _, err := os.Lstat(newPath); err == nil {
			logrus.Warnf("skip %s: %s already exists", e.Path, newPath)
			continue
		}
		if err := os.Rename(e.Path, newPath); err != nil {
			logrus.Warnf("rename %s: %v", e.Path, err)
			continue
		}

		res.Renamed++
		if !seen[dir] {
			seen[dir] = true
			res.RefreshDirs = append(res.RefreshDirs, dir)
		}
		if e.Node != fstree.None {
			t.SetNodePath(e.Node, newPath)
		}
	}
	return res
}
