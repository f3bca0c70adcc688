package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"tunetree/fstree"
	"tunetree/meta"
	"tunetree/rename"
)

// headless renames every supported audio file under dir without starting
// the UI, driving the same collect-then-rename pipeline as the tree view.
func headless(dir string) error {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", absPath)
	}

	t := fstree.New()
	t.SetCheck(t.AddRoot(absPath), fstree.Checked)
	entries := t.Collect()

	bar := progressbar.Default(int64(len(entries)), "renaming")
	var renamed int
	for _, e := range entries {
		res := rename.Run(t, []fstree.Entry{e}, meta.Reader{})
		renamed += res.Renamed
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	fmt.Printf("Renamed %d file(s).\n", renamed)
	return nil
}
