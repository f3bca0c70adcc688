package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		root    string
		runDir  string
		logFile string
	)
	flag.StringVar(&root, "root", "", "directory to browse (prompted for when empty)")
	flag.StringVar(&runDir, "run", "", "rename every supported file under this directory and exit")
	flag.StringVar(&logFile, "log", "", "append skip warnings to this file")
	flag.Parse()

	if runDir != "" {
		logrus.SetOutput(os.Stderr)
		if err := headless(runDir); err != nil {
			logrus.Fatal(err)
		}
		return
	}

	// Warnings on the terminal would tear up the tree display, so in UI
	// mode they go to the log file or nowhere.
	logrus.SetOutput(io.Discard)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logrus.SetOutput(f)
	}

	var model tea.Model
	if root != "" {
		absPath, err := filepath.Abs(root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid path: %v\n", err)
			os.Exit(1)
		}
		info, err := os.Stat(absPath)
		if err != nil || !info.IsDir() {
			fmt.Fprintf(os.Stderr, "%s is not a directory\n", absPath)
			os.Exit(1)
		}
		model = newBrowser(absPath)
	} else {
		model = newPathPrompt()
	}

	if _, err := tea.NewProgram(model).Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
