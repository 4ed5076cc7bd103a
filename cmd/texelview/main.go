// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelview/main.go
// Summary: Standalone texelview command. Picks an app from the registry
// and runs it full-screen on the local terminal.
// Usage: texelview [-app NAME] [args...]   or   texelview NAME [args...]

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/framegrace/texelview/config"
	"github.com/framegrace/texelview/internal/runner"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("texelview", flag.ContinueOnError)
	appName := fs.String("app", "", "app to run (default: defaultApp from config)")
	logPath := fs.String("log-file", "", "write logs here instead of the config dir")
	list := fs.Bool("list", false, "list available apps and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if *list {
		for _, name := range runner.Names() {
			fmt.Println(name)
		}
		return nil
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	// The screen owns the terminal, so logs go to a file.
	closeLog, err := setupLogging(*logPath)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer closeLog()

	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		log.Printf("[texelview] terminal %dx%d", w, h)
	}

	name := *appName
	args := fs.Args()
	if name == "" && len(args) > 0 {
		name = args[0]
		args = args[1:]
	}
	if name == "" {
		name = config.System().GetString("", "defaultApp", "biglist")
	}

	log.Printf("[texelview] starting app %s %v", name, args)
	if err := runner.RunApp(name, args); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	log.Printf("[texelview] app %s exited cleanly", name)
	return nil
}

func setupLogging(path string) (func(), error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		logDir := filepath.Join(configDir, "texelview", "logs")
		if err := os.MkdirAll(logDir, 0o750); err != nil {
			return nil, err
		}
		path = filepath.Join(logDir, "texelview.log")
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, err
	}
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() { file.Close() }, nil
}
