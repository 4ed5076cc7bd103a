// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/streamview/tail.go
// Summary: Runs a shell command on a pty and delivers its output line
// by line with ANSI escapes scrubbed.

package streamview

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"syscall"

	"github.com/creack/pty"
)

// ansiRe matches CSI and OSC sequences plus bare two-byte escapes,
// enough to scrub colored tool output down to plain text.
var ansiRe = regexp.MustCompile(`\x1b(?:\[[0-9;?]*[a-zA-Z]|\][^\x07\x1b]*(?:\x07|\x1b\\)|[@-Z\\-_])`)

// tailer runs a shell command under a pty and feeds every output line
// to the onLine callback from its reader goroutine. A pty rather than a
// plain pipe keeps line buffering and progress output behaving the way
// the command behaves in a terminal.
type tailer struct {
	command string
	onLine  func(string)

	mu   sync.Mutex
	ptmx *os.File
	cmd  *exec.Cmd

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func newTailer(command string, onLine func(string)) *tailer {
	return &tailer{command: command, onLine: onLine, stop: make(chan struct{})}
}

// Start launches the command sized to the given terminal dimensions and
// begins delivering lines.
func (t *tailer) Start(cols, rows int) error {
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}

	cmd := exec.Command("/bin/sh", "-c", t.command)
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
	)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return fmt.Errorf("failed to start %q: %w", t.command, err)
	}

	t.mu.Lock()
	t.ptmx = ptmx
	t.cmd = cmd
	t.mu.Unlock()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer cmd.Wait()
		defer ptmx.Close()

		reader := bufio.NewReader(ptmx)
		for {
			select {
			case <-t.stop:
				return
			default:
			}

			line, err := reader.ReadString('\n')
			if line != "" {
				t.onLine(scrubLine(line))
			}
			if err != nil {
				// The pty reports EIO once the child exits.
				if err != io.EOF && !errors.Is(err, syscall.EIO) && !t.stopped() {
					log.Printf("[streamview] read error: %v", err)
				}
				return
			}
		}
	}()
	return nil
}

// Resize propagates the new terminal size to the child.
func (t *tailer) Resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ptmx != nil {
		pty.Setsize(t.ptmx, &pty.Winsize{
			Rows: uint16(rows),
			Cols: uint16(cols),
		})
	}
}

// Write sends input bytes to the child, used for paste passthrough.
func (t *tailer) Write(b []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ptmx != nil {
		t.ptmx.Write(b)
	}
}

// Stop tears the child down. Safe to call more than once.
func (t *tailer) Stop() {
	t.stopOnce.Do(func() {
		close(t.stop)
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.ptmx != nil {
			t.ptmx.Close()
		}
		if t.cmd != nil && t.cmd.Process != nil {
			t.cmd.Process.Signal(syscall.SIGTERM)
		}
	})
}

// Wait blocks until the reader goroutine has drained and exited.
func (t *tailer) Wait() {
	t.wg.Wait()
}

func (t *tailer) stopped() bool {
	select {
	case <-t.stop:
		return true
	default:
		return false
	}
}

func scrubLine(line string) string {
	line = ansiRe.ReplaceAllString(line, "")
	return strings.TrimRight(line, "\r\n")
}
