// Package cli provides a line-based picker on top of the unicode mode, for
// debugging queries in real time.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/unipick/pkg/mode"
)

// InputHandler reads queries line by line and prints the ranked results.
// A line of the form ":N" picks the N-th result of the last query.
type InputHandler struct {
	mode         *mode.Mode
	in           io.Reader
	out          io.Writer
	copy         bool
	copyFn       func(string) error
	requestCount int
}

// NewInputHandler creates a handler over in/out. With copyOnPick set, picked
// characters are also put on the system clipboard.
func NewInputHandler(m *mode.Mode, in io.Reader, out io.Writer, copyOnPick bool) *InputHandler {
	return &InputHandler{
		mode:   m,
		in:     in,
		out:    out,
		copy:   copyOnPick,
		copyFn: clipboard.WriteAll,
	}
}

// Start activates the mode and runs the loop until the input ends.
func (h *InputHandler) Start() error {
	if err := h.mode.Activate(); err != nil {
		return err
	}
	defer h.mode.Deactivate()

	log.Print("unipick CLI")
	log.Print("type part of a name or a codepoint, :N picks result N (Ctrl+D to exit):")

	scanner := bufio.NewScanner(h.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if n, ok := parsePick(line); ok {
			h.pick(n)
			continue
		}
		h.handleInput(line)
	}
	return scanner.Err()
}

// parsePick recognizes ":N" with N starting at 1.
func parsePick(line string) (int, bool) {
	rest, ok := strings.CutPrefix(line, ":")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (h *InputHandler) handleInput(query string) {
	h.requestCount++

	start := time.Now()
	lines := h.mode.OnQueryChanged(query)
	log.Debugf("Took [ %v ] for query '%s'", time.Since(start), query)

	if msg := h.mode.Message(); msg != "" {
		fmt.Fprintln(h.out, MessageStyle.Render(msg))
	}
	if len(lines) == 0 {
		log.Warnf("No characters found for '%s'", query)
		return
	}

	for i, entry := range h.mode.Results() {
		fmt.Fprintln(h.out, RenderRow(i+1, entry, 0, false))
	}
}

func (h *InputHandler) pick(n int) {
	out := h.mode.OnEntrySelected(n - 1)
	if out.Action != mode.ActionSelect {
		log.Errorf("Cannot pick %d: %v", n, out.Err)
		return
	}

	text := h.mode.OnActivate(out.Entry)
	fmt.Fprintln(h.out, text)
	if h.copy {
		if err := h.copyFn(text); err != nil {
			log.Warnf("Copying to clipboard: %v", err)
		}
	}
}
