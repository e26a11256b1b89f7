// Package tui is the line-oriented terminal presentation layer. It renders
// the navigation core's view models as text screens and translates keyboard
// input back into controller operations. The core never sees a terminal.
package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"spendbook/internal/app"
	apperrors "spendbook/internal/errors"
	"spendbook/internal/services"
)

// Terminal implements app.Renderer over stdin/stdout.
type Terminal struct {
	controller *app.Controller
	in         io.Reader
	out        io.Writer
	scanner    *bufio.Scanner

	current app.View
	eof     bool

	// Rejected form input carried into the next prompt so the user corrects
	// only the offending field. Passwords are never carried.
	lastRegister *services.RegisterInput
	lastLogin    string
}

// New creates a terminal presenter. Bind attaches the controller after
// construction because the controller itself needs the renderer first.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:      in,
		out:     out,
		scanner: bufio.NewScanner(in),
	}
}

// Bind attaches the controller the input loop dispatches to.
func (t *Terminal) Bind(c *app.Controller) {
	t.controller = c
}

// Render prints the screen for the given view and remembers it as the screen
// awaiting input. Rendering never reads; the input loop does.
func (t *Terminal) Render(view app.View) error {
	t.current = view
	return t.printScreen(view)
}

// Run drives the interactive loop: render the initial screen, then read and
// dispatch input for whatever screen is current until the user quits.
func (t *Terminal) Run() error {
	if err := t.controller.Start(); err != nil {
		return err
	}
	for {
		quit, err := t.handle(t.current)
		if t.eof {
			return nil
		}
		if err != nil {
			t.printError(err)
			// Redraw so the user sees fresh data under the error.
			if rerr := t.redraw(); rerr != nil {
				return rerr
			}
			continue
		}
		if quit {
			return nil
		}
	}
}

func (t *Terminal) redraw() error {
	return t.printScreen(t.current)
}

// printError surfaces a structured error's message, falling back to the raw
// error text for anything unexpected.
func (t *Terminal) printError(err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		fmt.Fprintf(t.out, "\n  ! %s\n", appErr.Message)
		return
	}
	fmt.Fprintf(t.out, "\n  ! %v\n", err)
}

// prompt reads one trimmed line after printing the label.
func (t *Terminal) prompt(label string) string {
	fmt.Fprintf(t.out, "%s: ", label)
	if !t.scanner.Scan() {
		t.eof = true
		return ""
	}
	return strings.TrimSpace(t.scanner.Text())
}

// promptDefault reads one line, keeping the previous value on empty input.
// Used by the edit screens so untouched fields survive.
func (t *Terminal) promptDefault(label, previous string) string {
	value := t.prompt(fmt.Sprintf("%s [%s]", label, previous))
	if value == "" {
		return previous
	}
	return value
}

// promptPassword reads a password without echo when stdin is a terminal, and
// falls back to a plain line read for pipes and tests.
func (t *Terminal) promptPassword(label string) string {
	fmt.Fprintf(t.out, "%s: ", label)
	if f, ok := t.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(t.out)
		if err != nil {
			return ""
		}
		return string(raw)
	}
	if !t.scanner.Scan() {
		t.eof = true
		return ""
	}
	return strings.TrimSpace(t.scanner.Text())
}

// promptUint reads a positive integer, reprompting until it parses.
func (t *Terminal) promptUint(label string) (uint, bool) {
	for {
		raw := t.prompt(label)
		if raw == "" {
			return 0, false
		}
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			fmt.Fprintln(t.out, "  ! enter a number")
			continue
		}
		return uint(n), true
	}
}

// promptOptionalUint reads an integer or returns nil on empty input.
func (t *Terminal) promptOptionalUint(label string) *uint {
	raw := t.prompt(label)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(n)
	return &id
}
