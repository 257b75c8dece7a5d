package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"golang.org/x/term"

	"passgate/cli/internal/terminal"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// stdin is shared across prompts so type-ahead input is not lost between
// consecutive reads.
var stdin = bufio.NewReader(os.Stdin)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// promptLine prints the prompt, reads one line and wipes the prompt from the
// screen afterwards so entered values do not linger in the scrollback.
// If EOF occurs after some input was read, the partial line is returned.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	line = strings.TrimSpace(line)
	terminal.ClearPreviousLines(len(prompt) + len(line))
	return line, nil
}

// promptPassword reads a password without echoing it. When stdin is not a
// terminal (piped input), it falls back to a plain line read.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := stdin.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			return "", err
		}
		fmt.Println()
		return strings.TrimSpace(line), nil
	}
	pw, err := readPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	terminal.ClearPreviousLines(len(prompt))
	return string(pw), nil
}

// startAuthSpinner shows an animated label while an authentication call is
// in flight. It hides the cursor for the duration; the returned function
// stops the spinner and restores it.
func startAuthSpinner(label string) func() {
	cursor.Hide()
	area, err := pterm.DefaultArea.WithRemoveWhenDone(true).Start()
	if err != nil {
		cursor.Show()
		return func() {}
	}
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(120 * time.Millisecond)
		defer t.Stop()
		i := 0
		for {
			select {
			case <-t.C:
				area.Update(fmt.Sprintf("%s %s", spinnerFrames[i%len(spinnerFrames)], label))
				i++
			case <-stop:
				return
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
		area.Stop()
		cursor.Show()
	}
}

// startInlineSpinner starts a single-line spinner on w and returns a stop
// function. Used where an area printer would interfere with other output.
func startInlineSpinner(w io.Writer, text string) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				line := fmt.Sprintf("%s %s", spinnerFrames[i%len(spinnerFrames)], text)
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", spinnerFrames[i%len(spinnerFrames)], text)
				i++
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
	}
}
