// Package terminal provides utilities for terminal operations such as clearing text.
package terminal

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/term"
)

// ClearPreviousLines wipes previously printed text from the terminal. Given
// the total character count of a prompt plus the input typed after it, it
// works out how many screen lines that text wrapped to at the current
// terminal width and clears each of them with ANSI escape sequences.
//
// Commands use this to remove credential prompts from the scrollback once
// the input has been read.
func ClearPreviousLines(textLength int) {
	termWidth := 80 // fallback when the size cannot be read
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		termWidth = width
	}

	totalLines := int(math.Ceil(float64(textLength) / float64(termWidth)))
	if totalLines < 1 {
		totalLines = 1
	}

	// After Enter the cursor sits on a fresh line below the input, so one
	// extra line needs clearing.
	linesToClear := totalLines + 1

	for i := 0; i < linesToClear; i++ {
		fmt.Print("\r\x1b[2K")
		if i < linesToClear-1 {
			fmt.Print("\x1b[1A")
		}
	}
}
