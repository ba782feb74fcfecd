package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// ANSI sequences used by the status line.
const (
	cursorHide = "\033[?25l"
	cursorShow = "\033[?25h"
	clearLine  = "\r\033[2K"
)

// statusLine redraws a single terminal line with the scan progress of root.
type statusLine struct {
	w    io.Writer
	root string
}

func newStatusLine(w io.Writer, root string) *statusLine {
	fmt.Fprint(w, cursorHide)

	return &statusLine{w: w, root: root}
}

// update matches the progress hook signature of dirstat.Run.
func (s *statusLine) update(files, bytes int64) {
	fmt.Fprintf(s.w, "%sindexing %s: %d files, %s\r",
		clearLine, s.root, files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
}

// done wipes the line and restores the cursor.
func (s *statusLine) done() {
	fmt.Fprint(s.w, clearLine+"\r"+cursorShow)
}
